//go:build !unix

package store

import (
	"context"
	"fmt"
	"os"
)

// Compile-time interface check.
var _ Store = (*FileStore)(nil)

// FileStore requires flock and mmap and is only available on unix platforms.
// On other platforms every operation fails.
type FileStore struct {
	path   string
	layout Layout
}

// FileOption configures a FileStore.
type FileOption func(*FileStore)

// WithLayout sets the slot layout. The default is VoteLayout.
func WithLayout(l Layout) FileOption {
	return func(f *FileStore) {
		f.layout = l
	}
}

// WithFileMode is accepted for API compatibility and ignored.
func WithFileMode(os.FileMode) FileOption {
	return func(*FileStore) {}
}

// NewFileStore returns a store for the region at path.
func NewFileStore(path string, opts ...FileOption) *FileStore {
	f := &FileStore{path: path}
	for _, o := range opts {
		o(f)
	}
	f.layout = f.layout.orDefault()
	return f
}

// Path returns the location of the backing file.
func (f *FileStore) Path() string { return f.path }

// Layout returns the slot layout of the region.
func (f *FileStore) Layout() Layout { return f.layout }

func (f *FileStore) Initialize(context.Context) error {
	return fmt.Errorf("%w: file store not supported on this platform", ErrStorageUnavailable)
}

func (f *FileStore) Increment(_ context.Context, index int) error {
	if _, err := f.layout.Offset(index); err != nil {
		return err
	}
	return fmt.Errorf("%w: file store not supported on this platform", ErrStorageUnavailable)
}

func (f *FileStore) ReadAll(context.Context) (Counts, error) {
	return nil, fmt.Errorf("%w: file store not supported on this platform", ErrStorageUnreadable)
}

func (f *FileStore) Close() error { return nil }
