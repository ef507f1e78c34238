//go:build unix

package store

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Compile-time interface check.
var _ Store = (*FileStore)(nil)

// FileStore is a persistent Store backed by a fixed-size file that is memory
// mapped for every operation. Increments serialise on an exclusive flock over
// the whole file, so cooperating processes sharing the path never lose an
// update. Reads take no lock: each slot is read with a single aligned 4-byte
// load, which yields either the old or the new value of a concurrent
// increment but never a mixture. There is no snapshot consistency across
// slots.
type FileStore struct {
	path   string
	layout Layout
	mode   os.FileMode
}

// FileOption configures a FileStore.
type FileOption func(*FileStore)

// WithLayout sets the slot layout. The default is VoteLayout.
func WithLayout(l Layout) FileOption {
	return func(f *FileStore) {
		f.layout = l
	}
}

// WithFileMode sets the permission bits of a newly created region.
func WithFileMode(mode os.FileMode) FileOption {
	return func(f *FileStore) {
		f.mode = mode
	}
}

// NewFileStore returns a store for the region at path. Nothing is touched on
// disk until Initialize is called.
func NewFileStore(path string, opts ...FileOption) *FileStore {
	f := &FileStore{path: path, mode: 0o644}
	for _, o := range opts {
		o(f)
	}
	f.layout = f.layout.orDefault()
	return f
}

// Path returns the location of the backing file.
func (f *FileStore) Path() string {
	return f.path
}

// Layout returns the slot layout of the region.
func (f *FileStore) Layout() Layout {
	return f.layout
}

// Initialize creates the region with every slot zeroed if it is missing.
// The zeroed file is written under a temporary name and hard-linked into
// place, so concurrent initializers and readers never observe a short file.
func (f *FileStore) Initialize(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return f.fail(ErrStorageUnavailable, "initialize", err)
	}

	info, err := os.Stat(f.path)
	if err == nil {
		return f.checkSize(info.Size(), ErrStorageUnavailable)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return f.fail(ErrStorageUnavailable, "stat", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".init-*")
	if err != nil {
		return f.fail(ErrStorageUnavailable, "create", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := writeZeroed(tmp, f.layout.Size(), f.mode); err != nil {
		tmp.Close()
		return f.fail(ErrStorageUnavailable, "create", err)
	}
	if err := tmp.Close(); err != nil {
		return f.fail(ErrStorageUnavailable, "create", err)
	}

	if err := os.Link(tmpName, f.path); err != nil {
		if errors.Is(err, fs.ErrExist) {
			// Another initializer won the race; its region is complete.
			return nil
		}
		return f.fail(ErrStorageUnavailable, "create", err)
	}
	return nil
}

// Increment adds one to the slot at index under an exclusive lock.
func (f *FileStore) Increment(ctx context.Context, index int) error {
	off, err := f.layout.Offset(index)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return f.fail(ErrStorageUnavailable, "increment", err)
	}

	file, err := os.OpenFile(f.path, os.O_RDWR, 0)
	if err != nil {
		return f.fail(ErrStorageUnavailable, "open", err)
	}
	defer file.Close()

	fd := int(file.Fd())
	if err := flock(fd, unix.LOCK_EX); err != nil {
		return f.fail(ErrStorageUnavailable, "lock", err)
	}
	defer flock(fd, unix.LOCK_UN)

	region, err := f.mapRegion(file, unix.PROT_READ|unix.PROT_WRITE, ErrStorageUnavailable)
	if err != nil {
		return err
	}
	defer unix.Munmap(region)

	slot := slotAt(region, off)
	current := loadSlot(slot)
	if current == math.MaxUint32 {
		return fmt.Errorf("%w: slot %q in %s", ErrCounterOverflow, f.layout.Names[index], f.path)
	}
	storeSlot(slot, current+1)
	return nil
}

// ReadAll returns every slot without taking the lock.
func (f *FileStore) ReadAll(ctx context.Context) (Counts, error) {
	if err := ctx.Err(); err != nil {
		return nil, f.fail(ErrStorageUnreadable, "read", err)
	}

	file, err := os.Open(f.path)
	if err != nil {
		return nil, f.fail(ErrStorageUnreadable, "open", err)
	}
	defer file.Close()

	region, err := f.mapRegion(file, unix.PROT_READ, ErrStorageUnreadable)
	if err != nil {
		return nil, err
	}
	defer unix.Munmap(region)

	counts := make(Counts, f.layout.Slots())
	for i := range counts {
		counts[i] = loadSlot(slotAt(region, i*SlotSize))
	}
	return counts, nil
}

// Close flushes the region to the backing medium. A missing region is not an
// error.
func (f *FileStore) Close() error {
	file, err := os.OpenFile(f.path, os.O_RDWR, 0)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return f.fail(ErrStorageUnavailable, "sync", err)
	}
	defer file.Close()

	if err := file.Sync(); err != nil {
		return f.fail(ErrStorageUnavailable, "sync", err)
	}
	return nil
}

func (f *FileStore) mapRegion(file *os.File, prot int, kind error) ([]byte, error) {
	info, err := file.Stat()
	if err != nil {
		return nil, f.fail(kind, "stat", err)
	}
	if err := f.checkSize(info.Size(), kind); err != nil {
		return nil, err
	}

	region, err := unix.Mmap(int(file.Fd()), 0, f.layout.Size(), prot, unix.MAP_SHARED)
	if err != nil {
		return nil, f.fail(kind, "mmap", err)
	}
	return region, nil
}

func (f *FileStore) checkSize(size int64, kind error) error {
	if size != int64(f.layout.Size()) {
		return fmt.Errorf("%w: %s is %d bytes, want %d", kind, f.path, size, f.layout.Size())
	}
	return nil
}

func (f *FileStore) fail(kind error, op string, err error) error {
	return fmt.Errorf("%w: %s %s: %v", kind, op, f.path, err)
}

func writeZeroed(file *os.File, size int, mode os.FileMode) error {
	if _, err := file.Write(make([]byte, size)); err != nil {
		return err
	}
	if err := file.Chmod(mode); err != nil {
		return err
	}
	return file.Sync()
}

func flock(fd int, how int) error {
	for {
		err := unix.Flock(fd, how)
		if err != unix.EINTR {
			return err
		}
	}
}

// slotAt returns the slot at byte offset off. Mappings are page aligned and
// offsets are multiples of SlotSize, so the pointer is suitably aligned for
// atomic access.
func slotAt(region []byte, off int) *uint32 {
	return (*uint32)(unsafe.Pointer(&region[off]))
}

func loadSlot(slot *uint32) uint32 {
	var b [SlotSize]byte
	binary.NativeEndian.PutUint32(b[:], atomic.LoadUint32(slot))
	return binary.BigEndian.Uint32(b[:])
}

func storeSlot(slot *uint32, v uint32) {
	var b [SlotSize]byte
	binary.BigEndian.PutUint32(b[:], v)
	atomic.StoreUint32(slot, binary.NativeEndian.Uint32(b[:]))
}
