// Package backup uploads snapshots of the vote counters to S3-compatible
// object storage.
package backup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/sudharshan-del/Hostel-Management/internal/config"
	"github.com/sudharshan-del/Hostel-Management/store"
)

var (
	// ErrNotConfigured is returned when no bucket is set.
	ErrNotConfigured = errors.New("backup: no bucket configured")

	// ErrUploadFailed is returned when object storage rejects the snapshot.
	ErrUploadFailed = errors.New("backup: upload failed")
)

// Uploader is the part of *s3.Client a Backup needs.
type Uploader interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Backup writes counter snapshots under a bucket prefix.
type Backup struct {
	client Uploader
	bucket string
	prefix string
	layout store.Layout
	now    func() time.Time
}

// Option configures a Backup.
type Option func(*Backup)

// WithLayout sets the layout used to encode snapshots.
func WithLayout(l store.Layout) Option {
	return func(b *Backup) {
		b.layout = l
	}
}

// WithClock overrides the time used in object keys.
func WithClock(now func() time.Time) Option {
	return func(b *Backup) {
		b.now = now
	}
}

// New creates a Backup that uploads through client.
func New(client Uploader, bucket, prefix string, opts ...Option) (*Backup, error) {
	if bucket == "" {
		return nil, ErrNotConfigured
	}
	b := &Backup{
		client: client,
		bucket: bucket,
		prefix: prefix,
		layout: store.VoteLayout,
		now:    time.Now,
	}
	for _, o := range opts {
		o(b)
	}
	return b, nil
}

// NewS3Client builds an S3 client from cfg. Static credentials are used when
// both keys are set; otherwise the default AWS credential chain applies.
func NewS3Client(ctx context.Context, cfg config.BackupConfig) (*s3.Client, error) {
	var opts []func(*awsConfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsConfig.WithRegion(cfg.Region))
	}
	if cfg.Endpoint != "" {
		opts = append(opts, awsConfig.WithBaseEndpoint(cfg.Endpoint))
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	sdkConfig, err := awsConfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("backup: load aws config: %w", err)
	}

	return s3.NewFromConfig(sdkConfig, func(o *s3.Options) {
		// Self-hosted endpoints rarely support virtual-hosted buckets.
		o.UsePathStyle = cfg.Endpoint != ""
	}), nil
}

// Key returns the object key for a snapshot taken at t.
func (b *Backup) Key(t time.Time) string {
	return path.Join(b.prefix, "mess_stats-"+t.UTC().Format("20060102T150405Z")+".dat")
}

// Snapshot reads every counter from st and uploads the encoded region. It
// returns the object key written.
func (b *Backup) Snapshot(ctx context.Context, st store.Store) (string, error) {
	counts, err := st.ReadAll(ctx)
	if err != nil {
		return "", fmt.Errorf("backup: read counters: %w", err)
	}
	data, err := b.layout.Encode(counts)
	if err != nil {
		return "", fmt.Errorf("backup: encode counters: %w", err)
	}

	key := b.Key(b.now())
	_, err = b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(b.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("application/octet-stream"),
	})
	if err != nil {
		return "", classify(err)
	}
	return key, nil
}

func classify(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: %s: %s", ErrUploadFailed, apiErr.ErrorCode(), apiErr.ErrorMessage())
	}
	return fmt.Errorf("%w: %v", ErrUploadFailed, err)
}
