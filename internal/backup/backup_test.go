package backup

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sudharshan-del/Hostel-Management/internal/config"
	"github.com/sudharshan-del/Hostel-Management/store"
)

type fakeUploader struct {
	bucket, key string
	body        []byte
	err         error
}

func (f *fakeUploader) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.bucket = aws.ToString(in.Bucket)
	f.key = aws.ToString(in.Key)
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.body = b
	return &s3.PutObjectOutput{}, nil
}

func fixedClock() time.Time {
	return time.Date(2024, 3, 9, 18, 30, 5, 0, time.FixedZone("IST", 5*3600+1800))
}

func TestSnapshot(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, st.Initialize(ctx))
	for _, i := range []int{0, 0, 1, 2, 2, 2} {
		require.NoError(t, st.Increment(ctx, i))
	}

	up := &fakeUploader{}
	b, err := New(up, "mess-backups", "hostel-a", WithClock(fixedClock))
	require.NoError(t, err)

	key, err := b.Snapshot(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, "hostel-a/mess_stats-20240309T130005Z.dat", key)
	assert.Equal(t, "mess-backups", up.bucket)
	assert.Equal(t, key, up.key)
	assert.Equal(t, []byte{0, 0, 0, 2, 0, 0, 0, 1, 0, 0, 0, 3}, up.body)
}

func TestSnapshotUnreadableStore(t *testing.T) {
	up := &fakeUploader{}
	b, err := New(up, "bucket", "")
	require.NoError(t, err)

	_, err = b.Snapshot(context.Background(), store.NewMemoryStore())
	require.ErrorIs(t, err, store.ErrStorageUnreadable)
	assert.Nil(t, up.body)
}

func TestSnapshotAPIError(t *testing.T) {
	st := store.NewMemoryStore()
	require.NoError(t, st.Initialize(context.Background()))

	up := &fakeUploader{err: &smithy.GenericAPIError{Code: "NoSuchBucket", Message: "bucket does not exist"}}
	b, err := New(up, "gone", "p")
	require.NoError(t, err)

	_, err = b.Snapshot(context.Background(), st)
	require.ErrorIs(t, err, ErrUploadFailed)
	assert.Contains(t, err.Error(), "NoSuchBucket")

	up.err = errors.New("connection reset")
	_, err = b.Snapshot(context.Background(), st)
	require.ErrorIs(t, err, ErrUploadFailed)
}

func TestNewRequiresBucket(t *testing.T) {
	_, err := New(&fakeUploader{}, "", "p")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestNewS3Client(t *testing.T) {
	client, err := NewS3Client(context.Background(), config.BackupConfig{
		Bucket:          "b",
		Region:          "ap-south-1",
		Endpoint:        "http://127.0.0.1:9000",
		AccessKeyID:     "id",
		SecretAccessKey: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "ap-south-1", client.Options().Region)
	assert.True(t, client.Options().UsePathStyle)
}
