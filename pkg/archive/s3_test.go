package archive_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/stayforge/hotelops/pkg/archive"
)

// MockS3Client substitutes the S3Client interface in tests.
type MockS3Client struct {
	mock.Mock
}

func (m *MockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func (m *MockS3Client) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.GetObjectOutput), args.Error(1)
}

func (m *MockS3Client) HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.HeadObjectOutput), args.Error(1)
}

func (m *MockS3Client) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.ListObjectsV2Output), args.Error(1)
}

func (m *MockS3Client) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.DeleteObjectOutput), args.Error(1)
}

// mockAPIError implements smithy.APIError for error classification tests
type mockAPIError struct {
	code    string
	message string
}

func (e *mockAPIError) Error() string                 { return e.code + ": " + e.message }
func (e *mockAPIError) ErrorCode() string             { return e.code }
func (e *mockAPIError) ErrorMessage() string          { return e.message }
func (e *mockAPIError) ErrorFault() smithy.ErrorFault { return smithy.FaultClient }

func newMockS3Storage(t *testing.T, client *MockS3Client) *archive.S3Storage {
	t.Helper()

	store, err := archive.NewS3Storage(context.Background(), archive.S3Config{
		Bucket: "hotelops-archives",
		Region: "eu-central-1",
	}, archive.WithS3Client(client))
	require.NoError(t, err)
	return store
}

func TestNewS3Storage(t *testing.T) {
	t.Parallel()

	t.Run("missing bucket", func(t *testing.T) {
		t.Parallel()

		_, err := archive.NewS3Storage(context.Background(), archive.S3Config{Region: "eu-central-1"})
		assert.ErrorIs(t, err, archive.ErrInvalidConfig)
	})

	t.Run("missing region", func(t *testing.T) {
		t.Parallel()

		_, err := archive.NewS3Storage(context.Background(), archive.S3Config{Bucket: "b"})
		assert.ErrorIs(t, err, archive.ErrInvalidConfig)
	})

	t.Run("default base URL", func(t *testing.T) {
		t.Parallel()

		store := newMockS3Storage(t, new(MockS3Client))
		assert.Equal(t,
			"https://hotelops-archives.s3.eu-central-1.amazonaws.com/a/b.jsonl",
			store.URL("a/b.jsonl"))
	})

	t.Run("endpoint base URL", func(t *testing.T) {
		t.Parallel()

		store, err := archive.NewS3Storage(context.Background(), archive.S3Config{
			Bucket:         "archives",
			Region:         "us-east-1",
			Endpoint:       "http://localhost:9000",
			ForcePathStyle: true,
		}, archive.WithS3Client(new(MockS3Client)))
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:9000/archives/x.txt", store.URL("x.txt"))
	})
}

func TestS3StoragePut(t *testing.T) {
	t.Parallel()

	t.Run("uploads object", func(t *testing.T) {
		t.Parallel()

		client := new(MockS3Client)
		store := newMockS3Storage(t, client)

		client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
			return aws.ToString(in.Bucket) == "hotelops-archives" &&
				aws.ToString(in.Key) == "dead-letters/payments/x.jsonl" &&
				aws.ToString(in.ContentType) == "application/x-ndjson"
		}), mock.Anything).Return(&s3.PutObjectOutput{}, nil)

		obj, err := store.Put(context.Background(), "dead-letters/payments/x.jsonl",
			"application/x-ndjson", strings.NewReader("{}\n"))
		require.NoError(t, err)
		assert.Equal(t, "dead-letters/payments/x.jsonl", obj.Path)
		assert.Equal(t, int64(3), obj.Size)

		client.AssertExpectations(t)
	})

	t.Run("rejects traversal", func(t *testing.T) {
		t.Parallel()

		store := newMockS3Storage(t, new(MockS3Client))

		_, err := store.Put(context.Background(), "../x", "text/plain", strings.NewReader("x"))
		assert.ErrorIs(t, err, archive.ErrInvalidPath)
	})

	t.Run("classifies access denied", func(t *testing.T) {
		t.Parallel()

		client := new(MockS3Client)
		store := newMockS3Storage(t, client)

		client.On("PutObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &mockAPIError{code: "AccessDenied", message: "nope"})

		_, err := store.Put(context.Background(), "x.txt", "text/plain", strings.NewReader("x"))
		assert.ErrorIs(t, err, archive.ErrAccessDenied)
	})
}

func TestS3StorageGet(t *testing.T) {
	t.Parallel()

	t.Run("reads object", func(t *testing.T) {
		t.Parallel()

		client := new(MockS3Client)
		store := newMockS3Storage(t, client)

		client.On("GetObject", mock.Anything, mock.MatchedBy(func(in *s3.GetObjectInput) bool {
			return aws.ToString(in.Key) == "reports/n.csv"
		}), mock.Anything).Return(&s3.GetObjectOutput{
			Body: io.NopCloser(strings.NewReader("a,b,c")),
		}, nil)

		data, err := store.Get(context.Background(), "reports/n.csv")
		require.NoError(t, err)
		assert.Equal(t, "a,b,c", string(data))
	})

	t.Run("missing object", func(t *testing.T) {
		t.Parallel()

		client := new(MockS3Client)
		store := newMockS3Storage(t, client)

		client.On("GetObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &mockAPIError{code: "NoSuchKey", message: "missing"})

		_, err := store.Get(context.Background(), "reports/missing.csv")
		assert.ErrorIs(t, err, archive.ErrObjectNotFound)
	})
}

func TestS3StorageList(t *testing.T) {
	t.Parallel()

	client := new(MockS3Client)
	store := newMockS3Storage(t, client)

	// Two pages joined by a continuation token.
	first := &s3.ListObjectsV2Output{
		Contents: []s3types.Object{
			{Key: aws.String("dl/a.jsonl"), Size: aws.Int64(10)},
		},
		IsTruncated:           aws.Bool(true),
		NextContinuationToken: aws.String("token-1"),
	}
	second := &s3.ListObjectsV2Output{
		Contents: []s3types.Object{
			{Key: aws.String("dl/b.jsonl"), Size: aws.Int64(20)},
		},
		IsTruncated: aws.Bool(false),
	}

	client.On("ListObjectsV2", mock.Anything, mock.MatchedBy(func(in *s3.ListObjectsV2Input) bool {
		return in.ContinuationToken == nil
	}), mock.Anything).Return(first, nil).Once()
	client.On("ListObjectsV2", mock.Anything, mock.MatchedBy(func(in *s3.ListObjectsV2Input) bool {
		return aws.ToString(in.ContinuationToken) == "token-1"
	}), mock.Anything).Return(second, nil).Once()

	objects, err := store.List(context.Background(), "dl/")
	require.NoError(t, err)
	require.Len(t, objects, 2)
	assert.Equal(t, "dl/a.jsonl", objects[0].Path)
	assert.Equal(t, int64(10), objects[0].Size)
	assert.Equal(t, "dl/b.jsonl", objects[1].Path)

	client.AssertExpectations(t)
}

func TestS3StorageDelete(t *testing.T) {
	t.Parallel()

	t.Run("deletes existing object", func(t *testing.T) {
		t.Parallel()

		client := new(MockS3Client)
		store := newMockS3Storage(t, client)

		client.On("HeadObject", mock.Anything, mock.Anything, mock.Anything).
			Return(&s3.HeadObjectOutput{}, nil)
		client.On("DeleteObject", mock.Anything, mock.Anything, mock.Anything).
			Return(&s3.DeleteObjectOutput{}, nil)

		require.NoError(t, store.Delete(context.Background(), "dl/a.jsonl"))
		client.AssertExpectations(t)
	})

	t.Run("missing object", func(t *testing.T) {
		t.Parallel()

		client := new(MockS3Client)
		store := newMockS3Storage(t, client)

		client.On("HeadObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &mockAPIError{code: "NotFound", message: "404"})

		err := store.Delete(context.Background(), "dl/missing.jsonl")
		assert.ErrorIs(t, err, archive.ErrObjectNotFound)
	})
}

func TestS3StorageExists(t *testing.T) {
	t.Parallel()

	client := new(MockS3Client)
	store := newMockS3Storage(t, client)

	client.On("HeadObject", mock.Anything, mock.MatchedBy(func(in *s3.HeadObjectInput) bool {
		return aws.ToString(in.Key) == "present"
	}), mock.Anything).Return(&s3.HeadObjectOutput{}, nil)
	client.On("HeadObject", mock.Anything, mock.MatchedBy(func(in *s3.HeadObjectInput) bool {
		return aws.ToString(in.Key) == "absent"
	}), mock.Anything).Return(nil, errors.New("not found"))

	assert.True(t, store.Exists(context.Background(), "present"))
	assert.False(t, store.Exists(context.Background(), "absent"))
}
