package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// S3Client is the subset of the AWS S3 API that S3Storage calls. Tests
// substitute a mock; production passes nothing and gets a real client.
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Storage implements Storage for Amazon S3 and S3-compatible services
// like MinIO. Methods may be called concurrently.
type S3Storage struct {
	client       S3Client
	bucket       string
	baseURL      string
	writeTimeout time.Duration
}

// S3Config identifies the bucket and how to reach it. Bucket and Region
// are required; leaving the key pair empty falls back to the ambient AWS
// credential chain.
type S3Config struct {
	Bucket         string
	Region         string
	AccessKeyID    string
	SecretKey      string
	Endpoint       string // alternate endpoint for S3-compatible services
	BaseURL        string // public URL base for serving objects
	ForcePathStyle bool   // required by MinIO and most self-hosted gateways
}

// S3Option adjusts how the storage and its underlying client are built.
type S3Option func(*s3Settings)

type s3Settings struct {
	client       S3Client
	httpClient   *http.Client
	configOpts   []func(*config.LoadOptions) error
	clientOpts   []func(*s3.Options)
	writeTimeout time.Duration
}

// WithS3Client injects a ready-made client, bypassing the AWS config
// chain. Tests pass mocks through this.
func WithS3Client(client S3Client) S3Option {
	return func(s *s3Settings) { s.client = client }
}

// WithHTTPClient sets the HTTP client the real S3 client transports over.
func WithHTTPClient(client *http.Client) S3Option {
	return func(s *s3Settings) { s.httpClient = client }
}

// WithS3ConfigOption appends an option to the AWS config loader.
func WithS3ConfigOption(opt func(*config.LoadOptions) error) S3Option {
	return func(s *s3Settings) { s.configOpts = append(s.configOpts, opt) }
}

// WithS3ClientOption appends an option to the S3 client constructor.
func WithS3ClientOption(opt func(*s3.Options)) S3Option {
	return func(s *s3Settings) { s.clientOpts = append(s.clientOpts, opt) }
}

// WithS3WriteTimeout bounds Put operations. If not set, the caller's
// context deadline applies.
func WithS3WriteTimeout(timeout time.Duration) S3Option {
	return func(s *s3Settings) { s.writeTimeout = timeout }
}

// NewS3Storage creates an S3-backed archive for cfg's bucket.
func NewS3Storage(ctx context.Context, cfg S3Config, opts ...S3Option) (*S3Storage, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, ErrInvalidConfig
	}

	var settings s3Settings
	for _, opt := range opts {
		opt(&settings)
	}

	client := settings.client
	if client == nil {
		// No injected client, build one from the AWS config chain.
		real, err := newS3Client(ctx, cfg, &settings)
		if err != nil {
			return nil, err
		}
		client = real
	}

	return &S3Storage{
		client:       client,
		bucket:       cfg.Bucket,
		baseURL:      publicBaseURL(cfg),
		writeTimeout: settings.writeTimeout,
	}, nil
}

func newS3Client(ctx context.Context, cfg S3Config, settings *s3Settings) (*s3.Client, error) {
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
		provider := credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, "")
		loadOpts = append(loadOpts, config.WithCredentialsProvider(provider))
	}
	if settings.httpClient != nil {
		loadOpts = append(loadOpts, config.WithHTTPClient(settings.httpClient))
	}
	loadOpts = append(loadOpts, settings.configOpts...)

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToLoadConfig, err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.ForcePathStyle
		for _, opt := range settings.clientOpts {
			opt(o)
		}
	}), nil
}

// publicBaseURL derives the URL prefix objects are served from. An explicit
// BaseURL wins, then a custom endpoint in path style, then the virtual
// hosted AWS form. The result always ends with a slash.
func publicBaseURL(cfg S3Config) string {
	base := cfg.BaseURL
	switch {
	case base != "":
	case cfg.Endpoint != "":
		base = strings.TrimSuffix(cfg.Endpoint, "/") + "/" + cfg.Bucket
	default:
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base
}

// classifyS3Error converts S3 errors to domain-specific errors. Modeled
// service errors such as NoSuchKey all satisfy smithy.APIError, so matching
// on the error code covers the typed variants too.
func classifyS3Error(err error, operation string) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %s operation", ErrOperationTimeout, operation)
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %s operation", ErrOperationCanceled, operation)
	}

	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("%s operation failed: %w", operation, err)
	}

	switch code := apiErr.ErrorCode(); code {
	case "NoSuchKey", "NotFound":
		return fmt.Errorf("%w: %s", ErrObjectNotFound, err)
	case "NoSuchBucket":
		return ErrBucketNotFound
	case "AccessDenied":
		return fmt.Errorf("%w: %s operation", ErrAccessDenied, operation)
	case "RequestTimeout":
		return fmt.Errorf("%w: %s operation", ErrRequestTimeout, operation)
	case "SlowDown", "ServiceUnavailable":
		return fmt.Errorf("%w: %s operation", ErrServiceUnavailable, operation)
	default:
		return fmt.Errorf("%s operation failed (code: %s): %w", operation, code, err)
	}
}

// Put writes the object at path.
func (s *S3Storage) Put(ctx context.Context, path, contentType string, body io.Reader) (*Object, error) {
	if s.writeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.writeTimeout)
		defer cancel()
	}

	key, err := cleanPath(path)
	if err != nil {
		return nil, err
	}

	// S3 wants a known length; buffering also lets us report Size without
	// a follow-up HeadObject call.
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToReadObject, err)
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return nil, classifyS3Error(err, "put object")
	}

	return &Object{
		Path:        key,
		Size:        int64(len(data)),
		ContentType: contentType,
	}, nil
}

// Get reads the object at path.
func (s *S3Storage) Get(ctx context.Context, path string) ([]byte, error) {
	key, err := cleanPath(path)
	if err != nil {
		return nil, err
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, classifyS3Error(err, "get object")
	}
	defer func() { _ = out.Body.Close() }()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToReadObject, err)
	}
	return data, nil
}

// List returns the objects under prefix ordered by key, following
// continuation tokens until the listing is exhausted.
func (s *S3Storage) List(ctx context.Context, prefix string) ([]Object, error) {
	if prefix != "" {
		if _, err := cleanPath(prefix); err != nil {
			return nil, err
		}
		prefix = strings.TrimPrefix(prefix, "/")
	}

	var (
		objects []Object
		token   *string
	)
	for {
		out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(s.bucket),
			Prefix:            aws.String(prefix),
			ContinuationToken: token,
		})
		if err != nil {
			return nil, classifyS3Error(err, "list objects")
		}

		for _, obj := range out.Contents {
			o := Object{Path: aws.ToString(obj.Key)}
			if obj.Size != nil {
				o.Size = *obj.Size
			}
			objects = append(objects, o)
		}

		if out.IsTruncated == nil || !*out.IsTruncated {
			break
		}
		token = out.NextContinuationToken
	}

	return objects, nil
}

// Delete removes the object at path.
func (s *S3Storage) Delete(ctx context.Context, path string) error {
	key, err := cleanPath(path)
	if err != nil {
		return err
	}

	// HeadObject first so deleting a missing object reports
	// ErrObjectNotFound instead of S3's silent success.
	if _, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return classifyS3Error(err, "check object")
	}

	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return classifyS3Error(err, "delete object")
	}

	return nil
}

// Exists reports whether an object is stored at path.
func (s *S3Storage) Exists(ctx context.Context, path string) bool {
	key, err := cleanPath(path)
	if err != nil {
		return false
	}

	_, err = s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err == nil
}

// URL returns the public URL for an object.
func (s *S3Storage) URL(path string) string {
	path = strings.TrimPrefix(path, "/")
	return s.baseURL + path
}
