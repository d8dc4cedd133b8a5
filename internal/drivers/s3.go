package drivers

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"
)

// S3Driver implements the Driver interface for S3-compatible storage.
// Containers map to buckets.
type S3Driver struct {
	endpoint string
	logger   *zap.Logger
	client   *s3.Client
}

// NewS3Driver creates a new S3 storage driver against a custom endpoint
// with static credentials.
func NewS3Driver(endpoint, accessKey, secretKey, region string, logger *zap.Logger) (*S3Driver, error) {
	creds := credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")

	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithCredentialsProvider(creds),
		awsconfig.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true // most S3-compatible stores need path style
		}
	})

	return &S3Driver{
		endpoint: endpoint,
		logger:   logger,
		client:   client,
	}, nil
}

// Name returns the driver name.
func (d *S3Driver) Name() string {
	return "s3"
}

// Get retrieves an object from a bucket.
func (d *S3Driver) Get(ctx context.Context, container, key string) (io.ReadCloser, error) {
	result, err := d.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(container),
		Key:    aws.String(key),
	})
	if err != nil {
		if isS3NotFound(err) {
			return nil, ErrNotFound(container, key)
		}
		return nil, fmt.Errorf("get object %s/%s: %w", container, key, err)
	}
	return result.Body, nil
}

// Put stores an object in a bucket with the given content type.
func (d *S3Driver) Put(ctx context.Context, container, key string, data io.Reader, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(container),
		Key:    aws.String(key),
		Body:   data,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := d.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("put object %s/%s: %w", container, key, err)
	}
	return nil
}

// Exists reports whether an object is present in a bucket.
func (d *S3Driver) Exists(ctx context.Context, container, key string) (bool, error) {
	_, err := d.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(container),
		Key:    aws.String(key),
	})
	if err != nil {
		if isS3NotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("head object %s/%s: %w", container, key, err)
	}
	return true, nil
}

// EnsureContainer creates the bucket if it does not already exist.
func (d *S3Driver) EnsureContainer(ctx context.Context, container string) error {
	_, err := d.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(container),
	})
	if err != nil {
		var owned *types.BucketAlreadyOwnedByYou
		var exists *types.BucketAlreadyExists
		if errors.As(err, &owned) || errors.As(err, &exists) {
			return nil
		}
		return fmt.Errorf("create bucket %s: %w", container, err)
	}

	d.logger.Info("created bucket", zap.String("bucket", container))
	return nil
}

// isS3NotFound reports whether err is any of the shapes S3 uses for a
// missing object (NoSuchKey from GetObject, NotFound from HeadObject).
func isS3NotFound(err error) bool {
	var noKey *types.NoSuchKey
	var notFound *types.NotFound
	if errors.As(err, &noKey) || errors.As(err, &notFound) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NoSuchKey" || code == "NotFound" || code == "NoSuchBucket"
	}
	return false
}
