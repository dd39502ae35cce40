package outputs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var ErrNoBucket = errors.New("output bucket is not configured")

// S3Config addresses the bucket the backend writes job outputs to.
// Endpoint is set for S3-compatible stores such as MinIO.
type S3Config struct {
	Region    string
	Bucket    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	getObject = func(c *s3.Client, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
		return c.GetObject(ctx, in, optFns...)
	}
)

type S3Fetcher struct {
	client *s3.Client
	bucket string
}

func NewS3Fetcher(ctx context.Context, c S3Config) (*S3Fetcher, error) {
	if c.Bucket == "" {
		return nil, ErrNoBucket
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(c.Region)}
	if c.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretKey, "")))
	}
	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3Fetcher{client: client, bucket: c.Bucket}, nil
}

// Fetch accepts a bare object key, a key with a leading slash, or an
// s3://bucket/key URL for the configured bucket.
func (f *S3Fetcher) Fetch(ctx context.Context, ref string, w io.Writer) (int64, error) {
	key, err := f.objectKey(ref)
	if err != nil {
		return 0, err
	}
	out, err := getObject(f.client, ctx, &s3.GetObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return 0, fmt.Errorf("%w: s3 get %s: %w", ErrFetch, key, err)
	}
	defer out.Body.Close()

	n, err := io.Copy(w, out.Body)
	if err != nil {
		return n, fmt.Errorf("%w: read %s: %w", ErrFetch, key, err)
	}
	return n, nil
}

func (f *S3Fetcher) objectKey(ref string) (string, error) {
	if rest, ok := strings.CutPrefix(ref, "s3://"); ok {
		bucket, key, _ := strings.Cut(rest, "/")
		if bucket != f.bucket {
			return "", fmt.Errorf("%w: %s is outside bucket %s", ErrFetch, ref, f.bucket)
		}
		ref = key
	}
	key := strings.TrimLeft(ref, "/")
	if key == "" {
		return "", fmt.Errorf("%w: empty object key", ErrFetch)
	}
	return key, nil
}
