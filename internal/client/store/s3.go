package store

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// objectGetter is the slice of the S3 API the fetcher needs.
type objectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Config selects an S3-compatible endpoint for s3://bucket/key refs.
// Empty AccessKey falls back to the default AWS credential chain.
type S3Config struct {
	Region       string
	Endpoint     string
	AccessKey    string
	SecretKey    string
	UsePathStyle bool
}

// S3Fetcher reads content refs of the form s3://bucket/key.
type S3Fetcher struct {
	client objectGetter
}

func NewS3Fetcher(ctx context.Context, cfg S3Config) (*S3Fetcher, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return &S3Fetcher{client: client}, nil
}

// parseS3Ref splits s3://bucket/key into its parts.
func parseS3Ref(ref string) (bucket, key string, err error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidRef, err)
	}
	if !strings.EqualFold(u.Scheme, "s3") {
		return "", "", fmt.Errorf("%w: scheme %q", ErrUnsupportedRef, u.Scheme)
	}
	bucket = u.Host
	key = strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("%w: %q needs bucket and key", ErrInvalidRef, ref)
	}
	return bucket, key, nil
}

func (f *S3Fetcher) Fetch(ctx context.Context, ref string) (io.ReadCloser, error) {
	bucket, key, err := parseS3Ref(ref)
	if err != nil {
		return nil, err
	}

	out, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 get %s/%s: %w", bucket, key, err)
	}
	return out.Body, nil
}
