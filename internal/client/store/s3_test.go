package store

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjectGetter struct {
	bucket, key string
	err         error
}

func (f *fakeObjectGetter) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.bucket = aws.ToString(in.Bucket)
	f.key = aws.ToString(in.Key)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader("object bytes"))}, nil
}

func TestParseS3Ref(t *testing.T) {
	bucket, key, err := parseS3Ref("s3://vault/users/2026/10/report.pdf")
	require.NoError(t, err)
	assert.Equal(t, "vault", bucket)
	assert.Equal(t, "users/2026/10/report.pdf", key)

	_, _, err = parseS3Ref("s3://vault/")
	require.ErrorIs(t, err, ErrInvalidRef)

	_, _, err = parseS3Ref("http://vault/key")
	require.ErrorIs(t, err, ErrUnsupportedRef)
}

func TestS3Fetcher_Fetch(t *testing.T) {
	g := &fakeObjectGetter{}
	f := &S3Fetcher{client: g}

	rc, err := f.Fetch(context.Background(), "s3://vault/a/b.txt")
	require.NoError(t, err)
	defer rc.Close()

	b, _ := io.ReadAll(rc)
	assert.Equal(t, "object bytes", string(b))
	assert.Equal(t, "vault", g.bucket)
	assert.Equal(t, "a/b.txt", g.key)
}

func TestS3Fetcher_FetchError(t *testing.T) {
	f := &S3Fetcher{client: &fakeObjectGetter{err: errors.New("NoSuchKey")}}

	_, err := f.Fetch(context.Background(), "s3://vault/a/b.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NoSuchKey")
}

func TestNewS3Fetcher_StaticCredentials(t *testing.T) {
	f, err := NewS3Fetcher(context.Background(), S3Config{
		Region:       "us-east-1",
		Endpoint:     "http://127.0.0.1:9000",
		AccessKey:    "admin",
		SecretKey:    "secretpassword",
		UsePathStyle: true,
	})
	require.NoError(t, err)
	require.NotNil(t, f.client)
}
