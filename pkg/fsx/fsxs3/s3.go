package fsxs3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"

	"github.com/Abraxas-365/jobboard/pkg/fsx"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3API is the subset of the S3 client used here
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3FileSystem stores files in one bucket under a key prefix
type S3FileSystem struct {
	client  S3API
	bucket  string
	prefix  string
	baseURL string
}

var _ fsx.FileSystem = (*S3FileSystem)(nil)

// NewS3FileSystem creates an S3-backed file system. Public URLs use the
// virtual-hosted bucket address for region.
func NewS3FileSystem(client S3API, bucket, region, prefix string) *S3FileSystem {
	return &S3FileSystem{
		client:  client,
		bucket:  bucket,
		prefix:  strings.Trim(prefix, "/"),
		baseURL: fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region),
	}
}

func (f *S3FileSystem) key(name string) string {
	if f.prefix == "" {
		return strings.TrimPrefix(name, "/")
	}
	return f.prefix + "/" + strings.TrimPrefix(name, "/")
}

func (f *S3FileSystem) Join(elem ...string) string {
	return fsx.Join(elem...)
}

func (f *S3FileSystem) URL(name string) string {
	return f.baseURL + "/" + f.key(name)
}

func (f *S3FileSystem) WriteFile(ctx context.Context, name string, data []byte) error {
	return f.put(ctx, name, bytes.NewReader(data))
}

func (f *S3FileSystem) put(ctx context.Context, name string, r io.Reader) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(f.key(name)),
		Body:   r,
	}
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		input.ContentType = aws.String(ct)
	}

	if _, err := f.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("put object %s: %w", name, err)
	}
	return nil
}

func (f *S3FileSystem) ReadFile(ctx context.Context, name string) ([]byte, error) {
	stream, err := f.ReadFileStream(ctx, name)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("read object %s: %w", name, err)
	}
	return data, nil
}

func (f *S3FileSystem) ReadFileStream(ctx context.Context, name string) (io.ReadCloser, error) {
	out, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(f.key(name)),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, fmt.Errorf("object %s: %w", name, fsx.ErrNotExist)
		}
		return nil, fmt.Errorf("get object %s: %w", name, err)
	}
	return out.Body, nil
}

func (f *S3FileSystem) DeleteFile(ctx context.Context, name string) error {
	_, err := f.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(f.key(name)),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", name, err)
	}
	return nil
}
