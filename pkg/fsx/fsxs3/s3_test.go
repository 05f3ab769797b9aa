package fsxs3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/Abraxas-365/jobboard/pkg/fsx"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type fakeS3 struct {
	objects      map[string][]byte
	contentTypes map[string]string
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, contentTypes: map[string]string{}}
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	key := aws.ToString(in.Key)
	f.objects[key] = data
	f.contentTypes[key] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3FileSystem(t *testing.T) {
	client := newFakeS3()
	fs := NewS3FileSystem(client, "board-files", "us-east-1", "/uploads/")
	ctx := context.Background()

	name := fs.Join("resumes", "u1", "cv.pdf")
	if name != "resumes/u1/cv.pdf" {
		t.Fatalf("Join() = %q", name)
	}

	if err := fs.WriteFile(ctx, name, []byte("%PDF-1.7")); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, ok := client.objects["uploads/resumes/u1/cv.pdf"]; !ok {
		t.Fatalf("object stored under keys %v", client.objects)
	}
	if ct := client.contentTypes["uploads/resumes/u1/cv.pdf"]; ct != "application/pdf" {
		t.Fatalf("content type = %q, want application/pdf", ct)
	}

	data, err := fs.ReadFile(ctx, name)
	if err != nil || string(data) != "%PDF-1.7" {
		t.Fatalf("ReadFile() = %q, %v", data, err)
	}

	if got := fs.URL(name); got != "https://board-files.s3.us-east-1.amazonaws.com/uploads/resumes/u1/cv.pdf" {
		t.Fatalf("URL() = %q", got)
	}

	if err := fs.DeleteFile(ctx, name); err != nil {
		t.Fatalf("DeleteFile() error = %v", err)
	}
	if _, err := fs.ReadFile(ctx, name); !errors.Is(err, fsx.ErrNotExist) {
		t.Fatalf("ReadFile(deleted) error = %v, want ErrNotExist", err)
	}
}
