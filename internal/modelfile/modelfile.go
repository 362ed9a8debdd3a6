// Package modelfile opens language model files from local disk or S3,
// decompressing them according to their extension.
package modelfile

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

const s3Scheme = "s3://"

// Client is the subset of the S3 API used to fetch models.
type Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// NewClient builds the S3 client used for s3:// paths. Tests replace it.
var NewClient = func(ctx context.Context) (Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return s3.NewFromConfig(cfg), nil
}

// Open returns a reader over the decompressed contents of path.
func Open(ctx context.Context, path string) (io.ReadCloser, error) {
	raw, err := openRaw(ctx, path)
	if err != nil {
		return nil, err
	}
	rc, err := decompress(path, raw)
	if err != nil {
		raw.Close()
		return nil, err
	}
	return rc, nil
}

// Base strips a recognised compression suffix from path.
func Base(path string) string {
	for _, ext := range []string{".gz", ".zst", ".lz4"} {
		if strings.HasSuffix(path, ext) {
			return strings.TrimSuffix(path, ext)
		}
	}
	return path
}

// SplitS3 splits an s3://bucket/key URI.
func SplitS3(uri string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(uri, s3Scheme)
	if !ok {
		return "", "", fmt.Errorf("not an s3 uri: %q", uri)
	}
	bucket, key, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("s3 uri needs bucket and key: %q", uri)
	}
	return bucket, key, nil
}

func openRaw(ctx context.Context, path string) (io.ReadCloser, error) {
	if !strings.HasPrefix(path, s3Scheme) {
		return os.Open(path)
	}
	bucket, key, err := SplitS3(path)
	if err != nil {
		return nil, err
	}
	client, err := NewClient(ctx)
	if err != nil {
		return nil, err
	}
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get s3 object %s: %w", path, err)
	}
	return out.Body, nil
}

// stacked closes the decompressor and then the underlying reader.
type stacked struct {
	io.Reader
	closers []func() error
}

func (s *stacked) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func decompress(path string, raw io.ReadCloser) (io.ReadCloser, error) {
	switch {
	case strings.HasSuffix(path, ".gz"):
		zr, err := gzip.NewReader(raw)
		if err != nil {
			return nil, fmt.Errorf("gzip %s: %w", path, err)
		}
		return &stacked{Reader: zr, closers: []func() error{zr.Close, raw.Close}}, nil
	case strings.HasSuffix(path, ".zst"):
		dec, err := zstd.NewReader(raw)
		if err != nil {
			return nil, fmt.Errorf("zstd %s: %w", path, err)
		}
		return &stacked{Reader: dec, closers: []func() error{
			func() error { dec.Close(); return nil },
			raw.Close,
		}}, nil
	case strings.HasSuffix(path, ".lz4"):
		return &stacked{Reader: lz4.NewReader(raw), closers: []func() error{raw.Close}}, nil
	}
	return raw, nil
}
