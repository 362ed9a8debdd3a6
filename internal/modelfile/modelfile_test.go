package modelfile

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const payload = "-1.0\ta b\t-0.3\n-2.0\tb\n"

func writeFile(t *testing.T, name string, wrap func(io.Writer) io.WriteCloser) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := wrap(f)
	_, err = io.WriteString(w, payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return path
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func TestOpenCompressed(t *testing.T) {
	tests := []struct {
		name string
		wrap func(io.Writer) io.WriteCloser
	}{
		{"lm.txt", func(w io.Writer) io.WriteCloser { return nopWriteCloser{w} }},
		{"lm.txt.gz", func(w io.Writer) io.WriteCloser { return gzip.NewWriter(w) }},
		{"lm.txt.zst", func(w io.Writer) io.WriteCloser {
			enc, _ := zstd.NewWriter(w)
			return enc
		}},
		{"lm.txt.lz4", func(w io.Writer) io.WriteCloser { return lz4.NewWriter(w) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.name, tt.wrap)
			rc, err := Open(context.Background(), path)
			require.NoError(t, err)
			defer rc.Close()

			got, err := io.ReadAll(rc)
			require.NoError(t, err)
			assert.Equal(t, payload, string(got))
		})
	}
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestBase(t *testing.T) {
	assert.Equal(t, "lm.arpa", Base("lm.arpa.gz"))
	assert.Equal(t, "lm.arpa", Base("lm.arpa.zst"))
	assert.Equal(t, "lm.arpa", Base("lm.arpa.lz4"))
	assert.Equal(t, "lm.txt", Base("lm.txt"))
}

func TestSplitS3(t *testing.T) {
	bucket, key, err := SplitS3("s3://models/lm/de.txt.gz")
	require.NoError(t, err)
	assert.Equal(t, "models", bucket)
	assert.Equal(t, "lm/de.txt.gz", key)

	for _, bad := range []string{"models/x", "s3://", "s3://bucket", "s3://bucket/"} {
		_, _, err := SplitS3(bad)
		assert.Error(t, err, bad)
	}
}

type fakeS3 struct {
	objects map[string][]byte
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, errors.New("no such key")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func TestOpenS3(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := io.WriteString(zw, payload)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	fake := &fakeS3{objects: map[string][]byte{"models/lm.txt.gz": buf.Bytes()}}
	orig := NewClient
	NewClient = func(context.Context) (Client, error) { return fake, nil }
	t.Cleanup(func() { NewClient = orig })

	rc, err := Open(context.Background(), "s3://models/lm.txt.gz")
	require.NoError(t, err)
	defer rc.Close()
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, payload, string(got))

	_, err = Open(context.Background(), "s3://models/missing.txt")
	assert.Error(t, err)
}
