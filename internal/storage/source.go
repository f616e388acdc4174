// Package storage loads the text to search from a local file, stdin or an
// S3 object.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	// ErrInvalidRef is returned for malformed s3:// references.
	ErrInvalidRef = errors.New("invalid s3 reference")
	// ErrTooLarge is returned when the input exceeds the configured limit.
	ErrTooLarge = errors.New("input too large")
	// ErrNoObjectStore is returned for s3:// references when the loader
	// has no S3 client.
	ErrNoObjectStore = errors.New("no object store configured")
)

// ObjectGetter is the part of the S3 client the loader needs.
type ObjectGetter interface {
	GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error)
}

// Loader reads a whole input into memory.
type Loader struct {
	objects ObjectGetter
	stdin   io.Reader
	limit   int64
}

// NewLoader returns a Loader that refuses inputs larger than limit bytes.
// objects may be nil when S3 is not configured.
func NewLoader(objects ObjectGetter, stdin io.Reader, limit int64) *Loader {
	return &Loader{objects: objects, stdin: stdin, limit: limit}
}

// ParseS3Ref splits "s3://bucket/key" into its parts.
func ParseS3Ref(ref string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(ref, "s3://")
	if !ok {
		return "", "", fmt.Errorf("%w %q: missing s3:// scheme", ErrInvalidRef, ref)
	}
	bucket, key, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("%w %q: want s3://bucket/key", ErrInvalidRef, ref)
	}
	return bucket, key, nil
}

// Load reads ref: "" or "-" means stdin, "s3://bucket/key" an S3 object,
// anything else a file path.
func (l *Loader) Load(ctx context.Context, ref string) ([]byte, error) {
	switch {
	case ref == "" || ref == "-":
		return l.readAll(l.stdin, "stdin")

	case strings.HasPrefix(ref, "s3://"):
		bucket, key, err := ParseS3Ref(ref)
		if err != nil {
			return nil, err
		}
		if l.objects == nil {
			return nil, fmt.Errorf("%s: %w", ref, ErrNoObjectStore)
		}
		rc, err := l.objects.GetObject(ctx, bucket, key)
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return l.readAll(rc, ref)

	default:
		f, err := os.Open(ref)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return l.readAll(f, ref)
	}
}

func (l *Loader) readAll(r io.Reader, name string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, l.limit+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if int64(len(data)) > l.limit {
		return nil, fmt.Errorf("%s: %w (limit %d bytes)", name, ErrTooLarge, l.limit)
	}
	return data, nil
}
