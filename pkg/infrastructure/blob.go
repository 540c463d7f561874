package infrastructure

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// LocalBlobStore writes into a directory served by the HTTP layer under
// publicPrefix.
type LocalBlobStore struct {
	dir          string
	publicPrefix string
}

func NewLocalBlobStore(dir, publicPrefix string) *LocalBlobStore {
	return &LocalBlobStore{dir: dir, publicPrefix: "/" + strings.Trim(publicPrefix, "/")}
}

// Dir is the directory uploads land in.
func (s *LocalBlobStore) Dir() string { return s.dir }

func (s *LocalBlobStore) Put(ctx context.Context, name string, r io.Reader, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	dst := filepath.Join(s.dir, filepath.Base(name))
	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", dst, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(dst)
		return "", fmt.Errorf("write %s: %w", dst, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("close %s: %w", dst, err)
	}
	return path.Join(s.publicPrefix, filepath.Base(name)), nil
}

// GCSBlobStore uploads into a Cloud Storage bucket.
type GCSBlobStore struct {
	client     *storage.Client
	bucket     string
	publicBase string
}

// NewGCSBlobStore talks to the emulator without credentials when
// emulatorHost is set, else uses application default credentials.
func NewGCSBlobStore(ctx context.Context, bucket, publicBase, emulatorHost string) (*GCSBlobStore, error) {
	var opts []option.ClientOption
	if host := strings.TrimRight(strings.TrimSpace(emulatorHost), "/"); host != "" {
		_ = os.Setenv("STORAGE_EMULATOR_HOST", host)
		opts = append(opts, option.WithoutAuthentication())
	} else {
		opts = append(opts, option.WithScopes(storage.ScopeReadWrite))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	if publicBase == "" {
		publicBase = "https://storage.googleapis.com/" + bucket
	}
	return &GCSBlobStore{client: client, bucket: bucket, publicBase: strings.TrimRight(publicBase, "/")}, nil
}

func (s *GCSBlobStore) Put(ctx context.Context, name string, r io.Reader, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := s.client.Bucket(s.bucket).Object(name).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to write data to GCS: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to close GCS writer: %w", err)
	}
	return s.publicBase + "/" + name, nil
}

func (s *GCSBlobStore) Close() error { return s.client.Close() }
