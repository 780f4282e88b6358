package assets

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// NewGCSClient creates a Google Cloud Storage client. If credsPath is empty,
// Application Default Credentials are used.
func NewGCSClient(ctx context.Context, credsPath string) (*storage.Client, error) {
	if credsPath == "" {
		return storage.NewClient(ctx)
	}
	return storage.NewClient(ctx, option.WithCredentialsFile(credsPath))
}

// GCSStore stores image assets as objects in a single bucket. Locators are
// the public object URLs; the object path is recoverable from the locator.
type GCSStore struct {
	client *storage.Client
	bucket string
}

func NewGCSStore(client *storage.Client, bucket string) *GCSStore {
	return &GCSStore{client: client, bucket: bucket}
}

// Put writes the full object before it becomes addressable: a failed copy
// closes the writer without committing, so no partially written object is
// ever visible under the returned locator.
func (s *GCSStore) Put(ctx context.Context, r io.Reader, objectPath, contentType string) (string, error) {
	if s.client == nil || s.bucket == "" {
		return "", errors.New("object storage not configured")
	}
	wc := s.client.Bucket(s.bucket).Object(objectPath).NewWriter(ctx)
	wc.ContentType = contentType
	wc.ChunkSize = 0 // disable chunking for small files
	if _, err := io.Copy(wc, r); err != nil {
		_ = wc.Close()
		return "", err
	}
	if err := wc.Close(); err != nil {
		return "", err
	}
	return s.publicURL(objectPath), nil
}

// Delete removes the object behind the locator. A locator that no longer
// resolves is treated as already absent.
func (s *GCSStore) Delete(ctx context.Context, locator string) error {
	if s.client == nil || s.bucket == "" {
		return errors.New("object storage not configured")
	}
	objectPath, ok := s.objectPath(locator)
	if !ok {
		return nil
	}
	err := s.client.Bucket(s.bucket).Object(objectPath).Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil
	}
	return err
}

func (s *GCSStore) publicURL(objectPath string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, objectPath)
}

func (s *GCSStore) objectPath(locator string) (string, bool) {
	prefix := fmt.Sprintf("https://storage.googleapis.com/%s/", s.bucket)
	if len(locator) <= len(prefix) || locator[:len(prefix)] != prefix {
		return "", false
	}
	return locator[len(prefix):], true
}
