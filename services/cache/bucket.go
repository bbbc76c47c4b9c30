package cache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
)

// BucketStore keeps match records as objects in a Cloud Storage bucket.
type BucketStore struct {
	bucket *storage.BucketHandle
	prefix string
}

var _ Store = (*BucketStore)(nil)

func NewBucketStore(client *storage.Client, bucket, prefix string) *BucketStore {
	return &BucketStore{
		bucket: client.Bucket(bucket),
		prefix: prefix,
	}
}

func (s *BucketStore) objectName(matchID string) string {
	return s.prefix + matchID + ".json"
}

func (s *BucketStore) Get(ctx context.Context, matchID string) ([]byte, error) {
	name := s.objectName(matchID)
	rc, err := s.bucket.Object(name).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("Object(%q).NewReader: %w", name, err)
	}
	defer rc.Close()

	b, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %q: %w", name, err)
	}
	return b, nil
}

// Put only creates the object when it does not exist yet.
func (s *BucketStore) Put(ctx context.Context, matchID string, raw []byte) error {
	name := s.objectName(matchID)
	w := s.bucket.Object(name).If(storage.Conditions{DoesNotExist: true}).NewWriter(ctx)
	w.ContentType = "application/json"

	if _, err := w.Write(raw); err != nil {
		w.Close()
		return fmt.Errorf("failed to write object %q: %w", name, err)
	}
	if err := w.Close(); err != nil {
		if isPreconditionFailed(err) {
			return nil
		}
		return fmt.Errorf("failed to close object %q: %w", name, err)
	}
	return nil
}

// isPreconditionFailed reports a write lost to an object that already exists.
func isPreconditionFailed(err error) bool {
	var apiErr *googleapi.Error
	return errors.As(err, &apiErr) && apiErr.Code == http.StatusPreconditionFailed
}
