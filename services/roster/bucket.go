package roster

import (
	"context"
	"fmt"

	"clanTracker/clients/gcp"

	"cloud.google.com/go/storage"
)

// BucketSource downloads the member export from Cloud Storage before every
// load, so a run always sees the latest roster.
type BucketSource struct {
	Client *storage.Client
	Bucket string
	Object string
	// Path is where the downloaded export is kept between runs.
	Path string
}

var _ Source = (*BucketSource)(nil)

func NewBucketSource(client *storage.Client, bucket, object, path string) *BucketSource {
	return &BucketSource{Client: client, Bucket: bucket, Object: object, Path: path}
}

func (s *BucketSource) Load(ctx context.Context) ([]Player, error) {
	if err := gcp.DownloadFile(ctx, s.Client, s.Bucket, s.Object, s.Path); err != nil {
		return nil, fmt.Errorf("failed to download roster gs://%s/%s: %w", s.Bucket, s.Object, err)
	}
	return NewFileSource(s.Path).Load(ctx)
}
