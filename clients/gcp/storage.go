package gcp

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"cloud.google.com/go/storage"
	"github.com/rs/zerolog/log"
)

const downloadTimeout = 2 * time.Minute

func CreateStorage(ctx context.Context) (*storage.Client, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage.NewClient: %w", err)
	}
	return client, nil
}

// DownloadFile copies an object to destFileName, replacing it only once the
// whole object has been read.
func DownloadFile(ctx context.Context, client *storage.Client, bucketName, objectName, destFileName string) error {
	ctx, cancel := context.WithTimeout(ctx, downloadTimeout)
	defer cancel()

	if err := os.MkdirAll(filepath.Dir(destFileName), 0755); err != nil {
		return fmt.Errorf("os.MkdirAll: %w", err)
	}
	f, err := os.CreateTemp(filepath.Dir(destFileName), filepath.Base(destFileName)+".*.tmp")
	if err != nil {
		return fmt.Errorf("os.CreateTemp: %w", err)
	}
	defer os.Remove(f.Name())

	rc, err := client.Bucket(bucketName).Object(objectName).NewReader(ctx)
	if err != nil {
		f.Close()
		return fmt.Errorf("Object(%q).NewReader: %w", objectName, err)
	}
	defer rc.Close()

	if _, err := io.Copy(f, rc); err != nil {
		f.Close()
		return fmt.Errorf("io.Copy: %w", err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("f.Close: %w", err)
	}
	if err := os.Rename(f.Name(), destFileName); err != nil {
		return fmt.Errorf("os.Rename: %w", err)
	}

	log.Debug().Str("objectName", objectName).Str("destFileName", destFileName).Msg("Blob downloaded successfully")
	return nil
}
