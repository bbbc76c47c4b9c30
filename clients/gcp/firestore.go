package gcp

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
)

// CreateFirestore opens a client for projectID. Callers close it.
func CreateFirestore(ctx context.Context, projectID string) (*firestore.Client, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	return client, nil
}
