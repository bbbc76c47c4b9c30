package roster

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

// FirestoreSource reads clan members from a Firestore collection, ordered by
// display name so runs are reproducible.
type FirestoreSource struct {
	DB         *firestore.Client
	Collection string
}

var _ Source = (*FirestoreSource)(nil)

func NewFirestoreSource(db *firestore.Client, collection string) *FirestoreSource {
	return &FirestoreSource{DB: db, Collection: collection}
}

func (s *FirestoreSource) Load(ctx context.Context) ([]Player, error) {
	iter := s.DB.Collection(s.Collection).
		OrderBy("destinyUserInfo.displayName", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	members := make([]Member, 0)
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read roster collection %s: %w", s.Collection, err)
		}
		m := Member{}
		if err := doc.DataTo(&m); err != nil {
			return nil, fmt.Errorf("failed to convert doc %s: %w", doc.Ref.ID, err)
		}
		members = append(members, m)
	}
	return Dedupe(toPlayers(members)), nil
}
