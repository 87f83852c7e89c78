package sink

import (
	"context"
	"fmt"
	"strconv"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

const DefaultFirestoreCollection = "rankings"

type documentStore interface {
	Merge(ctx context.Context, collection, id string, data map[string]interface{}) error
	Close() error
}

// Firestore mirrors each user's rankings into a document keyed by user id. Documents
// are merged, so groups absent from a snapshot keep their previous value.
type Firestore struct {
	store      documentStore
	collection string
}

func NewFirestore(store documentStore, collection string) *Firestore {
	if collection == "" {
		collection = DefaultFirestoreCollection
	}
	return &Firestore{
		store:      store,
		collection: collection,
	}
}

func (f *Firestore) Name() string {
	return "firestore"
}

func (f *Firestore) Publish(ctx context.Context, snapshot Snapshot) error {
	groups := make(map[string]interface{}, len(snapshot.MuscleGroups))
	for group, rank := range snapshot.MuscleGroups {
		groups[group] = map[string]interface{}{
			"mmr_score": rank.MMRScore,
			"rank_tier": rank.RankTier,
		}
	}

	data := map[string]interface{}{
		"user_id":       snapshot.UserID,
		"muscle_groups": groups,
		"timestamp":     snapshot.Timestamp,
		"last_event_id": snapshot.EventID,
	}
	if err := f.store.Merge(ctx, f.collection, strconv.Itoa(snapshot.UserID), data); err != nil {
		return fmt.Errorf("merge firestore document: %w", err)
	}
	return nil
}

func (f *Firestore) Close() error {
	return f.store.Close()
}

// FirestoreDocuments adapts a firestore client to the sink's document store.
type FirestoreDocuments struct {
	client *firestore.Client
}

// NewFirestoreDocuments connects to the project. An empty credentialsFile falls back
// to application default credentials.
func NewFirestoreDocuments(ctx context.Context, projectID, credentialsFile string) (*FirestoreDocuments, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}
	return &FirestoreDocuments{
		client: client,
	}, nil
}

func (d *FirestoreDocuments) Merge(ctx context.Context, collection, id string, data map[string]interface{}) error {
	_, err := d.client.Collection(collection).Doc(id).Set(ctx, data, firestore.MergeAll)
	return err
}

func (d *FirestoreDocuments) Close() error {
	return d.client.Close()
}
