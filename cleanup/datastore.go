package cleanup

import (
	"context"
	"fmt"

	"cloud.google.com/go/datastore"
	"google.golang.org/api/option"
)

// DatastoreStore is a Store backed by Cloud Datastore. DATASTORE_EMULATOR_HOST is honored by the
// underlying client.
type DatastoreStore struct {
	client *datastore.Client
}

// OpenDatastore connects to projectID, or to the project detected from the environment when
// projectID is empty.
func OpenDatastore(ctx context.Context, projectID string, opts ...option.ClientOption) (*DatastoreStore, error) {
	if projectID == "" {
		projectID = datastore.DetectProjectID
	}
	client, err := datastore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("could not connect to datastore: %w", err)
	}
	return &DatastoreStore{client: client}, nil
}

func (s *DatastoreStore) QueryKeys(ctx context.Context, kind string) KeyCursor {
	return keyIterator{it: s.client.Run(ctx, datastore.NewQuery(kind).KeysOnly())}
}

func (s *DatastoreStore) NewBatch() Batch {
	return &deleteBatch{client: s.client}
}

func (s *DatastoreStore) Close() error {
	return s.client.Close()
}

type keyIterator struct {
	it *datastore.Iterator
}

func (k keyIterator) Next() (*datastore.Key, error) {
	return k.it.Next(nil)
}

// deleteBatch sends its keys with one DeleteMulti call. Datastore rejects more than 500 keys in
// one request, far more than a run creates.
type deleteBatch struct {
	client *datastore.Client
	keys   []*datastore.Key
}

func (b *deleteBatch) Delete(key *datastore.Key) {
	b.keys = append(b.keys, key)
}

func (b *deleteBatch) Len() int {
	return len(b.keys)
}

func (b *deleteBatch) Submit(ctx context.Context) error {
	if len(b.keys) == 0 {
		return nil
	}
	return b.client.DeleteMulti(ctx, b.keys)
}
