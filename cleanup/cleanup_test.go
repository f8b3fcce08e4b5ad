package cleanup

import (
	"context"
	"errors"
	"testing"

	"cloud.google.com/go/datastore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/iterator"

	"github.com/getstarted/bookshelf-journey-tests/config"
)

type memoryStore struct {
	records   map[string][]*datastore.Key
	queryErr  error
	submitErr error
	submits   int
	closed    bool
}

func newMemoryStore(kind string, ids ...int64) *memoryStore {
	s := &memoryStore{records: map[string][]*datastore.Key{}}
	for _, id := range ids {
		s.records[kind] = append(s.records[kind], datastore.IDKey(kind, id, nil))
	}
	return s
}

func (s *memoryStore) QueryKeys(ctx context.Context, kind string) KeyCursor {
	return &sliceCursor{keys: append([]*datastore.Key(nil), s.records[kind]...), err: s.queryErr}
}

func (s *memoryStore) NewBatch() Batch {
	return &memoryBatch{store: s}
}

func (s *memoryStore) Close() error {
	s.closed = true
	return nil
}

type sliceCursor struct {
	keys []*datastore.Key
	err  error
}

func (c *sliceCursor) Next() (*datastore.Key, error) {
	if len(c.keys) == 0 {
		if c.err != nil {
			return nil, c.err
		}
		return nil, iterator.Done
	}
	k := c.keys[0]
	c.keys = c.keys[1:]
	return k, nil
}

type memoryBatch struct {
	store *memoryStore
	keys  []*datastore.Key
}

func (b *memoryBatch) Delete(key *datastore.Key) { b.keys = append(b.keys, key) }
func (b *memoryBatch) Len() int                  { return len(b.keys) }

func (b *memoryBatch) Submit(ctx context.Context) error {
	b.store.submits++
	if b.store.submitErr != nil {
		return b.store.submitErr
	}
	for _, k := range b.keys {
		remaining := b.store.records[k.Kind][:0]
		for _, existing := range b.store.records[k.Kind] {
			if !existing.Equal(k) {
				remaining = append(remaining, existing)
			}
		}
		b.store.records[k.Kind] = remaining
	}
	return nil
}

func TestCleanerDeletesAllKeysOfKindInOneBatch(t *testing.T) {
	store := newMemoryStore("Book2", 1, 2, 3)
	store.records["Other"] = []*datastore.Key{datastore.IDKey("Other", 9, nil)}

	n, err := (&Cleaner{Store: store, Kind: "Book2"}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, n)
	assert.Equal(t, 1, store.submits)
	assert.Len(t, store.records["Book2"], 0)
	assert.Len(t, store.records["Other"], 1)
}

func TestCleanerOnEmptyStoreSubmitsNothing(t *testing.T) {
	store := newMemoryStore("Book2")

	n, err := (&Cleaner{Store: store, Kind: "Book2"}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 0, store.submits)
}

func TestCleanerIsIdempotent(t *testing.T) {
	store := newMemoryStore("Book2", 1, 2)
	c := &Cleaner{Store: store, Kind: "Book2"}

	n, err := c.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = c.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 1, store.submits)
}

func TestCleanerSubmitFailureIsNotRetried(t *testing.T) {
	store := newMemoryStore("Book2", 1)
	store.submitErr = errors.New("deadline exceeded")

	_, err := (&Cleaner{Store: store, Kind: "Book2"}).Run(context.Background())

	var cleanupErr *CleanupError
	require.True(t, errors.As(err, &cleanupErr))
	assert.Equal(t, "Book2", cleanupErr.Kind)
	assert.ErrorIs(t, err, store.submitErr)
	assert.Equal(t, 1, store.submits)
	assert.Len(t, store.records["Book2"], 1)
}

func TestCleanerQueryFailureDeletesNothing(t *testing.T) {
	store := newMemoryStore("Book2", 1, 2)
	store.queryErr = errors.New("permission denied")

	_, err := (&Cleaner{Store: store, Kind: "Book2"}).Run(context.Background())

	var cleanupErr *CleanupError
	require.True(t, errors.As(err, &cleanupErr))
	assert.Equal(t, "query", cleanupErr.Op)
	assert.Equal(t, 0, store.submits)
}

func TestForTargetSkipsLocalTarget(t *testing.T) {
	opened := false
	open := func(context.Context) (Store, error) {
		opened = true
		return newMemoryStore("Book2", 1), nil
	}

	n, err := ForTarget(context.Background(), config.NewTarget("", ""), open, "Book2", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.False(t, opened)
}

func TestForTargetCleansDeployedTarget(t *testing.T) {
	store := newMemoryStore("Book2", 1, 2)
	open := func(context.Context) (Store, error) { return store, nil }

	n, err := ForTarget(context.Background(), config.NewTarget("my-app", "v1"), open, "Book2", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.True(t, store.closed)
}

func TestForTargetConnectFailure(t *testing.T) {
	open := func(context.Context) (Store, error) { return nil, errors.New("no credentials") }

	_, err := ForTarget(context.Background(), config.NewTarget("my-app", "v1"), open, "Book2", nil)

	var cleanupErr *CleanupError
	require.True(t, errors.As(err, &cleanupErr))
	assert.Equal(t, "connect", cleanupErr.Op)
}
