// Package cleanup removes the records that journey scenarios leave in a deployed application's
// store.
package cleanup

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/datastore"
	"google.golang.org/api/iterator"

	"github.com/getstarted/bookshelf-journey-tests/config"
	"github.com/getstarted/bookshelf-journey-tests/framework"
)

// Store is the part of a remote store that cleanup uses.
type Store interface {
	// QueryKeys starts a key-only query for every record of kind.
	QueryKeys(ctx context.Context, kind string) KeyCursor
	NewBatch() Batch
	Close() error
}

// KeyCursor streams query results. Next returns iterator.Done after the last key.
type KeyCursor interface {
	Next() (*datastore.Key, error)
}

// Batch collects deletions that are sent to the store in a single request.
type Batch interface {
	Delete(key *datastore.Key)
	Len() int
	Submit(ctx context.Context) error
}

// StoreOpener connects to the store, typically OpenDatastore with fixed arguments.
type StoreOpener func(ctx context.Context) (Store, error)

// CleanupError means test records may have been left behind.
type CleanupError struct {
	Kind string
	Op   string
	Err  error
}

func (e *CleanupError) Error() string {
	return fmt.Sprintf("cleanup of %s records failed during %s: %s", e.Kind, e.Op, e.Err)
}

func (e *CleanupError) Unwrap() error {
	return e.Err
}

type Cleaner struct {
	Store  Store
	Kind   string
	Logger framework.Logger
}

// Run deletes every record of c.Kind and returns how many were deleted. All keys are read before
// anything is deleted, and the deletions are submitted once. A failed submit is not retried.
func (c *Cleaner) Run(ctx context.Context) (int, error) {
	logger := c.Logger
	if logger == nil {
		logger = framework.NullLogger()
	}
	cursor := c.Store.QueryKeys(ctx, c.Kind)
	batch := c.Store.NewBatch()
	for {
		key, err := cursor.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return 0, &CleanupError{Kind: c.Kind, Op: "query", Err: err}
		}
		batch.Delete(key)
	}
	n := batch.Len()
	if n == 0 {
		logger.Printf("No %s records to delete", c.Kind)
		return 0, nil
	}
	logger.Printf("Deleting %d %s records", n, c.Kind)
	if err := batch.Submit(ctx); err != nil {
		return 0, &CleanupError{Kind: c.Kind, Op: fmt.Sprintf("delete of %d keys", n), Err: err}
	}
	return n, nil
}

// ForTarget runs cleanup for a deployed target and does nothing for a local one, whose emulated
// store is discarded with the development server.
func ForTarget(ctx context.Context, target config.Target, open StoreOpener, kind string, logger framework.Logger) (int, error) {
	if logger == nil {
		logger = framework.NullLogger()
	}
	if target.Mode == config.Local {
		logger.Printf("Target is local, skipping cleanup of %s records", kind)
		return 0, nil
	}
	store, err := open(ctx)
	if err != nil {
		return 0, &CleanupError{Kind: kind, Op: "connect", Err: err}
	}
	defer store.Close()
	c := &Cleaner{Store: store, Kind: kind, Logger: logger}
	return c.Run(ctx)
}
