package repositories

import (
	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
)

// Open opens the Badger store. With an empty path nothing touches the disk,
// which is how the server runs: comments do not outlive the process.
func Open(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithNumVersionsToKeep(1).
		WithNumGoroutines(1)
	if path == "" {
		opts = opts.WithInMemory(true)
	} else {
		opts = opts.WithSyncWrites(false)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "open badger")
	}
	return db, nil
}
