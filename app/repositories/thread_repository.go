package repositories

import (
	"time"

	"timeline/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerThreadRepository implements ThreadRepository using BadgerDB. Every
// write renews the entry TTL, so an idle session's threads expire together.
type BadgerThreadRepository struct {
	db  *badger.DB
	ttl time.Duration
}

// NewBadgerThreadRepository creates a new BadgerThreadRepository. A written
// thread lives at least ttl and at most one second longer.
func NewBadgerThreadRepository(db *badger.DB, ttl time.Duration) *BadgerThreadRepository {
	return &BadgerThreadRepository{db: db, ttl: entryTTL(ttl)}
}

// Load returns the stored thread, creating the initial one on first access.
func (r *BadgerThreadRepository) Load(sessionID string, postID int) (models.Thread, error) {
	return r.Update(sessionID, postID, func(t models.Thread) (models.Thread, error) {
		return t, nil
	})
}

// Update applies fn to the stored thread inside one transaction. When fn
// fails nothing is written and the current thread is returned with the error.
func (r *BadgerThreadRepository) Update(sessionID string, postID int, fn ThreadFunc) (models.Thread, error) {
	var (
		current models.Thread
		next    models.Thread
		fnErr   error
	)
	key := threadKey(sessionID, postID)

	err := updateWithRetry(r.db, func(txn *badger.Txn) error {
		current = models.NewThread()
		item, err := txn.Get(key)
		switch {
		case err == badger.ErrKeyNotFound:
		case err != nil:
			return err
		default:
			current = models.Thread{}
			if err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &current)
			}); err != nil {
				return err
			}
		}

		next, fnErr = fn(current)
		if fnErr != nil {
			return nil
		}

		data, err := marshalEntity(next)
		if err != nil {
			return err
		}
		return txn.SetEntry(badger.NewEntry(key, data).WithTTL(r.ttl))
	})
	if err != nil {
		return models.Thread{}, err
	}
	if fnErr != nil {
		return current, fnErr
	}
	return next, nil
}

// DeleteSession discards every thread of a session.
func (r *BadgerThreadRepository) DeleteSession(sessionID string) error {
	return updateWithRetry(r.db, func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)

		var keys [][]byte
		prefix := threadPrefix(sessionID)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		it.Close()

		for _, key := range keys {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
}
