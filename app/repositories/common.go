package repositories

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
)

const (
	// Key prefixes for different entity types
	PostKeyPrefix   = "post:"
	PostIDKeyPrefix = "postid:"
	ThreadKeyPrefix = "thread:"

	// Sequence key for the display position of posts
	PostSeqKey = "seq:post"

	maxTxnAttempts = 5
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// getNextID gets the next available ID for a given sequence key
func getNextID(txn *badger.Txn, seqKey string) (int, error) {
	var id int
	item, err := txn.Get([]byte(seqKey))
	if err == badger.ErrKeyNotFound {
		id = 1
	} else if err != nil {
		return 0, err
	} else {
		err = item.Value(func(val []byte) error {
			id = int(binary.BigEndian.Uint32(val))
			return nil
		})
		if err != nil {
			return 0, err
		}
		id++
	}

	idBytes := make([]byte, 4)
	binary.BigEndian.PutUint32(idBytes, uint32(id))
	if err := txn.Set([]byte(seqKey), idBytes); err != nil {
		return 0, err
	}

	return id, nil
}

// entryTTL converts a session lifetime into a Badger entry TTL. Badger keeps
// expiry as a whole Unix second, so the lifetime is rounded up and padded by
// one second to outlast ttl wherever in the second the write lands.
func entryTTL(ttl time.Duration) time.Duration {
	rounded := ttl.Truncate(time.Second)
	if rounded < ttl {
		rounded += time.Second
	}
	return rounded + time.Second
}

// updateWithRetry runs fn in a read-write transaction, retrying when a
// concurrent transaction touched the same keys.
func updateWithRetry(db *badger.DB, fn func(txn *badger.Txn) error) error {
	var err error
	for attempt := 0; attempt < maxTxnAttempts; attempt++ {
		err = db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
	return errors.Wrapf(err, "giving up after %d attempts", maxTxnAttempts)
}

func postKey(position int) []byte {
	return []byte(fmt.Sprintf("%s%08d", PostKeyPrefix, position))
}

func postIDKey(id int) []byte {
	return []byte(fmt.Sprintf("%s%d", PostIDKeyPrefix, id))
}

func threadPrefix(sessionID string) []byte {
	return []byte(fmt.Sprintf("%s%s:", ThreadKeyPrefix, sessionID))
}

func threadKey(sessionID string, postID int) []byte {
	return []byte(fmt.Sprintf("%s%s:%d", ThreadKeyPrefix, sessionID, postID))
}

// marshalEntity marshals an entity to JSON
func marshalEntity(entity interface{}) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal entity")
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, entity interface{}) error {
	if err := json.Unmarshal(data, entity); err != nil {
		return errors.Wrap(err, "failed to unmarshal entity")
	}
	return nil
}
