package assoc

import (
	"context"
	"encoding/json"
	"errors"

	badger "github.com/dgraph-io/badger/v4"
)

// badgerStore keeps the map in an embedded badger database, for single-node
// deployments that run without redis.
type badgerStore struct{ db *badger.DB }

// NewBadgerStore opens (or creates) a badger database at path.
// Close releases the underlying file locks; callers own the lifecycle.
func NewBadgerStore(path string) (Store, func() error, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, nil, err
	}
	return &badgerStore{db: db}, db.Close, nil
}

func (s *badgerStore) Load(_ context.Context) (Map, error) {
	var m Map
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(MapKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			m = make(Map)
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &m)
		})
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (s *badgerStore) Save(_ context.Context, m Map) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(MapKey), data)
	})
}
