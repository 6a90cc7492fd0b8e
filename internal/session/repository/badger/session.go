package badger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	badgerdb "github.com/dgraph-io/badger/v4"

	"line-knowledge-assistant/internal/session/repository"
)

func (r *implRepository) Load(_ context.Context, id string) (repository.Record, bool, error) {
	var rec repository.Record
	err := r.db.View(func(txn *badgerdb.Txn) error {
		item, err := txn.Get(key(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if errors.Is(err, badgerdb.ErrKeyNotFound) {
		return repository.Record{}, false, nil
	}
	if err != nil {
		return repository.Record{}, false, fmt.Errorf("failed to load session %s: %w", id, err)
	}
	return rec, true, nil
}

func (r *implRepository) Save(_ context.Context, id string, rec repository.Record, ttl time.Duration) error {
	val, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	err = r.db.Update(func(txn *badgerdb.Txn) error {
		e := badgerdb.NewEntry(key(id), val)
		if ttl > 0 {
			e = e.WithTTL(ttl)
		}
		return txn.SetEntry(e)
	})
	if err != nil {
		return fmt.Errorf("failed to save session %s: %w", id, err)
	}
	return nil
}

func (r *implRepository) Delete(_ context.Context, id string) error {
	err := r.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Delete(key(id))
	})
	if err != nil {
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	return nil
}
