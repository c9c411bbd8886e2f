// Package store persists session blobs under string keys.
package store

import (
	"errors"
	"fmt"
	"sync"

	badgerdb "github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"
)

var ErrClosed = errors.New("store closed")

// Store is a key/value persistence provider. Get reports ok=false for a
// missing key.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
	Close() error
}

// Badger keeps values in a badger database directory.
type Badger struct {
	db *badgerdb.DB
}

// OpenBadger opens (or creates) the database at dir. An empty dir opens an
// in-memory database.
func OpenBadger(dir string, log *logrus.Logger) (*Badger, error) {
	opts := badgerdb.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.ValueLogFileSize = 16 << 20
	if log != nil {
		opts = opts.WithLogger(log.WithField("component", "badger"))
	} else {
		opts = opts.WithLogger(nil)
	}
	db, err := badgerdb.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open store %q: %w", dir, err)
	}
	return &Badger{db: db}, nil
}

func (b *Badger) Get(key string) (string, bool, error) {
	var val []byte
	err := b.db.View(func(txn *badgerdb.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badgerdb.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return string(val), true, nil
}

func (b *Badger) Set(key, value string) error {
	err := b.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (b *Badger) Remove(key string) error {
	err := b.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("remove %q: %w", key, err)
	}
	return nil
}

func (b *Badger) Close() error { return b.db.Close() }

// Memory is a map-backed store for tests and throwaway sessions.
type Memory struct {
	mu     sync.Mutex
	data   map[string]string
	closed bool
}

func NewMemory() *Memory { return &Memory{data: map[string]string{}} }

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return "", false, ErrClosed
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.data[key] = value
	return nil
}

func (m *Memory) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	delete(m.data, key)
	return nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
