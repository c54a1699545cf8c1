package store

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

// bucketLocalStorage holds every key the application persists
var bucketLocalStorage = []byte("local_storage")

// dbFileName is the bolt file created inside each origin directory
const dbFileName = "flicks.db"

// LocalStore implements domain.KeyValueStore using BoltDB.
// Like browser local storage, data is partitioned by origin: each catalog
// origin gets its own database file.
type LocalStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

// NewLocalStore opens (or creates) the store for an origin under baseDir.
// An empty baseDir yields a memory-only store that forgets everything on Close.
func NewLocalStore(baseDir, origin string) (*LocalStore, error) {
	if baseDir == "" {
		// Memory-only mode (no persistence)
		return &LocalStore{cache: make(map[string][]byte)}, nil
	}

	dir := baseDir
	if origin != "" {
		dir = filepath.Join(baseDir, hashOrigin(origin))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFileName)
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketLocalStorage)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &LocalStore{db: db, cache: make(map[string][]byte)}, nil
}

func hashOrigin(origin string) string {
	normalized := strings.TrimRight(strings.ToLower(origin), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

// Path returns the database file path, or "" in memory-only mode
func (s *LocalStore) Path() string {
	if s.db == nil {
		return ""
	}
	return s.db.Path()
}

func (s *LocalStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get returns a copy of the value stored under key. A missing key is not an
// error; a failed read is.
func (s *LocalStore) Get(key string) ([]byte, bool, error) {
	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return cloneBytes(data), true, nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return nil, false, nil
	}

	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketLocalStorage)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			// Bolt memory is only valid inside the transaction
			data = cloneBytes(v)
		}
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %q: %w", key, err)
	}

	if data == nil {
		return nil, false, nil
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()

	return cloneBytes(data), true, nil
}

// Set overwrites the value stored under key. The write is committed before Set returns.
func (s *LocalStore) Set(key string, value []byte) error {
	data := cloneBytes(value)

	if s.db != nil {
		err := s.db.Update(func(tx *bolt.Tx) error {
			b := tx.Bucket(bucketLocalStorage)
			return b.Put([]byte(key), data)
		})
		if err != nil {
			return fmt.Errorf("failed to write %q: %w", key, err)
		}
	}

	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()

	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *LocalStore) Delete(key string) error {
	s.mu.Lock()
	delete(s.cache, key)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketLocalStorage)
		if b == nil {
			return nil
		}
		return b.Delete([]byte(key))
	})
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
