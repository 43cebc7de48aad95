package session

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	boltFileName = "session.db"
	openTimeout  = time.Second
)

var sessionBucket = []byte("session")

// BoltStore keeps the session keys in a single bbolt bucket.
type BoltStore struct {
	db *bolt.DB
}

var _ Storage = (*BoltStore)(nil)

// OpenBolt opens (creating when needed) the database at path.
func OpenBolt(path string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(sessionBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init session bucket: %w", err)
	}
	return &BoltStore{db: db}, nil
}

// Load reads the three session keys.
func (b *BoltStore) Load() (Session, error) {
	values := make(map[string]string, 3)
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(sessionBucket)
		if bucket == nil {
			return nil
		}
		for _, key := range []string{KeyAuthToken, KeyIsAuthenticated, KeyUserRole} {
			if v := bucket.Get([]byte(key)); v != nil {
				values[key] = string(v)
			}
		}
		return nil
	})
	if err != nil {
		return Session{}, fmt.Errorf("read session: %w", err)
	}
	return decode(values), nil
}

// Save writes all keys in one transaction. An empty role deletes the key.
func (b *BoltStore) Save(s Session) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(sessionBucket)
		if err != nil {
			return err
		}
		for key, value := range encode(s) {
			if value == "" {
				if err := bucket.Delete([]byte(key)); err != nil {
					return err
				}
				continue
			}
			if err := bucket.Put([]byte(key), []byte(value)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Clear removes every session key.
func (b *BoltStore) Clear() error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(sessionBucket)
		if bucket == nil {
			return nil
		}
		for _, key := range []string{KeyAuthToken, KeyIsAuthenticated, KeyUserRole} {
			if err := bucket.Delete([]byte(key)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Close releases the database file lock.
func (b *BoltStore) Close() error {
	return b.db.Close()
}

func boltPath(dir string) string {
	return filepath.Join(dir, boltFileName)
}
