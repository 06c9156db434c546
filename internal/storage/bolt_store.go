package storage

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/samvad-hq/samvad-comments/pkg/comments"
	bolt "go.etcd.io/bbolt"
)

const (
	commentBucket = "comments"
	idKeyBytes    = 8
)

// boltStore implements a Store backed by BoltDB.
type boltStore struct {
	db *bolt.DB
}

// openBolt initializes a BoltDB-backed Store.
func openBolt(path string) (Store, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(commentBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("init bucket: %w", err)
	}

	return &boltStore{db: db}, nil
}

// Close closes the BoltDB store.
func (b *boltStore) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

// Save upserts records by id in a single transaction. Records without an id are skipped.
func (b *boltStore) Save(records ...comments.Comment) error {
	if b == nil || b.db == nil || len(records) == 0 {
		return nil
	}

	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(commentBucket))
		if bucket == nil {
			return fmt.Errorf("comment bucket missing")
		}
		for _, rec := range records {
			id, ok := rec.ID()
			if !ok {
				continue
			}
			value, err := json.Marshal(rec)
			if err != nil {
				return fmt.Errorf("marshal comment %d: %w", id, err)
			}
			if err := bucket.Put(encodeID(id), value); err != nil {
				return fmt.Errorf("put comment %d: %w", id, err)
			}
		}
		return nil
	})
}

// All returns every archived comment ordered by id.
func (b *boltStore) All() ([]comments.Comment, error) {
	if b == nil || b.db == nil {
		return nil, nil
	}

	var out []comments.Comment
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(commentBucket))
		if bucket == nil {
			return fmt.Errorf("comment bucket missing")
		}
		return bucket.ForEach(func(k, v []byte) error {
			var rec comments.Comment
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("decode comment %x: %w", k, err)
			}
			out = append(out, rec)
			return nil
		})
	})
	return out, err
}

// encodeID keys records big-endian so cursor order is id order. Negative ids
// are flipped on the sign bit to sort before positive ones.
func encodeID(id int64) []byte {
	buf := make([]byte, idKeyBytes)
	binary.BigEndian.PutUint64(buf, uint64(id)^(1<<63))
	return buf
}
