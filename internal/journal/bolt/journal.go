// Package bolt persists the submission journal in a local bbolt file.
package bolt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	bbolt "go.etcd.io/bbolt"

	"github.com/goodnatureofminers/txsubmitter/internal/journal"
	"github.com/goodnatureofminers/txsubmitter/internal/model"
)

var bucketSubmissions = []byte("submissions")

const openTimeout = time.Second

// Journal is safe for concurrent use. A file can be held by one process at a time.
type Journal struct {
	db *bbolt.DB
}

// Open opens or creates the journal file at path.
func Open(path string) (*Journal, error) {
	if path == "" {
		return nil, errors.New("journal path is required")
	}
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("open journal %s: %w", path, err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSubmissions)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create submissions bucket: %w", err)
	}
	return &Journal{db: db}, nil
}

func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) Lookup(ctx context.Context, key string) (model.Submission, bool, error) {
	if err := ctx.Err(); err != nil {
		return model.Submission{}, false, err
	}

	var (
		s     model.Submission
		found bool
	)
	err := j.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketSubmissions).Get([]byte(key))
		if v == nil {
			return nil
		}
		found = true
		return json.Unmarshal(v, &s)
	})
	if err != nil {
		return model.Submission{}, false, fmt.Errorf("lookup submission %s: %w", key, err)
	}
	return s, found, nil
}

func (j *Journal) Record(ctx context.Context, s model.Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.IdempotencyKey == "" {
		return journal.ErrMissingKey
	}

	value, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode submission: %w", err)
	}
	err = j.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketSubmissions).Put([]byte(s.IdempotencyKey), value)
	})
	if err != nil {
		return fmt.Errorf("record submission %s: %w", s.IdempotencyKey, err)
	}
	return nil
}
