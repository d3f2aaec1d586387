package featureflags

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.etcd.io/bbolt"
)

const flagBucket = "featureflags"

// Store provides a BoltDB-backed feature flag store.
type Store struct {
	db *bbolt.DB
}

// Open opens a BoltDB-backed flag store at the provided path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	db, err := bbolt.Open(cleanPath, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open flag db: %w", err)
	}

	store := &Store{db: db}
	if err := store.ensureBuckets(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying BoltDB database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SetEmergencyDisable persists the global kill switch.
func (s *Store) SetEmergencyDisable(ctx context.Context, disabled bool) error {
	return s.putJSON(ctx, KeyEmergencyDisable, disabled)
}

// EmergencyDisabled reports whether the global kill switch is set.
// A missing key reads as false.
func (s *Store) EmergencyDisabled(ctx context.Context) (bool, error) {
	var disabled bool
	ok, err := s.getJSON(ctx, KeyEmergencyDisable, &disabled)
	if err != nil || !ok {
		return false, err
	}
	return disabled, nil
}

// SetOverrides replaces the stored per-area overrides.
func (s *Store) SetOverrides(ctx context.Context, overrides Overrides) error {
	return s.putJSON(ctx, KeyOverrides, overrides)
}

// StoredOverrides fetches the per-area overrides. A missing key reads as
// an empty set.
func (s *Store) StoredOverrides(ctx context.Context) (Overrides, error) {
	var overrides Overrides
	ok, err := s.getJSON(ctx, KeyOverrides, &overrides)
	if err != nil {
		return nil, err
	}
	if !ok || overrides == nil {
		return Overrides{}, nil
	}
	return overrides, nil
}

func (s *Store) putJSON(ctx context.Context, key string, value any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return fmt.Errorf("flag storage is not configured")
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal flag %s: %w", key, err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(flagBucket))
		if bucket == nil {
			return fmt.Errorf("flag bucket is missing")
		}
		return bucket.Put([]byte(key), payload)
	})
}

func (s *Store) getJSON(ctx context.Context, key string, out any) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if s == nil || s.db == nil {
		return false, fmt.Errorf("flag storage is not configured")
	}

	found := false
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(flagBucket))
		if bucket == nil {
			return fmt.Errorf("flag bucket is missing")
		}
		payload := bucket.Get([]byte(key))
		if payload == nil {
			return nil
		}
		if err := json.Unmarshal(payload, out); err != nil {
			return fmt.Errorf("unmarshal flag %s: %w", key, err)
		}
		found = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

func (s *Store) ensureBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(flagBucket))
		if err != nil {
			return fmt.Errorf("create flag bucket: %w", err)
		}
		return nil
	})
}
