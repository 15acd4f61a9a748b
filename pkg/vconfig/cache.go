package vconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	bolt "go.etcd.io/bbolt"
)

var bucketJoinState = []byte("join_state")

// Cache is a bbolt-backed local store for CLI join/profile state
// (~/.vecta/cli.db), grounded on the teacher's pkg/storage.BoltStore
// bucket-per-entity pattern, generalized to the CLI's single
// join-state bucket.
type Cache struct {
	db *bolt.DB
}

// DefaultCachePath returns ~/.vecta/cli.db.
func DefaultCachePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("vconfig: resolve home directory: %w", err)
	}
	return filepath.Join(home, ".vecta", "cli.db"), nil
}

// OpenCache opens (creating if absent) the bbolt cache at path.
func OpenCache(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("vconfig: create cache directory: %w", err)
	}
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("vconfig: open cache: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketJoinState)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("vconfig: init cache bucket: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// JoinState is the last-known connection state for a named profile,
// cached so the CLI can reconnect without re-resolving OIDC discovery.
type JoinState struct {
	Profile       string `json:"profile"`
	ServerVersion string `json:"server_version"`
	LastConnected string `json:"last_connected"`
}

// PutJoinState upserts the join state for a profile.
func (c *Cache) PutJoinState(state JoinState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("vconfig: marshal join state: %w", err)
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketJoinState).Put([]byte(state.Profile), data)
	})
}

// GetJoinState fetches the join state for a profile. ok is false if no
// state has been cached for it.
func (c *Cache) GetJoinState(profile string) (state JoinState, ok bool, err error) {
	err = c.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketJoinState).Get([]byte(profile))
		if data == nil {
			return nil
		}
		ok = true
		return json.Unmarshal(data, &state)
	})
	if err != nil {
		return JoinState{}, false, fmt.Errorf("vconfig: read join state: %w", err)
	}
	return state, ok, nil
}

// DeleteJoinState removes cached state for a profile.
func (c *Cache) DeleteJoinState(profile string) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketJoinState).Delete([]byte(profile))
	})
}
