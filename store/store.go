// Package store persists the console session (selected environment, bearer
// token and the environment that token was issued for) across restarts
package store

import (
	"errors"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/wellcon/internal/apperr"
	"github.com/ayoisaiah/wellcon/internal/osutil"
)

const sessionBucket = "session"

var (
	keySelectedBaseURL   = []byte("selected_base_url")
	keyToken             = []byte("token")
	keyTokenOwnerBaseURL = []byte("token_owner_base_url")
)

var (
	errConsoleRunning = &apperr.Error{
		Message: "is wellcon already running? Only one instance can be active at a time",
	}

	errOpenDB = &apperr.Error{
		Message: "unable to open session database",
	}
)

// Client is a BoltDB backed Store.
type Client struct {
	*bolt.DB
}

// Load reads the three session entries. Missing entries are returned as
// empty strings.
func (c *Client) Load() (Record, error) {
	var rec Record

	err := c.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(sessionBucket))
		if b == nil {
			return nil
		}

		rec.SelectedBaseURL = string(b.Get(keySelectedBaseURL))
		rec.Token = string(b.Get(keyToken))
		rec.TokenOwnerBaseURL = string(b.Get(keyTokenOwnerBaseURL))

		return nil
	})

	return rec, err
}

// Save writes every entry of rec in a single transaction. Empty values
// delete the corresponding key.
func (c *Client) Save(rec Record) error {
	return c.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(sessionBucket))
		if err != nil {
			return err
		}

		entries := []struct {
			key   []byte
			value string
		}{
			{keySelectedBaseURL, rec.SelectedBaseURL},
			{keyToken, rec.Token},
			{keyTokenOwnerBaseURL, rec.TokenOwnerBaseURL},
		}

		for _, e := range entries {
			if e.value == "" {
				err = b.Delete(e.key)
			} else {
				err = b.Put(e.key, []byte(e.value))
			}

			if err != nil {
				return err
			}
		}

		return nil
	})
}

// ClearToken deletes the token and its owner.
func (c *Client) ClearToken() error {
	return c.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(sessionBucket))
		if b == nil {
			return nil
		}

		if err := b.Delete(keyToken); err != nil {
			return err
		}

		return b.Delete(keyTokenOwnerBaseURL)
	})
}

// openDB creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	db, err := bolt.Open(
		pathToDB,
		osutil.FilePermission,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrDatabaseOpen) ||
			errors.Is(err, bolt.ErrTimeout) {
			return nil, errConsoleRunning
		}

		return nil, errOpenDB.Wrap(err)
	}

	return db, nil
}

// NewClient returns a wrapper to a BoltDB connection.
func NewClient(dbPath string) (*Client, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err = tx.CreateBucketIfNotExists([]byte(sessionBucket))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Client{
		db,
	}, nil
}
