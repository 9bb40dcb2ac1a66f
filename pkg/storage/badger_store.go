package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"

	"github.com/Sriram-PR/seo-audit/pkg/log"
	"github.com/Sriram-PR/seo-audit/pkg/utils"
)

const (
	seenKeyPrefix = "seen:"
	seenDBDir     = "seen_db" // Subdirectory name within stateDir for Badger DB files
)

// BadgerStore implements SeenStore using BadgerDB
type BadgerStore struct {
	db       *badger.DB
	log      *logrus.Entry
	keyCount atomic.Int64 // Cached key count for O(1) SeenCount
}

// NewBadgerStore opens a seen-URL database for one audit run.
// An empty stateDir keeps the database in memory. Otherwise any state left
// by a previous run for the same site is removed first; audits never resume.
func NewBadgerStore(stateDir, siteDomain string, logger *logrus.Entry) (*BadgerStore, error) {
	store := &BadgerStore{
		log: logger,
	}

	badgerLogger := log.NewBadgerLogrusAdapter(logger.WithField("component", "badgerdb"))

	var opts badger.Options
	if stateDir == "" {
		logger.Debug("Initializing in-memory seen URL database")
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		dbPath := filepath.Join(stateDir, utils.SanitizeFilename(siteDomain)+"_"+seenDBDir)
		if err := os.RemoveAll(dbPath); err != nil {
			logger.Errorf("Failed to remove existing state directory %s: %v", dbPath, err)
		}
		if err := os.MkdirAll(dbPath, 0755); err != nil {
			return nil, fmt.Errorf("%w: cannot create state directory %s: %w", utils.ErrFilesystem, dbPath, err)
		}
		logger.Infof("Initializing seen URL database at: %s", dbPath)
		opts = badger.DefaultOptions(dbPath)
	}
	opts = opts.WithLogger(badgerLogger).WithNumVersionsToKeep(1)

	var err error
	store.db, err = badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open badger database: %w", utils.ErrDatabase, err)
	}
	return store, nil
}

const maxConflictRetries = 10

// dbUpdate wraps db.Update with a retry loop for BadgerDB transaction conflicts.
func (s *BadgerStore) dbUpdate(fn func(txn *badger.Txn) error) error {
	for i := range maxConflictRetries {
		err := s.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
		s.log.Debugf("BadgerDB transaction conflict (attempt %d/%d), retrying", i+1, maxConflictRetries)
	}
	return fmt.Errorf("%w: transaction conflict not resolved after %d retries", utils.ErrDatabase, maxConflictRetries)
}

// MarkSeen implements SeenStore
func (s *BadgerStore) MarkSeen(url string) (bool, error) {
	if s.db == nil {
		return false, fmt.Errorf("%w: seen database not initialized", utils.ErrDatabase)
	}
	added := false
	key := []byte(seenKeyPrefix + url)

	err := s.dbUpdate(func(txn *badger.Txn) error {
		_, errGet := txn.Get(key)
		if errors.Is(errGet, badger.ErrKeyNotFound) {
			errSet := txn.SetEntry(badger.NewEntry(key, []byte{}))
			if errSet == nil {
				added = true
			}
			return errSet
		}
		return errGet
	})
	if err != nil {
		s.log.WithField("key", string(key)).Errorf("DB Update error in MarkSeen: %v", err)
		return false, fmt.Errorf("%w: marking key '%s': %w", utils.ErrDatabase, string(key), err)
	}
	if added {
		s.keyCount.Add(1)
	}
	return added, nil
}

// IsSeen implements SeenStore
func (s *BadgerStore) IsSeen(url string) (bool, error) {
	if s.db == nil {
		return false, fmt.Errorf("%w: seen database not initialized", utils.ErrDatabase)
	}
	found := false
	key := []byte(seenKeyPrefix + url)
	err := s.db.View(func(txn *badger.Txn) error {
		_, errGet := txn.Get(key)
		if errors.Is(errGet, badger.ErrKeyNotFound) {
			return nil
		}
		if errGet == nil {
			found = true
		}
		return errGet
	})
	if err != nil {
		return false, fmt.Errorf("%w: reading key '%s': %w", utils.ErrDatabase, string(key), err)
	}
	return found, nil
}

// SeenCount implements SeenStore
func (s *BadgerStore) SeenCount() (int, error) {
	return int(s.keyCount.Load()), nil
}

// Close implements SeenStore
func (s *BadgerStore) Close() error {
	if s.db == nil {
		return nil
	}
	s.log.Debug("Closing seen URL database")
	err := s.db.Close()
	s.db = nil
	if err != nil {
		return fmt.Errorf("%w: closing database: %w", utils.ErrDatabase, err)
	}
	return nil
}
