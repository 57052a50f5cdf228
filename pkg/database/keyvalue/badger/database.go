// Copyright 2025 The StakeCore Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package badger

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/badger"
	"github.com/rs/zerolog"
	"gitlab.com/stakecore/stakecore/pkg/database/keyvalue"
	"gitlab.com/stakecore/stakecore/pkg/database/keyvalue/memory"
	"gitlab.com/stakecore/stakecore/pkg/errors"
)

// Database is a Badger-backed key-value store.
type Database struct {
	badger   *badger.DB
	logger   zerolog.Logger
	ready    bool
	mu       sync.RWMutex
	commitMu sync.Mutex
}

var _ keyvalue.Beginner = (*Database)(nil)

func New(filepath string, logger zerolog.Logger) (*Database, error) {
	// Make sure all directories exist
	err := os.MkdirAll(filepath, 0700)
	if err != nil {
		return nil, errors.UnknownError.WithFormat("open badger: create %q: %w", filepath, err)
	}

	d := new(Database)
	d.logger = logger.With().Str("module", "badger").Logger()

	opts := badger.DefaultOptions(filepath)
	opts = opts.WithLogger(badgerLogger{d.logger})

	d.badger, err = badger.Open(opts)
	if err != nil {
		return nil, errors.UnknownError.WithFormat("open badger: %w", err)
	}
	d.ready = true

	// Run GC every hour
	go d.gc()

	return d, nil
}

// Begin begins a change set.
func (d *Database) Begin(writable bool) keyvalue.ChangeSet {
	// Use a read-only transaction for reading
	rd := d.badger.NewTransaction(false)

	get := func(key keyvalue.Key) ([]byte, error) {
		l, err := d.lock(false)
		if err != nil {
			return nil, err
		}
		defer l.Unlock()

		item, err := rd.Get(key[:])
		switch {
		case err == nil:
			// Ok
		case errors.Is(err, badger.ErrKeyNotFound):
			return nil, errors.NotFound.WithFormat("%v not found", key)
		default:
			return nil, errors.UnknownError.WithFormat("get %v: %w", key, err)
		}

		v, err := item.ValueCopy(nil)
		if err != nil {
			return nil, errors.UnknownError.WithFormat("get %v: %w", key, err)
		}
		return v, nil
	}

	var commit memory.CommitFunc
	if writable {
		commit = d.commit
	}

	discard := func() { rd.Discard() }

	// The memory change set caches entries in a map so Get sees values
	// updated with Put regardless of the underlying transaction behavior
	return memory.NewChangeSet(get, commit, discard)
}

func (d *Database) commit(entries map[keyvalue.Key]memory.Entry) error {
	l, err := d.lock(false)
	if err != nil {
		return err
	}
	defer l.Unlock()

	// One writer at a time. Badger would detect the conflict anyway but
	// serializing commits lets create preconditions fail with Conflict
	// instead of forcing a retry.
	d.commitMu.Lock()
	defer d.commitMu.Unlock()

	err = d.badger.Update(func(txn *badger.Txn) error {
		// Recheck create preconditions
		for _, e := range entries {
			if !e.Create {
				continue
			}
			_, err := txn.Get(e.Key[:])
			switch {
			case err == nil:
				return errors.Conflict.WithFormat("%v already exists", e.Key)
			case errors.Is(err, badger.ErrKeyNotFound):
				// Ok
			default:
				return errors.UnknownError.WithFormat("get %v: %w", e.Key, err)
			}
		}

		for _, e := range entries {
			var err error
			if e.Delete {
				err = txn.Delete(e.Key[:])
			} else {
				err = txn.Set(e.Key[:], e.Value)
			}
			if err != nil {
				return errors.UnknownError.WithFormat("write %v: %w", e.Key, err)
			}
		}
		return nil
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, badger.ErrConflict):
		// Retryable
		return errors.Unavailable.WithFormat("commit: %w", err)
	default:
		return errors.UnknownError.Wrap(err)
	}
}

// Close closes the underlying database.
func (d *Database) Close() error {
	l, err := d.lock(true)
	if err != nil {
		return err
	}
	defer l.Unlock()

	d.ready = false
	return d.badger.Close()
}

func (d *Database) gc() {
	for {
		time.Sleep(time.Hour)

		// Still open?
		l, err := d.lock(false)
		if err != nil {
			return
		}

		// Run GC if 50% space could be reclaimed
		err = d.badger.RunValueLogGC(0.5)
		if err != nil && !errors.Is(err, badger.ErrNoRewrite) {
			d.logger.Error().Err(err).Msg("Badger GC failed")
		}

		l.Unlock()
	}
}

// lock acquires a lock on the ready mutex and checks for readiness. This
// prevents race conditions between Get/Put and Close, which can cause panics.
func (d *Database) lock(closing bool) (sync.Locker, error) {
	var l sync.Locker = &d.mu
	if !closing {
		l = d.mu.RLocker()
	}

	l.Lock()
	if !d.ready {
		l.Unlock()
		return nil, errors.Unavailable.With("badger: database not open")
	}

	return l, nil
}

type badgerLogger struct{ zerolog.Logger }

func (l badgerLogger) format(format string, args ...interface{}) string {
	s := fmt.Sprintf(format, args...)
	return strings.TrimRight(s, "\n")
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.Error().Msg(l.format(format, args...))
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.Warn().Msg(l.format(format, args...))
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.Info().Msg(l.format(format, args...))
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.Debug().Msg(l.format(format, args...))
}
