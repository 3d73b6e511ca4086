package badgerstore

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	badger "github.com/dgraph-io/badger/v4"
)

// ErrOpen indicates the database could not be opened.
var ErrOpen = errors.New("badgerstore: open failed")

// Config selects where and how the database runs.
type Config struct {
	// Path is the database directory. Ignored when InMemory is set.
	Path string

	// InMemory runs Badger without touching disk. Meant for tests.
	InMemory bool

	// SyncWrites forces an fsync per write. Slower, crash-safe.
	SyncWrites bool

	// Logger receives Badger's internal log lines. Nil silences them.
	Logger *slog.Logger
}

// Store is a persistent sweep.Store over Badger.
type Store struct {
	db *badger.DB
}

// Open creates or reopens the database described by cfg.
func Open(cfg Config) (*Store, error) {
	opts := badger.DefaultOptions(cfg.Path).
		WithInMemory(cfg.InMemory).
		WithSyncWrites(cfg.SyncWrites).
		WithLogger(nil)
	if cfg.Logger != nil {
		opts = opts.WithLogger(slogBridge{log: cfg.Logger})
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badgerstore: %w: %v", ErrOpen, err)
	}
	return &Store{db: db}, nil
}

// Get returns the value stored under key; a missing key is a plain
// miss, not an error.
func (s *Store) Get(key []byte) ([]byte, bool, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// Put stores value under key, replacing any previous value.
func (s *Store) Put(key, value []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

// Close flushes and closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// slogBridge adapts slog to Badger's printf-style logger.
type slogBridge struct {
	log *slog.Logger
}

func (b slogBridge) Errorf(format string, args ...interface{}) {
	b.log.Error(trim(format, args...))
}

func (b slogBridge) Warningf(format string, args ...interface{}) {
	b.log.Warn(trim(format, args...))
}

func (b slogBridge) Infof(format string, args ...interface{}) {
	b.log.Info(trim(format, args...))
}

func (b slogBridge) Debugf(format string, args ...interface{}) {
	b.log.Debug(trim(format, args...))
}

// trim formats one Badger log line without its trailing newline.
func trim(format string, args ...interface{}) string {
	return strings.TrimRight(fmt.Sprintf(format, args...), "\n")
}
