package badger

import (
	"context"
	"fmt"

	badgerdb "github.com/dgraph-io/badger/v4"

	"line-knowledge-assistant/internal/session/repository"
	pkgLog "line-knowledge-assistant/pkg/log"
)

const keyPrefix = "session:"

type implRepository struct {
	db *badgerdb.DB
	l  pkgLog.Logger
}

// New creates a badger-backed session repository on an open database.
func New(db *badgerdb.DB, l pkgLog.Logger) repository.Repository {
	return &implRepository{db: db, l: l}
}

// Open opens a badger database at path, or an in-memory one when inMemory is set.
func Open(path string, inMemory bool, l pkgLog.Logger) (*badgerdb.DB, error) {
	opts := badgerdb.DefaultOptions(path)
	if inMemory {
		opts = badgerdb.DefaultOptions("").WithInMemory(true)
	}
	opts = opts.WithLogger(newLogger(l))

	db, err := badgerdb.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger: %w", err)
	}
	return db, nil
}

func key(id string) []byte {
	return []byte(keyPrefix + id)
}

// badgerLogger routes badger's internal logs through the service logger.
type badgerLogger struct {
	l pkgLog.Logger
}

func newLogger(l pkgLog.Logger) badgerdb.Logger {
	if l == nil {
		return nil
	}
	return &badgerLogger{l: l}
}

func (b *badgerLogger) Errorf(f string, v ...interface{}) {
	b.l.Errorf(context.Background(), "badger: "+f, v...)
}

func (b *badgerLogger) Warningf(f string, v ...interface{}) {
	b.l.Warnf(context.Background(), "badger: "+f, v...)
}

func (b *badgerLogger) Infof(f string, v ...interface{}) {
	b.l.Debugf(context.Background(), "badger: "+f, v...)
}

func (b *badgerLogger) Debugf(f string, v ...interface{}) {
	b.l.Debugf(context.Background(), "badger: "+f, v...)
}
