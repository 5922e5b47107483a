// Package sqlite implements the SQLite storage layer for the libris
// catalog: connection lifecycle, schema creation, seeding, and the
// record components sharing the single connection.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	sqlite3 "modernc.org/sqlite"

	"github.com/librisdb/libris/internal/cloudpath"
)

// Journal modes the store runs in. WAL is preferred for local files;
// catalogs inside a cloud-sync folder are forced to DELETE because sync
// engines upload the -wal/-shm side files independently of the main
// file and can corrupt the store.
const (
	journalWAL    = "wal"
	journalDelete = "delete"
)

// busyTimeout bounds the wait for the SQLite file lock, in milliseconds.
const busyTimeout = 10_000

// Store owns the one connection to the catalog file and composes the
// record components that borrow it. The raw *sql.DB never leaves this
// package.
type Store struct {
	db          *sql.DB
	path        string
	journalMode string
	log         zerolog.Logger
	notifyFatal func(source, message string)

	Classifications *Classifications
	Lookups         *Lookups
	Ouvrages        *Ouvrages
	Reports         *Reports
	Users           *Users
	Audit           *AuditLog
	Importer        *Importer
	Exporter        *Exporter
}

// Option configures a Store before it opens.
type Option func(*Store)

// WithLogger sets the process-level diagnostic logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithFatalHook sets the collaborator notified when the connection
// cannot be established or a catastrophic write failure occurs. The
// store never renders UI itself.
func WithFatalHook(fn func(source, message string)) Option {
	return func(s *Store) { s.notifyFatal = fn }
}

// Open connects to the catalog file at path, selects the journal mode,
// creates the schema (idempotent) and seeds the lookup vocabularies.
// On failure no handle is retained and the fatal hook has been invoked.
func Open(path string, opts ...Option) (*Store, error) {
	// Journal-mode selection classifies the path against the cloud-sync
	// roots, and a relative path would always classify as synced.
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	s := &Store{
		path:        path,
		log:         zerolog.Nop(),
		notifyFatal: func(string, string) {},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.log.Info().Str("path", path).Msg("opening catalog")

	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)", path, busyTimeout)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, s.openFailed(err)
	}
	// One live connection per process; the managers share it and the
	// transaction discipline assumes no second handle.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, s.openFailed(err)
	}

	s.db = db
	if err := s.selectJournalMode(); err != nil {
		s.db = nil
		db.Close()
		return nil, s.openFailed(err)
	}
	if err := createSchema(db); err != nil {
		s.db = nil
		db.Close()
		return nil, s.openFailed(fmt.Errorf("create schema: %w", err))
	}
	if err := seedLookups(db); err != nil {
		s.db = nil
		db.Close()
		return nil, s.openFailed(fmt.Errorf("seed lookups: %w", err))
	}

	s.Classifications = &Classifications{s: s}
	s.Lookups = &Lookups{s: s}
	s.Ouvrages = &Ouvrages{s: s}
	s.Reports = &Reports{s: s}
	s.Users = &Users{s: s}
	s.Audit = &AuditLog{s: s}
	s.Importer = &Importer{s: s}
	s.Exporter = &Exporter{s: s}

	s.log.Info().Str("journal_mode", s.journalMode).Msg("catalog opened")
	return s, nil
}

// openFailed logs, notifies the fatal hook, and passes the error back.
func (s *Store) openFailed(err error) error {
	s.log.Error().Err(err).Str("path", s.path).Msg("opening catalog failed")
	s.notifyFatal("sqlite.Open", "cannot open the catalog database")
	return fmt.Errorf("open %s: %w", s.path, err)
}

// selectJournalMode picks the durability mode for the backing file.
func (s *Store) selectJournalMode() error {
	if cloudpath.Classify(s.path) == cloudpath.Synced {
		s.log.Warn().Msg("catalog lives in a cloud-sync folder; WAL disabled")
		return s.setJournalMode(journalDelete)
	}

	var mode string
	if err := s.db.QueryRow("PRAGMA journal_mode=WAL;").Scan(&mode); err != nil || !strings.EqualFold(mode, journalWAL) {
		s.log.Warn().Msg("WAL unsupported on this store, falling back to DELETE")
		return s.setJournalMode(journalDelete)
	}
	s.journalMode = journalWAL
	return nil
}

func (s *Store) setJournalMode(mode string) error {
	var got string
	if err := s.db.QueryRow("PRAGMA journal_mode=" + mode + ";").Scan(&got); err != nil {
		return fmt.Errorf("set journal_mode=%s: %w", mode, err)
	}
	s.journalMode = strings.ToLower(got)
	return nil
}

// Close releases the connection. Idempotent; a no-op when never opened.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	s.log.Info().Msg("catalog closed")
	return err
}

// Path returns the backing file path the store was opened with.
func (s *Store) Path() string { return s.path }

// JournalMode returns the effective journal mode after open.
func (s *Store) JournalMode() string { return s.journalMode }

// connected reports whether a live handle is held.
func (s *Store) connected() bool { return s != nil && s.db != nil }

// noConnection logs the absent connection at critical and fires the
// fatal hook. Every read and write checks this first.
func (s *Store) noConnection(source string) {
	s.log.Error().Str("source", source).Msg("database connection not established")
	s.notifyFatal(source, "database connection not established")
}

// execer is satisfied by both *sql.DB and *sql.Tx, letting the audit
// log write inside a caller's ambient transaction.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// queryExecer adds single-row reads for components that resolve before
// they write on the same handle.
type queryExecer interface {
	execer
	QueryRow(query string, args ...any) *sql.Row
}

// now returns the timestamp format the schema stores.
func now() string {
	return time.Now().Format("2006-01-02 15:04:05")
}

// isConstraint reports whether err is a SQLite constraint violation
// (duplicate name, foreign key, ...), which the managers downgrade to a
// warning-level "already exists" failure.
func isConstraint(err error) bool {
	var se *sqlite3.Error
	if errors.As(err, &se) {
		return se.Code()&0xff == 19 // SQLITE_CONSTRAINT
	}
	return err != nil && strings.Contains(err.Error(), "constraint")
}

// nullStr maps "" to NULL for optional text columns.
func nullStr(v string) any {
	if v == "" {
		return nil
	}
	return v
}

// nullID maps 0 to NULL for optional foreign keys and numeric fields.
func nullID(v int64) any {
	if v == 0 {
		return nil
	}
	return v
}

// storablePath converts an absolute cover path to its persisted
// sync-root-relative form.
func (s *Store) storablePath(abs string) string {
	return cloudpath.ToStorable(abs, s.path)
}

// absolutePath resolves a persisted cover path on the current machine.
func (s *Store) absolutePath(stored string) string {
	if stored == "" {
		return ""
	}
	return filepath.Clean(cloudpath.ToAbsolute(stored, s.path))
}
