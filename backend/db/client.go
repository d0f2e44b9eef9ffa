package db

import (
	"database/sql"
	"fmt"
	"log"
	"net/url"

	_ "github.com/mutecomm/go-sqlcipher/v4"
)

// Store is the encrypted relational store backing an unlocked vault. The
// connection is owned by the vault session and closed when the vault locks.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the encrypted store at path, keyed with the vault
// password. SQLCipher does not validate the key until a page is read, so a
// successful Open proves nothing about the password.
func Open(path, password string) (*Store, error) {
	dsn := fmt.Sprintf(
		"file:%s?_pragma_key=%s&_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=1&_busy_timeout=5000",
		path,
		url.QueryEscape(password))

	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	// Every statement must run on the connection that received the key pragma
	sqlDB.SetMaxOpenConns(1)

	return &Store{db: sqlDB}, nil
}

// Initialize creates the vault tables if they don't already exist. Creating
// tables also forces SQLCipher to key a brand new database file.
func (s *Store) Initialize() error {
	shardTable := `CREATE TABLE IF NOT EXISTS shards (
	                   id TEXT PRIMARY KEY,
	                   title TEXT NOT NULL,
	                   content TEXT NOT NULL,
	                   tags TEXT,
	                   created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	                   updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	               )`
	if _, err := s.db.Exec(shardTable); err != nil {
		return err
	}

	assetTable := `CREATE TABLE IF NOT EXISTS assets (
	                   id TEXT PRIMARY KEY,
	                   shard_id TEXT,
	                   file_path TEXT,
	                   original_name TEXT,
	                   mime_type TEXT,
	                   created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	               )`
	_, err := s.db.Exec(assetTable)
	return err
}

// Verify performs a trivial read against the store, which fails if the key
// used to open it was wrong.
func (s *Store) Verify() error {
	var count int
	return s.db.QueryRow(`SELECT count(*) FROM shards`).Scan(&count)
}

// Checkpoint folds the write-ahead log back into the main store file so the
// sidecar files don't grow unbounded while the vault stays unlocked.
func (s *Store) Checkpoint() error {
	_, err := s.db.Exec(`PRAGMA wal_checkpoint(TRUNCATE)`)
	return err
}

func (s *Store) Close() {
	if err := s.db.Close(); err != nil {
		log.Printf("Error closing store: %v\n", err)
	}
}
