package model

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type sqliteStore struct {
	db *sql.DB
}

func newSqliteStore(path string) (*sqliteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	s := &sqliteStore{db: db}
	if err = s.createTables(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// noinspection GoUnhandledErrorResult
func (s *sqliteStore) createTables() error {
	stmt, err := s.db.Prepare(`
		CREATE TABLE IF NOT EXISTS kv_store (
			key 			VARCHAR( 50) PRIMARY KEY NOT NULL UNIQUE,
			value 			TEXT NOT NULL,
			updated_at		DATETIME
		)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	if _, err = stmt.Exec(); err != nil {
		return err
	}

	return nil
}

func (s *sqliteStore) Load() (*State, error) {
	var value string
	err := s.db.QueryRow(`
		SELECT value
		  FROM kv_store
		 WHERE key = ?
	`, stateKey).Scan(&value)

	if err == sql.ErrNoRows {
		return NewState(), nil
	}
	if err != nil {
		return NewState(), err
	}

	return decodeState([]byte(value)), nil
}

// noinspection GoUnhandledErrorResult
func (s *sqliteStore) Save(state *State) error {
	data, err := encodeState(state)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err = tx.Exec(`
		INSERT OR REPLACE
		  INTO kv_store (key, value, updated_at)
	    VALUES (?, ?, datetime(?))
	`, stateKey, string(data), time.Now().UTC().Format("2006-01-02 15:04:05")); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}
