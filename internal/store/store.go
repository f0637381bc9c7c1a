/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package store holds a SQL view of a loaded listening history. The
// database lives in memory and disappears on Close.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS Genre (
  name TEXT PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS Track (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  genre TEXT NOT NULL,
  FOREIGN KEY (genre) REFERENCES Genre(name),
  UNIQUE (name, genre)
);

CREATE TABLE IF NOT EXISTS Listen (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  position INTEGER NOT NULL,
  track INTEGER NOT NULL,
  season TEXT NOT NULL,
  date INTEGER NOT NULL,
  FOREIGN KEY (track) REFERENCES Track(id)
);

CREATE VIEW IF NOT EXISTS Listens AS
  SELECT Listen.position AS position, Track.name AS track_name, Track.genre AS genre,
         Listen.season AS season, Listen.date AS date_added
  FROM Listen
  INNER JOIN Track ON Track.id = Listen.track;
`

type Store struct {
	db *sql.DB
}

// New opens an empty in-memory database.
func New() (*Store, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// Every connection to ":memory:" gets its own database.
	db.SetMaxOpenConns(1)

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func createTables(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("executing schema: %w", err)
	}
	return nil
}
