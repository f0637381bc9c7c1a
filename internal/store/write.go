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
package store

import (
	"database/sql"
	"fmt"

	"github.com/ademuri/listening-seasons/internal/dataset"
)

// ImportTable copies every record of t into the database in one
// transaction. Listen.position keeps the table order.
func (s *Store) ImportTable(t *dataset.Table) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	tracks := make(map[trackKey]int64)
	for i := 0; i < t.Len(); i++ {
		r := t.At(i)
		if err := createGenre(tx, r.Genre); err != nil {
			return err
		}

		key := trackKey{r.TrackName, r.Genre}
		trackID, ok := tracks[key]
		if !ok {
			trackID, err = createTrack(tx, r.TrackName, r.Genre)
			if err != nil {
				return err
			}
			tracks[key] = trackID
		}

		if err := createListen(tx, i, trackID, r); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

type trackKey struct {
	name  string
	genre string
}

func createGenre(tx *sql.Tx, name string) error {
	if _, err := tx.Exec("INSERT OR IGNORE INTO Genre (name) VALUES (?)", name); err != nil {
		return fmt.Errorf("inserting genre %q: %w", name, err)
	}
	return nil
}

func createTrack(tx *sql.Tx, name, genre string) (int64, error) {
	var id int64
	err := tx.QueryRow("SELECT id FROM Track WHERE name = ? AND genre = ?", name, genre).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("checking track %q: %w", name, err)
	}

	res, err := tx.Exec("INSERT INTO Track (name, genre) VALUES (?, ?)", name, genre)
	if err != nil {
		return 0, fmt.Errorf("inserting track %q: %w", name, err)
	}
	return res.LastInsertId()
}

func createListen(tx *sql.Tx, position int, trackID int64, r dataset.Record) error {
	_, err := tx.Exec("INSERT INTO Listen (position, track, season, date) VALUES (?, ?, ?, ?)",
		position, trackID, r.Season.String(), r.DateAdded.Unix())
	if err != nil {
		return fmt.Errorf("inserting listen of %q: %w", r.TrackName, err)
	}
	return nil
}
