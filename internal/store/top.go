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

import "fmt"

type GenreSeasonCount struct {
	Genre  string
	Season string
	Count  int64
}

type TrackPlayCount struct {
	Track string
	Genre string
	Count int64
}

// GetGenreSeasonCounts groups listens by genre and season, ordered by the
// first position each pair appears on.
func (s *Store) GetGenreSeasonCounts() ([]GenreSeasonCount, error) {
	query := `
	SELECT Track.genre, Listen.season, COUNT(Listen.id)
	FROM Listen
	INNER JOIN Track ON Track.id = Listen.track
	GROUP BY Track.genre, Listen.season
	ORDER BY MIN(Listen.position)
	`
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("querying genre counts: %w", err)
	}
	defer rows.Close()

	var results []GenreSeasonCount
	for rows.Next() {
		var c GenreSeasonCount
		if err := rows.Scan(&c.Genre, &c.Season, &c.Count); err != nil {
			return nil, err
		}
		results = append(results, c)
	}
	return results, rows.Err()
}

// GetTopTracks returns the most repeated tracks of a season.
func (s *Store) GetTopTracks(season string, limit int) ([]TrackPlayCount, error) {
	query := `
	SELECT Track.name, Track.genre, COUNT(Listen.id)
	FROM Listen
	INNER JOIN Track ON Track.id = Listen.track
	WHERE Listen.season = ?
	GROUP BY Track.id
	ORDER BY COUNT(*) DESC, MIN(Listen.position)
	LIMIT ?
	`
	rows, err := s.db.Query(query, season, limit)
	if err != nil {
		return nil, fmt.Errorf("querying top tracks: %w", err)
	}
	defer rows.Close()

	var results []TrackPlayCount
	for rows.Next() {
		var c TrackPlayCount
		if err := rows.Scan(&c.Track, &c.Genre, &c.Count); err != nil {
			return nil, err
		}
		results = append(results, c)
	}
	return results, rows.Err()
}
