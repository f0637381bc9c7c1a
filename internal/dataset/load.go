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
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrDatasetNotFound is returned when the export cannot be opened.
	ErrDatasetNotFound = errors.New("dataset not found")

	// ErrDatasetMalformed is returned when a required column is missing or a
	// row cannot be parsed.
	ErrDatasetMalformed = errors.New("dataset malformed")
)

const (
	ColumnTrackName = "track_name"
	ColumnGenre     = "general_genre"
	ColumnSeason    = "season"
	ColumnDateAdded = "date_added"
)

var requiredColumns = []string{ColumnTrackName, ColumnGenre, ColumnSeason, ColumnDateAdded}

// Header names used by the Spanish export, after snake-casing.
var columnAliases = map[string]string{
	"track":                     ColumnTrackName,
	"name":                      ColumnTrackName,
	"song":                      ColumnTrackName,
	"nombre_de_la_canción":      ColumnTrackName,
	"canción":                   ColumnTrackName,
	"cancion":                   ColumnTrackName,
	"genre":                     ColumnGenre,
	"género_general":            ColumnGenre,
	"genero_general":            ColumnGenre,
	"estación":                  ColumnSeason,
	"estacion":                  ColumnSeason,
	"fecha_en_la_que_se_añadió": ColumnDateAdded,
	"fecha_en_la_que_se_anadio": ColumnDateAdded,
	"added_at":                  ColumnDateAdded,
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05-07:00",
	"2006/01/02",
	"20060102",
}

// Shorter integers are compact dates or garbage, not Unix seconds.
const minUnixDigits = 9

// Load reads the CSV export at path.
func Load(path string) (*Table, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDatasetNotFound, path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrDatasetNotFound, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDatasetNotFound, path, err)
	}
	defer f.Close()

	table, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return table, nil
}

// Parse reads a CSV export from r. Every row's date_added must parse, or the
// whole parse fails.
func Parse(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty file, no header row", ErrDatasetMalformed)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrDatasetMalformed, err)
	}

	index, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var records []Record
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrDatasetMalformed, line, err)
		}

		dateString := strings.TrimSpace(row[index[ColumnDateAdded]])
		date, err := ParseDate(dateString)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %s: %v", ErrDatasetMalformed, line, ColumnDateAdded, err)
		}

		season, _ := ParseSeason(row[index[ColumnSeason]])
		records = append(records, Record{
			TrackName: strings.TrimSpace(row[index[ColumnTrackName]]),
			Genre:     strings.TrimSpace(row[index[ColumnGenre]]),
			Season:    season,
			DateAdded: date,
		})
	}

	return &Table{records: records}, nil
}

func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int)
	for i, h := range header {
		key := normalizeColumn(h)
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}
	// Aliases only fill columns the header does not name exactly, so a
	// fine-grained "genre" column never shadows "general_genre".
	for i, h := range header {
		alias, ok := columnAliases[normalizeColumn(h)]
		if !ok {
			continue
		}
		if _, found := index[alias]; !found {
			index[alias] = i
		}
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing column(s) %s", ErrDatasetMalformed, strings.Join(missing, ", "))
	}
	return index, nil
}

// normalizeColumn converts "Género General" to "género_general".
func normalizeColumn(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}

// ParseDate accepts the date formats seen in listening exports, and Unix
// seconds of at least nine digits.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	if len(s) < minUnixDigits {
		return time.Time{}, fmt.Errorf("parsing date %q: unrecognised format", s)
	}
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(secs, 0).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("parsing date %q: unrecognised format", s)
}
