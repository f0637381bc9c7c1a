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

import "time"

// Record is one track-listen event from the export.
type Record struct {
	TrackName string
	Genre     string
	Season    Season
	DateAdded time.Time
}

// Table is the loaded listening history. It is never mutated after
// construction, so it is safe to share between goroutines.
type Table struct {
	records []Record
}

// NewTable copies records into a new Table.
func NewTable(records []Record) *Table {
	cp := make([]Record, len(records))
	copy(cp, records)
	return &Table{records: cp}
}

// Len returns the number of records. A nil table has none.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

func (t *Table) At(i int) Record {
	return t.records[i]
}

// Records returns a copy of the table's rows in source order.
func (t *Table) Records() []Record {
	if t == nil {
		return nil
	}
	cp := make([]Record, len(t.records))
	copy(cp, t.records)
	return cp
}

// Filter returns a new table holding the rows for which keep returns true,
// in their original order.
func (t *Table) Filter(keep func(Record) bool) *Table {
	out := &Table{}
	for i := 0; i < t.Len(); i++ {
		if keep(t.records[i]) {
			out.records = append(out.records, t.records[i])
		}
	}
	return out
}

// Between keeps rows added in [start, end).
func (t *Table) Between(start, end time.Time) *Table {
	return t.Filter(func(r Record) bool {
		return !r.DateAdded.Before(start) && r.DateAdded.Before(end)
	})
}

// Genres returns the distinct genres in first-occurrence order.
func (t *Table) Genres() []string {
	seen := make(map[string]bool)
	var genres []string
	for i := 0; i < t.Len(); i++ {
		g := t.records[i].Genre
		if !seen[g] {
			seen[g] = true
			genres = append(genres, g)
		}
	}
	return genres
}

// SeasonsPresent returns the distinct seasons in first-occurrence order,
// including non-canonical ones.
func (t *Table) SeasonsPresent() []Season {
	seen := make(map[Season]bool)
	var seasons []Season
	for i := 0; i < t.Len(); i++ {
		s := t.records[i].Season
		if !seen[s] {
			seen[s] = true
			seasons = append(seasons, s)
		}
	}
	return seasons
}

// DateSpan returns the earliest and latest DateAdded. Both are zero for an
// empty table.
func (t *Table) DateSpan() (first, last time.Time) {
	for i := 0; i < t.Len(); i++ {
		d := t.records[i].DateAdded
		if first.IsZero() || d.Before(first) {
			first = d
		}
		if last.IsZero() || d.After(last) {
			last = d
		}
	}
	return first, last
}
