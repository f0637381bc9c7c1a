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
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

const sampleCSV = `track_name,general_genre,season,date_added
Song A,Pop,Summer,2023-07-01
Song B,Rock & Indie,Winter,2023-01-10
Song C,Pop,Summer,2023-08-15 10:30:00
`

func writeCSV(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.csv")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

func mustParse(t *testing.T, csv string) *Table {
	t.Helper()
	table, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	return table
}

func TestLoad(t *testing.T) {
	table, err := Load(writeCSV(t, sampleCSV))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if table.Len() != 3 {
		t.Fatalf("Expected 3 records, got %d", table.Len())
	}

	first := table.At(0)
	if first.TrackName != "Song A" || first.Genre != "Pop" || first.Season != Summer ||
		!first.DateAdded.Equal(time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected first record %+v", first)
	}
	if got := table.At(2).DateAdded; !got.Equal(time.Date(2023, 8, 15, 10, 30, 0, 0, time.UTC)) {
		t.Errorf("Unexpected date %v", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.csv")
	_, err := Load(path)
	if !errors.Is(err, ErrDatasetNotFound) {
		t.Fatalf("Expected ErrDatasetNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("Expected error to name %s, got %v", path, err)
	}
}

func TestLoadDirectory(t *testing.T) {
	if _, err := Load(t.TempDir()); !errors.Is(err, ErrDatasetNotFound) {
		t.Errorf("Expected ErrDatasetNotFound, got %v", err)
	}
}

func TestParseSpanishHeaders(t *testing.T) {
	table := mustParse(t, "Nombre de la canción,Género General,Estación,Fecha en la que se añadió,Artista\n"+
		"Despacito,Reggaeton,Verano,2021-06-21,Luis Fonsi\n"+
		"Entre dos aguas,Flamenco,Otoño,2021-10-02,Paco de Lucía\n")

	if table.Len() != 2 {
		t.Fatalf("Expected 2 records, got %d", table.Len())
	}
	if got := table.At(0); got.TrackName != "Despacito" || got.Season != Summer {
		t.Errorf("Unexpected first record %+v", got)
	}
	if got := table.At(1); got.Genre != "Flamenco" || got.Season != Autumn {
		t.Errorf("Unexpected second record %+v", got)
	}
}

func TestParseExactColumnsBeatAliases(t *testing.T) {
	table := mustParse(t, "name,track_name,genre,general_genre,season,date_added\n"+
		"a1,Song A,dance pop,Pop,Summer,2023-07-01\n"+
		"b1,Song B,indie pop,Pop,Winter,2023-01-10\n")

	if table.Len() != 2 {
		t.Fatalf("Expected 2 records, got %d", table.Len())
	}
	if got := table.At(0).TrackName; got != "Song A" {
		t.Errorf("Expected track_name column to win, got %q", got)
	}
	for i := 0; i < table.Len(); i++ {
		if got := table.At(i).Genre; got != "Pop" {
			t.Errorf("row %d: expected general_genre column to win, got %q", i, got)
		}
	}
}

func TestParseAliasFillsMissingColumn(t *testing.T) {
	table := mustParse(t, "track_name,genre,season,date_added\nSong A,Pop,Summer,2023-07-01\n")
	if got := table.At(0).Genre; got != "Pop" {
		t.Errorf("Expected genre alias to fill general_genre, got %q", got)
	}
}

func TestParseErrors(t *testing.T) {
	header := "track_name,general_genre,season,date_added\n"
	tests := []struct {
		name    string
		csv     string
		mention string
	}{
		{"missing column", "track_name,general_genre,date_added\nA,Pop,2023-01-01\n", "season"},
		{"bad date", header + "A,Pop,Summer,2023-01-01\nB,Pop,Summer,yesterday\n", "row 3"},
		{"compact date out of range", header + "A,Pop,Summer,20231399\n", "row 2"},
		{"short integer date", header + "A,Pop,Summer,12345\n", "row 2"},
		{"wrong field count", header + "A,Pop,Summer\n", "row 2"},
		{"empty file", "", "header"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.csv))
			if !errors.Is(err, ErrDatasetMalformed) {
				t.Fatalf("Expected ErrDatasetMalformed, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.mention) {
				t.Errorf("Expected error to mention %q, got %v", tc.mention, err)
			}
		})
	}
}

func TestParseHeaderOnly(t *testing.T) {
	if table := mustParse(t, "track_name,general_genre,season,date_added\n"); table.Len() != 0 {
		t.Errorf("Expected no records, got %d", table.Len())
	}
}

func TestParseKeepsUnknownSeason(t *testing.T) {
	table := mustParse(t, "track_name,general_genre,season,date_added\nA,Pop,Monsoon,2023-01-01\n")
	if got := table.At(0).Season; got != Season("Monsoon") || got.IsCanonical() {
		t.Errorf("Expected non-canonical Monsoon, got %q", got)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"2023-01-02", time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"2023/01/02", time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"2023-01-02T03:04:05Z", time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC)},
		{"2023-01-02 03:04:05", time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC)},
		{"20230715", time.Date(2023, 7, 15, 0, 0, 0, 0, time.UTC)},
		{"1600000000", time.Unix(1600000000, 0).UTC()},
	}
	for _, tc := range tests {
		got, err := ParseDate(tc.input)
		if err != nil {
			t.Errorf("ParseDate(%q) error: %v", tc.input, err)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("ParseDate(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}

	for _, bad := range []string{"", "02/01/2023", "20231399", "12345"} {
		if got, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q) = %v, want error", bad, got)
		}
	}
}

func TestParseSeason(t *testing.T) {
	tests := []struct {
		input     string
		want      Season
		canonical bool
	}{
		{"Summer", Summer, true},
		{" winter ", Winter, true},
		{"Fall", Autumn, true},
		{"Otoño", Autumn, true},
		{"PRIMAVERA", Spring, true},
		{"Monsoon", Season("Monsoon"), false},
	}
	for _, tc := range tests {
		got, ok := ParseSeason(tc.input)
		if got != tc.want || ok != tc.canonical {
			t.Errorf("ParseSeason(%q) = %q, %v; want %q, %v", tc.input, got, ok, tc.want, tc.canonical)
		}
	}
}

func TestTableIsImmutable(t *testing.T) {
	table := mustParse(t, sampleCSV)

	records := table.Records()
	records[0].Genre = "Changed"
	if got := table.At(0).Genre; got != "Pop" {
		t.Errorf("Records() exposed internal state, genre is now %q", got)
	}

	src := []Record{{TrackName: "X", Genre: "Jazz", Season: Spring}}
	copied := NewTable(src)
	src[0].Genre = "Changed"
	if got := copied.At(0).Genre; got != "Jazz" {
		t.Errorf("NewTable kept a reference to its input, genre is now %q", got)
	}
}

func TestTableOrderHelpers(t *testing.T) {
	table := mustParse(t, sampleCSV)

	if got, want := table.Genres(), []string{"Pop", "Rock & Indie"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Genres() = %v, want %v", got, want)
	}
	if got, want := table.SeasonsPresent(), []Season{Summer, Winter}; !reflect.DeepEqual(got, want) {
		t.Errorf("SeasonsPresent() = %v, want %v", got, want)
	}

	first, last := table.DateSpan()
	if !first.Equal(time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC)) || !last.Equal(time.Date(2023, 8, 15, 10, 30, 0, 0, time.UTC)) {
		t.Errorf("DateSpan() = %v, %v", first, last)
	}

	summer := table.Between(time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC))
	if summer.Len() != 2 {
		t.Errorf("Expected 2 summer records, got %d", summer.Len())
	}

	var nilTable *Table
	if nilTable.Len() != 0 || nilTable.Genres() != nil {
		t.Errorf("Expected nil table to be empty")
	}
}
