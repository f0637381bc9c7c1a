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
package analysis

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/ademuri/listening-seasons/internal/dataset"
)

func rec(track, genre string, season dataset.Season) dataset.Record {
	return dataset.Record{
		TrackName: track,
		Genre:     genre,
		Season:    season,
		DateAdded: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func mixedTable() *dataset.Table {
	return dataset.NewTable([]dataset.Record{
		rec("a", "Rock & Indie", dataset.Winter),
		rec("b", "Pop", dataset.Summer),
		rec("c", "Pop", dataset.Summer),
		rec("d", "Jazz, Soul & Blues", dataset.Spring),
		rec("e", "Rock & Indie", dataset.Summer),
		rec("f", "Jazz, Soul & Blues", dataset.Spring),
		rec("g", "Pop", dataset.Winter),
		rec("h", "Reggae", dataset.Season("Monsoon")),
	})
}

func TestCountByGenreAndSeason(t *testing.T) {
	got := CountByGenreAndSeason(mixedTable())
	want := []GenreSeasonCount{
		{"Rock & Indie", dataset.Winter, 1},
		{"Pop", dataset.Summer, 2},
		{"Jazz, Soul & Blues", dataset.Spring, 2},
		{"Rock & Indie", dataset.Summer, 1},
		{"Pop", dataset.Winter, 1},
		{"Reggae", dataset.Season("Monsoon"), 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CountByGenreAndSeason() = %v, want %v", got, want)
	}
}

func TestCountByGenre(t *testing.T) {
	got := CountByGenre(mixedTable())
	want := []GenreCount{
		{"Rock & Indie", 2},
		{"Pop", 3},
		{"Jazz, Soul & Blues", 2},
		{"Reggae", 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CountByGenre() = %v, want %v", got, want)
	}
}

func TestCountsEmptyTable(t *testing.T) {
	if got := CountByGenre(dataset.NewTable(nil)); len(got) != 0 {
		t.Errorf("Expected no genre counts, got %v", got)
	}
	if got := CountByGenreAndSeason(dataset.NewTable(nil)); len(got) != 0 {
		t.Errorf("Expected no genre and season counts, got %v", got)
	}
	if got := CountByGenre(nil); len(got) != 0 {
		t.Errorf("Expected no counts for nil table, got %v", got)
	}
}

func TestCountInvariants(t *testing.T) {
	table := mixedTable()
	genres := CountByGenre(table)
	if total := Total(genres); total != table.Len() {
		t.Errorf("Total() = %d, want %d", total, table.Len())
	}

	perGenre := make(map[string]int)
	for _, c := range CountByGenreAndSeason(table) {
		perGenre[c.Genre] += c.Count
	}
	for _, g := range genres {
		if perGenre[g.Genre] != g.Count {
			t.Errorf("%s: seasons sum to %d, want %d", g.Genre, perGenre[g.Genre], g.Count)
		}
	}
}

func TestCountByGenreIsIdempotent(t *testing.T) {
	table := mixedTable()
	before := table.Records()
	first := CountByGenre(table)
	second := CountByGenre(table)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Repeated counts differ: %v vs %v", first, second)
	}
	if !reflect.DeepEqual(before, table.Records()) {
		t.Errorf("Counting modified the table")
	}
}

func TestMostCommonGenre(t *testing.T) {
	var plurality []dataset.Record
	for i := 0; i < 6; i++ {
		plurality = append(plurality, rec(fmt.Sprintf("pop %d", i), "Pop", dataset.Summer))
	}
	for i := 0; i < 4; i++ {
		plurality = append(plurality, rec(fmt.Sprintf("rock %d", i), "Rock", dataset.Summer))
	}

	tests := []struct {
		name    string
		records []dataset.Record
		season  dataset.Season
		want    string
	}{
		{"plurality", plurality, dataset.Summer, "Pop"},
		{"later genre wins", []dataset.Record{
			rec("1", "Pop", dataset.Autumn),
			rec("2", "Country", dataset.Autumn),
			rec("3", "Country", dataset.Autumn),
		}, dataset.Autumn, "Country"},
		{"tie goes to first seen", []dataset.Record{
			rec("1", "Flamenco", dataset.Autumn),
			rec("2", "Pop", dataset.Autumn),
			rec("3", "Pop", dataset.Autumn),
			rec("4", "Flamenco", dataset.Autumn),
		}, dataset.Autumn, "Flamenco"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := MostCommonGenre(dataset.NewTable(tc.records), tc.season)
			if err != nil {
				t.Fatalf("MostCommonGenre() error: %v", err)
			}
			if got != tc.want {
				t.Errorf("MostCommonGenre() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestMostCommonGenreNoData(t *testing.T) {
	genre, err := MostCommonGenre(mixedTable(), dataset.Autumn)
	if !errors.Is(err, ErrNoDataForSeason) {
		t.Fatalf("Expected ErrNoDataForSeason, got %v", err)
	}
	if !strings.Contains(err.Error(), "Autumn") {
		t.Errorf("Expected error to name the season, got %v", err)
	}
	if genre != "" {
		t.Errorf("Expected no genre, got %q", genre)
	}

	if _, err := MostCommonGenre(dataset.NewTable(nil), dataset.Winter); !errors.Is(err, ErrNoDataForSeason) {
		t.Errorf("Expected ErrNoDataForSeason for empty table, got %v", err)
	}
}

func TestRecommendTracks(t *testing.T) {
	table := dataset.NewTable([]dataset.Record{
		rec("Take Five", "Jazz", dataset.Spring),
		rec("Hey Jude", "Pop", dataset.Spring),
		rec("So What", "Jazz", dataset.Spring),
		rec("Blue in Green", "Jazz", dataset.Winter),
	})

	got := RecommendTracks(table, dataset.Spring, "Jazz", 5)
	want := []string{"Take Five", "So What"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RecommendTracks() = %v, want %v", got, want)
	}
}

func TestRecommendTracksLimitAndOrder(t *testing.T) {
	var records []dataset.Record
	for i := 0; i < 8; i++ {
		records = append(records, rec(fmt.Sprintf("song %d", i), "Pop", dataset.Summer))
	}
	records = append(records, rec("song 0", "Pop", dataset.Summer))
	table := dataset.NewTable(records)

	got := RecommendTracks(table, dataset.Summer, "Pop", 3)
	if want := []string{"song 0", "song 1", "song 2"}; !reflect.DeepEqual(got, want) {
		t.Errorf("RecommendTracks(3) = %v, want %v", got, want)
	}

	if got := RecommendTracks(table, dataset.Summer, "Pop", 0); len(got) != DefaultRecommendationLimit {
		t.Errorf("Expected default limit of %d, got %d", DefaultRecommendationLimit, len(got))
	}

	all := RecommendTracks(table, dataset.Summer, "Pop", 100)
	if len(all) != 9 {
		t.Fatalf("Expected 9 tracks, got %v", all)
	}
	// Duplicates are kept.
	if all[8] != "song 0" {
		t.Errorf("Expected repeated song 0 last, got %q", all[8])
	}
}

func TestRecommendTracksNoMatches(t *testing.T) {
	got := RecommendTracks(mixedTable(), dataset.Autumn, "Pop", 5)
	if got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil slice, got %#v", got)
	}
}

func TestSeasonalSummary(t *testing.T) {
	summary := SeasonalSummary(mixedTable())
	if len(summary) != 4 {
		t.Fatalf("Expected 4 seasons, got %v", summary)
	}

	want := []string{
		"In Summer your most-listened genre is Pop",
		"In Autumn there is no listening data",
		"In Winter your most-listened genre is Rock & Indie",
		"In Spring your most-listened genre is Jazz, Soul & Blues",
	}
	for i, s := range summary {
		if s.String() != want[i] {
			t.Errorf("line %d = %q, want %q", i, s.String(), want[i])
		}
	}
	if !errors.Is(summary[1].Err, ErrNoDataForSeason) {
		t.Errorf("Expected ErrNoDataForSeason for Autumn, got %v", summary[1].Err)
	}
}

func TestGenerateReport(t *testing.T) {
	table := dataset.NewTable([]dataset.Record{
		{TrackName: "a", Genre: "Pop", Season: dataset.Summer, DateAdded: time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)},
		{TrackName: "a", Genre: "Pop", Season: dataset.Summer, DateAdded: time.Date(2023, 7, 2, 0, 0, 0, 0, time.UTC)},
		{TrackName: "b", Genre: "Rock", Season: dataset.Winter, DateAdded: time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC)},
	})
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	report := GenerateReport(table, now, "2023")

	wantMetadata := ProfileMetadata{
		GeneratedDate:  "2024-03-01",
		TotalListens:   3,
		DistinctGenres: 2,
		DistinctTracks: 2,
		FirstAdded:     "2023-01-05",
		LastAdded:      "2023-07-02",
		Period:         "2023",
	}
	if report.Metadata != wantMetadata {
		t.Errorf("Metadata = %+v, want %+v", report.Metadata, wantMetadata)
	}
	if want := []GenreCount{{"Pop", 2}, {"Rock", 1}}; !reflect.DeepEqual(report.Genres, want) {
		t.Errorf("Genres = %v, want %v", report.Genres, want)
	}
	if len(report.GenresBySeason) != 2 {
		t.Errorf("Expected 2 genre and season pairs, got %v", report.GenresBySeason)
	}
	wantFavourites := []SeasonGenre{
		{Season: dataset.Summer, Genre: "Pop"},
		{Season: dataset.Winter, Genre: "Rock"},
	}
	if !reflect.DeepEqual(report.SeasonalFavourites, wantFavourites) {
		t.Errorf("SeasonalFavourites = %v, want %v", report.SeasonalFavourites, wantFavourites)
	}
}

func TestGenerateReportEmpty(t *testing.T) {
	report := GenerateReport(dataset.NewTable(nil), time.Now(), "")
	if report.Metadata.TotalListens != 0 {
		t.Errorf("Expected 0 listens, got %d", report.Metadata.TotalListens)
	}
	if report.Metadata.FirstAdded != "" {
		t.Errorf("Expected no first date, got %q", report.Metadata.FirstAdded)
	}
	if len(report.SeasonalFavourites) != 0 {
		t.Errorf("Expected no favourites, got %v", report.SeasonalFavourites)
	}
}
