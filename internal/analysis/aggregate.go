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

import "github.com/ademuri/listening-seasons/internal/dataset"

// GenreSeasonCount is the number of listens for one (genre, season) pair.
type GenreSeasonCount struct {
	Genre  string         `yaml:"genre" json:"genre"`
	Season dataset.Season `yaml:"season" json:"season"`
	Count  int            `yaml:"count" json:"count"`
}

// GenreCount is the number of listens for one genre.
type GenreCount struct {
	Genre string `yaml:"genre" json:"genre"`
	Count int    `yaml:"count" json:"count"`
}

type genreSeason struct {
	genre  string
	season dataset.Season
}

// CountByGenreAndSeason groups the table by (genre, season). Groups are
// returned in the order their key first appears in the table; pairs with no
// rows are absent.
func CountByGenreAndSeason(t *dataset.Table) []GenreSeasonCount {
	var counts []GenreSeasonCount
	index := make(map[genreSeason]int)

	for i := 0; i < t.Len(); i++ {
		r := t.At(i)
		key := genreSeason{r.Genre, r.Season}
		pos, ok := index[key]
		if !ok {
			pos = len(counts)
			index[key] = pos
			counts = append(counts, GenreSeasonCount{Genre: r.Genre, Season: r.Season})
		}
		counts[pos].Count++
	}
	return counts
}

// CountByGenre groups the table by genre alone, in first-occurrence order.
func CountByGenre(t *dataset.Table) []GenreCount {
	var counts []GenreCount
	index := make(map[string]int)

	for i := 0; i < t.Len(); i++ {
		genre := t.At(i).Genre
		pos, ok := index[genre]
		if !ok {
			pos = len(counts)
			index[genre] = pos
			counts = append(counts, GenreCount{Genre: genre})
		}
		counts[pos].Count++
	}
	return counts
}

// Total sums the counts.
func Total(counts []GenreCount) int {
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	return total
}
