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
	"time"

	"github.com/ademuri/listening-seasons/internal/dataset"
)

const dateFormat = "2006-01-02"

// GenerateReport builds the full seasonal report for a table. now stamps
// the report; period is a free-form description of any date filter applied.
func GenerateReport(t *dataset.Table, now time.Time, period string) *Report {
	report := &Report{}

	genres := CountByGenre(t)
	tracks := make(map[string]bool)
	for i := 0; i < t.Len(); i++ {
		tracks[t.At(i).TrackName] = true
	}

	report.Metadata = ProfileMetadata{
		GeneratedDate:  now.Format(dateFormat),
		TotalListens:   t.Len(),
		DistinctGenres: len(genres),
		DistinctTracks: len(tracks),
		Period:         period,
	}
	if first, last := t.DateSpan(); !first.IsZero() {
		report.Metadata.FirstAdded = first.Format(dateFormat)
		report.Metadata.LastAdded = last.Format(dateFormat)
	}

	report.Genres = genres
	report.GenresBySeason = CountByGenreAndSeason(t)

	// Seasons without data are left out of the YAML rather than listed with
	// an empty genre.
	for _, sg := range SeasonalSummary(t) {
		if sg.Err == nil {
			report.SeasonalFavourites = append(report.SeasonalFavourites, sg)
		}
	}

	return report
}
