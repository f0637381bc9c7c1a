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

	"github.com/ademuri/listening-seasons/internal/dataset"
)

// ErrNoDataForSeason is returned when no listens fall in the requested season.
var ErrNoDataForSeason = errors.New("no data for season")

// DefaultRecommendationLimit is used when RecommendTracks is given a
// non-positive limit.
const DefaultRecommendationLimit = 5

// MostCommonGenre returns the most listened genre among rows in season.
// On a tie, the genre that appears first in the table wins.
func MostCommonGenre(t *dataset.Table, season dataset.Season) (string, error) {
	counts := make(map[string]int)
	var order []string

	for i := 0; i < t.Len(); i++ {
		r := t.At(i)
		if r.Season != season {
			continue
		}
		if _, ok := counts[r.Genre]; !ok {
			order = append(order, r.Genre)
		}
		counts[r.Genre]++
	}

	if len(order) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoDataForSeason, season)
	}

	best := order[0]
	for _, genre := range order[1:] {
		if counts[genre] > counts[best] {
			best = genre
		}
	}
	return best, nil
}

// RecommendTracks returns up to limit track names listened to in season with
// the given genre, in table order. Duplicates are kept. No matches yields an
// empty slice rather than an error.
func RecommendTracks(t *dataset.Table, season dataset.Season, genre string, limit int) []string {
	if limit <= 0 {
		limit = DefaultRecommendationLimit
	}

	tracks := []string{}
	for i := 0; i < t.Len() && len(tracks) < limit; i++ {
		r := t.At(i)
		if r.Season == season && r.Genre == genre {
			tracks = append(tracks, r.TrackName)
		}
	}
	return tracks
}

// SeasonGenre is one line of the seasonal summary.
type SeasonGenre struct {
	Season dataset.Season `yaml:"season" json:"season"`
	Genre  string         `yaml:"genre,omitempty" json:"genre,omitempty"`
	Err    error          `yaml:"-" json:"-"`
}

func (s SeasonGenre) String() string {
	if s.Err != nil {
		return fmt.Sprintf("In %s there is no listening data", s.Season)
	}
	return fmt.Sprintf("In %s your most-listened genre is %s", s.Season, s.Genre)
}

// SeasonalSummary looks up the most common genre for each canonical season.
// Each lookup is independent; a season without data carries its error
// instead of failing the whole summary.
func SeasonalSummary(t *dataset.Table) []SeasonGenre {
	summary := make([]SeasonGenre, 0, len(dataset.Seasons))
	for _, season := range dataset.Seasons {
		genre, err := MostCommonGenre(t, season)
		summary = append(summary, SeasonGenre{Season: season, Genre: genre, Err: err})
	}
	return summary
}
