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

// Package dashboard answers the dashboard's questions over a loaded table.
// Each handler takes a typed request and returns a typed response; nothing
// here holds mutable state, so a Service is safe for concurrent use.
package dashboard

import (
	"errors"
	"strings"

	"github.com/ademuri/listening-seasons/internal/analysis"
	"github.com/ademuri/listening-seasons/internal/chart"
	"github.com/ademuri/listening-seasons/internal/dataset"
)

var (
	ErrIncompleteSelection = errors.New("incomplete selection")
	ErrNoMatchingTracks    = errors.New("no matching tracks")
)

const (
	incompleteSelectionMessage = "Please select both a season and a genre."
	noMatchingTracksMessage    = "No tracks found for this combination."
	noDataForSeasonMessage     = "No data for this season."
)

// Message turns a handler error into text fit for the user. Unknown errors
// are returned as their own message.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrIncompleteSelection):
		return incompleteSelectionMessage
	case errors.Is(err, ErrNoMatchingTracks):
		return noMatchingTracksMessage
	case errors.Is(err, analysis.ErrNoDataForSeason):
		return noDataForSeasonMessage
	}
	return err.Error()
}

type Service struct {
	table   *dataset.Table
	limit   int
	palette map[string]string
}

type Option func(*Service)

// WithLimit caps the number of recommended tracks.
func WithLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.limit = n
		}
	}
}

// WithPalette overrides the genre colors of the pie chart.
func WithPalette(p map[string]string) Option {
	return func(s *Service) {
		s.palette = p
	}
}

func New(table *dataset.Table, opts ...Option) *Service {
	s := &Service{
		table:   table,
		limit:   analysis.DefaultRecommendationLimit,
		palette: chart.DefaultGenreColors,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Table returns the table the service answers from.
func (s *Service) Table() *dataset.Table {
	return s.table
}

type SummaryRequest struct{}

type SummaryLine struct {
	Season  dataset.Season `json:"season"`
	Genre   string         `json:"genre,omitempty"`
	Text    string         `json:"text"`
	Message string         `json:"message,omitempty"`
}

type SummaryResponse struct {
	Lines []SummaryLine `json:"lines"`
}

// Summary reports the most listened genre of each season. Seasons without
// data carry a message instead of a genre.
func (s *Service) Summary(SummaryRequest) SummaryResponse {
	var resp SummaryResponse
	for _, sg := range analysis.SeasonalSummary(s.table) {
		resp.Lines = append(resp.Lines, SummaryLine{
			Season:  sg.Season,
			Genre:   sg.Genre,
			Text:    sg.String(),
			Message: Message(sg.Err),
		})
	}
	return resp
}

type RecommendRequest struct {
	Season string `form:"season" json:"season"`
	Genre  string `form:"genre" json:"genre"`
}

type RecommendResponse struct {
	Season dataset.Season `json:"season"`
	Genre  string         `json:"genre"`
	Tracks []string       `json:"tracks"`
}

// Recommend lists tracks listened to in the requested season and genre.
func (s *Service) Recommend(req RecommendRequest) (RecommendResponse, error) {
	seasonName := strings.TrimSpace(req.Season)
	genre := strings.TrimSpace(req.Genre)
	if seasonName == "" || genre == "" {
		return RecommendResponse{}, ErrIncompleteSelection
	}

	season, _ := dataset.ParseSeason(seasonName)
	resp := RecommendResponse{
		Season: season,
		Genre:  genre,
		Tracks: analysis.RecommendTracks(s.table, season, genre, s.limit),
	}
	if len(resp.Tracks) == 0 {
		return resp, ErrNoMatchingTracks
	}
	return resp, nil
}

type OptionsResponse struct {
	Seasons []dataset.Season `json:"seasons"`
	Genres  []string         `json:"genres"`
}

// Options lists the choices offered by the recommendation selectors.
func (s *Service) Options() OptionsResponse {
	return OptionsResponse{
		Seasons: append([]dataset.Season(nil), dataset.Seasons...),
		Genres:  s.table.Genres(),
	}
}

type ChartsResponse struct {
	Bar *chart.Spec `json:"bar"`
	Pie *chart.Spec `json:"pie"`
}

func (s *Service) Charts() ChartsResponse {
	return ChartsResponse{
		Bar: chart.BuildBarChart(analysis.CountByGenreAndSeason(s.table)),
		Pie: chart.BuildPieChart(analysis.CountByGenre(s.table), s.palette),
	}
}
