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

// Package chart turns aggregated listening counts into chart descriptions
// and renders them.
package chart

import (
	"github.com/ademuri/listening-seasons/internal/analysis"
	"github.com/ademuri/listening-seasons/internal/dataset"
)

type Kind string

const (
	Bar Kind = "bar"
	Pie Kind = "pie"
)

const (
	BarTitle   = "Tracks listened to by genre and season"
	PieTitle   = "Genre distribution"
	XTickAngle = -45

	FallbackColor = "#808080"
)

// SeasonColors maps each canonical season to its bar color.
var SeasonColors = map[dataset.Season]string{
	dataset.Autumn: "#8B4513",
	dataset.Winter: "#87CEEB",
	dataset.Summer: "#FFD700",
	dataset.Spring: "#9ACD32",
}

// DefaultGenreColors is the pie palette for the genres of the original
// export. Genres not listed here get FallbackColor.
var DefaultGenreColors = map[string]string{
	"Pop":                "#F4A7B9",
	"Reggaeton":          "#800080",
	"Rock & Indie":       "#8B0000",
	"Hip hop":            "#000000",
	"Jazz, Soul & Blues": "#000080",
	"EDM & Disco":        "#87CEEB",
	"Reggae":             "#006400",
	"Flamenco":           "#FF0000",
	"Country":            "#8B4513",
	"Música clásica":     "#9ACD32",
	"Otros":              "#808080",
}

// Theme holds the page and text colors of a chart.
type Theme struct {
	Background string `json:"background"`
	Foreground string `json:"foreground"`
}

// DarkTheme is applied to every chart.
var DarkTheme = Theme{Background: "#000000", Foreground: "#FFFFFF"}

// Series is one season of a grouped bar chart. Values line up with
// Spec.Categories; a zero means the pair is absent from the data.
type Series struct {
	Name   string `json:"name"`
	Color  string `json:"color"`
	Values []int  `json:"values"`
}

// Slice is one genre of a pie chart.
type Slice struct {
	Label   string  `json:"label"`
	Value   int     `json:"value"`
	Percent float64 `json:"percent"`
	Color   string  `json:"color"`
}

// Spec is a renderer-independent chart description.
type Spec struct {
	Kind       Kind     `json:"kind"`
	Title      string   `json:"title"`
	XAxis      string   `json:"x_axis,omitempty"`
	YAxis      string   `json:"y_axis,omitempty"`
	XTickAngle int      `json:"x_tick_angle,omitempty"`
	Categories []string `json:"categories,omitempty"`
	Series     []Series `json:"series,omitempty"`
	Slices     []Slice  `json:"slices,omitempty"`
	Theme      Theme    `json:"theme"`
}

// Empty reports whether the spec has nothing to draw.
func (s *Spec) Empty() bool {
	switch s.Kind {
	case Pie:
		return len(s.Slices) == 0
	default:
		return len(s.Categories) == 0 || len(s.Series) == 0
	}
}

// SeasonColor returns the bar color for a season.
func SeasonColor(s dataset.Season) string {
	if c, ok := SeasonColors[s]; ok {
		return c
	}
	return FallbackColor
}

// BuildBarChart describes a grouped bar chart: genres on the x axis, one
// series per season, both in the order they first appear in counts.
func BuildBarChart(counts []analysis.GenreSeasonCount) *Spec {
	spec := &Spec{
		Kind:       Bar,
		Title:      BarTitle,
		XAxis:      "Genre",
		YAxis:      "Number of tracks",
		XTickAngle: XTickAngle,
		Theme:      DarkTheme,
	}

	genreIndex := make(map[string]int)
	seasonIndex := make(map[dataset.Season]int)
	for _, c := range counts {
		if _, ok := genreIndex[c.Genre]; !ok {
			genreIndex[c.Genre] = len(spec.Categories)
			spec.Categories = append(spec.Categories, c.Genre)
		}
		if _, ok := seasonIndex[c.Season]; !ok {
			seasonIndex[c.Season] = len(spec.Series)
			spec.Series = append(spec.Series, Series{
				Name:  c.Season.String(),
				Color: SeasonColor(c.Season),
			})
		}
	}

	for i := range spec.Series {
		spec.Series[i].Values = make([]int, len(spec.Categories))
	}
	for _, c := range counts {
		spec.Series[seasonIndex[c.Season]].Values[genreIndex[c.Genre]] += c.Count
	}
	return spec
}

// BuildPieChart describes one slice per genre. Colors come from palette,
// falling back to FallbackColor; a nil palette uses DefaultGenreColors.
func BuildPieChart(counts []analysis.GenreCount, palette map[string]string) *Spec {
	if palette == nil {
		palette = DefaultGenreColors
	}
	spec := &Spec{
		Kind:  Pie,
		Title: PieTitle,
		Theme: DarkTheme,
	}

	total := analysis.Total(counts)
	for _, c := range counts {
		color, ok := palette[c.Genre]
		if !ok {
			color = FallbackColor
		}
		var pct float64
		if total > 0 {
			pct = float64(c.Count) / float64(total) * 100
		}
		spec.Slices = append(spec.Slices, Slice{
			Label:   c.Genre,
			Value:   c.Count,
			Percent: pct,
			Color:   color,
		})
	}
	return spec
}
