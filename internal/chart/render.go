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
package chart

import (
	"fmt"
	"io"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Format selects the output encoding of Render.
type Format string

const (
	SVG Format = "svg"
	PNG Format = "png"
)

const (
	width    = 1024
	height   = 600
	barWidth = 18
)

// ParseFormat accepts "svg" or "png" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case SVG, PNG:
		return f, nil
	}
	return "", fmt.Errorf("unknown chart format %q (want svg or png)", s)
}

// ContentType is the MIME type of the rendered image.
func (f Format) ContentType() string {
	if f == PNG {
		return "image/png"
	}
	return "image/svg+xml"
}

func (f Format) provider() gochart.RendererProvider {
	if f == PNG {
		return gochart.PNG
	}
	return gochart.SVG
}

// Text is the label drawn on a pie slice: the genre and its share.
func (s Slice) Text() string {
	return fmt.Sprintf("%s %.1f%%", s.Label, s.Percent)
}

// Render draws spec to w. A spec with no data produces a placeholder image.
func Render(w io.Writer, spec *Spec, format Format) error {
	if spec.Empty() {
		return renderPlaceholder(w, spec, format)
	}
	switch spec.Kind {
	case Bar:
		return renderBar(w, spec, format)
	case Pie:
		return renderPie(w, spec, format)
	}
	return fmt.Errorf("unknown chart kind %q", spec.Kind)
}

func color(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

func themeStyles(t Theme) (background, canvas, text gochart.Style) {
	bg := color(t.Background)
	fg := color(t.Foreground)
	background = gochart.Style{
		FillColor:   bg,
		StrokeColor: bg,
		Padding:     gochart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
	}
	canvas = gochart.Style{FillColor: bg, StrokeColor: bg}
	text = gochart.Style{FontColor: fg, StrokeColor: fg}
	return background, canvas, text
}

// renderBar lays out one bar per present (genre, season) pair. Bars of the
// same genre sit next to each other and a transparent spacer separates
// genres. The genre name labels the first bar of its group.
func renderBar(w io.Writer, spec *Spec, format Format) error {
	background, canvas, text := themeStyles(spec.Theme)

	var bars []gochart.Value
	tallest := 0
	for i, genre := range spec.Categories {
		if i > 0 {
			bars = append(bars, gochart.Value{
				Value: 0,
				Style: gochart.Style{FillColor: drawing.ColorTransparent, StrokeColor: drawing.ColorTransparent},
			})
		}
		first := true
		for _, s := range spec.Series {
			v := s.Values[i]
			if v == 0 {
				continue
			}
			label := ""
			if first {
				label = genre
				first = false
			}
			if v > tallest {
				tallest = v
			}
			c := color(s.Color)
			bars = append(bars, gochart.Value{
				Label: label,
				Value: float64(v),
				Style: gochart.Style{FillColor: c, StrokeColor: c, StrokeWidth: 1},
			})
		}
	}

	xStyle := text
	xStyle.TextRotationDegrees = float64(-spec.XTickAngle)

	c := gochart.BarChart{
		Title:      spec.Title,
		TitleStyle: text,
		Width:      width,
		Height:     height,
		BarWidth:   barWidth,
		BarSpacing: 2,
		Background: background,
		Canvas:     canvas,
		XAxis:      xStyle,
		YAxis: gochart.YAxis{
			Name:           spec.YAxis,
			Style:          text,
			Range:          &gochart.ContinuousRange{Min: 0, Max: float64(tallest)},
			ValueFormatter: gochart.IntValueFormatter,
		},
		Bars: bars,
	}
	if err := c.Render(format.provider(), w); err != nil {
		return fmt.Errorf("rendering bar chart: %w", err)
	}
	return nil
}

func renderPie(w io.Writer, spec *Spec, format Format) error {
	background, canvas, text := themeStyles(spec.Theme)

	values := make([]gochart.Value, 0, len(spec.Slices))
	for _, s := range spec.Slices {
		c := color(s.Color)
		values = append(values, gochart.Value{
			Label: s.Text(),
			Value: float64(s.Value),
			Style: gochart.Style{
				FillColor:   c,
				StrokeColor: color(spec.Theme.Background),
				FontColor:   color(spec.Theme.Foreground),
			},
		})
	}

	c := gochart.PieChart{
		Title:      spec.Title,
		TitleStyle: text,
		Width:      height,
		Height:     height,
		Background: background,
		Canvas:     canvas,
		Values:     values,
	}
	if err := c.Render(format.provider(), w); err != nil {
		return fmt.Errorf("rendering pie chart: %w", err)
	}
	return nil
}

// renderPlaceholder draws an empty themed chart. go-chart refuses to render
// a chart without values, so a single zero bar stands in for the data.
func renderPlaceholder(w io.Writer, spec *Spec, format Format) error {
	background, canvas, text := themeStyles(spec.Theme)
	c := gochart.BarChart{
		Title:      spec.Title,
		TitleStyle: text,
		Width:      width,
		Height:     height,
		BarWidth:   barWidth,
		Background: background,
		Canvas:     canvas,
		XAxis:      text,
		YAxis: gochart.YAxis{
			Style: text,
			Range: &gochart.ContinuousRange{Min: 0, Max: 1},
		},
		Bars: []gochart.Value{{
			Label: "No data",
			Value: 0,
			Style: gochart.Style{FillColor: drawing.ColorTransparent, StrokeColor: drawing.ColorTransparent},
		}},
	}
	if err := c.Render(format.provider(), w); err != nil {
		return fmt.Errorf("rendering empty chart: %w", err)
	}
	return nil
}
