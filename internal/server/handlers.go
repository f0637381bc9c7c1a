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
package server

import (
	"bytes"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ademuri/listening-seasons/internal/chart"
	"github.com/ademuri/listening-seasons/internal/dashboard"
)

type legendEntry struct {
	Name  string
	Color string
}

func (s *Server) landing(c *gin.Context) {
	c.HTML(http.StatusOK, "landing.tmpl", gin.H{"Title": "Listening seasons"})
}

func (s *Server) analysis(c *gin.Context) {
	charts := s.svc.Charts()

	var legend []legendEntry
	for _, series := range charts.Bar.Series {
		legend = append(legend, legendEntry{Name: series.Name, Color: series.Color})
	}

	c.HTML(http.StatusOK, "analysis.tmpl", gin.H{
		"Title":    "Genre preference by season",
		"BarTitle": charts.Bar.Title,
		"PieTitle": charts.Pie.Title,
		"Legend":   legend,
		"Options":  s.svc.Options(),
	})
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"listens": s.svc.Table().Len(),
	})
}

// summary answers with an HTML snippet unless the client asks for JSON.
func (s *Server) summary(c *gin.Context) {
	resp := s.svc.Summary(dashboard.SummaryRequest{})

	switch c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) {
	case gin.MIMEJSON:
		c.JSON(http.StatusOK, resp)
	default:
		c.HTML(http.StatusOK, "summary.tmpl", resp)
	}
}

// recommendations never fails the request: selection problems and empty
// results come back as a message.
func (s *Server) recommendations(c *gin.Context) {
	var req dashboard.RecommendRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := s.svc.Recommend(req)
	message := dashboard.Message(err)

	switch c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) {
	case gin.MIMEJSON:
		c.JSON(http.StatusOK, gin.H{
			"season":  resp.Season,
			"genre":   resp.Genre,
			"tracks":  resp.Tracks,
			"message": message,
		})
	default:
		c.HTML(http.StatusOK, "recommendations.tmpl", gin.H{
			"Tracks":  resp.Tracks,
			"Message": message,
		})
	}
}

func (s *Server) options(c *gin.Context) {
	c.JSON(http.StatusOK, s.svc.Options())
}

func (s *Server) chartSpec(c *gin.Context) {
	spec, ok := s.lookupChart(c.Param("kind"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown chart " + c.Param("kind")})
		return
	}
	c.JSON(http.StatusOK, spec)
}

// chartImage serves /charts/<kind>.<format>.
func (s *Server) chartImage(c *gin.Context) {
	file := c.Param("file")
	ext := path.Ext(file)

	format, err := chart.ParseFormat(strings.TrimPrefix(ext, "."))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	spec, ok := s.lookupChart(strings.TrimSuffix(file, ext))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown chart " + file})
		return
	}

	var buf bytes.Buffer
	if err := chart.Render(&buf, spec, format); err != nil {
		s.logger.Error().Err(err).Str("chart", file).Msg("Rendering chart")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "rendering chart failed"})
		return
	}
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

func (s *Server) lookupChart(kind string) (*chart.Spec, bool) {
	charts := s.svc.Charts()
	switch chart.Kind(kind) {
	case chart.Bar:
		return charts.Bar, true
	case chart.Pie:
		return charts.Pie, true
	}
	return nil, false
}
