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
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ademuri/listening-seasons/internal/dataset"
	"github.com/ademuri/listening-seasons/internal/store"
)

var limitTracks int

var topNCmd = &cobra.Command{
	Use:   "top-tracks [from] [to (optional)]",
	Short: "Lists the most repeated tracks of each season",
	Args:  cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		err := printTopN(cmd.Context(), os.Stdout, args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(topNCmd)
	topNCmd.Flags().IntVarP(&limitTracks, "number", "n", 10, "Number of tracks to show per season")
}

func printTopN(ctx context.Context, out io.Writer, args []string) error {
	table, _, err := loadTable(ctx, args)
	if err != nil {
		return err
	}

	a, err := (&TopTracksAnalyzer{Limit: limitTracks}).GetResults(table)
	if err != nil {
		return err
	}
	fmt.Fprint(out, a)
	return nil
}

type TopTracksAnalyzer struct {
	Limit int
}

func (t *TopTracksAnalyzer) Configure(params map[string]string) error {
	if n, ok := params["n"]; ok {
		limit, err := strconv.Atoi(n)
		if err != nil || limit <= 0 {
			return fmt.Errorf("invalid n %q", n)
		}
		t.Limit = limit
	}
	return nil
}

func (t *TopTracksAnalyzer) GetName() string {
	return "Top tracks per season"
}

func (t *TopTracksAnalyzer) GetResults(table *dataset.Table) (a Analysis, err error) {
	db, err := store.New()
	if err != nil {
		err = fmt.Errorf("opening database: %w", err)
		return
	}
	defer db.Close()

	if err = db.ImportTable(table); err != nil {
		err = fmt.Errorf("importing dataset: %w", err)
		return
	}

	a.results = [][]string{{"Season", "Track", "Genre", "Listens"}}
	numTracks := 0
	for _, season := range dataset.Seasons {
		var top []store.TrackPlayCount
		top, err = db.GetTopTracks(season.String(), t.Limit)
		if err != nil {
			return
		}
		for _, track := range top {
			a.results = append(a.results, []string{
				season.String(), track.Track, track.Genre, strconv.FormatInt(track.Count, 10),
			})
			numTracks++
		}
	}

	total, err := db.GetTotalListens()
	if err != nil {
		err = fmt.Errorf("counting listens: %w", err)
		return
	}
	a.summary = fmt.Sprintf("Showing %d tracks out of %d listens", numTracks, total)

	first, last, err := db.GetListenSpan()
	if err != nil {
		return
	}
	if !first.IsZero() {
		a.summary += fmt.Sprintf(" added %s to %s", first.Format(dateFormat), last.Format(dateFormat))
	}
	return
}
