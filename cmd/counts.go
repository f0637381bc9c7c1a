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

	"github.com/ademuri/listening-seasons/internal/analysis"
	"github.com/ademuri/listening-seasons/internal/dataset"
	"github.com/ademuri/listening-seasons/internal/store"
)

var countsFromSQL bool

var countsCmd = &cobra.Command{
	Use:   "counts [from] [to (optional)]",
	Short: "Counts listens per genre and per genre and season",
	Long:  `Optionally restricted to a date range. Date strings look like 'yyyy', 'yyyy-mm', 'yyyy-mm-dd', or '3m' for the last three months.`,
	Args:  cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		err := printCounts(cmd.Context(), os.Stdout, args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(countsCmd)

	countsCmd.Flags().BoolVar(&countsFromSQL, "sql", false, "Count genre and season pairs in SQLite instead of in memory")
}

func printCounts(ctx context.Context, out io.Writer, args []string) error {
	table, _, err := loadTable(ctx, args)
	if err != nil {
		return err
	}

	for _, a := range []Analyser{GenreCountsAnalyzer{}, &GenreSeasonCountsAnalyzer{FromSQL: countsFromSQL}} {
		result, err := a.GetResults(table)
		if err != nil {
			return fmt.Errorf("%s: %w", a.GetName(), err)
		}
		fmt.Fprintf(out, "%s\n%s\n", a.GetName(), result)
	}
	return nil
}

type GenreCountsAnalyzer struct{}

func (GenreCountsAnalyzer) GetName() string {
	return "Listens by genre"
}

func (GenreCountsAnalyzer) GetResults(table *dataset.Table) (a Analysis, err error) {
	counts := analysis.CountByGenre(table)

	a.results = [][]string{{"Genre", "Listens"}}
	for _, c := range counts {
		a.results = append(a.results, []string{c.Genre, strconv.Itoa(c.Count)})
	}
	a.summary = fmt.Sprintf("Found %d genres and %d listens", len(counts), analysis.Total(counts))
	return
}

type GenreSeasonCountsAnalyzer struct {
	// Count with a GROUP BY over the SQLite import rather than in memory.
	FromSQL bool
}

func (g *GenreSeasonCountsAnalyzer) Configure(params map[string]string) error {
	if source, ok := params["source"]; ok {
		switch source {
		case "sql":
			g.FromSQL = true
		case "memory":
			g.FromSQL = false
		default:
			return fmt.Errorf("invalid source %q, expected sql or memory", source)
		}
	}
	return nil
}

func (g *GenreSeasonCountsAnalyzer) GetName() string {
	return "Listens by genre and season"
}

func (g *GenreSeasonCountsAnalyzer) GetResults(table *dataset.Table) (a Analysis, err error) {
	if g.FromSQL {
		return genreSeasonCountsFromSQL(table)
	}

	counts := analysis.CountByGenreAndSeason(table)

	a.results = [][]string{{"Genre", "Season", "Listens"}}
	for _, c := range counts {
		a.results = append(a.results, []string{c.Genre, c.Season.String(), strconv.Itoa(c.Count)})
	}
	a.summary = fmt.Sprintf("Found %d genre and season pairs", len(counts))
	return
}

func genreSeasonCountsFromSQL(table *dataset.Table) (a Analysis, err error) {
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

	counts, err := db.GetGenreSeasonCounts()
	if err != nil {
		return
	}

	a.results = [][]string{{"Genre", "Season", "Listens"}}
	for _, c := range counts {
		a.results = append(a.results, []string{c.Genre, c.Season, strconv.FormatInt(c.Count, 10)})
	}
	a.summary = fmt.Sprintf("Found %d genre and season pairs", len(counts))
	return
}
