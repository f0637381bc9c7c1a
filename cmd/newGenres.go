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
	"time"

	"github.com/spf13/cobra"

	"github.com/ademuri/listening-seasons/internal/dataset"
)

var newGenresMin int
var newGenresCmd = &cobra.Command{
	Use:   "new-genres [from] [to (optional)]",
	Short: "Gets genres first listened to in the given time period",
	Long:  `Uses the specified date or date range. Date strings look like 'yyyy', 'yyyy-mm', or 'yyyy-mm-dd'.`,
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		err := printNewGenres(cmd.Context(), os.Stdout, newGenresMin, args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(newGenresCmd)

	newGenresCmd.Flags().IntVar(&newGenresMin, "min", 0, "only show genres with more listens than this in the period")
}

func printNewGenres(ctx context.Context, out io.Writer, threshold int, args []string) error {
	start, end, _, err := dataset.ParseDateRange(args)
	if err != nil {
		return fmt.Errorf("parsing dates: %w", err)
	}

	// The whole history is needed to tell whether a genre is new.
	table, _, err := loadTable(ctx, nil)
	if err != nil {
		return err
	}

	a, err := (&NewGenresAnalyzer{Start: start, End: end, FilterThreshold: threshold}).GetResults(table)
	if err != nil {
		return err
	}
	fmt.Fprint(out, a)
	return nil
}

type NewGenresAnalyzer struct {
	Start time.Time
	End   time.Time

	// Only return genres with more listens in the period than this.
	FilterThreshold int
}

func (t *NewGenresAnalyzer) GetName() string {
	return "New genres"
}

func (t *NewGenresAnalyzer) GetResults(table *dataset.Table) (a Analysis, err error) {
	first := make(map[string]time.Time)
	inPeriod := make(map[string]int)
	var order []string

	for i := 0; i < table.Len(); i++ {
		r := table.At(i)
		seen, ok := first[r.Genre]
		if !ok {
			order = append(order, r.Genre)
		}
		if !ok || r.DateAdded.Before(seen) {
			first[r.Genre] = r.DateAdded
		}
		if !r.DateAdded.Before(t.Start) && r.DateAdded.Before(t.End) {
			inPeriod[r.Genre]++
		}
	}

	a.results = [][]string{{"Genre", "First listened", "Listens"}}
	numGenres := 0
	for _, genre := range order {
		f := first[genre]
		if f.Before(t.Start) || !f.Before(t.End) {
			continue
		}
		if inPeriod[genre] <= t.FilterThreshold {
			continue
		}
		a.results = append(a.results, []string{genre, f.Format(dateFormat), strconv.Itoa(inPeriod[genre])})
		numGenres++
	}

	a.summary = fmt.Sprintf("Found %d new genres from %s to %s",
		numGenres, t.Start.Format(dateFormat), t.End.Format(dateFormat))
	return
}
