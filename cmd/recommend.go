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
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ademuri/listening-seasons/internal/dashboard"
	"github.com/ademuri/listening-seasons/internal/dataset"
)

var recommendNumber int
var recommendCmd = &cobra.Command{
	Use:   "recommend <season> <genre>",
	Short: "Recommends tracks you listened to in a season and genre",
	Long:  `Seasons may be given in English or Spanish, e.g. 'Summer' or 'Verano'. Quote genres containing spaces.`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		table, _, err := loadTable(cmd.Context(), nil)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		if err := printRecommendations(os.Stdout, table, recommendNumber, args[0], args[1]); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendCmd.Flags().IntVarP(&recommendNumber, "number", "n", 5, "number of tracks to return")
}

// printRecommendations reports selection problems and empty results as a
// message rather than an error.
func printRecommendations(out io.Writer, table *dataset.Table, limit int, season, genre string) error {
	svc := dashboard.New(table, dashboard.WithLimit(limit))
	resp, err := svc.Recommend(dashboard.RecommendRequest{Season: season, Genre: genre})
	if errors.Is(err, dashboard.ErrIncompleteSelection) || errors.Is(err, dashboard.ErrNoMatchingTracks) {
		fmt.Fprintln(out, dashboard.Message(err))
		return nil
	}
	if err != nil {
		return fmt.Errorf("recommending tracks: %w", err)
	}

	for i, track := range resp.Tracks {
		fmt.Fprintf(out, "%d. %s\n", i+1, track)
	}
	return nil
}
