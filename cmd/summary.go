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
	"html"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ademuri/listening-seasons/internal/dashboard"
	"github.com/ademuri/listening-seasons/internal/dataset"
)

var summaryCmd = &cobra.Command{
	Use:   "summary [from] [to (optional)]",
	Short: "Prints the most listened genre of each season",
	Args:  cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		err := printSummary(cmd.Context(), os.Stdout, args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func printSummary(ctx context.Context, out io.Writer, args []string) error {
	table, _, err := loadTable(ctx, args)
	if err != nil {
		return err
	}

	for _, line := range dashboard.New(table).Summary(dashboard.SummaryRequest{}).Lines {
		fmt.Fprintln(out, line.Text)
	}
	return nil
}

// SummaryAnalyzer is the seasonal summary as an email section.
type SummaryAnalyzer struct{}

func (SummaryAnalyzer) GetName() string {
	return "Most listened genre per season"
}

func (SummaryAnalyzer) GetResults(table *dataset.Table) (a Analysis, err error) {
	var sb strings.Builder
	sb.WriteString("<ul>")
	for _, line := range dashboard.New(table).Summary(dashboard.SummaryRequest{}).Lines {
		sb.WriteString(fmt.Sprintf("<li>%s</li>", html.EscapeString(line.Text)))
	}
	sb.WriteString("</ul>")

	a.BodyOverride = sb.String()
	return
}
