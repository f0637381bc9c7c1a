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
	"os"

	"github.com/spf13/cobra"

	"github.com/ademuri/listening-seasons/internal/chart"
	"github.com/ademuri/listening-seasons/internal/dashboard"
)

var chartFormat string
var chartOutput string

var chartCmd = &cobra.Command{
	Use:       "chart <bar|pie> [from] [to (optional)]",
	Short:     "Renders the bar or pie chart to an image",
	Long:      `Writes SVG or PNG to stdout, or to the file given with --output.`,
	Args:      cobra.RangeArgs(1, 3),
	ValidArgs: []string{string(chart.Bar), string(chart.Pie)},
	Run: func(cmd *cobra.Command, args []string) {
		err := writeChart(cmd.Context(), args[0], chartFormat, chartOutput, args[1:])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(chartCmd)

	chartCmd.Flags().StringVar(&chartFormat, "format", "svg", "Image format: svg or png")
	chartCmd.Flags().StringVarP(&chartOutput, "output", "o", "", "Output file (default stdout)")
}

func writeChart(ctx context.Context, kind, formatName, output string, args []string) error {
	format, err := chart.ParseFormat(formatName)
	if err != nil {
		return err
	}

	table, _, err := loadTable(ctx, args)
	if err != nil {
		return err
	}

	charts := dashboard.New(table).Charts()
	var spec *chart.Spec
	switch chart.Kind(kind) {
	case chart.Bar:
		spec = charts.Bar
	case chart.Pie:
		spec = charts.Pie
	default:
		return fmt.Errorf("Unknown chart %q, expected bar or pie", kind)
	}

	if output == "" {
		return chart.Render(os.Stdout, spec, format)
	}
	return renderToFile(output, spec, format)
}

// renderToFile leaves no partial file behind when rendering fails.
func renderToFile(output string, spec *chart.Spec, format chart.Format) error {
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating %s: %w", output, err)
	}

	if err := chart.Render(f, spec, format); err != nil {
		f.Close()
		os.Remove(output)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(output)
		return fmt.Errorf("writing %s: %w", output, err)
	}
	return nil
}
