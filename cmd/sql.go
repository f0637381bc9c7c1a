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
	"strings"

	"github.com/spf13/cobra"

	"github.com/ademuri/listening-seasons/internal/store"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Runs a SQL query over the listening history",
	Long: `Loads the dataset into an in-memory SQLite database and runs the query.
Tables: Genre(name), Track(id, name, genre), Listen(id, position, track, season, date).
The view Listens(position, track_name, genre, season, date_added) joins them.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := runSQL(cmd.Context(), os.Stdout, strings.Join(args, " "))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(sqlCmd)
}

func runSQL(ctx context.Context, out io.Writer, query string) error {
	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	header, rows, err := db.Query(query)
	if err != nil {
		return err
	}

	a := Analysis{results: append([][]string{header}, rows...)}
	a.summary = fmt.Sprintf("%d rows", len(rows))
	fmt.Fprint(out, a)
	return nil
}

// openStore loads the configured dataset into a fresh in-memory database.
func openStore(ctx context.Context) (*store.Store, error) {
	table, _, err := loadTable(ctx, nil)
	if err != nil {
		return nil, err
	}

	db, err := store.New()
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.ImportTable(table); err != nil {
		db.Close()
		return nil, fmt.Errorf("importing dataset: %w", err)
	}
	return db, nil
}
