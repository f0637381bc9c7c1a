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
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ademuri/listening-seasons/internal/dashboard"
	"github.com/ademuri/listening-seasons/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the web dashboard",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := runServer(ctx); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("listen", ":8050", "Address to listen on")
	viper.BindPFlag("listen", serveCmd.Flags().Lookup("listen"))

	serveCmd.Flags().Float64("rate", server.DefaultConfig.Rate, "Requests per second allowed on API and chart routes")
	viper.BindPFlag("rate", serveCmd.Flags().Lookup("rate"))

	serveCmd.Flags().Int("burst", server.DefaultConfig.Burst, "Burst size for the rate limit")
	viper.BindPFlag("burst", serveCmd.Flags().Lookup("burst"))

	serveCmd.Flags().IntP("number", "n", 5, "Number of tracks to recommend")
	viper.BindPFlag("recommendations", serveCmd.Flags().Lookup("number"))
}

func runServer(ctx context.Context) error {
	// Loaded once; every request reads the same immutable table.
	table, _, err := loadTable(ctx, nil)
	if err != nil {
		return err
	}

	svc := dashboard.New(table, dashboard.WithLimit(viper.GetInt("recommendations")))
	cfg := server.Config{
		Rate:  viper.GetFloat64("rate"),
		Burst: viper.GetInt("burst"),
	}
	srv, err := server.New(svc, cfg, newLogger())
	if err != nil {
		return err
	}
	return srv.Run(ctx, viper.GetString("listen"))
}
