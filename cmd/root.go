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
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/ademuri/listening-seasons/internal/dataset"
)

const dateFormat = "2006-01-02"

var cfgFile string
var datasetPath string
var logLevel string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "listening-seasons",
	Short: "Explores which genres you listen to in each season",
	Long: `Loads a listening history export (CSV with track_name, general_genre, season and
date_added columns) and answers questions about it: counts per genre and season, the
most listened genre of each season, and track recommendations. 'serve' starts the
web dashboard.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default is $HOME/.listening-seasons.yaml)")

	rootCmd.PersistentFlags().StringVarP(
		&datasetPath, "dataset", "d", "./listening_history.csv", "Path or http(s) URL of the listening history CSV")
	viper.BindPFlag("dataset", rootCmd.PersistentFlags().Lookup("dataset"))

	rootCmd.PersistentFlags().StringVar(
		&logLevel, "log_level", "warn", "Log level: debug, info, warn or error")
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log_level"))

	rootCmd.PersistentFlags().String("from", "", "From email address")
	viper.BindPFlag("from", rootCmd.PersistentFlags().Lookup("from"))

	rootCmd.PersistentFlags().String("sendgrid_api_key", "", "SendGrid API key used by 'email'")
	viper.BindPFlag("sendgrid_api_key", rootCmd.PersistentFlags().Lookup("sendgrid_api_key"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".listening-seasons" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".listening-seasons")
	}

	// LISTENING_SEASONS_DATASET, LISTENING_SEASONS_LOG_LEVEL, ...
	viper.SetEnvPrefix("LISTENING_SEASONS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	// See https://github.com/spf13/viper/pull/852
	rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
		if viper.IsSet(f.Name) && viper.GetString(f.Name) != "" {
			rootCmd.Flags().Set(f.Name, viper.GetString(f.Name))
		}
	})
}

func setupLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.WarnLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

func newLogger() zerolog.Logger {
	return setupLogger(viper.GetString("log_level"))
}

// loadTable loads the configured dataset and narrows it to the date range in
// args, if any. period describes the range for reports and is empty when the
// whole table is used.
func loadTable(ctx context.Context, args []string) (table *dataset.Table, period string, err error) {
	start, end, ok, err := dataset.ParseDateRange(args)
	if err != nil {
		return nil, "", fmt.Errorf("parsing dates: %w", err)
	}

	table, err = dataset.NewLoader(newLogger()).Load(ctx, viper.GetString("dataset"))
	if err != nil {
		return nil, "", err
	}

	if ok {
		table = table.Between(start, end)
		period = fmt.Sprintf("%s to %s", start.Format(dateFormat), end.Format(dateFormat))
	}
	return table, period, nil
}
