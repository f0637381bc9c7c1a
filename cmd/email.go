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

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ademuri/listening-seasons/internal/dataset"
)

var defaultEmailAnalyses = []string{"summary", "genres-seasons", "top-tracks"}

type SendEmailConfig struct {
	From      string
	To        string
	APIKey    string
	Types     []string
	Params    []map[string]string
	DryRun    bool
	Out       io.Writer
	SendEmail func(apiKey string, message *mail.SGMailV3) error
}

var emailCmd = &cobra.Command{
	Use:   "email <address> [analysis_name...]",
	Short: "Sends an email report",
	Long: `Emails the seasonal listening report to the given address through SendGrid.
  <analysis_name> is zero or more of: summary, genres, genres-seasons, top-tracks.
  Defaults to summary, genres-seasons and top-tracks.`,
	Args: cobra.MinimumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if viper.GetString("from") == "" {
			return fmt.Errorf("required flag(s) \"from\" not set")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		types := args[1:]
		if len(types) == 0 {
			types = defaultEmailAnalyses
		}

		params, _ := cmd.Flags().GetStringArray("params")
		structuredParams, err := parseParams(params, len(types))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		config := SendEmailConfig{
			From:      viper.GetString("from"),
			To:        args[0],
			APIKey:    viper.GetString("sendgrid_api_key"),
			Types:     types,
			Params:    structuredParams,
			DryRun:    viper.GetBool("dryRun"),
			Out:       os.Stdout,
			SendEmail: sendgridSend,
		}
		err = sendEmail(cmd.Context(), config)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(emailCmd)

	var dryRun bool
	emailCmd.Flags().BoolVar(&dryRun, "dry_run", false, "When true, just print instead of emailing")
	viper.BindPFlag("dryRun", emailCmd.Flags().Lookup("dry_run"))

	emailCmd.Flags().StringArray("params", nil, "Parameters for analyses, matched by index (e.g. --params 'n=3')")
}

// parseParams turns each "k=v,k2=v2" flag value into a map. The number of
// values must match the number of analyses, or be zero.
func parseParams(params []string, numAnalyses int) ([]map[string]string, error) {
	if len(params) == 0 {
		return nil, nil
	}
	if len(params) != numAnalyses {
		return nil, fmt.Errorf("Number of --params flags (%d) must match number of analyses (%d), or be 0", len(params), numAnalyses)
	}

	structured := make([]map[string]string, len(params))
	for i, v := range params {
		pMap := make(map[string]string)
		if v != "" {
			for _, pair := range strings.Split(v, ",") {
				kv := strings.SplitN(pair, "=", 2)
				if len(kv) != 2 {
					return nil, fmt.Errorf("invalid parameter %q, expected key=value", pair)
				}
				pMap[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
			}
		}
		structured[i] = pMap
	}
	return structured, nil
}

func sendgridSend(apiKey string, message *mail.SGMailV3) error {
	resp, err := sendgrid.NewSendClient(apiKey).Send(message)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("SendGrid returned status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

func sendEmail(ctx context.Context, config SendEmailConfig) error {
	actions := make([]Analyser, 0, len(config.Types))
	for i, actionName := range config.Types {
		action, err := getActionFromName(actionName)
		if err != nil {
			return err
		}

		if i < len(config.Params) && len(config.Params[i]) > 0 {
			configurable, ok := action.(Configurable)
			if !ok {
				return fmt.Errorf("%s takes no parameters", actionName)
			}
			if err := configurable.Configure(config.Params[i]); err != nil {
				return fmt.Errorf("configuring %s (index %d): %w", actionName, i, err)
			}
		}

		actions = append(actions, action)
	}

	table, _, err := loadTable(ctx, nil)
	if err != nil {
		return err
	}

	subject, out, err := generateEmailContent(table, actions)
	if err != nil {
		return err
	}

	if config.DryRun {
		fmt.Fprintf(config.Out, "Would have sent email: \nsubject: %s\n%s\n", subject, out)
		return nil
	}

	if config.APIKey == "" {
		return fmt.Errorf("sendgrid_api_key must be set in order to send emails")
	}

	from := mail.NewEmail("listening-seasons", config.From)
	to := mail.NewEmail(config.To, config.To)
	message := mail.NewSingleEmail(from, subject, to, subject, out)
	if err := config.SendEmail(config.APIKey, message); err != nil {
		return fmt.Errorf("sendEmail: %w", err)
	}
	return nil
}

func generateEmailContent(table *dataset.Table, actions []Analyser) (subject string, body string, err error) {
	out := `
<html>
  <head>
<style>
td {
  padding: 0.1em 0.2em;
}
table, th, td {
  border: 1px solid black;
  border-collapse: collapse;
}
</style>
  </head>
  <body>
`
	for _, action := range actions {
		out += "<div>\n"
		out += fmt.Sprintf("<h2>%s</h2>\n", html.EscapeString(action.GetName()))

		analysis, err := action.GetResults(table)
		if err != nil {
			return "", "", fmt.Errorf("getting results for %s: %w", action.GetName(), err)
		}

		if analysis.BodyOverride != "" {
			out += analysis.BodyOverride
		} else if len(analysis.results) <= 1 {
			out += "<div>No listens found.</div>\n"
		} else {
			out += "<table>\n<thead>\n<tr>\n"
			for _, header := range analysis.results[0] {
				out += fmt.Sprintf("<th>%s</th>", html.EscapeString(header))
			}
			out += "</tr>\n</thead>\n<tbody>\n"

			for _, row := range analysis.results[1:] {
				out += "<tr>\n"
				for _, column := range row {
					out += fmt.Sprintf("<td>%s</td>\n", html.EscapeString(column))
				}
				out += "</tr>\n"
			}
			out += "</tbody>\n</table>\n"
		}
		out += fmt.Sprintf("<div>%s</div>\n</div>\n", html.EscapeString(analysis.summary))
	}
	out += "  </body>\n</html>\n"

	subject = "Your seasonal listening report"
	if first, last := table.DateSpan(); !first.IsZero() {
		subject += fmt.Sprintf(" (%s to %s)", first.Format(dateFormat), last.Format(dateFormat))
	}

	return subject, out, nil
}
