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
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

func TestGenerateEmailContent(t *testing.T) {
	useTestDataset(t)
	table, _, err := loadTable(context.Background(), nil)
	if err != nil {
		t.Fatalf("loadTable: %v", err)
	}

	actions := []Analyser{&SummaryAnalyzer{}, &GenreCountsAnalyzer{}}
	subject, body, err := generateEmailContent(table, actions)
	if err != nil {
		t.Fatalf("generateEmailContent: %v", err)
	}

	if subject != "Your seasonal listening report (2022-04-02 to 2023-10-20)" {
		t.Errorf("Unexpected subject %q", subject)
	}
	for _, want := range []string{
		"<h2>Most listened genre per season</h2>",
		"<li>In Summer your most-listened genre is Reggaeton</li>",
		"<td>Jazz, Soul &amp; Blues</td>",
		"Found 3 genres and 6 listens",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected body to contain %q, got:\n%s", want, body)
		}
	}
}

func TestSendEmailDryRun(t *testing.T) {
	useTestDataset(t)

	var out bytes.Buffer
	config := SendEmailConfig{
		From:   "me@example.com",
		To:     "you@example.com",
		Types:  []string{"summary"},
		DryRun: true,
		Out:    &out,
		SendEmail: func(string, *mail.SGMailV3) error {
			t.Fatal("dry run must not send")
			return nil
		},
	}
	if err := sendEmail(context.Background(), config); err != nil {
		t.Fatalf("sendEmail: %v", err)
	}
	if !strings.HasPrefix(out.String(), "Would have sent email:") {
		t.Errorf("Unexpected dry run output:\n%s", out.String())
	}
}

func TestSendEmail(t *testing.T) {
	useTestDataset(t)

	var sent *mail.SGMailV3
	var key string
	config := SendEmailConfig{
		From:   "me@example.com",
		To:     "you@example.com",
		APIKey: "test-key",
		Types:  []string{"summary", "top-tracks"},
		SendEmail: func(apiKey string, message *mail.SGMailV3) error {
			key = apiKey
			sent = message
			return nil
		},
	}
	if err := sendEmail(context.Background(), config); err != nil {
		t.Fatalf("sendEmail: %v", err)
	}
	if key != "test-key" {
		t.Errorf("Expected API key to be passed, got %q", key)
	}
	if sent == nil {
		t.Fatal("Expected a message to be sent")
	}
	if sent.From.Address != "me@example.com" {
		t.Errorf("Unexpected from %q", sent.From.Address)
	}
	if len(sent.Personalizations) != 1 || sent.Personalizations[0].To[0].Address != "you@example.com" {
		t.Errorf("Unexpected recipients %+v", sent.Personalizations)
	}
}

func TestSendEmailErrors(t *testing.T) {
	useTestDataset(t)

	config := SendEmailConfig{From: "me@example.com", To: "you@example.com", Types: []string{"summary"}}
	if err := sendEmail(context.Background(), config); err == nil || !strings.Contains(err.Error(), "sendgrid_api_key") {
		t.Errorf("Expected missing API key error, got %v", err)
	}

	config.Types = []string{"forgotten"}
	if err := sendEmail(context.Background(), config); err == nil {
		t.Errorf("Expected error for unknown analysis")
	}

	config.Types = []string{"summary"}
	config.APIKey = "key"
	config.SendEmail = func(string, *mail.SGMailV3) error { return errors.New("boom") }
	if err := sendEmail(context.Background(), config); err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("Expected send error, got %v", err)
	}
}

func TestParseParams(t *testing.T) {
	params, err := parseParams([]string{"", "n=3", "source=sql"}, 3)
	if err != nil {
		t.Fatalf("parseParams: %v", err)
	}
	if len(params[0]) != 0 || params[1]["n"] != "3" || params[2]["source"] != "sql" {
		t.Errorf("Unexpected params %v", params)
	}

	if params, err := parseParams(nil, 2); err != nil || params != nil {
		t.Errorf("Expected no params, got %v, %v", params, err)
	}
	if _, err := parseParams([]string{"n=3"}, 2); err == nil {
		t.Errorf("Expected error for mismatched count")
	}
	if _, err := parseParams([]string{"n"}, 1); err == nil {
		t.Errorf("Expected error for missing value")
	}
}

func TestSendEmailConfiguresAnalyses(t *testing.T) {
	useTestDataset(t)

	var out bytes.Buffer
	config := SendEmailConfig{
		From:   "me@example.com",
		To:     "you@example.com",
		Types:  []string{"top-tracks", "genres-seasons"},
		Params: []map[string]string{{"n": "1"}, {"source": "sql"}},
		DryRun: true,
		Out:    &out,
	}
	if err := sendEmail(context.Background(), config); err != nil {
		t.Fatalf("sendEmail: %v", err)
	}
	if !strings.Contains(out.String(), "Showing 3 tracks out of 6 listens") {
		t.Errorf("Expected top-tracks limited to one per season, got:\n%s", out.String())
	}
	if strings.Contains(out.String(), "Gasolina") {
		t.Errorf("Expected Gasolina to be cut by n=1, got:\n%s", out.String())
	}

	config.Params = []map[string]string{{"n": "zero"}, nil}
	if err := sendEmail(context.Background(), config); err == nil {
		t.Errorf("Expected error for invalid n")
	}

	config.Types = []string{"summary"}
	config.Params = []map[string]string{{"n": "1"}}
	if err := sendEmail(context.Background(), config); err == nil {
		t.Errorf("Expected error configuring an analysis without parameters")
	}
}
