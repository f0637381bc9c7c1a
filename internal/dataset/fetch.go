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
package dataset

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/rs/zerolog"
)

// Loader loads an export from a local path or an http(s) URL.
type Loader struct {
	Client   *http.Client
	Attempts uint
	Delay    time.Duration
	Logger   zerolog.Logger
}

// NewLoader returns a Loader with a 30 second HTTP timeout and three fetch
// attempts.
func NewLoader(logger zerolog.Logger) *Loader {
	return &Loader{
		Client:   &http.Client{Timeout: 30 * time.Second},
		Attempts: 3,
		Delay:    time.Second,
		Logger:   logger.With().Str("component", "loader").Logger(),
	}
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected HTTP status %d", e.code)
}

// Load reads source, which is either a file path or an http(s) URL.
func (l *Loader) Load(ctx context.Context, source string) (*Table, error) {
	if !isURL(source) {
		l.Logger.Debug().Str("path", source).Msg("Loading dataset from file")
		table, err := Load(source)
		if err != nil {
			return nil, err
		}
		l.Logger.Info().Str("path", source).Int("records", table.Len()).Msg("Loaded dataset")
		return table, nil
	}

	var table *Table
	err := retry.Do(
		func() error {
			var err error
			table, err = l.fetch(ctx, source)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(l.Attempts),
		retry.Delay(l.Delay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			if serr, ok := err.(*statusError); ok {
				if serr.code/100 == 5 {
					l.Logger.Warn().Err(serr).Str("url", source).Msg("Dataset server errored, retrying")
					return true
				}
				return false
			}
			// Transport errors are worth another try; parse errors are not.
			return !isDatasetError(err)
		}),
	)
	if err != nil {
		if serr, ok := err.(*statusError); ok {
			return nil, fmt.Errorf("%w: %s: %v", ErrDatasetNotFound, source, serr)
		}
		if isDatasetError(err) {
			return nil, fmt.Errorf("loading %s: %w", source, err)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrDatasetNotFound, source, err)
	}

	l.Logger.Info().Str("url", source).Int("records", table.Len()).Msg("Loaded dataset")
	return table, nil
}

func (l *Loader) fetch(ctx context.Context, url string) (*Table, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", ErrDatasetNotFound, err)
	}
	req.Header.Set("User-Agent", "listening-seasons/1.0")

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &statusError{code: resp.StatusCode}
	}
	return Parse(resp.Body)
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func isDatasetError(err error) bool {
	return errors.Is(err, ErrDatasetMalformed) || errors.Is(err, ErrDatasetNotFound)
}
