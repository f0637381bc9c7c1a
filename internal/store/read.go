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
package store

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"
)

// Query runs an arbitrary read statement and returns the column names and
// each row rendered as strings. NULL becomes the empty string.
func (s *Store) Query(query string, args ...interface{}) ([]string, [][]string, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("running query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("reading columns: %w", err)
	}

	var results [][]string
	for rows.Next() {
		values := make([]interface{}, len(columns))
		ptrs := make([]interface{}, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, fmt.Errorf("scanning row: %w", err)
		}

		row := make([]string, len(columns))
		for i, v := range values {
			row[i] = formatValue(v)
		}
		results = append(results, row)
	}
	return columns, results, rows.Err()
}

func formatValue(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(v)
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case time.Time:
		return v.Format(time.RFC3339)
	}
	return fmt.Sprint(v)
}

func (s *Store) GetTotalListens() (int64, error) {
	var count int64
	err := s.db.QueryRow("SELECT COUNT(*) FROM Listen").Scan(&count)
	return count, err
}

// GetListenSpan returns the first and last date_added. Both are zero when
// the database is empty.
func (s *Store) GetListenSpan() (first, last time.Time, err error) {
	var lo, hi sql.NullInt64
	if err := s.db.QueryRow("SELECT MIN(date), MAX(date) FROM Listen").Scan(&lo, &hi); err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("querying listen span: %w", err)
	}
	if !lo.Valid {
		return time.Time{}, time.Time{}, nil
	}
	return time.Unix(lo.Int64, 0).UTC(), time.Unix(hi.Int64, 0).UTC(), nil
}
