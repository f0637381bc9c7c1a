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
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

const testCSV = `track_name,general_genre,season,date_added
Despacito,Reggaeton,Verano,2022-07-01
Take Five,"Jazz, Soul & Blues",Primavera,2022-04-02
Gasolina,Reggaeton,Verano,2022-08-11
So What,"Jazz, Soul & Blues",Primavera,2023-05-03
Jolene,Country,Otoño,2023-10-20
Despacito,Reggaeton,Verano,2023-07-15
`

// useTestDataset writes testCSV to a temp dir and points the "dataset"
// config key at it.
func useTestDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.csv")
	if err := os.WriteFile(path, []byte(testCSV), 0o644); err != nil {
		t.Fatalf("writing dataset: %v", err)
	}

	viper.Reset()
	viper.Set("dataset", path)
	viper.Set("log_level", "error")
	t.Cleanup(viper.Reset)
	return path
}
