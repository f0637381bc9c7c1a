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
package analysis

// Report is the top-level structure for the seasonal listening report.
type Report struct {
	Metadata           ProfileMetadata    `yaml:"profile_metadata"`
	Genres             []GenreCount       `yaml:"genres"`
	GenresBySeason     []GenreSeasonCount `yaml:"genres_by_season"`
	SeasonalFavourites []SeasonGenre      `yaml:"seasonal_favourites"`
}

type ProfileMetadata struct {
	GeneratedDate  string `yaml:"generated_date"`
	TotalListens   int    `yaml:"total_listens"`
	DistinctGenres int    `yaml:"distinct_genres"`
	DistinctTracks int    `yaml:"distinct_tracks"`
	FirstAdded     string `yaml:"first_added,omitempty"`
	LastAdded      string `yaml:"last_added,omitempty"`
	Period         string `yaml:"period,omitempty"`
}
