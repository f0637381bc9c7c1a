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

import "strings"

// Season is the time of year a track was listened to. The four canonical
// values are listed in Seasons; any other value read from an export is kept
// verbatim so it still groups and filters, but IsCanonical reports false.
type Season string

const (
	Summer Season = "Summer"
	Autumn Season = "Autumn"
	Winter Season = "Winter"
	Spring Season = "Spring"
)

// Seasons is the canonical order used for the seasonal summary.
var Seasons = []Season{Summer, Autumn, Winter, Spring}

var seasonAliases = map[string]Season{
	"summer":    Summer,
	"verano":    Summer,
	"autumn":    Autumn,
	"fall":      Autumn,
	"otoño":     Autumn,
	"otono":     Autumn,
	"winter":    Winter,
	"invierno":  Winter,
	"spring":    Spring,
	"primavera": Spring,
}

// ParseSeason maps a raw label to a canonical season. The boolean is false
// when the label is not recognised, in which case the trimmed label is
// returned as-is.
func ParseSeason(s string) (Season, bool) {
	s = strings.TrimSpace(s)
	if season, ok := seasonAliases[strings.ToLower(s)]; ok {
		return season, true
	}
	return Season(s), false
}

func (s Season) IsCanonical() bool {
	switch s {
	case Summer, Autumn, Winter, Spring:
		return true
	}
	return false
}

func (s Season) String() string {
	return string(s)
}
