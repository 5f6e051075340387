// demo.go
//
// Share, play, like and discuss Strudel live-coding patterns
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of strudel-share.
// strudel-share is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// strudel-share is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with strudel-share.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package demo

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/localnerve/strudel-share/data"
	"github.com/localnerve/strudel-share/internal/models"
)

// Categories is the fixed category list of the pattern board, "All" first
var Categories = []string{"All", "Drums", "Bass", "Synth", "Melodic", "Ambient", "Patterns", "Vocal"}

// UploadCategories are the categories offered when uploading a pattern
var UploadCategories = []string{"Drums", "Bass", "Synth", "Melodic", "Ambient", "Patterns", "Vocal", "FX"}

// DefaultCategory is used for uploads that name none
const DefaultCategory = "Drums"

type entry struct {
	models.Pattern
	Seed bool `json:"seed"`
}

var (
	dataset []entry
	epoch   = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
)

func init() {
	if err := json.Unmarshal(data.DemoPatterns, &dataset); err != nil {
		panic(fmt.Sprintf("demo dataset: %v", err))
	}
	for i := range dataset {
		dataset[i].CreatedAt = epoch
		if dataset[i].Tags == nil {
			dataset[i].Tags = models.Tags{}
		}
	}
}

func clone(p models.Pattern) models.Pattern {
	p.Tags = append(models.Tags{}, p.Tags...)
	p.UserID = nil
	return p
}

// Patterns returns a fresh copy of the demo dataset
func Patterns() []models.Pattern {
	out := make([]models.Pattern, len(dataset))
	for i, e := range dataset {
		out[i] = clone(e.Pattern)
	}
	return out
}

// Pattern looks up one demo pattern by id
func Pattern(id string) (models.Pattern, bool) {
	for _, e := range dataset {
		if e.ID == id {
			return clone(e.Pattern), true
		}
	}
	return models.Pattern{}, false
}

// SeedPatterns returns the subset inserted by the seed command.
// Ids are cleared so the store assigns its own.
func SeedPatterns() []models.Pattern {
	var out []models.Pattern
	for _, e := range dataset {
		if !e.Seed {
			continue
		}
		p := clone(e.Pattern)
		p.ID = ""
		p.CreatedAt = time.Time{}
		out = append(out, p)
	}
	return out
}

// IsCategory reports whether name is a known board category
func IsCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}
