// tag_list_test.go
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

package types

import (
	"encoding/json"
	"testing"
)

func TestTagListUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"array", `{"tags":["kick","bass"]}`, "kick,bass"},
		{"string", `{"tags":"kick, bass,  groove"}`, "kick, bass,  groove"},
		{"null", `{"tags":null}`, ""},
		{"missing", `{}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body struct {
				Tags TagList `json:"tags"`
			}
			if err := json.Unmarshal([]byte(tt.in), &body); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := body.Tags.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTagListRejectsNumbers(t *testing.T) {
	var tags TagList
	if err := json.Unmarshal([]byte(`42`), &tags); err == nil {
		t.Error("expected error for numeric tags")
	}
}

func TestCustomError(t *testing.T) {
	err := NewError(403, "not available in demo mode", "demo")
	if err.Error() != "403: not available in demo mode [type: demo]" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}
