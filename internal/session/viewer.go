// viewer.go
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

package session

import (
	"strings"

	"gorm.io/datatypes"
)

// Viewer is who is looking at the app: Anonymous or Authenticated
type Viewer interface {
	viewer()
}

// Anonymous is a viewer with no session
type Anonymous struct{}

// Authenticated is a signed in user
type Authenticated struct {
	ID       string            `json:"id"`
	Email    string            `json:"email"`
	Username string            `json:"username,omitempty"`
	Metadata datatypes.JSONMap `json:"metadata,omitempty"`
}

func (Anonymous) viewer()     {}
func (Authenticated) viewer() {}

// UserID returns the id of an authenticated viewer, or ""
func UserID(v Viewer) string {
	if a, ok := v.(Authenticated); ok {
		return a.ID
	}
	return ""
}

// DisplayName is the author name used for content the viewer creates:
// the username, else the local part of the email, else "Anonymous".
func DisplayName(v Viewer) string {
	a, ok := v.(Authenticated)
	if !ok {
		return "Anonymous"
	}
	if name := strings.TrimSpace(a.Username); name != "" {
		return name
	}
	if local, _, _ := strings.Cut(a.Email, "@"); local != "" {
		return local
	}
	return "Anonymous"
}
