// errors.go
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

package mutation

import (
	"errors"
)

var (
	// ErrAuthRequired is returned when an anonymous viewer attempts a write
	ErrAuthRequired = errors.New("sign in required")
	// ErrDemoMode is returned for any write while serving demo data
	ErrDemoMode = errors.New("not available in demo mode")
	// ErrValidation is returned when a required field is empty after trimming
	ErrValidation = errors.New("required field missing")
	// ErrInFlight is returned when the same action on the same entity is still running
	ErrInFlight = errors.New("action already in progress")
	// ErrNotOwner is returned when deleting something the viewer did not create
	ErrNotOwner = errors.New("only the owner can delete this")
	// ErrNotConfirmed is returned when a delete was not confirmed
	ErrNotConfirmed = errors.New("delete not confirmed")
)

// ActionError is a failed gateway write. Its message names the action.
type ActionError struct {
	Action Action
	Err    error
}

func (e *ActionError) Error() string {
	return "Failed to " + string(e.Action)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}
