// report.go
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

package commands

import (
	"errors"
	"fmt"

	"github.com/localnerve/strudel-share/cmd/strudelctl/output"
	"github.com/localnerve/strudel-share/internal/gateway"
	"github.com/localnerve/strudel-share/internal/mutation"
)

// errReported marks a failure that was already shown to the user
var errReported = errors.New("reported")

// report turns a coordinator error into terminal output.
// Validation failures are silent, write failures were already alerted by the notifier.
func report(err error) error {
	var actionErr *mutation.ActionError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mutation.ErrValidation):
		return nil
	case errors.Is(err, mutation.ErrAuthRequired):
		output.Warning("Sign in first: strudelctl login")
	case errors.Is(err, mutation.ErrDemoMode):
		output.Warning("Demo mode: changes are disabled")
	case errors.Is(err, mutation.ErrNotOwner):
		output.Warning("You can only delete what you created")
	case errors.Is(err, mutation.ErrInFlight):
		output.Warning("That action is already in progress")
	case errors.Is(err, mutation.ErrNotConfirmed):
		output.Muted("Cancelled")
		return nil
	case errors.Is(err, gateway.ErrNotFound):
		output.Warning("Not found")
	case errors.As(err, &actionErr):
	default:
		output.Error("%v", err)
	}
	return fmt.Errorf("%w: %w", errReported, err)
}
