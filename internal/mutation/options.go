// options.go
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
	"context"
	"log/slog"
)

// Confirmer asks the user to confirm a destructive action
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(ctx context.Context, prompt string) bool

// Confirm calls f
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

// Always confirms every prompt
var Always = ConfirmFunc(func(context.Context, string) bool { return true })

// Never declines every prompt
var Never = ConfirmFunc(func(context.Context, string) bool { return false })

// Notifier shows a blocking alert for a failed action
type Notifier interface {
	Notify(message string)
}

// NotifyFunc adapts a function to Notifier
type NotifyFunc func(message string)

// Notify calls f
func (f NotifyFunc) Notify(message string) {
	f(message)
}

// Option configures a Coordinator
type Option func(*Coordinator)

// WithGuard shares an in-flight guard between coordinators
func WithGuard(g *Guard) Option {
	return func(c *Coordinator) {
		c.guard = g
	}
}

// WithConfirmer sets the delete confirmation. The default declines.
func WithConfirmer(confirm Confirmer) Option {
	return func(c *Coordinator) {
		c.confirm = confirm
	}
}

// WithNotifier sets where write failures are reported
func WithNotifier(n Notifier) Option {
	return func(c *Coordinator) {
		c.notify = n
	}
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(c *Coordinator) {
		c.log = l
	}
}
