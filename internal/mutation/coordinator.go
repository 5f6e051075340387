// coordinator.go
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
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/localnerve/strudel-share/internal/datasource"
	"github.com/localnerve/strudel-share/internal/demo"
	"github.com/localnerve/strudel-share/internal/metrics"
	"github.com/localnerve/strudel-share/internal/session"
	"github.com/localnerve/strudel-share/internal/views"
)

// Action names a user action. "Failed to <action>" is its failure message.
type Action string

const (
	ActionCreatePost           Action = "create post"
	ActionAddComment           Action = "add comment"
	ActionDeletePost           Action = "delete post"
	ActionDeleteComment        Action = "delete comment"
	ActionAddPatternComment    Action = "add pattern comment"
	ActionDeletePatternComment Action = "delete pattern comment"
	ActionLike                 Action = "like pattern"
	ActionUnlike               Action = "unlike pattern"
	ActionUploadPattern        Action = "upload pattern"
	ActionDeletePattern        Action = "delete pattern"
)

// Coordinator performs user actions against the store and keeps local view state in step.
// Each action issues at most one gateway write.
type Coordinator struct {
	src      *datasource.Source
	guard    *Guard
	confirm  Confirmer
	notify   Notifier
	log      *slog.Logger
	validate *validator.Validate

	mu     sync.RWMutex
	viewer session.Viewer
	state  views.State
}

// New creates a coordinator over src for an anonymous viewer
func New(src *datasource.Source, opts ...Option) *Coordinator {
	c := &Coordinator{
		src:      src,
		confirm:  Never,
		notify:   NotifyFunc(func(string) {}),
		log:      slog.Default(),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		viewer:   session.Anonymous{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.guard == nil {
		c.guard = NewGuard()
	}
	return c
}

// State returns a snapshot of the local view state
func (c *Coordinator) State() views.State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Viewer returns the viewer actions run as
func (c *Coordinator) Viewer() session.Viewer {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.viewer
}

// SetViewer changes the viewer. Per-viewer state (the open detail, profile tabs) is
// dropped when the viewer id changes; reload to recompose it.
func (c *Coordinator) SetViewer(v session.Viewer) bool {
	if v == nil {
		v = session.Anonymous{}
	}
	id := session.UserID(v)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewer = v
	if c.state.ViewerID == id {
		return false
	}
	c.state.ViewerID = id
	c.state.Detail = nil
	c.state.Uploaded = nil
	c.state.Liked = nil
	return true
}

// Bind follows the provider's auth state. On every viewer change a loaded
// pattern board and an open pattern detail are recomposed for the new viewer.
// Call the result to stop.
func (c *Coordinator) Bind(ctx context.Context, p *session.Provider) (unsubscribe func()) {
	return p.OnAuthStateChange(func(v session.Viewer) {
		var detailID string
		if d := c.State().Detail; d != nil {
			detailID = d.Pattern.ID
		}
		if !c.SetViewer(v) {
			return
		}
		st := c.State()
		if st.Patterns != nil && !st.PatternsDemo {
			c.LoadPatterns(ctx)
		}
		if detailID != "" {
			if _, err := c.LoadPattern(ctx, detailID); err != nil {
				c.log.Warn("reload pattern detail failed", "id", detailID, "error", err)
			}
		}
	})
}

// CanMutate reports whether writes are possible at all
func (c *Coordinator) CanMutate() bool {
	return c.src.CanMutate()
}

func (c *Coordinator) apply(p views.Patch) {
	c.mu.Lock()
	c.state = views.Apply(c.state, p)
	c.mu.Unlock()
}

func (c *Coordinator) update(fn func(*views.State)) {
	c.mu.Lock()
	fn(&c.state)
	c.mu.Unlock()
}

// LoadPatterns reads the pattern board into state
func (c *Coordinator) LoadPatterns(ctx context.Context) views.PatternBoard {
	board := c.src.Patterns(ctx, session.UserID(c.Viewer()))
	c.update(func(s *views.State) {
		s.Patterns = board.Patterns
		s.PatternsDemo = board.IsDemo
	})
	return board
}

// LoadFeed reads the feed into state
func (c *Coordinator) LoadFeed(ctx context.Context) views.Feed {
	feed := c.src.Feed(ctx)
	c.update(func(s *views.State) {
		s.Posts = feed.Posts
		s.FeedDemo = feed.IsDemo
	})
	return feed
}

// LoadPattern reads one pattern's detail into state
func (c *Coordinator) LoadPattern(ctx context.Context, id string) (views.PatternDetail, error) {
	detail, err := c.src.Pattern(ctx, id, session.UserID(c.Viewer()))
	if err != nil {
		c.update(func(s *views.State) { s.Detail = nil })
		return detail, err
	}
	c.update(func(s *views.State) { s.Detail = &detail })
	return detail, nil
}

// LoadProfile reads the viewer's uploaded and liked tabs into state
func (c *Coordinator) LoadProfile(ctx context.Context) (views.Profile, error) {
	id := session.UserID(c.Viewer())
	if id == "" {
		return views.Profile{}, ErrAuthRequired
	}
	profile, err := c.src.Profile(ctx, id)
	if err != nil {
		return profile, err
	}
	c.update(func(s *views.State) {
		s.Uploaded = profile.Uploaded
		s.Liked = profile.Liked
	})
	return profile, nil
}

// ToggleComments flips a post's comment panel. It is local only.
func (c *Coordinator) ToggleComments(postID string) views.Patch {
	patch := views.Patch{Op: views.Update, Collection: views.CollectionPosts, ID: postID, ToggleComments: true}
	c.apply(patch)
	return patch
}

// gate selects the demo check an action is subject to
type gate int

const (
	gateFeed gate = iota
	gatePatterns
)

// step describes one action run through the common checks
type step struct {
	action Action
	entity string
	gate   gate
	// demoEntity marks an action on a demo row
	demoEntity bool
	input      any
	// authorize runs after the in-flight guard is held, before the write
	authorize func(ctx context.Context, user session.Authenticated) error
	write     func(ctx context.Context, user session.Authenticated) (views.Patch, error)
}

func (c *Coordinator) demoMode(s step) bool {
	if !c.src.CanMutate() || s.demoEntity {
		return true
	}
	st := c.State()
	if s.gate == gateFeed {
		return st.FeedDemo
	}
	if st.PatternsDemo {
		return true
	}
	// a demo detail only gates actions on itself and its comments
	if d := st.Detail; d != nil && d.IsDemo && s.entity != "" {
		if d.Pattern.ID == s.entity {
			return true
		}
		_, onDetail := st.FindPatternComment(s.entity)
		return onDetail
	}
	return false
}

func (c *Coordinator) count(action Action, outcome string) {
	metrics.Mutations.WithLabelValues(string(action), outcome).Inc()
}

func (c *Coordinator) run(ctx context.Context, s step) (views.Patch, error) {
	user, ok := c.Viewer().(session.Authenticated)
	if !ok {
		c.count(s.action, metrics.OutcomeAuthRequired)
		return views.Patch{}, ErrAuthRequired
	}

	if c.demoMode(s) {
		c.count(s.action, metrics.OutcomeDemo)
		return views.Patch{}, ErrDemoMode
	}

	if s.input != nil {
		if err := c.validate.Struct(s.input); err != nil {
			c.count(s.action, metrics.OutcomeInvalid)
			return views.Patch{}, fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}

	release, ok := c.guard.Acquire(Key(user.ID, s.action, s.entity))
	if !ok {
		c.count(s.action, metrics.OutcomeInFlight)
		return views.Patch{}, ErrInFlight
	}
	defer release()

	if s.authorize != nil {
		if err := s.authorize(ctx, user); err != nil {
			switch {
			case errors.Is(err, ErrNotOwner):
				c.count(s.action, metrics.OutcomeNotOwner)
			case errors.Is(err, ErrNotConfirmed):
				c.count(s.action, metrics.OutcomeNotConfirmed)
			case errors.Is(err, datasource.ErrNotFound):
			default:
				return views.Patch{}, c.fail(s.action, err)
			}
			return views.Patch{}, err
		}
	}

	patch, err := s.write(ctx, user)
	if err != nil {
		return views.Patch{}, c.fail(s.action, err)
	}

	c.apply(patch)
	c.count(s.action, metrics.OutcomeOK)
	c.log.Debug("mutation applied", "action", string(s.action), "entity", s.entity)
	return patch, nil
}

func (c *Coordinator) fail(action Action, err error) error {
	c.count(action, metrics.OutcomeWriteFailed)
	c.log.Error("mutation failed", "action", string(action), "error", err)
	actionErr := &ActionError{Action: action, Err: err}
	c.notify.Notify(actionErr.Error())
	return actionErr
}

// confirmDelete asks for confirmation and maps a decline to ErrNotConfirmed
func (c *Coordinator) confirmDelete(ctx context.Context, what string) error {
	if !c.confirm.Confirm(ctx, fmt.Sprintf("Are you sure you want to delete this %s?", what)) {
		return ErrNotConfirmed
	}
	return nil
}

func isDemoPattern(id string) bool {
	_, ok := demo.Pattern(id)
	return ok
}

func trim(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}
