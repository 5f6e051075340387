// provider.go
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
	"context"
	"strings"
	"sync"
)

// Provider holds the current session and notifies subscribers when it changes
type Provider struct {
	client Client

	mu     sync.RWMutex
	viewer Viewer
	token  string
	subs   map[int]func(Viewer)
	nextID int
}

// NewProvider starts anonymous
func NewProvider(client Client) *Provider {
	return &Provider{
		client: client,
		viewer: Anonymous{},
		subs:   make(map[int]func(Viewer)),
	}
}

// SignUp registers an account. The username defaults to the local part of the email.
// When the provider returns a session the viewer becomes authenticated.
func (p *Provider) SignUp(ctx context.Context, email, password, username string) error {
	if strings.TrimSpace(username) == "" {
		username, _, _ = strings.Cut(email, "@")
	}
	s, err := p.client.SignUp(ctx, email, password, username)
	if err != nil {
		return err
	}
	if s.AccessToken != "" {
		if s.User.Username == "" {
			s.User.Username = username
		}
		p.set(s.User, s.AccessToken)
	}
	return nil
}

// SignIn logs in with email and password
func (p *Provider) SignIn(ctx context.Context, email, password string) error {
	s, err := p.client.SignIn(ctx, email, password)
	if err != nil {
		return err
	}
	if s.AccessToken == "" {
		return ErrNoSession
	}
	if s.User.ID == "" {
		user, err := p.client.Profile(ctx, s.AccessToken)
		if err != nil {
			return err
		}
		s.User = user
	}
	p.set(s.User, s.AccessToken)
	return nil
}

// SignInWithOAuth returns the url that starts the OAuth flow
func (p *Provider) SignInWithOAuth(provider string) string {
	return p.client.OAuthURL(provider)
}

// SignOut ends the session. Local state is cleared even if the provider call fails.
func (p *Provider) SignOut(ctx context.Context) error {
	p.mu.RLock()
	token := p.token
	p.mu.RUnlock()

	var err error
	if token != "" {
		err = p.client.SignOut(ctx, token)
	}
	p.set(Anonymous{}, "")
	return err
}

// Restore resumes a persisted session from its access token
func (p *Provider) Restore(ctx context.Context, token string) error {
	user, err := p.client.Profile(ctx, token)
	if err != nil {
		return err
	}
	p.set(user, token)
	return nil
}

// CurrentUser returns the viewer of the current session
func (p *Provider) CurrentUser() Viewer {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.viewer
}

// Token returns the access token of the current session, or ""
func (p *Provider) Token() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.token
}

// OnAuthStateChange calls cb with the current viewer now and on every change
// until the returned function is called.
func (p *Provider) OnAuthStateChange(cb func(Viewer)) (unsubscribe func()) {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.subs[id] = cb
	current := p.viewer
	p.mu.Unlock()

	cb(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.subs, id)
			p.mu.Unlock()
		})
	}
}

func (p *Provider) set(v Viewer, token string) {
	p.mu.Lock()
	p.viewer = v
	p.token = token
	subs := make([]func(Viewer), 0, len(p.subs))
	for _, cb := range p.subs {
		subs = append(subs, cb)
	}
	p.mu.Unlock()

	for _, cb := range subs {
		cb(v)
	}
}
