// session_test.go
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
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	mu        sync.Mutex
	users     map[string]Authenticated
	passwords map[string]string
	tokens    map[string]string
	signedOut []string
	signUpErr error
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		users:     map[string]Authenticated{},
		passwords: map[string]string{},
		tokens:    map[string]string{},
	}
}

func (f *fakeClient) SignUp(_ context.Context, email, password, username string) (Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.signUpErr != nil {
		return Session{}, f.signUpErr
	}
	user := Authenticated{ID: "id-" + email, Email: email, Username: username}
	f.users[email] = user
	f.passwords[email] = password
	f.tokens["tok-"+email] = email
	return Session{User: user, AccessToken: "tok-" + email}, nil
}

func (f *fakeClient) SignIn(_ context.Context, email, password string) (Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.passwords[email] != password {
		return Session{}, errors.New("bad credentials")
	}
	return Session{AccessToken: "tok-" + email}, nil
}

func (f *fakeClient) SignOut(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signedOut = append(f.signedOut, token)
	return nil
}

func (f *fakeClient) Profile(_ context.Context, token string) (Authenticated, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	email, ok := f.tokens[token]
	if !ok {
		return Authenticated{}, ErrNoSession
	}
	return f.users[email], nil
}

func (f *fakeClient) ValidateCookie(ctx context.Context, cookie string) (Authenticated, error) {
	return f.Profile(ctx, cookie)
}

func (f *fakeClient) OAuthURL(provider string) string {
	return OAuthURL("http://authz.local/", provider, "http://app.local/")
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name   string
		viewer Viewer
		want   string
	}{
		{"username", Authenticated{ID: "1", Email: "ann@x.io", Username: "annie"}, "annie"},
		{"email local part", Authenticated{ID: "1", Email: "ann@x.io"}, "ann"},
		{"nothing", Authenticated{ID: "1"}, "Anonymous"},
		{"anonymous", Anonymous{}, "Anonymous"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayName(tt.viewer))
		})
	}
	assert.Equal(t, "", UserID(Anonymous{}))
	assert.Equal(t, "1", UserID(Authenticated{ID: "1"}))
}

func TestSignUpDefaultsUsername(t *testing.T) {
	client := newFakeClient()
	p := NewProvider(client)

	require.NoError(t, p.SignUp(context.Background(), "bob@example.com", "pw", "  "))
	user, ok := p.CurrentUser().(Authenticated)
	require.True(t, ok)
	assert.Equal(t, "bob", user.Username)
	assert.Equal(t, "tok-bob@example.com", p.Token())
}

func TestErrorsReturnedUnmodified(t *testing.T) {
	client := newFakeClient()
	boom := errors.New("email taken")
	client.signUpErr = boom
	p := NewProvider(client)

	assert.Same(t, boom, p.SignUp(context.Background(), "a@b.c", "pw", "a"))
	assert.Equal(t, Anonymous{}, p.CurrentUser())
}

func TestAuthStateSubscription(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	p := NewProvider(client)

	var seen []string
	unsubscribe := p.OnAuthStateChange(func(v Viewer) {
		seen = append(seen, UserID(v))
	})
	require.Equal(t, []string{""}, seen, "called with current viewer on subscribe")

	require.NoError(t, p.SignUp(ctx, "ann@x.io", "pw", "ann"))
	require.NoError(t, p.SignOut(ctx))
	require.NoError(t, p.SignIn(ctx, "ann@x.io", "pw"))
	assert.Equal(t, []string{"", "id-ann@x.io", "", "id-ann@x.io"}, seen)
	assert.Equal(t, []string{"tok-ann@x.io"}, client.signedOut)

	unsubscribe()
	unsubscribe()
	require.NoError(t, p.SignOut(ctx))
	assert.Len(t, seen, 4)
}

func TestSignInFailureKeepsViewer(t *testing.T) {
	p := NewProvider(newFakeClient())
	assert.Error(t, p.SignIn(context.Background(), "nobody@x.io", "pw"))
	assert.Equal(t, Anonymous{}, p.CurrentUser())
}

func TestRestore(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	_, err := client.SignUp(ctx, "cy@x.io", "pw", "cy")
	require.NoError(t, err)

	p := NewProvider(client)
	require.NoError(t, p.Restore(ctx, "tok-cy@x.io"))
	assert.Equal(t, "id-cy@x.io", UserID(p.CurrentUser()))

	assert.ErrorIs(t, NewProvider(client).Restore(ctx, "stale"), ErrNoSession)
}

func TestOAuthURL(t *testing.T) {
	p := NewProvider(newFakeClient())
	assert.Equal(t,
		"http://authz.local/oauth_login/google?redirectURL=http%3A%2F%2Fapp.local%2F",
		p.SignInWithOAuth("google"))
	assert.Equal(t, "http://authz.local/oauth_login/github", OAuthURL("http://authz.local", "github", ""))
}

func TestToAuthenticated(t *testing.T) {
	user := map[string]any{
		"id":                 "u1",
		"email":              "dee@x.io",
		"preferred_username": "dee@x.io",
		"app_data":           map[string]any{"theme": "dark"},
	}
	a, err := toAuthenticated(user)
	require.NoError(t, err)
	assert.Equal(t, "u1", a.ID)
	assert.Empty(t, a.Username)
	assert.Equal(t, "dark", a.Metadata["theme"])
	assert.Equal(t, "dee", DisplayName(a))

	_, err = toAuthenticated(map[string]any{})
	assert.ErrorIs(t, err, ErrNoSession)
}
