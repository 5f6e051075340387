// auth.go
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

package helpers

import (
	"context"
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/localnerve/strudel-share/internal/session"
)

func randInt(max int) int {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(max)))
	return int(n.Int64())
}

// GeneratePassword generates a 10 character password with a capital and special char
func GeneratePassword() string {
	const (
		lower   = "abcdefghijklmnopqrstuvwxyz"
		upper   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
		special = "!@#$%^&*"
		numbers = "0123456789"
		all     = lower + upper + special + numbers
	)

	password := make([]byte, 10)
	password[0] = upper[randInt(len(upper))]
	password[1] = special[randInt(len(special))]
	password[2] = numbers[randInt(len(numbers))]

	for i := 3; i < 10; i++ {
		password[i] = all[randInt(len(all))]
	}

	for i := range password {
		j := randInt(len(password))
		password[i], password[j] = password[j], password[i]
	}

	return string(password)
}

// AcquireAccount signs up and signs in against a live Authorizer
func AcquireAccount(t *testing.T, authzURL, clientID, email, password, username string) session.Session {
	t.Helper()
	client, err := session.NewAuthorizerClient(clientID, authzURL, "")
	if err != nil {
		t.Fatalf("Failed to create authorizer client: %v", err)
	}

	ctx := context.Background()
	if _, err := client.SignUp(ctx, email, password, username); err != nil {
		// If user already exists, we might ignore error and try login
		t.Logf("Signup failed (might already exist): %v", err)
	}

	s, err := client.SignIn(ctx, email, password)
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if s.AccessToken == "" {
		t.Fatal("Access token is empty")
	}
	return s
}

// StaticAuth is a session.Client that resolves fixed bearer tokens.
// It stands in for the identity provider when only the store is under test.
type StaticAuth map[string]session.Authenticated

func (a StaticAuth) SignUp(context.Context, string, string, string) (session.Session, error) {
	return session.Session{}, session.ErrNoSession
}

func (a StaticAuth) SignIn(context.Context, string, string) (session.Session, error) {
	return session.Session{}, session.ErrNoSession
}

func (a StaticAuth) SignOut(context.Context, string) error { return nil }

func (a StaticAuth) Profile(_ context.Context, token string) (session.Authenticated, error) {
	if u, ok := a[token]; ok {
		return u, nil
	}
	return session.Authenticated{}, session.ErrNoSession
}

func (a StaticAuth) ValidateCookie(ctx context.Context, cookie string) (session.Authenticated, error) {
	return a.Profile(ctx, cookie)
}

func (a StaticAuth) OAuthURL(string) string { return "" }
