// config_test.go
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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ENV_FILE", "PORT", "DB_TYPE", "DB_DATABASE", "DB_CONNECTION_LIMIT",
		"AUTHZ_URL", "AUTHZ_CLIENT_ID", "AUTHZ_REDIRECT_URL", "PLAYBACK_URL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaultsToDemoMode(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBType)
	assert.Equal(t, "https://strudel.cc/", cfg.PlaybackURL)
	assert.Equal(t, "http://localhost:3000/", cfg.AuthzRedirectURL)
	assert.True(t, cfg.DemoMode())
}

func TestDemoModeNeedsBothEndpoints(t *testing.T) {
	tests := []struct {
		name     string
		database string
		authzURL string
		demo     bool
	}{
		{name: "neither", demo: true},
		{name: "store only", database: "strudel", demo: true},
		{name: "identity only", authzURL: "http://authorizer:8080", demo: true},
		{name: "both", database: "strudel", authzURL: "http://authorizer:8080", demo: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("DB_DATABASE", tt.database)
			t.Setenv("AUTHZ_URL", tt.authzURL)

			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, tt.demo, cfg.DemoMode())
		})
	}
}

func TestLoadReadsEnvFile(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("DB_DATABASE")
	os.Unsetenv("AUTHZ_URL")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DB_DATABASE=fromfile\nAUTHZ_URL=http://authz:8080\n"), 0o600))
	t.Setenv("ENV_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "fromfile", cfg.DBDatabase)
	assert.False(t, cfg.DemoMode())
}

func TestLoadRejectsBadConnectionLimit(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_CONNECTION_LIMIT", "0")

	_, err := Load()
	assert.Error(t, err)
}
