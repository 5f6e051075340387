// health_test.go
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

package services

import (
	"context"
	"errors"
	"testing"

	"github.com/localnerve/strudel-share/internal/config"
	"github.com/localnerve/strudel-share/internal/gateway/gatewaytest"
)

func ok(context.Context) error   { return nil }
func down(context.Context) error { return errors.New("connection refused") }

func TestCheck(t *testing.T) {
	tests := []struct {
		name       string
		store      Pinger
		authz      Pinger
		status     string
		mode       string
		database   string
		authorizer string
	}{
		{"live", ok, ok, "healthy", "live", "ok", "ok"},
		{"demo", nil, nil, "healthy", "demo", "unconfigured", "unconfigured"},
		{"store down", down, ok, "unhealthy", "live", "unreachable", "ok"},
		{"both down", down, down, "unhealthy", "live", "unreachable", "unreachable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := check(context.Background(), tt.store, tt.authz)
			if got.Status != tt.status || got.Mode != tt.mode || got.Database != tt.database || got.Authorizer != tt.authorizer {
				t.Errorf("got %+v", got)
			}
			if tt.status == "unhealthy" && got.ErrorMessage == "" {
				t.Error("expected an error message")
			}
		})
	}
}

func TestHealthCheckStoreOnly(t *testing.T) {
	cfg := &config.Config{DBType: "sqlite", DBDatabase: ":memory:"}
	result := HealthCheck(context.Background(), cfg, gatewaytest.NewSQLite(t))

	if result.Status != "healthy" || result.Mode != "demo" {
		t.Errorf("unexpected result: %+v", result)
	}
	if result.Details["database_type"] != "sqlite" {
		t.Errorf("missing database details: %+v", result.Details)
	}
}
