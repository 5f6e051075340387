// health.go
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
	"fmt"
	"log/slog"

	"github.com/localnerve/strudel-share/internal/config"
	"github.com/localnerve/strudel-share/internal/gateway"
	"github.com/localnerve/strudel-share/internal/utils"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Mode         string            `json:"mode"`
	Database     string            `json:"database"`
	Authorizer   string            `json:"authorizer"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// Pinger checks a dependency
type Pinger func(ctx context.Context) error

// HealthCheck checks the store and the identity provider.
// An unconfigured dependency is reported as such and does not make the service unhealthy:
// the service runs in demo mode instead.
func HealthCheck(ctx context.Context, cfg *config.Config, gw gateway.Gateway) HealthCheckResult {
	var authz Pinger
	if cfg.AuthConfigured() {
		authz = func(ctx context.Context) error {
			return utils.PingAuthorizer(ctx, cfg.AuthzURL)
		}
	}
	var store Pinger
	if gw != nil {
		store = gw.Ping
	}
	result := check(ctx, store, authz)
	if result.Database == "ok" {
		result.Details["database_type"] = cfg.DBType
		result.Details["database_name"] = cfg.DBDatabase
	}
	if result.Authorizer == "ok" {
		result.Details["authorizer_url"] = cfg.AuthzURL
	}
	return result
}

func check(ctx context.Context, store, authz Pinger) HealthCheckResult {
	result := HealthCheckResult{
		Status:     "healthy",
		Mode:       "live",
		Database:   "unconfigured",
		Authorizer: "unconfigured",
		Details:    make(map[string]string),
	}

	fail := func(msg string, err error) {
		result.Status = "unhealthy"
		if result.ErrorMessage == "" {
			result.ErrorMessage = fmt.Sprintf("%s: %v", msg, err)
		} else {
			result.ErrorMessage += fmt.Sprintf("; %s: %v", msg, err)
		}
		slog.Warn("health check failed", "check", msg, "error", err)
	}

	if store != nil {
		if err := store(ctx); err != nil {
			result.Database = "unreachable"
			result.Details["database_ping_error"] = err.Error()
			fail("Database ping failed", err)
		} else {
			result.Database = "ok"
		}
	}

	if authz != nil {
		if err := authz(ctx); err != nil {
			result.Authorizer = "unreachable"
			result.Details["authorizer_error"] = err.Error()
			fail("Authorizer ping failed", err)
		} else {
			result.Authorizer = "ok"
		}
	}

	if store == nil || authz == nil {
		result.Mode = "demo"
	}

	if result.Status == "healthy" {
		slog.Debug("health check passed", "mode", result.Mode)
	}

	return result
}
