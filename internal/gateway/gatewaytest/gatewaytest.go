// gatewaytest.go
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

// Package gatewaytest provides gateways for tests: an in-memory SQLite store
// and a wrapper that records, fails or blocks calls.
package gatewaytest

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/localnerve/strudel-share/internal/gateway"
	"github.com/localnerve/strudel-share/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrInjected is returned by a Recorder set to fail
var ErrInjected = errors.New("injected failure")

// NewSQLite opens a migrated in-memory store closed at test cleanup
func NewSQLite(t testing.TB) *gateway.GormGateway {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Pattern{},
		&models.PatternLike{},
		&models.PatternComment{},
		&models.Post{},
		&models.Comment{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return gateway.NewGormGateway(db)
}

// Write is one recorded write call
type Write struct {
	Op    string
	Table gateway.Table
}

// Recorder wraps a gateway, recording writes and optionally failing or blocking them
type Recorder struct {
	gateway.Gateway

	mu         sync.Mutex
	writes     []Write
	FailReads  bool
	FailWrites bool

	// Gate, when set, blocks every write until it is closed.
	// Entered receives once per write that reached the gate.
	Gate    chan struct{}
	Entered chan struct{}
}

// NewRecorder wraps inner
func NewRecorder(inner gateway.Gateway) *Recorder {
	return &Recorder{Gateway: inner}
}

// Writes returns the writes seen so far
func (r *Recorder) Writes() []Write {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Write(nil), r.writes...)
}

func (r *Recorder) write(ctx context.Context, op string, table gateway.Table) error {
	r.mu.Lock()
	r.writes = append(r.writes, Write{Op: op, Table: table})
	fail := r.FailWrites
	gate, entered := r.Gate, r.Entered
	r.mu.Unlock()

	if gate != nil {
		if entered != nil {
			entered <- struct{}{}
		}
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if fail {
		return ErrInjected
	}
	return nil
}

func (r *Recorder) failReads() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.FailReads
}

// Select fails when FailReads is set
func (r *Recorder) Select(ctx context.Context, table gateway.Table, dest any, filter gateway.Filter, order *gateway.Order) error {
	if r.failReads() {
		return ErrInjected
	}
	return r.Gateway.Select(ctx, table, dest, filter, order)
}

// Get fails when FailReads is set
func (r *Recorder) Get(ctx context.Context, table gateway.Table, id string, dest any) error {
	if r.failReads() {
		return ErrInjected
	}
	return r.Gateway.Get(ctx, table, id, dest)
}

// Insert records the write before passing it on
func (r *Recorder) Insert(ctx context.Context, table gateway.Table, rows any) error {
	if err := r.write(ctx, "insert", table); err != nil {
		return err
	}
	return r.Gateway.Insert(ctx, table, rows)
}

// Delete records the write before passing it on
func (r *Recorder) Delete(ctx context.Context, table gateway.Table, filter gateway.Filter) (int64, error) {
	if err := r.write(ctx, "delete", table); err != nil {
		return 0, err
	}
	return r.Gateway.Delete(ctx, table, filter)
}

// SetFailWrites toggles write failures
func (r *Recorder) SetFailWrites(fail bool) {
	r.mu.Lock()
	r.FailWrites = fail
	r.mu.Unlock()
}

// SetFailReads toggles read failures
func (r *Recorder) SetFailReads(fail bool) {
	r.mu.Lock()
	r.FailReads = fail
	r.mu.Unlock()
}
