// gateway.go
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

package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/localnerve/strudel-share/internal/models"
)

// ErrNotFound is returned by Get when no row has the requested id
var ErrNotFound = errors.New("record not found")

// Table names one of the five remote tables
type Table string

const (
	Patterns        Table = "patterns"
	PatternLikes    Table = "pattern_likes"
	PatternComments Table = "pattern_comments"
	Posts           Table = "posts"
	Comments        Table = "comments"
)

// Tables lists every table the gateway serves
var Tables = []Table{Patterns, PatternLikes, PatternComments, Posts, Comments}

// model returns the zero row for a table, used by gorm for table resolution
func (t Table) model() (any, error) {
	switch t {
	case Patterns:
		return &models.Pattern{}, nil
	case PatternLikes:
		return &models.PatternLike{}, nil
	case PatternComments:
		return &models.PatternComment{}, nil
	case Posts:
		return &models.Post{}, nil
	case Comments:
		return &models.Comment{}, nil
	}
	return nil, fmt.Errorf("unknown table: %s", t)
}

// Condition is one column predicate. A slice value means IN.
type Condition struct {
	Column string
	Value  any
}

// Filter is a conjunction of conditions
type Filter []Condition

// Eq matches rows where column equals value
func Eq(column string, value any) Condition {
	return Condition{Column: column, Value: value}
}

// In matches rows where column is one of values
func In(column string, values []string) Condition {
	return Condition{Column: column, Value: values}
}

// Where builds a filter from conditions
func Where(conds ...Condition) Filter {
	return Filter(conds)
}

// Order is a single sort column
type Order struct {
	Column string
	Desc   bool
}

// Asc sorts ascending by column
func Asc(column string) *Order {
	return &Order{Column: column}
}

// Desc sorts descending by column
func Desc(column string) *Order {
	return &Order{Column: column, Desc: true}
}

// Gateway is the thin typed access layer over the hosted relational store.
// Reads return rows or an error; writes return an error only.
type Gateway interface {
	Select(ctx context.Context, table Table, dest any, filter Filter, order *Order) error
	Get(ctx context.Context, table Table, id string, dest any) error
	Count(ctx context.Context, table Table, filter Filter) (int64, error)
	Insert(ctx context.Context, table Table, rows any) error
	Delete(ctx context.Context, table Table, filter Filter) (int64, error)
	Ping(ctx context.Context) error
}
