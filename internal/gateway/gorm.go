// gorm.go
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
	"regexp"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/hints"
)

var columnName = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// GormGateway implements Gateway over a gorm connection
type GormGateway struct {
	DB *gorm.DB
}

// NewGormGateway wraps an open gorm connection
func NewGormGateway(db *gorm.DB) *GormGateway {
	return &GormGateway{DB: db}
}

func (g *GormGateway) scoped(ctx context.Context, table Table, op string) (*gorm.DB, error) {
	model, err := table.model()
	if err != nil {
		return nil, err
	}
	return g.DB.WithContext(ctx).
		Clauses(hints.CommentBefore(op, "strudel-share:"+string(table))).
		Model(model), nil
}

func applyFilter(tx *gorm.DB, filter Filter) (*gorm.DB, error) {
	for _, cond := range filter {
		if !columnName.MatchString(cond.Column) {
			return nil, fmt.Errorf("invalid column: %q", cond.Column)
		}
		col := clause.Column{Name: cond.Column}
		switch v := cond.Value.(type) {
		case []string:
			values := make([]any, len(v))
			for i, s := range v {
				values[i] = s
			}
			tx = tx.Where(clause.IN{Column: col, Values: values})
		default:
			tx = tx.Where(clause.Eq{Column: col, Value: v})
		}
	}
	return tx, nil
}

// Select reads every row of table matching filter into dest, a pointer to a slice
func (g *GormGateway) Select(ctx context.Context, table Table, dest any, filter Filter, order *Order) error {
	tx, err := g.scoped(ctx, table, "select")
	if err != nil {
		return err
	}
	if tx, err = applyFilter(tx, filter); err != nil {
		return err
	}
	if order != nil {
		if !columnName.MatchString(order.Column) {
			return fmt.Errorf("invalid order column: %q", order.Column)
		}
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: order.Column}, Desc: order.Desc})
	}
	if err := tx.Find(dest).Error; err != nil {
		return fmt.Errorf("select %s: %w", table, err)
	}
	return nil
}

// Get reads the row with the given id into dest
func (g *GormGateway) Get(ctx context.Context, table Table, id string, dest any) error {
	tx, err := g.scoped(ctx, table, "select")
	if err != nil {
		return err
	}
	err = tx.Where(clause.Eq{Column: clause.Column{Name: "id"}, Value: id}).Take(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %s: %w: %w", table, id, ErrNotFound, err)
	}
	if err != nil {
		return fmt.Errorf("get %s: %w", table, err)
	}
	return nil
}

// Count returns the number of rows matching filter
func (g *GormGateway) Count(ctx context.Context, table Table, filter Filter) (int64, error) {
	tx, err := g.scoped(ctx, table, "select")
	if err != nil {
		return 0, err
	}
	if tx, err = applyFilter(tx, filter); err != nil {
		return 0, err
	}
	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return count, nil
}

// Insert writes rows, a pointer to a model or a slice of models.
// Identity and creation time are filled in on the passed rows.
func (g *GormGateway) Insert(ctx context.Context, table Table, rows any) error {
	tx, err := g.scoped(ctx, table, "insert")
	if err != nil {
		return err
	}
	if err := tx.Create(rows).Error; err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}

// Delete removes every row matching filter. An empty filter is refused.
func (g *GormGateway) Delete(ctx context.Context, table Table, filter Filter) (int64, error) {
	if len(filter) == 0 {
		return 0, fmt.Errorf("delete %s: refusing unfiltered delete", table)
	}
	model, err := table.model()
	if err != nil {
		return 0, err
	}
	tx, err := g.scoped(ctx, table, "delete")
	if err != nil {
		return 0, err
	}
	if tx, err = applyFilter(tx, filter); err != nil {
		return 0, err
	}
	result := tx.Delete(model)
	if result.Error != nil {
		return 0, fmt.Errorf("delete %s: %w", table, result.Error)
	}
	return result.RowsAffected, nil
}

// Ping checks the underlying connection
func (g *GormGateway) Ping(ctx context.Context) error {
	sqlDB, err := g.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
