// pattern.go
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

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Pattern is a named, tagged unit of shareable Strudel code
type Pattern struct {
	ID          string    `gorm:"primaryKey;type:char(36)" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Category    string    `gorm:"size:64;not null;index" json:"category"`
	Code        string    `gorm:"type:text;not null" json:"code"`
	Author      string    `gorm:"size:255;not null" json:"author"`
	Tags        Tags      `gorm:"not null" json:"tags"`
	Description string    `gorm:"type:text" json:"description"`
	UserID      *string   `gorm:"type:char(36);index" json:"user_id"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}

// PatternLike records one user liking one pattern.
// The unique index enforces at most one like per (pattern, user) pair.
type PatternLike struct {
	ID        string    `gorm:"primaryKey;type:char(36)" json:"id"`
	PatternID string    `gorm:"type:char(36);not null;uniqueIndex:idx_pattern_like_user" json:"pattern_id"`
	UserID    string    `gorm:"type:char(36);not null;uniqueIndex:idx_pattern_like_user;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	Pattern   *Pattern  `gorm:"foreignKey:PatternID;constraint:OnDelete:CASCADE" json:"-"`
}

// PatternComment is a comment on a pattern's detail page
type PatternComment struct {
	ID        string    `gorm:"primaryKey;type:char(36)" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	PatternID string    `gorm:"type:char(36);not null;index" json:"pattern_id"`
	UserID    string    `gorm:"type:char(36);not null" json:"user_id"`
	Author    string    `gorm:"size:255;not null" json:"author"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	Pattern   *Pattern  `gorm:"foreignKey:PatternID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName overrides the table name for Pattern
func (Pattern) TableName() string {
	return "patterns"
}

// TableName overrides the table name for PatternLike
func (PatternLike) TableName() string {
	return "pattern_likes"
}

// TableName overrides the table name for PatternComment
func (PatternComment) TableName() string {
	return "pattern_comments"
}

// BeforeCreate assigns the identity of a new pattern
func (p *Pattern) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Tags == nil {
		p.Tags = Tags{}
	}
	return nil
}

// BeforeCreate assigns the identity of a new like
func (l *PatternLike) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// BeforeCreate assigns the identity of a new pattern comment
func (c *PatternComment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// OwnedBy reports whether the pattern belongs to the given user
func (p Pattern) OwnedBy(userID string) bool {
	return userID != "" && p.UserID != nil && *p.UserID == userID
}
