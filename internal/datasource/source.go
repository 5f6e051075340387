// source.go
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

package datasource

import (
	"context"
	"errors"
	"log/slog"

	"github.com/localnerve/strudel-share/internal/compose"
	"github.com/localnerve/strudel-share/internal/demo"
	"github.com/localnerve/strudel-share/internal/gateway"
	"github.com/localnerve/strudel-share/internal/metrics"
	"github.com/localnerve/strudel-share/internal/models"
	"github.com/localnerve/strudel-share/internal/views"
)

// ErrNotFound is returned when a pattern exists in neither the store nor the demo set
var ErrNotFound = gateway.ErrNotFound

// Source reads composed view models from the store, falling back to demo data.
// A Source without a gateway is the demo source: every read is demo and it cannot mutate.
type Source struct {
	gw     gateway.Gateway
	authOK bool
	log    *slog.Logger
}

// New creates a source. gw may be nil when the store is not configured.
// authConfigured reports whether the identity provider is configured.
func New(gw gateway.Gateway, authConfigured bool, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{gw: gw, authOK: authConfigured, log: logger}
}

// Demo returns the unconfigured source
func Demo(logger *slog.Logger) *Source {
	return New(nil, false, logger)
}

// Configured reports whether a store is attached
func (s *Source) Configured() bool {
	return s.gw != nil
}

// CanMutate reports whether writes are possible at all
func (s *Source) CanMutate() bool {
	return s.gw != nil && s.authOK
}

// Gateway returns the underlying gateway, nil for the demo source
func (s *Source) Gateway() gateway.Gateway {
	return s.gw
}

func (s *Source) fallback(collection, reason string, err error) {
	metrics.DemoFallbacks.WithLabelValues(collection, reason).Inc()
	if err != nil {
		s.log.Warn("falling back to demo data", "collection", collection, "reason", reason, "error", err)
		return
	}
	s.log.Info("falling back to demo data", "collection", collection, "reason", reason)
}

func (s *Source) likes(ctx context.Context, ids []string) ([]models.PatternLike, error) {
	var likes []models.PatternLike
	if len(ids) == 0 {
		return likes, nil
	}
	err := s.gw.Select(ctx, gateway.PatternLikes, &likes, gateway.Where(gateway.In("pattern_id", ids)), nil)
	return likes, err
}

func patternIDs(patterns []models.Pattern) []string {
	ids := make([]string, len(patterns))
	for i, p := range patterns {
		ids[i] = p.ID
	}
	return ids
}

// Patterns reads the pattern board, newest first, with likes for viewerID
func (s *Source) Patterns(ctx context.Context, viewerID string) views.PatternBoard {
	if s.gw == nil {
		s.fallback("patterns", metrics.ReasonUnconfigured, nil)
		return views.PatternBoard{Patterns: compose.Plain(demo.Patterns()), IsDemo: true}
	}

	var patterns []models.Pattern
	err := s.gw.Select(ctx, gateway.Patterns, &patterns, nil, gateway.Desc("created_at"))
	resolved := compose.ResolveDataSource(patterns, err, demo.Patterns())
	if resolved.IsDemo {
		reason := metrics.ReasonEmpty
		if err != nil {
			reason = metrics.ReasonError
		}
		s.fallback("patterns", reason, err)
		return views.PatternBoard{Patterns: compose.Plain(resolved.Rows), IsDemo: true}
	}

	likes, err := s.likes(ctx, patternIDs(patterns))
	if err != nil {
		// likes are secondary; the board still renders without counts
		s.log.Warn("failed to fetch likes", "error", err)
		likes = nil
	}
	return views.PatternBoard{Patterns: compose.PatternsWithLikes(patterns, likes, viewerID)}
}

// Feed reads posts newest first with their comments.
// There is no demo feed: an unconfigured or failing store yields an empty demo feed.
func (s *Source) Feed(ctx context.Context) views.Feed {
	empty := views.Feed{Posts: []views.PostView{}, IsDemo: true}
	if s.gw == nil {
		s.fallback("posts", metrics.ReasonUnconfigured, nil)
		return empty
	}

	var posts []models.Post
	if err := s.gw.Select(ctx, gateway.Posts, &posts, nil, gateway.Desc("created_at")); err != nil {
		s.fallback("posts", metrics.ReasonError, err)
		return empty
	}
	if len(posts) == 0 {
		return views.Feed{Posts: []views.PostView{}}
	}

	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	var comments []models.Comment
	if err := s.gw.Select(ctx, gateway.Comments, &comments, gateway.Where(gateway.In("post_id", ids)), gateway.Asc("created_at")); err != nil {
		s.log.Warn("failed to fetch comments", "error", err)
		comments = nil
	}
	return views.Feed{Posts: compose.PostsWithComments(posts, comments)}
}

func (s *Source) demoDetail(id string) (views.PatternDetail, error) {
	p, ok := demo.Pattern(id)
	if !ok {
		return views.PatternDetail{}, ErrNotFound
	}
	return views.PatternDetail{
		Pattern:  views.PatternView{Pattern: p},
		Comments: []models.PatternComment{},
		IsDemo:   true,
	}, nil
}

// Pattern reads one pattern with its comments, oldest first.
// A missing pattern is ErrNotFound; a failed read falls back to the demo set.
func (s *Source) Pattern(ctx context.Context, id, viewerID string) (views.PatternDetail, error) {
	if s.gw == nil {
		return s.demoDetail(id)
	}

	var p models.Pattern
	if err := s.gw.Get(ctx, gateway.Patterns, id, &p); err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			if _, ok := demo.Pattern(id); !ok {
				return views.PatternDetail{}, err
			}
		}
		s.fallback("patterns", metrics.ReasonError, err)
		return s.demoDetail(id)
	}

	likes, err := s.likes(ctx, []string{p.ID})
	if err != nil {
		s.log.Warn("failed to fetch likes", "pattern", id, "error", err)
	}
	var comments []models.PatternComment
	if err := s.gw.Select(ctx, gateway.PatternComments, &comments, gateway.Where(gateway.Eq("pattern_id", p.ID)), gateway.Asc("created_at")); err != nil {
		s.log.Warn("failed to fetch pattern comments", "pattern", id, "error", err)
	}
	if comments == nil {
		comments = []models.PatternComment{}
	}

	return views.PatternDetail{
		Pattern:  compose.PatternsWithLikes([]models.Pattern{p}, likes, viewerID)[0],
		Comments: comments,
	}, nil
}

// Profile reads the viewer's uploaded and liked patterns.
// The profile needs a configured store; errors are returned, not replaced with demo data.
func (s *Source) Profile(ctx context.Context, viewerID string) (views.Profile, error) {
	profile := views.Profile{Uploaded: []views.PatternView{}, Liked: []views.PatternView{}}
	if s.gw == nil || viewerID == "" {
		return profile, nil
	}

	var uploaded []models.Pattern
	if err := s.gw.Select(ctx, gateway.Patterns, &uploaded, gateway.Where(gateway.Eq("user_id", viewerID)), gateway.Desc("created_at")); err != nil {
		return profile, err
	}

	var mine []models.PatternLike
	if err := s.gw.Select(ctx, gateway.PatternLikes, &mine, gateway.Where(gateway.Eq("user_id", viewerID)), gateway.Desc("created_at")); err != nil {
		return profile, err
	}
	likedIDs := make([]string, 0, len(mine))
	seen := make(map[string]bool, len(mine))
	for _, l := range mine {
		if !seen[l.PatternID] {
			seen[l.PatternID] = true
			likedIDs = append(likedIDs, l.PatternID)
		}
	}

	var liked []models.Pattern
	if len(likedIDs) > 0 {
		if err := s.gw.Select(ctx, gateway.Patterns, &liked, gateway.Where(gateway.In("id", likedIDs)), nil); err != nil {
			return profile, err
		}
		// keep most recently liked first
		byID := make(map[string]models.Pattern, len(liked))
		for _, p := range liked {
			byID[p.ID] = p
		}
		liked = liked[:0]
		for _, id := range likedIDs {
			if p, ok := byID[id]; ok {
				liked = append(liked, p)
			}
		}
	}

	all := append(append([]models.Pattern{}, uploaded...), liked...)
	likes, err := s.likes(ctx, patternIDs(all))
	if err != nil {
		return profile, err
	}
	profile.Uploaded = compose.PatternsWithLikes(uploaded, likes, viewerID)
	profile.Liked = compose.PatternsWithLikes(liked, likes, viewerID)
	return profile, nil
}
