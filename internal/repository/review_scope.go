package repository

import (
	"strings"

	"github.com/iliyamo/terrain-rental/internal/model"
)

// ReviewScope narrows a review query. Zero fields do not filter, so the
// zero value matches every review. Scopes compose:
//
//	ReviewScope{TerrainID: id}.HighRated()
type ReviewScope struct {
	TerrainID uint64
	UserID    uint64
	Rating    *int // exact rating, nil = any
	MinRating int  // inclusive lower bound, 0 = none
}

// ByRating restricts the scope to reviews with exactly rating r.
// Out of range values yield an empty result.
func (s ReviewScope) ByRating(r int) ReviewScope {
	s.Rating = &r
	return s
}

// HighRated restricts the scope to reviews rated model.HighRating or more.
func (s ReviewScope) HighRated() ReviewScope {
	s.MinRating = model.HighRating
	return s
}

// Matches reports whether r falls inside the scope.
func (s ReviewScope) Matches(r *model.Review) bool {
	if s.TerrainID != 0 && r.TerrainID != s.TerrainID {
		return false
	}
	if s.UserID != 0 && r.UserID != s.UserID {
		return false
	}
	if s.Rating != nil && r.Rating != *s.Rating {
		return false
	}
	if s.MinRating != 0 && r.Rating < s.MinRating {
		return false
	}
	return true
}

// where renders the scope as a SQL WHERE clause with ? placeholders.
func (s ReviewScope) where() (string, []any) {
	var conds []string
	var args []any
	if s.TerrainID != 0 {
		conds = append(conds, "terrain_id = ?")
		args = append(args, s.TerrainID)
	}
	if s.UserID != 0 {
		conds = append(conds, "user_id = ?")
		args = append(args, s.UserID)
	}
	if s.Rating != nil {
		conds = append(conds, "rating = ?")
		args = append(args, *s.Rating)
	}
	if s.MinRating != 0 {
		conds = append(conds, "rating >= ?")
		args = append(args, s.MinRating)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
