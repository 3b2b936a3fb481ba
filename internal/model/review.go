package model

import "time"

const (
	MinRating = 1
	MaxRating = 5
	// HighRating is the lowest rating counted as high-rated.
	HighRating = 4
)

// Review is a user's rating of a terrain with an optional comment.
// Rating is an integer in [MinRating, MaxRating].
type Review struct {
	ID        uint64    `db:"id" json:"id"`                 // reviews.id
	TerrainID uint64    `db:"terrain_id" json:"terrain_id"` // reviews.terrain_id
	UserID    uint64    `db:"user_id" json:"user_id"`       // reviews.user_id
	Rating    int       `db:"rating" json:"rating"`         // reviews.rating
	Comment   *string   `db:"comment" json:"comment"`       // reviews.comment (nullable)
	CreatedAt time.Time `db:"created_at" json:"created_at"` // reviews.created_at
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"` // reviews.updated_at
}

// ValidRating reports whether r is an accepted rating value.
func ValidRating(r int) bool { return r >= MinRating && r <= MaxRating }
