package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/terrain-rental/internal/model"
)

// ReviewRepo is the MySQL ReviewRepository.
type ReviewRepo struct{ db *sqlx.DB }

func NewReviewRepo(db *sqlx.DB) *ReviewRepo { return &ReviewRepo{db: db} }

// Create inserts rv after checking the rating range.
func (r *ReviewRepo) Create(ctx context.Context, rv *model.Review) error {
	if err := CheckReview(rv); err != nil {
		return err
	}
	stampCreated(&rv.CreatedAt, &rv.UpdatedAt)
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO reviews (terrain_id, user_id, rating, comment, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		rv.TerrainID, rv.UserID, rv.Rating, rv.Comment, rv.CreatedAt, rv.UpdatedAt)
	if err != nil {
		return classify(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rv.ID = uint64(id)
	return nil
}

// Find returns the reviews inside scope ordered by id.
func (r *ReviewRepo) Find(ctx context.Context, scope ReviewScope) ([]*model.Review, error) {
	where, args := scope.where()
	out := []*model.Review{}
	q := "SELECT id, terrain_id, user_id, rating, comment, created_at, updated_at FROM reviews" + where + " ORDER BY id"
	if err := r.db.SelectContext(ctx, &out, q, args...); err != nil {
		return nil, err
	}
	return out, nil
}

// CheckReview enforces the review column invariants shared by every
// store implementation.
func CheckReview(rv *model.Review) error {
	if !model.ValidRating(rv.Rating) {
		return fmt.Errorf("%w: rating %d outside [%d,%d]", ErrInvalid, rv.Rating, model.MinRating, model.MaxRating)
	}
	return nil
}
