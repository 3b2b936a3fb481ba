package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/terrain-rental/internal/model"
)

const favoriteColumns = "id, user_id, terrain_id, created_at, updated_at"

// FavoriteRepo is the MySQL FavoriteRepository.
type FavoriteRepo struct{ db *sqlx.DB }

func NewFavoriteRepo(db *sqlx.DB) *FavoriteRepo { return &FavoriteRepo{db: db} }

// Create inserts f. Favoriting the same terrain twice yields ErrDuplicate.
func (r *FavoriteRepo) Create(ctx context.Context, f *model.Favorite) error {
	stampCreated(&f.CreatedAt, &f.UpdatedAt)
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO favorites (user_id, terrain_id, created_at, updated_at) VALUES (?, ?, ?, ?)",
		f.UserID, f.TerrainID, f.CreatedAt, f.UpdatedAt)
	if err != nil {
		return classify(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = uint64(id)
	return nil
}

func (r *FavoriteRepo) ListByUser(ctx context.Context, userID uint64) ([]*model.Favorite, error) {
	out := []*model.Favorite{}
	if err := r.db.SelectContext(ctx, &out, "SELECT "+favoriteColumns+" FROM favorites WHERE user_id = ? ORDER BY id", userID); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *FavoriteRepo) ListByTerrain(ctx context.Context, terrainID uint64) ([]*model.Favorite, error) {
	out := []*model.Favorite{}
	if err := r.db.SelectContext(ctx, &out, "SELECT "+favoriteColumns+" FROM favorites WHERE terrain_id = ? ORDER BY id", terrainID); err != nil {
		return nil, err
	}
	return out, nil
}
