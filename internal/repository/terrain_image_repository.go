package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/terrain-rental/internal/model"
)

// TerrainImageRepo is the MySQL TerrainImageRepository.
type TerrainImageRepo struct{ db *sqlx.DB }

func NewTerrainImageRepo(db *sqlx.DB) *TerrainImageRepo { return &TerrainImageRepo{db: db} }

func (r *TerrainImageRepo) Create(ctx context.Context, img *model.TerrainImage) error {
	stampCreated(&img.CreatedAt, &img.UpdatedAt)
	if img.UploadedAt.IsZero() {
		img.UploadedAt = img.CreatedAt
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO terrain_images (terrain_id, image_path, uploaded_at, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		img.TerrainID, img.ImagePath, img.UploadedAt, img.CreatedAt, img.UpdatedAt)
	if err != nil {
		return classify(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	img.ID = uint64(id)
	return nil
}

// ListByTerrain returns the images of a terrain in upload order.
func (r *TerrainImageRepo) ListByTerrain(ctx context.Context, terrainID uint64) ([]*model.TerrainImage, error) {
	out := []*model.TerrainImage{}
	err := r.db.SelectContext(ctx, &out,
		"SELECT id, terrain_id, image_path, uploaded_at, created_at, updated_at FROM terrain_images WHERE terrain_id = ? ORDER BY id",
		terrainID)
	if err != nil {
		return nil, err
	}
	return out, nil
}
