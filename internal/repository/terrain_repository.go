package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/terrain-rental/internal/model"
)

const terrainColumns = "id, owner_id, title, description, location, area_size, price_per_day, available_from, available_to, is_available, main_image, created_at, updated_at"

// TerrainRepo is the MySQL TerrainRepository.
type TerrainRepo struct{ db *sqlx.DB }

func NewTerrainRepo(db *sqlx.DB) *TerrainRepo { return &TerrainRepo{db: db} }

// Create inserts t. An unknown owner yields ErrForeignKey; a
// non-positive area, a negative price or an availability window that
// ends before it starts yields ErrInvalid.
func (r *TerrainRepo) Create(ctx context.Context, t *model.Terrain) error {
	if err := CheckTerrain(t); err != nil {
		return err
	}
	stampCreated(&t.CreatedAt, &t.UpdatedAt)
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO terrains (owner_id, title, description, location, area_size, price_per_day,
			available_from, available_to, is_available, main_image, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.OwnerID, t.Title, t.Description, t.Location, t.AreaSize, t.PricePerDay,
		t.AvailableFrom, t.AvailableTo, t.IsAvailable, t.MainImage, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return classify(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

func (r *TerrainRepo) GetByID(ctx context.Context, id uint64) (*model.Terrain, error) {
	var t model.Terrain
	if err := r.db.GetContext(ctx, &t, "SELECT "+terrainColumns+" FROM terrains WHERE id = ?", id); err != nil {
		return nil, classify(err)
	}
	return &t, nil
}

func (r *TerrainRepo) List(ctx context.Context) ([]*model.Terrain, error) {
	out := []*model.Terrain{}
	if err := r.db.SelectContext(ctx, &out, "SELECT "+terrainColumns+" FROM terrains ORDER BY id"); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByOwner returns all terrains for a specific owner ordered by id.
func (r *TerrainRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]*model.Terrain, error) {
	out := []*model.Terrain{}
	if err := r.db.SelectContext(ctx, &out, "SELECT "+terrainColumns+" FROM terrains WHERE owner_id = ? ORDER BY id", ownerID); err != nil {
		return nil, err
	}
	return out, nil
}

// CheckTerrain enforces the terrain column invariants shared by every
// store implementation.
func CheckTerrain(t *model.Terrain) error {
	switch {
	case t.AreaSize < 1:
		return fmt.Errorf("%w: area_size %.2f below 1", ErrInvalid, t.AreaSize)
	case t.PricePerDay < 0:
		return fmt.Errorf("%w: price_per_day %.2f is negative", ErrInvalid, t.PricePerDay)
	case t.AvailableFrom != nil && t.AvailableTo != nil && !t.AvailableTo.After(*t.AvailableFrom):
		return fmt.Errorf("%w: available_to not after available_from", ErrInvalid)
	}
	return nil
}
