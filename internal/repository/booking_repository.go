package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"

	"github.com/iliyamo/terrain-rental/internal/model"
)

const bookingColumns = "id, terrain_id, renter_id, start_date, end_date, total_price, status, created_at, updated_at"

// BookingRepo is the MySQL BookingRepository.
type BookingRepo struct{ db *sqlx.DB }

func NewBookingRepo(db *sqlx.DB) *BookingRepo { return &BookingRepo{db: db} }

// Create inserts b. The terrain and renter must exist.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	if err := CheckBooking(b); err != nil {
		return err
	}
	stampCreated(&b.CreatedAt, &b.UpdatedAt)
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO bookings (terrain_id, renter_id, start_date, end_date, total_price, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		b.TerrainID, b.RenterID, b.StartDate, b.EndDate, b.TotalPrice, b.Status, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return classify(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	var b model.Booking
	if err := r.db.GetContext(ctx, &b, "SELECT "+bookingColumns+" FROM bookings WHERE id = ?", id); err != nil {
		return nil, classify(err)
	}
	return &b, nil
}

func (r *BookingRepo) List(ctx context.Context) ([]*model.Booking, error) {
	return r.selectWhere(ctx, "", nil)
}

func (r *BookingRepo) ListByTerrain(ctx context.Context, terrainID uint64) ([]*model.Booking, error) {
	return r.selectWhere(ctx, " WHERE terrain_id = ?", []any{terrainID})
}

func (r *BookingRepo) ListByRenter(ctx context.Context, renterID uint64) ([]*model.Booking, error) {
	return r.selectWhere(ctx, " WHERE renter_id = ?", []any{renterID})
}

func (r *BookingRepo) ListByStatus(ctx context.Context, statuses ...model.BookingStatus) ([]*model.Booking, error) {
	if len(statuses) == 0 {
		return []*model.Booking{}, nil
	}
	names := lo.Map(statuses, func(s model.BookingStatus, _ int) string { return string(s) })
	q, args, err := sqlx.In(" WHERE status IN (?)", names)
	if err != nil {
		return nil, err
	}
	return r.selectWhere(ctx, q, args)
}

func (r *BookingRepo) selectWhere(ctx context.Context, where string, args []any) ([]*model.Booking, error) {
	out := []*model.Booking{}
	q := r.db.Rebind("SELECT " + bookingColumns + " FROM bookings" + where + " ORDER BY id")
	if err := r.db.SelectContext(ctx, &out, q, args...); err != nil {
		return nil, err
	}
	return out, nil
}

// CheckBooking enforces the booking column invariants shared by every
// store implementation.
func CheckBooking(b *model.Booking) error {
	if !b.Status.Valid() {
		return fmt.Errorf("%w: booking status %q", ErrInvalid, string(b.Status))
	}
	if b.EndDate.Before(b.StartDate) {
		return fmt.Errorf("%w: end_date before start_date", ErrInvalid)
	}
	return nil
}
