package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/terrain-rental/internal/model"
)

// UserRepository persists users.
type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id uint64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
}

// TerrainRepository persists terrains. ListByOwner resolves the
// user -> terrains relationship; the reverse is UserRepository.GetByID
// with Terrain.OwnerID.
type TerrainRepository interface {
	Create(ctx context.Context, t *model.Terrain) error
	GetByID(ctx context.Context, id uint64) (*model.Terrain, error)
	List(ctx context.Context) ([]*model.Terrain, error)
	ListByOwner(ctx context.Context, ownerID uint64) ([]*model.Terrain, error)
}

type TerrainImageRepository interface {
	Create(ctx context.Context, img *model.TerrainImage) error
	ListByTerrain(ctx context.Context, terrainID uint64) ([]*model.TerrainImage, error)
}

type BookingRepository interface {
	Create(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, id uint64) (*model.Booking, error)
	List(ctx context.Context) ([]*model.Booking, error)
	ListByTerrain(ctx context.Context, terrainID uint64) ([]*model.Booking, error)
	ListByRenter(ctx context.Context, renterID uint64) ([]*model.Booking, error)
	// ListByStatus returns bookings whose status is any of statuses.
	ListByStatus(ctx context.Context, statuses ...model.BookingStatus) ([]*model.Booking, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p *model.Payment) error
	// GetByBooking returns the payment settling a booking or ErrNotFound.
	GetByBooking(ctx context.Context, bookingID uint64) (*model.Payment, error)
	List(ctx context.Context) ([]*model.Payment, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, r *model.Review) error
	// Find returns the reviews matching scope ordered by id.
	Find(ctx context.Context, scope ReviewScope) ([]*model.Review, error)
}

type FavoriteRepository interface {
	Create(ctx context.Context, f *model.Favorite) error
	ListByUser(ctx context.Context, userID uint64) ([]*model.Favorite, error)
	ListByTerrain(ctx context.Context, terrainID uint64) ([]*model.Favorite, error)
}

// Store bundles one repository per table. It is the persistence
// collaborator handed to factories, the seeder and HTTP handlers.
type Store struct {
	Users     UserRepository
	Terrains  TerrainRepository
	Images    TerrainImageRepository
	Bookings  BookingRepository
	Payments  PaymentRepository
	Reviews   ReviewRepository
	Favorites FavoriteRepository
}

// NewMySQLStore returns a Store whose repositories all share db.
func NewMySQLStore(db *sqlx.DB) *Store {
	return &Store{
		Users:     NewUserRepo(db),
		Terrains:  NewTerrainRepo(db),
		Images:    NewTerrainImageRepo(db),
		Bookings:  NewBookingRepo(db),
		Payments:  NewPaymentRepo(db),
		Reviews:   NewReviewRepo(db),
		Favorites: NewFavoriteRepo(db),
	}
}
