// Package memory is an in-process repository.Store. It enforces the
// same unique and foreign key constraints as the MySQL schema, so code
// seeded against it behaves as it would against the database. It backs
// dry-run seeding and tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/iliyamo/terrain-rental/internal/model"
	"github.com/iliyamo/terrain-rental/internal/repository"
)

type db struct {
	mu sync.RWMutex

	seq       map[string]uint64
	users     map[uint64]*model.User
	terrains  map[uint64]*model.Terrain
	images    map[uint64]*model.TerrainImage
	bookings  map[uint64]*model.Booking
	payments  map[uint64]*model.Payment
	reviews   map[uint64]*model.Review
	favorites map[uint64]*model.Favorite
}

// NewStore returns an empty store.
func NewStore() *repository.Store {
	d := &db{
		seq:       map[string]uint64{},
		users:     map[uint64]*model.User{},
		terrains:  map[uint64]*model.Terrain{},
		images:    map[uint64]*model.TerrainImage{},
		bookings:  map[uint64]*model.Booking{},
		payments:  map[uint64]*model.Payment{},
		reviews:   map[uint64]*model.Review{},
		favorites: map[uint64]*model.Favorite{},
	}
	return &repository.Store{
		Users:     users{d},
		Terrains:  terrains{d},
		Images:    images{d},
		Bookings:  bookings{d},
		Payments:  payments{d},
		Reviews:   reviews{d},
		Favorites: favorites{d},
	}
}

func (d *db) next(table string) uint64 {
	d.seq[table]++
	return d.seq[table]
}

func stamp(created, updated *time.Time) {
	if created.IsZero() {
		*created = time.Now().UTC().Truncate(time.Second)
	}
	if updated.IsZero() {
		*updated = *created
	}
}

func missing(table string, id uint64) error {
	return fmt.Errorf("%w: %s.id=%d does not exist", repository.ErrForeignKey, table, id)
}

// sorted returns copies of the rows accepted by keep ordered by id. Rows
// are copied so callers cannot mutate stored state.
func sorted[T any](rows map[uint64]*T, id func(*T) uint64, keep func(*T) bool) []*T {
	out := make([]*T, 0, len(rows))
	for _, r := range rows {
		if keep == nil || keep(r) {
			c := *r
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return id(out[i]) < id(out[j]) })
	return out
}

func get[T any](rows map[uint64]*T, id uint64) (*T, error) {
	r, ok := rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *r
	return &c, nil
}

type users struct{ *db }

func (s users) Create(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	for _, other := range s.users {
		if other.Email == u.Email {
			return fmt.Errorf("%w: users.email %q", repository.ErrDuplicate, u.Email)
		}
	}
	stamp(&u.CreatedAt, &u.UpdatedAt)
	u.ID = s.next("users")
	c := *u
	s.users[u.ID] = &c
	return nil
}

func (s users) GetByID(_ context.Context, id uint64) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return get(s.users, id)
}

func (s users) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	email = strings.ToLower(strings.TrimSpace(email))
	u, ok := lo.Find(lo.Values(s.users), func(u *model.User) bool { return u.Email == email })
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *u
	return &c, nil
}

func (s users) List(_ context.Context) ([]*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sorted(s.users, func(u *model.User) uint64 { return u.ID }, nil), nil
}

type terrains struct{ *db }

func (s terrains) Create(_ context.Context, t *model.Terrain) error {
	if err := repository.CheckTerrain(t); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[t.OwnerID]; !ok {
		return missing("users", t.OwnerID)
	}
	stamp(&t.CreatedAt, &t.UpdatedAt)
	t.ID = s.next("terrains")
	c := *t
	s.terrains[t.ID] = &c
	return nil
}

func (s terrains) GetByID(_ context.Context, id uint64) (*model.Terrain, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return get(s.terrains, id)
}

func (s terrains) List(_ context.Context) ([]*model.Terrain, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sorted(s.terrains, terrainID, nil), nil
}

func (s terrains) ListByOwner(_ context.Context, ownerID uint64) ([]*model.Terrain, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sorted(s.terrains, terrainID, func(t *model.Terrain) bool { return t.OwnerID == ownerID }), nil
}

func terrainID(t *model.Terrain) uint64 { return t.ID }

type images struct{ *db }

func (s images) Create(_ context.Context, img *model.TerrainImage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.terrains[img.TerrainID]; !ok {
		return missing("terrains", img.TerrainID)
	}
	stamp(&img.CreatedAt, &img.UpdatedAt)
	if img.UploadedAt.IsZero() {
		img.UploadedAt = img.CreatedAt
	}
	img.ID = s.next("terrain_images")
	c := *img
	s.images[img.ID] = &c
	return nil
}

func (s images) ListByTerrain(_ context.Context, terrainID uint64) ([]*model.TerrainImage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sorted(s.images, func(i *model.TerrainImage) uint64 { return i.ID },
		func(i *model.TerrainImage) bool { return i.TerrainID == terrainID }), nil
}

type bookings struct{ *db }

func (s bookings) Create(_ context.Context, b *model.Booking) error {
	if err := repository.CheckBooking(b); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.terrains[b.TerrainID]; !ok {
		return missing("terrains", b.TerrainID)
	}
	if _, ok := s.users[b.RenterID]; !ok {
		return missing("users", b.RenterID)
	}
	stamp(&b.CreatedAt, &b.UpdatedAt)
	b.ID = s.next("bookings")
	c := *b
	s.bookings[b.ID] = &c
	return nil
}

func (s bookings) GetByID(_ context.Context, id uint64) (*model.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return get(s.bookings, id)
}

func (s bookings) List(ctx context.Context) ([]*model.Booking, error) {
	return s.where(nil), nil
}

func (s bookings) ListByTerrain(_ context.Context, terrainID uint64) ([]*model.Booking, error) {
	return s.where(func(b *model.Booking) bool { return b.TerrainID == terrainID }), nil
}

func (s bookings) ListByRenter(_ context.Context, renterID uint64) ([]*model.Booking, error) {
	return s.where(func(b *model.Booking) bool { return b.RenterID == renterID }), nil
}

func (s bookings) ListByStatus(_ context.Context, statuses ...model.BookingStatus) ([]*model.Booking, error) {
	return s.where(func(b *model.Booking) bool { return lo.Contains(statuses, b.Status) }), nil
}

func (s bookings) where(keep func(*model.Booking) bool) []*model.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sorted(s.bookings, func(b *model.Booking) uint64 { return b.ID }, keep)
}

type payments struct{ *db }

func (s payments) Create(_ context.Context, p *model.Payment) error {
	if err := repository.CheckPayment(p); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bookings[p.BookingID]; !ok {
		return missing("bookings", p.BookingID)
	}
	for _, other := range s.payments {
		if other.TransactionID == p.TransactionID {
			return fmt.Errorf("%w: payments.transaction_id %q", repository.ErrDuplicate, p.TransactionID)
		}
	}
	stamp(&p.CreatedAt, &p.UpdatedAt)
	p.ID = s.next("payments")
	c := *p
	s.payments[p.ID] = &c
	return nil
}

func (s payments) GetByBooking(_ context.Context, bookingID uint64) (*model.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	found := sorted(s.payments, paymentID, func(p *model.Payment) bool { return p.BookingID == bookingID })
	if len(found) == 0 {
		return nil, repository.ErrNotFound
	}
	return found[0], nil
}

func (s payments) List(_ context.Context) ([]*model.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sorted(s.payments, paymentID, nil), nil
}

func paymentID(p *model.Payment) uint64 { return p.ID }

type reviews struct{ *db }

func (s reviews) Create(_ context.Context, rv *model.Review) error {
	if err := repository.CheckReview(rv); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.terrains[rv.TerrainID]; !ok {
		return missing("terrains", rv.TerrainID)
	}
	if _, ok := s.users[rv.UserID]; !ok {
		return missing("users", rv.UserID)
	}
	stamp(&rv.CreatedAt, &rv.UpdatedAt)
	rv.ID = s.next("reviews")
	c := *rv
	s.reviews[rv.ID] = &c
	return nil
}

func (s reviews) Find(_ context.Context, scope repository.ReviewScope) ([]*model.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sorted(s.reviews, func(r *model.Review) uint64 { return r.ID }, scope.Matches), nil
}

type favorites struct{ *db }

func (s favorites) Create(_ context.Context, f *model.Favorite) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[f.UserID]; !ok {
		return missing("users", f.UserID)
	}
	if _, ok := s.terrains[f.TerrainID]; !ok {
		return missing("terrains", f.TerrainID)
	}
	for _, other := range s.favorites {
		if other.UserID == f.UserID && other.TerrainID == f.TerrainID {
			return fmt.Errorf("%w: favorites(user_id=%d, terrain_id=%d)", repository.ErrDuplicate, f.UserID, f.TerrainID)
		}
	}
	stamp(&f.CreatedAt, &f.UpdatedAt)
	f.ID = s.next("favorites")
	c := *f
	s.favorites[f.ID] = &c
	return nil
}

func (s favorites) ListByUser(_ context.Context, userID uint64) ([]*model.Favorite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sorted(s.favorites, favoriteID, func(f *model.Favorite) bool { return f.UserID == userID }), nil
}

func (s favorites) ListByTerrain(_ context.Context, terrainID uint64) ([]*model.Favorite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sorted(s.favorites, favoriteID, func(f *model.Favorite) bool { return f.TerrainID == terrainID }), nil
}

func favoriteID(f *model.Favorite) uint64 { return f.ID }
