// Package seeder fills an empty store with a consistent fake dataset.
// Phases run strictly in order because each one reads the rows written
// by the phases before it. The first failure aborts the run; nothing is
// retried or rolled back.
package seeder

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/iliyamo/terrain-rental/internal/config"
	"github.com/iliyamo/terrain-rental/internal/factory"
	"github.com/iliyamo/terrain-rental/internal/model"
	"github.com/iliyamo/terrain-rental/internal/repository"
)

// Phase names one seeding step.
type Phase string

const (
	PhaseUsers     Phase = "users"
	PhaseTerrains  Phase = "terrains"
	PhaseImages    Phase = "terrain_images"
	PhaseBookings  Phase = "bookings"
	PhasePayments  Phase = "payments"
	PhaseReviews   Phase = "reviews"
	PhaseFavorites Phase = "favorites"
)

// Phases lists the phases in execution order.
var Phases = []Phase{
	PhaseUsers, PhaseTerrains, PhaseImages, PhaseBookings, PhasePayments, PhaseReviews, PhaseFavorites,
}

// Report holds the number of rows each phase created.
type Report struct {
	Rows     map[Phase]int
	Duration time.Duration
}

// MarshalLogObject lets a Report be logged with zap.Object.
func (r Report) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	for _, p := range Phases {
		enc.AddInt(string(p), r.Rows[p])
	}
	enc.AddDuration("duration", r.Duration)
	return nil
}

// Seeder runs the seeding phases against the factory's store.
type Seeder struct {
	fac *factory.Factory
	cfg config.SeedConfig
	log *zap.Logger
}

func New(fac *factory.Factory, cfg config.SeedConfig, log *zap.Logger) *Seeder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Seeder{fac: fac, cfg: cfg, log: log}
}

// Run executes every phase in order. On failure the returned Report
// covers the phases that completed and the error names the failing
// phase.
func (s *Seeder) Run(ctx context.Context) (Report, error) {
	steps := map[Phase]func(context.Context) (int, error){
		PhaseUsers:     s.seedUsers,
		PhaseTerrains:  s.seedTerrains,
		PhaseImages:    s.seedImages,
		PhaseBookings:  s.seedBookings,
		PhasePayments:  s.seedPayments,
		PhaseReviews:   s.seedReviews,
		PhaseFavorites: s.seedFavorites,
	}
	report := Report{Rows: make(map[Phase]int, len(Phases))}
	started := time.Now()
	for _, p := range Phases {
		s.log.Debug("seed phase started", zap.String("phase", string(p)))
		n, err := steps[p](ctx)
		if err != nil {
			s.log.Error("seed phase failed", zap.String("phase", string(p)), zap.Int("rows", n), zap.Error(err))
			report.Duration = time.Since(started)
			return report, fmt.Errorf("seed %s: %w", p, err)
		}
		report.Rows[p] = n
		s.log.Info("seed phase finished", zap.String("phase", string(p)), zap.Int("rows", n))
	}
	report.Duration = time.Since(started)
	s.log.Info("seed finished", zap.Object("report", report))
	return report, nil
}

func (s *Seeder) seedUsers(ctx context.Context) (int, error) {
	n := 0
	for i := 0; i < s.cfg.Users; i++ {
		if _, err := s.fac.User(ctx); err != nil {
			return n, err
		}
		n++
	}
	_, err := s.fac.User(ctx, func(u *model.User) {
		u.Name = s.cfg.TestUserName
		u.Email = s.cfg.TestUserEmail
	})
	if err != nil {
		return n, fmt.Errorf("test user: %w", err)
	}
	return n + 1, nil
}

func (s *Seeder) seedTerrains(ctx context.Context) (int, error) {
	users, err := s.userIDs(ctx)
	if err != nil {
		return 0, err
	}
	if s.cfg.Terrains > 0 {
		if err := requireRows(users, "users"); err != nil {
			return 0, err
		}
	}
	n := 0
	for i := 0; i < s.cfg.Terrains; i++ {
		owner := s.pick(users)
		if _, err := s.fac.Terrain(ctx, func(t *model.Terrain) { t.OwnerID = owner }); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func (s *Seeder) seedImages(ctx context.Context) (int, error) {
	terrains, err := s.terrainIDs(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, id := range terrains {
		count := s.fac.Source.IntRange(s.cfg.ImagesMin, s.cfg.ImagesMax)
		for i := 0; i < count; i++ {
			if _, err := s.fac.TerrainImage(ctx, func(img *model.TerrainImage) { img.TerrainID = id }); err != nil {
				return n, err
			}
			n++
		}
	}
	return n, nil
}

func (s *Seeder) seedBookings(ctx context.Context) (int, error) {
	users, terrains, err := s.usersAndTerrains(ctx)
	if err != nil {
		return 0, err
	}
	if s.cfg.Bookings > 0 {
		if err := requireRows(terrains, "terrains"); err != nil {
			return 0, err
		}
		if err := requireRows(users, "users"); err != nil {
			return 0, err
		}
	}
	n := 0
	for i := 0; i < s.cfg.Bookings; i++ {
		terrain, renter := s.pick(terrains), s.pick(users)
		_, err := s.fac.Booking(ctx, func(b *model.Booking) {
			b.TerrainID = terrain
			b.RenterID = renter
		})
		if err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// seedPayments settles every approved or completed booking with exactly
// one payment.
func (s *Seeder) seedPayments(ctx context.Context) (int, error) {
	payable := lo.Filter(model.BookingStatuses, func(st model.BookingStatus, _ int) bool { return st.Payable() })
	bookings, err := s.fac.Store.Bookings.ListByStatus(ctx, payable...)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, b := range bookings {
		id := b.ID
		if _, err := s.fac.Payment(ctx, func(p *model.Payment) { p.BookingID = id }); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func (s *Seeder) seedReviews(ctx context.Context) (int, error) {
	users, terrains, err := s.usersAndTerrains(ctx)
	if err != nil {
		return 0, err
	}
	if s.cfg.Reviews > 0 {
		if err := requireRows(terrains, "terrains"); err != nil {
			return 0, err
		}
		if err := requireRows(users, "users"); err != nil {
			return 0, err
		}
	}
	n := 0
	for i := 0; i < s.cfg.Reviews; i++ {
		terrain, author := s.pick(terrains), s.pick(users)
		_, err := s.fac.Review(ctx, func(r *model.Review) {
			r.TerrainID = terrain
			r.UserID = author
		})
		if err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// seedFavorites gives every user a few distinct favorite terrains, so
// the (user, terrain) pair is unique by construction.
func (s *Seeder) seedFavorites(ctx context.Context) (int, error) {
	users, terrains, err := s.usersAndTerrains(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, user := range users {
		count := min(s.fac.Source.IntRange(s.cfg.FavoritesMin, s.cfg.FavoritesMax), len(terrains))
		for _, terrain := range s.sample(terrains, count) {
			_, err := s.fac.Favorite(ctx, func(f *model.Favorite) {
				f.UserID = user
				f.TerrainID = terrain
			})
			if err != nil {
				return n, err
			}
			n++
		}
	}
	return n, nil
}

func (s *Seeder) userIDs(ctx context.Context) ([]uint64, error) {
	users, err := s.fac.Store.Users.List(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Map(users, func(u *model.User, _ int) uint64 { return u.ID }), nil
}

func (s *Seeder) terrainIDs(ctx context.Context) ([]uint64, error) {
	terrains, err := s.fac.Store.Terrains.List(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Map(terrains, func(t *model.Terrain, _ int) uint64 { return t.ID }), nil
}

// usersAndTerrains returns the ids a phase draws references from.
func (s *Seeder) usersAndTerrains(ctx context.Context) ([]uint64, []uint64, error) {
	users, err := s.userIDs(ctx)
	if err != nil {
		return nil, nil, err
	}
	terrains, err := s.terrainIDs(ctx)
	if err != nil {
		return nil, nil, err
	}
	return users, terrains, nil
}

func requireRows(ids []uint64, table string) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: no %s to reference", repository.ErrNotFound, table)
	}
	return nil
}

func (s *Seeder) pick(ids []uint64) uint64 {
	return ids[s.fac.Source.IntRange(0, len(ids)-1)]
}

// sample returns n distinct ids using a partial Fisher-Yates shuffle
// driven by the factory's Source.
func (s *Seeder) sample(ids []uint64, n int) []uint64 {
	pool := append([]uint64(nil), ids...)
	for i := 0; i < n; i++ {
		j := s.fac.Source.IntRange(i, len(pool)-1)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}
