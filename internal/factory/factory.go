// Package factory generates plausible, internally consistent entities.
// Make* builds a row without touching the store. The store-backed
// variants also persist the row, creating any parent whose foreign key
// was left zero by the caller's overrides.
package factory

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/terrain-rental/internal/model"
	"github.com/iliyamo/terrain-rental/internal/repository"
	"github.com/iliyamo/terrain-rental/internal/utils"
)

// DefaultPassword is the plain text password of every generated user.
const DefaultPassword = "password"

const (
	imageWidth  = 800
	imageHeight = 600
	tokenLength = 10
)

// Factory builds entities from Source values and persists them into
// Store.
type Factory struct {
	Source     Source
	Store      *repository.Store
	Now        func() time.Time
	BcryptCost int

	passwordHash string
	emailSeq     int
}

// New returns a Factory using the real clock and the default bcrypt cost.
func New(src Source, store *repository.Store) *Factory {
	return &Factory{Source: src, Store: store, Now: time.Now, BcryptCost: bcrypt.DefaultCost}
}

func (f *Factory) now() time.Time {
	if f.Now == nil {
		return time.Now().UTC()
	}
	return f.Now().UTC()
}

// startOfYear returns midnight on January 1st of t's year.
func startOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
}

func money(src Source, min, max float64) float64 {
	return math.Round(src.Float64Range(min, max)*100) / 100
}

func (f *Factory) password() (string, error) {
	if f.passwordHash != "" {
		return f.passwordHash, nil
	}
	hash, err := utils.HashPassword(DefaultPassword, f.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	f.passwordHash = hash
	return f.passwordHash, nil
}

// MakeUser builds a verified user with a unique email.
func (f *Factory) MakeUser(overrides ...func(*model.User)) (*model.User, error) {
	hash, err := f.password()
	if err != nil {
		return nil, err
	}
	f.emailSeq++
	now := f.now()
	token := f.Source.Token(tokenLength)
	u := &model.User{
		Name:            f.Source.Name(),
		Email:           fmt.Sprintf("%s.%d@example.com", strings.ToLower(f.Source.Username()), f.emailSeq),
		EmailVerifiedAt: &now,
		PasswordHash:    hash,
		RememberToken:   &token,
	}
	for _, o := range overrides {
		o(u)
	}
	return u, nil
}

// User builds and persists a user.
func (f *Factory) User(ctx context.Context, overrides ...func(*model.User)) (*model.User, error) {
	u, err := f.MakeUser(overrides...)
	if err != nil {
		return nil, err
	}
	if err := f.Store.Users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// MakeTerrain builds a terrain available from within the next month until
// some later point within a year.
func (f *Factory) MakeTerrain(overrides ...func(*model.Terrain)) *model.Terrain {
	now := f.now()
	from := f.Source.DateRange(now, now.AddDate(0, 1, 0))
	to := f.Source.DateRange(from.AddDate(0, 0, 1), now.AddDate(1, 0, 0))
	desc := f.Source.Paragraphs(3)
	image := f.Source.ImageURL(imageWidth, imageHeight)
	t := &model.Terrain{
		Title:         f.Source.Sentence(3),
		Description:   &desc,
		Location:      f.Source.Address(),
		AreaSize:      money(f.Source, 100, 10000),
		PricePerDay:   money(f.Source, 50, 500),
		AvailableFrom: &from,
		AvailableTo:   &to,
		IsAvailable:   f.Source.Bool(80),
		MainImage:     &image,
	}
	for _, o := range overrides {
		o(t)
	}
	return t
}

// Terrain builds and persists a terrain, creating its owner if OwnerID is
// zero.
func (f *Factory) Terrain(ctx context.Context, overrides ...func(*model.Terrain)) (*model.Terrain, error) {
	t := f.MakeTerrain(overrides...)
	if t.OwnerID == 0 {
		owner, err := f.User(ctx)
		if err != nil {
			return nil, err
		}
		t.OwnerID = owner.ID
	}
	if err := f.Store.Terrains.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("create terrain: %w", err)
	}
	return t, nil
}

// MakeTerrainImage builds an image uploaded earlier this year.
func (f *Factory) MakeTerrainImage(overrides ...func(*model.TerrainImage)) *model.TerrainImage {
	now := f.now()
	img := &model.TerrainImage{
		ImagePath:  f.Source.ImageURL(imageWidth, imageHeight),
		UploadedAt: f.Source.DateRange(startOfYear(now), now),
	}
	for _, o := range overrides {
		o(img)
	}
	return img
}

// TerrainImage builds and persists an image, creating its terrain if
// TerrainID is zero.
func (f *Factory) TerrainImage(ctx context.Context, overrides ...func(*model.TerrainImage)) (*model.TerrainImage, error) {
	img := f.MakeTerrainImage(overrides...)
	if img.TerrainID == 0 {
		t, err := f.Terrain(ctx)
		if err != nil {
			return nil, err
		}
		img.TerrainID = t.ID
	}
	if err := f.Store.Images.Create(ctx, img); err != nil {
		return nil, fmt.Errorf("create terrain image: %w", err)
	}
	return img, nil
}

// MakeBooking builds a booking starting within six months either side of
// now and lasting at most 30 days.
func (f *Factory) MakeBooking(overrides ...func(*model.Booking)) *model.Booking {
	now := f.now()
	start := f.Source.DateRange(now.AddDate(0, -6, 0), now.AddDate(0, 6, 0))
	b := &model.Booking{
		StartDate:  start,
		EndDate:    f.Source.DateRange(start, start.AddDate(0, 0, 30)),
		TotalPrice: money(f.Source, 100, 2000),
		Status:     pick(f.Source, model.BookingStatuses),
	}
	for _, o := range overrides {
		o(b)
	}
	return b
}

// Booking builds and persists a booking, creating the terrain and renter
// when their ids are zero.
func (f *Factory) Booking(ctx context.Context, overrides ...func(*model.Booking)) (*model.Booking, error) {
	b := f.MakeBooking(overrides...)
	if b.TerrainID == 0 {
		t, err := f.Terrain(ctx)
		if err != nil {
			return nil, err
		}
		b.TerrainID = t.ID
	}
	if b.RenterID == 0 {
		u, err := f.User(ctx)
		if err != nil {
			return nil, err
		}
		b.RenterID = u.ID
	}
	if err := f.Store.Bookings.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	return b, nil
}

// MakePayment builds a payment dated earlier this year with a fresh
// transaction id.
func (f *Factory) MakePayment(overrides ...func(*model.Payment)) *model.Payment {
	now := f.now()
	p := &model.Payment{
		PaymentMethod: pick(f.Source, model.PaymentMethods),
		AmountPaid:    money(f.Source, 100, 2000),
		PaymentDate:   f.Source.DateRange(startOfYear(now), now),
		Status:        pick(f.Source, model.PaymentStatuses),
		TransactionID: f.Source.UUID(),
	}
	for _, o := range overrides {
		o(p)
	}
	return p
}

// Payment builds and persists a payment, creating its booking if
// BookingID is zero.
func (f *Factory) Payment(ctx context.Context, overrides ...func(*model.Payment)) (*model.Payment, error) {
	p := f.MakePayment(overrides...)
	if p.BookingID == 0 {
		b, err := f.Booking(ctx)
		if err != nil {
			return nil, err
		}
		p.BookingID = b.ID
	}
	if err := f.Store.Payments.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}
	return p, nil
}

// MakeReview builds a review; four in five carry a comment.
func (f *Factory) MakeReview(overrides ...func(*model.Review)) *model.Review {
	rv := &model.Review{Rating: f.Source.IntRange(model.MinRating, model.MaxRating)}
	if f.Source.Bool(80) {
		c := f.Source.Paragraphs(2)
		rv.Comment = &c
	}
	for _, o := range overrides {
		o(rv)
	}
	return rv
}

// Review builds and persists a review, creating the terrain and author
// when their ids are zero.
func (f *Factory) Review(ctx context.Context, overrides ...func(*model.Review)) (*model.Review, error) {
	rv := f.MakeReview(overrides...)
	if rv.TerrainID == 0 {
		t, err := f.Terrain(ctx)
		if err != nil {
			return nil, err
		}
		rv.TerrainID = t.ID
	}
	if rv.UserID == 0 {
		u, err := f.User(ctx)
		if err != nil {
			return nil, err
		}
		rv.UserID = u.ID
	}
	if err := f.Store.Reviews.Create(ctx, rv); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	return rv, nil
}

// Favorite persists a favorite, creating the user and terrain when their
// ids are zero. A favorite has no generated attributes.
func (f *Factory) Favorite(ctx context.Context, overrides ...func(*model.Favorite)) (*model.Favorite, error) {
	fav := &model.Favorite{}
	for _, o := range overrides {
		o(fav)
	}
	if fav.UserID == 0 {
		u, err := f.User(ctx)
		if err != nil {
			return nil, err
		}
		fav.UserID = u.ID
	}
	if fav.TerrainID == 0 {
		t, err := f.Terrain(ctx)
		if err != nil {
			return nil, err
		}
		fav.TerrainID = t.ID
	}
	if err := f.Store.Favorites.Create(ctx, fav); err != nil {
		return nil, fmt.Errorf("create favorite: %w", err)
	}
	return fav, nil
}
