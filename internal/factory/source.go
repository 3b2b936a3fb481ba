package factory

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

// Source supplies the random values behind every generator. Swapping the
// Source is how tests get reproducible fixtures.
type Source interface {
	// IntRange returns an int in [min, max].
	IntRange(min, max int) int
	// Float64Range returns a float in [min, max).
	Float64Range(min, max float64) float64
	// Bool returns true with pct percent probability.
	Bool(pct int) bool
	// DateRange returns a time in [start, end].
	DateRange(start, end time.Time) time.Time
	Name() string
	Username() string
	Sentence(words int) string
	Paragraphs(n int) string
	Address() string
	ImageURL(width, height int) string
	UUID() string
	// Token returns n random letters.
	Token(n int) string
}

type fakerSource struct {
	f *gofakeit.Faker
}

// NewFakerSource returns a gofakeit backed Source. The same non-zero seed
// always yields the same value stream, UUIDs included; seed 0 is
// seeded from crypto/rand.
func NewFakerSource(seed int64) Source {
	return &fakerSource{f: gofakeit.New(seed)}
}

func (s *fakerSource) IntRange(min, max int) int { return s.f.IntRange(min, max) }

func (s *fakerSource) Float64Range(min, max float64) float64 { return s.f.Float64Range(min, max) }

func (s *fakerSource) Bool(pct int) bool { return s.f.IntRange(1, 100) <= pct }

func (s *fakerSource) DateRange(start, end time.Time) time.Time {
	if !end.After(start) {
		return start
	}
	return s.f.DateRange(start, end).UTC()
}

func (s *fakerSource) Name() string { return s.f.Name() }
func (s *fakerSource) Username() string { return s.f.Username() }

func (s *fakerSource) Sentence(words int) string { return s.f.Sentence(words) }

func (s *fakerSource) Paragraphs(n int) string { return s.f.Paragraph(n, 4, 12, "\n\n") }

func (s *fakerSource) Address() string { return s.f.Address().Address }

func (s *fakerSource) ImageURL(width, height int) string { return s.f.ImageURL(width, height) }

func (s *fakerSource) UUID() string {
	id, err := uuid.NewRandomFromReader(s.f.Rand)
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func (s *fakerSource) Token(n int) string { return s.f.LetterN(uint(n)) }

// pick returns a uniformly chosen element of items, which must not be
// empty.
func pick[T any](src Source, items []T) T {
	return items[src.IntRange(0, len(items)-1)]
}
