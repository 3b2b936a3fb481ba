package config

import "fmt"

// SeedConfig holds the row counts produced by the seeding run
// (SEED_USERS, SEED_IMAGES_MIN, ...).
type SeedConfig struct {
	Users         int    `default:"10"`
	TestUserName  string `split_words:"true" default:"Test User"`
	TestUserEmail string `split_words:"true" default:"test@example.com"`
	Terrains      int    `default:"20"`
	ImagesMin     int    `split_words:"true" default:"2"`
	ImagesMax     int    `split_words:"true" default:"5"`
	Bookings      int    `default:"30"`
	Reviews       int    `default:"40"`
	FavoritesMin  int    `split_words:"true" default:"1"`
	FavoritesMax  int    `split_words:"true" default:"3"`

	// RandomSeed fixes the fake value stream; 0 picks a time based seed.
	RandomSeed int64 `split_words:"true" default:"0"`
}

// DefaultSeed returns the counts used when nothing is configured.
func DefaultSeed() SeedConfig {
	return SeedConfig{
		Users:         10,
		TestUserName:  "Test User",
		TestUserEmail: "test@example.com",
		Terrains:      20,
		ImagesMin:     2,
		ImagesMax:     5,
		Bookings:      30,
		Reviews:       40,
		FavoritesMin:  1,
		FavoritesMax:  3,
	}
}

// Validate rejects negative counts and inverted ranges.
func (s SeedConfig) Validate() error {
	counts := []struct {
		key string
		n   int
	}{
		{"SEED_USERS", s.Users},
		{"SEED_TERRAINS", s.Terrains},
		{"SEED_IMAGES_MIN", s.ImagesMin},
		{"SEED_BOOKINGS", s.Bookings},
		{"SEED_REVIEWS", s.Reviews},
		{"SEED_FAVORITES_MIN", s.FavoritesMin},
	}
	for _, c := range counts {
		if c.n < 0 {
			return fmt.Errorf("invalid %s: %d is negative", c.key, c.n)
		}
	}
	if s.ImagesMax < s.ImagesMin {
		return fmt.Errorf("invalid SEED_IMAGES_MAX: %d < SEED_IMAGES_MIN %d", s.ImagesMax, s.ImagesMin)
	}
	if s.FavoritesMax < s.FavoritesMin {
		return fmt.Errorf("invalid SEED_FAVORITES_MAX: %d < SEED_FAVORITES_MIN %d", s.FavoritesMax, s.FavoritesMin)
	}
	if s.TestUserEmail == "" {
		return fmt.Errorf("invalid SEED_TEST_USER_EMAIL: empty")
	}
	return nil
}
