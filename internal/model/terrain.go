package model

import "time"

// Terrain is a rentable land parcel listed by its owner. A terrain
// has many images, bookings, reviews and favorites.
//
// Fields:
//  ID            – primary key identifier.
//  OwnerID       – user who listed the terrain.
//  Title         – short listing title.
//  Description   – free text description (nullable).
//  Location      – free text address.
//  AreaSize      – surface in square meters, at least 1.
//  PricePerDay   – daily rental price, never negative.
//  AvailableFrom – first available day (nullable).
//  AvailableTo   – last available day, after AvailableFrom (nullable).
//  IsAvailable   – whether the listing currently accepts bookings.
//  MainImage     – path or URL of the cover image (nullable).
type Terrain struct {
	ID            uint64     `db:"id" json:"id"`                         // terrains.id
	OwnerID       uint64     `db:"owner_id" json:"owner_id"`             // terrains.owner_id
	Title         string     `db:"title" json:"title"`                   // terrains.title
	Description   *string    `db:"description" json:"description"`       // terrains.description (nullable)
	Location      string     `db:"location" json:"location"`             // terrains.location
	AreaSize      float64    `db:"area_size" json:"area_size"`           // terrains.area_size
	PricePerDay   float64    `db:"price_per_day" json:"price_per_day"`   // terrains.price_per_day
	AvailableFrom *time.Time `db:"available_from" json:"available_from"` // terrains.available_from (nullable)
	AvailableTo   *time.Time `db:"available_to" json:"available_to"`     // terrains.available_to (nullable)
	IsAvailable   bool       `db:"is_available" json:"is_available"`     // terrains.is_available
	MainImage     *string    `db:"main_image" json:"main_image"`         // terrains.main_image (nullable)
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`         // terrains.created_at
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`         // terrains.updated_at
}

// TerrainImage is an additional picture attached to a terrain.
type TerrainImage struct {
	ID         uint64    `db:"id" json:"id"`                 // terrain_images.id
	TerrainID  uint64    `db:"terrain_id" json:"terrain_id"` // terrain_images.terrain_id
	ImagePath  string    `db:"image_path" json:"image_path"` // terrain_images.image_path
	UploadedAt time.Time `db:"uploaded_at" json:"uploaded_at"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// Favorite is a user's bookmark of a terrain. The (UserID, TerrainID)
// pair is unique.
type Favorite struct {
	ID        uint64    `db:"id" json:"id"`
	UserID    uint64    `db:"user_id" json:"user_id"`
	TerrainID uint64    `db:"terrain_id" json:"terrain_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
