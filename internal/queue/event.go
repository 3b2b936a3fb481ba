// Package queue publishes domain events to RabbitMQ and consumes them.
package queue

import "time"

// TerrainCreatedQueue is the durable queue terrain.created events go to.
const TerrainCreatedQueue = "terrain.created"

// TerrainCreatedEvent is published when an owner lists a new terrain. It
// carries enough for downstream consumers to notify or index without
// querying the primary database.
type TerrainCreatedEvent struct {
	TerrainID   uint64    `json:"terrain_id"`
	OwnerID     uint64    `json:"owner_id"`
	Title       string    `json:"title"`
	Location    string    `json:"location"`
	PricePerDay float64   `json:"price_per_day"`
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
}
