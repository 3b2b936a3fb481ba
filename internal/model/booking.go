package model

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// BookingStatus is the lifecycle state of a booking. Only the values
// declared below exist; anything else is rejected on parse, scan and
// write.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingApproved  BookingStatus = "approved"
	BookingRejected  BookingStatus = "rejected"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// BookingStatuses lists every booking status in declaration order.
var BookingStatuses = []BookingStatus{
	BookingPending, BookingApproved, BookingRejected, BookingCancelled, BookingCompleted,
}

// ParseBookingStatus converts s into a BookingStatus.
func ParseBookingStatus(s string) (BookingStatus, error) {
	st := BookingStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: booking status %q", ErrUnknownEnum, s)
	}
	return st, nil
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingApproved, BookingRejected, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

// Payable reports whether a booking in this status gets settled by a
// payment.
func (s BookingStatus) Payable() bool {
	switch s {
	case BookingApproved, BookingCompleted:
		return true
	case BookingPending, BookingRejected, BookingCancelled:
		return false
	}
	return false
}

func (s BookingStatus) String() string { return string(s) }

// Value implements driver.Valuer.
func (s BookingStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: booking status %q", ErrUnknownEnum, string(s))
	}
	return string(s), nil
}

// Scan implements sql.Scanner.
func (s *BookingStatus) Scan(src any) error {
	v, err := scanEnum(src)
	if err != nil {
		return err
	}
	st, err := ParseBookingStatus(v)
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// Booking records a renter's reservation of a terrain over a date
// range. EndDate is never before StartDate.
//
// Fields:
//  ID         – primary key identifier.
//  TerrainID  – terrain being rented.
//  RenterID   – user renting the terrain.
//  StartDate  – first day of the rental.
//  EndDate    – last day of the rental.
//  TotalPrice – price agreed for the whole range.
//  Status     – lifecycle state, see BookingStatus.
type Booking struct {
	ID         uint64        `db:"id" json:"id"`                   // bookings.id
	TerrainID  uint64        `db:"terrain_id" json:"terrain_id"`   // bookings.terrain_id
	RenterID   uint64        `db:"renter_id" json:"renter_id"`     // bookings.renter_id
	StartDate  time.Time     `db:"start_date" json:"start_date"`   // bookings.start_date
	EndDate    time.Time     `db:"end_date" json:"end_date"`       // bookings.end_date
	TotalPrice float64       `db:"total_price" json:"total_price"` // bookings.total_price
	Status     BookingStatus `db:"status" json:"status"`           // bookings.status
	CreatedAt  time.Time     `db:"created_at" json:"created_at"`   // bookings.created_at
	UpdatedAt  time.Time     `db:"updated_at" json:"updated_at"`   // bookings.updated_at
}
