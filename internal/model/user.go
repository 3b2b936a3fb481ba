package model

import "time"

// User represents an application user record as stored in the
// `users` table. A user can own terrains, rent them through
// bookings, write reviews and keep a list of favorite terrains.
//
// Fields:
//  ID              – primary key identifier of the user.
//  Name            – display name.
//  Email           – unique email address.
//  EmailVerifiedAt – when the address was confirmed (nil if never).
//  PasswordHash    – bcrypt hashed password.
//  RememberToken   – "remember me" session token (nullable).
//  CreatedAt       – timestamp of creation.
//  UpdatedAt       – timestamp of last update.
type User struct {
	ID              uint64     `db:"id" json:"id"`
	Name            string     `db:"name" json:"name"`
	Email           string     `db:"email" json:"email"`
	EmailVerifiedAt *time.Time `db:"email_verified_at" json:"email_verified_at"`
	PasswordHash    string     `db:"password" json:"-"`
	RememberToken   *string    `db:"remember_token" json:"-"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}
