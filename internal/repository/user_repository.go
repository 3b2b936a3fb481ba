package repository

import (
	"context"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/terrain-rental/internal/model"
)

const userColumns = "id, name, email, email_verified_at, password, remember_token, created_at, updated_at"

// UserRepo is the MySQL UserRepository.
type UserRepo struct{ db *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{db: db} }

// Create inserts u and fills in its ID and timestamps. The email is
// normalized to lower case; a taken email yields ErrDuplicate.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	u.Email = normalizeEmail(u.Email)
	stampCreated(&u.CreatedAt, &u.UpdatedAt)
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO users (name, email, email_verified_at, password, remember_token, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		u.Name, u.Email, u.EmailVerifiedAt, u.PasswordHash, u.RememberToken, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return classify(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = uint64(id)
	return nil
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	var u model.User
	if err := r.db.GetContext(ctx, &u, "SELECT "+userColumns+" FROM users WHERE id = ? LIMIT 1", id); err != nil {
		return nil, classify(err)
	}
	return &u, nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	if err := r.db.GetContext(ctx, &u, "SELECT "+userColumns+" FROM users WHERE email = ? LIMIT 1", normalizeEmail(email)); err != nil {
		return nil, classify(err)
	}
	return &u, nil
}

func (r *UserRepo) List(ctx context.Context) ([]*model.User, error) {
	out := []*model.User{}
	if err := r.db.SelectContext(ctx, &out, "SELECT "+userColumns+" FROM users ORDER BY id"); err != nil {
		return nil, err
	}
	return out, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// stampCreated sets both timestamps to now unless the caller already
// provided a creation time.
func stampCreated(created, updated *time.Time) {
	if created.IsZero() {
		*created = time.Now().UTC().Truncate(time.Second)
	}
	if updated.IsZero() {
		*updated = *created
	}
}
