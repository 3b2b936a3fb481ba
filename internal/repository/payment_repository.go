package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/terrain-rental/internal/model"
)

const paymentColumns = "id, booking_id, payment_method, amount_paid, payment_date, status, transaction_id, created_at, updated_at"

// PaymentRepo is the MySQL PaymentRepository.
type PaymentRepo struct{ db *sqlx.DB }

func NewPaymentRepo(db *sqlx.DB) *PaymentRepo { return &PaymentRepo{db: db} }

// Create inserts p. A reused transaction id yields ErrDuplicate and an
// unknown booking ErrForeignKey.
func (r *PaymentRepo) Create(ctx context.Context, p *model.Payment) error {
	if err := CheckPayment(p); err != nil {
		return err
	}
	stampCreated(&p.CreatedAt, &p.UpdatedAt)
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO payments (booking_id, payment_method, amount_paid, payment_date, status, transaction_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.BookingID, p.PaymentMethod, p.AmountPaid, p.PaymentDate, p.Status, p.TransactionID, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return classify(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

func (r *PaymentRepo) GetByBooking(ctx context.Context, bookingID uint64) (*model.Payment, error) {
	var p model.Payment
	err := r.db.GetContext(ctx, &p, "SELECT "+paymentColumns+" FROM payments WHERE booking_id = ? ORDER BY id LIMIT 1", bookingID)
	if err != nil {
		return nil, classify(err)
	}
	return &p, nil
}

func (r *PaymentRepo) List(ctx context.Context) ([]*model.Payment, error) {
	out := []*model.Payment{}
	if err := r.db.SelectContext(ctx, &out, "SELECT "+paymentColumns+" FROM payments ORDER BY id"); err != nil {
		return nil, err
	}
	return out, nil
}

// CheckPayment enforces the payment column invariants shared by every
// store implementation.
func CheckPayment(p *model.Payment) error {
	switch {
	case !p.PaymentMethod.Valid():
		return fmt.Errorf("%w: payment method %q", ErrInvalid, string(p.PaymentMethod))
	case !p.Status.Valid():
		return fmt.Errorf("%w: payment status %q", ErrInvalid, string(p.Status))
	case p.TransactionID == "":
		return fmt.Errorf("%w: empty transaction_id", ErrInvalid)
	}
	return nil
}
