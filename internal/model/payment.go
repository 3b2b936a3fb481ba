package model

import (
	"database/sql/driver"
	"fmt"
	"time"
)

type PaymentMethod string

const (
	PaymentCreditCard   PaymentMethod = "credit_card"
	PaymentDebitCard    PaymentMethod = "debit_card"
	PaymentPaypal       PaymentMethod = "paypal"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

var PaymentMethods = []PaymentMethod{
	PaymentCreditCard, PaymentDebitCard, PaymentPaypal, PaymentBankTransfer,
}

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(s)
	if !m.Valid() {
		return "", fmt.Errorf("%w: payment method %q", ErrUnknownEnum, s)
	}
	return m, nil
}

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCreditCard, PaymentDebitCard, PaymentPaypal, PaymentBankTransfer:
		return true
	}
	return false
}

func (m PaymentMethod) String() string { return string(m) }

func (m PaymentMethod) Value() (driver.Value, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: payment method %q", ErrUnknownEnum, string(m))
	}
	return string(m), nil
}

func (m *PaymentMethod) Scan(src any) error {
	v, err := scanEnum(src)
	if err != nil {
		return err
	}
	pm, err := ParsePaymentMethod(v)
	if err != nil {
		return err
	}
	*m = pm
	return nil
}

type PaymentStatus string

const (
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

var PaymentStatuses = []PaymentStatus{PaymentPaid, PaymentFailed, PaymentRefunded}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	st := PaymentStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: payment status %q", ErrUnknownEnum, s)
	}
	return st, nil
}

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

func (s PaymentStatus) String() string { return string(s) }

func (s PaymentStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: payment status %q", ErrUnknownEnum, string(s))
	}
	return string(s), nil
}

func (s *PaymentStatus) Scan(src any) error {
	v, err := scanEnum(src)
	if err != nil {
		return err
	}
	st, err := ParsePaymentStatus(v)
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// Payment is a monetary transaction settling a booking.
// TransactionID is unique across all payments.
type Payment struct {
	ID            uint64        `db:"id" json:"id"`                         // payments.id
	BookingID     uint64        `db:"booking_id" json:"booking_id"`         // payments.booking_id
	PaymentMethod PaymentMethod `db:"payment_method" json:"payment_method"` // payments.payment_method
	AmountPaid    float64       `db:"amount_paid" json:"amount_paid"`       // payments.amount_paid
	PaymentDate   time.Time     `db:"payment_date" json:"payment_date"`     // payments.payment_date
	Status        PaymentStatus `db:"status" json:"status"`                 // payments.status
	TransactionID string        `db:"transaction_id" json:"transaction_id"` // payments.transaction_id
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`
}
