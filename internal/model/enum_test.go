package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingStatusPayable(t *testing.T) {
	payable := map[BookingStatus]bool{
		BookingPending:   false,
		BookingApproved:  true,
		BookingRejected:  false,
		BookingCancelled: false,
		BookingCompleted: true,
	}
	require.Len(t, BookingStatuses, len(payable))
	for _, st := range BookingStatuses {
		assert.Equal(t, payable[st], st.Payable(), st)
	}
	assert.False(t, BookingStatus("on_hold").Payable())
}

func TestParseEnums(t *testing.T) {
	st, err := ParseBookingStatus("approved")
	require.NoError(t, err)
	assert.Equal(t, BookingApproved, st)

	_, err = ParseBookingStatus("Approved")
	assert.ErrorIs(t, err, ErrUnknownEnum)

	m, err := ParsePaymentMethod("paypal")
	require.NoError(t, err)
	assert.Equal(t, PaymentPaypal, m)

	_, err = ParsePaymentMethod("cash")
	assert.ErrorIs(t, err, ErrUnknownEnum)

	ps, err := ParsePaymentStatus("refunded")
	require.NoError(t, err)
	assert.Equal(t, PaymentRefunded, ps)
}

func TestEnumScanValue(t *testing.T) {
	var st BookingStatus
	require.NoError(t, st.Scan([]byte("completed")))
	assert.Equal(t, BookingCompleted, st)
	assert.ErrorIs(t, st.Scan("archived"), ErrUnknownEnum)
	assert.ErrorIs(t, st.Scan(nil), ErrUnknownEnum)
	assert.ErrorIs(t, st.Scan(42), ErrUnknownEnum)

	v, err := PaymentFailed.Value()
	require.NoError(t, err)
	assert.Equal(t, "failed", v)

	_, err = PaymentMethod("cheque").Value()
	assert.ErrorIs(t, err, ErrUnknownEnum)

	var pm PaymentMethod
	require.NoError(t, pm.Scan("bank_transfer"))
	assert.Equal(t, PaymentBankTransfer, pm)
}

func TestValidRating(t *testing.T) {
	for r := MinRating; r <= MaxRating; r++ {
		assert.True(t, ValidRating(r))
	}
	assert.False(t, ValidRating(0))
	assert.False(t, ValidRating(6))
}
