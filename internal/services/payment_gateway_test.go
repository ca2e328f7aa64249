package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDetails() PaymentDetails {
	return PaymentDetails{
		CardNumber:     "4111111111111111",
		CardholderName: "Alex Johnson",
		ExpiryDate:     "12/99",
		CVV:            "123",
		Amount:         9.99,
	}
}

func TestProcessPaymentSuccess(t *testing.T) {
	g := &PaymentGateway{Delay: 0}

	result, err := g.ProcessPayment(context.Background(), validDetails())
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "Payment processed successfully", result.Message)
	assert.True(t, strings.HasPrefix(result.TransactionID, "txn_"))
	assert.Len(t, result.TransactionID, len("txn_")+24)
}

func TestProcessPaymentValidationOrder(t *testing.T) {
	g := &PaymentGateway{Delay: 0}

	tests := []struct {
		name    string
		mutate  func(*PaymentDetails)
		message string
	}{
		{
			"bad card number",
			func(d *PaymentDetails) { d.CardNumber = "4111111111111112" },
			"Invalid credit card number",
		},
		{
			"bad expiry",
			func(d *PaymentDetails) { d.ExpiryDate = "13/99" },
			"Invalid expiry date",
		},
		{
			"bad cvv",
			func(d *PaymentDetails) { d.CVV = "12" },
			"Invalid CVV",
		},
		{
			"blank cardholder",
			func(d *PaymentDetails) { d.CardholderName = "   " },
			"Invalid cardholder name",
		},
		{
			"cardholder too short",
			func(d *PaymentDetails) { d.CardholderName = "Al" },
			"Invalid cardholder name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details := validDetails()
			tt.mutate(&details)

			result, err := g.ProcessPayment(context.Background(), details)
			require.NoError(t, err)
			assert.False(t, result.Success)
			assert.Equal(t, tt.message, result.Message)
			assert.Empty(t, result.TransactionID)
		})
	}
}

func TestProcessPaymentCardNumberCheckedFirst(t *testing.T) {
	// Everything invalid at once: the card number failure wins.
	g := &PaymentGateway{Delay: 0}

	result, err := g.ProcessPayment(context.Background(), PaymentDetails{})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "Invalid credit card number", result.Message)
}

func TestProcessPaymentUniqueTransactionIDs(t *testing.T) {
	g := &PaymentGateway{Delay: 0}

	first, err := g.ProcessPayment(context.Background(), validDetails())
	require.NoError(t, err)
	second, err := g.ProcessPayment(context.Background(), validDetails())
	require.NoError(t, err)

	assert.NotEqual(t, first.TransactionID, second.TransactionID)
}

func TestProcessPaymentContextCanceled(t *testing.T) {
	g := NewPaymentGateway()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.ProcessPayment(ctx, validDetails())
	assert.ErrorIs(t, err, context.Canceled)
}
