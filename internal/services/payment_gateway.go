package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/skillswap-app/skillswap-backend/pkg/payment"
)

// PaymentDetails is the card data submitted for a mock charge.
type PaymentDetails struct {
	CardNumber     string  `json:"card_number"`
	CardholderName string  `json:"cardholder_name"`
	ExpiryDate     string  `json:"expiry_date"`
	CVV            string  `json:"cvv"`
	Amount         float64 `json:"amount"`
}

// PaymentResult is the outcome of a mock charge.
type PaymentResult struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	TransactionID string `json:"transaction_id,omitempty"`
}

// PaymentGateway simulates a card processor. No real charge ever happens;
// validation failures and the processing delay mimic one.
type PaymentGateway struct {
	// Delay before the result is returned. Tests set this to zero.
	Delay time.Duration
}

func NewPaymentGateway() *PaymentGateway {
	return &PaymentGateway{Delay: 1500 * time.Millisecond}
}

// ProcessPayment validates the card details and returns a simulated result.
// Checks run in a fixed order and the first failure wins.
func (g *PaymentGateway) ProcessPayment(ctx context.Context, details PaymentDetails) (PaymentResult, error) {
	if g.Delay > 0 {
		select {
		case <-time.After(g.Delay):
		case <-ctx.Done():
			return PaymentResult{}, ctx.Err()
		}
	}

	if !payment.ValidateCreditCard(details.CardNumber) {
		return PaymentResult{Success: false, Message: "Invalid credit card number"}, nil
	}
	if !payment.ValidateExpiryDate(details.ExpiryDate) {
		return PaymentResult{Success: false, Message: "Invalid expiry date"}, nil
	}
	if !payment.ValidateCVV(details.CVV) {
		return PaymentResult{Success: false, Message: "Invalid CVV"}, nil
	}
	if len(strings.TrimSpace(details.CardholderName)) < 3 {
		return PaymentResult{Success: false, Message: "Invalid cardholder name"}, nil
	}

	txnBytes := make([]byte, 12)
	if _, err := rand.Read(txnBytes); err != nil {
		return PaymentResult{}, err
	}

	return PaymentResult{
		Success:       true,
		Message:       "Payment processed successfully",
		TransactionID: "txn_" + hex.EncodeToString(txnBytes),
	}, nil
}
