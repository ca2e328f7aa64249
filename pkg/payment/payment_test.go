package payment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateCreditCard(t *testing.T) {
	tests := []struct {
		name   string
		number string
		want   bool
	}{
		{"valid visa", "4111111111111111", true},
		{"valid visa with spaces", "4111 1111 1111 1111", true},
		{"valid visa with dashes", "4111-1111-1111-1111", true},
		{"valid mastercard", "5500005555555559", true},
		{"valid amex", "378282246310005", true},
		{"failing luhn checksum", "4111111111111112", false},
		{"too short", "411111111111", false},
		{"too long", "41111111111111111111", false},
		{"empty", "", false},
		{"letters only", "not a card", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateCreditCard(tt.number))
		})
	}
}

func TestValidateExpiryDateAt(t *testing.T) {
	now := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		expiry string
		want   bool
	}{
		{"future year", "01/27", true},
		{"current month", "06/26", true},
		{"previous month", "05/26", false},
		{"past year", "12/25", false},
		{"month zero", "00/27", false},
		{"month thirteen", "13/27", false},
		{"missing slash", "0627", false},
		{"four digit year", "06/2027", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateExpiryDateAt(tt.expiry, now))
		})
	}
}

func TestValidateCVV(t *testing.T) {
	assert.True(t, ValidateCVV("123"))
	assert.True(t, ValidateCVV("1234"))
	assert.False(t, ValidateCVV("12"))
	assert.False(t, ValidateCVV("12345"))
	assert.False(t, ValidateCVV("12a"))
	assert.False(t, ValidateCVV(""))
}

func TestGetCardType(t *testing.T) {
	tests := []struct {
		number string
		want   CardType
	}{
		{"4111111111111111", CardVisa},
		{"5111111111111111", CardMastercard},
		{"2221001111111111", CardMastercard},
		{"2720991111111111", CardMastercard},
		{"371111111111111", CardAmex},
		{"341111111111111", CardAmex},
		{"6011111111111111", CardDiscover},
		{"6511111111111111", CardDiscover},
		{"6441111111111111", CardDiscover},
		{"9999999999999999", CardOther},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, GetCardType(tt.number), "card %s", tt.number)
	}
}

func TestFormatCardNumber(t *testing.T) {
	assert.Equal(t, "4111 1111 1111 1111", FormatCardNumber("4111111111111111"))
	assert.Equal(t, "3782 822463 10005", FormatCardNumber("378282246310005"))
	assert.Equal(t, "4111 1111 1111 1111", FormatCardNumber("4111-1111-1111-1111"))
}

func TestLast4(t *testing.T) {
	assert.Equal(t, "1111", Last4("4111111111111111"))
	assert.Equal(t, "1111", Last4("4111 1111 1111 1111"))
	assert.Equal(t, "123", Last4("123"))
}

func TestMaskCardNumber(t *testing.T) {
	assert.Equal(t, "**** **** **** 1111", MaskCardNumber("4111111111111111"))
	assert.Equal(t, "**** ****** *0005", MaskCardNumber("378282246310005"))
	assert.Equal(t, "123", MaskCardNumber("123"))
}
