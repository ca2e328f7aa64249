// Package payment holds the pure card-validation helpers used by the mock
// payment gateway: Luhn check, expiry/CVV validation, brand detection and
// display formatting.
package payment

import (
	"regexp"
	"strings"
	"time"
)

type CardType string

const (
	CardVisa       CardType = "visa"
	CardMastercard CardType = "mastercard"
	CardAmex       CardType = "amex"
	CardDiscover   CardType = "discover"
	CardOther      CardType = "other"
)

var (
	nonDigitRe = regexp.MustCompile(`\D`)
	expiryRe   = regexp.MustCompile(`^(0[1-9]|1[0-2])/([0-9]{2})$`)
	cvvRe      = regexp.MustCompile(`^[0-9]{3,4}$`)

	// Mastercard: 51-55 or 2221-2720
	mastercardRe = regexp.MustCompile(`^(5[1-5]|222[1-9]|22[3-9][0-9]|2[3-6][0-9]{2}|27[0-1][0-9]|2720)`)
	amexRe       = regexp.MustCompile(`^3[47]`)
	// Discover: 6011, 622126-622925, 644-649, 65
	discoverRe = regexp.MustCompile(`^(6011|65|64[4-9]|622(12[6-9]|1[3-9][0-9]|[2-8][0-9]{2}|9[0-1][0-9]|92[0-5]))`)

	groupOfFourRe = regexp.MustCompile(`(\d{4})`)
	amexGroupRe   = regexp.MustCompile(`^(\d{4})(\d{6})(\d{0,5})`)
)

func digitsOnly(s string) string {
	return nonDigitRe.ReplaceAllString(s, "")
}

// ValidateCreditCard strips non-digits, requires a 13-19 digit number and a
// passing Luhn checksum.
func ValidateCreditCard(cardNumber string) bool {
	digits := digitsOnly(cardNumber)
	if len(digits) < 13 || len(digits) > 19 {
		return false
	}

	// Luhn: double every second digit from the rightmost, subtract 9 if >9
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}

	return sum%10 == 0
}

// ValidateExpiryDate reports whether expiryDate (MM/YY) is this month or later.
func ValidateExpiryDate(expiryDate string) bool {
	return ValidateExpiryDateAt(expiryDate, time.Now())
}

// ValidateExpiryDateAt is ValidateExpiryDate with an explicit reference time.
func ValidateExpiryDateAt(expiryDate string, now time.Time) bool {
	m := expiryRe.FindStringSubmatch(expiryDate)
	if m == nil {
		return false
	}

	expMonth := int(m[1][0]-'0')*10 + int(m[1][1]-'0')
	expYear := 2000 + int(m[2][0]-'0')*10 + int(m[2][1]-'0')

	curYear, curMonth, _ := now.Date()
	return expYear > curYear || (expYear == curYear && expMonth >= int(curMonth))
}

// ValidateCVV accepts 3 or 4 digits.
func ValidateCVV(cvv string) bool {
	return cvvRe.MatchString(cvv)
}

// GetCardType classifies a card number by its leading digits.
func GetCardType(cardNumber string) CardType {
	digits := digitsOnly(cardNumber)

	switch {
	case strings.HasPrefix(digits, "4"):
		return CardVisa
	case mastercardRe.MatchString(digits):
		return CardMastercard
	case amexRe.MatchString(digits):
		return CardAmex
	case discoverRe.MatchString(digits):
		return CardDiscover
	default:
		return CardOther
	}
}

// FormatCardNumber inserts display spacing: 4-6-5 for amex, groups of four
// for everything else.
func FormatCardNumber(cardNumber string) string {
	digits := digitsOnly(cardNumber)

	if GetCardType(digits) == CardAmex {
		return strings.TrimSpace(amexGroupRe.ReplaceAllString(digits, "$1 $2 $3"))
	}
	return strings.TrimSpace(groupOfFourRe.ReplaceAllString(digits, "$1 "))
}

// Last4 returns the final four digits of the card number, or every digit
// when fewer than four are present.
func Last4(cardNumber string) string {
	digits := digitsOnly(cardNumber)
	if len(digits) <= 4 {
		return digits
	}
	return digits[len(digits)-4:]
}

// MaskCardNumber hides all but the last four digits, keeping the brand's
// display grouping.
func MaskCardNumber(cardNumber string) string {
	digits := digitsOnly(cardNumber)
	if len(digits) <= 4 {
		return digits
	}

	masked := strings.Repeat("*", len(digits)-4) + digits[len(digits)-4:]

	if GetCardType(digits) == CardAmex {
		return strings.TrimSpace(masked[:4] + " " + masked[4:10] + " " + masked[10:])
	}

	var b strings.Builder
	for i, r := range masked {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
