package models

import (
	"time"

	"github.com/google/uuid"
)

type PlanInterval string

const (
	IntervalMonth PlanInterval = "month"
	IntervalYear  PlanInterval = "year"
)

// SubscriptionPlan is a static catalog entry; plans are compiled in, not stored.
type SubscriptionPlan struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Price       float64      `json:"price"`
	Interval    PlanInterval `json:"interval"`
	Features    []string     `json:"features"`
}

type SubscriptionState string

const (
	SubscriptionActive   SubscriptionState = "active"
	SubscriptionCanceled SubscriptionState = "canceled"
	SubscriptionExpired  SubscriptionState = "expired"
	SubscriptionTrial    SubscriptionState = "trial"
)

// Subscription is one billing record. At most one active row exists per user:
// subscribing demotes any prior active subscription to canceled first.
type Subscription struct {
	ID                 uuid.UUID         `json:"id"`
	CreatedAt          time.Time         `json:"created_at"`
	UserID             uuid.UUID         `json:"user_id"`
	PlanID             string            `json:"plan_id"`
	Status             SubscriptionState `json:"status"`
	CurrentPeriodStart time.Time         `json:"current_period_start"`
	CurrentPeriodEnd   time.Time         `json:"current_period_end"`
	CancelAtPeriodEnd  bool              `json:"cancel_at_period_end"`
}

type CardType string

const (
	CardVisa       CardType = "visa"
	CardMastercard CardType = "mastercard"
	CardAmex       CardType = "amex"
	CardDiscover   CardType = "discover"
	CardOther      CardType = "other"
)

// PaymentMethod stores only the last four digits and the derived brand.
// The full card number is validated in memory and discarded. At most one
// default method per user.
type PaymentMethod struct {
	ID             uuid.UUID `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	UserID         uuid.UUID `json:"user_id"`
	CardLast4      string    `json:"card_last4"`
	CardholderName string    `json:"cardholder_name"`
	ExpiryDate     string    `json:"expiry_date"` // MM/YY
	CardType       CardType  `json:"card_type"`
	IsDefault      bool      `json:"is_default"`
}
