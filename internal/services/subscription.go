package services

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/skillswap-app/skillswap-backend/internal/database"
	"github.com/skillswap-app/skillswap-backend/internal/models"
	"github.com/skillswap-app/skillswap-backend/pkg/payment"
)

// SubscriptionPlans is the static plan catalog. Yearly plans are priced at
// twelve months with a 20% discount.
var SubscriptionPlans = []models.SubscriptionPlan{
	{
		ID:          "monthly-basic",
		Name:        "Basic Monthly",
		Description: "Basic plan with monthly billing",
		Price:       9.99,
		Interval:    models.IntervalMonth,
		Features: []string{
			"Unlimited skill matches",
			"Direct messaging",
			"Profile customization",
		},
	},
	{
		ID:          "yearly-basic",
		Name:        "Basic Yearly",
		Description: "Basic plan with yearly billing (save 20%)",
		Price:       95.88,
		Interval:    models.IntervalYear,
		Features: []string{
			"Unlimited skill matches",
			"Direct messaging",
			"Profile customization",
		},
	},
	{
		ID:          "monthly-premium",
		Name:        "Premium Monthly",
		Description: "Premium plan with monthly billing",
		Price:       19.99,
		Interval:    models.IntervalMonth,
		Features: []string{
			"All Basic features",
			"Priority matching",
			"Skill verification badge",
			"Advanced search filters",
		},
	},
	{
		ID:          "yearly-premium",
		Name:        "Premium Yearly",
		Description: "Premium plan with yearly billing (save 20%)",
		Price:       191.88,
		Interval:    models.IntervalYear,
		Features: []string{
			"All Basic features",
			"Priority matching",
			"Skill verification badge",
			"Advanced search filters",
		},
	},
}

// GetPlanByID returns the catalog entry for the id, nil when unknown.
func GetPlanByID(planID string) *models.SubscriptionPlan {
	for i := range SubscriptionPlans {
		if SubscriptionPlans[i].ID == planID {
			return &SubscriptionPlans[i]
		}
	}
	return nil
}

// PeriodEnd computes when a billing period starting at from ends for the
// plan's interval.
func PeriodEnd(plan *models.SubscriptionPlan, from time.Time) time.Time {
	if plan.Interval == models.IntervalYear {
		return from.AddDate(1, 0, 0)
	}
	return from.AddDate(0, 1, 0)
}

const subscriptionColumns = `id, created_at, user_id, plan_id, status,
	current_period_start, current_period_end, cancel_at_period_end`

func scanSubscription(row interface{ Scan(...interface{}) error }) (*models.Subscription, error) {
	var s models.Subscription
	err := row.Scan(&s.ID, &s.CreatedAt, &s.UserID, &s.PlanID, &s.Status,
		&s.CurrentPeriodStart, &s.CurrentPeriodEnd, &s.CancelAtPeriodEnd)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetUserSubscription returns the user's active subscription, nil when the
// user is on the free tier.
func GetUserSubscription(ctx context.Context, userID uuid.UUID) (*models.Subscription, error) {
	row := database.PostgresDB.QueryRowContext(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions
		 WHERE user_id = $1 AND status = $2
		 ORDER BY created_at DESC LIMIT 1`,
		userID, models.SubscriptionActive)
	sub, err := scanSubscription(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return sub, nil
}

// SubscribeToPlan starts a new subscription for the user. Any prior active
// subscription is demoted to canceled in the same transaction, so at most one
// active row exists per user. The users table mirror is updated last.
func SubscribeToPlan(ctx context.Context, userID uuid.UUID, plan *models.SubscriptionPlan) (*models.Subscription, error) {
	tx, err := database.PostgresDB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`UPDATE subscriptions SET status = $1 WHERE user_id = $2 AND status = $3`,
		models.SubscriptionCanceled, userID, models.SubscriptionActive)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	end := PeriodEnd(plan, now)

	row := tx.QueryRowContext(ctx,
		`INSERT INTO subscriptions (user_id, plan_id, status, current_period_start, current_period_end)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+subscriptionColumns,
		userID, plan.ID, models.SubscriptionActive, now, end)
	sub, err := scanSubscription(row)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE users SET subscription_plan_id = $1, subscription_status = $2, updated_at = NOW() WHERE id = $3`,
		plan.ID, models.SubscriptionActive, userID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return sub, nil
}

// CancelSubscription schedules the active subscription to end at the close of
// the current period. The subscription stays active until the sweeper expires
// it. Returns false when the user has no active subscription.
func CancelSubscription(ctx context.Context, userID uuid.UUID) (bool, error) {
	res, err := database.PostgresDB.ExecContext(ctx,
		`UPDATE subscriptions SET cancel_at_period_end = TRUE
		 WHERE user_id = $1 AND status = $2`,
		userID, models.SubscriptionActive)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CancelSubscriptionImmediately ends the active subscription right away and
// drops the user back to the free tier. Returns false when there was nothing
// to cancel.
func CancelSubscriptionImmediately(ctx context.Context, userID uuid.UUID) (bool, error) {
	tx, err := database.PostgresDB.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE subscriptions SET status = $1 WHERE user_id = $2 AND status = $3`,
		models.SubscriptionCanceled, userID, models.SubscriptionActive)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE users SET subscription_plan_id = '', subscription_status = 'free', updated_at = NOW() WHERE id = $1`,
		userID)
	if err != nil {
		return false, err
	}

	return true, tx.Commit()
}

// SavePaymentMethod stores the card's last four digits and derived brand as
// the user's new default method. Earlier defaults are cleared in the same
// transaction. The full card number never reaches the database.
func SavePaymentMethod(ctx context.Context, userID uuid.UUID, cardNumber, cardholderName, expiryDate string) (*models.PaymentMethod, error) {
	tx, err := database.PostgresDB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`UPDATE payment_methods SET is_default = FALSE WHERE user_id = $1 AND is_default = TRUE`,
		userID)
	if err != nil {
		return nil, err
	}

	last4 := payment.Last4(cardNumber)
	cardType := payment.GetCardType(cardNumber)

	var pm models.PaymentMethod
	row := tx.QueryRowContext(ctx,
		`INSERT INTO payment_methods (user_id, card_last4, cardholder_name, expiry_date, card_type, is_default)
		 VALUES ($1, $2, $3, $4, $5, TRUE)
		 RETURNING id, created_at, user_id, card_last4, cardholder_name, expiry_date, card_type, is_default`,
		userID, last4, cardholderName, expiryDate, cardType)
	err = row.Scan(&pm.ID, &pm.CreatedAt, &pm.UserID, &pm.CardLast4,
		&pm.CardholderName, &pm.ExpiryDate, &pm.CardType, &pm.IsDefault)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &pm, nil
}

// GetUserPaymentMethods lists the user's saved cards, default first.
func GetUserPaymentMethods(ctx context.Context, userID uuid.UUID) ([]models.PaymentMethod, error) {
	rows, err := database.PostgresDB.QueryContext(ctx,
		`SELECT id, created_at, user_id, card_last4, cardholder_name, expiry_date, card_type, is_default
		 FROM payment_methods WHERE user_id = $1
		 ORDER BY is_default DESC, created_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	methods := []models.PaymentMethod{}
	for rows.Next() {
		var pm models.PaymentMethod
		err := rows.Scan(&pm.ID, &pm.CreatedAt, &pm.UserID, &pm.CardLast4,
			&pm.CardholderName, &pm.ExpiryDate, &pm.CardType, &pm.IsDefault)
		if err != nil {
			return nil, err
		}
		methods = append(methods, pm)
	}
	return methods, rows.Err()
}

// ExpireLapsedSubscriptions closes every active subscription whose period has
// ended and drops those users to the free tier. Subscriptions the user chose
// to cancel end as canceled, the rest as expired. Returns the number of
// subscriptions closed.
func ExpireLapsedSubscriptions(ctx context.Context, now time.Time) (int64, error) {
	tx, err := database.PostgresDB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx,
		`UPDATE subscriptions
		 SET status = CASE WHEN cancel_at_period_end THEN $1::VARCHAR ELSE $2::VARCHAR END
		 WHERE status = $3 AND current_period_end <= $4
		 RETURNING user_id`,
		models.SubscriptionCanceled, models.SubscriptionExpired, models.SubscriptionActive, now)
	if err != nil {
		return 0, err
	}

	var userIDs []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, err
		}
		userIDs = append(userIDs, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}

	for _, id := range userIDs {
		_, err = tx.ExecContext(ctx,
			`UPDATE users SET subscription_plan_id = '', subscription_status = 'free', updated_at = NOW()
			 WHERE id = $1 AND NOT EXISTS (
				SELECT 1 FROM subscriptions WHERE user_id = $1 AND status = $2
			 )`,
			id, models.SubscriptionActive)
		if err != nil {
			return 0, err
		}
	}

	return int64(len(userIDs)), tx.Commit()
}

// StartSubscriptionSweeper runs the expiry sweep hourly. Returns the cron
// scheduler so main can stop it on shutdown.
func StartSubscriptionSweeper() *cron.Cron {
	c := cron.New()
	c.AddFunc("@hourly", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		n, err := ExpireLapsedSubscriptions(ctx, time.Now().UTC())
		if err != nil {
			log.Printf("⚠️ Subscription sweep failed: %v", err)
			return
		}
		if n > 0 {
			log.Printf("✅ Expired %d lapsed subscription(s)", n)
		}
	})
	c.Start()
	log.Println("✅ Subscription expiry sweeper started (hourly)")
	return c
}
