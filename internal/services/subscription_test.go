package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillswap-app/skillswap-backend/internal/models"
)

func TestSubscriptionPlanCatalog(t *testing.T) {
	require.Len(t, SubscriptionPlans, 4)

	prices := map[string]float64{
		"monthly-basic":   9.99,
		"yearly-basic":    95.88,
		"monthly-premium": 19.99,
		"yearly-premium":  191.88,
	}
	for _, plan := range SubscriptionPlans {
		want, ok := prices[plan.ID]
		require.True(t, ok, "unexpected plan %s", plan.ID)
		assert.Equal(t, want, plan.Price)
		assert.NotEmpty(t, plan.Name)
		assert.NotEmpty(t, plan.Features)
	}

	// Yearly price is twelve months with a 20% discount
	monthlyBasic := GetPlanByID("monthly-basic")
	yearlyBasic := GetPlanByID("yearly-basic")
	assert.InDelta(t, monthlyBasic.Price*12*0.8, yearlyBasic.Price, 0.01)

	monthlyPremium := GetPlanByID("monthly-premium")
	yearlyPremium := GetPlanByID("yearly-premium")
	assert.InDelta(t, monthlyPremium.Price*12*0.8, yearlyPremium.Price, 0.01)
}

func TestGetPlanByID(t *testing.T) {
	plan := GetPlanByID("monthly-premium")
	require.NotNil(t, plan)
	assert.Equal(t, "Premium Monthly", plan.Name)
	assert.Equal(t, models.IntervalMonth, plan.Interval)

	assert.Nil(t, GetPlanByID("weekly-deluxe"))
	assert.Nil(t, GetPlanByID(""))
}

func TestPeriodEnd(t *testing.T) {
	start := time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)

	monthly := GetPlanByID("monthly-basic")
	assert.Equal(t, time.Date(2026, time.February, 15, 12, 0, 0, 0, time.UTC),
		PeriodEnd(monthly, start))

	yearly := GetPlanByID("yearly-basic")
	assert.Equal(t, time.Date(2027, time.January, 15, 12, 0, 0, 0, time.UTC),
		PeriodEnd(yearly, start))
}
