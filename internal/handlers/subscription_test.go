package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillswap-app/skillswap-backend/internal/models"
	"github.com/skillswap-app/skillswap-backend/internal/services"
)

func stubSubscriptionSeams(t *testing.T,
	subscribe func(context.Context, uuid.UUID, *models.SubscriptionPlan) (*models.Subscription, error),
	saveCard func(context.Context, uuid.UUID, string, string, string) (*models.PaymentMethod, error),
) {
	t.Helper()
	origSubscribe, origSave := subscribeToPlan, savePaymentMethod
	subscribeToPlan, savePaymentMethod = subscribe, saveCard
	t.Cleanup(func() {
		subscribeToPlan, savePaymentMethod = origSubscribe, origSave
	})
}

func TestActivateSubscriptionActivatesBeforeSavingCard(t *testing.T) {
	userID := uuid.New()
	plan := services.GetPlanByID("monthly-basic")
	require.NotNil(t, plan)

	var calls []string
	stubSubscriptionSeams(t,
		func(ctx context.Context, id uuid.UUID, p *models.SubscriptionPlan) (*models.Subscription, error) {
			calls = append(calls, "subscribe")
			return &models.Subscription{PlanID: p.ID}, nil
		},
		func(ctx context.Context, id uuid.UUID, card, name, expiry string) (*models.PaymentMethod, error) {
			calls = append(calls, "save_card")
			return &models.PaymentMethod{CardLast4: "1111"}, nil
		})

	sub, method, err := activateSubscription(context.Background(), userID, plan, SubscribeRequest{
		CardNumber: "4111111111111111",
	})
	require.NoError(t, err)
	require.NotNil(t, sub)
	require.NotNil(t, method)
	assert.Equal(t, []string{"subscribe", "save_card"}, calls)
}

func TestActivateSubscriptionFailureSkipsCardSave(t *testing.T) {
	plan := services.GetPlanByID("monthly-premium")
	require.NotNil(t, plan)

	cardSaved := false
	stubSubscriptionSeams(t,
		func(ctx context.Context, id uuid.UUID, p *models.SubscriptionPlan) (*models.Subscription, error) {
			return nil, errors.New("db down")
		},
		func(ctx context.Context, id uuid.UUID, card, name, expiry string) (*models.PaymentMethod, error) {
			cardSaved = true
			return nil, nil
		})

	sub, method, err := activateSubscription(context.Background(), uuid.New(), plan, SubscribeRequest{})
	require.Error(t, err)
	assert.Nil(t, sub)
	assert.Nil(t, method)
	assert.False(t, cardSaved, "no card row may exist without a subscription")
}

func TestActivateSubscriptionKeepsPlanWhenCardSaveFails(t *testing.T) {
	plan := services.GetPlanByID("yearly-basic")
	require.NotNil(t, plan)

	stubSubscriptionSeams(t,
		func(ctx context.Context, id uuid.UUID, p *models.SubscriptionPlan) (*models.Subscription, error) {
			return &models.Subscription{PlanID: p.ID}, nil
		},
		func(ctx context.Context, id uuid.UUID, card, name, expiry string) (*models.PaymentMethod, error) {
			return nil, errors.New("db down")
		})

	sub, method, err := activateSubscription(context.Background(), uuid.New(), plan, SubscribeRequest{})
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, "yearly-basic", sub.PlanID)
	assert.Nil(t, method)
}
