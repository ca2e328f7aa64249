package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/skillswap-app/skillswap-backend/internal/models"
	"github.com/skillswap-app/skillswap-backend/internal/services"
)

var paymentGateway = services.NewPaymentGateway()

type SubscribeRequest struct {
	PlanID         string `json:"plan_id"`
	CardNumber     string `json:"card_number"`
	CardholderName string `json:"cardholder_name"`
	ExpiryDate     string `json:"expiry_date"`
	CVV            string `json:"cvv"`
}

// GetPlans returns the subscription plan catalog. No session required.
func GetPlans(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"plans":   services.SubscriptionPlans,
	})
}

// GetSubscription returns the user's active subscription, if any
func GetSubscription(w http.ResponseWriter, r *http.Request) {
	user := currentUser(w, r)
	if user == nil {
		return
	}

	sub, err := services.GetUserSubscription(r.Context(), user.ID)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"subscription": sub,
	})
}

// Subscribe charges the card through the mock gateway, activates the plan
// and saves the card's last four digits as the new default payment method
func Subscribe(w http.ResponseWriter, r *http.Request) {
	user := currentUser(w, r)
	if user == nil {
		return
	}

	var req SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	plan := services.GetPlanByID(req.PlanID)
	if plan == nil {
		http.Error(w, "Unknown plan", http.StatusBadRequest)
		return
	}

	result, err := paymentGateway.ProcessPayment(r.Context(), services.PaymentDetails{
		CardNumber:     req.CardNumber,
		CardholderName: req.CardholderName,
		ExpiryDate:     req.ExpiryDate,
		CVV:            req.CVV,
		Amount:         plan.Price,
	})
	if err != nil {
		http.Error(w, "Payment processing failed", http.StatusInternalServerError)
		return
	}
	if !result.Success {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"success": false,
			"message": result.Message,
		})
		return
	}

	sub, method, err := activateSubscription(r.Context(), user.ID, plan, req)
	if err != nil {
		http.Error(w, "Failed to activate subscription", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success":        true,
		"message":        result.Message,
		"transaction_id": result.TransactionID,
		"subscription":   sub,
		"payment_method": method,
	})
}

// Seams for activateSubscription tests.
var (
	subscribeToPlan   = services.SubscribeToPlan
	savePaymentMethod = services.SavePaymentMethod
)

// activateSubscription activates the plan first and records the card after.
// The card was already charged by the gateway, so a failure to store its last
// four digits must not leave the user without the subscription they paid for.
func activateSubscription(ctx context.Context, userID uuid.UUID, plan *models.SubscriptionPlan, req SubscribeRequest) (*models.Subscription, *models.PaymentMethod, error) {
	sub, err := subscribeToPlan(ctx, userID, plan)
	if err != nil {
		return nil, nil, err
	}

	method, err := savePaymentMethod(ctx, userID, req.CardNumber, req.CardholderName, req.ExpiryDate)
	if err != nil {
		log.Printf("⚠️ Failed to save payment method for user %s: %v", userID, err)
		return sub, nil, nil
	}
	return sub, method, nil
}

// CancelSubscription schedules the active subscription to end at the close
// of the current billing period
func CancelSubscription(w http.ResponseWriter, r *http.Request) {
	user := currentUser(w, r)
	if user == nil {
		return
	}

	found, err := services.CancelSubscription(r.Context(), user.ID)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "No active subscription", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Subscription will end at the close of the current period",
	})
}

// CancelSubscriptionImmediately ends the subscription right away
func CancelSubscriptionImmediately(w http.ResponseWriter, r *http.Request) {
	user := currentUser(w, r)
	if user == nil {
		return
	}

	found, err := services.CancelSubscriptionImmediately(r.Context(), user.ID)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "No active subscription", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Subscription canceled",
	})
}

// GetPaymentMethods lists the user's saved cards (last four digits only)
func GetPaymentMethods(w http.ResponseWriter, r *http.Request) {
	user := currentUser(w, r)
	if user == nil {
		return
	}

	methods, err := services.GetUserPaymentMethods(r.Context(), user.ID)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"payment_methods": methods,
	})
}
