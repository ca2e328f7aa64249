package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/skillswap-app/skillswap-backend/internal/services"
)

type AddManualMatchRequest struct {
	UserID string `json:"user_id"`
}

// GetSkillMatches returns automatic matches: every user who can teach
// something the caller wants to learn and wants to learn something the
// caller can teach, scored and sorted best-first.
func GetSkillMatches(w http.ResponseWriter, r *http.Request) {
	user := currentUser(w, r)
	if user == nil {
		return
	}

	matches, err := services.FindSkillMatches(r.Context(), *user)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"matches": matches,
	})
}

// AddManualMatch saves a match the user picked while browsing profiles
func AddManualMatch(w http.ResponseWriter, r *http.Request) {
	user := currentUser(w, r)
	if user == nil {
		return
	}

	var req AddManualMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	matchedID, err := uuid.Parse(req.UserID)
	if err != nil {
		http.Error(w, "Invalid user id", http.StatusBadRequest)
		return
	}
	if matchedID == user.ID {
		http.Error(w, "You cannot match with yourself", http.StatusBadRequest)
		return
	}

	target, err := services.GetUserByID(r.Context(), matchedID)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	if target == nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	inserted, err := services.AddManualMatch(r.Context(), user.ID, matchedID)
	if err != nil {
		http.Error(w, "Failed to save match", http.StatusInternalServerError)
		return
	}

	message := "Match saved"
	if !inserted {
		message = "Match already saved"
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": message,
	})
}

// GetManualMatches lists the profiles the user has manually matched with
func GetManualMatches(w http.ResponseWriter, r *http.Request) {
	user := currentUser(w, r)
	if user == nil {
		return
	}

	ids, err := services.ListManualMatches(r.Context(), user.ID)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	matches := make([]map[string]interface{}, 0, len(ids))
	for _, id := range ids {
		matched, err := services.GetUserByID(r.Context(), id)
		if err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}
		if matched == nil {
			continue
		}
		matches = append(matches, userMap(matched))
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"matches": matches,
	})
}
