package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/skillswap-app/skillswap-backend/internal/models"
	"github.com/skillswap-app/skillswap-backend/internal/services"
)

// extractBearerToken pulls the session token from the Authorization header.
func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// currentUser resolves the request's session to a user. Writes a 401 and
// returns nil when the session is missing or invalid.
func currentUser(w http.ResponseWriter, r *http.Request) *models.User {
	token := extractBearerToken(r)
	userID, valid, err := services.ValidateSession(token)
	if err != nil || !valid {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return nil
	}

	user, err := services.GetUserByID(r.Context(), userID)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return nil
	}
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return nil
	}
	return user
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// userMap is the public shape of a user returned by auth and profile
// endpoints. The password hash never leaves the handler layer.
func userMap(u *models.User) map[string]interface{} {
	m := map[string]interface{}{
		"id":              u.ID.String(),
		"name":            u.Name,
		"email":           u.Email,
		"created_at":      u.CreatedAt,
		"teach_skills":    u.TeachSkills,
		"learn_skills":    u.LearnSkills,
		"profile_picture": u.ProfilePicture,
		"bio":             u.Bio,
	}
	if u.Subscription != nil {
		m["subscription"] = map[string]interface{}{
			"plan_id": u.Subscription.PlanID,
			"status":  u.Subscription.Status,
		}
	}
	return m
}
