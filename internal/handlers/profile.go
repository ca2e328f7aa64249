package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/skillswap-app/skillswap-backend/internal/models"
	"github.com/skillswap-app/skillswap-backend/internal/services"
)

type UpdateProfileRequest struct {
	Name           string   `json:"name"`
	Bio            string   `json:"bio"`
	ProfilePicture string   `json:"profile_picture"`
	TeachSkills    []string `json:"teach_skills"`
	LearnSkills    []string `json:"learn_skills"`
}

type RateUserRequest struct {
	UserID  string `json:"user_id"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}

// BrowseProfiles lists other users' profiles, optionally filtered by a
// case-insensitive search over names and skills (?q=).
func BrowseProfiles(w http.ResponseWriter, r *http.Request) {
	user := currentUser(w, r)
	if user == nil {
		return
	}

	profiles, err := services.BrowseProfiles(r.Context(), user.ID, r.URL.Query().Get("q"))
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	results := make([]map[string]interface{}, 0, len(profiles))
	for i := range profiles {
		results = append(results, userMap(&profiles[i]))
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"profiles": results,
	})
}

// GetProfile returns one user's public profile with their ratings (?id=).
func GetProfile(w http.ResponseWriter, r *http.Request) {
	if currentUser(w, r) == nil {
		return
	}

	id, err := uuid.Parse(r.URL.Query().Get("id"))
	if err != nil {
		http.Error(w, "Invalid user id", http.StatusBadRequest)
		return
	}

	user, err := services.GetUserByID(r.Context(), id)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	if user == nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	ratings, err := services.ListRatings(r.Context(), id)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"profile":        userMap(user),
		"ratings":        ratings,
		"average_rating": services.AverageRating(ratings),
	})
}

// UpdateProfile replaces the authenticated user's editable profile fields
func UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := currentUser(w, r)
	if user == nil {
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}
	if req.TeachSkills == nil {
		req.TeachSkills = []string{}
	}
	if req.LearnSkills == nil {
		req.LearnSkills = []string{}
	}

	err := services.UpdateProfile(r.Context(), user.ID, req.Name, req.Bio, req.ProfilePicture, req.TeachSkills, req.LearnSkills)
	if err != nil {
		http.Error(w, "Failed to update profile", http.StatusInternalServerError)
		return
	}

	updated, err := services.GetUserByID(r.Context(), user.ID)
	if err != nil || updated == nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Profile updated",
		"profile": userMap(updated),
	})
}

// RateUser records a 1-5 star rating on another user's profile
func RateUser(w http.ResponseWriter, r *http.Request) {
	rater := currentUser(w, r)
	if rater == nil {
		return
	}

	var req RateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	targetID, err := uuid.Parse(req.UserID)
	if err != nil {
		http.Error(w, "Invalid user id", http.StatusBadRequest)
		return
	}
	if targetID == rater.ID {
		http.Error(w, "You cannot rate yourself", http.StatusBadRequest)
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		http.Error(w, "Rating must be between 1 and 5", http.StatusBadRequest)
		return
	}

	target, err := services.GetUserByID(r.Context(), targetID)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	if target == nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	rating := models.UserRating{
		UserID:    targetID,
		RatedByID: rater.ID,
		RaterName: rater.Name,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := services.InsertRating(r.Context(), rating); err != nil {
		http.Error(w, "Failed to save rating", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Rating saved",
	})
}
