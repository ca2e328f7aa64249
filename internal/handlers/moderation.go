package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/skillswap-app/skillswap-backend/internal/models"
	"github.com/skillswap-app/skillswap-backend/internal/services"
)

type ModerateReportRequest struct {
	ReportID       string `json:"report_id"`
	Action         string `json:"action"` // approve or reject
	ModeratorNotes string `json:"moderator_notes,omitempty"`
}

// requireModerator resolves the session and checks the moderator allow-list.
func requireModerator(w http.ResponseWriter, r *http.Request) *models.User {
	user := currentUser(w, r)
	if user == nil {
		return nil
	}
	if !services.IsModerator(user.ID.String()) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return nil
	}
	return user
}

// GetReports lists message reports, optionally filtered by ?status=
func GetReports(w http.ResponseWriter, r *http.Request) {
	if requireModerator(w, r) == nil {
		return
	}

	status := models.ReportStatus(r.URL.Query().Get("status"))
	reports, err := services.Chat.ListReports(r.Context(), status)
	if err != nil {
		http.Error(w, "Failed to load reports", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"reports": reports,
	})
}

// ModerateReport applies a moderator decision to a pending report.
// Approving hides the reported message; rejecting leaves it visible.
func ModerateReport(w http.ResponseWriter, r *http.Request) {
	if requireModerator(w, r) == nil {
		return
	}

	var req ModerateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ReportID == "" {
		http.Error(w, "report_id is required", http.StatusBadRequest)
		return
	}
	if req.Action != "approve" && req.Action != "reject" {
		http.Error(w, "Action must be approve or reject", http.StatusBadRequest)
		return
	}

	found, err := services.Chat.ModerateReport(r.Context(), req.ReportID, req.Action == "approve", req.ModeratorNotes)
	if err != nil {
		http.Error(w, "Failed to moderate report", http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "Report not found", http.StatusNotFound)
		return
	}

	message := "Report rejected"
	if req.Action == "approve" {
		message = "Report approved"
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": message,
	})
}
