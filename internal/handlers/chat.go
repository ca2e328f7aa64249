package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/skillswap-app/skillswap-backend/internal/services"
)

type StartConversationRequest struct {
	RecipientID string `json:"recipient_id"`
}

type SendMessageRequest struct {
	ConversationID string `json:"conversation_id"`
	Content        string `json:"content"`
}

type MarkReadRequest struct {
	ConversationID string `json:"conversation_id"`
}

type ReportMessageRequest struct {
	MessageID string `json:"message_id"`
	Reason    string `json:"reason"`
}

// StartConversation opens (or returns the existing) conversation with
// another user
func StartConversation(w http.ResponseWriter, r *http.Request) {
	user := currentUser(w, r)
	if user == nil {
		return
	}

	var req StartConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	recipientID, err := uuid.Parse(req.RecipientID)
	if err != nil {
		http.Error(w, "Invalid recipient id", http.StatusBadRequest)
		return
	}
	if recipientID == user.ID {
		http.Error(w, "You cannot message yourself", http.StatusBadRequest)
		return
	}

	recipient, err := services.GetUserByID(r.Context(), recipientID)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	if recipient == nil {
		http.Error(w, "Recipient not found", http.StatusNotFound)
		return
	}

	convID, err := services.Chat.StartConversation(r.Context(), user, recipient)
	if err != nil {
		http.Error(w, "Failed to start conversation", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"conversation_id": convID,
	})
}

// GetConversations lists the user's conversations
func GetConversations(w http.ResponseWriter, r *http.Request) {
	user := currentUser(w, r)
	if user == nil {
		return
	}

	convs, err := services.Chat.GetUserConversations(r.Context(), user.ID.String())
	if err != nil {
		http.Error(w, "Failed to load conversations", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"conversations": convs,
	})
}

// GetMessages returns the visible messages of one conversation
// (?conversation_id=)
func GetMessages(w http.ResponseWriter, r *http.Request) {
	user := currentUser(w, r)
	if user == nil {
		return
	}

	convID := r.URL.Query().Get("conversation_id")
	if convID == "" {
		http.Error(w, "conversation_id is required", http.StatusBadRequest)
		return
	}

	conv, err := services.Chat.GetConversation(r.Context(), convID)
	if err != nil {
		http.Error(w, "Failed to load conversation", http.StatusInternalServerError)
		return
	}
	if conv == nil {
		http.Error(w, "Conversation not found", http.StatusNotFound)
		return
	}
	if !conv.HasParticipant(user.ID.String()) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	messages, err := services.Chat.GetConversationMessages(r.Context(), convID)
	if err != nil {
		http.Error(w, "Failed to load messages", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"messages": messages,
	})
}

// SendMessage appends a message and notifies the other participants
func SendMessage(w http.ResponseWriter, r *http.Request) {
	user := currentUser(w, r)
	if user == nil {
		return
	}

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ConversationID == "" || req.Content == "" {
		http.Error(w, "conversation_id and content are required", http.StatusBadRequest)
		return
	}

	msg, err := services.Chat.SendMessage(r.Context(), req.ConversationID, user.ID.String(), user.Name, req.Content)
	if err != nil {
		if err == services.ErrNotParticipant {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		http.Error(w, "Failed to send message", http.StatusInternalServerError)
		return
	}

	// Notify other participants and drop their cached unread totals
	conv, err := services.Chat.GetConversation(r.Context(), req.ConversationID)
	if err == nil && conv != nil {
		for _, p := range conv.Participants {
			if p == user.ID.String() {
				continue
			}
			services.InvalidateUnreadCount(r.Context(), p)
			event := services.ChatEvent{
				Type:           "message",
				ConversationID: req.ConversationID,
				Message:        msg,
			}
			if err := services.PublishChatEvent(r.Context(), p, event); err != nil {
				log.Printf("⚠️ Failed to publish chat event: %v", err)
			}
		}
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": msg,
	})
}

// MarkConversationRead marks the other participants' messages as read and
// zeroes the conversation's unread count
func MarkConversationRead(w http.ResponseWriter, r *http.Request) {
	user := currentUser(w, r)
	if user == nil {
		return
	}

	var req MarkReadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ConversationID == "" {
		http.Error(w, "conversation_id is required", http.StatusBadRequest)
		return
	}

	conv, err := services.Chat.GetConversation(r.Context(), req.ConversationID)
	if err != nil {
		http.Error(w, "Failed to load conversation", http.StatusInternalServerError)
		return
	}
	if conv == nil {
		http.Error(w, "Conversation not found", http.StatusNotFound)
		return
	}
	if !conv.HasParticipant(user.ID.String()) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	if err := services.Chat.MarkMessagesAsRead(r.Context(), req.ConversationID, user.ID.String()); err != nil {
		http.Error(w, "Failed to mark messages read", http.StatusInternalServerError)
		return
	}

	services.InvalidateUnreadCount(r.Context(), user.ID.String())
	for _, p := range conv.Participants {
		if p == user.ID.String() {
			continue
		}
		event := services.ChatEvent{
			Type:           "conversation_read",
			ConversationID: req.ConversationID,
		}
		if err := services.PublishChatEvent(r.Context(), p, event); err != nil {
			log.Printf("⚠️ Failed to publish read event: %v", err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Conversation marked read",
	})
}

// GetUnreadCount returns the user's total unread message count
func GetUnreadCount(w http.ResponseWriter, r *http.Request) {
	user := currentUser(w, r)
	if user == nil {
		return
	}

	total, err := services.CachedUnreadCount(r.Context(), user.ID.String())
	if err != nil {
		http.Error(w, "Failed to load unread count", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"unread_count": total,
	})
}

// ReportMessage flags a message for moderator review
func ReportMessage(w http.ResponseWriter, r *http.Request) {
	user := currentUser(w, r)
	if user == nil {
		return
	}

	var req ReportMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.MessageID == "" || req.Reason == "" {
		http.Error(w, "message_id and reason are required", http.StatusBadRequest)
		return
	}

	found, err := services.Chat.ReportMessage(r.Context(), req.MessageID, user.ID.String(), user.Name, req.Reason)
	if err != nil {
		http.Error(w, "Failed to report message", http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "Message not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Message reported",
	})
}

// GetPredefinedMessages returns the canned conversation openers
func GetPredefinedMessages(w http.ResponseWriter, r *http.Request) {
	if currentUser(w, r) == nil {
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"messages": services.PredefinedMessages(),
	})
}
