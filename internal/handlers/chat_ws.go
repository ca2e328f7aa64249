package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/skillswap-app/skillswap-backend/internal/services"
)

var chatUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS for WebSocket is handled at the HTTP layer already.
		return true
	},
}

// ChatClientMessage represents messages coming from the frontend over WebSocket.
type ChatClientMessage struct {
	Type           string `json:"type"` // "message", "read", "ping"
	ConversationID string `json:"conversation_id,omitempty"`
	Content        string `json:"content,omitempty"`
}

// ChatWebSocket pushes real-time chat events to the authenticated user.
// Authentication uses the existing session token (Authorization: Bearer
// <token>, or ?token= for browser WebSocket clients). Each user holds one
// connection; events for every conversation they participate in arrive on it.
func ChatWebSocket(w http.ResponseWriter, r *http.Request) {
	token := extractBearerToken(r)
	if token == "" {
		token = r.URL.Query().Get("token")
		if token == "" {
			http.Error(w, "missing session token", http.StatusUnauthorized)
			return
		}
	}

	userID, ok, err := services.ValidateSession(token)
	if err != nil || !ok {
		http.Error(w, "invalid session token", http.StatusUnauthorized)
		return
	}

	user, err := services.GetUserByID(r.Context(), userID)
	if err != nil || user == nil {
		http.Error(w, "invalid session token", http.StatusUnauthorized)
		return
	}

	conn, err := chatUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// All writes go through one mutex; the fan-out goroutine and this
	// handler would otherwise write to the socket concurrently.
	client := services.NewLockedConn(conn)
	services.RegisterUserConnection(userID.String(), client)
	defer services.UnregisterUserConnection(userID.String())

	// Reader loop: handle client messages
	conn.SetReadLimit(64 * 1024)
	_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
	conn.SetPongHandler(func(appData string) error {
		_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
		return nil
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))

		var msg ChatClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}

		switch msg.Type {
		case "message":
			handleIncomingChatMessage(ctx, client, user.ID.String(), user.Name, msg)
		case "read":
			if msg.ConversationID != "" {
				handleIncomingReadReceipt(ctx, user.ID.String(), msg.ConversationID)
			}
		case "ping":
			_ = client.WriteJSON(map[string]string{"type": "pong"})
		default:
			// Ignore unknown types
		}
	}
}

// handleIncomingChatMessage validates, persists to MongoDB, publishes to the
// other participants via Redis, and acknowledges the sender.
func handleIncomingChatMessage(ctx context.Context, conn services.ChatConn, userID, userName string, msg ChatClientMessage) {
	content := strings.TrimSpace(msg.Content)
	if content == "" || msg.ConversationID == "" {
		return
	}

	saved, err := services.Chat.SendMessage(ctx, msg.ConversationID, userID, userName, content)
	if err != nil {
		_ = conn.WriteJSON(map[string]string{
			"type":  "error",
			"error": "failed to send message",
		})
		return
	}

	conv, err := services.Chat.GetConversation(ctx, msg.ConversationID)
	if err == nil && conv != nil {
		for _, p := range conv.Participants {
			if p == userID {
				continue
			}
			services.InvalidateUnreadCount(ctx, p)
			event := services.ChatEvent{
				Type:           "message",
				ConversationID: msg.ConversationID,
				Message:        saved,
			}
			if err := services.PublishChatEvent(ctx, p, event); err != nil {
				log.Printf("⚠️ Failed to publish chat event: %v", err)
			}
		}
	}

	_ = conn.WriteJSON(services.ChatEvent{
		Type:           "message_ack",
		ConversationID: msg.ConversationID,
		Message:        saved,
	})
}

func handleIncomingReadReceipt(ctx context.Context, userID, conversationID string) {
	conv, err := services.Chat.GetConversation(ctx, conversationID)
	if err != nil || conv == nil || !conv.HasParticipant(userID) {
		return
	}
	if err := services.Chat.MarkMessagesAsRead(ctx, conversationID, userID); err != nil {
		return
	}

	services.InvalidateUnreadCount(ctx, userID)
	for _, p := range conv.Participants {
		if p == userID {
			continue
		}
		_ = services.PublishChatEvent(ctx, p, services.ChatEvent{
			Type:           "conversation_read",
			ConversationID: conversationID,
		})
	}
}
