package services

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/skillswap-app/skillswap-backend/internal/database"
	"github.com/skillswap-app/skillswap-backend/internal/models"
)

// ChatEvent is the payload broadcast over Redis and pushed to WebSocket
// clients. Channels are per-recipient, so each user only ever receives
// events addressed to them.
type ChatEvent struct {
	Type           string          `json:"type"` // message, conversation_read
	ConversationID string          `json:"conversation_id"`
	Message        *models.Message `json:"message,omitempty"`
	Timestamp      time.Time       `json:"timestamp,omitempty"`
}

// ChatConn is the minimal interface our WebSocket implementation must satisfy.
type ChatConn interface {
	WriteJSON(v interface{}) error
	ReadJSON(dest interface{}) error
	Close() error
}

// lockedConn serializes writes to a connection. gorilla/websocket supports at
// most one concurrent writer, and both the fan-out goroutine and the handler's
// reader loop write to the same socket.
type lockedConn struct {
	mu   sync.Mutex
	conn ChatConn
}

// NewLockedConn wraps a raw connection so every writer goes through one mutex.
func NewLockedConn(conn ChatConn) ChatConn {
	return &lockedConn{conn: conn}
}

func (l *lockedConn) WriteJSON(v interface{}) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.conn.WriteJSON(v)
}

func (l *lockedConn) ReadJSON(dest interface{}) error { return l.conn.ReadJSON(dest) }

func (l *lockedConn) Close() error { return l.conn.Close() }

// ChatHub is a global registry of per-user connections.
type ChatHub struct {
	mu          sync.RWMutex
	connections map[string]ChatConn
}

var (
	chatHub      = &ChatHub{connections: make(map[string]ChatConn)}
	redisStarted sync.Once
)

// RegisterUserConnection registers or replaces a user's connection.
func RegisterUserConnection(userID string, conn ChatConn) {
	chatHub.mu.Lock()
	chatHub.connections[userID] = conn
	chatHub.mu.Unlock()
}

// UnregisterUserConnection removes a user's connection.
func UnregisterUserConnection(userID string) {
	chatHub.mu.Lock()
	delete(chatHub.connections, userID)
	chatHub.mu.Unlock()
}

// FanOutChatEvent delivers an event to the named user's local connection,
// if one exists on this instance.
func FanOutChatEvent(userID string, event ChatEvent) {
	chatHub.mu.RLock()
	conn, ok := chatHub.connections[userID]
	chatHub.mu.RUnlock()
	if !ok {
		return
	}

	// Non-blocking best-effort send.
	go func(c ChatConn) {
		if err := c.WriteJSON(event); err != nil {
			log.Printf("error writing chat event to websocket: %v", err)
		}
	}(conn)
}

// StartRedisChatSubscriber ensures a single shared Redis listener per instance.
func StartRedisChatSubscriber(ctx context.Context) {
	redisStarted.Do(func() {
		go runRedisSubscriber(ctx)
	})
}

const chatChannelPrefix = "chat:user:"

func runRedisSubscriber(ctx context.Context) {
	client := database.RedisClient
	if client == nil {
		log.Println("Redis client not initialized; chat subscriber not started")
		return
	}

	backoff := time.Second

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		func() {
			pubsub := client.PSubscribe(ctx, chatChannelPrefix+"*")
			defer pubsub.Close()

			log.Println("✅ Chat Redis subscriber started (pattern: chat:user:*)")

			for {
				msg, err := pubsub.ReceiveMessage(ctx)
				if err != nil {
					log.Printf("Redis subscriber error: %v", err)
					time.Sleep(backoff)
					backoff *= 2
					if backoff > 30*time.Second {
						backoff = 30 * time.Second
					}
					return
				}

				backoff = time.Second

				userID := msg.Channel[len(chatChannelPrefix):]

				var event ChatEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					log.Printf("failed to unmarshal chat event: %v", err)
					continue
				}

				FanOutChatEvent(userID, event)
			}
		}()
	}
}

// PublishChatEvent publishes an event to the recipient's channel; called
// after a message is persisted or a conversation is marked read.
func PublishChatEvent(ctx context.Context, recipientID string, event ChatEvent) error {
	if database.RedisClient == nil {
		return nil
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return database.RedisClient.Publish(ctx, chatChannelPrefix+recipientID, data).Err()
}
