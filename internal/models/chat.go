package models

import "time"

// Conversation is a two-party direct-message thread stored in MongoDB.
// Participants always has exactly two user ids for conversations created
// through StartConversation.
type Conversation struct {
	ID                string       `bson:"_id" json:"id"`
	CreatedAt         time.Time    `bson:"created_at" json:"created_at"`
	Participants      []string     `bson:"participants" json:"participants"`
	ParticipantNames  []string     `bson:"participant_names" json:"participant_names"`
	ParticipantImages []string     `bson:"participant_images,omitempty" json:"participant_images,omitempty"`
	LastMessage       *LastMessage `bson:"last_message,omitempty" json:"last_message,omitempty"`
	UnreadCount       int          `bson:"unread_count" json:"unread_count"` // never negative
}

// HasParticipant reports whether the user is part of the conversation.
func (c *Conversation) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// LastMessage is the denormalized summary shown in conversation lists.
type LastMessage struct {
	Content   string    `bson:"content" json:"content"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
	SenderID  string    `bson:"sender_id" json:"sender_id"`
}

// Message is a single direct message. Hidden messages stay in the collection
// but are excluded from conversation reads.
type Message struct {
	ID             string    `bson:"_id" json:"id"`
	ConversationID string    `bson:"conversation_id" json:"conversation_id"`
	SenderID       string    `bson:"sender_id" json:"sender_id"`
	SenderName     string    `bson:"sender_name" json:"sender_name"`
	Content        string    `bson:"content" json:"content"`
	Timestamp      time.Time `bson:"timestamp" json:"timestamp"`
	Read           bool      `bson:"read" json:"read"`
	Reported       bool      `bson:"reported,omitempty" json:"reported,omitempty"`
	ReportReason   string    `bson:"report_reason,omitempty" json:"report_reason,omitempty"`
	Hidden         bool      `bson:"hidden,omitempty" json:"hidden,omitempty"`
}

// ReportStatus tracks the moderation lifecycle of a report. A report is
// created pending and transitions exactly once to reviewed.
type ReportStatus string

const (
	ReportStatusPending  ReportStatus = "pending"
	ReportStatusReviewed ReportStatus = "reviewed"
	ReportStatusResolved ReportStatus = "resolved"
)

type MessageReport struct {
	ID             string       `bson:"_id" json:"id"`
	MessageID      string       `bson:"message_id" json:"message_id"`
	ReporterID     string       `bson:"reporter_id" json:"reporter_id"`
	ReporterName   string       `bson:"reporter_name" json:"reporter_name"`
	Reason         string       `bson:"reason" json:"reason"`
	Timestamp      time.Time    `bson:"timestamp" json:"timestamp"`
	Status         ReportStatus `bson:"status" json:"status"`
	ModeratorNotes string       `bson:"moderator_notes,omitempty" json:"moderator_notes,omitempty"`
}

// PredefinedMessage is a canned opener users can send instead of typing.
type PredefinedMessage struct {
	ID       string `json:"id"`
	Content  string `json:"content"`
	Category string `json:"category"` // greeting, question, response, follow-up
}
