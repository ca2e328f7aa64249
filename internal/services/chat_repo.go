package services

import (
	"context"

	"github.com/skillswap-app/skillswap-backend/internal/models"
)

// ChatRepository is the storage contract for the messaging collections.
// The production implementation is MongoChatRepository; tests run the
// service against an in-memory fake.
type ChatRepository interface {
	InsertConversation(ctx context.Context, conv models.Conversation) error
	FindConversationByID(ctx context.Context, id string) (*models.Conversation, error)
	// FindConversationByParticipants matches only two-party conversations
	// containing exactly these two users.
	FindConversationByParticipants(ctx context.Context, userA, userB string) (*models.Conversation, error)
	ListConversationsByUser(ctx context.Context, userID string) ([]models.Conversation, error)
	UpdateConversationOnSend(ctx context.Context, convID string, last models.LastMessage, unreadDelta int) error
	ResetUnreadCount(ctx context.Context, convID string) error

	InsertMessage(ctx context.Context, msg models.Message) error
	FindMessageByID(ctx context.Context, id string) (*models.Message, error)
	// ListVisibleMessages returns non-hidden messages ascending by timestamp.
	ListVisibleMessages(ctx context.Context, convID string) ([]models.Message, error)
	// MarkMessagesRead flips read on every unread message in the conversation
	// not authored by readerID, returning how many were flipped.
	MarkMessagesRead(ctx context.Context, convID, readerID string) (int64, error)
	FlagMessageReported(ctx context.Context, messageID, reason string) error
	HideMessage(ctx context.Context, messageID string) error

	InsertReport(ctx context.Context, report models.MessageReport) error
	FindReportByID(ctx context.Context, id string) (*models.MessageReport, error)
	ListReports(ctx context.Context, status models.ReportStatus) ([]models.MessageReport, error)
	UpdateReportStatus(ctx context.Context, id string, status models.ReportStatus, notes string) error
}
