package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/skillswap-app/skillswap-backend/internal/models"
)

var ErrNotParticipant = errors.New("user is not a participant of this conversation")

// ChatService implements the messaging bookkeeping: conversations, messages,
// read state and report/moderation records.
type ChatService struct {
	repo ChatRepository
}

func NewChatService(repo ChatRepository) *ChatService {
	return &ChatService{repo: repo}
}

// Chat is the service instance used by the handlers; set from main.
var Chat *ChatService

// InitChatService wires the Mongo-backed chat service.
func InitChatService() {
	Chat = NewChatService(NewMongoChatRepository())
}

// StartConversation returns the id of the two-party conversation between the
// users, creating it when none exists. Idempotent: calling twice with the
// same pair yields the same id.
func (s *ChatService) StartConversation(ctx context.Context, current, recipient *models.User) (string, error) {
	existing, err := s.repo.FindConversationByParticipants(ctx, current.ID.String(), recipient.ID.String())
	if err != nil {
		return "", err
	}
	if existing != nil {
		return existing.ID, nil
	}

	conv := models.Conversation{
		ID:                uuid.NewString(),
		CreatedAt:         time.Now().UTC(),
		Participants:      []string{current.ID.String(), recipient.ID.String()},
		ParticipantNames:  []string{current.Name, recipient.Name},
		ParticipantImages: []string{current.ProfilePicture, recipient.ProfilePicture},
		UnreadCount:       0,
	}
	if err := s.repo.InsertConversation(ctx, conv); err != nil {
		return "", err
	}
	return conv.ID, nil
}

// SendMessage appends a message to the conversation, updates its lastMessage
// summary and bumps unreadCount by the number of other participants (always
// +1 for two-party chats).
func (s *ChatService) SendMessage(ctx context.Context, convID, senderID, senderName, content string) (*models.Message, error) {
	conv, err := s.repo.FindConversationByID(ctx, convID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, errors.New("conversation not found")
	}
	if !conv.HasParticipant(senderID) {
		return nil, ErrNotParticipant
	}

	msg := models.Message{
		ID:             uuid.NewString(),
		ConversationID: convID,
		SenderID:       senderID,
		SenderName:     senderName,
		Content:        content,
		Timestamp:      time.Now().UTC(),
		Read:           false,
	}
	if err := s.repo.InsertMessage(ctx, msg); err != nil {
		return nil, err
	}

	otherParticipants := 0
	for _, p := range conv.Participants {
		if p != senderID {
			otherParticipants++
		}
	}

	last := models.LastMessage{
		Content:   msg.Content,
		Timestamp: msg.Timestamp,
		SenderID:  senderID,
	}
	if err := s.repo.UpdateConversationOnSend(ctx, convID, last, otherParticipants); err != nil {
		return nil, err
	}

	return &msg, nil
}

// GetConversationMessages returns the non-hidden messages in ascending
// timestamp order.
func (s *ChatService) GetConversationMessages(ctx context.Context, convID string) ([]models.Message, error) {
	return s.repo.ListVisibleMessages(ctx, convID)
}

// GetConversation returns a conversation by id, nil when missing.
func (s *ChatService) GetConversation(ctx context.Context, convID string) (*models.Conversation, error) {
	return s.repo.FindConversationByID(ctx, convID)
}

// GetUserConversations lists every conversation the user participates in.
func (s *ChatService) GetUserConversations(ctx context.Context, userID string) ([]models.Conversation, error) {
	return s.repo.ListConversationsByUser(ctx, userID)
}

// MarkMessagesAsRead flips read on every other sender's unread message in the
// conversation and zeroes its unreadCount.
func (s *ChatService) MarkMessagesAsRead(ctx context.Context, convID, readerID string) error {
	if _, err := s.repo.MarkMessagesRead(ctx, convID, readerID); err != nil {
		return err
	}
	return s.repo.ResetUnreadCount(ctx, convID)
}

// ReportMessage flags the message and files a pending report. Returns false
// when the message does not exist.
func (s *ChatService) ReportMessage(ctx context.Context, messageID, reporterID, reporterName, reason string) (bool, error) {
	msg, err := s.repo.FindMessageByID(ctx, messageID)
	if err != nil {
		return false, err
	}
	if msg == nil {
		return false, nil
	}

	if err := s.repo.FlagMessageReported(ctx, messageID, reason); err != nil {
		return false, err
	}

	report := models.MessageReport{
		ID:           uuid.NewString(),
		MessageID:    messageID,
		ReporterID:   reporterID,
		ReporterName: reporterName,
		Reason:       reason,
		Timestamp:    time.Now().UTC(),
		Status:       models.ReportStatusPending,
	}
	if err := s.repo.InsertReport(ctx, report); err != nil {
		return false, err
	}
	return true, nil
}

// ModerateReport applies a moderator decision. Approve hides the reported
// message; reject leaves it visible. Either way the report becomes reviewed,
// its single lifecycle transition. Returns false when the report is missing.
func (s *ChatService) ModerateReport(ctx context.Context, reportID string, approve bool, moderatorNotes string) (bool, error) {
	report, err := s.repo.FindReportByID(ctx, reportID)
	if err != nil {
		return false, err
	}
	if report == nil {
		return false, nil
	}

	if err := s.repo.UpdateReportStatus(ctx, reportID, models.ReportStatusReviewed, moderatorNotes); err != nil {
		return false, err
	}

	if approve {
		if err := s.repo.HideMessage(ctx, report.MessageID); err != nil {
			return false, err
		}
	}
	return true, nil
}

// ListReports returns reports, optionally filtered by status ("" for all).
func (s *ChatService) ListReports(ctx context.Context, status models.ReportStatus) ([]models.MessageReport, error) {
	return s.repo.ListReports(ctx, status)
}

// TotalUnreadCount sums unreadCount over the user's conversations.
func (s *ChatService) TotalUnreadCount(ctx context.Context, userID string) (int, error) {
	convs, err := s.repo.ListConversationsByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, c := range convs {
		total += c.UnreadCount
	}
	return total, nil
}

// PredefinedMessages returns the canned conversation openers.
func PredefinedMessages() []models.PredefinedMessage {
	return []models.PredefinedMessage{
		{ID: "1", Content: "Hi there! I saw we have matching skills.", Category: "greeting"},
		{ID: "2", Content: "Would you be interested in scheduling a skill swap session?", Category: "question"},
		{ID: "3", Content: "I'm available on weekends for skill exchanges.", Category: "response"},
		{ID: "4", Content: "Could you tell me more about your experience with this skill?", Category: "question"},
		{ID: "5", Content: "Thanks for the chat! Looking forward to learning from you.", Category: "follow-up"},
		{ID: "6", Content: "What's your preferred method for skill sharing sessions?", Category: "question"},
		{ID: "7", Content: "I'm a beginner in this area, just so you know.", Category: "response"},
		{ID: "8", Content: "I have 3+ years of experience in this field.", Category: "response"},
	}
}
