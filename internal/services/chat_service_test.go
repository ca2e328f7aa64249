package services

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillswap-app/skillswap-backend/internal/models"
)

// fakeChatRepo is an in-memory ChatRepository for exercising the service
// without MongoDB.
type fakeChatRepo struct {
	conversations map[string]*models.Conversation
	messages      map[string]*models.Message
	reports       map[string]*models.MessageReport
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{
		conversations: make(map[string]*models.Conversation),
		messages:      make(map[string]*models.Message),
		reports:       make(map[string]*models.MessageReport),
	}
}

func (f *fakeChatRepo) InsertConversation(ctx context.Context, conv models.Conversation) error {
	c := conv
	f.conversations[conv.ID] = &c
	return nil
}

func (f *fakeChatRepo) FindConversationByID(ctx context.Context, id string) (*models.Conversation, error) {
	if c, ok := f.conversations[id]; ok {
		copy := *c
		return &copy, nil
	}
	return nil, nil
}

func (f *fakeChatRepo) FindConversationByParticipants(ctx context.Context, a, b string) (*models.Conversation, error) {
	for _, c := range f.conversations {
		if len(c.Participants) != 2 {
			continue
		}
		if (c.Participants[0] == a && c.Participants[1] == b) ||
			(c.Participants[0] == b && c.Participants[1] == a) {
			copy := *c
			return &copy, nil
		}
	}
	return nil, nil
}

func (f *fakeChatRepo) ListConversationsByUser(ctx context.Context, userID string) ([]models.Conversation, error) {
	var out []models.Conversation
	for _, c := range f.conversations {
		if c.HasParticipant(userID) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeChatRepo) UpdateConversationOnSend(ctx context.Context, convID string, last models.LastMessage, unreadDelta int) error {
	c := f.conversations[convID]
	c.LastMessage = &last
	c.UnreadCount += unreadDelta
	return nil
}

func (f *fakeChatRepo) ResetUnreadCount(ctx context.Context, convID string) error {
	if c, ok := f.conversations[convID]; ok {
		c.UnreadCount = 0
	}
	return nil
}

func (f *fakeChatRepo) InsertMessage(ctx context.Context, msg models.Message) error {
	m := msg
	f.messages[msg.ID] = &m
	return nil
}

func (f *fakeChatRepo) FindMessageByID(ctx context.Context, id string) (*models.Message, error) {
	if m, ok := f.messages[id]; ok {
		copy := *m
		return &copy, nil
	}
	return nil, nil
}

func (f *fakeChatRepo) ListVisibleMessages(ctx context.Context, convID string) ([]models.Message, error) {
	var out []models.Message
	for _, m := range f.messages {
		if m.ConversationID == convID && !m.Hidden {
			out = append(out, *m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}

func (f *fakeChatRepo) MarkMessagesRead(ctx context.Context, convID, readerID string) (int64, error) {
	var n int64
	for _, m := range f.messages {
		if m.ConversationID == convID && m.SenderID != readerID && !m.Read {
			m.Read = true
			n++
		}
	}
	return n, nil
}

func (f *fakeChatRepo) FlagMessageReported(ctx context.Context, messageID, reason string) error {
	if m, ok := f.messages[messageID]; ok {
		m.Reported = true
		m.ReportReason = reason
	}
	return nil
}

func (f *fakeChatRepo) HideMessage(ctx context.Context, messageID string) error {
	if m, ok := f.messages[messageID]; ok {
		m.Hidden = true
	}
	return nil
}

func (f *fakeChatRepo) InsertReport(ctx context.Context, report models.MessageReport) error {
	r := report
	f.reports[report.ID] = &r
	return nil
}

func (f *fakeChatRepo) FindReportByID(ctx context.Context, id string) (*models.MessageReport, error) {
	if r, ok := f.reports[id]; ok {
		copy := *r
		return &copy, nil
	}
	return nil, nil
}

func (f *fakeChatRepo) ListReports(ctx context.Context, status models.ReportStatus) ([]models.MessageReport, error) {
	var out []models.MessageReport
	for _, r := range f.reports {
		if status == "" || r.Status == status {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeChatRepo) UpdateReportStatus(ctx context.Context, id string, status models.ReportStatus, notes string) error {
	if r, ok := f.reports[id]; ok {
		r.Status = status
		r.ModeratorNotes = notes
	}
	return nil
}

func chatTestUsers() (*models.User, *models.User) {
	return &models.User{ID: uuid.New(), Name: "Alex"},
		&models.User{ID: uuid.New(), Name: "Taylor"}
}

func TestStartConversationIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := newFakeChatRepo()
	svc := NewChatService(repo)
	alex, taylor := chatTestUsers()

	first, err := svc.StartConversation(ctx, alex, taylor)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	// Same pair, either direction, yields the same conversation
	second, err := svc.StartConversation(ctx, taylor, alex)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, repo.conversations, 1)
}

func TestSendMessageUpdatesConversation(t *testing.T) {
	ctx := context.Background()
	repo := newFakeChatRepo()
	svc := NewChatService(repo)
	alex, taylor := chatTestUsers()

	convID, err := svc.StartConversation(ctx, alex, taylor)
	require.NoError(t, err)

	msg, err := svc.SendMessage(ctx, convID, alex.ID.String(), alex.Name, "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", msg.Content)
	assert.False(t, msg.Read)

	conv, err := svc.GetConversation(ctx, convID)
	require.NoError(t, err)
	require.NotNil(t, conv.LastMessage)
	assert.Equal(t, "hello", conv.LastMessage.Content)
	assert.Equal(t, alex.ID.String(), conv.LastMessage.SenderID)
	assert.Equal(t, 1, conv.UnreadCount)

	// Second message bumps the counter again
	_, err = svc.SendMessage(ctx, convID, alex.ID.String(), alex.Name, "anyone there?")
	require.NoError(t, err)

	conv, _ = svc.GetConversation(ctx, convID)
	assert.Equal(t, 2, conv.UnreadCount)
	assert.Equal(t, "anyone there?", conv.LastMessage.Content)
}

func TestGetConversationMessagesAscending(t *testing.T) {
	ctx := context.Background()
	repo := newFakeChatRepo()
	svc := NewChatService(repo)
	alex, taylor := chatTestUsers()

	convID, err := svc.StartConversation(ctx, alex, taylor)
	require.NoError(t, err)

	base := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	for i, content := range []string{"third", "first", "second"} {
		offsets := []time.Duration{2 * time.Minute, 0, time.Minute}
		require.NoError(t, repo.InsertMessage(ctx, models.Message{
			ID:             uuid.NewString(),
			ConversationID: convID,
			SenderID:       alex.ID.String(),
			SenderName:     alex.Name,
			Content:        content,
			Timestamp:      base.Add(offsets[i]),
		}))
	}

	msgs, err := svc.GetConversationMessages(ctx, convID)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, "first", msgs[0].Content)
	assert.Equal(t, "second", msgs[1].Content)
	assert.Equal(t, "third", msgs[2].Content)
}

func TestSendMessageRejectsOutsiders(t *testing.T) {
	ctx := context.Background()
	svc := NewChatService(newFakeChatRepo())
	alex, taylor := chatTestUsers()

	convID, err := svc.StartConversation(ctx, alex, taylor)
	require.NoError(t, err)

	_, err = svc.SendMessage(ctx, convID, uuid.NewString(), "Mallory", "hi")
	assert.ErrorIs(t, err, ErrNotParticipant)
}

func TestSendMessageMissingConversation(t *testing.T) {
	ctx := context.Background()
	svc := NewChatService(newFakeChatRepo())

	_, err := svc.SendMessage(ctx, "nope", uuid.NewString(), "Alex", "hi")
	assert.Error(t, err)
}

func TestMarkMessagesAsRead(t *testing.T) {
	ctx := context.Background()
	repo := newFakeChatRepo()
	svc := NewChatService(repo)
	alex, taylor := chatTestUsers()

	convID, err := svc.StartConversation(ctx, alex, taylor)
	require.NoError(t, err)

	sent, err := svc.SendMessage(ctx, convID, alex.ID.String(), alex.Name, "hello")
	require.NoError(t, err)
	own, err := svc.SendMessage(ctx, convID, taylor.ID.String(), taylor.Name, "hi back")
	require.NoError(t, err)

	require.NoError(t, svc.MarkMessagesAsRead(ctx, convID, taylor.ID.String()))

	// Alex's message is read now; Taylor's own stays untouched
	assert.True(t, repo.messages[sent.ID].Read)
	assert.False(t, repo.messages[own.ID].Read)

	conv, _ := svc.GetConversation(ctx, convID)
	assert.Equal(t, 0, conv.UnreadCount)
}

func TestTotalUnreadCount(t *testing.T) {
	ctx := context.Background()
	svc := NewChatService(newFakeChatRepo())
	alex, taylor := chatTestUsers()
	jordan := &models.User{ID: uuid.New(), Name: "Jordan"}

	conv1, _ := svc.StartConversation(ctx, alex, taylor)
	conv2, _ := svc.StartConversation(ctx, alex, jordan)

	_, err := svc.SendMessage(ctx, conv1, taylor.ID.String(), taylor.Name, "one")
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, conv2, jordan.ID.String(), jordan.Name, "two")
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, conv2, jordan.ID.String(), jordan.Name, "three")
	require.NoError(t, err)

	total, err := svc.TotalUnreadCount(ctx, alex.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}

func TestReportAndModerateApprove(t *testing.T) {
	ctx := context.Background()
	repo := newFakeChatRepo()
	svc := NewChatService(repo)
	alex, taylor := chatTestUsers()

	convID, _ := svc.StartConversation(ctx, alex, taylor)
	msg, err := svc.SendMessage(ctx, convID, alex.ID.String(), alex.Name, "something rude")
	require.NoError(t, err)

	found, err := svc.ReportMessage(ctx, msg.ID, taylor.ID.String(), taylor.Name, "harassment")
	require.NoError(t, err)
	require.True(t, found)

	assert.True(t, repo.messages[msg.ID].Reported)
	assert.Equal(t, "harassment", repo.messages[msg.ID].ReportReason)

	pending, err := svc.ListReports(ctx, models.ReportStatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	report := pending[0]

	found, err = svc.ModerateReport(ctx, report.ID, true, "confirmed")
	require.NoError(t, err)
	require.True(t, found)

	// Approved: message hidden, report reviewed
	assert.True(t, repo.messages[msg.ID].Hidden)
	assert.Equal(t, models.ReportStatusReviewed, repo.reports[report.ID].Status)
	assert.Equal(t, "confirmed", repo.reports[report.ID].ModeratorNotes)

	visible, err := svc.GetConversationMessages(ctx, convID)
	require.NoError(t, err)
	assert.Empty(t, visible)
}

func TestReportAndModerateReject(t *testing.T) {
	ctx := context.Background()
	repo := newFakeChatRepo()
	svc := NewChatService(repo)
	alex, taylor := chatTestUsers()

	convID, _ := svc.StartConversation(ctx, alex, taylor)
	msg, err := svc.SendMessage(ctx, convID, alex.ID.String(), alex.Name, "perfectly fine")
	require.NoError(t, err)

	_, err = svc.ReportMessage(ctx, msg.ID, taylor.ID.String(), taylor.Name, "spam")
	require.NoError(t, err)

	reports, _ := svc.ListReports(ctx, "")
	require.Len(t, reports, 1)

	found, err := svc.ModerateReport(ctx, reports[0].ID, false, "not spam")
	require.NoError(t, err)
	require.True(t, found)

	// Rejected: message stays visible, report still reviewed
	assert.False(t, repo.messages[msg.ID].Hidden)
	assert.Equal(t, models.ReportStatusReviewed, repo.reports[reports[0].ID].Status)

	visible, err := svc.GetConversationMessages(ctx, convID)
	require.NoError(t, err)
	assert.Len(t, visible, 1)
}

func TestReportMissingMessage(t *testing.T) {
	ctx := context.Background()
	svc := NewChatService(newFakeChatRepo())

	found, err := svc.ReportMessage(ctx, "missing", uuid.NewString(), "Taylor", "spam")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestModerateMissingReport(t *testing.T) {
	ctx := context.Background()
	svc := NewChatService(newFakeChatRepo())

	found, err := svc.ModerateReport(ctx, "missing", true, "")
	require.NoError(t, err)
	assert.False(t, found)
}
