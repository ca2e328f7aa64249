package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/skillswap-app/skillswap-backend/internal/database"
	"github.com/skillswap-app/skillswap-backend/internal/models"
)

const (
	conversationsCollection = "conversations"
	messagesCollection      = "messages"
	reportsCollection       = "reports"
)

// MongoChatRepository stores the messaging collections in MongoDB.
type MongoChatRepository struct{}

func NewMongoChatRepository() *MongoChatRepository {
	return &MongoChatRepository{}
}

// EnsureChatIndexes configures indexes for the messaging collections.
// Called on startup from main after Mongo has connected.
func EnsureChatIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		conversationsCollection: {
			{
				Keys:    bson.D{{Key: "participants", Value: 1}},
				Options: options.Index().SetName("idx_participants"),
			},
		},
		messagesCollection: {
			{
				Keys: bson.D{
					{Key: "conversation_id", Value: 1},
					{Key: "timestamp", Value: 1},
				},
				Options: options.Index().SetName("idx_conversation_timestamp"),
			},
		},
		reportsCollection: {
			{
				Keys:    bson.D{{Key: "status", Value: 1}},
				Options: options.Index().SetName("idx_status"),
			},
		},
	}

	for col, specs := range indexes {
		for _, m := range specs {
			if _, err := database.DB.Collection(col).Indexes().CreateOne(ctx, m); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *MongoChatRepository) InsertConversation(ctx context.Context, conv models.Conversation) error {
	_, err := database.DB.Collection(conversationsCollection).InsertOne(ctx, conv)
	return err
}

func (r *MongoChatRepository) FindConversationByID(ctx context.Context, id string) (*models.Conversation, error) {
	var conv models.Conversation
	err := database.DB.Collection(conversationsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&conv)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *MongoChatRepository) FindConversationByParticipants(ctx context.Context, userA, userB string) (*models.Conversation, error) {
	var conv models.Conversation
	err := database.DB.Collection(conversationsCollection).FindOne(ctx, bson.M{
		"participants": bson.M{"$all": []string{userA, userB}, "$size": 2},
	}).Decode(&conv)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *MongoChatRepository) ListConversationsByUser(ctx context.Context, userID string) ([]models.Conversation, error) {
	cur, err := database.DB.Collection(conversationsCollection).Find(ctx,
		bson.M{"participants": userID},
		options.Find().SetSort(bson.D{{Key: "last_message.timestamp", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var convs []models.Conversation
	if err := cur.All(ctx, &convs); err != nil {
		return nil, err
	}
	return convs, nil
}

func (r *MongoChatRepository) UpdateConversationOnSend(ctx context.Context, convID string, last models.LastMessage, unreadDelta int) error {
	_, err := database.DB.Collection(conversationsCollection).UpdateOne(ctx,
		bson.M{"_id": convID},
		bson.M{
			"$set": bson.M{"last_message": last},
			"$inc": bson.M{"unread_count": unreadDelta},
		})
	return err
}

func (r *MongoChatRepository) ResetUnreadCount(ctx context.Context, convID string) error {
	_, err := database.DB.Collection(conversationsCollection).UpdateOne(ctx,
		bson.M{"_id": convID},
		bson.M{"$set": bson.M{"unread_count": 0}})
	return err
}

func (r *MongoChatRepository) InsertMessage(ctx context.Context, msg models.Message) error {
	_, err := database.DB.Collection(messagesCollection).InsertOne(ctx, msg)
	return err
}

func (r *MongoChatRepository) FindMessageByID(ctx context.Context, id string) (*models.Message, error) {
	var msg models.Message
	err := database.DB.Collection(messagesCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&msg)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *MongoChatRepository) ListVisibleMessages(ctx context.Context, convID string) ([]models.Message, error) {
	cur, err := database.DB.Collection(messagesCollection).Find(ctx,
		bson.M{
			"conversation_id": convID,
			"hidden":          bson.M{"$ne": true},
		},
		options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var msgs []models.Message
	if err := cur.All(ctx, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *MongoChatRepository) MarkMessagesRead(ctx context.Context, convID, readerID string) (int64, error) {
	res, err := database.DB.Collection(messagesCollection).UpdateMany(ctx,
		bson.M{
			"conversation_id": convID,
			"sender_id":       bson.M{"$ne": readerID},
			"read":            false,
		},
		bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *MongoChatRepository) FlagMessageReported(ctx context.Context, messageID, reason string) error {
	_, err := database.DB.Collection(messagesCollection).UpdateOne(ctx,
		bson.M{"_id": messageID},
		bson.M{"$set": bson.M{"reported": true, "report_reason": reason}})
	return err
}

func (r *MongoChatRepository) HideMessage(ctx context.Context, messageID string) error {
	_, err := database.DB.Collection(messagesCollection).UpdateOne(ctx,
		bson.M{"_id": messageID},
		bson.M{"$set": bson.M{"hidden": true}})
	return err
}

func (r *MongoChatRepository) InsertReport(ctx context.Context, report models.MessageReport) error {
	_, err := database.DB.Collection(reportsCollection).InsertOne(ctx, report)
	return err
}

func (r *MongoChatRepository) FindReportByID(ctx context.Context, id string) (*models.MessageReport, error) {
	var report models.MessageReport
	err := database.DB.Collection(reportsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&report)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *MongoChatRepository) ListReports(ctx context.Context, status models.ReportStatus) ([]models.MessageReport, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	cur, err := database.DB.Collection(reportsCollection).Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var reports []models.MessageReport
	if err := cur.All(ctx, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *MongoChatRepository) UpdateReportStatus(ctx context.Context, id string, status models.ReportStatus, notes string) error {
	set := bson.M{"status": status}
	if notes != "" {
		set["moderator_notes"] = notes
	}
	_, err := database.DB.Collection(reportsCollection).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set})
	return err
}
