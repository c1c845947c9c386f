package notificationstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/emeraldorbit/emeraldhub/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("notifications")}
}

func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_email", Value: 1}, {Key: "read", Value: 1}, {Key: "created_date", Value: -1}},
		Options: options.Index().SetName("idx_notifications_owner_read"),
	})
	return err
}

func (s *Store) Create(ctx context.Context, n *models.Notification) error {
	n.ID = uuid.NewString()
	n.CreatedDate = time.Now().UTC()
	n.Read = false
	if _, err := s.c.InsertOne(ctx, n); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// ListByOwner returns the owner's notifications newest first. When
// unreadOnly is set, read ones are filtered out.
func (s *Store) ListByOwner(ctx context.Context, ownerEmail string, unreadOnly bool) ([]models.Notification, error) {
	filter := bson.M{"user_email": ownerEmail}
	if unreadOnly {
		filter["read"] = false
	}
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Notification{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkRead flags one of the owner's notifications as read, reporting
// whether it existed.
func (s *Store) MarkRead(ctx context.Context, ownerEmail, id string) (bool, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"id": id, "user_email": ownerEmail},
		bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// MarkAllRead flags every unread notification the owner has.
func (s *Store) MarkAllRead(ctx context.Context, ownerEmail string) (int64, error) {
	res, err := s.c.UpdateMany(ctx,
		bson.M{"user_email": ownerEmail, "read": false},
		bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (s *Store) Delete(ctx context.Context, ownerEmail, id string) (bool, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"id": id, "user_email": ownerEmail})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
