package substore

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
	return &Store{c: db.Collection("subscriptions")}
}

func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_email", Value: 1}, {Key: "created_date", Value: -1}},
		Options: options.Index().SetName("idx_subs_owner_created"),
	})
	return err
}

func (s *Store) Create(ctx context.Context, sub *models.Subscription) error {
	sub.ID = uuid.NewString()
	sub.CreatedDate = time.Now().UTC()
	if sub.StartedAt.IsZero() {
		sub.StartedAt = sub.CreatedDate
	}
	if sub.Status == "" {
		sub.Status = "active"
	}
	if _, err := s.c.InsertOne(ctx, sub); err != nil {
		return fmt.Errorf("insert subscription: %w", err)
	}
	return nil
}

func (s *Store) ListByOwner(ctx context.Context, ownerEmail string) ([]models.Subscription, error) {
	cur, err := s.c.Find(ctx, bson.M{"user_email": ownerEmail},
		options.Find().SetSort(bson.D{{Key: "created_date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Subscription{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetActive returns the owner's current active subscription, if any.
func (s *Store) GetActive(ctx context.Context, ownerEmail string) (models.Subscription, bool, error) {
	var sub models.Subscription
	err := s.c.FindOne(ctx,
		bson.M{"user_email": ownerEmail, "status": "active"},
		options.FindOne().SetSort(bson.D{{Key: "created_date", Value: -1}})).Decode(&sub)
	if err == mongo.ErrNoDocuments {
		return models.Subscription{}, false, nil
	}
	if err != nil {
		return models.Subscription{}, false, err
	}
	return sub, true, nil
}

// Cancel marks the owner's subscription cancelled, reporting whether it
// existed.
func (s *Store) Cancel(ctx context.Context, ownerEmail, id string) (bool, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"id": id, "user_email": ownerEmail},
		bson.M{"$set": bson.M{"status": "cancelled"}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
