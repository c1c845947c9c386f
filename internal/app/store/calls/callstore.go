package callstore

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
	return &Store{c: db.Collection("call_history")}
}

func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_email", Value: 1}, {Key: "created_date", Value: -1}},
		Options: options.Index().SetName("idx_calls_owner_created"),
	})
	return err
}

func (s *Store) Create(ctx context.Context, call *models.CallHistory) error {
	call.ID = uuid.NewString()
	call.CreatedDate = time.Now().UTC()
	if call.StartedAt.IsZero() {
		call.StartedAt = call.CreatedDate
	}
	if _, err := s.c.InsertOne(ctx, call); err != nil {
		return fmt.Errorf("insert call record: %w", err)
	}
	return nil
}

// ListByOwner returns the owner's call history, newest first, capped at
// limit when limit > 0.
func (s *Store) ListByOwner(ctx context.Context, ownerEmail string, limit int64) ([]models.CallHistory, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_date", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.c.Find(ctx, bson.M{"user_email": ownerEmail}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.CallHistory{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Complete marks an ongoing call completed, fixing its end time and
// duration. Reports whether the owner's call existed.
func (s *Store) Complete(ctx context.Context, ownerEmail, id string, endedAt time.Time, durationSeconds int) (bool, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"id": id, "user_email": ownerEmail},
		bson.M{"$set": bson.M{
			"status":           "completed",
			"ended_at":         endedAt,
			"duration_seconds": durationSeconds,
		}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
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
