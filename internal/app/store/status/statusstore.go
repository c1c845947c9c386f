package statusstore

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
	return &Store{c: db.Collection("status_checks")}
}

func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "timestamp", Value: -1}},
		Options: options.Index().SetName("idx_status_timestamp"),
	})
	return err
}

func (s *Store) Create(ctx context.Context, check *models.StatusCheck) error {
	check.ID = uuid.NewString()
	check.Timestamp = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, check); err != nil {
		return fmt.Errorf("insert status check: %w", err)
	}
	return nil
}

// List returns recent checks, newest first, capped at limit (default 1000).
func (s *Store) List(ctx context.Context, limit int64) ([]models.StatusCheck, error) {
	if limit <= 0 {
		limit = 1000
	}
	cur, err := s.c.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}).SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.StatusCheck{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
