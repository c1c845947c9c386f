package songstore

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/emeraldorbit/emeraldhub/internal/domain/models"
)

// Counter fields Increment accepts.
var counterFields = map[string]struct{}{
	"plays":     {},
	"likes":     {},
	"downloads": {},
}

var errBadCounter = errors.New(`counter must be "plays"|"likes"|"downloads"`)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("songs")}
}

func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_email", Value: 1}, {Key: "created_date", Value: -1}},
			Options: options.Index().SetName("idx_songs_owner_created"),
		},
		{
			Keys:    bson.D{{Key: "title_ci", Value: 1}},
			Options: options.Index().SetName("idx_songs_title"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

func (s *Store) Create(ctx context.Context, song *models.Song) error {
	song.ID = uuid.NewString()
	song.CreatedDate = time.Now().UTC()
	song.TitleCI = text.Fold(song.Title)
	if _, err := s.c.InsertOne(ctx, song); err != nil {
		return fmt.Errorf("insert song: %w", err)
	}
	return nil
}

// ListByOwner returns the owner's songs, newest first, optionally
// narrowed by folded-title substring.
func (s *Store) ListByOwner(ctx context.Context, ownerEmail, query string) ([]models.Song, error) {
	filter := bson.M{"user_email": ownerEmail}
	if query != "" {
		filter["title_ci"] = bson.M{"$regex": regexp.QuoteMeta(text.Fold(query))}
	}
	return s.find(ctx, filter)
}

// ListForSale returns every song currently listed for sale, platform-wide.
func (s *Store) ListForSale(ctx context.Context) ([]models.Song, error) {
	return s.find(ctx, bson.M{"for_sale": true})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Song, error) {
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Song{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (models.Song, bool, error) {
	var song models.Song
	err := s.c.FindOne(ctx, bson.M{"id": id}).Decode(&song)
	if err == mongo.ErrNoDocuments {
		return models.Song{}, false, nil
	}
	if err != nil {
		return models.Song{}, false, err
	}
	return song, true, nil
}

func (s *Store) Update(ctx context.Context, ownerEmail, id string, song models.Song) (bool, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"id": id, "user_email": ownerEmail},
		bson.M{"$set": bson.M{
			"title":        song.Title,
			"title_ci":     text.Fold(song.Title),
			"artist":       song.Artist,
			"audio_url":    song.AudioURL,
			"genre":        song.Genre,
			"bpm":          song.BPM,
			"key":          song.Key,
			"tags":         song.Tags,
			"for_sale":     song.ForSale,
			"price_usd":    song.PriceUSD,
			"license_type": song.LicenseType,
		}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// Increment bumps one of the engagement counters. Counters are
// platform-wide: any signed-in listener can play a song, so there is no
// owner filter.
func (s *Store) Increment(ctx context.Context, id, counter string) (bool, error) {
	if _, ok := counterFields[counter]; !ok {
		return false, errBadCounter
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$inc": bson.M{counter: 1}})
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
