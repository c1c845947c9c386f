package propertystore

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

var errBadStatus = errors.New(`status must be "available"|"pending"|"sold"`)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("properties")}
}

func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_date", Value: -1}},
			Options: options.Index().SetName("idx_properties_status_created"),
		},
		{
			Keys:    bson.D{{Key: "address_ci", Value: 1}},
			Options: options.Index().SetName("idx_properties_address"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

func validStatus(status string) bool {
	switch status {
	case models.PropertyAvailable, models.PropertyPending, models.PropertySold:
		return true
	}
	return false
}

func (s *Store) Create(ctx context.Context, p *models.Property) error {
	if p.Status == "" {
		p.Status = models.PropertyAvailable
	}
	if !validStatus(p.Status) {
		return errBadStatus
	}
	p.ID = uuid.NewString()
	p.CreatedDate = time.Now().UTC()
	p.AddressCI = text.Fold(p.Address)
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("insert property: %w", err)
	}
	return nil
}

// List returns listings newest first. Status and address-substring
// filters are optional.
func (s *Store) List(ctx context.Context, status, addressQuery string) ([]models.Property, error) {
	filter := bson.M{}
	if status != "" {
		if !validStatus(status) {
			return nil, errBadStatus
		}
		filter["status"] = status
	}
	if addressQuery != "" {
		filter["address_ci"] = bson.M{"$regex": regexp.QuoteMeta(text.Fold(addressQuery))}
	}
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Property{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (models.Property, bool, error) {
	var p models.Property
	err := s.c.FindOne(ctx, bson.M{"id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return models.Property{}, false, nil
	}
	if err != nil {
		return models.Property{}, false, err
	}
	return p, true, nil
}

func (s *Store) Update(ctx context.Context, id string, p models.Property) (bool, error) {
	if !validStatus(p.Status) {
		return false, errBadStatus
	}
	res, err := s.c.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{
			"address":       p.Address,
			"address_ci":    text.Fold(p.Address),
			"city":          p.City,
			"state":         p.State,
			"zip_code":      p.ZipCode,
			"property_type": p.PropertyType,
			"bedrooms":      p.Bedrooms,
			"bathrooms":     p.Bathrooms,
			"square_feet":   p.SquareFeet,
			"price":         p.Price,
			"status":        p.Status,
			"description":   p.Description,
			"images":        p.Images,
		}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// SetStatus changes a listing's status.
func (s *Store) SetStatus(ctx context.Context, id, status string) (bool, error) {
	if !validStatus(status) {
		return false, errBadStatus
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
