package contactstore

import (
	"context"
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

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("contacts")}
}

func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_email", Value: 1}, {Key: "created_date", Value: -1}},
			Options: options.Index().SetName("idx_contacts_owner_created"),
		},
		{
			Keys:    bson.D{{Key: "user_email", Value: 1}, {Key: "name_ci", Value: 1}},
			Options: options.Index().SetName("idx_contacts_owner_name"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Create inserts a contact for its owner, stamping ID, CreatedDate and
// the folded name used for case-insensitive search.
func (s *Store) Create(ctx context.Context, c *models.Contact) error {
	c.ID = uuid.NewString()
	c.CreatedDate = time.Now().UTC()
	c.NameCI = text.Fold(c.Name)
	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

// ListByOwner returns the owner's contacts, newest first. An optional
// query narrows by folded-name substring.
func (s *Store) ListByOwner(ctx context.Context, ownerEmail, query string) ([]models.Contact, error) {
	filter := bson.M{"user_email": ownerEmail}
	if query != "" {
		filter["name_ci"] = bson.M{"$regex": regexp.QuoteMeta(text.Fold(query))}
	}
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Contact{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID loads one of the owner's contacts.
func (s *Store) GetByID(ctx context.Context, ownerEmail, id string) (models.Contact, bool, error) {
	var c models.Contact
	err := s.c.FindOne(ctx, bson.M{"id": id, "user_email": ownerEmail}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return models.Contact{}, false, nil
	}
	if err != nil {
		return models.Contact{}, false, err
	}
	return c, true, nil
}

// Update replaces the mutable fields of the owner's contact. ID, owner
// and CreatedDate never change.
func (s *Store) Update(ctx context.Context, ownerEmail, id string, c models.Contact) (bool, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"id": id, "user_email": ownerEmail},
		bson.M{"$set": bson.M{
			"name":    c.Name,
			"name_ci": text.Fold(c.Name),
			"phone":   c.Phone,
			"email":   c.Email,
			"company": c.Company,
			"role":    c.Role,
			"notes":   c.Notes,
			"tags":    c.Tags,
		}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// Delete removes the owner's contact, reporting whether it existed.
func (s *Store) Delete(ctx context.Context, ownerEmail, id string) (bool, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"id": id, "user_email": ownerEmail})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// Count returns the total number of contact documents.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
