package userstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/emeraldorbit/emeraldhub/internal/app/system/normalize"
	"github.com/emeraldorbit/emeraldhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrDuplicateEmail is returned when the email is already registered.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	errBadAuthType    = errors.New(`auth_type must be "local"|"external"`)
	errBadRole        = errors.New(`role must be "user"|"admin"`)
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// EnsureIndexes creates the unique email index and the user_id lookup index.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("idx_users_email_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("idx_users_user_id"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// NewUserID mints a public user identifier. It is opaque and unrelated
// to the Mongo _id.
func NewUserID() string {
	return "user_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// Create inserts a new user. It stamps UserID and CreatedAt when unset
// and normalizes the email. The unique index is the source of truth for
// duplicates; racing registrations lose with ErrDuplicateEmail.
func (s *Store) Create(ctx context.Context, u *models.User) error {
	switch u.AuthType {
	case models.AuthTypeLocal, models.AuthTypeExternal:
	default:
		return errBadAuthType
	}
	switch u.Role {
	case "":
		u.Role = models.RoleUser
	case models.RoleUser, models.RoleAdmin:
	default:
		return errBadRole
	}
	if u.UserID == "" {
		u.UserID = NewUserID()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	u.Email = normalize.Email(u.Email)

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByEmail looks up a user by normalized email.
func (s *Store) GetByEmail(ctx context.Context, email string) (models.User, bool, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return models.User{}, false, nil
	}
	if err != nil {
		return models.User{}, false, err
	}
	return u, true, nil
}

// GetByUserID loads a user by its public identifier.
func (s *Store) GetByUserID(ctx context.Context, userID string) (models.User, bool, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"user_id": userID}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return models.User{}, false, nil
	}
	if err != nil {
		return models.User{}, false, err
	}
	return u, true, nil
}

// UpsertExternal reconciles a broker identity with the users collection.
// A new account is created with auth_type external; an existing account
// only has its display fields refreshed. Email, role, auth_type and any
// password hash are never touched on the update path, so a local account
// signing in through the broker keeps its password.
func (s *Store) UpsertExternal(ctx context.Context, email, name string, picture *string) (models.User, error) {
	email = normalize.Email(email)

	existing, found, err := s.GetByEmail(ctx, email)
	if err != nil {
		return models.User{}, err
	}
	if found {
		update := bson.M{"name": name}
		if picture != nil {
			update["picture"] = picture
		}
		if _, err := s.c.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": update}); err != nil {
			return models.User{}, fmt.Errorf("refresh external user: %w", err)
		}
		existing.Name = name
		if picture != nil {
			existing.Picture = picture
		}
		return existing, nil
	}

	u := models.User{
		UserID:    NewUserID(),
		Email:     email,
		Name:      name,
		Picture:   picture,
		Role:      models.RoleUser,
		AuthType:  models.AuthTypeExternal,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			// Lost a race with a concurrent exchange; the row is there now.
			u2, _, err2 := s.GetByEmail(ctx, email)
			if err2 != nil {
				return models.User{}, err2
			}
			return u2, nil
		}
		return models.User{}, fmt.Errorf("insert external user: %w", err)
	}
	return u, nil
}

// ListAll returns every account, newest first, with password hashes
// projected out.
func (s *Store) ListAll(ctx context.Context) ([]models.User, error) {
	opts := options.Find().
		SetProjection(bson.M{"password_hash": 0}).
		SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Count returns the total number of accounts.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

// CountByAuthType returns the number of accounts with the given auth type.
func (s *Store) CountByAuthType(ctx context.Context, authType string) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"auth_type": authType})
}

// EnsureAdminRole promotes the account with the given email to admin.
// It reports whether an account was found.
func (s *Store) EnsureAdminRole(ctx context.Context, email string) (bool, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"email": normalize.Email(email)},
		bson.M{"$set": bson.M{"role": models.RoleAdmin}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}
