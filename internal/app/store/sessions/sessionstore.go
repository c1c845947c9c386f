package sessionstore

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/emeraldorbit/emeraldhub/internal/domain/models"
)

const (
	// TokenLength is the random token size in bytes (64 hex chars on the wire).
	TokenLength = 32
	// DefaultTTL is how long a session lives when no TTL is configured.
	DefaultTTL = 7 * 24 * time.Hour
)

// Store manages bearer sessions in the user_sessions collection.
type Store struct {
	c   *mongo.Collection
	ttl time.Duration
}

// New creates a Store with the given session lifetime. Zero or negative
// falls back to DefaultTTL.
func New(db *mongo.Database, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{c: db.Collection("user_sessions"), ttl: ttl}
}

// TTL returns the configured session lifetime.
func (s *Store) TTL() time.Duration { return s.ttl }

// EnsureIndexes creates the token lookup index, the TTL reaper index and
// the per-user index.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "session_token", Value: 1}},
			Options: options.Index().SetName("idx_sessions_token_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetName("idx_sessions_expires_ttl").SetExpireAfterSeconds(0),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("idx_sessions_user"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Create issues a fresh session for the user. The expiry is absolute:
// issuance time plus the configured TTL, never extended afterwards.
func (s *Store) Create(ctx context.Context, userID string) (models.Session, error) {
	now := time.Now().UTC()
	sess := models.Session{
		Token:     generateToken(),
		UserID:    userID,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	if _, err := s.c.InsertOne(ctx, sess); err != nil {
		return models.Session{}, fmt.Errorf("insert session: %w", err)
	}
	return sess, nil
}

// GetByToken loads a session by its token. Expiry is NOT filtered here;
// the caller applies the clock check so an expired-but-unreaped document
// is still observable (and deletable).
//
// Documents written by earlier revisions stored expires_at as an ISO
// string, sometimes without a zone. Those decode through rawSession and
// are normalized to UTC instants so the clock check stays honest.
func (s *Store) GetByToken(ctx context.Context, token string) (models.Session, bool, error) {
	var raw rawSession
	err := s.c.FindOne(ctx, bson.M{"session_token": token}).Decode(&raw)
	if err == mongo.ErrNoDocuments {
		return models.Session{}, false, nil
	}
	if err != nil {
		return models.Session{}, false, err
	}
	sess, err := raw.normalize()
	if err != nil {
		return models.Session{}, false, fmt.Errorf("session %s: %w", token[:min(8, len(token))], err)
	}
	return sess, true, nil
}

// Delete removes the session for the given token. Deleting an unknown
// token is not an error; logout is idempotent.
func (s *Store) Delete(ctx context.Context, token string) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"session_token": token})
	return err
}

// DeleteByUser revokes every session the user holds.
func (s *Store) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteExpired reaps sessions whose expiry is at or before now. It
// backs up the TTL index, which Mongo only runs about once a minute.
func (s *Store) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lte": now}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Count returns the number of session documents, expired or not.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

// CountActive returns the number of sessions still live at now.
func (s *Store) CountActive(ctx context.Context, now time.Time) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"expires_at": bson.M{"$gt": now}})
}

// rawSession tolerates legacy expires_at encodings.
type rawSession struct {
	Token     string        `bson:"session_token"`
	UserID    string        `bson:"user_id"`
	ExpiresAt bson.RawValue `bson:"expires_at"`
	CreatedAt time.Time     `bson:"created_at"`
}

func (r rawSession) normalize() (models.Session, error) {
	exp, err := decodeTimestamp(r.ExpiresAt)
	if err != nil {
		return models.Session{}, fmt.Errorf("expires_at: %w", err)
	}
	return models.Session{
		Token:     r.Token,
		UserID:    r.UserID,
		ExpiresAt: exp,
		CreatedAt: r.CreatedAt.UTC(),
	}, nil
}

// isoLayouts are tried in order for string-encoded timestamps. The
// zoneless layouts cover naive ISO strings, which are read as UTC.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

func decodeTimestamp(rv bson.RawValue) (time.Time, error) {
	switch rv.Type {
	case bsontype.DateTime:
		return rv.Time().UTC(), nil
	case bsontype.String:
		s := rv.StringValue()
		for _, layout := range isoLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC(), nil
			}
		}
		return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
	default:
		return time.Time{}, fmt.Errorf("unexpected bson type %s", rv.Type)
	}
}

// generateToken returns a cryptographically random hex token. Panics if
// the system RNG fails.
func generateToken() string {
	b := make([]byte, TokenLength)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand.Read failed: " + err.Error())
	}
	return hex.EncodeToString(b)
}
