package workspacestore

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
	workspaces *mongo.Collection
	messages   *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		workspaces: db.Collection("workspaces"),
		messages:   db.Collection("workspace_messages"),
	}
}

func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.workspaces.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "owner_email", Value: 1}},
			Options: options.Index().SetName("idx_workspaces_owner"),
		},
		{
			Keys:    bson.D{{Key: "members.email", Value: 1}},
			Options: options.Index().SetName("idx_workspaces_member"),
		},
	})
	if err != nil {
		return err
	}
	_, err = s.messages.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "workspace_id", Value: 1}, {Key: "created_date", Value: 1}},
		Options: options.Index().SetName("idx_wsmessages_workspace_created"),
	})
	return err
}

func (s *Store) Create(ctx context.Context, w *models.Workspace) error {
	w.ID = uuid.NewString()
	w.CreatedDate = time.Now().UTC()
	if w.Status == "" {
		w.Status = "active"
	}
	if _, err := s.workspaces.InsertOne(ctx, w); err != nil {
		return fmt.Errorf("insert workspace: %w", err)
	}
	return nil
}

// ListForUser returns workspaces the user owns or is a member of,
// newest first.
func (s *Store) ListForUser(ctx context.Context, email string) ([]models.Workspace, error) {
	filter := bson.M{"$or": []bson.M{
		{"owner_email": email},
		{"members.email": email},
	}}
	cur, err := s.workspaces.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Workspace{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (models.Workspace, bool, error) {
	var w models.Workspace
	err := s.workspaces.FindOne(ctx, bson.M{"id": id}).Decode(&w)
	if err == mongo.ErrNoDocuments {
		return models.Workspace{}, false, nil
	}
	if err != nil {
		return models.Workspace{}, false, err
	}
	return w, true, nil
}

// CanAccess reports whether email owns or belongs to the workspace.
func CanAccess(w models.Workspace, email string) bool {
	if w.OwnerEmail == email {
		return true
	}
	for _, m := range w.Members {
		if m.Email == email {
			return true
		}
	}
	return false
}

// AddMember appends a member unless they are already present.
func (s *Store) AddMember(ctx context.Context, id string, member models.WorkspaceMember) (bool, error) {
	res, err := s.workspaces.UpdateOne(ctx,
		bson.M{"id": id, "members.email": bson.M{"$ne": member.Email}},
		bson.M{"$push": bson.M{"members": member}})
	if err != nil {
		return false, err
	}
	if res.MatchedCount > 0 {
		return true, nil
	}
	// Distinguish "already a member" (fine) from "no such workspace".
	n, err := s.workspaces.CountDocuments(ctx, bson.M{"id": id})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Delete removes the workspace and its messages. Only the owner filter
// matches, so members cannot delete.
func (s *Store) Delete(ctx context.Context, ownerEmail, id string) (bool, error) {
	res, err := s.workspaces.DeleteOne(ctx, bson.M{"id": id, "owner_email": ownerEmail})
	if err != nil {
		return false, err
	}
	if res.DeletedCount == 0 {
		return false, nil
	}
	if _, err := s.messages.DeleteMany(ctx, bson.M{"workspace_id": id}); err != nil {
		return true, fmt.Errorf("delete workspace messages: %w", err)
	}
	return true, nil
}

// CreateMessage posts into a workspace. Access is checked by the caller.
func (s *Store) CreateMessage(ctx context.Context, m *models.WorkspaceMessage) error {
	m.ID = uuid.NewString()
	m.CreatedDate = time.Now().UTC()
	if m.MessageType == "" {
		m.MessageType = "text"
	}
	if _, err := s.messages.InsertOne(ctx, m); err != nil {
		return fmt.Errorf("insert workspace message: %w", err)
	}
	return nil
}

// ListMessages returns a workspace's messages oldest first, capped at
// limit when limit > 0. Delivery is polling; clients re-fetch.
func (s *Store) ListMessages(ctx context.Context, workspaceID string, limit int64) ([]models.WorkspaceMessage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_date", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.messages.Find(ctx, bson.M{"workspace_id": workspaceID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.WorkspaceMessage{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.workspaces.CountDocuments(ctx, bson.M{})
}
