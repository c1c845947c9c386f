package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"

	callstore "github.com/emeraldorbit/emeraldhub/internal/app/store/calls"
	contactstore "github.com/emeraldorbit/emeraldhub/internal/app/store/contacts"
	cryptostore "github.com/emeraldorbit/emeraldhub/internal/app/store/crypto"
	notificationstore "github.com/emeraldorbit/emeraldhub/internal/app/store/notifications"
	propertystore "github.com/emeraldorbit/emeraldhub/internal/app/store/properties"
	sessionstore "github.com/emeraldorbit/emeraldhub/internal/app/store/sessions"
	songstore "github.com/emeraldorbit/emeraldhub/internal/app/store/songs"
	statusstore "github.com/emeraldorbit/emeraldhub/internal/app/store/status"
	substore "github.com/emeraldorbit/emeraldhub/internal/app/store/subscriptions"
	userstore "github.com/emeraldorbit/emeraldhub/internal/app/store/users"
	workspacestore "github.com/emeraldorbit/emeraldhub/internal/app/store/workspaces"
)

/*
EnsureAll is called at startup. Each store's EnsureIndexes is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(name string, fn func(context.Context) error) {
		if err := fn(ctx); err != nil {
			problems = append(problems, name+": "+err.Error())
		}
	}

	ensure("users", userstore.New(db).EnsureIndexes)
	ensure("user_sessions", sessionstore.New(db, 0).EnsureIndexes)
	ensure("contacts", contactstore.New(db).EnsureIndexes)
	ensure("call_history", callstore.New(db).EnsureIndexes)
	ensure("songs", songstore.New(db).EnsureIndexes)
	ensure("properties", propertystore.New(db).EnsureIndexes)
	ensure("subscriptions", substore.New(db).EnsureIndexes)
	ensure("workspaces", workspacestore.New(db).EnsureIndexes)
	ensure("notifications", notificationstore.New(db).EnsureIndexes)
	ensure("crypto", cryptostore.New(db).EnsureIndexes)
	ensure("status_checks", statusstore.New(db).EnsureIndexes)

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}
