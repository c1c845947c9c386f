package testutil

import (
	"time"

	"github.com/emeraldorbit/emeraldhub/internal/domain/models"
)

// NewLocalUser builds a local-auth user fixture. The password hash is a
// placeholder; tests that verify passwords should hash their own.
func NewLocalUser(email, name string) models.User {
	hash := "$2a$10$placeholderplaceholderplaceplaceholderplacehold"
	return models.User{
		UserID:       "user_" + email[:min(6, len(email))] + "fixture",
		Email:        email,
		Name:         name,
		PasswordHash: &hash,
		Role:         models.RoleUser,
		AuthType:     models.AuthTypeLocal,
		CreatedAt:    time.Now().UTC(),
	}
}

// NewExternalUser builds a broker-auth user fixture.
func NewExternalUser(email, name string) models.User {
	pic := "https://cdn.example.com/" + name + ".png"
	return models.User{
		UserID:    "user_" + email[:min(6, len(email))] + "fixture",
		Email:     email,
		Name:      name,
		Picture:   &pic,
		Role:      models.RoleUser,
		AuthType:  models.AuthTypeExternal,
		CreatedAt: time.Now().UTC(),
	}
}
