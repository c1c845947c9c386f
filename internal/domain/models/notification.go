package models

import "time"

// Notification is an in-app notice for a user, read via polling.
type Notification struct {
	ID          string    `bson:"id" json:"id"`
	UserEmail   string    `bson:"user_email" json:"user_email"`
	Title       string    `bson:"title" json:"title"`
	Message     string    `bson:"message,omitempty" json:"message,omitempty"`
	Type        string    `bson:"type,omitempty" json:"type,omitempty"`
	Read        bool      `bson:"read" json:"read"`
	CreatedDate time.Time `bson:"created_date" json:"created_date"`
}
