package models

import "time"

// Subscription is a user's plan on the platform.
type Subscription struct {
	ID           string     `bson:"id" json:"id"`
	UserEmail    string     `bson:"user_email" json:"user_email"`
	Tier         string     `bson:"tier" json:"tier"`     // free | premium | enterprise | elite
	Status       string     `bson:"status" json:"status"` // active | cancelled | expired
	MonthlyPrice float64    `bson:"monthly_price" json:"monthly_price"`
	StartedAt    time.Time  `bson:"started_at" json:"started_at"`
	ExpiresAt    *time.Time `bson:"expires_at,omitempty" json:"expires_at,omitempty"`
	Features     []string   `bson:"features,omitempty" json:"features,omitempty"`
	CreatedDate  time.Time  `bson:"created_date" json:"created_date"`
}
