package models

import "time"

// CallHistory records one voice or video call placed or received by a user.
type CallHistory struct {
	ID              string     `bson:"id" json:"id"`
	ContactID       string     `bson:"contact_id,omitempty" json:"contact_id,omitempty"`
	ContactName     string     `bson:"contact_name" json:"contact_name"`
	UserEmail       string     `bson:"user_email" json:"user_email"`
	CallType        string     `bson:"call_type" json:"call_type"`   // voice | video
	Direction       string     `bson:"direction" json:"direction"`   // incoming | outgoing
	Status          string     `bson:"status" json:"status"`         // completed | missed | ongoing
	DurationSeconds int        `bson:"duration_seconds" json:"duration_seconds"`
	StartedAt       time.Time  `bson:"started_at" json:"started_at"`
	EndedAt         *time.Time `bson:"ended_at,omitempty" json:"ended_at,omitempty"`
	CreatedDate     time.Time  `bson:"created_date" json:"created_date"`
}
