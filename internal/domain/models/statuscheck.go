package models

import "time"

// StatusCheck is a client liveness ping recorded for monitoring.
type StatusCheck struct {
	ID         string    `bson:"id" json:"id"`
	ClientName string    `bson:"client_name" json:"client_name"`
	Timestamp  time.Time `bson:"timestamp" json:"timestamp"`
}
