package models

import "time"

// Contact roles (advisory, not validated beyond non-emptiness).
// client | agent | investor | vendor | other

// Contact is an address-book entry owned by a user.
type Contact struct {
	ID          string    `bson:"id" json:"id"`
	UserEmail   string    `bson:"user_email" json:"user_email"`
	Name        string    `bson:"name" json:"name"`
	NameCI      string    `bson:"name_ci" json:"-"` // lowercase, diacritics-stripped
	Phone       string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Email       string    `bson:"email,omitempty" json:"email,omitempty"`
	Company     string    `bson:"company,omitempty" json:"company,omitempty"`
	Role        string    `bson:"role,omitempty" json:"role,omitempty"`
	Notes       string    `bson:"notes,omitempty" json:"notes,omitempty"`
	Tags        []string  `bson:"tags,omitempty" json:"tags,omitempty"`
	CreatedDate time.Time `bson:"created_date" json:"created_date"`
}
