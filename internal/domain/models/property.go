package models

import "time"

// Property statuses.
const (
	PropertyAvailable = "available"
	PropertyPending   = "pending"
	PropertySold      = "sold"
)

// Property is a real-estate listing. Listings are platform-wide rather than
// owner-scoped; list queries filter by status only.
type Property struct {
	ID           string    `bson:"id" json:"id"`
	Address      string    `bson:"address" json:"address"`
	AddressCI    string    `bson:"address_ci" json:"-"`
	City         string    `bson:"city" json:"city"`
	State        string    `bson:"state" json:"state"`
	ZipCode      string    `bson:"zip_code" json:"zip_code"`
	PropertyType string    `bson:"property_type" json:"property_type"` // residential | commercial | land
	Bedrooms     int       `bson:"bedrooms,omitempty" json:"bedrooms,omitempty"`
	Bathrooms    float64   `bson:"bathrooms,omitempty" json:"bathrooms,omitempty"`
	SquareFeet   int       `bson:"square_feet,omitempty" json:"square_feet,omitempty"`
	Price        float64   `bson:"price,omitempty" json:"price,omitempty"`
	Status       string    `bson:"status" json:"status"`
	Description  string    `bson:"description,omitempty" json:"description,omitempty"`
	Images       []string  `bson:"images,omitempty" json:"images,omitempty"`
	CreatedDate  time.Time `bson:"created_date" json:"created_date"`
}
