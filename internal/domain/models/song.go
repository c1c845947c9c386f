package models

import "time"

// Song is a track uploaded by a user, optionally listed for sale.
type Song struct {
	ID          string    `bson:"id" json:"id"`
	UserEmail   string    `bson:"user_email" json:"user_email"`
	Title       string    `bson:"title" json:"title"`
	TitleCI     string    `bson:"title_ci" json:"-"`
	Artist      string    `bson:"artist" json:"artist"`
	AudioURL    string    `bson:"audio_url,omitempty" json:"audio_url,omitempty"`
	Genre       string    `bson:"genre,omitempty" json:"genre,omitempty"`
	BPM         int       `bson:"bpm,omitempty" json:"bpm,omitempty"`
	Key         string    `bson:"key,omitempty" json:"key,omitempty"`
	Tags        []string  `bson:"tags,omitempty" json:"tags,omitempty"`
	ForSale     bool      `bson:"for_sale" json:"for_sale"`
	PriceUSD    float64   `bson:"price_usd" json:"price_usd"`
	LicenseType string    `bson:"license_type,omitempty" json:"license_type,omitempty"` // non_exclusive | exclusive
	Plays       int       `bson:"plays" json:"plays"`
	Likes       int       `bson:"likes" json:"likes"`
	Downloads   int       `bson:"downloads" json:"downloads"`
	CreatedDate time.Time `bson:"created_date" json:"created_date"`
}
