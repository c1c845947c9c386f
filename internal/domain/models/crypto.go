package models

import "time"

// CryptoWallet tracks a user's balance in one currency.
type CryptoWallet struct {
	ID            string    `bson:"id" json:"id"`
	UserEmail     string    `bson:"user_email" json:"user_email"`
	Currency      string    `bson:"currency" json:"currency"` // BTC, ETH, USDT, ...
	Balance       float64   `bson:"balance" json:"balance"`
	WalletAddress string    `bson:"wallet_address,omitempty" json:"wallet_address,omitempty"`
	CreatedDate   time.Time `bson:"created_date" json:"created_date"`
}

// CryptoTransaction is a buy/sell/transfer record.
type CryptoTransaction struct {
	ID              string    `bson:"id" json:"id"`
	UserEmail       string    `bson:"user_email" json:"user_email"`
	TransactionType string    `bson:"transaction_type" json:"transaction_type"` // buy | sell | transfer
	Currency        string    `bson:"currency" json:"currency"`
	Amount          float64   `bson:"amount" json:"amount"`
	PriceUSD        float64   `bson:"price_usd" json:"price_usd"`
	Status          string    `bson:"status" json:"status"` // pending | completed | failed
	TransactionHash string    `bson:"transaction_hash,omitempty" json:"transaction_hash,omitempty"`
	CreatedDate     time.Time `bson:"created_date" json:"created_date"`
}
