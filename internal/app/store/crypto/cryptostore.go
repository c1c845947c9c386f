package cryptostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/emeraldorbit/emeraldhub/internal/domain/models"
)

var (
	// ErrDuplicateWallet is returned when the owner already holds a wallet
	// for the currency.
	ErrDuplicateWallet = errors.New("wallet for this currency already exists")
	errBadTxType       = errors.New(`transaction_type must be "buy"|"sell"|"transfer"`)
)

type Store struct {
	wallets      *mongo.Collection
	transactions *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		wallets:      db.Collection("crypto_wallets"),
		transactions: db.Collection("crypto_transactions"),
	}
}

func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.wallets.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_email", Value: 1}, {Key: "currency", Value: 1}},
		Options: options.Index().SetName("idx_wallets_owner_currency_unique").SetUnique(true),
	})
	if err != nil {
		return err
	}
	_, err = s.transactions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_email", Value: 1}, {Key: "created_date", Value: -1}},
		Options: options.Index().SetName("idx_cryptotx_owner_created"),
	})
	return err
}

// CreateWallet opens a wallet. One wallet per owner per currency.
func (s *Store) CreateWallet(ctx context.Context, w *models.CryptoWallet) error {
	n, err := s.wallets.CountDocuments(ctx, bson.M{"user_email": w.UserEmail, "currency": w.Currency})
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrDuplicateWallet
	}
	w.ID = uuid.NewString()
	w.CreatedDate = time.Now().UTC()
	if _, err := s.wallets.InsertOne(ctx, w); err != nil {
		return fmt.Errorf("insert wallet: %w", err)
	}
	return nil
}

func (s *Store) ListWallets(ctx context.Context, ownerEmail string) ([]models.CryptoWallet, error) {
	cur, err := s.wallets.Find(ctx, bson.M{"user_email": ownerEmail},
		options.Find().SetSort(bson.D{{Key: "currency", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.CryptoWallet{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTransaction records a buy/sell/transfer and adjusts the wallet
// balance for completed buys and sells.
func (s *Store) CreateTransaction(ctx context.Context, tx *models.CryptoTransaction) error {
	switch tx.TransactionType {
	case "buy", "sell", "transfer":
	default:
		return errBadTxType
	}
	if tx.Status == "" {
		tx.Status = "completed"
	}
	tx.ID = uuid.NewString()
	tx.CreatedDate = time.Now().UTC()
	if _, err := s.transactions.InsertOne(ctx, tx); err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	if tx.Status != "completed" {
		return nil
	}
	delta := tx.Amount
	if tx.TransactionType == "sell" {
		delta = -delta
	}
	if tx.TransactionType == "transfer" {
		return nil
	}
	_, err := s.wallets.UpdateOne(ctx,
		bson.M{"user_email": tx.UserEmail, "currency": tx.Currency},
		bson.M{"$inc": bson.M{"balance": delta}})
	if err != nil {
		return fmt.Errorf("adjust wallet balance: %w", err)
	}
	return nil
}

func (s *Store) ListTransactions(ctx context.Context, ownerEmail string, limit int64) ([]models.CryptoTransaction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_date", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.transactions.Find(ctx, bson.M{"user_email": ownerEmail}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.CryptoTransaction{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) CountWallets(ctx context.Context) (int64, error) {
	return s.wallets.CountDocuments(ctx, bson.M{})
}

func (s *Store) CountTransactions(ctx context.Context) (int64, error) {
	return s.transactions.CountDocuments(ctx, bson.M{})
}
