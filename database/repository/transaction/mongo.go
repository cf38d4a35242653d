package transactionRepo

import (
	"context"
	"fmt"
	"time"

	"detailify/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoTransactionStore persists payment transactions in a "transactions"
// collection.
type MongoTransactionStore struct {
	coll *mongo.Collection
}

func NewMongoTransactionStore(client *mongo.Client, dbName string) *MongoTransactionStore {
	return &MongoTransactionStore{coll: client.Database(dbName).Collection("transactions")}
}

func (r *MongoTransactionStore) Create(ctx context.Context, txn *models.PaymentTransaction) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, txn)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateBooking
	}
	if err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", txn.PaymentID, err)
	}
	return nil
}

func (r *MongoTransactionStore) GetByPaymentID(ctx context.Context, paymentID string) (*models.PaymentTransaction, error) {
	return r.findOne(ctx, bson.M{"paymentId": paymentID})
}

func (r *MongoTransactionStore) GetByBookingID(ctx context.Context, bookingID string) (*models.PaymentTransaction, error) {
	return r.findOne(ctx, bson.M{"bookingId": bookingID})
}

func (r *MongoTransactionStore) findOne(ctx context.Context, filter bson.M) (*models.PaymentTransaction, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var txn models.PaymentTransaction
	err := r.coll.FindOne(ctx, filter).Decode(&txn)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transaction: %w", err)
	}
	return &txn, nil
}

func (r *MongoTransactionStore) Update(ctx context.Context, txn *models.PaymentTransaction) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"paymentId": txn.PaymentID}, txn)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", txn.PaymentID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
