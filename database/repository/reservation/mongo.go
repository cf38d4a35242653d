package reservationRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoReservationStore persists slot usage in a "reservations" collection,
// one document per (date, startTime) pair.
type MongoReservationStore struct {
	coll *mongo.Collection
}

func NewMongoReservationStore(client *mongo.Client, dbName string) *MongoReservationStore {
	return &MongoReservationStore{coll: client.Database(dbName).Collection("reservations")}
}

type reservationDoc struct {
	Date      string `bson:"date"`
	StartTime string `bson:"startTime"`
	Count     int    `bson:"count"`
}

func (r *MongoReservationStore) CountBookings(ctx context.Context, date, startTime string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc reservationDoc
	err := r.coll.FindOne(ctx, bson.M{"date": date, "startTime": startTime}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to fetch reservation count: %w", err)
	}
	return doc.Count, nil
}

func (r *MongoReservationStore) CountsForDay(ctx context.Context, date string) (map[string]int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"date": date})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reservations for %s: %w", date, err)
	}
	defer cursor.Close(ctx)

	counts := make(map[string]int)
	for cursor.Next(ctx) {
		var doc reservationDoc
		if err := cursor.Decode(&doc); err != nil {
			continue
		}
		counts[doc.StartTime] = doc.Count
	}
	return counts, cursor.Err()
}

// Reserve performs the read-count-and-reserve step as a single conditional
// update. The filter only matches a document whose count is below capacity;
// when no document exists yet the upsert inserts one with count 1. If the
// slot is full the filter matches nothing and the upsert collides with the
// unique (date, startTime) index, which we report as ErrSlotFull.
func (r *MongoReservationStore) Reserve(ctx context.Context, date, startTime string, capacity int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"date":      date,
		"startTime": startTime,
		"count":     bson.M{"$lt": capacity},
	}
	update := bson.M{
		"$inc":         bson.M{"count": 1},
		"$setOnInsert": bson.M{"date": date, "startTime": startTime},
	}

	_, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if mongo.IsDuplicateKeyError(err) {
		return ErrSlotFull
	}
	if err != nil {
		return fmt.Errorf("failed to reserve slot %s %s: %w", date, startTime, err)
	}
	return nil
}

func (r *MongoReservationStore) Release(ctx context.Context, date, startTime string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"date": date, "startTime": startTime, "count": bson.M{"$gt": 0}}
	_, err := r.coll.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"count": -1}})
	if err != nil {
		return fmt.Errorf("failed to release slot %s %s: %w", date, startTime, err)
	}
	return nil
}
