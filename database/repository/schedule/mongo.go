package scheduleRepo

import (
	"context"
	"fmt"
	"time"

	"detailify/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoScheduleStore keeps one document per weekday in a "working_hours"
// collection.
type MongoScheduleStore struct {
	coll *mongo.Collection
}

func NewMongoScheduleStore(client *mongo.Client, dbName string) *MongoScheduleStore {
	return &MongoScheduleStore{coll: client.Database(dbName).Collection("working_hours")}
}

func (r *MongoScheduleStore) GetRule(ctx context.Context, dayOfWeek int) (*models.WorkingHoursRule, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var rule models.WorkingHoursRule
	err := r.coll.FindOne(ctx, bson.M{"dayOfWeek": dayOfWeek}).Decode(&rule)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNoRule
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch working-hours rule: %w", err)
	}
	return &rule, nil
}

func (r *MongoScheduleStore) GetAll(ctx context.Context) ([]models.WorkingHoursRule, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "dayOfWeek", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch working-hours rules: %w", err)
	}
	defer cursor.Close(ctx)

	var rules []models.WorkingHoursRule
	if err := cursor.All(ctx, &rules); err != nil {
		return nil, fmt.Errorf("failed to decode working-hours rules: %w", err)
	}
	return rules, nil
}

func (r *MongoScheduleStore) Upsert(ctx context.Context, rule models.WorkingHoursRule) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"dayOfWeek": rule.DayOfWeek}
	_, err := r.coll.ReplaceOne(ctx, filter, rule, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert working-hours rule for day %d: %w", rule.DayOfWeek, err)
	}
	return nil
}
