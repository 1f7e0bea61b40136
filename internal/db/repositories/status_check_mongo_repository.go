package repositories

import (
	"context"

	"design-studio/backend/internal/models/entities"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const driverMongo = "mongo"

// StatusCheckMongoRepository stores status checks as documents in a Mongo collection
type StatusCheckMongoRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewStatusCheckMongoRepository creates a repository over an existing collection
func NewStatusCheckMongoRepository(collection *mongo.Collection) *StatusCheckMongoRepository {
	return &StatusCheckMongoRepository{
		client:     collection.Database().Client(),
		collection: collection,
	}
}

func (r *StatusCheckMongoRepository) Driver() string {
	return driverMongo
}

func (r *StatusCheckMongoRepository) Save(ctx context.Context, check entities.StatusCheck) error {
	if _, err := r.collection.InsertOne(ctx, bson.M(check.Document())); err != nil {
		return &StorageError{Driver: driverMongo, Op: "save", Err: err}
	}
	return nil
}

func (r *StatusCheckMongoRepository) ListRecent(ctx context.Context, limit int) ([]entities.StatusCheck, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 0}).
		SetSort(bson.D{{Key: "$natural", Value: -1}}).
		SetLimit(int64(normalizeLimit(limit)))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, &StorageError{Driver: driverMongo, Op: "list_recent", Err: err}
	}

	var raw []bson.M
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, &StorageError{Driver: driverMongo, Op: "list_recent", Err: err}
	}

	docs := make([]entities.Document, len(raw))
	for i, m := range raw {
		docs[i] = entities.Document(m)
	}
	return decodeDocuments(driverMongo, docs)
}

func (r *StatusCheckMongoRepository) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx, readpref.Primary()); err != nil {
		return &StorageError{Driver: driverMongo, Op: "ping", Err: err}
	}
	return nil
}

func (r *StatusCheckMongoRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
