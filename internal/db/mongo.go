package db

import (
	"context"
	"fmt"
	"time"

	"design-studio/backend/internal/logging"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// InitMongo connects to the document store and verifies the connection.
func InitMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		// The driver reconnects on its own; startup continues and /api/health reports the outage.
		logging.Warn("Mongo ping failed at startup", "error", err.Error())
		return client, nil
	}

	logging.Info("Connected to Mongo")
	return client, nil
}
