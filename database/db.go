package database

import (
	"context"
	"time"

	"foodiespot/config"
	"foodiespot/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoClient is the shared client behind the mongo-backed repositories.
// Only populated when STORAGE_BACKEND is "mongo"; the file backend never
// touches it.
var MongoClient *mongo.Client

// InitDB connects to MongoDB at DATABASE_URL and verifies the connection
// with a ping. Failure is fatal: the catalog and ledger cannot serve
// without their store.
func InitDB() {
	logger := utils.GetLogger()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.AppConfig.DatabaseURL))
	if err != nil {
		logger.Sugar().Fatalf("database: failed to connect to MongoDB: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		logger.Sugar().Fatalf("database: failed to ping MongoDB: %v", err)
	}

	MongoClient = client
	logger.Info("database: connected to MongoDB")
}
