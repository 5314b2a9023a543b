package db

import (
	"context"
	"fmt"
	"time"

	"github.com/propchain/bridge/pkg/db/models"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresClient(url string) (*gorm.DB, error) {
	client, err := gorm.Open(postgres.Open(url), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}
	if err := RunMigrations(client); err != nil {
		return nil, err
	}
	return client, nil
}

func RunMigrations(client *gorm.DB) error {
	return client.AutoMigrate(
		&models.BridgeRequest{},
		&models.BridgeSignature{},
		&models.BridgeTransaction{},
		&models.VerifiedHash{},
		&models.ActiveRequest{},
		&models.BridgedToken{},
		&models.Counter{},
	)
}

func NewMongoClient(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Info().Msg("[Db] [NewMongoClient] connected to MongoDB")
	return client, nil
}
