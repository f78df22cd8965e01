package main

import (
	"context"
	"time"

	mongoMigration "condohub/internal/migrations/mongo"
	"condohub/pkg/config"
	"condohub/pkg/store/mongostore"

	"github.com/joho/godotenv"
)

const JobName = "condohub-migrate"

func main() {
	_ = godotenv.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	cfg := config.Load(JobName)
	cfg.Log.Info("Starting Mongo migration job")

	st, err := mongostore.Connect(cfg.Log, mongostore.Config{
		URI:          cfg.MongoURI,
		Database:     cfg.MongoDatabaseName,
		ConnTimeout:  cfg.MongoConnTimeout,
		ReadTimeout:  cfg.MongoReadTimeout,
		WriteTimeout: cfg.MongoWriteTimeout,
	})
	if err != nil {
		cfg.Log.Fatal("Failed to connect to MongoDB", "error", err)
	}
	defer func() {
		if err := st.Disconnect(context.Background()); err != nil {
			cfg.Log.Error("Failed to disconnect from MongoDB", "error", err)
		}
	}()

	if err := mongoMigration.RunMigration(ctx, st.Database(), cfg.Log); err != nil {
		cfg.Log.Fatal("Migration failed", "error", err)
	}

	cfg.Log.Info("Migration completed successfully")
}
