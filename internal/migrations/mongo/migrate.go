// Package mongo ensures the portal's collections, schema validators and
// indexes exist. Running it repeatedly is safe.
package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"condohub/internal/migrations/mongo/validators"
	"condohub/pkg/logger"
)

var (
	BookingsIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "condominium_id", Value: 1},
			{Key: "resource_id", Value: 1},
			{Key: "date", Value: 1},
		}},
		{Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "date", Value: 1},
		}},
	}

	EventsIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "condominium_id", Value: 1},
			{Key: "resource_ids", Value: 1},
			{Key: "date", Value: 1},
		}},
	}

	ResourcesIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "condominium_ids", Value: 1}}},
	}

	NewslettersIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "condominium_id", Value: 1},
			{Key: "created_at", Value: -1},
		}},
	}

	PollsIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "condominium_id", Value: 1},
			{Key: "is_active", Value: 1},
			{Key: "expires_at", Value: 1},
		}},
	}
)

func RunMigration(ctx context.Context, db *mongo.Database, log *logger.Logger) error {
	log.Info("Running Mongo migrations", "database", db.Name())

	collections := map[string]struct {
		Indexes   []mongo.IndexModel
		Validator bson.M
	}{
		"bookings": {
			Indexes:   BookingsIndexes,
			Validator: validators.BookingValidator,
		},
		"events": {
			Indexes:   EventsIndexes,
			Validator: validators.EventValidator,
		},
		"resources": {
			Indexes:   ResourcesIndexes,
			Validator: validators.ResourceValidator,
		},
		"newsletters": {
			Indexes:   NewslettersIndexes,
			Validator: validators.NewsletterValidator,
		},
		"polls": {
			Indexes:   PollsIndexes,
			Validator: validators.PollValidator,
		},
		// Condominium profiles carry caller-chosen ids and free shape; no
		// validator, no extra indexes.
		"condominiums": {},
	}

	for name, def := range collections {
		if err := ensureCollection(ctx, db, name, def.Validator, log); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", name, err)
		}
		if err := ensureIndexes(ctx, db, name, def.Indexes, log); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", name, err)
		}
	}

	log.Info("All migrations applied")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		log.Info("Creating collection", "collection", name)
		opts := options.CreateCollection()
		if validator != nil {
			opts = opts.SetValidator(validator)
		}
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	if validator != nil {
		command := bson.D{
			{Key: "collMod", Value: name},
			{Key: "validator", Value: validator},
		}
		if err := db.RunCommand(ctx, command).Err(); err != nil {
			log.Warn("Failed updating validator", "collection", name, "error", err)
		}
	}

	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel, log *logger.Logger) error {
	if len(models) == 0 {
		return nil
	}

	if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
		return err
	}
	log.Info("Ensured indexes", "collection", name)
	return nil
}
