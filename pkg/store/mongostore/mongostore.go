package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"condohub/pkg/logger"
	"condohub/pkg/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store implements store.Store on top of a MongoDB database. Each table maps
// to a collection; generated ids are ObjectID hex strings unless a caller
// upserted its own id (condominium profiles use the identity provider's uid).
type Store struct {
	client       *mongo.Client
	db           *mongo.Database
	readTimeout  time.Duration
	writeTimeout time.Duration
}

type Config struct {
	URI          string
	Database     string
	ConnTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func Connect(log *logger.Logger, cfg Config) (*Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Info("Successfully connected to MongoDB", "database", cfg.Database)
	return &Store{
		client:       client,
		db:           client.Database(cfg.Database),
		readTimeout:  cfg.ReadTimeout,
		writeTimeout: cfg.WriteTimeout,
	}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Store) Disconnect(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Database exposes the underlying handle for the migration job.
func (s *Store) Database() *mongo.Database {
	return s.db
}

func (s *Store) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (s *Store) ReadOne(ctx context.Context, table, id string) (store.Record, error) {
	ctx, cancel := s.withTimeout(ctx, s.readTimeout)
	defer cancel()

	var doc bson.M
	err := s.db.Collection(table).FindOne(ctx, bson.M{"_id": docID(id)}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read %s/%s: %w", table, id, err)
	}

	return toRecord(doc), nil
}

func (s *Store) ReadAll(ctx context.Context, table string, filters []store.Filter) ([]store.Record, error) {
	ctx, cancel := s.withTimeout(ctx, s.readTimeout)
	defer cancel()

	cursor, err := s.db.Collection(table).Find(ctx, toQuery(filters))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode %s records: %w", table, err)
	}

	records := make([]store.Record, 0, len(docs))
	for _, doc := range docs {
		records = append(records, toRecord(doc))
	}
	return records, nil
}

func (s *Store) Create(ctx context.Context, table string, payload store.Record) (string, error) {
	ctx, cancel := s.withTimeout(ctx, s.writeTimeout)
	defer cancel()

	doc := bson.M{}
	for k, v := range payload {
		if k == "id" {
			continue
		}
		doc[k] = v
	}

	result, err := s.db.Collection(table).InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to create %s record: %w", table, err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return fmt.Sprint(result.InsertedID), nil
}

func (s *Store) Update(ctx context.Context, table, id string, partial store.Record) error {
	ctx, cancel := s.withTimeout(ctx, s.writeTimeout)
	defer cancel()

	result, err := s.db.Collection(table).UpdateOne(ctx,
		bson.M{"_id": docID(id)},
		bson.M{"$set": bson.M(partial)},
	)
	if err != nil {
		return fmt.Errorf("failed to update %s/%s: %w", table, id, err)
	}
	if result.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) Upsert(ctx context.Context, table, id string, payload store.Record) error {
	ctx, cancel := s.withTimeout(ctx, s.writeTimeout)
	defer cancel()

	_, err := s.db.Collection(table).UpdateOne(ctx,
		bson.M{"_id": docID(id)},
		bson.M{"$set": bson.M(payload)},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert %s/%s: %w", table, id, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, table, id string) error {
	ctx, cancel := s.withTimeout(ctx, s.writeTimeout)
	defer cancel()

	result, err := s.db.Collection(table).DeleteOne(ctx, bson.M{"_id": docID(id)})
	if err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", table, id, err)
	}
	if result.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// docID accepts both generated ObjectID hex ids and caller-chosen string ids.
func docID(id string) any {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return oid
	}
	return id
}

func toQuery(filters []store.Filter) bson.M {
	if len(filters) == 0 {
		return bson.M{}
	}

	clauses := make([]bson.M, 0, len(filters))
	for _, f := range filters {
		switch f.Op {
		case store.OpEqual, store.OpArrayContains:
			// Mongo matches array fields element-wise, so array-contains is
			// plain equality on the array field.
			clauses = append(clauses, bson.M{f.Field: f.Value})
		case store.OpGreater:
			clauses = append(clauses, bson.M{f.Field: bson.M{"$gt": f.Value}})
		case store.OpGreaterOrEqual:
			clauses = append(clauses, bson.M{f.Field: bson.M{"$gte": f.Value}})
		case store.OpLess:
			clauses = append(clauses, bson.M{f.Field: bson.M{"$lt": f.Value}})
		case store.OpLessOrEqual:
			clauses = append(clauses, bson.M{f.Field: bson.M{"$lte": f.Value}})
		}
	}

	if len(clauses) == 1 {
		return clauses[0]
	}
	return bson.M{"$and": clauses}
}

func toRecord(doc bson.M) store.Record {
	rec := store.Record{}
	for k, v := range doc {
		if k == "_id" {
			rec["id"] = idString(v)
			continue
		}
		rec[k] = normalize(v)
	}
	return rec
}

func idString(v any) string {
	if oid, ok := v.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprint(v)
}

func normalize(v any) any {
	switch value := v.(type) {
	case primitive.ObjectID:
		return value.Hex()
	case primitive.DateTime:
		return value.Time().UTC()
	case primitive.A:
		items := make([]any, 0, len(value))
		for _, item := range value {
			items = append(items, normalize(item))
		}
		return items
	case bson.M:
		nested := map[string]any{}
		for k, item := range value {
			nested[k] = normalize(item)
		}
		return nested
	default:
		return v
	}
}
