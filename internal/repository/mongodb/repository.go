package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dogarmed/storefront/internal/service/handoff"
)

// HandoffRepository implements handoff.Repository on MongoDB so stashed
// payloads survive a storefront restart mid-navigation.
type HandoffRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
}

// NewHandoffRepository connects to MongoDB and ensures the TTL index that
// expires abandoned handoff entries.
func NewHandoffRepository(ctx context.Context, uri, dbName string, ttl time.Duration) (*HandoffRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	repo := &HandoffRepository{
		client:   client,
		dbName:   dbName,
		collName: "handoff_entries",
	}

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "created_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(int32(ttl.Seconds())),
	}
	if _, err := repo.collection().Indexes().CreateOne(ctx, indexModel); err != nil {
		return nil, fmt.Errorf("failed to ensure handoff ttl index: %w", err)
	}

	return repo, nil
}

func (r *HandoffRepository) collection() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(r.collName)
}

// Put stores a handoff entry.
func (r *HandoffRepository) Put(ctx context.Context, entry handoff.Entry) error {
	if _, err := r.collection().InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to insert handoff entry: %w", err)
	}
	return nil
}

// Take atomically fetches and deletes the entry for key, giving the store its
// read-once behavior.
func (r *HandoffRepository) Take(ctx context.Context, key string) (*handoff.Entry, error) {
	var entry handoff.Entry
	err := r.collection().FindOneAndDelete(ctx, bson.M{"key": key}).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, handoff.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to take handoff entry: %w", err)
	}
	return &entry, nil
}

// Close closes the MongoDB connection.
func (r *HandoffRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
