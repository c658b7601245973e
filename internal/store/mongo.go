package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/nao1215/hockeyscrape/internal/model"
)

// mongoDisconnectTimeout bounds Close.
const mongoDisconnectTimeout = 10 * time.Second

// MongoStore writes each site collection to a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// OpenMongo connects to the MongoDB server at uri and verifies the
// connection with a ping.
func OpenMongo(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &MongoStore{
		client: client,
		db:     client.Database(database),
	}, nil
}

// InsertBatch appends records as {key: value} documents with one ordered
// InsertMany call.
func (s *MongoStore) InsertBatch(ctx context.Context, site model.Site, records []model.Record) error {
	name, err := collection(site)
	if err != nil {
		return &model.StoreError{Collection: site.String(), Count: len(records), Err: err}
	}
	if len(records) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(records))
	for _, r := range records {
		docs = append(docs, bson.M{r.Key: r.Value})
	}

	opts := options.InsertMany().SetOrdered(true)
	if _, err := s.db.Collection(name).InsertMany(ctx, docs, opts); err != nil {
		return &model.StoreError{Collection: name, Count: len(records), Err: err}
	}
	return nil
}

// Count returns the number of documents in the site's collection.
func (s *MongoStore) Count(ctx context.Context, site model.Site) (int64, error) {
	name, err := collection(site)
	if err != nil {
		return 0, err
	}

	n, err := s.db.Collection(name).CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", name, err)
	}
	return n, nil
}

// Close disconnects from the server.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoDisconnectTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}
