package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore keeps each collection as a single document in one Mongo
// collection: {_id: <name>, data: <json>}. ReplaceOne with upsert preserves
// the same full-rewrite semantics as the file backend.
type MongoStore struct {
	coll *mongo.Collection
}

type collectionDoc struct {
	ID   string `bson:"_id"`
	Data string `bson:"data"`
}

func NewMongoStore(uri string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return &MongoStore{coll: client.Database("kedai").Collection("collections")}, nil
}

func (s *MongoStore) Load(ctx context.Context, collection string, out interface{}) error {
	var doc collectionDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": collection}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(doc.Data), out)
}

func (s *MongoStore) Save(ctx context.Context, collection string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	opts := options.Replace().SetUpsert(true)
	_, err = s.coll.ReplaceOne(ctx, bson.M{"_id": collection}, collectionDoc{ID: collection, Data: string(raw)}, opts)
	return err
}
