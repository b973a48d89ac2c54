package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/julianstephens/mindfulpath/internal/constants"
)

const mongoCollection = "session_blobs"

type mongoBlob struct {
	Key       string    `bson:"_id"`
	Value     []byte    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoStore keeps one document per key. The database name comes from the
// URI path and defaults to the application name.
type MongoStore struct {
	uri        string
	client     *mongo.Client
	collection *mongo.Collection
}

func NewMongoStore(uri string) *MongoStore {
	return &MongoStore{uri: uri}
}

func mongoDatabase(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return constants.AppName
	}
	if name := strings.Trim(u.Path, "/"); name != "" {
		return name
	}
	return constants.AppName
}

func (s *MongoStore) Init() error {
	return s.Load()
}

func (s *MongoStore) Load() error {
	if s.client != nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(s.uri))
	if err != nil {
		return fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return fmt.Errorf("failed to ping mongodb: %w", err)
	}

	s.client = client
	s.collection = client.Database(mongoDatabase(s.uri)).Collection(mongoCollection)
	return nil
}

func (s *MongoStore) Close() error {
	if s.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) Get(ctx context.Context, key string) ([]byte, error) {
	if s.collection == nil {
		return nil, ErrNotInitialized
	}

	var blob mongoBlob
	err := s.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&blob)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return blob.Value, nil
}

func (s *MongoStore) Set(ctx context.Context, key string, value []byte) error {
	if s.collection == nil {
		return ErrNotInitialized
	}

	blob := mongoBlob{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	_, err := s.collection.ReplaceOne(ctx, bson.M{"_id": key}, blob, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, key string) error {
	if s.collection == nil {
		return ErrNotInitialized
	}

	if _, err := s.collection.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

func (s *MongoStore) Location() string {
	return RedactDSN(s.uri)
}
