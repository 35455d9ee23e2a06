package cartstore

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/makishop/storefront/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type cartDocument struct {
	Profile   string                `bson:"profile"`
	Items     []domain.CartLineItem `bson:"items"`
	UpdatedAt time.Time             `bson:"updated_at"`
}

// MongoStore keeps one snapshot document per shopper profile.
type MongoStore struct {
	collection *mongo.Collection
	profile    string
}

func NewMongoStore(db *mongo.Database, profile string) *MongoStore {
	return &MongoStore{collection: db.Collection("carts"), profile: profile}
}

// ConnectMongo dials mongo with pool and timeout settings suitable for a
// single storefront process.
func ConnectMongo(ctx context.Context, uri, database string) (*mongo.Database, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(10)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client.Database(database), nil
}

func (s *MongoStore) Load(ctx context.Context) ([]domain.CartLineItem, error) {
	var doc cartDocument

	filter := bson.M{"profile": s.profile}
	err := s.collection.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		var decodeErr *bsoncodec.DecodeError
		if errors.As(err, &decodeErr) {
			log.Printf("malformed cart snapshot for profile %s, treating as empty: %v", s.profile, err)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	return doc.Items, nil
}

func (s *MongoStore) Save(ctx context.Context, items []domain.CartLineItem) error {
	if items == nil {
		items = []domain.CartLineItem{}
	}
	doc := cartDocument{
		Profile:   s.profile,
		Items:     items,
		UpdatedAt: time.Now(),
	}

	filter := bson.M{"profile": s.profile}
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)

	if _, err := s.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert cart: %w", err)
	}
	return nil
}

func (s *MongoStore) Append(ctx context.Context, item domain.CartLineItem) error {
	items, err := s.Load(ctx)
	if err != nil {
		return err
	}
	return s.Save(ctx, append(items, item))
}

func (s *MongoStore) Clear(ctx context.Context) error {
	filter := bson.M{"profile": s.profile}
	if _, err := s.collection.DeleteOne(ctx, filter); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
