package storage

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBlobStore persists each sealed blob as a single document's binary
// field, keyed by the store name as the document's _id. A store is always
// one document, never one document per Entry.
type MongoBlobStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoBlobStore connects to uri, pings it, and ensures a unique index
// on _id before returning.
func NewMongoBlobStore(ctx context.Context, uri, dbName, collName string) (*MongoBlobStore, error) {
	if uri == "" {
		return nil, fmt.Errorf("storage: mongo uri is empty")
	}
	cli, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("storage: connect: %w", err)
	}
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := cli.Ping(pctx, nil); err != nil {
		_ = cli.Disconnect(ctx)
		return nil, fmt.Errorf("storage: ping: %w", err)
	}

	coll := cli.Database(dbName).Collection(collName)
	_, _ = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})

	return &MongoBlobStore{client: cli, coll: coll}, nil
}

func (m *MongoBlobStore) Put(ctx context.Context, name string, blob []byte) error {
	if name == "" {
		return fmt.Errorf("storage: empty name")
	}
	_, err := m.coll.UpdateByID(ctx, name, bson.M{
		"$set":         bson.M{"blob": blob, "updated_at": time.Now()},
		"$setOnInsert": bson.M{"created_at": time.Now()},
	}, options.Update().SetUpsert(true))
	return err
}

func (m *MongoBlobStore) Get(ctx context.Context, name string) ([]byte, error) {
	if name == "" {
		return nil, fmt.Errorf("storage: empty name")
	}
	var doc struct {
		Blob []byte `bson:"blob"`
	}
	err := m.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return doc.Blob, err
}

func (m *MongoBlobStore) Delete(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("storage: empty name")
	}
	_, err := m.coll.DeleteOne(ctx, bson.M{"_id": name})
	return err
}

// Close disconnects the underlying mongo client.
func (m *MongoBlobStore) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// MongoCatalog persists CatalogEntry records, one document per store
// name, in a collection distinct from the blobs themselves.
type MongoCatalog struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoCatalog connects to uri and ensures a unique index on name.
func NewMongoCatalog(ctx context.Context, uri, dbName, collName string) (*MongoCatalog, error) {
	if uri == "" {
		return nil, fmt.Errorf("storage: mongo uri is empty")
	}
	cli, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("storage: connect: %w", err)
	}
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := cli.Ping(pctx, nil); err != nil {
		_ = cli.Disconnect(ctx)
		return nil, fmt.Errorf("storage: ping: %w", err)
	}

	coll := cli.Database(dbName).Collection(collName)
	_, _ = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})

	return &MongoCatalog{client: cli, coll: coll}, nil
}

func (m *MongoCatalog) Put(ctx context.Context, entry CatalogEntry) error {
	if entry.Name == "" {
		return fmt.Errorf("storage: empty catalog name")
	}
	_, err := m.coll.UpdateOne(ctx,
		bson.M{"name": entry.Name},
		bson.M{"$set": bson.M{
			"name":      entry.Name,
			"sealed_at": entry.SealedAt,
			"size":      entry.Size,
		}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (m *MongoCatalog) List(ctx context.Context) ([]CatalogEntry, error) {
	cur, err := m.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []CatalogEntry
	for cur.Next(ctx) {
		var e CatalogEntry
		if err := cur.Decode(&e); err == nil {
			out = append(out, e)
		}
	}
	return out, cur.Err()
}

// Close disconnects the underlying mongo client.
func (m *MongoCatalog) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
