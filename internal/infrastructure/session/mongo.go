package session

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	mongoTimeout          = 10 * time.Second
	collectionDeviceState = "device_state"
)

// MongoConfig captures the minimal settings for the mongo session backend.
type MongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// DialMongo establishes a client, verifies connectivity with a ping, and
// returns the client together with the selected database.
func DialMongo(ctx context.Context, cfg MongoConfig) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = mongoTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI).SetAppName("marketctl"))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}

type mongoEntry struct {
	ID        string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoKV stores one document per entry, _id = "<namespace>:<key>".
type MongoKV struct {
	col       *mongo.Collection
	namespace string
}

func NewMongoKV(db *mongo.Database, namespace string) *MongoKV {
	return &MongoKV{col: db.Collection(collectionDeviceState), namespace: namespace}
}

func (m *MongoKV) GetMany(ctx context.Context, keys ...string) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	byID := make(map[string]string, len(keys))
	for _, k := range keys {
		byID[m.id(k)] = k
	}

	cur, err := m.col.Find(ctx, bson.M{"_id": bson.M{"$in": m.ids(keys)}})
	if err != nil {
		return nil, fmt.Errorf("find entries: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoEntry
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode entries: %w", err)
	}
	for _, d := range docs {
		out[byID[d.ID]] = d.Value
	}
	return out, nil
}

// SetMany upserts every entry in one ordered bulk write.
func (m *MongoKV) SetMany(ctx context.Context, entries map[string]string) error {
	if len(entries) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	now := time.Now().UTC()
	models := make([]mongo.WriteModel, 0, len(entries))
	for k, v := range entries {
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": m.id(k)}).
			SetUpdate(bson.M{"$set": bson.M{"value": v, "updated_at": now}}).
			SetUpsert(true))
	}

	if _, err := m.col.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(true)); err != nil {
		return fmt.Errorf("upsert entries: %w", err)
	}
	return nil
}

func (m *MongoKV) DeleteMany(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	if _, err := m.col.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": m.ids(keys)}}); err != nil {
		return fmt.Errorf("delete entries: %w", err)
	}
	return nil
}

func (m *MongoKV) id(k string) string { return m.namespace + ":" + k }

func (m *MongoKV) ids(keys []string) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = m.id(k)
	}
	return out
}
