package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/emreunal/gramscout/internal/types"
)

// MongoStore persists accounts and history in MongoDB collections.
type MongoStore struct {
	client     *mongo.Client
	accounts   *mongo.Collection
	history    *mongo.Collection
	historyCap int
	logger     *slog.Logger
}

// NewMongoStore connects, pings, and prepares the collections.
func NewMongoStore(uri, database string, historyCap int, logger *slog.Logger) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongodb connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongodb ping: %w", err)
	}

	db := client.Database(database)
	return &MongoStore{
		client:     client,
		accounts:   db.Collection("accounts"),
		history:    db.Collection("history"),
		historyCap: historyCap,
		logger:     logger.With("component", "mongo_store"),
	}, nil
}

func (s *MongoStore) Name() string { return "mongodb" }

func (s *MongoStore) Accounts(ctx context.Context) ([]types.ProfileRecord, error) {
	cur, err := s.accounts.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("mongodb find accounts: %w", err)
	}
	var out []types.ProfileRecord
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("mongodb decode accounts: %w", err)
	}
	return out, nil
}

func (s *MongoStore) AppendNew(ctx context.Context, records []types.ProfileRecord) ([]types.ProfileRecord, error) {
	var fresh []types.ProfileRecord
	for _, rec := range records {
		res, err := s.accounts.UpdateOne(ctx,
			bson.M{"username": rec.Handle},
			bson.M{"$setOnInsert": rec},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return fresh, fmt.Errorf("mongodb upsert @%s: %w", rec.Handle, err)
		}
		if res.UpsertedCount > 0 {
			fresh = append(fresh, rec)
		}
	}

	if len(fresh) > 0 {
		s.logger.Info("accounts stored", "new", len(fresh))
	}
	return fresh, nil
}

func (s *MongoStore) History(ctx context.Context) ([]types.SearchLogEntry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetLimit(int64(s.historyCap))
	cur, err := s.history.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb find history: %w", err)
	}
	var out []types.SearchLogEntry
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("mongodb decode history: %w", err)
	}
	return out, nil
}

func (s *MongoStore) LogSearch(ctx context.Context, entry types.SearchLogEntry) error {
	if _, err := s.history.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("mongodb insert history: %w", err)
	}

	// Trim entries beyond the cap, oldest first.
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetSkip(int64(s.historyCap)).
		SetProjection(bson.M{"id": 1})
	cur, err := s.history.Find(ctx, bson.M{}, opts)
	if err != nil {
		return fmt.Errorf("mongodb find overflow: %w", err)
	}
	var overflow []types.SearchLogEntry
	if err := cur.All(ctx, &overflow); err != nil {
		return fmt.Errorf("mongodb decode overflow: %w", err)
	}
	if len(overflow) == 0 {
		return nil
	}

	ids := make([]int64, len(overflow))
	for i, e := range overflow {
		ids[i] = e.ID
	}
	if _, err := s.history.DeleteMany(ctx, bson.M{"id": bson.M{"$in": ids}}); err != nil {
		return fmt.Errorf("mongodb trim history: %w", err)
	}
	return nil
}

func (s *MongoStore) Clear(ctx context.Context) error {
	if _, err := s.accounts.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("mongodb clear accounts: %w", err)
	}
	if _, err := s.history.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("mongodb clear history: %w", err)
	}
	s.logger.Info("data cleared")
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.client.Disconnect(cctx)
}
