package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/center-believer/backend/internal/message"
	"github.com/center-believer/backend/pkg/logger"
)

// MongoRepo implements a MongoDB-backed repository for guestbook messages.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	// both read paths sort newest-first and history filters on createdAt
	idxModel := mongo.IndexModel{Keys: bson.D{{Key: "createdAt", Value: -1}}}
	if _, err := col.Indexes().CreateOne(context.Background(), idxModel); err != nil {
		logger.Warnf("failed to create createdAt index on %s: %v", col.Name(), err)
	}
	return &MongoRepo{col: col}
}

func (m *MongoRepo) Latest(ctx context.Context, limit int) ([]message.Message, error) {
	return m.find(ctx, bson.M{}, limit)
}

func (m *MongoRepo) Before(ctx context.Context, t time.Time, limit int) ([]message.Message, error) {
	return m.find(ctx, bson.M{"createdAt": bson.M{"$lt": t}}, limit)
}

func (m *MongoRepo) find(ctx context.Context, filter bson.M, limit int) ([]message.Message, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := m.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []message.Message{}
	for cur.Next(ctx) {
		var msg message.Message
		if err := cur.Decode(&msg); err != nil {
			return nil, err
		}
		out = append(out, msg)
	}
	return out, cur.Err()
}

func (m *MongoRepo) Create(ctx context.Context, msg *message.Message) error {
	msg.ID = primitive.NewObjectID().Hex()
	msg.CreatedAt = time.Now().UTC()
	_, err := m.col.InsertOne(ctx, msg)
	return err
}
