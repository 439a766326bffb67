package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/center-believer/backend/internal/scientist"
	"github.com/center-believer/backend/pkg/logger"
)

// MongoRepo implements a MongoDB-backed repository for scientists.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	// list endpoint always sorts newest-first
	idxModel := mongo.IndexModel{Keys: bson.D{{Key: "createdAt", Value: -1}}}
	if _, err := col.Indexes().CreateOne(context.Background(), idxModel); err != nil {
		logger.Warnf("failed to create createdAt index on %s: %v", col.Name(), err)
	}
	return &MongoRepo{col: col}
}

func (m *MongoRepo) List(ctx context.Context) ([]*scientist.Scientist, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := m.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []*scientist.Scientist{}
	for cur.Next(ctx) {
		var s scientist.Scientist
		if err := cur.Decode(&s); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, cur.Err()
}

func (m *MongoRepo) Get(ctx context.Context, id string) (*scientist.Scientist, error) {
	var s scientist.Scientist
	err := m.col.FindOne(ctx, bson.M{"_id": id}).Decode(&s)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (m *MongoRepo) Create(ctx context.Context, s *scientist.Scientist) error {
	now := time.Now().UTC()
	s.ID = primitive.NewObjectID().Hex()
	s.CreatedAt = now
	s.UpdatedAt = now
	if s.Achievements == nil {
		s.Achievements = []string{}
	}
	_, err := m.col.InsertOne(ctx, s)
	return err
}

func (m *MongoRepo) Update(ctx context.Context, id string, fields scientist.UpdateFields) (*scientist.Scientist, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if fields.Name != nil {
		set["name"] = *fields.Name
	}
	if fields.Title != nil {
		set["title"] = *fields.Title
	}
	if fields.Description != nil {
		set["description"] = *fields.Description
	}
	if fields.Achievements != nil {
		set["achievements"] = fields.Achievements
	}
	if fields.BirthYear != nil {
		set["birthYear"] = *fields.BirthYear
	}
	if fields.DeathYear != nil {
		set["deathYear"] = *fields.DeathYear
	}
	if fields.Subject != nil {
		set["subject"] = *fields.Subject
	}
	if fields.Color != nil {
		set["color"] = *fields.Color
	}
	if fields.Image != nil {
		set["image"] = *fields.Image
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var s scientist.Scientist
	err := m.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&s)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (m *MongoRepo) Delete(ctx context.Context, id string) error {
	res, err := m.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
