package repository

import (
	"Threadway/internal/model"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type InsightRepo interface {
	Create(ctx context.Context, snapshot *model.InsightSnapshot) error
	ListByUserID(ctx context.Context, userID int64, limit int) ([]*model.InsightSnapshot, error)
}

type insightRepoImpl struct {
	col *mongo.Collection
}

func NewInsightRepo(db *mongo.Database) InsightRepo {
	return &insightRepoImpl{
		col: db.Collection("threads_insights"),
	}
}

// Create 追加一条洞察快照
func (s *insightRepoImpl) Create(ctx context.Context, snapshot *model.InsightSnapshot) error {
	if snapshot.CreatedAt.IsZero() {
		snapshot.CreatedAt = time.Now()
	}
	_, err := s.col.InsertOne(ctx, snapshot)
	return err
}

// ListByUserID 按创建时间倒序返回某用户的历史快照
func (s *insightRepoImpl) ListByUserID(ctx context.Context, userID int64, limit int) ([]*model.InsightSnapshot, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := s.col.Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var snapshots []*model.InsightSnapshot
	if err := cursor.All(ctx, &snapshots); err != nil {
		return nil, err
	}

	return snapshots, nil
}
