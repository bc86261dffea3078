package repository

import (
	"Threadway/internal/model"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CredentialRepo interface {
	GetByUserID(ctx context.Context, userID int64) (*model.Credential, error)
	Upsert(ctx context.Context, userID int64, fields bson.M) (*model.Credential, error)
	ListActive(ctx context.Context) ([]*model.Credential, error)
	Deactivate(ctx context.Context, userID int64) error
}

type credentialRepoImpl struct {
	col *mongo.Collection
}

func NewCredentialRepo(db *mongo.Database) CredentialRepo {
	return &credentialRepoImpl{
		col: db.Collection("threads_auth"),
	}
}

// GetByUserID 按外部用户ID查询凭证，不存在时返回 nil
func (s *credentialRepoImpl) GetByUserID(ctx context.Context, userID int64) (*model.Credential, error) {
	var cred model.Credential
	err := s.col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cred)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &cred, nil
}

// Upsert 单条原子写入：部分更新指定字段并返回更新后的文档。
// 并发写同一 user_id 时由 MongoDB 保证逐文档串行，不做先读后写。
func (s *credentialRepoImpl) Upsert(ctx context.Context, userID int64, fields bson.M) (*model.Credential, error) {
	now := time.Now()
	set := bson.M{"updated_at": now}
	for k, v := range fields {
		set[k] = v
	}

	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"user_id": userID, "created_at": now},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var cred model.Credential
	err := s.col.FindOneAndUpdate(ctx, bson.M{"user_id": userID}, update, opts).Decode(&cred)
	if err != nil {
		return nil, err
	}
	return &cred, nil
}

// ListActive 列出所有激活凭证，供定时同步遍历
func (s *credentialRepoImpl) ListActive(ctx context.Context) ([]*model.Credential, error) {
	cursor, err := s.col.Find(ctx, bson.M{"is_active": true})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var creds []*model.Credential
	if err := cursor.All(ctx, &creds); err != nil {
		return nil, err
	}

	return creds, nil
}

// Deactivate 软删除：置 is_active=false，令牌本身保留
func (s *credentialRepoImpl) Deactivate(ctx context.Context, userID int64) error {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
