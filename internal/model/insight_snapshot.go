package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InsightSnapshot 一次洞察拉取的不可变留存，只增不改
type InsightSnapshot struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    int64              `bson:"user_id" json:"userId"`
	Metrics   map[string]int64   `bson:"metrics" json:"metrics"`         // 缺失的指标不补零，直接省略
	Since     *time.Time         `bson:"since,omitempty" json:"since,omitempty"` // 请求的统计窗口
	Until     *time.Time         `bson:"until,omitempty" json:"until,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}
