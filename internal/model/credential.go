package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Credential 一个外部用户对应一条长效令牌凭证
type Credential struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      int64              `bson:"user_id" json:"userId"`            // Threads 外部用户ID，唯一键
	AccessToken string             `bson:"access_token" json:"accessToken"`  // 不透明令牌，仅存缓存，响应层一律走 DTO
	ExpiresAt   time.Time          `bson:"expires_at" json:"expiresAt"`      // 绝对过期时间，当前仅作提示
	IsActive    bool               `bson:"is_active" json:"isActive"`        // 软删除标记，网关将非激活视为不存在
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`

	// 以下为上游资料的反范式缓存，拉取资料时顺带刷新
	Username          string `bson:"username,omitempty" json:"username,omitempty"`
	ProfilePictureURL string `bson:"profile_picture_url,omitempty" json:"profilePictureUrl,omitempty"`
	Biography         string `bson:"biography,omitempty" json:"biography,omitempty"`
	ProfileURL        string `bson:"profile_url,omitempty" json:"profileUrl,omitempty"`

	// Metrics 最近一次洞察计数快照，由定时同步整体覆盖
	Metrics map[string]int64 `bson:"metrics,omitempty" json:"metrics,omitempty"`
}

// Usable 凭证是否可用于上游调用
func (c *Credential) Usable() bool {
	return c != nil && c.IsActive && c.AccessToken != ""
}
