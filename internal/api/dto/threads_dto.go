package dto

// CreatePostDTO 发帖请求。字段全部可选，文本或媒体至少其一由上游校验
type CreatePostDTO struct {
	Text              string `json:"text"`
	MediaType         string `json:"media_type" binding:"omitempty,oneof=IMAGE VIDEO"`
	MediaURL          string `json:"media_url" binding:"omitempty,url"`
	AltText           string `json:"alt_text"`
	LinkAttachmentURL string `json:"link_attachment_url" binding:"omitempty,url"`
	ReplyControl      string `json:"reply_control" binding:"omitempty,oneof=FOLLOWING MENTIONED EVERYONE"`
}

// ListQueryDTO 列表查询参数
type ListQueryDTO struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// InsightsQueryDTO 洞察查询窗口，ISO-8601 格式
type InsightsQueryDTO struct {
	Since string `form:"since"`
	Until string `form:"until"`
}
