package handler

import (
	"Threadway/internal/api/dto"
	"Threadway/internal/pkg/response"
	"Threadway/internal/service"
	"time"

	"github.com/gin-gonic/gin"
)

type ThreadsHandler struct {
	threadsSvc service.ThreadsService
}

func NewThreadsHandler(threadsSvc service.ThreadsService) *ThreadsHandler {
	return &ThreadsHandler{
		threadsSvc: threadsSvc,
	}
}

// GetProfile 拉取用户上游资料
func (s *ThreadsHandler) GetProfile(c *gin.Context) {
	userID, err := parseUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	profile, err := s.threadsSvc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profile)
}

// CreatePost 代理发帖
func (s *ThreadsHandler) CreatePost(c *gin.Context) {
	userID, err := parseUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CreatePostDTO
	if err = c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	body, err := s.threadsSvc.CreatePost(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, body)
}

// GetPosts 帖子列表
func (s *ThreadsHandler) GetPosts(c *gin.Context) {
	userID, err := parseUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var query dto.ListQueryDTO
	if err = c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	posts, err := s.threadsSvc.GetPosts(c.Request.Context(), userID, query.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

// GetReplies 帖子回复列表
func (s *ThreadsHandler) GetReplies(c *gin.Context) {
	userID, err := parseUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var query dto.ListQueryDTO
	if err = c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	replies, err := s.threadsSvc.GetReplies(c.Request.Context(), userID, c.Param("thread_id"), query.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, replies)
}

// GetInsights 账号洞察，since/until 可选
func (s *ThreadsHandler) GetInsights(c *gin.Context) {
	userID, err := parseUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var query dto.InsightsQueryDTO
	if err = c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	since, err := parseTimeParam(query.Since)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	until, err := parseTimeParam(query.Until)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	metrics, err := s.threadsSvc.GetInsights(c.Request.Context(), userID, since, until)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, metrics)
}

// GetInsightHistory 历史洞察快照
func (s *ThreadsHandler) GetInsightHistory(c *gin.Context) {
	userID, err := parseUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var query dto.ListQueryDTO
	if err = c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	snapshots, err := s.threadsSvc.GetInsightHistory(c.Request.Context(), userID, query.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, snapshots)
}

func parseTimeParam(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
