package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	InternalServerError = 500
	BadGateway          = 502
)

var (
	ErrParamInvalid       = errors.New("参数错误")
	ErrCredentialNotFound = errors.New("凭证不存在或已失效")
	ErrExternalAuth       = errors.New("授权码换取令牌失败")
	ErrUpstreamCall       = errors.New("上游接口调用失败")
	ErrStore              = errors.New("存储服务异常")
	UnExpectedError       = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:       BadRequest,
	ErrCredentialNotFound: NotFound,
	ErrExternalAuth:       BadGateway,
	ErrUpstreamCall:       BadGateway,
	ErrStore:              InternalServerError,
	UnExpectedError:       InternalServerError,
}
