package consts

const (
	// MetricViews 上游唯一采用 values 序列返回的指标
	MetricViews          = "views"
	MetricLikes          = "likes"
	MetricReplies        = "replies"
	MetricQuotes         = "quotes"
	MetricReposts        = "reposts"
	MetricFollowersCount = "followers_count"

	// InsightMetrics 洞察接口一次请求的全部指标
	InsightMetrics = MetricViews + "," + MetricLikes + "," + MetricReplies + "," +
		MetricQuotes + "," + MetricReposts + "," + MetricFollowersCount
)

const (
	// DefaultListLimit 帖子/回复列表默认条数
	DefaultListLimit = 10

	// TokenValidityDays 长效令牌有效期（天）
	TokenValidityDays = 60
)

const (
	ProfileFields = "username,threads_profile_picture_url,threads_biography"
	PostFields    = "id,text,media_type,media_url,permalink,timestamp"
	ReplyFields   = "id,text,username,timestamp,media_type,has_replies,is_reply"
)
