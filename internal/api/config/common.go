package config

// Config 配置主体
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Logstash LogstashConfig `mapstructure:"logstash"`
	Threads  ThreadsConfig  `mapstructure:"threads"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// MongoConfig MongoDB配置
type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// LogstashConfig 日志上报配置
type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

// ThreadsConfig Threads 开放平台配置
type ThreadsConfig struct {
	AppID          string `mapstructure:"app_id"`
	AppSecret      string `mapstructure:"app_secret"`
	RedirectURI    string `mapstructure:"redirect_uri"`
	AuthBaseURL    string `mapstructure:"auth_base_url"`  // OAuth 换取令牌接口地址
	GraphBaseURL   string `mapstructure:"graph_base_url"` // Graph API 版本化基地址
	ProfileHost    string `mapstructure:"profile_host"`   // 用于拼接用户主页链接
	DeviceID       string `mapstructure:"device_id"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

func (c *Config) applyDefaults() {
	if c.Threads.AuthBaseURL == "" {
		c.Threads.AuthBaseURL = "https://graph.threads.net"
	}
	if c.Threads.GraphBaseURL == "" {
		c.Threads.GraphBaseURL = "https://graph.threads.net/v1.0"
	}
	if c.Threads.ProfileHost == "" {
		c.Threads.ProfileHost = "www.threads.net"
	}
	if c.Threads.TimeoutSeconds <= 0 {
		c.Threads.TimeoutSeconds = 10
	}
}
