package config

// Config 配置主体
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	DB        DBConfig        `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Mongo     MongoConfig     `mapstructure:"mongo"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
	Logstash  LogstashConfig  `mapstructure:"logstash"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Audit     AuditConfig     `mapstructure:"audit"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"` // 为空时允许任意来源
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

type KafkaConfig struct {
	Brokers  []string       `mapstructure:"brokers"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
	MaxProcessingTime int `mapstructure:"max_processing_time"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// LogstashConfig 远程日志
type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

// JWTConfig 外部身份服务签发的 Token 校验参数
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// RateLimitConfig 限流配置
// Backend: memory | redis
type RateLimitConfig struct {
	Backend       string                     `mapstructure:"backend"`
	MaxEntries    int                        `mapstructure:"max_entries"`
	SweepSchedule string                     `mapstructure:"sweep_schedule"`
	Policies      map[string]RateLimitPolicy `mapstructure:"policies"`
}

// RateLimitPolicy 单个动作的窗口配额
type RateLimitPolicy struct {
	Limit  int `mapstructure:"limit"`
	Window int `mapstructure:"window"` // 秒
}

// AuditConfig 审计日志配置
// Store: mysql | mongo
type AuditConfig struct {
	Store string           `mapstructure:"store"`
	Kafka AuditKafkaConfig `mapstructure:"kafka"`
}

// AuditKafkaConfig 审计日志镜像到 Kafka，Archive 开启时由消费者归档到 MongoDB
type AuditKafkaConfig struct {
	Enable  bool               `mapstructure:"enable"`
	Topic   string             `mapstructure:"topic"`
	Archive AuditArchiveConfig `mapstructure:"archive"`
}

type AuditArchiveConfig struct {
	Enable  bool   `mapstructure:"enable"`
	GroupID string `mapstructure:"group_id"`
}
