package configs

import (
	"time"

	"github.com/spf13/viper"
)

// NotifyType 运行完成事件的发布方式.
type NotifyType string

const (
	NotifyTypeNATS      NotifyType = "nats"
	NotifyTypeRedis     NotifyType = "redis"
	NotifyTypeGoChannel NotifyType = "gochannel" // 进程内，仅用于测试

	DefaultNotifyTopic   = "mockmoments.run.completed"
	DefaultNATSURL       = "nats://localhost:4222"
	DefaultMaxReconnects = 5
	DefaultReconnectWait = 2 * time.Second
	DefaultRedisAddr     = "localhost:6379"
)

// NotifyConfig 生成完成后发布事件的配置.
type NotifyConfig struct {
	Enabled bool              `mapstructure:"enabled"`
	Type    NotifyType        `mapstructure:"type"    rule:"oneof=nats redis gochannel"`
	Topic   string            `mapstructure:"topic"   rule:"required_if=Enabled true"`
	NATS    NotifyNATSConfig  `mapstructure:"nats"`
	Redis   NotifyRedisConfig `mapstructure:"redis"`
}

// NotifyNATSConfig NATS 发布配置.
type NotifyNATSConfig struct {
	URL                    string        `mapstructure:"url"`
	ClusterURLs            []string      `mapstructure:"cluster_urls"`
	ClientID               string        `mapstructure:"client_id"`
	User                   string        `mapstructure:"user"`
	Password               string        `mapstructure:"password"`
	JWT                    string        `mapstructure:"jwt"`
	NKey                   string        `mapstructure:"nkey"`
	MaxReconnects          int           `mapstructure:"max_reconnects"           rule:"min=0,max=100"`
	ReconnectWait          time.Duration `mapstructure:"reconnect_wait"`
	JetStreamEnabled       bool          `mapstructure:"jetstream_enabled"`
	JetStreamAutoProvision bool          `mapstructure:"jetstream_auto_provision"`
	JetStreamTrackMsgID    bool          `mapstructure:"jetstream_track_msg_id"`
}

// NotifyRedisConfig Redis 发布配置.
type NotifyRedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"       rule:"min=0,max=15"`
}

// setDefaults 设置通知配置的默认值.
func (c *NotifyConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("notify.enabled", false)
	v.SetDefault("notify.type", NotifyTypeNATS)
	v.SetDefault("notify.topic", DefaultNotifyTopic)

	// NATS 默认值
	v.SetDefault("notify.nats.url", DefaultNATSURL)
	v.SetDefault("notify.nats.cluster_urls", []string{})
	v.SetDefault("notify.nats.client_id", "mockmoments")
	v.SetDefault("notify.nats.max_reconnects", DefaultMaxReconnects)
	v.SetDefault("notify.nats.reconnect_wait", DefaultReconnectWait)
	v.SetDefault("notify.nats.jetstream_enabled", false)
	v.SetDefault("notify.nats.jetstream_auto_provision", true)
	v.SetDefault("notify.nats.jetstream_track_msg_id", true)

	// Redis 默认值
	v.SetDefault("notify.redis.addr", DefaultRedisAddr)
	v.SetDefault("notify.redis.password", "")
	v.SetDefault("notify.redis.db", 0)
}
