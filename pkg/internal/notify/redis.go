package notify

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/redis/go-redis/v9"

	"github.com/yeisme/mockmoments/pkg/configs"
)

// RedisPublisher 通过 Redis Pub/Sub 发布消息，只发送 payload.
type RedisPublisher struct {
	client *redis.Client
}

// init 注册 Redis 工厂.
func init() {
	RegisterFactory(configs.NotifyTypeRedis, redisFactory)
}

// redisFactory 创建 Redis Publisher.
func redisFactory(ctx context.Context, cfg configs.NotifyConfig, _ watermill.LoggerAdapter) (message.Publisher, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()

		return nil, fmt.Errorf("ping redis %s: %w", cfg.Redis.Addr, err)
	}

	return NewRedisPublisher(rdb), nil
}

// NewRedisPublisher 使用已有客户端创建 Publisher.
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

// Publish 实现 Publisher 接口.
func (p *RedisPublisher) Publish(topic string, msgs ...*message.Message) error {
	for _, msg := range msgs {
		if err := p.client.Publish(msg.Context(), topic, []byte(msg.Payload)).Err(); err != nil {
			return err
		}
	}

	return nil
}

// Close 实现 Publisher 接口.
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
