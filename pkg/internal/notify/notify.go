// Package notify 在生成完成后发布运行事件，下游导入任务据此拉取文件或开始校验.
// 基于 Watermill，通过工厂注册不同的 Publisher 实现.
//
// 支持的类型：
//   - NATS（可选 JetStream）
//   - Redis Pub/Sub
//   - gochannel（进程内，测试使用）
//
// 使用示例：
//
//	n, err := notify.New(ctx, cfg.Notify, logger)
//	if err != nil {
//		return err
//	}
//	defer n.Close()
//
//	err = n.PublishRun(ctx, manifest)
package notify

import (
	"context"
	"fmt"
	"slices"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"

	"github.com/yeisme/mockmoments/pkg/configs"
	"github.com/yeisme/mockmoments/pkg/internal/generator"
)

// MetadataRunID 消息元数据中的运行 id 键.
const MetadataRunID = "run_id"

// Factory 定义创建 Publisher 的工厂函数.
type Factory func(ctx context.Context, cfg configs.NotifyConfig, logger watermill.LoggerAdapter) (message.Publisher, error)

var factories = map[configs.NotifyType]Factory{}

// RegisterFactory 注册指定类型的工厂.
func RegisterFactory(t configs.NotifyType, f Factory) {
	factories[t] = f
}

// GetRegisteredTypes 返回已注册的类型，按名称排序.
func GetRegisteredTypes() []configs.NotifyType {
	types := make([]configs.NotifyType, 0, len(factories))
	for t := range factories {
		types = append(types, t)
	}

	slices.Sort(types)

	return types
}

// Notifier 发布运行事件.
type Notifier struct {
	publisher message.Publisher
	topic     string
	logger    zerolog.Logger
}

// New 按配置创建 Notifier.
func New(ctx context.Context, cfg configs.NotifyConfig, logger zerolog.Logger) (*Notifier, error) {
	factory, ok := factories[cfg.Type]
	if !ok {
		return nil, fmt.Errorf("unsupported notify type: %s", cfg.Type)
	}

	pub, err := factory(ctx, cfg, NewLoggerAdapter(logger))
	if err != nil {
		return nil, fmt.Errorf("init notify (%s): %w", cfg.Type, err)
	}

	return NewWithPublisher(pub, cfg.Topic, logger), nil
}

// NewWithPublisher 使用已有的 Publisher 创建 Notifier.
func NewWithPublisher(pub message.Publisher, topic string, logger zerolog.Logger) *Notifier {
	return &Notifier{publisher: pub, topic: topic, logger: logger}
}

// PublishRun 以 JSON 发布运行清单.
func (n *Notifier) PublishRun(ctx context.Context, m generator.Manifest) error {
	payload, err := sonic.ConfigStd.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal run event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set(MetadataRunID, m.RunID)
	msg.SetContext(ctx)

	if err := n.publisher.Publish(n.topic, msg); err != nil {
		return fmt.Errorf("publish run event to %s: %w", n.topic, err)
	}

	n.logger.Info().Str("topic", n.topic).Str("run_id", m.RunID).Msg("run event published")

	return nil
}

// DecodeRun 解析运行事件.
func DecodeRun(msg *message.Message) (generator.Manifest, error) {
	var m generator.Manifest

	if err := sonic.ConfigStd.Unmarshal(msg.Payload, &m); err != nil {
		return m, fmt.Errorf("unmarshal run event: %w", err)
	}

	return m, nil
}

// Close 关闭 Publisher.
func (n *Notifier) Close() error {
	return n.publisher.Close()
}
