package notify_test

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/rs/zerolog"

	"github.com/yeisme/mockmoments/pkg/configs"
	"github.com/yeisme/mockmoments/pkg/internal/generator"
	"github.com/yeisme/mockmoments/pkg/internal/notify"
)

// TestRegisteredTypes 测试默认注册的发布方式.
func TestRegisteredTypes(t *testing.T) {
	types := notify.GetRegisteredTypes()

	for _, want := range []configs.NotifyType{configs.NotifyTypeNATS, configs.NotifyTypeRedis, configs.NotifyTypeGoChannel} {
		if !slices.Contains(types, want) {
			t.Errorf("expected %s to be registered, got %v", want, types)
		}
	}
}

// TestNewUnsupported 测试未知类型.
func TestNewUnsupported(t *testing.T) {
	if _, err := notify.New(context.Background(), configs.NotifyConfig{Type: "kafka"}, zerolog.Nop()); err == nil {
		t.Fatal("expected error for unsupported notify type")
	}
}

// TestPublishRun 测试发布的事件可被订阅方解析.
func TestPublishRun(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pubsub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})

	ch, err := pubsub.Subscribe(ctx, "runs")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	n := notify.NewWithPublisher(pubsub, "runs", zerolog.Nop())
	defer n.Close()

	stats := generator.Stats{RunID: "run-1", StartedAt: time.Now().UTC(), Duration: time.Second}
	m := generator.NewManifest(stats, "test", 10, 5, 7, `\N`)

	go func() {
		if err := n.PublishRun(ctx, m); err != nil {
			t.Errorf("publish: %v", err)
		}
	}()

	select {
	case msg := <-ch:
		msg.Ack()

		if got := msg.Metadata.Get(notify.MetadataRunID); got != "run-1" {
			t.Errorf("unexpected run id metadata %q", got)
		}

		got, err := notify.DecodeRun(msg)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}

		if got.UserCount != 10 || got.Seed != 7 || len(got.Files) != len(m.Files) {
			t.Errorf("unexpected event %+v", got)
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for run event")
	}
}

// TestNewGoChannel 测试通过配置创建进程内发布者.
func TestNewGoChannel(t *testing.T) {
	n, err := notify.New(context.Background(), configs.NotifyConfig{Type: configs.NotifyTypeGoChannel, Topic: "runs"}, zerolog.Nop())
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	// 没有订阅者时发布不阻塞
	if err := n.PublishRun(context.Background(), generator.Manifest{RunID: "x"}); err != nil {
		t.Errorf("publish: %v", err)
	}

	if err := n.Close(); err != nil {
		t.Errorf("close: %v", err)
	}
}
