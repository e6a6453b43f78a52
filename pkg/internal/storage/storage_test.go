package storage_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/yeisme/mockmoments/pkg/configs"
	"github.com/yeisme/mockmoments/pkg/internal/storage"
)

// TestInitCSVOnly 测试只输出 CSV 时不连接任何存储.
func TestInitCSVOnly(t *testing.T) {
	cfg := &configs.AppConfig{}
	cfg.Generate.Sinks = []configs.SinkType{configs.SinkCSV}

	mgr, err := storage.Init(context.Background(), cfg)
	if err != nil {
		t.Fatalf("init: %v", err)
	}

	if mgr.DB != nil || mgr.S3 != nil {
		t.Error("no storage should be opened for csv only")
	}

	if err := mgr.Close(); err != nil {
		t.Errorf("close: %v", err)
	}
}

// TestInitDBSink 测试包含 db 输出时打开数据库.
func TestInitDBSink(t *testing.T) {
	cfg := &configs.AppConfig{}
	cfg.Generate.Sinks = []configs.SinkType{configs.SinkCSV, configs.SinkDB}
	cfg.DB = configs.DBConfig{
		Type:         configs.SQLite,
		Database:     filepath.Join(t.TempDir(), "mock"),
		MaxIdleConns: 1,
	}

	mgr, err := storage.Init(context.Background(), cfg)
	if err != nil {
		t.Fatalf("init: %v", err)
	}

	defer mgr.Close()

	if mgr.DB == nil {
		t.Fatal("expected database client")
	}

	if mgr.S3 != nil {
		t.Error("s3 should stay disabled")
	}
}
