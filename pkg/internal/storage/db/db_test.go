package db_test

import (
	"context"
	"path/filepath"
	"slices"
	"testing"

	"github.com/yeisme/mockmoments/pkg/configs"
	"github.com/yeisme/mockmoments/pkg/internal/storage/db"
)

// TestRegisteredDBTypes 测试默认构建注册了全部数据库类型.
func TestRegisteredDBTypes(t *testing.T) {
	types := db.GetRegisteredDBTypes()

	for _, want := range []configs.DBType{configs.SQLite, configs.MySQL, configs.MariaDB, configs.PostgreSQL, configs.Pg} {
		if !slices.Contains(types, want) {
			t.Errorf("expected %s to be registered, got %v", want, types)
		}
	}

	if !slices.IsSorted(types) {
		t.Errorf("expected sorted types, got %v", types)
	}
}

// TestNewUnsupported 测试未知数据库类型.
func TestNewUnsupported(t *testing.T) {
	_, err := db.New(context.Background(), configs.DBConfig{Type: "oracle", Database: "x"})
	if err == nil {
		t.Fatal("expected error for unsupported database type")
	}
}

// TestNewSQLite 测试打开 SQLite 文件数据库.
func TestNewSQLite(t *testing.T) {
	cfg := configs.DBConfig{
		Type:         configs.SQLite,
		Database:     filepath.Join(t.TempDir(), "mock"),
		MaxIdleConns: 1,
	}

	client, err := db.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	t.Cleanup(func() {
		if err := client.Close(); err != nil {
			t.Errorf("close: %v", err)
		}
	})

	var one int
	if err := client.GetDB().Raw("SELECT 1").Scan(&one).Error; err != nil {
		t.Fatalf("query: %v", err)
	}

	if one != 1 {
		t.Errorf("expected 1, got %d", one)
	}
}
