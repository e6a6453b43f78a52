package log_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/yeisme/mockmoments/pkg/configs"
	"github.com/yeisme/mockmoments/pkg/log"
)

// TestNewLevel 测试日志级别过滤.
func TestNewLevel(t *testing.T) {
	var buf bytes.Buffer

	l := log.New(configs.LogConfig{Level: "warn"}, false, &buf)
	l.Info().Msg("hidden")
	l.Warn().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message should be filtered at warn level, got %q", out)
	}

	if !strings.Contains(out, "shown") {
		t.Errorf("warn message missing, got %q", out)
	}
}

// TestNewDebugLowersLevel 测试 debug 模式至少输出 debug 级别.
func TestNewDebugLowersLevel(t *testing.T) {
	var buf bytes.Buffer

	l := log.New(configs.LogConfig{Level: "info"}, true, &buf)
	l.Debug().Msg("details")

	if !strings.Contains(buf.String(), "details") {
		t.Errorf("debug message missing in debug mode, got %q", buf.String())
	}
}
