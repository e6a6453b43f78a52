package metrics_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/yeisme/mockmoments/pkg/configs"
	"github.com/yeisme/mockmoments/pkg/metrics"
)

// TestRecordRun 测试计数与结果标签.
func TestRecordRun(t *testing.T) {
	rec := metrics.New(configs.MetricsConfig{Labels: map[string]string{"service": "test"}})

	rec.RecordRows("users", 10)
	rec.RecordRows("users", 5)
	rec.RecordRows("echos", 3)
	rec.RecordRun(2*time.Second, nil)
	rec.RecordRun(time.Second, errors.New("boom"))

	if got := testutil.ToFloat64(rec.RowsGenerated.WithLabelValues("users")); got != 15 {
		t.Errorf("expected 15 users, got %v", got)
	}

	if got := testutil.ToFloat64(rec.Runs.WithLabelValues("success")); got != 1 {
		t.Errorf("expected 1 success, got %v", got)
	}

	if got := testutil.ToFloat64(rec.Runs.WithLabelValues("failure")); got != 1 {
		t.Errorf("expected 1 failure, got %v", got)
	}

	if got := testutil.ToFloat64(rec.RunDuration); got != 1 {
		t.Errorf("expected last duration 1s, got %v", got)
	}
}

// TestWriteTextfile 测试写出 textfile 并带上常量标签.
func TestWriteTextfile(t *testing.T) {
	rec := metrics.New(configs.MetricsConfig{Labels: map[string]string{"service": "test"}})
	rec.RecordRows("moments", 7)
	rec.RecordRun(time.Second, nil)

	path := filepath.Join(t.TempDir(), "nested", "mockmoments.prom")
	if err := rec.WriteTextfile(path); err != nil {
		t.Fatalf("write textfile: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}

	want := `mockmoments_rows_generated_total{kind="moments",service="test"} 7`
	if !strings.Contains(string(b), want) {
		t.Errorf("textfile missing %q:\n%s", want, b)
	}
}
