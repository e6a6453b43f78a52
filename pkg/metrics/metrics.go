// Package metrics 提供生成任务的 Prometheus 指标.
// 生成是一次性进程，指标在运行结束后以 textfile 格式写出，由 node_exporter 的 textfile collector 收集.
//
// Example:
//
//	rec := metrics.New(config.Metrics)
//	rec.RecordRows("users", 100)
//	rec.RecordRun(time.Since(start), err)
//	if err := rec.WriteTextfile(config.Metrics.TextfilePath); err != nil {
//		log.Fatal(err)
//	}
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/yeisme/mockmoments/pkg/configs"
)

const namespace = "mockmoments"

// Recorder 持有一次运行的全部指标.
type Recorder struct {
	registry *prometheus.Registry
	gatherer prometheus.Gatherer

	// RowsGenerated 各类型生成的记录数.
	RowsGenerated *prometheus.CounterVec
	// Runs 按结果统计的运行次数.
	Runs *prometheus.CounterVec
	// RunDuration 最近一次运行耗时.
	RunDuration prometheus.Gauge
	// LastRunTimestamp 最近一次运行结束时间.
	LastRunTimestamp prometheus.Gauge
}

// New 创建 Recorder. cfg.Labels 作为常量标签附加到所有自定义指标上.
func New(cfg configs.MetricsConfig) *Recorder {
	registry := prometheus.NewRegistry()
	reg := prometheus.WrapRegistererWith(prometheus.Labels(cfg.Labels), registry)

	r := &Recorder{
		registry: registry,
		RowsGenerated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rows_generated_total",
				Help:      "Total number of generated rows by record kind",
			},
			[]string{"kind"},
		),
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Total number of generation runs by result",
			},
			[]string{"result"},
		),
		RunDuration: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "run_duration_seconds",
				Help:      "Duration of the last generation run in seconds",
			},
		),
		LastRunTimestamp: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_run_timestamp_seconds",
				Help:      "Unix time the last generation run finished",
			},
		),
	}

	reg.MustRegister(r.RowsGenerated, r.Runs, r.RunDuration, r.LastRunTimestamp)

	// 注册标准收集器
	if cfg.RuntimeMetrics {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	r.gatherer = registry

	// GORM 插件注册在默认注册表上
	if cfg.DBMetrics {
		r.gatherer = prometheus.Gatherers{registry, prometheus.DefaultGatherer}
	}

	return r
}

// RecordRows 累加某类型的记录数.
func (r *Recorder) RecordRows(kind string, n int64) {
	r.RowsGenerated.WithLabelValues(kind).Add(float64(n))
}

// RecordRun 记录一次运行的结果与耗时.
func (r *Recorder) RecordRun(d time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}

	r.Runs.WithLabelValues(result).Inc()
	r.RunDuration.Set(d.Seconds())
	r.LastRunTimestamp.SetToCurrentTime()
}

// WriteTextfile 以 Prometheus 文本格式原子写出全部指标.
func (r *Recorder) WriteTextfile(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create metrics dir: %w", err)
		}
	}

	if err := prometheus.WriteToTextfile(path, r.gatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}

	return nil
}

// GetRegistry 获取Prometheus注册表.
func (r *Recorder) GetRegistry() *prometheus.Registry {
	return r.registry
}
