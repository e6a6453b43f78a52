// Package configs 管理应用程序配置，包括Metrics的配置信息.
// 生成任务是一次性进程，指标以 Prometheus textfile 格式写出，供 node_exporter 收集.
//
// Example:
//
//	config := configs.GetConfig()
//	metricsConfig := config.Metrics
//	if metricsConfig.Enabled {
//		// 写出指标文件
//	}
package configs

import (
	"github.com/spf13/viper"
)

// MetricsConfig Metrics相关配置.
type MetricsConfig struct {
	Enabled        bool              `mapstructure:"enabled"`                                          // 是否启用Metrics
	TextfilePath   string            `mapstructure:"textfile_path"    rule:"required_if=Enabled true"` // textfile 输出路径
	RuntimeMetrics bool              `mapstructure:"runtime_metrics"`                                  // 是否收集运行时指标
	DBMetrics      bool              `mapstructure:"db_metrics"`                                       // 是否注册 GORM 指标
	Labels         map[string]string `mapstructure:"labels"`                                           // 默认标签
}

// setDefaults 设置Metrics配置的默认值.
func (c *MetricsConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.textfile_path", "mock-data/mockmoments.prom")
	v.SetDefault("metrics.runtime_metrics", false)
	v.SetDefault("metrics.db_metrics", false)
	v.SetDefault("metrics.labels", map[string]string{
		"service": "mockmoments",
	})
}
