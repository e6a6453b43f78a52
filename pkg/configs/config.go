// Package configs 管理应用程序配置，包括生成参数、数据库、对象存储、日志等配置信息.
// configs 包支持多种配置格式（YAML、JSON、TOML、dotenv），并可绑定命令行 flag 与环境变量.
//
// Example:
//
//	err := configs.InitConfig("./", cmd.Flags())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	config := configs.GetConfig()
//	fmt.Println(config.Generate.OutputDir)
//
// Example accessing DB config:
//
//	config := configs.GetConfig()
//	dsn := config.DB.GetDSN()
//	fmt.Println("DSN:", dsn)
package configs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/yeisme/mockmoments/pkg/rule"
)

// AppVersion 当前程序版本.
const AppVersion = "0.1.0"

// EnvPrefix 环境变量前缀，例如 MOCKMOMENTS_GENERATE_USER_COUNT.
const EnvPrefix = "MOCKMOMENTS"

type (
	// AppConfig 全局应用程序配置.
	AppConfig struct {
		Generate GenerateConfig `mapstructure:"generate"` // GenerateConfig 生成参数
		DB       DBConfig       `mapstructure:"db"`       // DBConfig 数据库输出配置
		S3       S3Config       `mapstructure:"s3"`       // S3Config 输出文件上传配置
		Notify   NotifyConfig   `mapstructure:"notify"`   // NotifyConfig 运行完成事件配置
		Metrics  MetricsConfig  `mapstructure:"metrics"`  // MetricsConfig 运行指标配置
		Tracing  TracingConfig  `mapstructure:"tracing"`  // TracingConfig 追踪配置
		Log      LogConfig      `mapstructure:"log"`      // LogConfig 日志相关配置
		Debug    bool           `mapstructure:"debug"`    // Debug 调试模式
	}
)

var (
	// globalConfig 全局配置实例.
	globalConfig AppConfig
	// appViper 全局 Viper 实例.
	appViper *viper.Viper
)

// flagKeys 命令行 flag 名称到配置键的映射.
var flagKeys = map[string]string{
	"debug":       "debug",
	"out":         "generate.output_dir",
	"users":       "generate.user_count",
	"moments-max": "generate.moment_iter_count_max",
	"null":        "generate.null_token",
	"seed":        "generate.seed",
	"sink":        "generate.sinks",
}

// InitConfig 加载应用程序配置. path 可以是配置文件或包含 config.* 的目录，为空时只使用默认值、环境变量与 flag.
// 配置文件不存在不视为错误.
func InitConfig(path string, flags *pflag.FlagSet) error {
	v := viper.New()
	// 设置默认值
	setAllDefaults(v)

	if err := setConfigSource(v, path); err != nil {
		return err
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	if v.ConfigFileUsed() != "" {
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := rule.ValidateStruct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	globalConfig = cfg
	appViper = v

	return nil
}

// setConfigSource 根据 path 设置配置文件.
func setConfigSource(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}

		return fmt.Errorf("failed to stat config path: %w", err)
	}

	// 是文件，使用SetConfigFile，Viper会自动检测类型
	if !info.IsDir() {
		v.SetConfigFile(path)

		return nil
	}

	exts := []string{"yaml", "yml", "json", "toml", "env", "dotenv"}
	for _, dir := range []string{path, filepath.Join(path, "configs")} {
		for _, ext := range exts {
			cfg := filepath.Join(dir, "config."+ext)
			if _, err := os.Stat(cfg); err == nil {
				v.SetConfigFile(cfg)

				return nil
			}
		}
	}

	return nil
}

// setAllDefaults 设置所有配置的默认值.
func setAllDefaults(v *viper.Viper) {
	var generateConfig GenerateConfig

	var dbConfig DBConfig

	var s3Config S3Config

	var notifyConfig NotifyConfig

	var metricsConfig MetricsConfig

	var tracingConfig TracingConfig

	var logConfig LogConfig

	v.SetDefault("debug", false)

	generateConfig.setDefaults(v)
	dbConfig.setDefaults(v)
	s3Config.setDefaults(v)
	notifyConfig.setDefaults(v)
	metricsConfig.setDefaults(v)
	tracingConfig.setDefaults(v)
	logConfig.setDefaults(v)
}

// GetConfig 返回全局配置实例.
func GetConfig() *AppConfig {
	return &globalConfig
}

// GetViper 返回全局 Viper 实例，未初始化时为 nil.
func GetViper() *viper.Viper {
	return appViper
}
