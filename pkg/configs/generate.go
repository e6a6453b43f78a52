package configs

import (
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultOutputDir           = "mock-data"              // 输出目录
	DefaultUserCount           = 100                      // 用户数量
	DefaultMomentIterCountMax  = 20                       // 每个用户的 moment 数量上限（不含）
	DefaultCommentIterCountMax = 20                       // 每个 moment 的评论数量上限（不含）
	DefaultDeleteProbability   = 0.05                     // 软删除概率
	DefaultImageProbability    = 0.5                      // 附带图片的概率
	DefaultMomentMinAge        = 10 * time.Hour           // moment 创建时间距今最短
	DefaultMomentMaxAge        = 3 * 365 * 24 * time.Hour // moment 创建时间距今最长
	DefaultNullToken           = `\N`                     // 空值占位符，与 MySQL LOAD DATA 一致
	DefaultLocale              = "en"                     // 假数据语言
	DefaultSink                = "csv"                    // 默认输出目标
)

// DefaultTags 固定的标签名称.
var DefaultTags = []string{"일상/생각", "인간관계", "일/성장", "건강/운동", "취미/여가"}

type SinkType string

const (
	SinkCSV SinkType = "csv"
	SinkDB  SinkType = "db"
)

// GenerateConfig 生成参数配置.
type GenerateConfig struct {
	OutputDir           string        `mapstructure:"output_dir"             rule:"required"`
	UserCount           int           `mapstructure:"user_count"             rule:"min=0"`
	MomentIterCountMax  int           `mapstructure:"moment_iter_count_max"  rule:"min=0"`
	CommentIterCountMax int           `mapstructure:"comment_iter_count_max" rule:"min=0"`
	DeleteProbability   float64       `mapstructure:"delete_probability"     rule:"min=0,max=1"`
	ImageProbability    float64       `mapstructure:"image_probability"      rule:"min=0,max=1"`
	MomentMinAge        time.Duration `mapstructure:"moment_min_age"`
	MomentMaxAge        time.Duration `mapstructure:"moment_max_age"`
	NullToken           string        `mapstructure:"null_token"             rule:"excludesall=0x2C"`
	Locale              string        `mapstructure:"locale"                 rule:"required"`
	Seed                int64         `mapstructure:"seed"`
	Tags                []string      `mapstructure:"tags"                   rule:"dive,required"`
	Sinks               []SinkType    `mapstructure:"sinks"                  rule:"min=1,dive,oneof=csv db"`
}

// HasSink 判断是否启用了指定输出目标.
func (c *GenerateConfig) HasSink(t SinkType) bool {
	for _, s := range c.Sinks {
		if s == t {
			return true
		}
	}

	return false
}

// setDefaults 设置生成参数的默认值.
func (c *GenerateConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("generate.output_dir", DefaultOutputDir)
	v.SetDefault("generate.user_count", DefaultUserCount)
	v.SetDefault("generate.moment_iter_count_max", DefaultMomentIterCountMax)
	v.SetDefault("generate.comment_iter_count_max", DefaultCommentIterCountMax)
	v.SetDefault("generate.delete_probability", DefaultDeleteProbability)
	v.SetDefault("generate.image_probability", DefaultImageProbability)
	v.SetDefault("generate.moment_min_age", DefaultMomentMinAge)
	v.SetDefault("generate.moment_max_age", DefaultMomentMaxAge)
	v.SetDefault("generate.null_token", DefaultNullToken)
	v.SetDefault("generate.locale", DefaultLocale)
	v.SetDefault("generate.seed", 0)
	v.SetDefault("generate.tags", DefaultTags)
	v.SetDefault("generate.sinks", []string{DefaultSink})
}
