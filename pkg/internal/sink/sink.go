// Package sink 将生成的记录写出到 CSV 文件或数据库.
//
// Example:
//
//	s, err := sink.OpenCSV("mock-data", `\N`)
//	if err != nil {
//		return err
//	}
//	defer s.Close()
//
//	err = s.Write(model.Tag{ID: 1, Name: "daily"})
package sink

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/yeisme/mockmoments/pkg/internal/model"
)

// TimeLayout CSV 中时间的格式，UTC，精确到微秒.
const TimeLayout = "2006-01-02 15:04:05.000000"

// Sink 记录输出目标. Close 在任何退出路径上都应被调用.
type Sink interface {
	Write(rec model.Record) error
	Close() error
}

// FormatValue 将字段值格式化为 CSV 文本，缺失值输出 null.
func FormatValue(v any, null string) string {
	switch x := v.(type) {
	case nil:
		return null
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.UTC().Format(TimeLayout)
	case *time.Time:
		if x == nil {
			return null
		}

		return x.UTC().Format(TimeLayout)
	default:
		return fmt.Sprint(x)
	}
}

// ParseTime 解析 FormatValue 输出的时间.
func ParseTime(s string) (time.Time, error) {
	return time.ParseInLocation(TimeLayout, s, time.UTC)
}

// multi 扇出到多个 Sink.
type multi struct {
	sinks []Sink
}

// Multi 返回依次写入所有 sinks 的 Sink，Close 会关闭全部 sinks.
func Multi(sinks ...Sink) Sink {
	return &multi{sinks: sinks}
}

func (m *multi) Write(rec model.Record) error {
	for _, s := range m.sinks {
		if err := s.Write(rec); err != nil {
			return err
		}
	}

	return nil
}

func (m *multi) Close() error {
	var errs []error
	for _, s := range m.sinks {
		errs = append(errs, s.Close())
	}

	return errors.Join(errs...)
}

// counting 每写入一行调用一次 fn.
type counting struct {
	Sink
	fn func(model.Kind)
}

// Counting 包装 next，写入成功后回调 fn，用于统计与指标.
func Counting(next Sink, fn func(model.Kind)) Sink {
	return &counting{Sink: next, fn: fn}
}

func (c *counting) Write(rec model.Record) error {
	if err := c.Sink.Write(rec); err != nil {
		return err
	}

	c.fn(rec.Kind())

	return nil
}
