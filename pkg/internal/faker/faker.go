// Package faker 提供生成记录所需的假数据，基于 gofakeit.
package faker

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

// ErrUnsupportedLocale gofakeit 不支持的语言.
// gofakeit 只内置英文数据, 因此韩文 "ko" 等语言同样被拒绝; 标签名称不依赖语言, 仍为韩文.
var ErrUnsupportedLocale = errors.New("unsupported locale")

// supportedLocales gofakeit 仅内置英文数据.
var supportedLocales = map[string]bool{"en": true, "en-us": true, "en_us": true}

// Provider 假数据来源. 所有区间均为左闭右开.
type Provider interface {
	Email() string
	Password() string
	Username() string
	Sentence(words int) string
	URL() string
	FileName() string
	// Number 返回 [min, max) 内的整数，max <= min 时返回 min.
	Number(min, max int) int
	// Float64 返回 [0, 1) 内的浮点数.
	Float64() float64
	// Between 返回 [start, end) 内的时间，end <= start 时返回 start.
	Between(start, end time.Time) time.Time
	Shuffle(n int, swap func(i, j int))
}

// Faker 使用 gofakeit 实现 Provider.
type Faker struct {
	*gofakeit.Faker
	locale string
}

// New 创建 Faker. seed 为 0 时使用随机种子，结果不可复现.
func New(seed int64, locale string) (*Faker, error) {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if locale == "" {
		locale = "en"
	}

	if !supportedLocales[locale] {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLocale, locale)
	}

	return &Faker{Faker: gofakeit.New(seed), locale: locale}, nil
}

// Locale 当前语言.
func (f *Faker) Locale() string {
	return f.locale
}

func (f *Faker) Password() string {
	return f.Faker.Password(true, true, true, true, false, 12)
}

func (f *Faker) Sentence(words int) string {
	return f.Faker.Sentence(words)
}

// FileName 随机文件名，例如 sunset.jpg.
func (f *Faker) FileName() string {
	return strings.ToLower(f.Faker.Word()) + "." + f.Faker.FileExtension()
}

func (f *Faker) Number(min, max int) int {
	if max <= min {
		return min
	}

	return min + f.Rand.Intn(max-min)
}

func (f *Faker) Float64() float64 {
	return f.Rand.Float64()
}

func (f *Faker) Between(start, end time.Time) time.Time {
	span := end.Sub(start)
	if span <= 0 {
		return start
	}

	return start.Add(time.Duration(f.Rand.Int63n(int64(span))))
}

func (f *Faker) Shuffle(n int, swap func(i, j int)) {
	f.Rand.Shuffle(n, swap)
}
