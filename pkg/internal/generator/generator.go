// Package generator 按 标签 → 用户 → moment → 评论 → echo 的顺序生成记录并写入 Sink.
//
// Example:
//
//	stats, err := generator.Generate(ctx, "mock-data", 100, 20)
//	if err != nil {
//		return err
//	}
//	fmt.Println(stats.Counts)
package generator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yeisme/mockmoments/pkg/internal/factory"
	"github.com/yeisme/mockmoments/pkg/internal/faker"
	"github.com/yeisme/mockmoments/pkg/internal/model"
	"github.com/yeisme/mockmoments/pkg/internal/sink"
)

// ErrNegativeCount 用户数或 moment 上限为负.
var ErrNegativeCount = errors.New("count must not be negative")

const (
	// DefaultCommentIterCountMax 每个 moment 评论数量上限（不含）.
	DefaultCommentIterCountMax = 20
	// DefaultNullToken CSV 缺失值占位符.
	DefaultNullToken = `\N`
)

// DefaultTags 固定标签.
var DefaultTags = []string{"일상/생각", "인간관계", "일/성장", "건강/운동", "취미/여가"}

// Options 生成参数.
type Options struct {
	factory.Options

	Tags                []string
	CommentIterCountMax int
}

// DefaultOptions 默认生成参数.
func DefaultOptions() Options {
	return Options{
		Options:             factory.DefaultOptions(),
		Tags:                DefaultTags,
		CommentIterCountMax: DefaultCommentIterCountMax,
	}
}

// Stats 一次运行的统计.
type Stats struct {
	RunID     string               `json:"run_id"`
	StartedAt time.Time            `json:"started_at"`
	Duration  time.Duration        `json:"duration"`
	Counts    map[model.Kind]int64 `json:"-"`
}

// Total 所有记录数量之和.
func (s Stats) Total() int64 {
	var n int64
	for _, c := range s.Counts {
		n += c
	}

	return n
}

// Generator 生成器.
type Generator struct {
	factory *factory.Factory
	fake    faker.Provider
	opts    Options
	logger  zerolog.Logger
}

// New 创建 Generator. p 同时供 factory 与抽样使用，保证整个运行只有一个随机源.
func New(p faker.Provider, opts Options, logger zerolog.Logger, fns ...factory.Option) *Generator {
	return &Generator{
		factory: factory.New(p, opts.Options, fns...),
		fake:    p,
		opts:    opts,
		logger:  logger,
	}
}

// Generate 在 outputDir 下以默认参数生成 CSV 文件. outputDir 必须已存在.
func Generate(ctx context.Context, outputDir string, userCount, momentIterCountMax int) (stats Stats, err error) {
	p, err := faker.New(0, "en")
	if err != nil {
		return Stats{}, err
	}

	s, err := sink.OpenCSV(outputDir, DefaultNullToken)
	if err != nil {
		return Stats{}, err
	}

	defer func() {
		err = errors.Join(err, s.Close())
	}()

	return New(p, DefaultOptions(), zerolog.Nop()).Run(ctx, s, userCount, momentIterCountMax)
}

// Run 生成全部记录并写入 s. s 由调用方关闭.
// 每个用户的 moment 数量取自 [0, momentIterCountMax).
func (g *Generator) Run(ctx context.Context, s sink.Sink, userCount, momentIterCountMax int) (Stats, error) {
	if userCount < 0 || momentIterCountMax < 0 {
		return Stats{}, fmt.Errorf("%w: users=%d moments-max=%d", ErrNegativeCount, userCount, momentIterCountMax)
	}

	stats := Stats{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Counts:    make(map[model.Kind]int64, len(model.Kinds())),
	}

	r := &run{
		Generator: g,
		sink:      sink.Counting(s, func(k model.Kind) { stats.Counts[k]++ }),
		logger:    g.logger.With().Str("run_id", stats.RunID).Logger(),
	}

	// 窗口错误是配置错误，在写出任何 moment 之前失败
	if _, _, err := g.factory.MomentWindow(); err != nil {
		return stats, err
	}

	err := r.all(ctx, userCount, momentIterCountMax)
	stats.Duration = time.Since(stats.StartedAt)

	r.logger.Debug().
		Int64("rows", stats.Total()).
		Dur("duration", stats.Duration).
		Err(err).
		Msg("generation finished")

	return stats, err
}

// sequences 各记录类型独立的自增 id.
type sequences struct {
	tag, user, moment, momentImage, momentTag, comment, commentImage, echo Sequence
}

// run 单次运行的状态.
type run struct {
	*Generator

	sink    sink.Sink
	logger  zerolog.Logger
	seq     sequences
	tagIDs  []int64
	userIDs []int64
}

func (r *run) all(ctx context.Context, userCount, momentIterCountMax int) error {
	for _, name := range r.opts.Tags {
		tag := r.factory.Tag(r.seq.tag.Next(), name)
		if err := r.sink.Write(tag); err != nil {
			return err
		}

		r.tagIDs = append(r.tagIDs, tag.ID)
	}

	r.userIDs = make([]int64, 0, userCount)

	for i := 0; i < userCount; i++ {
		u := r.factory.User(r.seq.user.Next())
		if err := r.sink.Write(u); err != nil {
			return err
		}

		r.userIDs = append(r.userIDs, u.ID)
	}

	for _, authorID := range r.userIDs {
		if err := ctx.Err(); err != nil {
			return err
		}

		n := r.fake.Number(0, momentIterCountMax)
		for i := 0; i < n; i++ {
			if err := r.moment(authorID); err != nil {
				return err
			}
		}
	}

	return nil
}

func (r *run) moment(authorID int64) error {
	m, err := r.factory.Moment(r.seq.moment.Next(), authorID)
	if err != nil {
		return fmt.Errorf("moment for user %d: %w", authorID, err)
	}

	if err := r.sink.Write(m); err != nil {
		return err
	}

	if r.factory.WantImage() {
		if err := r.sink.Write(r.factory.MomentImage(r.seq.momentImage.Next(), m)); err != nil {
			return err
		}
	}

	// 取固定标签列表的前 N 个
	for _, tagID := range r.tagIDs[:r.factory.MomentTagCount(len(r.tagIDs))] {
		if err := r.sink.Write(r.factory.MomentTag(r.seq.momentTag.Next(), m, tagID)); err != nil {
			return err
		}
	}

	candidates := r.commenters(authorID)

	want := r.fake.Number(0, r.opts.CommentIterCountMax)
	if want > len(candidates) {
		r.logger.Debug().
			Int64("moment_id", m.ID).
			Int("requested", want).
			Int("available", len(candidates)).
			Msg("comment count capped at number of other users")

		want = len(candidates)
	}

	for _, commenterID := range candidates[:want] {
		if err := r.comment(m, commenterID); err != nil {
			return err
		}
	}

	return nil
}

// commenters 返回除作者外所有用户的随机排列，按顺序取用即为无放回抽样.
func (r *run) commenters(authorID int64) []int64 {
	ids := make([]int64, 0, len(r.userIDs))

	for _, id := range r.userIDs {
		if id != authorID {
			ids = append(ids, id)
		}
	}

	r.fake.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })

	return ids
}

func (r *run) comment(m model.Moment, commenterID int64) error {
	c := r.factory.Comment(r.seq.comment.Next(), commenterID, m)
	if err := r.sink.Write(c); err != nil {
		return err
	}

	if r.factory.WantImage() {
		if err := r.sink.Write(r.factory.CommentImage(r.seq.commentImage.Next(), c)); err != nil {
			return err
		}
	}

	// [0, EchoTypeCount]，每个位置对应一个不同的 echo 类型
	n := r.fake.Number(0, model.EchoTypeCount+1)
	at := r.factory.EchoTime(c)

	for pos := 0; pos < n; pos++ {
		e, err := r.factory.Echo(r.seq.echo.Next(), m.MomenterID, c, at, pos)
		if err != nil {
			return err
		}

		if err := r.sink.Write(e); err != nil {
			return err
		}
	}

	return nil
}
