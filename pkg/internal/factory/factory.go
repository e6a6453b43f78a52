// Package factory 根据外键、假数据和时间约束构造单条记录.
//
// 时间约束：子记录的创建时间不早于父记录，删除时间位于 [created_at, now) 内.
package factory

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/yeisme/mockmoments/pkg/internal/faker"
	"github.com/yeisme/mockmoments/pkg/internal/model"
)

const (
	// childWindow 评论与 echo 相对父记录的最大延迟.
	childWindow = time.Hour

	momentWords  = 10
	commentWords = 5

	maxAvailableStar = 1000
	maxExpStar       = 5000
	minLevel         = 1
	maxLevel         = 10
	maxTagsPerMoment = 3
)

// ErrInvalidTimeWindow moment 创建时间窗口的下界不早于上界，属于配置错误.
var ErrInvalidTimeWindow = errors.New("moment time window lower bound must be before upper bound")

// Options 生成概率与时间窗口.
type Options struct {
	DeleteProbability float64
	ImageProbability  float64
	// moment 创建时间位于 [now-MomentMaxAge, now-MomentMinAge)
	MomentMinAge time.Duration
	MomentMaxAge time.Duration
}

// DefaultOptions 默认概率与时间窗口.
func DefaultOptions() Options {
	return Options{
		DeleteProbability: 0.05,
		ImageProbability:  0.5,
		MomentMinAge:      10 * time.Hour,
		MomentMaxAge:      3 * 365 * 24 * time.Hour,
	}
}

// Factory 记录工厂.
type Factory struct {
	fake faker.Provider
	opts Options
	now  func() time.Time
}

// Option 工厂可选项.
type Option func(*Factory)

// WithClock 替换当前时间来源.
func WithClock(now func() time.Time) Option {
	return func(f *Factory) {
		f.now = now
	}
}

// New 创建 Factory.
func New(p faker.Provider, opts Options, fns ...Option) *Factory {
	f := &Factory{fake: p, opts: opts, now: time.Now}
	for _, fn := range fns {
		fn(f)
	}

	return f
}

// Now 当前时间（UTC）.
func (f *Factory) Now() time.Time {
	return f.now().UTC()
}

// Tag 创建标签，创建时间为当前时间，不会被删除.
func (f *Factory) Tag(id int64, name string) model.Tag {
	return model.Tag{ID: id, Name: name, CreatedAt: f.Now()}
}

// User 创建用户，昵称附加 id 以保证唯一.
func (f *Factory) User(id int64) model.User {
	return model.User{
		ID:            id,
		Email:         f.fake.Email(),
		Password:      f.fake.Password(),
		Nickname:      f.fake.Username() + strconv.FormatInt(id, 10),
		CreatedAt:     f.Now(),
		AvailableStar: f.fake.Number(0, maxAvailableStar),
		ProviderType:  model.ProviderTypes[f.fake.Number(0, len(model.ProviderTypes))],
		Level:         "LV" + strconv.Itoa(f.fake.Number(minLevel, maxLevel)),
		ExpStar:       f.fake.Number(0, maxExpStar),
	}
}

// MomentWindow 返回 moment 创建时间区间 [start, end).
func (f *Factory) MomentWindow() (time.Time, time.Time, error) {
	now := f.Now()
	start := now.Add(-f.opts.MomentMaxAge)
	end := now.Add(-f.opts.MomentMinAge)

	if !start.Before(end) {
		return start, end, fmt.Errorf("%w: [%s, %s)", ErrInvalidTimeWindow,
			start.Format(time.RFC3339), end.Format(time.RFC3339))
	}

	return start, end, nil
}

// Moment 创建 moment.
func (f *Factory) Moment(id, authorID int64) (model.Moment, error) {
	start, end, err := f.MomentWindow()
	if err != nil {
		return model.Moment{}, err
	}

	createdAt := f.fake.Between(start, end)

	return model.Moment{
		ID:         id,
		MomenterID: authorID,
		Content:    f.fake.Sentence(momentWords),
		IsMatched:  false,
		CreatedAt:  createdAt,
		WriteType:  model.WriteTypes[f.fake.Number(0, len(model.WriteTypes))],
		DeletedAt:  f.MaybeDelete(createdAt),
	}, nil
}

// WantImage 按 ImageProbability 决定父记录是否附图.
func (f *Factory) WantImage() bool {
	return f.fake.Float64() < f.opts.ImageProbability
}

// MomentImage 创建 moment 附图，时间戳沿用 moment.
func (f *Factory) MomentImage(id int64, m model.Moment) model.MomentImage {
	return model.MomentImage{
		ID:           id,
		MomentID:     m.ID,
		URL:          f.fake.URL(),
		OriginalName: f.fake.FileName(),
		CreatedAt:    m.CreatedAt,
		DeletedAt:    m.DeletedAt,
	}
}

// MomentTagCount 返回 1~3 之间的标签数量，不超过 available.
func (f *Factory) MomentTagCount(available int) int {
	return min(f.fake.Number(1, maxTagsPerMoment+1), available)
}

// MomentTag 创建 moment 与标签的关联，时间戳沿用 moment.
func (f *Factory) MomentTag(id int64, m model.Moment, tagID int64) model.MomentTag {
	return model.MomentTag{
		ID:        id,
		MomentID:  m.ID,
		TagID:     tagID,
		CreatedAt: m.CreatedAt,
		DeletedAt: m.DeletedAt,
	}
}

// Comment 创建评论，创建时间位于 (moment.CreatedAt, moment.CreatedAt+1h].
func (f *Factory) Comment(id, commenterID int64, m model.Moment) model.Comment {
	createdAt := f.after(m.CreatedAt)

	return model.Comment{
		ID:          id,
		CommenterID: commenterID,
		MomentID:    m.ID,
		Content:     f.fake.Sentence(commentWords),
		CreatedAt:   createdAt,
		DeletedAt:   f.MaybeDelete(createdAt),
	}
}

// CommentImage 创建评论附图，时间戳沿用评论.
func (f *Factory) CommentImage(id int64, c model.Comment) model.CommentImage {
	return model.CommentImage{
		ID:           id,
		CommentID:    c.ID,
		URL:          f.fake.URL(),
		OriginalName: f.fake.FileName(),
		CreatedAt:    c.CreatedAt,
		DeletedAt:    c.DeletedAt,
	}
}

// EchoTime 返回同一评论下所有 echo 共用的创建时间.
func (f *Factory) EchoTime(c model.Comment) time.Time {
	return f.after(c.CreatedAt)
}

// Echo 创建第 position 个 echo. 评论已删除时 echo 随之删除，删除时间不早于 echo 创建时间.
func (f *Factory) Echo(id, userID int64, c model.Comment, at time.Time, position int) (model.Echo, error) {
	typ, err := model.EchoTypeAt(position)
	if err != nil {
		return model.Echo{}, err
	}

	var deletedAt *time.Time
	if c.DeletedAt != nil {
		d := *c.DeletedAt
		if d.Before(at) {
			d = at
		}

		deletedAt = &d
	}

	return model.Echo{
		ID:        id,
		UserID:    userID,
		CommentID: c.ID,
		CreatedAt: at,
		Type:      typ,
		DeletedAt: deletedAt,
	}, nil
}

// MaybeDelete 以 DeleteProbability 的概率返回 [createdAt, now) 内的删除时间；
// createdAt 不早于 now 时不删除.
func (f *Factory) MaybeDelete(createdAt time.Time) *time.Time {
	if f.fake.Float64() >= f.opts.DeleteProbability {
		return nil
	}

	now := f.Now()
	if !createdAt.Before(now) {
		return nil
	}

	d := f.fake.Between(createdAt, now)

	return &d
}

// after 返回 (ref, ref+1h] 内的时间.
func (f *Factory) after(ref time.Time) time.Time {
	return f.fake.Between(ref, ref.Add(childWindow)).Add(time.Nanosecond)
}
