package factory_test

import (
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/yeisme/mockmoments/pkg/internal/factory"
	"github.com/yeisme/mockmoments/pkg/internal/faker"
	"github.com/yeisme/mockmoments/pkg/internal/model"
)

const draws = 2000

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newFactory(t *testing.T, opts factory.Options) *factory.Factory {
	t.Helper()

	f, err := faker.New(0, "en")
	if err != nil {
		t.Fatalf("create faker: %v", err)
	}

	return factory.New(f, opts, factory.WithClock(func() time.Time { return fixedNow }))
}

// TestMomentWindow 测试 moment 创建时间位于 [now-3y, now-10h).
func TestMomentWindow(t *testing.T) {
	opts := factory.DefaultOptions()
	f := newFactory(t, opts)
	lower := fixedNow.Add(-opts.MomentMaxAge)
	upper := fixedNow.Add(-opts.MomentMinAge)

	for i := 0; i < draws; i++ {
		m, err := f.Moment(int64(i+1), 7)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if m.CreatedAt.Before(lower) || !m.CreatedAt.Before(upper) {
			t.Fatalf("created_at %v outside [%v, %v)", m.CreatedAt, lower, upper)
		}

		if m.MomenterID != 7 || m.IsMatched {
			t.Fatalf("unexpected moment %+v", m)
		}

		if m.WriteType != model.WriteBasic && m.WriteType != model.WriteExtra {
			t.Fatalf("unexpected write type %s", m.WriteType)
		}

		if m.DeletedAt != nil && (m.DeletedAt.Before(m.CreatedAt) || !m.DeletedAt.Before(fixedNow)) {
			t.Fatalf("deleted_at %v outside [%v, %v)", *m.DeletedAt, m.CreatedAt, fixedNow)
		}
	}
}

// TestMomentInvalidWindow 测试时间窗口倒置时返回错误.
func TestMomentInvalidWindow(t *testing.T) {
	for _, opts := range []factory.Options{
		{MomentMinAge: 48 * time.Hour, MomentMaxAge: time.Hour},
		{MomentMinAge: time.Hour, MomentMaxAge: time.Hour},
	} {
		f := newFactory(t, opts)
		if _, err := f.Moment(1, 1); !errors.Is(err, factory.ErrInvalidTimeWindow) {
			t.Errorf("min=%s max=%s: expected ErrInvalidTimeWindow, got %v", opts.MomentMinAge, opts.MomentMaxAge, err)
		}
	}
}

// TestMaybeDelete 测试删除概率边界与时间区间.
func TestMaybeDelete(t *testing.T) {
	createdAt := fixedNow.Add(-24 * time.Hour)

	never := newFactory(t, factory.Options{DeleteProbability: 0})
	always := newFactory(t, factory.Options{DeleteProbability: 1})

	for i := 0; i < draws; i++ {
		if d := never.MaybeDelete(createdAt); d != nil {
			t.Fatalf("probability 0 produced deleted_at %v", *d)
		}

		d := always.MaybeDelete(createdAt)
		if d == nil {
			t.Fatal("probability 1 produced no deleted_at")
		}

		if d.Before(createdAt) || !d.Before(fixedNow) {
			t.Fatalf("deleted_at %v outside [%v, %v)", *d, createdAt, fixedNow)
		}
	}

	if d := always.MaybeDelete(fixedNow); d != nil {
		t.Errorf("created_at == now must not be deleted, got %v", *d)
	}

	if d := always.MaybeDelete(fixedNow.Add(time.Minute)); d != nil {
		t.Errorf("created_at in the future must not be deleted, got %v", *d)
	}
}

// TestMomentTagCount 测试标签数量位于 [1,3] 且不超过可用数量.
func TestMomentTagCount(t *testing.T) {
	f := newFactory(t, factory.DefaultOptions())

	for _, available := range []int{0, 1, 2, 5} {
		seen := make(map[int]bool)

		for i := 0; i < draws; i++ {
			n := f.MomentTagCount(available)
			if n > available || n > 3 || (available > 0 && n < 1) {
				t.Fatalf("available=%d: got %d", available, n)
			}

			seen[n] = true
		}

		if available >= 3 && len(seen) != 3 {
			t.Errorf("available=%d: expected counts 1..3 to appear, got %v", available, seen)
		}
	}
}

// TestCommentAndEchoTimes 测试评论与 echo 的时间位于父记录之后一小时内.
func TestCommentAndEchoTimes(t *testing.T) {
	f := newFactory(t, factory.Options{DeleteProbability: 0.5})
	m := model.Moment{ID: 3, MomenterID: 1, CreatedAt: fixedNow.Add(-72 * time.Hour)}

	for i := 0; i < draws; i++ {
		c := f.Comment(int64(i+1), 2, m)
		if !c.CreatedAt.After(m.CreatedAt) || c.CreatedAt.After(m.CreatedAt.Add(time.Hour)) {
			t.Fatalf("comment created_at %v outside (%v, +1h]", c.CreatedAt, m.CreatedAt)
		}

		if c.DeletedAt != nil && c.DeletedAt.Before(c.CreatedAt) {
			t.Fatalf("comment deleted_at %v before created_at %v", *c.DeletedAt, c.CreatedAt)
		}

		at := f.EchoTime(c)
		if !at.After(c.CreatedAt) || at.After(c.CreatedAt.Add(time.Hour)) {
			t.Fatalf("echo time %v outside (%v, +1h]", at, c.CreatedAt)
		}

		e, err := f.Echo(1, m.MomenterID, c, at, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if (c.DeletedAt == nil) != (e.DeletedAt == nil) {
			t.Fatalf("echo deletion must follow comment deletion: comment=%v echo=%v", c.DeletedAt, e.DeletedAt)
		}

		if e.DeletedAt != nil && (e.DeletedAt.Before(e.CreatedAt) || !e.DeletedAt.Before(fixedNow)) {
			t.Fatalf("echo deleted_at %v outside [%v, %v)", *e.DeletedAt, e.CreatedAt, fixedNow)
		}
	}
}

// TestEchoOutOfRange 测试 echo 位置越界时返回错误而不是越界访问.
func TestEchoOutOfRange(t *testing.T) {
	f := newFactory(t, factory.DefaultOptions())
	c := model.Comment{ID: 1, CreatedAt: fixedNow.Add(-time.Hour)}

	if _, err := f.Echo(1, 1, c, fixedNow, model.EchoTypeCount); !errors.Is(err, model.ErrEchoTypeOutOfRange) {
		t.Errorf("expected ErrEchoTypeOutOfRange, got %v", err)
	}
}

// TestChildrenCopyParentTimes 测试附图与标签沿用父记录时间戳.
func TestChildrenCopyParentTimes(t *testing.T) {
	f := newFactory(t, factory.DefaultOptions())
	deleted := fixedNow.Add(-time.Hour)
	m := model.Moment{ID: 9, CreatedAt: fixedNow.Add(-48 * time.Hour), DeletedAt: &deleted}

	img := f.MomentImage(1, m)
	if img.MomentID != m.ID || !img.CreatedAt.Equal(m.CreatedAt) || img.DeletedAt != m.DeletedAt {
		t.Errorf("moment image does not copy parent: %+v", img)
	}

	tag := f.MomentTag(1, m, 4)
	if tag.MomentID != m.ID || tag.TagID != 4 || !tag.CreatedAt.Equal(m.CreatedAt) || tag.DeletedAt != m.DeletedAt {
		t.Errorf("moment tag does not copy parent: %+v", tag)
	}

	c := model.Comment{ID: 5, CreatedAt: fixedNow.Add(-30 * time.Hour)}

	cimg := f.CommentImage(2, c)
	if cimg.CommentID != c.ID || !cimg.CreatedAt.Equal(c.CreatedAt) || cimg.DeletedAt != nil {
		t.Errorf("comment image does not copy parent: %+v", cimg)
	}
}

// TestUser 测试用户字段范围.
func TestUser(t *testing.T) {
	f := newFactory(t, factory.DefaultOptions())

	for i := int64(1); i <= 200; i++ {
		u := f.User(i)

		if !strings.HasSuffix(u.Nickname, strconv.FormatInt(i, 10)) {
			t.Fatalf("nickname %q should end with id %d", u.Nickname, i)
		}

		if u.AvailableStar < 0 || u.AvailableStar >= 1000 || u.ExpStar < 0 || u.ExpStar >= 5000 {
			t.Fatalf("stars out of range: %+v", u)
		}

		lv, err := strconv.Atoi(strings.TrimPrefix(u.Level, "LV"))
		if err != nil || lv < 1 || lv > 9 {
			t.Fatalf("unexpected level %q", u.Level)
		}

		if u.ProviderType != model.ProviderGoogle && u.ProviderType != model.ProviderEmail {
			t.Fatalf("unexpected provider %s", u.ProviderType)
		}

		if u.DeletedAt != nil {
			t.Fatal("users are never deleted")
		}
	}
}

// TestWantImage 测试附图概率边界.
func TestWantImage(t *testing.T) {
	never := newFactory(t, factory.Options{ImageProbability: 0})
	always := newFactory(t, factory.Options{ImageProbability: 1})

	for i := 0; i < draws; i++ {
		if never.WantImage() || !always.WantImage() {
			t.Fatal("image probability bounds not honoured")
		}
	}
}
