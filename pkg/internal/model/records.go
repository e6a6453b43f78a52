package model

import (
	"errors"
	"fmt"
	"time"
)

// Record 可写出的一行记录. Fields 的顺序与 Kind().Headers() 一致，缺失的时间为 (*time.Time)(nil).
type Record interface {
	Kind() Kind
	Fields() []any
}

type ProviderType string

const (
	ProviderGoogle ProviderType = "GOOGLE"
	ProviderEmail  ProviderType = "EMAIL"
)

// ProviderTypes 登录方式枚举.
var ProviderTypes = []ProviderType{ProviderGoogle, ProviderEmail}

type WriteType string

const (
	WriteBasic WriteType = "BASIC"
	WriteExtra WriteType = "EXTRA"
)

// WriteTypes moment 写作类型枚举.
var WriteTypes = []WriteType{WriteBasic, WriteExtra}

type EchoType string

const (
	EchoSad       EchoType = "SAD"
	EchoThanks    EchoType = "THANKS"
	EchoTouched   EchoType = "TOUCHED"
	EchoFunny     EchoType = "FUNNY"
	EchoComforted EchoType = "COMFORTED"
	EchoAmazing   EchoType = "AMAZING"
)

// echoTypes 按位置分配给同一评论下的 echo，同一评论内不重复.
var echoTypes = [...]EchoType{EchoSad, EchoThanks, EchoTouched, EchoFunny, EchoComforted, EchoAmazing}

// EchoTypeCount echo 类型数量，也是单条评论 echo 数量的上限.
const EchoTypeCount = len(echoTypes)

// ErrEchoTypeOutOfRange 位置超出 echo 类型枚举.
var ErrEchoTypeOutOfRange = errors.New("echo type position out of range")

// EchoTypeAt 返回第 i 个（从 0 开始）echo 类型.
func EchoTypeAt(i int) (EchoType, error) {
	if i < 0 || i >= EchoTypeCount {
		return "", fmt.Errorf("%w: %d not in [0,%d)", ErrEchoTypeOutOfRange, i, EchoTypeCount)
	}

	return echoTypes[i], nil
}

// User 用户.
type User struct {
	ID            int64        `gorm:"primaryKey;autoIncrement:false"`
	Email         string       `gorm:"size:255;not null"`
	Password      string       `gorm:"size:255;not null"`
	Nickname      string       `gorm:"size:255;uniqueIndex;not null"`
	CreatedAt     time.Time    `gorm:"not null"`
	AvailableStar int          `gorm:"not null"`
	ProviderType  ProviderType `gorm:"size:16;not null"`
	Level         string       `gorm:"size:16;not null"`
	ExpStar       int          `gorm:"not null"`
	DeletedAt     *time.Time
}

func (User) TableName() string { return KindUser.Table() }

func (User) Kind() Kind { return KindUser }

func (u User) Fields() []any {
	return []any{u.ID, u.Email, u.Password, u.Nickname, u.CreatedAt, u.AvailableStar,
		string(u.ProviderType), u.Level, u.ExpStar, u.DeletedAt}
}

// Tag 标签.
type Tag struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false"`
	Name      string    `gorm:"size:64;not null"`
	CreatedAt time.Time `gorm:"not null"`
	DeletedAt *time.Time
}

func (Tag) TableName() string { return KindTag.Table() }

func (Tag) Kind() Kind { return KindTag }

func (t Tag) Fields() []any {
	return []any{t.ID, t.Name, t.CreatedAt, t.DeletedAt}
}

// Moment 用户发布的动态.
type Moment struct {
	ID         int64     `gorm:"primaryKey;autoIncrement:false"`
	MomenterID int64     `gorm:"index;not null"`
	Content    string    `gorm:"type:text;not null"`
	IsMatched  bool      `gorm:"not null"`
	CreatedAt  time.Time `gorm:"index;not null"`
	WriteType  WriteType `gorm:"size:16;not null"`
	DeletedAt  *time.Time
}

func (Moment) TableName() string { return KindMoment.Table() }

func (Moment) Kind() Kind { return KindMoment }

func (m Moment) Fields() []any {
	return []any{m.ID, m.MomenterID, m.Content, m.IsMatched, m.CreatedAt, string(m.WriteType), m.DeletedAt}
}

// MomentImage moment 附图，每个 moment 至多一张.
type MomentImage struct {
	ID           int64     `gorm:"primaryKey;autoIncrement:false"`
	MomentID     int64     `gorm:"index;not null"`
	URL          string    `gorm:"column:url;size:1000;not null"`
	OriginalName string    `gorm:"size:255;not null"`
	CreatedAt    time.Time `gorm:"not null"`
	DeletedAt    *time.Time
}

func (MomentImage) TableName() string { return KindMomentImage.Table() }

func (MomentImage) Kind() Kind { return KindMomentImage }

func (i MomentImage) Fields() []any {
	return []any{i.ID, i.MomentID, i.URL, i.OriginalName, i.CreatedAt, i.DeletedAt}
}

// MomentTag moment 与标签的关联.
type MomentTag struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false"`
	MomentID  int64     `gorm:"index;not null"`
	TagID     int64     `gorm:"index;not null"`
	CreatedAt time.Time `gorm:"not null"`
	DeletedAt *time.Time
}

func (MomentTag) TableName() string { return KindMomentTag.Table() }

func (MomentTag) Kind() Kind { return KindMomentTag }

func (t MomentTag) Fields() []any {
	return []any{t.ID, t.MomentID, t.TagID, t.CreatedAt, t.DeletedAt}
}

// Comment 评论，作者不会是 moment 的作者.
type Comment struct {
	ID          int64     `gorm:"primaryKey;autoIncrement:false"`
	CommenterID int64     `gorm:"index;not null"`
	MomentID    int64     `gorm:"index;not null"`
	Content     string    `gorm:"type:text;not null"`
	CreatedAt   time.Time `gorm:"not null"`
	DeletedAt   *time.Time
}

func (Comment) TableName() string { return KindComment.Table() }

func (Comment) Kind() Kind { return KindComment }

func (c Comment) Fields() []any {
	return []any{c.ID, c.CommenterID, c.MomentID, c.Content, c.CreatedAt, c.DeletedAt}
}

// CommentImage 评论附图，每条评论至多一张.
type CommentImage struct {
	ID           int64     `gorm:"primaryKey;autoIncrement:false"`
	CommentID    int64     `gorm:"index;not null"`
	URL          string    `gorm:"column:url;size:1000;not null"`
	OriginalName string    `gorm:"size:255;not null"`
	CreatedAt    time.Time `gorm:"not null"`
	DeletedAt    *time.Time
}

func (CommentImage) TableName() string { return KindCommentImage.Table() }

func (CommentImage) Kind() Kind { return KindCommentImage }

func (i CommentImage) Fields() []any {
	return []any{i.ID, i.CommentID, i.URL, i.OriginalName, i.CreatedAt, i.DeletedAt}
}

// Echo moment 作者对评论的回应.
type Echo struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false"`
	UserID    int64     `gorm:"index;not null"`
	CommentID int64     `gorm:"index;not null"`
	CreatedAt time.Time `gorm:"not null"`
	Type      EchoType  `gorm:"size:16;not null"`
	DeletedAt *time.Time
}

func (Echo) TableName() string { return KindEcho.Table() }

func (Echo) Kind() Kind { return KindEcho }

func (e Echo) Fields() []any {
	return []any{e.ID, e.UserID, e.CommentID, e.CreatedAt, string(e.Type), e.DeletedAt}
}

// Models 返回所有表模型，用于 AutoMigrate.
func Models() []any {
	return []any{&Tag{}, &User{}, &Moment{}, &MomentImage{}, &MomentTag{}, &Comment{}, &CommentImage{}, &Echo{}}
}
