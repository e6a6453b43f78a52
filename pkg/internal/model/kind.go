// Package model 定义生成的八类记录以及它们在目标表结构中的列顺序.
package model

import "fmt"

// Kind 记录类型，取值集合封闭.
type Kind int

const (
	KindTag Kind = iota
	KindUser
	KindMoment
	KindMomentImage
	KindMomentTag
	KindComment
	KindCommentImage
	KindEcho

	kindCount
)

// kindSpec 记录类型对应的文件名、表名与列名.
type kindSpec struct {
	name    string
	file    string
	table   string
	headers []string
}

var kindSpecs = [kindCount]kindSpec{
	KindTag: {
		name: "tag", file: "tags.csv", table: "tags",
		headers: []string{"id", "name", "created_at", "deleted_at"},
	},
	KindUser: {
		name: "user", file: "users.csv", table: "users",
		headers: []string{"id", "email", "password", "nickname", "created_at", "available_star",
			"provider_type", "level", "exp_star", "deleted_at"},
	},
	KindMoment: {
		name: "moment", file: "moments.csv", table: "moments",
		headers: []string{"id", "momenter_id", "content", "is_matched", "created_at", "write_type", "deleted_at"},
	},
	KindMomentImage: {
		name: "moment_image", file: "momentImages.csv", table: "moment_images",
		headers: []string{"id", "moment_id", "url", "original_name", "created_at", "deleted_at"},
	},
	KindMomentTag: {
		name: "moment_tag", file: "momentTags.csv", table: "moment_tags",
		headers: []string{"id", "moment_id", "tag_id", "created_at", "deleted_at"},
	},
	KindComment: {
		name: "comment", file: "comments.csv", table: "comments",
		headers: []string{"id", "commenter_id", "moment_id", "content", "created_at", "deleted_at"},
	},
	KindCommentImage: {
		name: "comment_image", file: "commentImages.csv", table: "comment_images",
		headers: []string{"id", "comment_id", "url", "original_name", "created_at", "deleted_at"},
	},
	KindEcho: {
		name: "echo", file: "echos.csv", table: "echos",
		headers: []string{"id", "user_id", "comment_id", "created_at", "type", "deleted_at"},
	},
}

// Kinds 返回所有记录类型，顺序即写出顺序.
func Kinds() []Kind {
	kinds := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		kinds = append(kinds, k)
	}

	return kinds
}

// Valid 判断是否为已声明的记录类型.
func (k Kind) Valid() bool {
	return k >= 0 && k < kindCount
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", int(k))
	}

	return kindSpecs[k].name
}

// FileName 输出文件名.
func (k Kind) FileName() string {
	return kindSpecs[k].file
}

// Table 目标表名.
func (k Kind) Table() string {
	return kindSpecs[k].table
}

// Headers 返回列名副本，顺序与 Record.Fields 一致.
func (k Kind) Headers() []string {
	return append([]string(nil), kindSpecs[k].headers...)
}
