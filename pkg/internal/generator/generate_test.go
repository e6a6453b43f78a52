package generator_test

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/yeisme/mockmoments/pkg/internal/generator"
	"github.com/yeisme/mockmoments/pkg/internal/model"
	"github.com/yeisme/mockmoments/pkg/internal/sink"
)

// TestGenerateZeroUsers 测试 userCount=0 时用户及其后代文件只有表头.
func TestGenerateZeroUsers(t *testing.T) {
	dir := t.TempDir()

	stats, err := generator.Generate(context.Background(), dir, 0, 10)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	for _, k := range model.Kinds() {
		tbl, err := sink.ReadCSVFile(dir, k, generator.DefaultNullToken)
		if err != nil {
			t.Fatalf("%s: %v", k, err)
		}

		want := 0
		if k == model.KindTag {
			want = len(generator.DefaultTags)
		}

		if len(tbl.Rows) != want {
			t.Errorf("%s: expected %d rows, got %d", k, want, len(tbl.Rows))
		}

		if int64(len(tbl.Rows)) != stats.Counts[k] {
			t.Errorf("%s: stats count %d, file rows %d", k, stats.Counts[k], len(tbl.Rows))
		}
	}
}

// TestGenerateReferentialIntegrity 测试文件之间的外键均能在父文件中找到.
func TestGenerateReferentialIntegrity(t *testing.T) {
	dir := t.TempDir()

	if _, err := generator.Generate(context.Background(), dir, 8, 5); err != nil {
		t.Fatalf("generate: %v", err)
	}

	ids := func(k model.Kind) map[string]bool {
		tbl, err := sink.ReadCSVFile(dir, k, generator.DefaultNullToken)
		if err != nil {
			t.Fatalf("%s: %v", k, err)
		}

		out := make(map[string]bool, len(tbl.Rows))
		for _, row := range tbl.Rows {
			out[*row[0]] = true
		}

		return out
	}

	parents := map[model.Kind]map[string]bool{
		model.KindUser:    ids(model.KindUser),
		model.KindTag:     ids(model.KindTag),
		model.KindMoment:  ids(model.KindMoment),
		model.KindComment: ids(model.KindComment),
	}

	refs := []struct {
		child  model.Kind
		column string
		parent model.Kind
	}{
		{model.KindMoment, "momenter_id", model.KindUser},
		{model.KindMomentImage, "moment_id", model.KindMoment},
		{model.KindMomentTag, "moment_id", model.KindMoment},
		{model.KindMomentTag, "tag_id", model.KindTag},
		{model.KindComment, "commenter_id", model.KindUser},
		{model.KindComment, "moment_id", model.KindMoment},
		{model.KindCommentImage, "comment_id", model.KindComment},
		{model.KindEcho, "user_id", model.KindUser},
		{model.KindEcho, "comment_id", model.KindComment},
	}

	for _, ref := range refs {
		tbl, err := sink.ReadCSVFile(dir, ref.child, generator.DefaultNullToken)
		if err != nil {
			t.Fatalf("%s: %v", ref.child, err)
		}

		col := -1
		for i, h := range tbl.Header {
			if h == ref.column {
				col = i
			}
		}

		if col < 0 {
			t.Fatalf("%s: column %s missing", ref.child, ref.column)
		}

		for _, row := range tbl.Rows {
			if len(row) != len(tbl.Header) {
				t.Fatalf("%s: row has %d fields, header has %d", ref.child, len(row), len(tbl.Header))
			}

			if _, err := strconv.ParseInt(*row[col], 10, 64); err != nil {
				t.Fatalf("%s.%s: %q is not an integer", ref.child, ref.column, *row[col])
			}

			if !parents[ref.parent][*row[col]] {
				t.Fatalf("%s.%s=%s has no row in %s", ref.child, ref.column, *row[col], ref.parent.FileName())
			}
		}
	}
}

// TestGenerateMissingDir 测试输出目录不存在时返回错误.
func TestGenerateMissingDir(t *testing.T) {
	if _, err := generator.Generate(context.Background(), filepath.Join(t.TempDir(), "nope"), 1, 1); err == nil {
		t.Error("expected error for missing output directory")
	}
}

// TestManifest 测试清单写出与读回.
func TestManifest(t *testing.T) {
	dir := t.TempDir()

	stats, err := generator.Generate(context.Background(), dir, 3, 3)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	m := generator.NewManifest(stats, "test", 3, 3, 0, generator.DefaultNullToken)

	path, err := generator.WriteManifest(dir, m)
	if err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("manifest missing: %v", err)
	}

	got, err := generator.ReadManifest(dir)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}

	if got.RunID != stats.RunID || len(got.Files) != len(model.Kinds()) {
		t.Fatalf("unexpected manifest %+v", got)
	}

	for _, f := range got.Files {
		if f.File == model.KindUser.FileName() && f.Rows != 3 {
			t.Errorf("expected 3 users in manifest, got %d", f.Rows)
		}
	}

	if got.NullToken != `\N` {
		t.Errorf("null token not preserved, got %q", got.NullToken)
	}
}
