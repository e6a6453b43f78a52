package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bytedance/sonic"

	"github.com/yeisme/mockmoments/pkg/internal/model"
)

// ManifestFile 运行清单文件名.
const ManifestFile = "manifest.json"

// ManifestEntry 单个输出文件的描述.
type ManifestEntry struct {
	Kind    string   `json:"kind"`
	File    string   `json:"file"`
	Table   string   `json:"table"`
	Columns []string `json:"columns"`
	Rows    int64    `json:"rows"`
}

// Manifest 一次运行的清单，写在输出目录下.
type Manifest struct {
	RunID              string          `json:"run_id"`
	Version            string          `json:"version"`
	StartedAt          time.Time       `json:"started_at"`
	DurationMS         int64           `json:"duration_ms"`
	UserCount          int             `json:"user_count"`
	MomentIterCountMax int             `json:"moment_iter_count_max"`
	Seed               int64           `json:"seed"`
	NullToken          string          `json:"null_token"`
	Files              []ManifestEntry `json:"files"`
}

// NewManifest 根据统计构建清单.
func NewManifest(stats Stats, version string, userCount, momentIterCountMax int, seed int64, nullToken string) Manifest {
	m := Manifest{
		RunID:              stats.RunID,
		Version:            version,
		StartedAt:          stats.StartedAt,
		DurationMS:         stats.Duration.Milliseconds(),
		UserCount:          userCount,
		MomentIterCountMax: momentIterCountMax,
		Seed:               seed,
		NullToken:          nullToken,
	}

	for _, k := range model.Kinds() {
		m.Files = append(m.Files, ManifestEntry{
			Kind:    k.String(),
			File:    k.FileName(),
			Table:   k.Table(),
			Columns: k.Headers(),
			Rows:    stats.Counts[k],
		})
	}

	return m
}

// WriteManifest 将清单写入 dir/manifest.json.
func WriteManifest(dir string, m Manifest) (string, error) {
	b, err := sonic.ConfigStd.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal manifest: %w", err)
	}

	path := filepath.Join(dir, ManifestFile)
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write manifest: %w", err)
	}

	return path, nil
}

// ReadManifest 读取 dir/manifest.json.
func ReadManifest(dir string) (Manifest, error) {
	var m Manifest

	b, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return m, err
	}

	if err := sonic.ConfigStd.Unmarshal(b, &m); err != nil {
		return m, fmt.Errorf("unmarshal manifest: %w", err)
	}

	return m, nil
}
