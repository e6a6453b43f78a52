package s3_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/yeisme/mockmoments/pkg/configs"
	"github.com/yeisme/mockmoments/pkg/internal/storage/s3"
)

// TestObjectKey 测试对象名拼接.
func TestObjectKey(t *testing.T) {
	cases := []struct {
		prefix, runID, file, want string
	}{
		{"runs", "abc", "/tmp/out/users.csv", "runs/abc/users.csv"},
		{"/runs/", "abc", "moments.csv", "runs/abc/moments.csv"},
		{"", "abc", "out/manifest.json", "abc/manifest.json"},
	}

	for _, c := range cases {
		if got := s3.ObjectKey(c.prefix, c.runID, c.file); got != c.want {
			t.Errorf("ObjectKey(%q, %q, %q) = %q, want %q", c.prefix, c.runID, c.file, got, c.want)
		}
	}
}

// TestContentType 测试扩展名映射.
func TestContentType(t *testing.T) {
	if got := s3.ContentType("users.CSV"); got != "text/csv; charset=utf-8" {
		t.Errorf("unexpected csv content type %q", got)
	}

	if got := s3.ContentType("manifest.json"); got != "application/json" {
		t.Errorf("unexpected json content type %q", got)
	}

	if got := s3.ContentType("blob"); got != "application/octet-stream" {
		t.Errorf("unexpected default content type %q", got)
	}
}

// TestNewClientSchemeEndpoint 测试带 schema 的 endpoint.
func TestNewClientSchemeEndpoint(t *testing.T) {
	c, err := s3.NewClient(configs.S3Config{Endpoint: "https://minio.example.com:9000", BucketName: "b"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if !c.Config().UseSSL {
		t.Error("https endpoint should enable SSL")
	}

	if c.EndpointURL().Host != "minio.example.com:9000" {
		t.Errorf("unexpected host %q", c.EndpointURL().Host)
	}
}

// TestUploadRunMissingFile 测试本地文件不存在时在访问网络前失败.
func TestUploadRunMissingFile(t *testing.T) {
	c, err := s3.NewClient(configs.S3Config{Endpoint: "localhost:1", BucketName: "b", Concurrency: 2})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	missing := filepath.Join(t.TempDir(), "missing.csv")

	if _, err := c.UploadRun(context.Background(), "run", []string{missing}); err == nil {
		t.Fatal("expected error for missing file")
	}
}
