// Package s3 将生成结果上传到 MinIO/S3.
package s3

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	minio "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"golang.org/x/sync/errgroup"

	"github.com/yeisme/mockmoments/pkg/configs"
	nlog "github.com/yeisme/mockmoments/pkg/log"
)

// Client 包装 MinIO 客户端.
type Client struct {
	*minio.Client

	cfg configs.S3Config
}

// Object 已上传对象.
type Object struct {
	Key  string
	Size int64
}

// NewClient 创建 MinIO 客户端，不访问网络.
func NewClient(cfg configs.S3Config) (*Client, error) {
	endpoint := cfg.Endpoint
	// 允许用户传完整 schema endpoint（http:// 或 https://）
	if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
		endpoint = u.Host
		if u.Scheme == "https" {
			cfg.UseSSL = true
		}
	}

	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	cli.SetAppInfo("mockmoments", configs.AppVersion)

	return &Client{Client: cli, cfg: cfg}, nil
}

// New 创建客户端并确保 bucket 存在.
func New(ctx context.Context, cfg configs.S3Config) (*Client, error) {
	c, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}

	if err := c.EnsureBucket(ctx); err != nil {
		return nil, err
	}

	nlog.Logger().Info().
		Str("endpoint", cfg.Endpoint).
		Str("bucket", cfg.BucketName).
		Msg("s3 connected")

	return c, nil
}

// EnsureBucket bucket 不存在时创建.
func (c *Client) EnsureBucket(ctx context.Context) error {
	bkt := c.cfg.BucketName

	exists, err := c.BucketExists(ctx, bkt)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", bkt, err)
	}

	if exists {
		return nil
	}

	if err := c.MakeBucket(ctx, bkt, minio.MakeBucketOptions{Region: c.cfg.Region}); err != nil {
		return fmt.Errorf("create bucket %s: %w", bkt, err)
	}

	nlog.Logger().Info().Str("bucket", bkt).Msg("bucket created")

	return nil
}

// ObjectKey 返回文件在 bucket 中的对象名：prefix/runID/文件名.
func ObjectKey(prefix, runID, file string) string {
	return path.Join(strings.Trim(prefix, "/"), runID, filepath.Base(file))
}

// ContentType 按扩展名返回对象的 Content-Type.
func ContentType(file string) string {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".csv":
		return "text/csv; charset=utf-8"
	case ".json":
		return "application/json"
	case ".prom":
		return "text/plain; version=0.0.4"
	default:
		return "application/octet-stream"
	}
}

// UploadRun 并发上传一次运行的全部文件，并发数由 Concurrency 限制.
// 任一文件失败时取消其余上传并返回第一个错误.
func (c *Client) UploadRun(ctx context.Context, runID string, files []string) ([]Object, error) {
	objects := make([]Object, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(c.cfg.Concurrency, 1))

	for i, file := range files {
		g.Go(func() error {
			key := ObjectKey(c.cfg.Prefix, runID, file)

			info, err := c.FPutObject(ctx, c.cfg.BucketName, key, file, minio.PutObjectOptions{
				ContentType: ContentType(file),
			})
			if err != nil {
				return fmt.Errorf("upload %s: %w", file, err)
			}

			objects[i] = Object{Key: key, Size: info.Size}

			nlog.Logger().Debug().Str("key", key).Int64("size", info.Size).Msg("object uploaded")

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return objects, nil
}

// Config 返回客户端使用的配置.
func (c *Client) Config() configs.S3Config {
	return c.cfg
}
