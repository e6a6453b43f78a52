// Package storage 聚合生成结果的外部存储：数据库输出与对象存储上传.
//
// Example:
//
//	mgr, err := storage.Init(ctx, configs.GetConfig())
//	if err != nil {
//		return err
//	}
//	defer mgr.Close()
//
//	if mgr.DB != nil {
//		// 写入数据库
//	}
package storage

import (
	"context"
	"errors"

	"github.com/yeisme/mockmoments/pkg/configs"
	dbc "github.com/yeisme/mockmoments/pkg/internal/storage/db"
	s3c "github.com/yeisme/mockmoments/pkg/internal/storage/s3"
	nlog "github.com/yeisme/mockmoments/pkg/log"
)

// Manager 聚合所有存储资源，未启用的资源为 nil.
type Manager struct {
	S3 *s3c.Client
	DB *dbc.Client
}

// Init 按配置初始化存储. 只有 generate.sinks 包含 db 时连接数据库，只有 s3.enabled 时连接对象存储.
func Init(ctx context.Context, cfg *configs.AppConfig) (*Manager, error) {
	m := &Manager{}

	if cfg.Generate.HasSink(configs.SinkDB) {
		dbi, err := dbc.New(ctx, cfg.DB,
			dbc.WithMetrics(cfg.Metrics.Enabled && cfg.Metrics.DBMetrics),
			dbc.WithDebug(cfg.Debug),
		)
		if err != nil {
			return nil, err
		}

		m.DB = dbi
	}

	if cfg.S3.Enabled {
		s3i, err := s3c.New(ctx, cfg.S3)
		if err != nil {
			return nil, errors.Join(err, m.Close())
		}

		m.S3 = s3i
	}

	nlog.Logger().Debug().
		Bool("db", m.DB != nil).
		Bool("s3", m.S3 != nil).
		Msg("storage manager initialized")

	return m, nil
}

// Close 释放已打开的资源.
func (m *Manager) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}

	return nil
}
