package sink

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yeisme/mockmoments/pkg/internal/model"
)

// DefaultBatchSize 数据库批量写入默认大小.
const DefaultBatchSize = 500

// DB 通过 GORM 批量写入目标表.
type DB struct {
	ctx       context.Context
	db        *gorm.DB
	batchSize int
	pending   map[model.Kind][]map[string]any
	closed    bool
}

// NewDB 创建数据库 Sink. migrate 为 true 时先自动迁移全部表.
func NewDB(ctx context.Context, db *gorm.DB, batchSize int, migrate bool) (*DB, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	if migrate {
		if err := db.WithContext(ctx).AutoMigrate(model.Models()...); err != nil {
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
	}

	return &DB{
		ctx:       ctx,
		db:        db,
		batchSize: batchSize,
		pending:   make(map[model.Kind][]map[string]any),
	}, nil
}

// Write 缓存一行，达到 batchSize 时写入.
func (d *DB) Write(rec model.Record) error {
	if d.closed {
		return fmt.Errorf("write %s: sink closed", rec.Kind())
	}

	k := rec.Kind()
	d.pending[k] = append(d.pending[k], rowMap(rec))

	if len(d.pending[k]) >= d.batchSize {
		return d.flush(d.ctx, k)
	}

	return nil
}

// Close 写入剩余的行. ctx 已取消时仍写入, 保证中断前的行完整落库.
func (d *DB) Close() error {
	if d.closed {
		return nil
	}

	d.closed = true

	ctx := context.WithoutCancel(d.ctx)

	var errs []error
	for _, k := range model.Kinds() {
		errs = append(errs, d.flush(ctx, k))
	}

	return errors.Join(errs...)
}

func (d *DB) flush(ctx context.Context, k model.Kind) error {
	rows := d.pending[k]
	if len(rows) == 0 {
		return nil
	}

	d.pending[k] = nil

	if err := d.db.WithContext(ctx).Table(k.Table()).Create(rows).Error; err != nil {
		return fmt.Errorf("insert %d rows into %s: %w", len(rows), k.Table(), err)
	}

	return nil
}

// rowMap 以列名为键转换一行，缺失时间转为 nil.
func rowMap(rec model.Record) map[string]any {
	headers := rec.Kind().Headers()
	fields := rec.Fields()
	row := make(map[string]any, len(headers))

	for i, h := range headers {
		v := fields[i]
		if t, ok := v.(*time.Time); ok {
			if t == nil {
				v = nil
			} else {
				v = *t
			}
		}

		row[h] = v
	}

	return row
}
