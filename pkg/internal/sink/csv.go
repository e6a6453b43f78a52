package sink

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/yeisme/mockmoments/pkg/internal/model"
)

// csvFile 单个记录类型的输出文件.
type csvFile struct {
	path string
	file *os.File
	w    *csv.Writer
}

// CSV 流式写出：打开时创建全部文件并写入表头，每条记录立即写出.
type CSV struct {
	dir    string
	null   string
	files  map[model.Kind]*csvFile
	closed bool
}

// OpenCSV 在 dir 下创建（覆盖）所有记录类型的文件. dir 必须已存在.
func OpenCSV(dir, nullToken string) (*CSV, error) {
	c := &CSV{dir: dir, null: nullToken, files: make(map[model.Kind]*csvFile, len(model.Kinds()))}

	for _, k := range model.Kinds() {
		path := filepath.Join(dir, k.FileName())

		f, err := os.Create(path)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("create %s: %w", path, err), c.Close())
		}

		w := csv.NewWriter(f)
		c.files[k] = &csvFile{path: path, file: f, w: w}

		if err := w.Write(k.Headers()); err != nil {
			return nil, errors.Join(fmt.Errorf("write header %s: %w", path, err), c.Close())
		}
	}

	return c, nil
}

// Write 按列顺序写出一行.
func (c *CSV) Write(rec model.Record) error {
	if c.closed {
		return fmt.Errorf("write %s: %w", rec.Kind(), os.ErrClosed)
	}

	cf, ok := c.files[rec.Kind()]
	if !ok {
		return fmt.Errorf("unknown record kind %s", rec.Kind())
	}

	fields := rec.Fields()
	row := make([]string, len(fields))

	for i, v := range fields {
		row[i] = FormatValue(v, c.null)
	}

	if err := cf.w.Write(row); err != nil {
		return fmt.Errorf("write %s: %w", cf.path, err)
	}

	return nil
}

// Close 刷新并关闭所有文件，可重复调用.
func (c *CSV) Close() error {
	if c.closed {
		return nil
	}

	c.closed = true

	var errs []error

	for _, k := range model.Kinds() {
		cf, ok := c.files[k]
		if !ok {
			continue
		}

		cf.w.Flush()
		if err := cf.w.Error(); err != nil {
			errs = append(errs, fmt.Errorf("flush %s: %w", cf.path, err))
		}

		if err := cf.file.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", cf.path, err))
		}
	}

	return errors.Join(errs...)
}

// Files 返回已创建文件的路径，顺序同 model.Kinds.
func (c *CSV) Files() []string {
	paths := make([]string, 0, len(c.files))

	for _, k := range model.Kinds() {
		if cf, ok := c.files[k]; ok {
			paths = append(paths, cf.path)
		}
	}

	return paths
}

// Table 读回的 CSV 内容，Rows 中 nil 表示缺失值.
type Table struct {
	Header []string
	Rows   [][]*string
}

// ReadCSV 按表头与空值占位符解析 CSV.
func ReadCSV(r io.Reader, nullToken string) (*Table, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	t := &Table{Header: header}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(t.Rows)+1, err)
		}

		row := make([]*string, len(rec))

		for i := range rec {
			if rec[i] != nullToken {
				row[i] = &rec[i]
			}
		}

		t.Rows = append(t.Rows, row)
	}

	return t, nil
}

// ReadCSVFile 读取 dir 下指定类型的文件.
func ReadCSVFile(dir string, kind model.Kind, nullToken string) (*Table, error) {
	f, err := os.Open(filepath.Join(dir, kind.FileName()))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadCSV(f, nullToken)
}
