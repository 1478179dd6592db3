package repository

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"earnershub/internal/models"

	"github.com/gofrs/flock"
	"github.com/google/renameio/v2"
	"go.uber.org/zap"
)

const defaultLockRetry = 50 * time.Millisecond

// Codec maps one record type to and from a CSV row
type Codec[T any] interface {
	Columns() []string
	Decode(row []string) (T, error)
	Encode(record T) []string
}

// CSVTable is a flat CSV file holding one dataset. The file is the only source of
// truth: every Load reads it in full and every Persist rewrites it in full.
type CSVTable[T any] struct {
	path      string
	codec     Codec[T]
	fileLock  *flock.Flock
	mu        sync.Mutex
	lockRetry time.Duration
	logger    *zap.Logger
}

// NewCSVTable creates a table backed by the file at path. The file does not need to exist.
func NewCSVTable[T any](path string, codec Codec[T], logger *zap.Logger) *CSVTable[T] {
	return &CSVTable[T]{
		path:      path,
		codec:     codec,
		fileLock:  flock.New(path + ".lock"),
		lockRetry: defaultLockRetry,
		logger:    logger,
	}
}

// Path returns the backing file path
func (t *CSVTable[T]) Path() string {
	return t.path
}

// Load reads the whole dataset. A missing or empty file yields an empty dataset.
func (t *CSVTable[T]) Load(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return t.load()
}

func (t *CSVTable[T]) load() ([]T, error) {
	file, err := os.Open(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("open %s: %w: %w", t.path, models.ErrCorruptData, err)
	}
	defer file.Close()

	columns := t.codec.Columns()
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = len(columns)

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s header: %w: %w", t.path, models.ErrCorruptData, err)
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")
	if !slices.Equal(header, columns) {
		return nil, fmt.Errorf("%s: header %v, want %v: %w", t.path, header, columns, models.ErrCorruptData)
	}

	records := []T{}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w: %w", t.path, models.ErrCorruptData, err)
		}
		record, err := t.codec.Decode(row)
		if err != nil {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("%s line %d: %w: %w", t.path, line, models.ErrCorruptData, err)
		}
		records = append(records, record)
	}

	t.logger.Debug("Dataset loaded", zap.String("path", t.path), zap.Int("rows", len(records)))
	return records, nil
}

// Persist overwrites the backing file with the full dataset, header included.
// The new content is written to a temporary file and renamed into place, so the
// file on disk is always either the old or the new dataset.
func (t *CSVTable[T]) Persist(ctx context.Context, records []T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return t.persist(records)
}

func (t *CSVTable[T]) persist(records []T) error {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, t.codec.Columns())
	for _, r := range records {
		rows = append(rows, t.codec.Encode(r))
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("encode %s: %w: %w", t.path, models.ErrPersistence, err)
	}

	dir := filepath.Dir(t.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create %s: %w: %w", dir, models.ErrPersistence, err)
	}
	if err := renameio.WriteFile(t.path, buf.Bytes(), 0644, renameio.WithTempDir(dir)); err != nil {
		return fmt.Errorf("write %s: %w: %w", t.path, models.ErrPersistence, err)
	}

	t.logger.Info("Dataset persisted", zap.String("path", t.path), zap.Int("rows", len(records)))
	return nil
}

// Update runs a locked read-modify-write cycle: the dataset is loaded, passed to fn,
// and whatever fn returns is persisted. If fn fails nothing is written.
// An in-process mutex and an advisory lock file serialize writers, so two
// concurrent updates cannot drop each other's rows.
func (t *CSVTable[T]) Update(ctx context.Context, fn func([]T) ([]T, error)) ([]T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(t.path), 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w: %w", models.ErrPersistence, err)
	}
	locked, err := t.fileLock.TryLockContext(ctx, t.lockRetry)
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", t.path, err)
	}
	if !locked {
		return nil, fmt.Errorf("lock %s: %w", t.path, ctx.Err())
	}
	defer func() {
		if err := t.fileLock.Unlock(); err != nil {
			t.logger.Warn("Failed to release dataset lock", zap.String("path", t.path), zap.Error(err))
		}
	}()

	current, err := t.load()
	if err != nil {
		return nil, err
	}
	next, err := fn(current)
	if err != nil {
		return nil, err
	}
	if err := t.persist(next); err != nil {
		return nil, err
	}
	return next, nil
}

// Append returns a new dataset with record added at the end. The input slice is not modified.
func Append[T any](records []T, record T) []T {
	out := make([]T, len(records), len(records)+1)
	copy(out, records)
	return append(out, record)
}
