// Package source reads the flight corpus: one batch of records per file.
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	mmap "github.com/edsrzf/mmap-go"

	"github.com/okian/flightstats/internal/domain/model"
	"github.com/okian/flightstats/pkg/logger"
)

// DefaultPattern matches every corpus file in the directory.
const DefaultPattern = "*.json"

var errNotArray = errors.New("top-level value is not an array")

// Option applies a configuration option to Dir.
type Option func(*Dir)

// WithPattern overrides the glob used to select files.
func WithPattern(pattern string) Option {
	return func(d *Dir) {
		if pattern != "" {
			d.pattern = pattern
		}
	}
}

// WithLogger sets the logger used for per-file debug output.
func WithLogger(l logger.Logger) Option {
	return func(d *Dir) {
		if l != nil {
			d.logger = l
		}
	}
}

// Dir is a corpus stored as files in one directory.
type Dir struct {
	path    string
	pattern string
	logger  logger.Logger
}

// NewDir creates a source over the files in path.
func NewDir(path string, opts ...Option) *Dir {
	d := &Dir{
		path:    path,
		pattern: DefaultPattern,
		logger:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Path returns the corpus directory.
func (d *Dir) Path() string { return d.path }

// Files lists the matching files in enumeration order.
func (d *Dir) Files() ([]string, error) {
	info, err := os.Stat(d.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCorpusNotFound, d.path)
		}
		return nil, fmt.Errorf("stat corpus %s: %w", d.path, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrCorpusNotFound, d.path)
	}

	matches, err := filepath.Glob(filepath.Join(d.path, d.pattern))
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", d.pattern, err)
	}
	files := matches[:0]
	for _, m := range matches {
		if fi, err := os.Stat(m); err == nil && fi.Mode().IsRegular() {
			files = append(files, m)
		}
	}
	return files, nil
}

// Batches yields one batch per file. Files are read lazily, one at a time;
// iteration stops at the first error, which is yielded with a zero Batch.
func (d *Dir) Batches(ctx context.Context) iter.Seq2[model.Batch, error] {
	return func(yield func(model.Batch, error) bool) {
		files, err := d.Files()
		if err != nil {
			yield(model.Batch{}, err)
			return
		}
		d.logger.Debug(ctx, "corpus enumerated", logger.String("dir", d.path), logger.Int("files", len(files)))

		for _, path := range files {
			batch, err := ReadFile(path)
			if err != nil {
				yield(model.Batch{}, err)
				return
			}
			d.logger.Debug(ctx, "corpus file decoded",
				logger.String("file", filepath.Base(path)),
				logger.Int("records", len(batch.Records)),
			)
			if !yield(batch, nil) {
				return
			}
		}
	}
}

// ReadFile memory-maps one corpus file and decodes it. The mapping and the
// file are released before returning, on success or failure.
func ReadFile(path string) (batch model.Batch, err error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Batch{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return model.Batch{}, fmt.Errorf("stat %s: %w", path, err)
	}
	// mmap rejects zero-length mappings.
	if info.Size() == 0 {
		return model.Batch{}, &ParseError{Path: path, Err: errEmptyFile}
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return model.Batch{}, fmt.Errorf("mmap %s: %w", path, err)
	}
	defer func() {
		if uerr := data.Unmap(); uerr != nil && err == nil {
			err = fmt.Errorf("unmap %s: %w", path, uerr)
		}
	}()

	records, err := decode(data)
	if err != nil {
		return model.Batch{}, &ParseError{Path: path, Err: err}
	}

	batch = model.Batch{Path: path, Records: records}
	if month, city, ok := ParseFileName(path); ok {
		batch.Month = month
		batch.City = city
	}
	return batch, nil
}

// decode copies everything it keeps out of data, so data may be unmapped
// afterwards.
func decode(data []byte) ([]model.Record, error) {
	var records []model.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	if records == nil {
		return nil, errNotArray
	}
	return records, nil
}
