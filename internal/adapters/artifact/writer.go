// Package artifact writes the static JSON files consumed by the front end.
package artifact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/okian/paddock/pkg/logger"
	"github.com/okian/paddock/pkg/metrics"
)

// ErrWrite is returned when an artifact cannot be encoded or written.
var ErrWrite = errors.New("write artifact")

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Writer replaces whole files; there is no append or transactional write.
type Writer struct {
	logger logger.Logger
}

// Option applies a configuration option to the Writer.
type Option func(*Writer)

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(w *Writer) {
		if l != nil {
			w.logger = l
		}
	}
}

// NewWriter returns a Writer.
func NewWriter(opts ...Option) *Writer {
	w := &Writer{logger: logger.Nop()}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteJSON encodes v with two-space indentation and writes it to path,
// creating parent directories. kind labels the artifacts_written metric.
func (w *Writer) WriteJSON(ctx context.Context, kind, path string, v any) error {
	data, err := Encode(v)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrWrite, path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("%w %s: %w", ErrWrite, path, err)
	}
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("%w %s: %w", ErrWrite, path, err)
	}

	metrics.RecordArtifactWritten(kind)
	w.logger.Debug(ctx, "artifact written",
		logger.String("kind", kind),
		logger.String("path", path),
		logger.Int("bytes", len(data)),
	)
	return nil
}

// Encode renders v the way artifacts are stored: two-space indent, non-ASCII
// and HTML characters left unescaped, no trailing newline.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
