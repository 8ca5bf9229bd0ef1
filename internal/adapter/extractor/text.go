package extractor

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"gitamind/internal/domain"
	"gitamind/internal/port"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// PlainTextExtractor reads UTF-8 text files.
type PlainTextExtractor struct {
	progress ProgressFunc
	logger   *slog.Logger
}

func NewPlainTextExtractor(opts ...Option) *PlainTextExtractor {
	o := buildOptions(opts)
	return &PlainTextExtractor{progress: o.progress, logger: o.logger}
}

func (e *PlainTextExtractor) Extract(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrDocumentUnavailable, err)
	}

	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: %s is not valid UTF-8", domain.ErrDocumentUnavailable, path)
	}

	if e.progress != nil {
		e.progress(1, 1)
	}
	e.logger.Debug("read text source", "path", path, "bytes", len(data))

	return string(data), nil
}

// ForPath picks an extractor from the file extension.
func ForPath(path string, opts ...Option) port.TextExtractor {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return NewPDFExtractor(opts...)
	}
	return NewPlainTextExtractor(opts...)
}
