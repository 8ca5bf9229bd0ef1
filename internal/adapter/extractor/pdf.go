package extractor

import (
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"

	"gitamind/internal/domain"
)

// ProgressFunc is called after each page is read.
type ProgressFunc func(page, total int)

// PDFExtractor reads the plain text layer of a PDF, one page at a time.
type PDFExtractor struct {
	progress ProgressFunc
	logger   *slog.Logger
}

type Option func(*options)

type options struct {
	progress ProgressFunc
	logger   *slog.Logger
}

// WithProgress reports page progress while a PDF is read.
func WithProgress(fn ProgressFunc) Option {
	return func(o *options) {
		o.progress = fn
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: slog.Default().With("component", "extractor")}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func NewPDFExtractor(opts ...Option) *PDFExtractor {
	o := buildOptions(opts)
	return &PDFExtractor{progress: o.progress, logger: o.logger}
}

// Extract returns the text of every page, one line per visual row,
// NFKC-normalized so ligatures and compatibility forms match typed queries.
func (e *PDFExtractor) Extract(path string) (text string, err error) {
	// The parser panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%w: corrupt pdf %s: %v", domain.ErrDocumentUnavailable, path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: open %s: %v", domain.ErrDocumentUnavailable, path, err)
	}
	defer f.Close()

	total := r.NumPage()

	var b strings.Builder
	for i := 1; i <= total; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			e.report(i, total)
			continue
		}

		rows, err := p.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("%w: page %d of %s: %v", domain.ErrDocumentUnavailable, i, path, err)
		}

		for _, line := range rowLines(rows) {
			b.WriteString(line)
			b.WriteByte('\n')
		}
		e.report(i, total)
	}

	e.logger.Debug("extracted pdf", "path", path, "pages", total, "bytes", b.Len())

	return norm.NFKC.String(b.String()), nil
}

// rowLines joins the text runs of each row left to right and orders rows top
// to bottom. PDF y coordinates grow upwards.
func rowLines(rows pdf.Rows) []string {
	sorted := slices.Clone(rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position > sorted[j].Position
	})

	lines := make([]string, 0, len(sorted))
	for _, row := range sorted {
		runs := slices.Clone(row.Content)
		sort.SliceStable(runs, func(i, j int) bool {
			return runs[i].X < runs[j].X
		})

		var line strings.Builder
		for _, run := range runs {
			line.WriteString(run.S)
		}
		lines = append(lines, line.String())
	}
	return lines
}

func (e *PDFExtractor) report(page, total int) {
	if e.progress != nil {
		e.progress(page, total)
	}
}
