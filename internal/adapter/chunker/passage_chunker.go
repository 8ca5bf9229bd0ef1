package chunker

import (
	"strings"
	"unicode/utf8"

	"gitamind/internal/domain"
)

// DefaultMaxChars is the soft cap on passage length in code points.
const DefaultMaxChars = 400

// PassageChunker greedily joins trimmed, non-blank lines into passages.
// A passage only grows past maxChars when a single line is longer than that;
// lines are never split.
type PassageChunker struct {
	maxChars int
}

func NewPassageChunker(maxChars int) *PassageChunker {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	return &PassageChunker{maxChars: maxChars}
}

func (c *PassageChunker) Segment(text string) domain.Corpus {
	var (
		passages domain.Corpus
		buf      strings.Builder
		bufLen   int
	)

	flush := func() {
		if buf.Len() > 0 {
			passages = append(passages, domain.Passage{Text: buf.String()})
			buf.Reset()
			bufLen = 0
		}
	}

	for _, line := range splitLines(text) {
		lineLen := utf8.RuneCountInString(line)

		if bufLen > 0 && bufLen+1+lineLen > c.maxChars {
			flush()
		}

		if bufLen > 0 {
			buf.WriteByte(' ')
			bufLen++
		}
		buf.WriteString(line)
		bufLen += lineLen
	}
	flush()

	return passages
}

// splitLines splits on \n, \r\n or \r and drops lines that are blank after trimming.
func splitLines(text string) []string {
	raw := strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == '\r'
	})

	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
