package chunker

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestPassageChunkerJoinsShortLines(t *testing.T) {
	c := NewPassageChunker(400)

	lines := make([]string, 5)
	for i := range lines {
		lines[i] = strings.Repeat("a", 50)
	}

	passages := c.Segment(strings.Join(lines, "\n"))
	if len(passages) != 1 {
		t.Fatalf("expected 1 passage, got %d", len(passages))
	}

	want := strings.Join(lines, " ")
	if passages[0].Text != want {
		t.Errorf("unexpected passage text: %q", passages[0].Text)
	}
}

func TestPassageChunkerSplitsAtCap(t *testing.T) {
	c := NewPassageChunker(400)

	line := strings.Repeat("b", 150)
	content := strings.Join([]string{line, line, line}, "\n")

	passages := c.Segment(content)
	if len(passages) != 2 {
		t.Fatalf("expected 2 passages, got %d", len(passages))
	}
	if passages[0].Text != line+" "+line {
		t.Errorf("first passage should hold two lines, got %d chars", len(passages[0].Text))
	}
	if passages[1].Text != line {
		t.Errorf("second passage should hold the third line, got %d chars", len(passages[1].Text))
	}
}

func TestPassageChunkerFourthLineOverflows(t *testing.T) {
	c := NewPassageChunker(400)

	lines := []string{
		strings.Repeat("1", 120),
		strings.Repeat("2", 120),
		strings.Repeat("3", 120),
		strings.Repeat("4", 120),
	}

	// 120+1+120+1+120 == 362; adding the fourth line would reach 483.
	passages := c.Segment(strings.Join(lines, "\n"))
	if len(passages) != 2 {
		t.Fatalf("expected 2 passages, got %d", len(passages))
	}
	if want := strings.Join(lines[:3], " "); passages[0].Text != want {
		t.Errorf("first passage should hold lines 1-3, got %d chars", len(passages[0].Text))
	}
	if passages[1].Text != lines[3] {
		t.Errorf("second passage should hold line 4, got %q", passages[1].Text)
	}
}

func TestPassageChunkerExactFit(t *testing.T) {
	c := NewPassageChunker(400)

	// 199 + 1 + 200 == 400 stays in one passage.
	content := strings.Repeat("x", 199) + "\n" + strings.Repeat("y", 200)

	passages := c.Segment(content)
	if len(passages) != 1 {
		t.Fatalf("expected 1 passage, got %d", len(passages))
	}
	if n := len(passages[0].Text); n != 400 {
		t.Errorf("expected 400 chars, got %d", n)
	}
}

func TestPassageChunkerOversizedLine(t *testing.T) {
	c := NewPassageChunker(400)

	long := strings.Repeat("z", 900)
	content := "short line\n" + long + "\ntail"

	passages := c.Segment(content)
	if len(passages) != 3 {
		t.Fatalf("expected 3 passages, got %d", len(passages))
	}
	if passages[1].Text != long {
		t.Errorf("oversized line must be kept whole")
	}
	if passages[2].Text != "tail" {
		t.Errorf("expected trailing passage 'tail', got %q", passages[2].Text)
	}
}

func TestPassageChunkerBlankInput(t *testing.T) {
	c := NewPassageChunker(400)

	for _, content := range []string{"", "   ", "\n\n\t\n", "\r\n \r\n"} {
		if passages := c.Segment(content); len(passages) != 0 {
			t.Errorf("expected no passages for %q, got %d", content, len(passages))
		}
	}
}

func TestPassageChunkerLineEndingsAndTrim(t *testing.T) {
	c := NewPassageChunker(400)

	passages := c.Segment("  karma yoga  \r\n\r\n\tbhakti\rjnana \n")
	if len(passages) != 1 {
		t.Fatalf("expected 1 passage, got %d", len(passages))
	}
	if passages[0].Text != "karma yoga bhakti jnana" {
		t.Errorf("unexpected text %q", passages[0].Text)
	}
}

func TestPassageChunkerCountsCodePoints(t *testing.T) {
	c := NewPassageChunker(11)

	// 5 code points, 15 bytes.
	line := strings.Repeat("ध", 5)

	passages := c.Segment(line + "\n" + line)
	if len(passages) != 1 {
		t.Fatalf("expected lines to join under the cap, got %d passages", len(passages))
	}
	if utf8.RuneCountInString(passages[0].Text) != 11 {
		t.Errorf("unexpected length %d", utf8.RuneCountInString(passages[0].Text))
	}
}

func TestPassageChunkerInvariants(t *testing.T) {
	c := NewPassageChunker(60)

	var b strings.Builder
	for i := 0; i < 200; i++ {
		b.WriteString(strings.Repeat("w", i%23+1))
		b.WriteString("\n")
		if i%7 == 0 {
			b.WriteString("\n   \n")
		}
	}

	passages := c.Segment(b.String())
	if len(passages) == 0 {
		t.Fatal("expected passages")
	}
	for i, p := range passages {
		if p.Text == "" || strings.TrimSpace(p.Text) != p.Text {
			t.Errorf("passage %d is not trimmed and non-empty: %q", i, p.Text)
		}
		if utf8.RuneCountInString(p.Text) > 60 {
			t.Errorf("passage %d exceeds cap without an oversized line: %d", i, len(p.Text))
		}
	}
}
