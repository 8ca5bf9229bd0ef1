package domain

// Passage is one retrievable unit of the source document.
type Passage struct {
	Text string `json:"text"`
}

// Corpus is the ordered list of passages segmented from the source document.
// The position of a passage in the corpus is its identity for tie-breaking.
type Corpus []Passage

type ScoredPassage struct {
	Passage Passage
	Index   int
	Score   float64
}

// Reflection is a guided reply produced by a language model for a user message.
type Reflection struct {
	Emotion            string    `json:"emotion"`
	Topic              string    `json:"topic"`
	Response           string    `json:"response"`
	ReflectionQuestion string    `json:"reflectionQuestion"`
	Provider           string    `json:"provider,omitempty"`
	Passages           []Passage `json:"passages"`
}

type CorpusStats struct {
	Passages    int
	TotalChars  int
	LongestChar int
	AvgChars    float64
}

// Stats summarizes passage lengths in code points.
func (c Corpus) Stats() CorpusStats {
	stats := CorpusStats{Passages: len(c)}
	for _, p := range c {
		n := len([]rune(p.Text))
		stats.TotalChars += n
		if n > stats.LongestChar {
			stats.LongestChar = n
		}
	}
	if len(c) > 0 {
		stats.AvgChars = float64(stats.TotalChars) / float64(len(c))
	}
	return stats
}
