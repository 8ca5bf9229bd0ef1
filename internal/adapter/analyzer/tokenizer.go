package analyzer

import "strings"

// Tokenizer splits queries into lowercase whitespace-separated tokens.
// Duplicates are kept so a repeated word counts once per occurrence.
type Tokenizer struct{}

func NewTokenizer() *Tokenizer {
	return &Tokenizer{}
}

// Tokenize lowercases text and splits it on any run of whitespace.
func (t *Tokenizer) Tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

// Normalize lowercases passage text for substring matching.
func (t *Tokenizer) Normalize(text string) string {
	return strings.ToLower(text)
}
