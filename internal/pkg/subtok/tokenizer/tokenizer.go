// Package tokenizer segments text against a finished vocabulary. Segmentation
// is greedy left-to-right longest-match: the candidate token grows one rune at
// a time while the extension stays a known symbol, then flushes. Runes the
// vocabulary does not know become the unk marker, so tokenizing never fails
// but is lossy on such input.
package tokenizer

import (
	"strings"

	"subtok/internal/pkg/subtok/vocab"
)

type Tokenizer struct {
	table *vocab.Table
}

func New(table *vocab.Table) *Tokenizer {
	return &Tokenizer{table: table}
}

// Tokenize returns the token sequence for text. Every returned token is a
// vocabulary symbol; unknown runes appear as the unk placeholder.
func (t *Tokenizer) Tokenize(text string) []string {
	var tokens []string
	cand := ""

	for _, r := range text {
		if cand != "" {
			if ext := cand + string(r); t.table.Contains(ext) {
				cand = ext
				continue
			}
			tokens = append(tokens, cand)
			cand = ""
		}
		ch := string(r)
		if t.table.Contains(ch) {
			cand = ch
		} else {
			tokens = append(tokens, t.table.Unk())
		}
	}
	if cand != "" {
		tokens = append(tokens, cand)
	}

	return tokens
}

// Detokenize concatenates tokens back into text. The unk marker contributes
// its placeholder literally, so text that tokenized lossily does not round-trip.
func (t *Tokenizer) Detokenize(tokens []string) string {
	return strings.Join(tokens, "")
}
