// Package corpus derives the frequency-weighted word index BPE training
// operates on: maximal runs of pairable runes, counted across the whole
// corpus, each carrying its current symbol encoding.
package corpus

// Word is one distinct pairable run. Symbols starts as the one-rune-per-entry
// split of Text and is rewritten in place as merges apply; concatenating
// Symbols always reproduces Text.
type Word struct {
	Text    string
	Count   int
	Symbols []string
}

// Index holds the distinct words and runes of one corpus, both in
// first-appearance order so that repeated runs over the same corpus are
// byte-for-byte reproducible.
type Index struct {
	words  []*Word
	byText map[string]*Word
	runes  []rune
	seen   map[rune]bool
}

// Scan splits text into maximal runs of runes satisfying pairable.
// Non-pairable runes never enter the word index; they are still recorded in
// Runes so the vocabulary can seed them for character-level tokenization.
func Scan(text string, pairable func(rune) bool) *Index {
	ix := &Index{
		byText: make(map[string]*Word),
		seen:   make(map[rune]bool),
	}

	var run []rune
	for _, r := range text {
		if !ix.seen[r] {
			ix.seen[r] = true
			ix.runes = append(ix.runes, r)
		}
		if pairable(r) {
			run = append(run, r)
			continue
		}
		ix.flush(run)
		run = run[:0]
	}
	ix.flush(run)

	return ix
}

func (ix *Index) flush(run []rune) {
	if len(run) == 0 {
		return
	}
	text := string(run)
	if w, ok := ix.byText[text]; ok {
		w.Count++
		return
	}
	symbols := make([]string, len(run))
	for i, r := range run {
		symbols[i] = string(r)
	}
	w := &Word{Text: text, Count: 1, Symbols: symbols}
	ix.byText[text] = w
	ix.words = append(ix.words, w)
}

// Words returns the distinct words in first-appearance order. Callers mutate
// the returned words' Symbols during training; the index itself is not copied.
func (ix *Index) Words() []*Word {
	return ix.words
}

// Runes returns every distinct rune of the corpus in first-appearance order.
func (ix *Index) Runes() []rune {
	out := make([]rune, len(ix.runes))
	copy(out, ix.runes)
	return out
}

// Len returns the number of distinct words.
func (ix *Index) Len() int {
	return len(ix.words)
}
