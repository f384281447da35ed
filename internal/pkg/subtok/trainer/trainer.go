// Package trainer runs the BPE merge loop: it repeatedly promotes the most
// frequent adjacent symbol pairs across the word index into new vocabulary
// symbols and rewrites the affected word encodings.
package trainer

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"subtok/internal/pkg/subtok/corpus"
	"subtok/internal/pkg/subtok/vocab"
)

type State int

const (
	StateTraining State = iota
	StateDone
)

func (s State) String() string {
	if s == StateDone {
		return "done"
	}
	return "training"
}

type Config struct {
	// TargetSize is the upper bound on vocabulary size, including the seeded
	// alphabet. Must exceed the seeded size.
	TargetSize int
	// BatchSize is how many merges one iteration may apply. Must be >= 1.
	BatchSize int
}

type Trainer struct {
	table *vocab.Table
	index *corpus.Index
	cfg   Config
	state State
	iter  int
	log   zerolog.Logger
}

func New(table *vocab.Table, index *corpus.Index, cfg Config, log zerolog.Logger) (*Trainer, error) {
	if cfg.TargetSize <= table.Size() {
		return nil, fmt.Errorf("target vocab size %d must exceed seeded size %d", cfg.TargetSize, table.Size())
	}
	if cfg.BatchSize < 1 {
		return nil, fmt.Errorf("merges per iteration must be at least 1, got %d", cfg.BatchSize)
	}
	return &Trainer{
		table: table,
		index: index,
		cfg:   cfg,
		state: StateTraining,
		log:   log,
	}, nil
}

func (t *Trainer) State() State {
	return t.state
}

func (t *Trainer) Iterations() int {
	return t.iter
}

// candidate is an adjacent symbol pair not yet in the vocabulary, with its
// weighted frequency and the words it occurs in. Candidates keep their
// discovery order so ties rank reproducibly.
type candidate struct {
	left   string
	right  string
	merged string
	weight int
	words  []*corpus.Word
}

// Step runs one training iteration and reports how many merges it applied.
// Calling Step after the trainer is done is a no-op.
func (t *Trainer) Step() int {
	if t.state != StateTraining {
		return 0
	}
	t.iter++

	candidates := t.collect()
	if len(candidates) == 0 {
		t.state = StateDone
		t.log.Debug().Int("iteration", t.iter).Msg("No mergeable pairs left")
		return 0
	}

	// Stable on weight only: equal weights keep discovery order.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].weight > candidates[j].weight
	})

	applied := 0
	for _, c := range candidates {
		if applied == t.cfg.BatchSize {
			break
		}
		// An earlier merge in this batch may have produced the same symbol.
		if t.table.Contains(c.merged) {
			continue
		}
		id := t.table.Add(c.merged)
		for _, w := range c.words {
			mergeWord(w, c.left, c.right, c.merged)
		}
		applied++

		t.log.Debug().
			Int("iteration", t.iter).
			Str("symbol", c.merged).
			Int("id", id).
			Int("weight", c.weight).
			Int("vocab_size", t.table.Size()).
			Msg("Merged pair")

		if t.table.Size() >= t.cfg.TargetSize {
			t.state = StateDone
			break
		}
	}

	return applied
}

// Train iterates to completion. The context is only consulted between
// iterations; a finished iteration is never rolled back.
func (t *Trainer) Train(ctx context.Context) error {
	for t.state == StateTraining {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("training cancelled after %d iterations: %w", t.iter, err)
		}
		t.Step()
	}
	t.log.Info().
		Int("iterations", t.iter).
		Int("vocab_size", t.table.Size()).
		Msg("Training finished")
	return nil
}

// collect scans every word encoding for adjacent pairs whose concatenation is
// not yet a symbol. A word contributes its corpus count to a pair once,
// however often the pair repeats inside it.
func (t *Trainer) collect() []*candidate {
	var ordered []*candidate
	byPair := make(map[[2]string]*candidate)

	for _, w := range t.index.Words() {
		for i := 0; i+1 < len(w.Symbols); i++ {
			left, right := w.Symbols[i], w.Symbols[i+1]
			merged := left + right
			if t.table.Contains(merged) {
				continue
			}
			key := [2]string{left, right}
			c, ok := byPair[key]
			if !ok {
				c = &candidate{left: left, right: right, merged: merged}
				byPair[key] = c
				ordered = append(ordered, c)
			}
			if len(c.words) == 0 || c.words[len(c.words)-1] != w {
				c.weight += w.Count
				c.words = append(c.words, w)
			}
		}
	}

	return ordered
}

// mergeWord rewrites w.Symbols, collapsing non-overlapping left-to-right
// occurrences of (left, right) into merged. The result of a merge never
// participates in another merge within the same pass.
func mergeWord(w *corpus.Word, left, right, merged string) {
	s := w.Symbols
	out := make([]string, 0, len(s))
	for i := 0; i < len(s); {
		if i+1 < len(s) && s[i] == left && s[i+1] == right {
			out = append(out, merged)
			i += 2
		} else {
			out = append(out, s[i])
			i++
		}
	}
	w.Symbols = out
}
