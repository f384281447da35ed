package vocab

import "fmt"

// UnkID is the reserved id of the out-of-vocabulary marker.
const UnkID = 0

// DefaultUnk is the placeholder text the marker contributes when detokenized.
const DefaultUnk = "<unk>"

type Options struct {
	// BaseLo and BaseHi bound the inclusive code-point range seeded after the
	// unk marker. BaseHi < BaseLo seeds no range.
	BaseLo rune
	BaseHi rune
	// CorpusRunes are seeded after the base range, in the order given,
	// skipping runes the range already covered.
	CorpusRunes []rune
	// Unk overrides DefaultUnk when non-empty.
	Unk string
}

// Table is the bidirectional symbol<->id mapping. Ids are dense, assigned in
// insertion order, and never reused.
type Table struct {
	symbols []string
	ids     map[string]int
	unk     string
}

func New(opts Options) *Table {
	unk := opts.Unk
	if unk == "" {
		unk = DefaultUnk
	}

	size := 1 + len(opts.CorpusRunes)
	if opts.BaseHi >= opts.BaseLo {
		size += int(opts.BaseHi-opts.BaseLo) + 1
	}
	t := &Table{
		symbols: make([]string, 0, size),
		ids:     make(map[string]int, size),
		unk:     unk,
	}

	t.Add(unk)
	for r := opts.BaseLo; r <= opts.BaseHi; r++ {
		t.addIfAbsent(string(r))
	}
	for _, r := range opts.CorpusRunes {
		t.addIfAbsent(string(r))
	}

	return t
}

// Add appends symbol at the next free id. Adding a symbol twice is a
// programming error and panics.
func (t *Table) Add(symbol string) int {
	if _, dup := t.ids[symbol]; dup {
		panic("vocab: Add called twice for " + symbol)
	}
	id := len(t.symbols)
	t.symbols = append(t.symbols, symbol)
	t.ids[symbol] = id
	return id
}

func (t *Table) addIfAbsent(symbol string) {
	if _, ok := t.ids[symbol]; !ok {
		t.Add(symbol)
	}
}

func (t *Table) ID(symbol string) (int, bool) {
	id, ok := t.ids[symbol]
	return id, ok
}

// Symbol returns the symbol for id. The id must be in [0, Size).
func (t *Table) Symbol(id int) string {
	if id < 0 || id >= len(t.symbols) {
		panic(fmt.Sprintf("vocab: id %d out of range [0, %d)", id, len(t.symbols)))
	}
	return t.symbols[id]
}

func (t *Table) Contains(symbol string) bool {
	_, ok := t.ids[symbol]
	return ok
}

func (t *Table) Size() int {
	return len(t.symbols)
}

// Unk returns the out-of-vocabulary placeholder text.
func (t *Table) Unk() string {
	return t.unk
}

// Symbols returns the ordered id->symbol list (index = id).
func (t *Table) Symbols() []string {
	out := make([]string, len(t.symbols))
	copy(out, t.symbols)
	return out
}
