package vocab

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
)

// vocabFile is the on-disk layout: the ordered symbol list, id implied by
// position, with symbols[0] always the unk placeholder.
type vocabFile struct {
	Unk     string   `json:"unk"`
	Symbols []string `json:"symbols"`
}

func (t *Table) Save(path string) error {
	data, err := json.MarshalIndent(vocabFile{Unk: t.unk, Symbols: t.symbols}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal vocab: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write vocab file: %w", err)
	}
	return nil
}

func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocab file: %w", err)
	}

	var f vocabFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse vocab JSON: %w", err)
	}
	if len(f.Symbols) == 0 {
		return nil, fmt.Errorf("vocab file %s holds no symbols", path)
	}
	if f.Unk == "" {
		f.Unk = DefaultUnk
	}
	if f.Symbols[0] != f.Unk {
		return nil, fmt.Errorf("vocab file %s: symbol 0 is %q, want unk %q", path, f.Symbols[0], f.Unk)
	}

	t := &Table{
		symbols: make([]string, 0, len(f.Symbols)),
		ids:     make(map[string]int, len(f.Symbols)),
		unk:     f.Unk,
	}
	for i, s := range f.Symbols {
		if _, dup := t.ids[s]; dup {
			return nil, fmt.Errorf("vocab file %s: duplicate symbol %q at id %d", path, s, i)
		}
		t.symbols = append(t.symbols, s)
		t.ids[s] = i
	}

	return t, nil
}
