// Package charclass names the predicates that decide which runes can pair
// into words during training.
package charclass

import (
	"fmt"
	"sort"
	"sync"
	"unicode"
)

type Predicate func(r rune) bool

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Predicate)
)

func Register(name string, pred Predicate) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if pred == nil {
		panic("charclass: Register predicate is nil")
	}
	if _, dup := registry[name]; dup {
		panic("charclass: Register called twice for " + name)
	}
	registry[name] = pred
}

func New(name string) (Predicate, error) {
	registryMu.RLock()
	pred, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("charclass: unknown class %q (registered: %v)", name, List())
	}
	return pred, nil
}

func List() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	Register("letter", unicode.IsLetter)
	Register("letter-digit", func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	})
	Register("ascii-letter", func(r rune) bool {
		return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
	})
}
