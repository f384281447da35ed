package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"subtok/internal/pkg/subtok/vocab"
)

func TestUnknownCharFallsBackToUnk(t *testing.T) {
	table := vocab.New(vocab.Options{BaseLo: 'a', BaseHi: 'b'})
	tok := New(table)

	assert.Equal(t, []string{"a", "b", "<unk>"}, tok.Tokenize("abc"))
}

func TestGreedyPrefersMergedSymbol(t *testing.T) {
	table := vocab.New(vocab.Options{BaseLo: 'a', BaseHi: 'b'})
	table.Add("ab")
	tok := New(table)

	assert.Equal(t, []string{"ab", "<unk>"}, tok.Tokenize("abc"))
}

func TestFlushThenRestartAtFailingRune(t *testing.T) {
	// "ab" is a symbol but bare "b" is not: the candidate "ab" flushes, then
	// the failing rune is checked on its own and comes out as unk.
	table := vocab.New(vocab.Options{BaseLo: 'a', BaseHi: 'a'})
	table.Add("ab")
	tok := New(table)

	assert.Equal(t, []string{"ab", "a"}, tok.Tokenize("aba"))
	assert.Equal(t, []string{"ab", "<unk>"}, tok.Tokenize("abb"))
	assert.Equal(t, []string{"<unk>"}, tok.Tokenize("b"))
}

func TestLongestMatchIsGreedyNotOptimal(t *testing.T) {
	// Greedy takes "ab" and strands the second b, even though a+bb would
	// cover the input.
	table := vocab.New(vocab.Options{BaseLo: 'a', BaseHi: 'b'})
	table.Add("ab")
	table.Add("bb")
	tok := New(table)

	assert.Equal(t, []string{"ab", "b"}, tok.Tokenize("abb"))
}

func TestRoundTripWithoutUnk(t *testing.T) {
	table := vocab.New(vocab.Options{BaseLo: 'a', BaseHi: 'z', CorpusRunes: []rune{' '}})
	table.Add("th")
	table.Add("the")
	tok := New(table)

	for _, text := range []string{"", "the cat sat", "aaa", "zzz the"} {
		assert.Equal(t, text, tok.Detokenize(tok.Tokenize(text)))
	}
}

func TestDetokenizeEmitsPlaceholder(t *testing.T) {
	table := vocab.New(vocab.Options{BaseLo: 'a', BaseHi: 'b', Unk: "<?>"})
	tok := New(table)

	assert.Equal(t, "a<?>b", tok.Detokenize(tok.Tokenize("axb")))
}

func TestTokenizeEmpty(t *testing.T) {
	table := vocab.New(vocab.Options{BaseLo: 'a', BaseHi: 'b'})

	assert.Empty(t, New(table).Tokenize(""))
}
