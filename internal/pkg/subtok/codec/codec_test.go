package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subtok/internal/pkg/subtok/vocab"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	table := vocab.New(vocab.Options{BaseLo: 'a', BaseHi: 'z', CorpusRunes: []rune{' '}})
	table.Add("he")
	table.Add("hell")
	c := New(table)

	for _, text := range []string{"", "hello world", "hhhh", "a hell of a day"} {
		ids := c.Encode(text)
		got, err := c.Decode(ids)
		require.NoError(t, err)
		assert.Equal(t, text, got)
	}
}

func TestEncodeUnknownRuneMapsToUnkID(t *testing.T) {
	table := vocab.New(vocab.Options{BaseLo: 'a', BaseHi: 'b'})
	c := New(table)

	ids := c.Encode("a?b")

	require.Len(t, ids, 3)
	assert.Equal(t, vocab.UnkID, ids[1])
}

func TestDecodeInvalidID(t *testing.T) {
	table := vocab.New(vocab.Options{BaseLo: 'a', BaseHi: 'b'})
	c := New(table)

	_, err := c.Decode([]int{0, table.Size()})
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = c.Decode([]int{-1})
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestDecodeUnkID(t *testing.T) {
	table := vocab.New(vocab.Options{BaseLo: 'a', BaseHi: 'b', Unk: "<?>"})
	c := New(table)

	got, err := c.Decode([]int{vocab.UnkID})
	require.NoError(t, err)
	assert.Equal(t, "<?>", got)
}
