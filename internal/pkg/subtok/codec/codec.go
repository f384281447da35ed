// Package codec maps text to vocabulary id sequences and back.
package codec

import (
	"errors"
	"fmt"

	"subtok/internal/pkg/subtok/tokenizer"
	"subtok/internal/pkg/subtok/vocab"
)

// ErrInvalidID reports a Decode id outside the vocabulary's range.
var ErrInvalidID = errors.New("invalid token id")

type Codec struct {
	table *vocab.Table
	tok   *tokenizer.Tokenizer
}

func New(table *vocab.Table) *Codec {
	return &Codec{table: table, tok: tokenizer.New(table)}
}

// Encode tokenizes text and maps each token to its id. Tokens are vocabulary
// symbols by construction, so the lookup cannot miss; unknown runes surface
// as the unk marker's id.
func (c *Codec) Encode(text string) []int {
	tokens := c.tok.Tokenize(text)
	ids := make([]int, len(tokens))
	for i, tk := range tokens {
		id, _ := c.table.ID(tk)
		ids[i] = id
	}
	return ids
}

// Decode maps ids back to symbols and concatenates them.
func (c *Codec) Decode(ids []int) (string, error) {
	tokens := make([]string, len(ids))
	for i, id := range ids {
		if id < 0 || id >= c.table.Size() {
			return "", fmt.Errorf("%w: %d (vocab size %d)", ErrInvalidID, id, c.table.Size())
		}
		tokens[i] = c.table.Symbol(id)
	}
	return c.tok.Detokenize(tokens), nil
}
