package storage

import (
	"context"

	"github.com/vovakirdan/typefall/internal/wordbank"
)

// LexiconProvider serves random lexicon words to the word bank.
type LexiconProvider struct {
	store     *Store
	minLength int
	maxLength int
}

// NewLexiconProvider returns a provider drawing words with length in
// [minLength, maxLength]. A maxLength of 0 means no upper bound.
func NewLexiconProvider(store *Store, minLength, maxLength int) *LexiconProvider {
	return &LexiconProvider{store: store, minLength: minLength, maxLength: maxLength}
}

// FetchWords implements wordbank.Provider.
func (p *LexiconProvider) FetchWords(ctx context.Context, count int) ([]string, error) {
	words, err := p.store.RandomWords(ctx, count, p.minLength, p.maxLength)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, wordbank.ErrNoWords
	}
	return words, nil
}

var _ wordbank.Provider = (*LexiconProvider)(nil)
