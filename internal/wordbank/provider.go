package wordbank

import (
	"context"
	"errors"
)

// Provider supplies extra words to the bank. Implementations may block on
// I/O; the bank always calls them off the simulation goroutine.
type Provider interface {
	FetchWords(ctx context.Context, count int) ([]string, error)
}

// ProviderFunc adapts a plain function to Provider.
type ProviderFunc func(ctx context.Context, count int) ([]string, error)

// FetchWords calls f.
func (f ProviderFunc) FetchWords(ctx context.Context, count int) ([]string, error) {
	return f(ctx, count)
}

// ErrNoWords is returned by providers that have nothing to offer.
var ErrNoWords = errors.New("wordbank: provider returned no words")

// StaticProvider serves a fixed list. Useful for tests and offline play.
type StaticProvider []string

// FetchWords returns up to count words from the list.
func (p StaticProvider) FetchWords(ctx context.Context, count int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(p) == 0 {
		return nil, ErrNoWords
	}
	n := min(count, len(p))
	if count <= 0 {
		n = len(p)
	}
	out := make([]string, n)
	copy(out, p[:n])
	return out, nil
}

// BuiltinProvider serves every built-in tier. The bank already falls back
// to these words, so this provider only matters when a caller wants the
// built-in list to count as "fetched" words.
func BuiltinProvider() StaticProvider {
	var all StaticProvider
	for t := TierEasy; t <= TierExpert; t++ {
		all = append(all, builtin[t]...)
	}
	return all
}
