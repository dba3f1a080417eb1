package registry

import (
	"errors"
	"io"

	"github.com/vovakirdan/typefall/internal/config"
	"github.com/vovakirdan/typefall/internal/storage"
	"github.com/vovakirdan/typefall/internal/wordbank"
)

func init() {
	Register("builtin", "Built-in tiered word lists only", func(cfg config.WordBankConfig) (wordbank.Provider, io.Closer, error) {
		return nil, nil, nil
	})

	Register("http", "JSON word array fetched from wordbank.url", func(cfg config.WordBankConfig) (wordbank.Provider, io.Closer, error) {
		if cfg.URL == "" {
			return nil, nil, errors.New("wordbank.url is empty")
		}
		return wordbank.NewHTTPProvider(cfg.URL, cfg.Timeout), nil, nil
	})

	Register("lexicon", "Words imported into the local SQLite lexicon", func(cfg config.WordBankConfig) (wordbank.Provider, io.Closer, error) {
		store, err := storage.Open(cfg.LexiconPath)
		if err != nil {
			return nil, nil, err
		}
		return storage.NewLexiconProvider(store, cfg.MinLength, 0), store, nil
	})
}
