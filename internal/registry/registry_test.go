package registry

import (
	"path/filepath"
	"testing"

	"github.com/vovakirdan/typefall/internal/config"
	"github.com/vovakirdan/typefall/internal/storage"
)

func TestBuiltinProvidersRegistered(t *testing.T) {
	list := List()
	expected := []string{"builtin", "http", "lexicon"}
	if len(list) != len(expected) {
		t.Fatalf("List() has %d providers, expected %d", len(list), len(expected))
	}
	for i, id := range expected {
		if list[i].ID != id {
			t.Errorf("List()[%d] = %q, expected %q", i, list[i].ID, id)
		}
		if list[i].Description == "" {
			t.Errorf("provider %q has no description", id)
		}
		if !Exists(id) {
			t.Errorf("Exists(%q) = false", id)
		}
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, _, err := Create("carrier-pigeon", config.DefaultConfig().WordBank); err == nil {
		t.Error("Create() of an unknown provider should fail")
	}
	if Exists("carrier-pigeon") {
		t.Error("Exists() should be false for unknown providers")
	}
}

func TestCreateBuiltin(t *testing.T) {
	p, closer, err := Create("builtin", config.DefaultConfig().WordBank)
	if err != nil {
		t.Fatalf("Create(builtin) failed: %v", err)
	}
	if p != nil {
		t.Error("builtin should not attach an async provider")
	}
	if err := closer.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
}

func TestCreateHTTPRequiresURL(t *testing.T) {
	cfg := config.DefaultConfig().WordBank
	cfg.URL = ""
	if _, _, err := Create("http", cfg); err == nil {
		t.Error("Create(http) without a URL should fail")
	}

	cfg.URL = "http://127.0.0.1:1/word"
	p, _, err := Create("http", cfg)
	if err != nil || p == nil {
		t.Errorf("Create(http) = %v, %v", p, err)
	}
}

func TestCreateLexicon(t *testing.T) {
	cfg := config.DefaultConfig().WordBank
	cfg.LexiconPath = filepath.Join(t.TempDir(), "lexicon.db")

	p, closer, err := Create("lexicon", cfg)
	if err != nil {
		t.Fatalf("Create(lexicon) failed: %v", err)
	}
	defer closer.Close()

	if _, ok := p.(*storage.LexiconProvider); !ok {
		t.Errorf("provider is %T, expected *storage.LexiconProvider", p)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Register() of a duplicate ID should panic")
		}
	}()
	Register("builtin", "again", nil)
}
