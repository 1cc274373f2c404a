package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func TestLoadEmbeddedHasExpectedLocales(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	if !bundle.HasLocale(BaseLocale) {
		t.Fatalf("expected base locale %s", BaseLocale)
	}
	if !bundle.HasLocale("en-US") {
		t.Fatal("expected locale en-US")
	}
	if got := len(bundle.NamespaceMessages("es-AR", "storefront")); got == 0 {
		t.Fatal("expected es-AR storefront namespace messages")
	}
}

func TestEmbeddedLocalesDefineTheSameKeys(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	base := bundle.LocaleMessages(BaseLocale)
	for _, locale := range bundle.Locales() {
		messages := bundle.LocaleMessages(locale)
		for key := range base {
			if _, ok := messages[key]; !ok {
				t.Fatalf("locale %s missing key %q", locale, key)
			}
		}
		if len(messages) != len(base) {
			t.Fatalf("locale %s has %d keys, base has %d", locale, len(messages), len(base))
		}
	}
}

func TestDefaultRegistersMessagesWithXText(t *testing.T) {
	Default()

	printer := message.NewPrinter(language.MustParse("es-AR"))
	if got := printer.Sprintf("cart.toast.added", "Dragón Articulado Flexible"); got != "Dragón Articulado Flexible agregado" {
		t.Fatalf("es-AR toast = %q", got)
	}
	english := message.NewPrinter(language.AmericanEnglish)
	if got := english.Sprintf("cart.empty"); got != "Your order is empty." {
		t.Fatalf("en-US empty cart = %q", got)
	}
}

func TestMessageFallsBackToBaseLocale(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	value, ok := bundle.Message("fr-FR", "cart.empty")
	if !ok {
		t.Fatal("expected fallback message")
	}
	if value != "Tu pedido está vacío." {
		t.Fatalf("fallback value = %q", value)
	}
	if _, ok := bundle.Message("es-AR", " "); ok {
		t.Fatal("blank key should not resolve")
	}
}

func TestTagsListsBaseLocaleFirst(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	tags := bundle.Tags()
	if len(tags) < 2 {
		t.Fatalf("tags = %v, want at least two", tags)
	}
	if tags[0].String() != BaseLocale {
		t.Fatalf("first tag = %s, want %s", tags[0], BaseLocale)
	}
}

func TestLoadFromFSRejectsCoreKeyOutsideCoreNamespace(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/es-AR/storefront.yaml"), `locale: "es-AR"
namespace: "storefront"
messages:
  "core.bad": "nope"
`)
	mustWriteFile(t, filepath.Join(tempDir, "locales/es-AR/core.yaml"), `locale: "es-AR"
namespace: "core"
messages:
  "core.good": "ok"
`)

	if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadFromFSRejectsDuplicateKeysAcrossNamespaces(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/es-AR/core.yaml"), `locale: "es-AR"
namespace: "core"
messages:
  "a.key": "a"
`)
	mustWriteFile(t, filepath.Join(tempDir, "locales/es-AR/storefront.yaml"), `locale: "es-AR"
namespace: "storefront"
messages:
  "a.key": "b"
`)

	if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
		t.Fatal("expected duplicate key error")
	}
}

func TestLoadFromFSRejectsLocaleMismatch(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/es-AR/core.yaml"), `locale: "en-US"
namespace: "core"
messages:
  "core.x": "x"
`)

	_, err := LoadFromFS(os.DirFS(tempDir))
	if err == nil || !strings.Contains(err.Error(), "must match path locale") {
		t.Fatalf("LoadFromFS() error = %v, want locale mismatch", err)
	}
}

func TestLoadFromFSRequiresBaseLocale(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/core.yaml"), `locale: "en-US"
namespace: "core"
messages:
  "core.x": "x"
`)

	if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
		t.Fatal("expected missing base locale error")
	}
}

func TestLoadFromFSRejectsMalformedYAML(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/es-AR/core.yaml"), "locale: [unterminated\n")

	if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
		t.Fatal("expected yaml parse error")
	}
}

func mustWriteFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
