package store

import (
	"context"
	"path/filepath"
	"testing"
)

func TestStoreRoundTripAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "phrasedrill.db")
	st, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if _, ok, err := st.Get("missing"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}
	if err := st.Set("a", "1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := st.Set("a", "2"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if err := st.Set("b", "x"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	st, err = Open(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	v, ok, err := st.Get("a")
	if err != nil || !ok || v != "2" {
		t.Fatalf("expected a=2, got %q ok=%v err=%v", v, ok, err)
	}
	keys, err := st.Keys(context.Background())
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Fatalf("unexpected keys: %v", keys)
	}
}

func TestLoadJSONFallbacks(t *testing.T) {
	kv := NewMemory()
	var out []int
	found, err := LoadJSON(kv, "k", &out)
	if found || err != nil {
		t.Fatalf("expected absent key, got found=%v err=%v", found, err)
	}
	if err := kv.Set("k", "{not json"); err != nil {
		t.Fatalf("set: %v", err)
	}
	found, err = LoadJSON(kv, "k", &out)
	if !found || err == nil {
		t.Fatalf("expected decode error, got found=%v err=%v", found, err)
	}
	if err := SaveJSON(kv, "k", []int{1, 2}); err != nil {
		t.Fatalf("save: %v", err)
	}
	found, err = LoadJSON(kv, "k", &out)
	if !found || err != nil || len(out) != 2 {
		t.Fatalf("expected decoded slice, got %v found=%v err=%v", out, found, err)
	}
}

func TestPrefsDefaultsAndCorruption(t *testing.T) {
	kv := NewMemory()
	p := NewPrefs(kv, nil)
	if p.Theme() != ThemeLight {
		t.Fatalf("expected light default")
	}
	if p.Rate() != DefaultRate {
		t.Fatalf("expected default rate")
	}
	if !p.TargetEnabled() {
		t.Fatalf("expected target enabled by default")
	}

	_ = kv.Set(KeyTheme, "purple")
	_ = kv.Set(KeyRate, "fast")
	_ = kv.Set(KeyTargetEnabled, "maybe")
	if p.Theme() != ThemeLight || p.Rate() != DefaultRate || !p.TargetEnabled() {
		t.Fatalf("expected corrupt values to fall back to defaults")
	}

	_ = kv.Set(KeyRate, "7")
	if p.Rate() != DefaultRate {
		t.Fatalf("expected out-of-range rate to fall back")
	}

	p.SetTheme(ThemeDark)
	p.SetRate(1.25)
	p.SetTargetEnabled(false)
	if p.Theme() != ThemeDark {
		t.Fatalf("expected dark theme")
	}
	if p.Rate() != 1.2 && p.Rate() != 1.3 {
		t.Fatalf("expected rate rounded to one decimal, got %v", p.Rate())
	}
	if p.TargetEnabled() {
		t.Fatalf("expected target disabled")
	}
}

func TestPrefsWriteFailureIsSwallowed(t *testing.T) {
	kv := NewMemory()
	kv.FailWrites = true
	p := NewPrefs(kv, nil)
	p.SetTheme(ThemeDark)
	if p.Theme() != ThemeLight {
		t.Fatalf("expected failed write to leave default theme")
	}
}
