package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPrefsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", prefsFile)
	p := LoadFrom(path)
	p.SetFloat("zoom", 1.5)
	p.SetString("theme", "dark")
	p.SetBool("grid", true)
	if err := p.Save(); err != nil {
		t.Fatal(err)
	}

	q := LoadFrom(path)
	if got := q.Float("zoom"); got != 1.5 {
		t.Errorf("Float(zoom) = %v, want 1.5", got)
	}
	if got := q.String("theme", ""); got != "dark" {
		t.Errorf("String(theme) = %q, want dark", got)
	}
	if !q.Bool("grid", false) {
		t.Error("Bool(grid) = false, want true")
	}
	if got := q.FloatWithFallback("missing", 7); got != 7 {
		t.Errorf("FloatWithFallback(missing) = %v, want 7", got)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), prefsFile)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	p := LoadFrom(path)
	if got := p.String("anything", "fallback"); got != "fallback" {
		t.Errorf("String() = %q on malformed file", got)
	}
}

func TestRenderOptionsFrom(t *testing.T) {
	p := LoadFrom(filepath.Join(t.TempDir(), prefsFile))
	if d := cmp.Diff(DefaultRenderOptions(), RenderOptionsFrom(p)); d != "" {
		t.Errorf("empty prefs should give defaults: %s", d)
	}

	p.SetFloat(KeyScale, 4)
	p.SetFloat(KeyStrokeWidth, -1)
	p.SetFloat(KeyDotRadius, 0)
	p.SetString(KeyBackground, "#102030")
	p.SetBool(KeyLabels, false)

	want := DefaultRenderOptions()
	want.Scale = 4
	want.DotRadius = 0
	want.Background = color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 255}
	want.Labels = false
	if d := cmp.Diff(want, RenderOptionsFrom(p)); d != "" {
		t.Error(d)
	}
}

func TestRenderOptionsStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), prefsFile)
	opts := DefaultRenderOptions()
	opts.FontSize = 14
	opts.Background = color.RGBA{R: 1, G: 2, B: 3, A: 255}

	p := LoadFrom(path)
	opts.Store(p)
	if err := p.Save(); err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(opts, RenderOptionsFrom(LoadFrom(path))); d != "" {
		t.Error(d)
	}
}

func TestParseHexColor(t *testing.T) {
	for _, bad := range []string{"", "#12345", "#zzzzzz", "1234567"} {
		if _, err := ParseHexColor(bad); err == nil {
			t.Errorf("ParseHexColor(%q) succeeded", bad)
		}
	}
	c, err := ParseHexColor("a0B0c0")
	if err != nil {
		t.Fatal(err)
	}
	if got := HexColor(c); got != "#a0b0c0" {
		t.Errorf("HexColor() = %q", got)
	}
}
