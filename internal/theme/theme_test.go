package theme

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := `
# comment
Name: mine
Background: #101010
ClipStroke: gold
ClipFill: #01020304
Unknown: #FFFFFF
`
	th, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if th.Name != "mine" {
		t.Errorf("Expected name 'mine', got %q", th.Name)
	}
	if th.Background != (color.RGBA{16, 16, 16, 255}) {
		t.Errorf("Unexpected Background: %+v", th.Background)
	}
	if th.ClipStroke != (color.RGBA{255, 215, 0, 255}) {
		t.Errorf("Unexpected ClipStroke: %+v", th.ClipStroke)
	}
	if th.ClipFill != (color.RGBA{1, 2, 3, 4}) {
		t.Errorf("Unexpected ClipFill: %+v", th.ClipFill)
	}
	if th.Handle != Default().Handle {
		t.Errorf("Missing keys should keep defaults, got %+v", th.Handle)
	}
}

func TestParseBadColor(t *testing.T) {
	if _, err := Parse(strings.NewReader("Outline: #12345")); err == nil {
		t.Fatal("Expected error for short hex")
	}
	if _, err := Parse(strings.NewReader("Outline: notacolor")); err == nil {
		t.Fatal("Expected error for unknown name")
	}
}

func TestColorsRoundTrip(t *testing.T) {
	d := Default()
	var sb strings.Builder
	for _, kv := range d.Colors() {
		sb.WriteString(kv[0] + ": " + kv[1] + "\n")
	}
	got, err := Parse(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	got.Name = d.Name
	if *got != *d {
		t.Errorf("Round trip mismatch:\n%+v\n%+v", got, d)
	}
}

func TestLoaderEmbedded(t *testing.T) {
	l := &Loader{}
	for _, name := range []string{"dark", "light.theme"} {
		th, err := l.Load(name)
		if err != nil {
			t.Fatalf("Load(%q) failed: %v", name, err)
		}
		if !strings.HasPrefix(name, th.Name) {
			t.Errorf("Load(%q) returned theme %q", name, th.Name)
		}
	}
	if _, err := l.Load("missing"); err == nil {
		t.Error("Expected error for missing theme")
	}
}

func TestLoaderConfigDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "sunset.theme"), []byte("Name: sunset\nOutline: orange\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := &Loader{ConfigDir: dir}
	th, err := l.Load("sunset")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if th.Outline != (color.RGBA{255, 165, 0, 255}) {
		t.Errorf("Unexpected Outline: %+v", th.Outline)
	}
}
