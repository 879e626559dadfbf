package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/binfold/histo/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	// Point at a config file that does not exist; defaults must apply.
	c, err := config.Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Delimiter != "," {
		t.Fatalf("Delimiter = %q, want %q", c.Delimiter, ",")
	}
	if c.NumBins != 10 {
		t.Fatalf("NumBins = %d, want 10", c.NumBins)
	}
	if c.Strict {
		t.Fatal("Strict should default to false (lenient)")
	}
	if c.Precision != 2 {
		t.Fatalf("Precision = %d, want 2", c.Precision)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "delimiter: \";\"\nnum_bins: 25\nstrict: true\nprecision: 4\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Delimiter != ";" || c.NumBins != 25 || !c.Strict || c.Precision != 4 {
		t.Fatalf("loaded config = %+v", c)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	want := &config.Global{
		Delimiter:    "\t",
		NumBins:      42,
		Strict:       true,
		Precision:    3,
		SkipHeader:   true,
		OutputHeader: true,
	}
	if err := config.Save(want, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *got != *want {
		t.Fatalf("round trip: got %+v, want %+v", got, want)
	}
}
