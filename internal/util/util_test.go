// internal/util/util_test.go
package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "report_abc.md")
	data := []byte("# Report\n\nbody")

	if err := WriteFile(path, data); err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if string(got) != string(data) {
		t.Fatalf("unexpected file contents: got %q want %q", got, data)
	}
}

func TestTruncateRunes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{name: "no truncation", in: "hello", max: 10, want: "hello"},
		{name: "ascii truncation", in: "helloworld", max: 5, want: "hello…"},
		{name: "multibyte truncation", in: "こんにちは世界", max: 4, want: "こんにち…"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateRunes(tt.in, tt.max); got != tt.want {
				t.Fatalf("TruncateRunes(%q,%d)=%q want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}

func TestFormatThousands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-42000, "-42,000"},
	}

	for _, tt := range tests {
		if got := FormatThousands(tt.in); got != tt.want {
			t.Errorf("FormatThousands(%d)=%q want %q", tt.in, got, tt.want)
		}
	}
}

func TestWrapToWidth(t *testing.T) {
	t.Parallel()

	got := WrapToWidth("alpha beta gamma", 11)
	want := "alpha beta\ngamma"
	if got != want {
		t.Fatalf("WrapToWidth=%q want %q", got, want)
	}

	if got := WrapToWidth("short", 0); got != "short" {
		t.Fatalf("WrapToWidth with zero width should be a no-op, got %q", got)
	}
}
