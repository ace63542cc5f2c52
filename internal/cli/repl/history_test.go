package repl

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewHistory(t *testing.T) {
	h := NewHistory("")
	if h.maxSize != DefaultHistorySize {
		t.Errorf("maxSize = %d, want %d", h.maxSize, DefaultHistorySize)
	}
	if h.Len() != 0 {
		t.Errorf("Len() = %d, want 0", h.Len())
	}
}

func TestHistory_Add(t *testing.T) {
	h := NewHistory("")
	h.Add("PING")
	h.Add("PING")
	h.Add("GET k")
	h.Add("PING")

	if h.Len() != 3 {
		t.Errorf("Len() = %d, want 3 (consecutive duplicates collapse)", h.Len())
	}
}

func TestHistory_Add_MaxSize(t *testing.T) {
	h := &History{maxSize: 3}

	for _, c := range []string{"cmd1", "cmd2", "cmd3", "cmd4"} {
		h.Add(c)
	}

	if h.Len() != 3 {
		t.Errorf("Len() = %d, want 3", h.Len())
	}
	if h.Get(2) != "cmd2" {
		t.Errorf("oldest = %q, want cmd2", h.Get(2))
	}
}

func TestHistory_Get(t *testing.T) {
	h := NewHistory("")
	h.Add("first")
	h.Add("second")
	h.Add("third")

	tests := []struct {
		index int
		want  string
	}{
		{0, "third"},
		{1, "second"},
		{2, "first"},
		{3, ""},
		{-1, ""},
	}

	for _, tt := range tests {
		if got := h.Get(tt.index); got != tt.want {
			t.Errorf("Get(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}
}

func TestHistory_SaveLoad(t *testing.T) {
	file := filepath.Join(t.TempDir(), "nested", "history")

	h := NewHistory(file)
	h.Add("SET k v")
	h.Add("GET k")
	if err := h.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(file)
	if err != nil {
		t.Fatalf("history file not created: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("history file mode = %o, want 600", perm)
	}

	h2 := NewHistory(file)
	if err := h2.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if h2.Len() != 2 || h2.Get(0) != "GET k" || h2.Get(1) != "SET k v" {
		t.Errorf("loaded entries = %v", h2.entries)
	}
}

func TestHistory_Load_NonexistentFile(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "missing"))
	if err := h.Load(); err != nil {
		t.Errorf("Load() of a missing file should not error: %v", err)
	}
	if h.Len() != 0 {
		t.Error("entries should stay empty")
	}
}

func TestHistory_InMemory(t *testing.T) {
	h := NewHistory("")
	h.Add("PING")
	if err := h.Save(); err != nil {
		t.Errorf("Save() without a file should be a no-op: %v", err)
	}
	if err := h.Load(); err != nil {
		t.Errorf("Load() without a file should be a no-op: %v", err)
	}
}

func TestDefaultHistoryFile(t *testing.T) {
	file := DefaultHistoryFile()
	if file == "" {
		t.Skip("no home directory")
	}
	if !filepath.IsAbs(file) || !strings.HasSuffix(file, ".respkv_history") {
		t.Errorf("DefaultHistoryFile() = %q", file)
	}
}
