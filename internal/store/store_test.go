package store

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestFileMissingIsZero(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "scores.toml"))
	got, err := f.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != 0 {
		t.Errorf("Load() = %d, want 0", got)
	}
}

func TestFileSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "scores.toml")
	f := NewFile(path)

	if err := f.Save(1250); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// A fresh store sees the persisted value.
	got, err := NewFile(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != 1250 {
		t.Errorf("Load() = %d, want 1250", got)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "high_score = 1250") {
		t.Errorf("file content = %q, want a high_score key", data)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file left behind")
	}
}

func TestFileNeverLowersScore(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "scores.toml"))
	if err := f.Save(900); err != nil {
		t.Fatal(err)
	}
	if err := f.Save(300); err != nil {
		t.Fatal(err)
	}
	if got, _ := f.Load(); got != 900 {
		t.Errorf("Load() = %d, want 900", got)
	}
}

func TestFileCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.toml")
	if err := os.WriteFile(path, []byte("high_score = \"lots\""), 0o644); err != nil {
		t.Fatal(err)
	}
	f := NewFile(path)
	if _, err := f.Load(); err == nil {
		t.Error("Load() should fail on a corrupt file")
	}

	// Saving repairs the file.
	if err := f.Save(10); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if got, err := f.Load(); err != nil || got != 10 {
		t.Errorf("Load() = %d, %v, want 10", got, err)
	}
}

func TestFileUnwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	// The parent "directory" is a regular file.
	f := NewFile(filepath.Join(blocker, "scores.toml"))
	if err := f.Save(5); err == nil {
		t.Error("Save() should fail when the directory cannot be created")
	}
}

func TestFileConcurrentSaves(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "scores.toml"))
	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			if err := f.Save(score * 10); err != nil {
				t.Errorf("Save(%d) error = %v", score*10, err)
			}
		}(i)
	}
	wg.Wait()
	if got, _ := f.Load(); got != 200 {
		t.Errorf("Load() = %d, want the best score 200", got)
	}
}

func TestMemory(t *testing.T) {
	var m Memory
	_ = m.Save(40)
	_ = m.Save(20)
	if got, _ := m.Load(); got != 40 {
		t.Errorf("Load() = %d, want 40", got)
	}
}
