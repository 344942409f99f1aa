// Package store persists the high score.
package store

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
)

// record is the on-disk layout of the high score file.
type record struct {
	HighScore int `toml:"high_score"`
}

// File keeps the high score in a TOML file. It is safe for concurrent use,
// so one File can back every SSH session of a server.
type File struct {
	mu   sync.Mutex
	path string
}

// NewFile returns a store backed by the file at path. The file is created on
// the first Save.
func NewFile(path string) *File {
	return &File{path: path}
}

// Load returns the stored high score, or 0 if nothing has been saved yet.
func (f *File) Load() (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.load()
}

func (f *File) load() (int, error) {
	var rec record
	if _, err := toml.DecodeFile(f.path, &rec); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("read high score %s: %w", f.path, err)
	}
	if rec.HighScore < 0 {
		return 0, fmt.Errorf("read high score %s: negative score %d", f.path, rec.HighScore)
	}
	return rec.HighScore, nil
}

// Save stores score if it beats the stored one. Concurrent sessions can only
// raise the high score, never lower it.
func (f *File) Save(score int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	current, err := f.load()
	if err != nil {
		current = 0
	}
	if score <= current {
		return nil
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(record{HighScore: score}); err != nil {
		return fmt.Errorf("encode high score: %w", err)
	}

	if dir := filepath.Dir(f.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create high score dir: %w", err)
		}
	}
	// Write then rename so a crash never leaves a truncated file behind.
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write high score: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("write high score: %w", err)
	}
	return nil
}

// Memory keeps the high score in memory only.
type Memory struct {
	mu    sync.Mutex
	score int
}

// Load returns the best score saved so far.
func (m *Memory) Load() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.score, nil
}

// Save records score if it beats the current one.
func (m *Memory) Save(score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.score = max(m.score, score)
	return nil
}
