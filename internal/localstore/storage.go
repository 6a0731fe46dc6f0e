package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrNoSlot is returned when a named slot holds no value.
var ErrNoSlot = errors.New("slot is empty")

// Storage persists JSON documents under distinct named slots, mirroring the
// browser-local storage contract of the original client.
type Storage interface {
	Get(ctx context.Context, slot string, v any) error
	Set(ctx context.Context, slot string, v any) error
	Remove(ctx context.Context, slot string) error
}

// FileStorage keeps one JSON file per slot under a state directory.
type FileStorage struct {
	mu  sync.Mutex
	dir string
}

func NewFileStorage(dir string) *FileStorage {
	return &FileStorage{dir: dir}
}

func (s *FileStorage) path(slot string) string {
	return filepath.Join(s.dir, slot+".json")
}

func (s *FileStorage) Get(_ context.Context, slot string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path(slot))
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNoSlot
		}
		return fmt.Errorf("read slot %s: %w", slot, err)
	}

	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode slot %s: %w", slot, err)
	}
	return nil
}

func (s *FileStorage) Set(_ context.Context, slot string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode slot %s: %w", slot, err)
	}

	// Write-and-rename so a crash never leaves a torn slot behind.
	tmp := s.path(slot) + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write slot %s: %w", slot, err)
	}
	if err := os.Rename(tmp, s.path(slot)); err != nil {
		return fmt.Errorf("commit slot %s: %w", slot, err)
	}
	return nil
}

func (s *FileStorage) Remove(_ context.Context, slot string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(slot)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove slot %s: %w", slot, err)
	}
	return nil
}
