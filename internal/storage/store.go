package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"ailife/internal/life"
	"ailife/internal/settings"
)

// snapshot is the on-disk document. The keys mirror the fixed identifiers
// the data has always been stored under, so old backups stay readable.
type snapshot struct {
	Lives    []*life.Life      `json:"ailife_lives"`
	Settings settings.Settings `json:"ailife_settings"`
}

// exportDoc is the user-facing export/import format.
type exportDoc struct {
	Lives    []*life.Life       `json:"lives"`
	Settings *settings.Settings `json:"settings"`
}

// Store persists the roster of lives and the settings record as one JSON
// snapshot file. Writes are whole-file; the mutex serializes them.
type Store struct {
	path string

	mu       sync.Mutex
	lives    []*life.Life
	settings settings.Settings
}

// Open loads the snapshot at path, or starts fresh with default settings if
// the file does not exist yet.
func Open(path string) (*Store, error) {
	s := &Store{path: path, settings: settings.Default()}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	s.lives = snap.Lives
	s.settings = snap.Settings
	return s, nil
}

// Lives returns the roster, newest first.
func (s *Store) Lives() []*life.Life {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*life.Life, len(s.lives))
	copy(out, s.lives)
	return out
}

func (s *Store) Settings() settings.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

func (s *Store) SetSettings(cfg settings.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = cfg
	return s.flush()
}

// AddLife prepends a new life to the roster.
func (s *Store) AddLife(l *life.Life) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lives = append([]*life.Life{l}, s.lives...)
	return s.flush()
}

func (s *Store) DeleteLife(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.lives[:0]
	for _, l := range s.lives {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	s.lives = kept
	return s.flush()
}

// SaveLife writes a mutated life back to disk. This is the persistence
// hand-off the engine calls at the end of a merged turn.
func (s *Store) SaveLife(l *life.Life) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lives {
		if s.lives[i].ID == l.ID {
			s.lives[i] = l
			return s.flush()
		}
	}
	return fmt.Errorf("unknown life %s", l.ID)
}

// Export serializes the full {lives, settings} pair as a single document.
func (s *Store) Export() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return json.MarshalIndent(exportDoc{Lives: s.lives, Settings: &s.settings}, "", "  ")
}

// Import replaces the roster and settings with a previously exported
// document. Both keys must be present.
func (s *Store) Import(data []byte) error {
	var doc exportDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse import: %w", err)
	}
	if doc.Lives == nil || doc.Settings == nil {
		return fmt.Errorf("invalid format: missing lives or settings")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lives = doc.Lives
	s.settings = *doc.Settings
	return s.flush()
}

func (s *Store) flush() error {
	data, err := json.MarshalIndent(snapshot{Lives: s.lives, Settings: s.settings}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}
