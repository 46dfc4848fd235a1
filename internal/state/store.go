package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"coverletter-gen/internal/shared/telemetry"
)

const (
	settingsFile = "settings.json"
	sessionFile  = "session.json"
)

// Slot identifies one of the two document selections.
type Slot string

const (
	SlotResume Slot = "resume"
	SlotSample Slot = "sample"
)

// Settings are the user-tunable preferences. JSON keys match the
// settings file of earlier releases so existing files keep working.
type Settings struct {
	CoverLetterModel  string  `json:"cover_letter_model"`
	FilenameModel     string  `json:"filename_model"`
	MaxTokens         int     `json:"max_tokens"`
	FilenameMaxTokens int     `json:"filename_max_tokens"`
	Temperature       float64 `json:"temperature"`
	TopP              float64 `json:"top_p"`
	FontName          string  `json:"font_name"`
	FontSize          float64 `json:"font_size"`
	FontPath          string  `json:"font_path,omitempty"`
	OutputPath        string  `json:"output_path"`
}

// Session remembers the last selected document paths across runs.
type Session struct {
	ResumePath string `json:"resume,omitempty"`
	SamplePath string `json:"sample,omitempty"`
}

// Store persists settings and session state as JSON files under dir.
type Store struct {
	dir string

	mu       sync.Mutex
	settings Settings
	session  Session
}

// New creates a store rooted at dir, seeded with defaults and overlaid
// with whatever valid state already exists on disk. A missing or corrupt
// file falls back to the seed; stale session paths are dropped.
func New(dir string, defaults Settings) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("state dir: %w", err)
	}
	s := &Store{dir: dir, settings: defaults}
	s.loadSettings()
	s.loadSession()
	return s, nil
}

// Settings returns a copy of the current settings.
func (s *Store) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// SaveSettings replaces the settings and persists them.
func (s *Store) SaveSettings(settings Settings) error {
	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()
	return writeJSON(filepath.Join(s.dir, settingsFile), settings)
}

// Session returns a copy of the current session state.
func (s *Store) Session() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// SetDocumentPath records the selected file for a slot and persists the
// session.
func (s *Store) SetDocumentPath(slot Slot, path string) error {
	s.mu.Lock()
	switch slot {
	case SlotSample:
		s.session.SamplePath = path
	default:
		s.session.ResumePath = path
	}
	session := s.session
	s.mu.Unlock()
	return writeJSON(filepath.Join(s.dir, sessionFile), session)
}

func (s *Store) loadSettings() {
	path := filepath.Join(s.dir, settingsFile)
	raw, err := os.ReadFile(path)
	if err != nil {
		return
	}
	// Decode over a copy of the defaults so absent keys keep their
	// seeded values.
	merged := s.settings
	if err := json.Unmarshal(raw, &merged); err != nil {
		telemetry.Error("state.settings.parse_failed", map[string]any{"path": path, "err": err.Error()})
		return
	}
	s.settings = merged
}

func (s *Store) loadSession() {
	path := filepath.Join(s.dir, sessionFile)
	raw, err := os.ReadFile(path)
	if err != nil {
		return
	}
	var session Session
	if err := json.Unmarshal(raw, &session); err != nil {
		telemetry.Error("state.session.parse_failed", map[string]any{"path": path, "err": err.Error()})
		return
	}

	dirty := false
	if session.ResumePath != "" {
		if _, err := os.Stat(session.ResumePath); err != nil {
			telemetry.Error("state.session.stale_path", map[string]any{"slot": "resume", "path": session.ResumePath})
			session.ResumePath = ""
			dirty = true
		}
	}
	if session.SamplePath != "" {
		if _, err := os.Stat(session.SamplePath); err != nil {
			telemetry.Error("state.session.stale_path", map[string]any{"slot": "sample", "path": session.SamplePath})
			session.SamplePath = ""
			dirty = true
		}
	}

	s.session = session
	if dirty {
		if err := writeJSON(path, session); err != nil {
			telemetry.Error("state.session.rewrite_failed", map[string]any{"path": path, "err": err.Error()})
		}
	}
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
