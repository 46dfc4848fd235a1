package documents

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"coverletter-gen/internal/extract"
	"coverletter-gen/internal/shared/telemetry"
	"coverletter-gen/internal/shared/util"
	"coverletter-gen/internal/state"
)

// Service holds the current resume/sample selections. Uploaded files are
// kept under baseDir so the previous selection can be restored next run.
type Service struct {
	baseDir string
	store   *state.Store

	mu   sync.RWMutex
	docs map[state.Slot]Document
}

// NewService creates the documents service and restores any previous
// selections recorded in the session state.
func NewService(baseDir string, store *state.Store) (*Service, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("documents dir: %w", err)
	}
	s := &Service{
		baseDir: baseDir,
		store:   store,
		docs:    map[state.Slot]Document{},
	}
	session := store.Session()
	s.restore(state.SlotResume, session.ResumePath)
	s.restore(state.SlotSample, session.SamplePath)
	return s, nil
}

// Store saves the uploaded file, extracts its text, and records it as the
// current selection for the slot. Unreadable content leaves no file and
// no selection behind.
func (s *Service) Store(ctx context.Context, slot state.Slot, fileName string, r io.Reader) (Document, error) {
	if fileName == "" {
		return Document{}, ErrInvalidInput
	}
	if slot != state.SlotResume && slot != state.SlotSample {
		return Document{}, fmt.Errorf("%w: unknown slot %q", ErrInvalidInput, slot)
	}
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}

	sanitized, err := util.SanitizeFileName(fileName)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("%w: read upload: %v", ErrUnreadable, err)
	}
	mimeType := http.DetectContentType(sniff(raw))

	text, err := extract.FromBytes(raw, mimeType, sanitized)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	if strings.TrimSpace(text) == "" {
		return Document{}, fmt.Errorf("%w: no extractable text", ErrUnreadable)
	}

	finalName := fmt.Sprintf("%s_%s", randomID(), sanitized)
	fullPath := filepath.Join(s.baseDir, finalName)
	if err := os.WriteFile(fullPath, raw, 0o644); err != nil {
		return Document{}, fmt.Errorf("save upload: %w", err)
	}

	doc := Document{
		Slot:       slot,
		FileName:   sanitized,
		Path:       fullPath,
		MimeType:   mimeType,
		SizeBytes:  int64(len(raw)),
		Text:       text,
		SelectedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.docs[slot] = doc
	s.mu.Unlock()

	if err := s.store.SetDocumentPath(slot, fullPath); err != nil {
		telemetry.Error("documents.persist_failed", map[string]any{"slot": slot, "err": err.Error()})
	}
	return doc, nil
}

// Get returns the current document for a slot.
func (s *Service) Get(slot state.Slot) (Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[slot]
	return doc, ok
}

// Resume returns the current resume selection.
func (s *Service) Resume() (Document, bool) { return s.Get(state.SlotResume) }

// Sample returns the current sample selection.
func (s *Service) Sample() (Document, bool) { return s.Get(state.SlotSample) }

func (s *Service) restore(slot state.Slot, path string) {
	if path == "" {
		return
	}
	text, err := extract.FromFile(path)
	if err != nil {
		telemetry.Error("documents.restore_failed", map[string]any{"slot": slot, "path": path, "err": err.Error()})
		return
	}
	s.docs[slot] = Document{
		Slot:       slot,
		FileName:   filepath.Base(path),
		Path:       path,
		Text:       text,
		SelectedAt: time.Now().UTC(),
	}
	telemetry.Info("documents.restored", map[string]any{"slot": slot, "path": path})
}

func sniff(data []byte) []byte {
	if len(data) > 512 {
		return data[:512]
	}
	return data
}

func randomID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
