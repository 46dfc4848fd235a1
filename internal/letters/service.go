package letters

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"coverletter-gen/internal/clipboard"
	"coverletter-gen/internal/documents"
	"coverletter-gen/internal/llm"
	"coverletter-gen/internal/render"
	"coverletter-gen/internal/shared/metrics"
	"coverletter-gen/internal/shared/telemetry"
	"coverletter-gen/internal/shared/util"
	"coverletter-gen/internal/state"
)

const (
	defaultFilenameBase = "cover_letter"
	filenameMaxLen      = 40
)

// DocumentSource provides the current resume and sample selections.
type DocumentSource interface {
	Resume() (documents.Document, bool)
	Sample() (documents.Document, bool)
}

// Service sequences input collection, the generation API call, and the
// PDF write. One generation runs at a time.
type Service struct {
	LLM       llm.Client
	Docs      DocumentSource
	Clipboard clipboard.Reader
	State     *state.Store

	inFlight atomic.Bool
}

// Generate runs the full pipeline: validate inputs, call the API once,
// render the letter, write exactly one PDF. On any failure no file is
// written.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (Result, error) {
	started := time.Now()
	result, err := s.generate(ctx, req)
	if err != nil {
		if !errors.Is(err, ErrGenerationInFlight) {
			metrics.IncLetterFailed()
		}
		return Result{}, err
	}
	metrics.IncLetterGenerated()
	metrics.ObserveGenerationDurationMs(float64(time.Since(started).Microseconds()) / 1000.0)
	return result, nil
}

func (s *Service) generate(ctx context.Context, req GenerateRequest) (Result, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return Result{}, ErrGenerationInFlight
	}
	defer s.inFlight.Store(false)

	resume, ok := s.Docs.Resume()
	if !ok || strings.TrimSpace(resume.Text) == "" {
		return Result{}, ErrMissingResume
	}

	jobDescription, err := s.resolveJobDescription(req.JobDescription)
	if err != nil {
		return Result{}, err
	}

	input := llm.LetterInput{
		ResumeText:     resume.Text,
		JobDescription: jobDescription,
	}
	if sample, ok := s.Docs.Sample(); ok {
		input.SampleText = sample.Text
	}

	settings := s.State.Settings()
	started := time.Now()
	letter, err := s.LLM.GenerateLetter(ctx, input)
	if err != nil {
		return Result{}, &APIError{Err: err}
	}
	if strings.TrimSpace(letter) == "" {
		return Result{}, &APIError{Err: fmt.Errorf("empty letter from model")}
	}

	fileName := s.resolveFileName(ctx, jobDescription) + ".pdf"

	pdfBytes, err := render.Letter(letter, render.Options{
		FontName: settings.FontName,
		FontSize: settings.FontSize,
		FontPath: settings.FontPath,
	})
	if err != nil {
		return Result{}, &FileWriteError{Err: err}
	}

	outputDir := settings.OutputPath
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return Result{}, &FileWriteError{Err: err}
	}
	fullPath := filepath.Join(outputDir, fileName)
	if err := os.WriteFile(fullPath, pdfBytes, 0o644); err != nil {
		return Result{}, &FileWriteError{Err: err}
	}

	result := Result{
		ID:          uuid.NewString(),
		FileName:    fileName,
		Path:        fullPath,
		Model:       settings.CoverLetterModel,
		GeneratedAt: time.Now().UTC(),
	}
	telemetry.Info("letters.generated", map[string]any{
		"id":          result.ID,
		"file":        fullPath,
		"model":       result.Model,
		"duration_ms": float64(time.Since(started).Microseconds()) / 1000.0,
	})
	return result, nil
}

func (s *Service) resolveJobDescription(pasted string) (string, error) {
	jd := strings.TrimSpace(pasted)
	if jd != "" {
		return jd, nil
	}
	if s.Clipboard == nil {
		return "", ErrMissingJobDescription
	}
	text, err := s.Clipboard.ReadText()
	if err != nil {
		return "", fmt.Errorf("%w: clipboard: %v", ErrMissingJobDescription, err)
	}
	jd = strings.TrimSpace(text)
	if jd == "" {
		return "", ErrMissingJobDescription
	}
	return jd, nil
}

// resolveFileName asks the filename model for a company_role base. Any
// failure falls back to the default name and never fails the generation.
func (s *Service) resolveFileName(ctx context.Context, jobDescription string) string {
	raw, err := s.LLM.SuggestFilename(ctx, jobDescription)
	if err != nil {
		telemetry.Error("letters.filename.fallback", map[string]any{"err": err.Error()})
		return defaultFilenameBase
	}
	return util.SlugFilename(raw, filenameMaxLen, defaultFilenameBase)
}

// Open launches the platform PDF viewer for a previously generated file.
// Only files inside the configured output directory are accepted.
func (s *Service) Open(path string) error {
	settings := s.State.Settings()
	outputDir, err := filepath.Abs(settings.OutputPath)
	if err != nil {
		return fmt.Errorf("resolve output dir: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	if !strings.HasPrefix(abs, outputDir+string(os.PathSeparator)) {
		return fmt.Errorf("path outside output directory")
	}
	if _, err := os.Stat(abs); err != nil {
		return fmt.Errorf("open pdf: %w", err)
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", abs)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", abs)
	default:
		cmd = exec.Command("xdg-open", abs)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open pdf: %w", err)
	}
	telemetry.Info("letters.opened", map[string]any{"file": abs})
	return nil
}
