package letters

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	"coverletter-gen/internal/documents"
	"coverletter-gen/internal/llm"
	"coverletter-gen/internal/state"
)

type fakeLLM struct {
	letterCalls   int
	filenameCalls int
	lastInput     llm.LetterInput
	letter        string
	letterErr     error
	filename      string
	filenameErr   error
	entered       chan struct{}
	block         chan struct{}
}

func (f *fakeLLM) GenerateLetter(ctx context.Context, input llm.LetterInput) (string, error) {
	f.letterCalls++
	f.lastInput = input
	if f.entered != nil {
		close(f.entered)
		f.entered = nil
	}
	if f.block != nil {
		<-f.block
	}
	if f.letterErr != nil {
		return "", f.letterErr
	}
	return f.letter, nil
}

func (f *fakeLLM) SuggestFilename(ctx context.Context, jobDescription string) (string, error) {
	f.filenameCalls++
	if f.filenameErr != nil {
		return "", f.filenameErr
	}
	return f.filename, nil
}

type fakeDocs struct {
	resume *documents.Document
	sample *documents.Document
}

func (f fakeDocs) Resume() (documents.Document, bool) {
	if f.resume == nil {
		return documents.Document{}, false
	}
	return *f.resume, true
}

func (f fakeDocs) Sample() (documents.Document, bool) {
	if f.sample == nil {
		return documents.Document{}, false
	}
	return *f.sample, true
}

type fakeClipboard struct {
	text string
	err  error
}

func (f fakeClipboard) ReadText() (string, error) { return f.text, f.err }

func newService(t *testing.T, client llm.Client, docs DocumentSource) (*Service, string) {
	t.Helper()
	outDir := t.TempDir()
	settings := state.Settings{
		CoverLetterModel: "gpt-5.1",
		FontName:         "Helvetica",
		FontSize:         12,
		OutputPath:       outDir,
	}
	store, err := state.New(t.TempDir(), settings)
	if err != nil {
		t.Fatalf("new state store: %v", err)
	}
	return &Service{LLM: client, Docs: docs, State: store}, outDir
}

func listFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestGenerate_HappyPath(t *testing.T) {
	client := &fakeLLM{letter: "Dear Hiring Manager,\n\nI am excited to apply.", filename: "acme_backend_engineer"}
	docs := fakeDocs{resume: &documents.Document{Text: "Experienced engineer with Go and SQL."}}
	svc, outDir := newService(t, client, docs)

	result, err := svc.Generate(context.Background(), GenerateRequest{JobDescription: "We seek a backend engineer."})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if client.letterCalls != 1 {
		t.Fatalf("expected exactly one letter API call, got %d", client.letterCalls)
	}
	if client.lastInput.ResumeText != "Experienced engineer with Go and SQL." {
		t.Fatalf("resume text not passed verbatim: %q", client.lastInput.ResumeText)
	}
	if client.lastInput.JobDescription != "We seek a backend engineer." {
		t.Fatalf("job description not passed verbatim: %q", client.lastInput.JobDescription)
	}
	if client.lastInput.SampleText != "" {
		t.Fatalf("unexpected sample text: %q", client.lastInput.SampleText)
	}

	if result.FileName != "acme_backend_engineer.pdf" {
		t.Fatalf("unexpected file name: %q", result.FileName)
	}
	files := listFiles(t, outDir)
	if len(files) != 1 || files[0] != result.FileName {
		t.Fatalf("expected exactly one PDF, got %v", files)
	}
	data, err := os.ReadFile(result.Path)
	if err != nil {
		t.Fatalf("read pdf: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("expected PDF artifact, got %q", data[:8])
	}
}

func TestGenerate_SamplePassedWhenPresent(t *testing.T) {
	client := &fakeLLM{letter: "Dear Hiring Manager,", filename: "acme_role"}
	docs := fakeDocs{
		resume: &documents.Document{Text: "Experienced engineer."},
		sample: &documents.Document{Text: "My previous letter."},
	}
	svc, _ := newService(t, client, docs)

	if _, err := svc.Generate(context.Background(), GenerateRequest{JobDescription: "We seek a backend engineer."}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if client.lastInput.SampleText != "My previous letter." {
		t.Fatalf("sample text not passed verbatim: %q", client.lastInput.SampleText)
	}
}

func TestGenerate_MissingResume(t *testing.T) {
	client := &fakeLLM{letter: "unused"}
	svc, outDir := newService(t, client, fakeDocs{})

	_, err := svc.Generate(context.Background(), GenerateRequest{JobDescription: "We seek a backend engineer."})
	if !errors.Is(err, ErrMissingResume) {
		t.Fatalf("expected ErrMissingResume, got %v", err)
	}
	if client.letterCalls != 0 {
		t.Fatalf("expected zero API calls, got %d", client.letterCalls)
	}
	if files := listFiles(t, outDir); len(files) != 0 {
		t.Fatalf("expected zero files, got %v", files)
	}
}

func TestGenerate_MissingJobDescription(t *testing.T) {
	client := &fakeLLM{letter: "unused"}
	docs := fakeDocs{resume: &documents.Document{Text: "Experienced engineer."}}
	svc, outDir := newService(t, client, docs)

	_, err := svc.Generate(context.Background(), GenerateRequest{})
	if !errors.Is(err, ErrMissingJobDescription) {
		t.Fatalf("expected ErrMissingJobDescription, got %v", err)
	}
	if client.letterCalls != 0 {
		t.Fatalf("expected zero API calls, got %d", client.letterCalls)
	}
	if files := listFiles(t, outDir); len(files) != 0 {
		t.Fatalf("expected zero files, got %v", files)
	}
}

func TestGenerate_ClipboardFallback(t *testing.T) {
	client := &fakeLLM{letter: "Dear Hiring Manager,", filename: "acme_role"}
	docs := fakeDocs{resume: &documents.Document{Text: "Experienced engineer."}}
	svc, _ := newService(t, client, docs)
	svc.Clipboard = fakeClipboard{text: "  We seek a backend engineer.  "}

	if _, err := svc.Generate(context.Background(), GenerateRequest{}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if client.lastInput.JobDescription != "We seek a backend engineer." {
		t.Fatalf("expected trimmed clipboard text, got %q", client.lastInput.JobDescription)
	}
}

func TestGenerate_EmptyClipboard(t *testing.T) {
	client := &fakeLLM{letter: "unused"}
	docs := fakeDocs{resume: &documents.Document{Text: "Experienced engineer."}}
	svc, _ := newService(t, client, docs)
	svc.Clipboard = fakeClipboard{text: "   "}

	if _, err := svc.Generate(context.Background(), GenerateRequest{}); !errors.Is(err, ErrMissingJobDescription) {
		t.Fatalf("expected ErrMissingJobDescription, got %v", err)
	}
}

func TestGenerate_APIFailureWritesNothing(t *testing.T) {
	client := &fakeLLM{letterErr: errors.New("rate limited")}
	docs := fakeDocs{resume: &documents.Document{Text: "Experienced engineer."}}
	svc, outDir := newService(t, client, docs)

	_, err := svc.Generate(context.Background(), GenerateRequest{JobDescription: "We seek a backend engineer."})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if files := listFiles(t, outDir); len(files) != 0 {
		t.Fatalf("expected zero files after API failure, got %v", files)
	}
}

func TestGenerate_FilenameFallback(t *testing.T) {
	client := &fakeLLM{letter: "Dear Hiring Manager,", filenameErr: errors.New("timeout")}
	docs := fakeDocs{resume: &documents.Document{Text: "Experienced engineer."}}
	svc, _ := newService(t, client, docs)

	result, err := svc.Generate(context.Background(), GenerateRequest{JobDescription: "We seek a backend engineer."})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if result.FileName != "cover_letter.pdf" {
		t.Fatalf("expected fallback file name, got %q", result.FileName)
	}
}

func TestGenerate_SingleFlight(t *testing.T) {
	entered := make(chan struct{})
	client := &fakeLLM{letter: "Dear Hiring Manager,", filename: "acme_role", entered: entered, block: make(chan struct{})}
	docs := fakeDocs{resume: &documents.Document{Text: "Experienced engineer."}}
	svc, _ := newService(t, client, docs)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Generate(context.Background(), GenerateRequest{JobDescription: "We seek a backend engineer."})
		done <- err
	}()

	// Wait until the first request is inside the API call.
	<-entered

	_, err := svc.Generate(context.Background(), GenerateRequest{JobDescription: "Another job."})
	if !errors.Is(err, ErrGenerationInFlight) {
		t.Fatalf("expected ErrGenerationInFlight, got %v", err)
	}

	close(client.block)
	if err := <-done; err != nil {
		t.Fatalf("first generate: %v", err)
	}
}
