package llm

import "context"

// Client abstracts LLM providers for cover letter generation.
type Client interface {
	GenerateLetter(ctx context.Context, input LetterInput) (string, error)
	SuggestFilename(ctx context.Context, jobDescription string) (string, error)
}

// LetterInput captures the inputs assembled into one generation prompt.
type LetterInput struct {
	ResumeText     string
	SampleText     string
	JobDescription string
}
