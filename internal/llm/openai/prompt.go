package openai

import (
	"fmt"
	"strings"

	"coverletter-gen/internal/llm"
)

// Message represents an OpenAI chat message.
type Message struct {
	Role    string
	Content string
}

const (
	systemPromptLetter = "You craft concise, personalized cover letters."

	// The filename prompt keeps only the first chunk of the job posting;
	// company and role always appear near the top.
	filenameContextLimit = 1000
)

// BuildLetterMessages creates the chat messages for a letter generation
// request. The resume, optional sample, and job description are passed
// through verbatim inside tagged sections.
func BuildLetterMessages(input llm.LetterInput) []Message {
	var b strings.Builder
	b.WriteString(llm.CoverLetterPrompt())
	b.WriteString("\n\n<resume>\n")
	b.WriteString(strings.TrimSpace(input.ResumeText))
	b.WriteString("\n</resume>\n\n")

	if strings.TrimSpace(input.SampleText) != "" {
		b.WriteString("<cover_letter_sample>\n")
		b.WriteString(strings.TrimSpace(input.SampleText))
		b.WriteString("\n</cover_letter_sample>\n\n")
		b.WriteString("Use the cover letter sample only as a stylistic reference; do not copy it.\n\n")
	}

	b.WriteString("<job_description>\n")
	b.WriteString(strings.TrimSpace(input.JobDescription))
	b.WriteString("\n</job_description>\n\n")
	b.WriteString("Draft the complete cover letter now.")

	return []Message{
		{Role: "system", Content: systemPromptLetter},
		{Role: "user", Content: b.String()},
	}
}

// BuildFilenameMessages creates the chat messages for a filename
// suggestion request.
func BuildFilenameMessages(jobDescription string) []Message {
	return []Message{
		{Role: "system", Content: llm.FilenamePrompt()},
		{Role: "user", Content: fmt.Sprintf("Generate a filename for a cover letter for this job:\n\n%s", truncate(jobDescription, filenameContextLimit))},
	}
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
