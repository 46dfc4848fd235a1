package llm

import _ "embed"

var (
	//go:embed prompts/cover_letter.txt
	coverLetterPrompt string
	//go:embed prompts/filename.txt
	filenamePrompt string
)

// CoverLetterPrompt returns the instruction block prepended to every
// letter generation request.
func CoverLetterPrompt() string {
	return coverLetterPrompt
}

// FilenamePrompt returns the system prompt for filename suggestions.
func FilenamePrompt() string {
	return filenamePrompt
}
