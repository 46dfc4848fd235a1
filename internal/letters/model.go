package letters

import "time"

// GenerateRequest carries the pasted job description. An empty value
// makes the service fall back to the system clipboard.
type GenerateRequest struct {
	JobDescription string `json:"jobDescription"`
}

// Result describes the written PDF artifact.
type Result struct {
	ID          string    `json:"id"`
	FileName    string    `json:"fileName"`
	Path        string    `json:"path"`
	Model       string    `json:"model"`
	GeneratedAt time.Time `json:"generatedAt"`
}
