package render

import (
	"bytes"
	"strings"
	"testing"
)

func TestLetter_ProducesPDF(t *testing.T) {
	text := "Jordan Lee\nAustin, TX\n\nDear Hiring Manager,\n\nI am excited to apply."

	data, err := Letter(text, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("expected PDF header, got %q", data[:8])
	}
}

func TestBuildDoc_ContainsLetterText(t *testing.T) {
	text := "Dear Hiring Manager,\n\nI build backend services.\n\nSincerely,\nJordan Lee"

	doc, err := buildDoc(text, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Uncompressed content streams keep the drawn strings readable.
	doc.SetCompression(false)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		t.Fatalf("output: %v", err)
	}

	for _, want := range []string{"Dear Hiring Manager,", "I build backend services.", "Sincerely,", "Jordan Lee"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("rendered PDF missing %q", want)
		}
	}
}

func TestLetter_UnknownFontWithoutPath(t *testing.T) {
	_, err := Letter("hello", Options{FontName: "Garamond"})
	if err == nil {
		t.Fatal("expected error for non-core font without TTF path")
	}
	if !strings.Contains(err.Error(), "TTF") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBuildDoc_PageBreaks(t *testing.T) {
	paragraph := "This paragraph repeats to force the cursor past the bottom margin of a single US Letter page."
	text := strings.Repeat(paragraph+"\n\n", 60)

	doc, err := buildDoc(text, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.PageCount() < 2 {
		t.Fatalf("expected multiple pages, got %d", doc.PageCount())
	}
}

func TestFindLinks(t *testing.T) {
	tests := []struct {
		name        string
		line        string
		wantURLs    []string
		wantDisplay []string
	}{
		{
			name:        "plain email",
			line:        "Reach me at jordan.lee@example.com any time",
			wantURLs:    []string{"mailto:jordan.lee@example.com"},
			wantDisplay: []string{"jordan.lee@example.com"},
		},
		{
			name:        "bare domain gets https",
			line:        "See my portfolio at jordanlee.com/projects for details",
			wantURLs:    []string{"https://jordanlee.com/projects"},
			wantDisplay: []string{"jordanlee.com/projects"},
		},
		{
			name:        "explicit scheme preserved",
			line:        "Profile: https://www.linkedin.com/in/jordanlee",
			wantURLs:    []string{"https://www.linkedin.com/in/jordanlee"},
			wantDisplay: []string{"https://www.linkedin.com/in/jordanlee"},
		},
		{
			name:        "email domain not double linked",
			line:        "Email jordan@acme.com today",
			wantURLs:    []string{"mailto:jordan@acme.com"},
			wantDisplay: []string{"jordan@acme.com"},
		},
		{
			name:        "email and url together sorted by position",
			line:        "jordan@acme.com or acme.org/careers",
			wantURLs:    []string{"mailto:jordan@acme.com", "https://acme.org/careers"},
			wantDisplay: []string{"jordan@acme.com", "acme.org/careers"},
		},
		{
			name: "no links",
			line: "Sincerely, Jordan",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			links := findLinks(tt.line)
			if len(links) != len(tt.wantURLs) {
				t.Fatalf("got %d links, want %d: %+v", len(links), len(tt.wantURLs), links)
			}
			for i, l := range links {
				if l.url != tt.wantURLs[i] {
					t.Errorf("link %d url = %q, want %q", i, l.url, tt.wantURLs[i])
				}
				if l.display != tt.wantDisplay[i] {
					t.Errorf("link %d display = %q, want %q", i, l.display, tt.wantDisplay[i])
				}
			}
		})
	}
}
