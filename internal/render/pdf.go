package render

import (
	"bytes"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/go-pdf/fpdf"
)

const (
	pageMargin = 72 // 1 inch
)

var (
	emailPattern = regexp.MustCompile(`[\w.+-]+@[\w.-]+\.\w+`)
	urlPattern   = regexp.MustCompile(`\b(?:https?://)?(?:www\.)?[\w.-]+\.(?:com|ca|org)\b(?:/[\w./-]*)?`)
)

var coreFonts = map[string]struct{}{
	"helvetica": {},
	"times":     {},
	"courier":   {},
	"arial":     {},
}

// Options control the font used for the letter body.
type Options struct {
	FontName string
	FontSize float64
	// FontPath points at a TTF file for non-core fonts. Core fonts
	// (Helvetica, Times, Courier) need no file.
	FontPath string
}

func (o Options) withDefaults() Options {
	if strings.TrimSpace(o.FontName) == "" {
		o.FontName = "Helvetica"
	}
	if o.FontSize <= 0 {
		o.FontSize = 12
	}
	return o
}

// Letter renders the generated letter text to a single PDF document and
// returns its bytes. Nothing touches the filesystem here, so a failed
// render leaves no partial file behind.
func Letter(text string, opts Options) ([]byte, error) {
	doc, err := buildDoc(text, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func buildDoc(text string, opts Options) (*fpdf.Fpdf, error) {
	opts = opts.withDefaults()

	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	translate := func(s string) string { return s }
	if _, core := coreFonts[strings.ToLower(opts.FontName)]; core {
		translate = pdf.UnicodeTranslatorFromDescriptor("")
	} else {
		if strings.TrimSpace(opts.FontPath) == "" {
			return nil, fmt.Errorf("font %q requires a TTF file path", opts.FontName)
		}
		pdf.AddUTF8Font(opts.FontName, "", opts.FontPath)
	}
	pdf.SetFont(opts.FontName, "", opts.FontSize)
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("register font: %w", err)
	}

	pageWidth, pageHeight := pdf.GetPageSize()
	maxWidth := pageWidth - 2*pageMargin
	lineHeight := opts.FontSize + 2

	pdf.AddPage()
	y := float64(pageMargin)

	advance := func() {
		y += lineHeight
		if y > pageHeight-pageMargin {
			pdf.AddPage()
			y = pageMargin + lineHeight
		}
	}

	for _, paragraph := range strings.Split(text, "\n") {
		if strings.TrimSpace(paragraph) == "" {
			advance()
			continue
		}
		for _, line := range wrapLine(pdf, translate(paragraph), maxWidth) {
			advance()
			drawLineWithLinks(pdf, line, pageMargin, y, opts.FontSize)
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return pdf, nil
}

// wrapLine splits a paragraph into lines that fit maxWidth, breaking on
// spaces. A single word wider than the page keeps its own line.
func wrapLine(pdf *fpdf.Fpdf, paragraph string, maxWidth float64) []string {
	words := strings.Fields(paragraph)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if pdf.GetStringWidth(candidate) <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current)
}

type link struct {
	start   int
	end     int
	display string
	url     string
}

// findLinks locates email addresses and URLs in a line. Emails win over
// URL matches that overlap them, mirroring reportlab-era behavior where
// user@site.com must not double-link as site.com.
func findLinks(text string) []link {
	var links []link
	emailSpans := make(map[int]struct{})

	for _, m := range emailPattern.FindAllStringIndex(text, -1) {
		email := text[m[0]:m[1]]
		links = append(links, link{start: m[0], end: m[1], display: email, url: "mailto:" + email})
		for i := m[0]; i < m[1]; i++ {
			emailSpans[i] = struct{}{}
		}
	}

	for _, m := range urlPattern.FindAllStringIndex(text, -1) {
		overlaps := false
		for i := m[0]; i < m[1]; i++ {
			if _, ok := emailSpans[i]; ok {
				overlaps = true
				break
			}
		}
		if overlaps {
			continue
		}
		display := text[m[0]:m[1]]
		url := display
		if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
			url = "https://" + url
		}
		links = append(links, link{start: m[0], end: m[1], display: display, url: url})
	}

	sort.Slice(links, func(i, j int) bool { return links[i].start < links[j].start })
	return links
}

func drawLineWithLinks(pdf *fpdf.Fpdf, line string, x, y, fontSize float64) {
	links := findLinks(line)
	if len(links) == 0 {
		pdf.Text(x, y, line)
		return
	}

	currentX := x
	lastEnd := 0
	for _, l := range links {
		if l.start > lastEnd {
			before := line[lastEnd:l.start]
			pdf.Text(currentX, y, before)
			currentX += pdf.GetStringWidth(before)
		}

		linkWidth := pdf.GetStringWidth(l.display)
		pdf.SetTextColor(0, 0, 204)
		pdf.Text(currentX, y, l.display)
		pdf.LinkString(currentX, y-fontSize, linkWidth, fontSize+2, l.url)

		pdf.SetDrawColor(0, 0, 204)
		pdf.Line(currentX, y+1, currentX+linkWidth, y+1)

		pdf.SetTextColor(0, 0, 0)
		pdf.SetDrawColor(0, 0, 0)
		currentX += linkWidth
		lastEnd = l.end
	}

	if lastEnd < len(line) {
		pdf.Text(currentX, y, line[lastEnd:])
	}
}
