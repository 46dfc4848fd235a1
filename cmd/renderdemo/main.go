package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"coverletter-gen/internal/render"
)

func main() {
	outPath := flag.String("out", "./out/sample_cover_letter.pdf", "output path for generated PDF")
	fontName := flag.String("font", "Helvetica", "base font name")
	fontSize := flag.Float64("size", 12, "font size in points")
	fontPath := flag.String("font-path", "", "TTF path for non-core fonts")
	flag.Parse()

	pdfBytes, err := render.Letter(sampleLetter(), render.Options{
		FontName: *fontName,
		FontSize: *fontSize,
		FontPath: *fontPath,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "render failed: %v\n", err)
		os.Exit(1)
	}

	if err := writeOutput(*outPath, pdfBytes); err != nil {
		fmt.Fprintf(os.Stderr, "write failed: %v\n", err)
		os.Exit(1)
	}

	if err := validateRenderedPDF(*outPath); err != nil {
		fmt.Fprintf(os.Stderr, "render validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("OK: wrote %s\n", *outPath)
}

func writeOutput(outPath string, pdfBytes []byte) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(outPath, pdfBytes, 0o644)
}

func validateRenderedPDF(path string) error {
	pdfBytes, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if !bytes.HasPrefix(pdfBytes, []byte("%PDF-")) {
		return fmt.Errorf("output is not a PDF")
	}
	return nil
}

func sampleLetter() string {
	return `Dear Hiring Manager,

I am writing to apply for the Senior Backend Engineer role at Acme Logistics. Over the past eight years I have designed and operated resilient APIs and data services, most recently leading a routing service rewrite that reduced shipment latency by 18%.

Acme's focus on dependable delivery infrastructure matches the systems work I enjoy most. I would welcome the chance to bring that experience to your platform team.

You can reach me at jordan.lee@example.com or see recent work at github.com/jordanlee.

Sincerely,
Jordan Lee`
}
