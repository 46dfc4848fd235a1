package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"coverletter-gen/internal/extract"
	"coverletter-gen/internal/llm"
	openai "coverletter-gen/internal/llm/openai"
	"coverletter-gen/internal/shared/config"
)

// prompttest runs the generation prompts against the live API from the
// command line, without the HTTP shell in the way.
func main() {
	cfg := config.Load()

	resumePath := flag.String("resume", "", "Path to resume file (pdf, docx or txt)")
	samplePath := flag.String("sample", "", "Path to a sample cover letter (optional)")
	jdPath := flag.String("jd", "", "Path to job description file")
	model := flag.String("model", cfg.LetterModel, "Generation model")
	outPath := flag.String("out", "", "Path to write the raw letter text (optional)")
	withName := flag.Bool("filename", false, "Also run the filename prompt")
	flag.Parse()

	if strings.TrimSpace(*resumePath) == "" {
		exitErr("resume path is required")
	}
	if strings.TrimSpace(*jdPath) == "" {
		exitErr("job description path is required")
	}

	resumeText, err := extract.FromFile(*resumePath)
	if err != nil {
		exitErr(fmt.Sprintf("extract resume text: %v", err))
	}

	sampleText := ""
	if strings.TrimSpace(*samplePath) != "" {
		sampleText, err = extract.FromFile(*samplePath)
		if err != nil {
			exitErr(fmt.Sprintf("extract sample text: %v", err))
		}
	}

	jdBytes, err := os.ReadFile(*jdPath)
	if err != nil {
		exitErr(fmt.Sprintf("read job description: %v", err))
	}

	client, err := openai.NewClient(cfg.OpenAIAPIKey, openai.Params{
		LetterModel:       *model,
		FilenameModel:     cfg.FilenameModel,
		MaxTokens:         cfg.MaxTokens,
		FilenameMaxTokens: cfg.FilenameMaxTokens,
		Temperature:       cfg.Temperature,
		TopP:              cfg.TopP,
	})
	if err != nil {
		exitErr(err.Error())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	started := time.Now()
	letter, err := client.GenerateLetter(ctx, llm.LetterInput{
		ResumeText:     resumeText,
		SampleText:     sampleText,
		JobDescription: string(jdBytes),
	})
	if err != nil {
		exitErr(fmt.Sprintf("generate letter: %v", err))
	}
	fmt.Fprintf(os.Stderr, "generated in %s (%d chars)\n", time.Since(started).Round(time.Millisecond), len(letter))

	if *withName {
		name, err := client.SuggestFilename(ctx, string(jdBytes))
		if err != nil {
			fmt.Fprintf(os.Stderr, "filename prompt failed: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "suggested filename: %s\n", name)
		}
	}

	if strings.TrimSpace(*outPath) != "" {
		if err := os.WriteFile(*outPath, []byte(letter), 0o644); err != nil {
			exitErr(fmt.Sprintf("write output: %v", err))
		}
		fmt.Printf("OK: wrote %s\n", *outPath)
		return
	}
	fmt.Println(letter)
}

func exitErr(msg string) {
	fmt.Fprintln(os.Stderr, "error: "+msg)
	os.Exit(1)
}
