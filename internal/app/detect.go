package app

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"horse.fit/langid/internal/corpus"
	"horse.fit/langid/internal/langdetect"
	"horse.fit/langid/internal/language"
	"horse.fit/langid/internal/logging"
)

func runDetect(args []string) int {
	fs := flag.NewFlagSet("detect", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	dir := fs.String("dir", envOrDefault("CORPUS_DIR", "corpora"), "Directory containing corpus-<code>.<ext> files")
	text := fs.String("text", "", "Text to detect (reads stdin when empty)")
	workers := fs.Int("workers", corpus.DefaultWorkers, "Corpus loader concurrency")
	asJSON := fs.Bool("json", false, "Print the result as JSON")
	logLevel := fs.String("log-level", "warn", "Log level for loader diagnostics")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	input := *text
	if input == "" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read stdin: %v\n", err)
			return 1
		}
		input = string(raw)
	}
	if input == "" {
		fmt.Fprintln(os.Stderr, "text is required (use --text or stdin)")
		return 2
	}

	logger, err := logging.NewWithWriter(os.Stderr, "local", *logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}

	models, err := loadModels(context.Background(), strings.TrimSpace(*dir), *workers, false, language.Default, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load corpora: %v\n", err)
		return 1
	}

	result := langdetect.New(models, language.Default).Detect(input)
	if *asJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(result); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode result: %v\n", err)
			return 1
		}
		return 0
	}

	if err := writeRanking(os.Stdout, result, !color.NoColor); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to print result: %v\n", err)
		return 1
	}
	return 0
}

func writeRanking(w io.Writer, result langdetect.Result, useColor bool) error {
	if result.Empty() {
		_, err := fmt.Fprintf(w, "no language matched (%d tokens)\n", result.TokenCount)
		return err
	}

	top := color.New(color.FgGreen, color.Bold)
	rest := color.New(color.FgWhite)
	if useColor {
		top.EnableColor()
		rest.EnableColor()
	} else {
		top.DisableColor()
		rest.DisableColor()
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LANGUAGE\tPERCENT\tHITS")
	for i, score := range result.Scores {
		paint := rest
		if i == 0 {
			paint = top
		}
		fmt.Fprintf(tw, "%s\t%6.2f%%\t%d\n", paint.Sprint(score.Language), score.Percentage, score.Hits)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d tokens, %d hits\n", result.TokenCount, result.TotalHits())
	return err
}

func envOrDefault(name, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(name)); value != "" {
		return value
	}
	return fallback
}
