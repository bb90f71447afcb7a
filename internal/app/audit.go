package app

import (
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
)

const (
	auditOK       = "ok"
	auditMismatch = "mismatch"
	auditUnknown  = "unknown"
	auditFailed   = "unreadable"
)

type auditRow struct {
	Path   string
	Code   string
	Guess  langdetect.Guess
	Status string
	Err    error
}

func runAudit(args []string) int {
	fs := flag.NewFlagSet("audit", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	dir := fs.String("dir", envOrDefault("CORPUS_DIR", "corpora"), "Directory containing corpus-<code>.<ext> files")
	sampleWords := fs.Int("sample-words", 200, "Number of leading words per corpus sent to lingua")
	strict := fs.Bool("strict", false, "Exit with status 1 when any corpus mismatches")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *sampleWords < 1 {
		fmt.Fprintln(os.Stderr, "--sample-words must be >= 1")
		return 2
	}

	files, err := corpus.Discover(strings.TrimSpace(*dir))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Audit setup failed: %v\n", err)
		return 1
	}
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "Audit failed: no corpus files found under %s\n", strings.TrimSpace(*dir))
		return 1
	}

	rows := make([]auditRow, 0, len(files))
	for _, file := range files {
		rows = append(rows, auditFile(file, *sampleWords, langdetect.GuessLanguage))
	}

	if err := writeAudit(os.Stdout, rows, !color.NoColor); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to print audit: %v\n", err)
		return 1
	}

	if *strict {
		for _, row := range rows {
			if row.Status != auditOK {
				return 1
			}
		}
	}
	return 0
}

func auditFile(file corpus.File, sampleWords int, guess func(string) (langdetect.Guess, bool)) auditRow {
	row := auditRow{Path: file.Path, Code: file.Code}

	text, err := corpus.ReadText(file)
	if err != nil {
		row.Status = auditFailed
		row.Err = err
		return row
	}

	detected, ok := guess(auditSample(text, sampleWords))
	if !ok {
		row.Status = auditUnknown
		return row
	}
	row.Guess = detected
	if detected.Matches(file.Code) {
		row.Status = auditOK
	} else {
		row.Status = auditMismatch
	}
	return row
}

// auditSample keeps the first n whitespace-separated words of text.
func auditSample(text string, n int) string {
	words := strings.Fields(text)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}

func writeAudit(w io.Writer, rows []auditRow, useColor bool) error {
	good := color.New(color.FgGreen)
	bad := color.New(color.FgRed, color.Bold)
	warn := color.New(color.FgYellow)
	for _, c := range []*color.Color{good, bad, warn} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tCODE\tGUESS\tCONFIDENCE\tSTATUS")
	for _, row := range rows {
		status := row.Status
		switch row.Status {
		case auditOK:
			status = good.Sprint(status)
		case auditMismatch, auditFailed:
			status = bad.Sprint(status)
		default:
			status = warn.Sprint(status)
		}

		guess := "-"
		confidence := "-"
		if row.Guess.Name != "" {
			guess = row.Guess.Name
			if row.Guess.ISO6391 != "" {
				guess = fmt.Sprintf("%s (%s)", row.Guess.Name, row.Guess.ISO6391)
			}
			confidence = fmt.Sprintf("%.2f", row.Guess.Confidence)
		}
		if row.Err != nil {
			guess = row.Err.Error()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", row.Path, row.Code, guess, confidence, status)
	}
	return tw.Flush()
}
