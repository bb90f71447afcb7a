package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"horse.fit/langid/internal/corpus"
	"horse.fit/langid/internal/langdetect"
	"horse.fit/langid/internal/language"
)

func TestRunUnknownCommand(t *testing.T) {
	if code := Run([]string{"translate"}); code != 2 {
		t.Fatalf("unexpected exit code: got %d want 2", code)
	}
	if code := Run(nil); code != 2 {
		t.Fatalf("unexpected exit code without args: got %d want 2", code)
	}
	if code := Run([]string{"help"}); code != 0 {
		t.Fatalf("unexpected exit code for help: got %d want 0", code)
	}
}

func TestLoadModelsEmptySetPolicy(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	models, err := loadModels(context.Background(), dir, 2, false, language.Default, zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !models.Empty() {
		t.Fatalf("expected empty model set, got %v", models.Codes())
	}

	if _, err := loadModels(context.Background(), dir, 2, true, language.Default, zerolog.Nop()); err == nil {
		t.Fatalf("expected error when corpora are required")
	}
}

func TestLoadModelsLoadsCorpora(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "corpus-en.txt"), []byte("the cat sat"), 0o644); err != nil {
		t.Fatalf("write corpus: %v", err)
	}

	models, err := loadModels(context.Background(), dir, 2, true, language.Default, zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := models.Codes(); len(got) != 1 || got[0] != "en" {
		t.Fatalf("unexpected codes: got %v want [en]", got)
	}
}

func TestWriteRanking(t *testing.T) {
	t.Parallel()

	result := langdetect.Result{
		Scores: []langdetect.Score{
			{Language: "fr", Percentage: 75, Hits: 3},
			{Language: "en", Percentage: 25, Hits: 1},
		},
		TokenCount: 4,
	}

	var buf bytes.Buffer
	if err := writeRanking(&buf, result, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	frAt := strings.Index(out, "fr")
	enAt := strings.Index(out, "en ")
	if frAt < 0 || enAt < 0 || frAt > enAt {
		t.Fatalf("unexpected ranking order:\n%s", out)
	}
	if !strings.Contains(out, "75.00%") {
		t.Fatalf("expected percentage in output:\n%s", out)
	}
	if !strings.Contains(out, "4 tokens, 4 hits") {
		t.Fatalf("expected summary line in output:\n%s", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no ANSI codes when color is disabled:\n%s", out)
	}
}

func TestWriteRankingEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := writeRanking(&buf, langdetect.Result{Scores: []langdetect.Score{}, TokenCount: 2}, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := buf.String(), "no language matched (2 tokens)\n"; got != want {
		t.Fatalf("unexpected output: got %q want %q", got, want)
	}
}

func TestAuditSample(t *testing.T) {
	t.Parallel()

	if got, want := auditSample("one  two\nthree four", 3), "one two three"; got != want {
		t.Fatalf("unexpected sample: got %q want %q", got, want)
	}
	if got, want := auditSample("short", 10), "short"; got != want {
		t.Fatalf("unexpected sample: got %q want %q", got, want)
	}
}

func TestAuditFileStatuses(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "corpus-en.txt")
	if err := os.WriteFile(path, []byte("the quick brown fox jumps over the lazy dog"), 0o644); err != nil {
		t.Fatalf("write corpus: %v", err)
	}
	file := corpus.File{Path: path, Code: "en"}

	guessCalls := 0
	english := func(sample string) (langdetect.Guess, bool) {
		guessCalls++
		if got := len(strings.Fields(sample)); got != 4 {
			t.Errorf("unexpected sample size: got %d want 4", got)
		}
		return langdetect.Guess{Name: "english", ISO6391: "en", ISO6393: "eng", Confidence: 0.9}, true
	}
	french := func(string) (langdetect.Guess, bool) {
		return langdetect.Guess{Name: "french", ISO6391: "fr", ISO6393: "fra"}, true
	}
	undecided := func(string) (langdetect.Guess, bool) {
		return langdetect.Guess{}, false
	}

	if row := auditFile(file, 4, english); row.Status != auditOK {
		t.Fatalf("unexpected status: got %q want %q", row.Status, auditOK)
	}
	if guessCalls != 1 {
		t.Fatalf("unexpected guess calls: got %d want 1", guessCalls)
	}
	if row := auditFile(file, 4, french); row.Status != auditMismatch {
		t.Fatalf("unexpected status: got %q want %q", row.Status, auditMismatch)
	}
	if row := auditFile(file, 4, undecided); row.Status != auditUnknown {
		t.Fatalf("unexpected status: got %q want %q", row.Status, auditUnknown)
	}

	bad := filepath.Join(dir, "corpus-xx.txt")
	if err := os.WriteFile(bad, []byte{0xff, 0xfe, 0xfd}, 0o644); err != nil {
		t.Fatalf("write corpus: %v", err)
	}
	row := auditFile(corpus.File{Path: bad, Code: "xx"}, 4, english)
	if row.Status != auditFailed {
		t.Fatalf("unexpected status: got %q want %q", row.Status, auditFailed)
	}
	if !errors.Is(row.Err, corpus.ErrInvalidUTF8) {
		t.Fatalf("unexpected error: got %v want %v", row.Err, corpus.ErrInvalidUTF8)
	}
}

func TestWriteAuditPlain(t *testing.T) {
	t.Parallel()

	rows := []auditRow{
		{Path: "corpora/corpus-en.txt", Code: "en", Guess: langdetect.Guess{Name: "english", ISO6391: "en", Confidence: 0.5}, Status: auditOK},
		{Path: "corpora/corpus-xx.txt", Code: "xx", Status: auditUnknown},
	}

	var buf bytes.Buffer
	if err := writeAudit(&buf, rows, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"english (en)", "0.50", auditOK, auditUnknown} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}
