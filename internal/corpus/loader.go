package corpus

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"horse.fit/langid/internal/language"
	"horse.fit/langid/internal/reader"
)

const (
	// FilePrefix marks corpus files: corpus-<code>.<ext>.
	FilePrefix = "corpus-"

	DefaultWorkers = 4
)

// ErrInvalidUTF8 is recorded for corpus files that are not valid UTF-8.
var ErrInvalidUTF8 = errors.New("corpus is not valid UTF-8")

// Options controls corpus loading.
type Options struct {
	Normalizer language.Normalizer
	Workers    int
	Logger     zerolog.Logger
}

// SkippedFile is a recognized corpus file that could not be used.
type SkippedFile struct {
	Path string
	Code string
	Err  error
}

// Report summarizes one Load call.
type Report struct {
	Dir        string
	Recognized int
	Loaded     int
	Skipped    []SkippedFile
	Overridden []string
}

// File is a recognized corpus file.
type File struct {
	Path string
	Code string
}

type parsedCorpus struct {
	model *LanguageModel
	err   error
}

// LanguageCode extracts <code> from a file named corpus-<code>.<ext>.
// It returns false for any other name.
func LanguageCode(name string) (string, bool) {
	if strings.HasPrefix(name, ".") || !strings.HasPrefix(name, FilePrefix) {
		return "", false
	}
	ext := filepath.Ext(name)
	if ext == "" || ext == "." {
		return "", false
	}
	code := strings.TrimSuffix(strings.TrimPrefix(name, FilePrefix), ext)
	if strings.TrimSpace(code) == "" {
		return "", false
	}
	return code, true
}

// Load builds a ModelSet from the corpus files in dir. A missing directory or
// one without corpus files yields an empty set. Unreadable files are skipped
// with a warning; only context cancellation returns an error.
func Load(ctx context.Context, dir string, opts Options) (*ModelSet, *Report, error) {
	logger := opts.Logger
	report := &Report{Dir: dir}

	files, err := Discover(dir)
	if err != nil {
		logger.Warn().Err(err).Str("dir", dir).Msg("corpus directory unavailable")
		return NewModelSet(), report, nil
	}
	report.Recognized = len(files)
	if len(files) == 0 {
		logger.Warn().Str("dir", dir).Msg("no corpus files found")
		return NewModelSet(), report, nil
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	parsed := make([]parsedCorpus, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			text, err := ReadText(file)
			if err != nil {
				parsed[i] = parsedCorpus{err: err}
				return nil
			}
			parsed[i] = parsedCorpus{model: NewLanguageModel(file.Code, opts.Normalizer.Tokens(text))}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, report, fmt.Errorf("load corpora from %s: %w", dir, err)
	}

	byCode := make(map[string]*LanguageModel, len(files))
	for i, file := range files {
		result := parsed[i]
		if result.err != nil {
			report.Skipped = append(report.Skipped, SkippedFile{Path: file.Path, Code: file.Code, Err: result.err})
			logger.Warn().Err(result.err).Str("path", file.Path).Str("language", file.Code).Msg("skipping corpus file")
			continue
		}
		if _, exists := byCode[file.Code]; exists {
			report.Overridden = append(report.Overridden, file.Code)
			logger.Warn().Str("path", file.Path).Str("language", file.Code).Msg("corpus replaces earlier file for the same language")
		}
		byCode[file.Code] = result.model
		logger.Debug().
			Str("path", file.Path).
			Str("language", file.Code).
			Int("vocabulary", result.model.Vocabulary()).
			Int("total_words", result.model.TotalWords()).
			Msg("corpus loaded")
	}

	models := make([]*LanguageModel, 0, len(byCode))
	for _, model := range byCode {
		models = append(models, model)
	}
	set := NewModelSet(models...)
	report.Loaded = set.Len()

	logger.Info().
		Str("dir", dir).
		Int("recognized", report.Recognized).
		Int("languages", set.Len()).
		Int("skipped", len(report.Skipped)).
		Strs("codes", set.Codes()).
		Msg("corpora loaded")

	return set, report, nil
}

// Discover lists the corpus files in dir ordered by file name.
func Discover(dir string) ([]File, error) {
	cleanDir := strings.TrimSpace(dir)
	if cleanDir == "" {
		return nil, fmt.Errorf("corpus directory is empty")
	}

	entries, err := os.ReadDir(cleanDir)
	if err != nil {
		return nil, fmt.Errorf("read corpus directory: %w", err)
	}

	files := make([]File, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		code, ok := LanguageCode(entry.Name())
		if !ok {
			continue
		}
		files = append(files, File{
			Path: filepath.Join(cleanDir, entry.Name()),
			Code: code,
		})
	}
	return files, nil
}

// ReadText returns the decoded text of a corpus file, with readable text
// extracted from HTML corpora.
func ReadText(file File) (string, error) {
	raw, err := os.ReadFile(file.Path)
	if err != nil {
		return "", fmt.Errorf("read corpus: %w", err)
	}

	text, err := decodeUTF8(raw)
	if err != nil {
		return "", err
	}

	if reader.IsHTMLPath(file.Path) {
		text, err = reader.ExtractHTML([]byte(text), file.Path)
		if err != nil {
			return "", fmt.Errorf("extract html corpus: %w", err)
		}
	}
	return text, nil
}

func decodeUTF8(raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		return "", ErrInvalidUTF8
	}
	decoded, _, err := transform.Bytes(unicode.UTF8BOM.NewDecoder(), raw)
	if err != nil {
		return "", fmt.Errorf("decode corpus: %w", err)
	}
	return string(decoded), nil
}
