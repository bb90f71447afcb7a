package langdetect

import (
	"strings"
	"sync"
	"unicode"

	lingua "github.com/pemistahl/lingua-go"
)

// Guess is lingua's opinion about a corpus sample. It is only used to audit
// corpora offline; detection never consults it.
type Guess struct {
	Name       string
	ISO6391    string
	ISO6393    string
	Confidence float64
}

// Matches reports whether code names the guessed language by English name or
// ISO 639-1/639-3 code.
func (g Guess) Matches(code string) bool {
	normalized := strings.ToLower(strings.TrimSpace(code))
	if normalized == "" {
		return false
	}
	if dash := strings.IndexAny(normalized, "-_"); dash > 0 {
		normalized = normalized[:dash]
	}
	return normalized == g.Name || normalized == g.ISO6391 || normalized == g.ISO6393
}

var (
	auditorOnce sync.Once
	auditor     lingua.LanguageDetector
)

// GuessLanguage asks lingua for the most likely language of sample. It
// returns false for samples with fewer than six letters or when lingua cannot
// decide.
func GuessLanguage(sample string) (Guess, bool) {
	sample = strings.TrimSpace(sample)
	if sample == "" {
		return Guess{}, false
	}

	letterCount := 0
	for _, r := range sample {
		if unicode.IsLetter(r) {
			letterCount++
		}
	}
	if letterCount < 6 {
		return Guess{}, false
	}

	detector := getAuditor()
	detected, exists := detector.DetectLanguageOf(sample)
	if !exists {
		return Guess{}, false
	}

	return Guess{
		Name:       strings.ToLower(detected.String()),
		ISO6391:    strings.ToLower(detected.IsoCode639_1().String()),
		ISO6393:    strings.ToLower(detected.IsoCode639_3().String()),
		Confidence: detector.ComputeLanguageConfidence(sample, detected),
	}, true
}

func getAuditor() lingua.LanguageDetector {
	auditorOnce.Do(func() {
		auditor = lingua.NewLanguageDetectorBuilder().
			FromAllLanguages().
			Build()
	})
	return auditor
}
