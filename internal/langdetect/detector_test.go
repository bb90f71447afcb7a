package langdetect

import (
	"math"
	"testing"

	"horse.fit/langid/internal/corpus"
	"horse.fit/langid/internal/language"
)

func newTestDetector(corpora map[string]string) *Detector {
	models := make([]*corpus.LanguageModel, 0, len(corpora))
	for code, text := range corpora {
		models = append(models, corpus.NewLanguageModel(code, language.Default.Tokens(text)))
	}
	return New(corpus.NewModelSet(models...), language.Default)
}

func TestDetectSplitsSharedVote(t *testing.T) {
	t.Parallel()

	detector := newTestDetector(map[string]string{
		"french":  "le chat",
		"english": "the cat sat",
	})

	result := detector.Detect("the chat")
	if len(result.Scores) != 2 {
		t.Fatalf("expected two languages, got %#v", result.Scores)
	}
	if result.Scores[0].Language != "english" || result.Scores[1].Language != "french" {
		t.Fatalf("unexpected tie-break order: %#v", result.Scores)
	}
	for _, score := range result.Scores {
		if score.Hits != 1 || score.Percentage != 50.0 {
			t.Fatalf("unexpected score: %#v", score)
		}
	}
	if result.TokenCount != 2 {
		t.Fatalf("unexpected token count: %d", result.TokenCount)
	}
}

func TestDetectRanksByPercentage(t *testing.T) {
	t.Parallel()

	detector := newTestDetector(map[string]string{
		"en": "the cat sat on the mat",
		"fr": "le chat est sur le tapis",
		"de": "die katze",
	})

	result := detector.Detect("The cat sat on le tapis, the end.")
	top, ok := result.Top()
	if !ok || top.Language != "en" {
		t.Fatalf("expected en on top, got %#v", result.Scores)
	}
	if top.Hits != 5 {
		t.Fatalf("expected every english token occurrence to count, got %d", top.Hits)
	}
	for _, score := range result.Scores {
		if score.Language == "de" {
			t.Fatalf("zero-hit language must be omitted: %#v", result.Scores)
		}
	}
	assertSumsToHundred(t, result)
}

func TestDetectIgnoresCorpusFrequency(t *testing.T) {
	t.Parallel()

	detector := newTestDetector(map[string]string{
		"a": "word word word word word word",
		"b": "word",
	})

	result := detector.Detect("word")
	if len(result.Scores) != 2 || result.Scores[0].Percentage != result.Scores[1].Percentage {
		t.Fatalf("expected presence-only scoring, got %#v", result.Scores)
	}
}

func TestDetectEmptyCases(t *testing.T) {
	t.Parallel()

	detector := newTestDetector(map[string]string{"en": "hello world"})
	for _, text := range []string{"", "   ", "!!! ... ???", "unknown zzz qqq"} {
		result := detector.Detect(text)
		if !result.Empty() {
			t.Fatalf("expected empty result for %q, got %#v", text, result.Scores)
		}
		if result.Scores == nil {
			t.Fatalf("expected non-nil empty scores for %q", text)
		}
	}
}

func TestDetectWithEmptyModelSet(t *testing.T) {
	t.Parallel()

	for _, detector := range []*Detector{
		New(corpus.NewModelSet(), language.Default),
		New(nil, language.Default),
	} {
		if result := detector.Detect("hello world"); !result.Empty() {
			t.Fatalf("expected empty result, got %#v", result.Scores)
		}
	}
}

func TestDetectArabicThroughLatinPunctuation(t *testing.T) {
	t.Parallel()

	detector := newTestDetector(map[string]string{
		"arabic":  "مرحبا بالعالم كيف حالك",
		"english": "hello world",
	})

	result := detector.Detect("(مرحبا)!! -- بالعالم... hello?")
	if len(result.Scores) != 2 {
		t.Fatalf("unexpected scores: %#v", result.Scores)
	}
	top := result.Scores[0]
	if top.Language != "arabic" || top.Hits != 2 {
		t.Fatalf("expected arabic with two hits on top, got %#v", result.Scores)
	}
	assertSumsToHundred(t, result)
}

func TestDetectPercentagesAlwaysSumToHundred(t *testing.T) {
	t.Parallel()

	detector := newTestDetector(map[string]string{
		"en": "a the of and to in is it you that",
		"fr": "a le la de et un une est que il",
		"es": "a el la de y en un es que lo",
		"it": "a il la di e in un è che lo",
	})

	inputs := []string{
		"a",
		"la de que",
		"the la el il",
		"a a a a le el il the of",
		"que est es è is",
		"in un lo it",
	}
	for _, input := range inputs {
		result := detector.Detect(input)
		if result.Empty() {
			t.Fatalf("expected hits for %q", input)
		}
		assertSumsToHundred(t, result)
		for i := 1; i < len(result.Scores); i++ {
			prev, cur := result.Scores[i-1], result.Scores[i]
			if prev.Percentage < cur.Percentage {
				t.Fatalf("scores not descending for %q: %#v", input, result.Scores)
			}
			if prev.Percentage == cur.Percentage && prev.Language > cur.Language {
				t.Fatalf("tie not broken by language code for %q: %#v", input, result.Scores)
			}
		}
	}
}

func TestDetectIsDeterministic(t *testing.T) {
	t.Parallel()

	detector := newTestDetector(map[string]string{
		"zz": "shared",
		"aa": "shared",
		"mm": "shared",
	})

	for range 20 {
		result := detector.Detect("shared")
		if len(result.Scores) != 3 || result.Scores[0].Language != "aa" || result.Scores[2].Language != "zz" {
			t.Fatalf("unexpected order: %#v", result.Scores)
		}
	}
}

func TestGuessMatches(t *testing.T) {
	t.Parallel()

	guess := Guess{Name: "french", ISO6391: "fr", ISO6393: "fra"}
	for _, code := range []string{"fr", "FR", "fra", "french", "fr-CA", "fr_be"} {
		if !guess.Matches(code) {
			t.Fatalf("expected %q to match %#v", code, guess)
		}
	}
	for _, code := range []string{"", "en", "francais"} {
		if guess.Matches(code) {
			t.Fatalf("did not expect %q to match", code)
		}
	}
}

func assertSumsToHundred(t *testing.T, result Result) {
	t.Helper()

	sum := 0.0
	for _, score := range result.Scores {
		sum += score.Percentage
	}
	if math.Abs(sum-100.0) > 1e-9 {
		t.Fatalf("percentages sum to %v, want 100: %#v", sum, result.Scores)
	}
}
