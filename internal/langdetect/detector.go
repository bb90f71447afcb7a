package langdetect

import (
	"cmp"
	"slices"

	"horse.fit/langid/internal/corpus"
	"horse.fit/langid/internal/language"
)

// Score is one language's share of the word-overlap vote.
type Score struct {
	Language   string  `json:"language"`
	Percentage float64 `json:"percentage"`
	Hits       int     `json:"hits"`
}

// Result is ordered by descending percentage, ties by ascending language
// code. Languages without hits are omitted.
type Result struct {
	Scores     []Score `json:"results"`
	TokenCount int     `json:"token_count"`
}

func (r Result) Empty() bool {
	return len(r.Scores) == 0
}

// Top returns the highest-ranked language, if any.
func (r Result) Top() (Score, bool) {
	if r.Empty() {
		return Score{}, false
	}
	return r.Scores[0], true
}

// TotalHits sums hits over the returned languages.
func (r Result) TotalHits() int {
	total := 0
	for _, score := range r.Scores {
		total += score.Hits
	}
	return total
}

// Detector scores text against a fixed ModelSet. It holds no mutable state
// and is safe for concurrent use.
type Detector struct {
	models     *corpus.ModelSet
	normalizer language.Normalizer
}

// New returns a Detector over models. normalizer must be the one the models
// were loaded with.
func New(models *corpus.ModelSet, normalizer language.Normalizer) *Detector {
	if models == nil {
		models = corpus.NewModelSet()
	}
	return &Detector{
		models:     models,
		normalizer: normalizer,
	}
}

func (d *Detector) Models() *corpus.ModelSet {
	return d.models
}

// Detect counts, per language, the input tokens present in that language's
// corpus and converts the counts into percentages of the total hits.
func (d *Detector) Detect(text string) Result {
	tokens := d.normalizer.Tokens(text)
	result := Result{TokenCount: len(tokens), Scores: []Score{}}
	if len(tokens) == 0 || d.models.Empty() {
		return result
	}

	models := d.models.Models()
	hits := make([]int, len(models))
	for _, token := range tokens {
		for i, model := range models {
			if model.Has(token) {
				hits[i]++
			}
		}
	}

	total := 0
	for _, n := range hits {
		total += n
	}
	if total == 0 {
		return result
	}

	for i, model := range models {
		if hits[i] == 0 {
			continue
		}
		result.Scores = append(result.Scores, Score{
			Language:   model.Code(),
			Percentage: float64(hits[i]) / float64(total) * 100,
			Hits:       hits[i],
		})
	}

	slices.SortStableFunc(result.Scores, func(a, b Score) int {
		if c := cmp.Compare(b.Percentage, a.Percentage); c != 0 {
			return c
		}
		return cmp.Compare(a.Language, b.Language)
	})
	return result
}
