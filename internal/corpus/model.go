package corpus

import (
	"sort"
)

// LanguageModel is the word-frequency table built from one corpus file.
// It is never mutated after construction.
type LanguageModel struct {
	code       string
	counts     map[string]int
	totalWords int
}

// NewLanguageModel counts tokens into a model for code.
func NewLanguageModel(code string, tokens []string) *LanguageModel {
	counts := make(map[string]int, len(tokens)/4+1)
	for _, token := range tokens {
		if token == "" {
			continue
		}
		counts[token]++
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	return &LanguageModel{
		code:       code,
		counts:     counts,
		totalWords: total,
	}
}

func (m *LanguageModel) Code() string {
	if m == nil {
		return ""
	}
	return m.code
}

// Has reports whether word occurs at least once in the corpus.
func (m *LanguageModel) Has(word string) bool {
	if m == nil {
		return false
	}
	_, ok := m.counts[word]
	return ok
}

// Count returns the number of occurrences of word, zero when absent.
func (m *LanguageModel) Count(word string) int {
	if m == nil {
		return 0
	}
	return m.counts[word]
}

// Vocabulary is the number of distinct words.
func (m *LanguageModel) Vocabulary() int {
	if m == nil {
		return 0
	}
	return len(m.counts)
}

// TotalWords is the sum of all word counts.
func (m *LanguageModel) TotalWords() int {
	if m == nil {
		return 0
	}
	return m.totalWords
}

// ModelSet maps language codes to models. It is built once and shared
// read-only by every detection call, so it needs no locking.
type ModelSet struct {
	models map[string]*LanguageModel
	codes  []string
}

// NewModelSet builds a set from models. A later model replaces an earlier one
// with the same code.
func NewModelSet(models ...*LanguageModel) *ModelSet {
	byCode := make(map[string]*LanguageModel, len(models))
	for _, model := range models {
		if model == nil {
			continue
		}
		byCode[model.code] = model
	}

	codes := make([]string, 0, len(byCode))
	for code := range byCode {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	return &ModelSet{
		models: byCode,
		codes:  codes,
	}
}

func (s *ModelSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.codes)
}

func (s *ModelSet) Empty() bool {
	return s.Len() == 0
}

// Codes returns the language codes in ascending order.
func (s *ModelSet) Codes() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.codes...)
}

// Model returns the model for code.
func (s *ModelSet) Model(code string) (*LanguageModel, bool) {
	if s == nil {
		return nil, false
	}
	model, ok := s.models[code]
	return model, ok
}

// Models returns every model ordered by language code.
func (s *ModelSet) Models() []*LanguageModel {
	if s == nil {
		return nil
	}
	out := make([]*LanguageModel, 0, len(s.codes))
	for _, code := range s.codes {
		out = append(out, s.models[code])
	}
	return out
}
