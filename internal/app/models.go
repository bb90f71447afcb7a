package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"horse.fit/langid/internal/corpus"
	"horse.fit/langid/internal/language"
)

// loadModels runs the corpus loader and applies the empty-set policy:
// an empty ModelSet is only fatal when requireCorpora is set.
func loadModels(ctx context.Context, dir string, workers int, requireCorpora bool, normalizer language.Normalizer, logger zerolog.Logger) (*corpus.ModelSet, error) {
	models, report, err := corpus.Load(ctx, dir, corpus.Options{
		Normalizer: normalizer,
		Workers:    workers,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}

	if models.Empty() {
		if requireCorpora {
			return nil, fmt.Errorf("no corpora loaded from %s (%d recognized, %d skipped)", dir, report.Recognized, len(report.Skipped))
		}
		logger.Warn().
			Str("dir", dir).
			Int("recognized", report.Recognized).
			Int("skipped", len(report.Skipped)).
			Msg("no corpora loaded; every detection will return an empty result")
	}
	return models, nil
}
