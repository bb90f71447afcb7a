package httpapi

import (
	"context"
	"errors"
	"io"

	"github.com/labstack/echo/v4"

	"horse.fit/langid/internal/db"
	"horse.fit/langid/internal/globaltime"
	"horse.fit/langid/internal/langdetect"
	payloadschema "horse.fit/langid/schema"
)

func (s *Server) handleDetect(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return he
		}
		return failValidation(c, map[string]string{"body": "could not be read"})
	}

	req, err := payloadschema.ValidateDetectRequest(body)
	if err != nil {
		var fieldErr *payloadschema.FieldError
		if errors.As(err, &fieldErr) {
			return failValidation(c, map[string]string{fieldErr.Field: fieldErr.Message})
		}
		s.logger.Error().Err(err).Msg("detect request validation failed")
		return internalError(c, "Failed to validate request")
	}

	started := globaltime.Now()
	result := s.detector.Detect(req.Text)
	latency := globaltime.Since(started)

	detectionTokens.Observe(float64(result.TokenCount))
	outcome := "matched"
	if result.Empty() {
		outcome = "empty"
	}
	detectionsTotal.WithLabelValues(outcome).Inc()

	requestID := c.Response().Header().Get(echo.HeaderXRequestID)
	event := detectionEvent(requestID, len(req.Text), result, latency.Microseconds())
	s.recordDetection(c.Request().Context(), event)

	logEvent := s.logger.Debug().
		Str("request_id", requestID).
		Int("tokens", result.TokenCount).
		Int("languages", len(result.Scores)).
		Dur("latency", latency)
	if top, ok := result.Top(); ok {
		logEvent = logEvent.Str("top_language", top.Language).Float64("top_percentage", top.Percentage)
	}
	logEvent.Msg("detection processed")

	return success(c, result)
}

func (s *Server) recordDetection(ctx context.Context, event *db.DetectionEvent) {
	if s.ledger == nil {
		return
	}
	if err := s.ledger.RecordDetection(ctx, event); err != nil {
		ledgerFailuresTotal.Inc()
		s.logger.Warn().Err(err).Str("request_id", event.RequestID).Msg("record detection failed")
	}
}

func detectionEvent(requestID string, textBytes int, result langdetect.Result, latencyMicros int64) *db.DetectionEvent {
	event := &db.DetectionEvent{
		RequestID:     requestID,
		LanguageCount: len(result.Scores),
		TokenCount:    result.TokenCount,
		TotalHits:     result.TotalHits(),
		TextBytes:     textBytes,
		LatencyMicros: latencyMicros,
		CreatedAt:     globaltime.UTC(),
	}
	if top, ok := result.Top(); ok {
		language := top.Language
		event.TopLanguage = &language
	}
	return event
}
