package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"horse.fit/langid/internal/auth"
	"horse.fit/langid/internal/corpus"
	"horse.fit/langid/internal/db"
	"horse.fit/langid/internal/globaltime"
	"horse.fit/langid/internal/langdetect"
	"horse.fit/langid/internal/language"
)

const (
	defaultStatsLimit = 20
	maxStatsLimit     = 200
)

// Detector is the read-only detection core the server delegates to.
type Detector interface {
	Detect(text string) langdetect.Result
	Models() *corpus.ModelSet
}

// Ledger records processed detections. It is optional.
type Ledger interface {
	RecordDetection(ctx context.Context, event *db.DetectionEvent) error
	QueryLedgerStats(ctx context.Context, limit int) (*db.LedgerStats, error)
}

type Options struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	BodyLimit       string
	AllowOrigins    []string
}

type Server struct {
	detector Detector
	keys     *auth.KeySet
	ledger   Ledger
	logger   zerolog.Logger
	opts     Options
}

type languageSummary struct {
	Language   string `json:"language"`
	Label      string `json:"label,omitempty"`
	Vocabulary int    `json:"vocabulary"`
	TotalWords int    `json:"total_words"`
}

func NewServer(detector Detector, keys *auth.KeySet, ledger Ledger, logger zerolog.Logger, opts Options) *Server {
	host := strings.TrimSpace(opts.Host)
	if host == "" {
		host = "0.0.0.0"
	}
	port := opts.Port
	if port <= 0 {
		port = 5000
	}
	readTimeout := opts.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = 10 * time.Second
	}
	writeTimeout := opts.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 30 * time.Second
	}
	shutdownTimeout := opts.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	bodyLimit := strings.TrimSpace(opts.BodyLimit)
	if bodyLimit == "" {
		bodyLimit = "1M"
	}
	allowOrigins := opts.AllowOrigins
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"*"}
	}

	if detector != nil {
		loadedLanguages.Set(float64(detector.Models().Len()))
	}

	return &Server{
		detector: detector,
		keys:     keys,
		ledger:   ledger,
		logger:   logger,
		opts: Options{
			Host:            host,
			Port:            port,
			ReadTimeout:     readTimeout,
			WriteTimeout:    writeTimeout,
			ShutdownTimeout: shutdownTimeout,
			BodyLimit:       bodyLimit,
			AllowOrigins:    allowOrigins,
		},
	}
}

func (s *Server) Start(ctx context.Context) error {
	if s == nil || s.detector == nil {
		return fmt.Errorf("server is not initialized")
	}

	e := s.routes()

	addr := fmt.Sprintf("%s:%d", s.opts.Host, s.opts.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      e,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()
		if shutdownErr := e.Shutdown(shutdownCtx); shutdownErr != nil {
			s.logger.Error().Err(shutdownErr).Msg("server shutdown failed")
		}
	}()

	s.logger.Info().
		Str("addr", addr).
		Int("languages", s.detector.Models().Len()).
		Bool("ledger", s.ledger != nil).
		Msg("langid server started")

	if err := e.StartServer(httpServer); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("start server: %w", err)
	}
	s.logger.Info().Msg("langid server stopped")
	return nil
}

func (s *Server) routes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.httpErrorHandler

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			s.logger.Error().
				Err(err).
				Str("uri", c.Request().RequestURI).
				Bytes("stack", stack).
				Msg("request panicked")
			return err
		},
	}))
	e.Use(middleware.RequestID())
	e.Use(middleware.BodyLimit(s.opts.BodyLimit))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: s.opts.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-Key"},
		MaxAge:       3600,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogRoutePath: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			route := v.RoutePath
			if route == "" {
				route = "unmatched"
			}
			httpRequestsTotal.WithLabelValues(v.Method, route, strconv.Itoa(v.Status)).Inc()
			httpRequestDuration.WithLabelValues(v.Method, route).Observe(v.Latency.Seconds())

			if v.Error != nil {
				s.logger.Error().
					Err(v.Error).
					Str("method", v.Method).
					Str("uri", v.URI).
					Int("status", v.Status).
					Dur("latency", v.Latency).
					Str("remote_ip", v.RemoteIP).
					Str("request_id", v.RequestID).
					Msg("http request failed")
				return nil
			}

			s.logger.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Str("request_id", v.RequestID).
				Msg("http request")
			return nil
		},
	}))

	e.GET("/health", s.handleLiveness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")
	api.GET("/health", s.handleHealth)

	protected := api.Group("", s.requireAPIKey())
	protected.POST("/detect", s.handleDetect)
	protected.GET("/languages", s.handleLanguages)
	protected.GET("/stats", s.handleStats)

	return e
}

func (s *Server) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "Internal server error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		switch v := he.Message.(type) {
		case string:
			if strings.TrimSpace(v) != "" {
				message = v
			}
		default:
			if text := strings.TrimSpace(http.StatusText(status)); text != "" {
				message = text
			}
		}
	}

	isAPI := strings.HasPrefix(c.Request().URL.Path, "/api/")
	if isAPI {
		if status >= 500 {
			_ = internalError(c, "Internal server error")
			return
		}
		_ = fail(c, status, message, nil)
		return
	}

	_ = c.String(status, message)
}

func (s *Server) handleLiveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleHealth(c echo.Context) error {
	return success(c, map[string]any{
		"service":   "langid",
		"time":      globaltime.UTC(),
		"languages": s.detector.Models().Len(),
		"ledger":    s.ledger != nil,
	})
}

func (s *Server) handleLanguages(c echo.Context) error {
	models := s.detector.Models().Models()
	items := make([]languageSummary, 0, len(models))
	for _, model := range models {
		items = append(items, languageSummary{
			Language:   model.Code(),
			Label:      language.Label(model.Code()),
			Vocabulary: model.Vocabulary(),
			TotalWords: model.TotalWords(),
		})
	}
	return success(c, map[string]any{
		"items": items,
	})
}

func (s *Server) handleStats(c echo.Context) error {
	if s.ledger == nil {
		return failNotFound(c, "Detection ledger is disabled")
	}

	limit, err := parsePositiveInt(c.QueryParam("limit"), defaultStatsLimit, 1, maxStatsLimit)
	if err != nil {
		return failValidation(c, map[string]string{"limit": err.Error()})
	}

	stats, err := s.ledger.QueryLedgerStats(c.Request().Context(), limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("query ledger stats failed")
		return internalError(c, "Failed to load stats")
	}
	return success(c, stats)
}

func parsePositiveInt(raw string, defaultValue, minValue, maxValue int) (int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("must be an integer")
	}
	if value < minValue || value > maxValue {
		return 0, fmt.Errorf("must be between %d and %d", minValue, maxValue)
	}
	return value, nil
}
