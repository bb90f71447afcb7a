package db

import (
	"context"
	"fmt"
	"time"
)

// LanguageDetections counts detections whose top language was Language.
type LanguageDetections struct {
	Language   string `json:"language" gorm:"column:top_language"`
	Detections int64  `json:"detections" gorm:"column:detections"`
}

// LedgerStats is the read model behind GET /api/v1/stats.
type LedgerStats struct {
	Detections     int64                `json:"detections"`
	EmptyResults   int64                `json:"empty_results"`
	LastDetectedAt *time.Time           `json:"last_detected_at,omitempty"`
	TopLanguages   []LanguageDetections `json:"top_languages"`
}

// RecordDetection inserts one ledger row.
func (p *Pool) RecordDetection(ctx context.Context, event *DetectionEvent) error {
	if p == nil || p.gdb == nil {
		return fmt.Errorf("database pool is not initialized")
	}
	if event == nil {
		return fmt.Errorf("detection event is nil")
	}
	if err := p.gdb.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("insert detection event: %w", err)
	}
	return nil
}

// QueryLedgerStats aggregates the ledger. limit caps TopLanguages.
func (p *Pool) QueryLedgerStats(ctx context.Context, limit int) (*LedgerStats, error) {
	if p == nil || p.gdb == nil {
		return nil, fmt.Errorf("database pool is not initialized")
	}
	if limit <= 0 {
		limit = 20
	}

	stats := &LedgerStats{TopLanguages: make([]LanguageDetections, 0, limit)}
	tx := p.gdb.WithContext(ctx)

	if err := tx.Model(&DetectionEvent{}).Count(&stats.Detections).Error; err != nil {
		return nil, fmt.Errorf("count detections: %w", err)
	}
	if err := tx.Model(&DetectionEvent{}).Where("top_language IS NULL").Count(&stats.EmptyResults).Error; err != nil {
		return nil, fmt.Errorf("count empty detections: %w", err)
	}

	var last DetectionEvent
	res := tx.Order("created_at DESC").Limit(1).Find(&last)
	if res.Error != nil {
		return nil, fmt.Errorf("query last detection: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		lastAt := last.CreatedAt.UTC()
		stats.LastDetectedAt = &lastAt
	}

	err := tx.Model(&DetectionEvent{}).
		Select("top_language, COUNT(*) AS detections").
		Where("top_language IS NOT NULL").
		Group("top_language").
		Order("detections DESC, top_language ASC").
		Limit(limit).
		Scan(&stats.TopLanguages).Error
	if err != nil {
		return nil, fmt.Errorf("query top languages: %w", err)
	}

	return stats, nil
}
