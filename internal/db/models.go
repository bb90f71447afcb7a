package db

import "time"

// DetectionEvent maps langid.detection_events. The input text itself is never
// stored.
type DetectionEvent struct {
	EventID       int64     `gorm:"column:event_id;primaryKey;autoIncrement"`
	RequestID     string    `gorm:"column:request_id;type:text;not null;default:''"`
	TopLanguage   *string   `gorm:"column:top_language;type:text"`
	LanguageCount int       `gorm:"column:language_count;type:integer;not null;default:0"`
	TokenCount    int       `gorm:"column:token_count;type:integer;not null;default:0"`
	TotalHits     int       `gorm:"column:total_hits;type:integer;not null;default:0"`
	TextBytes     int       `gorm:"column:text_bytes;type:integer;not null;default:0"`
	LatencyMicros int64     `gorm:"column:latency_micros;type:bigint;not null;default:0"`
	CreatedAt     time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()"`
}

func (DetectionEvent) TableName() string { return "langid.detection_events" }

func autoMigrateModels() []any {
	return []any{
		&DetectionEvent{},
	}
}
