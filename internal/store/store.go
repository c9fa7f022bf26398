package store

import (
	"context"
	"time"

	"github.com/panorama-labs/survey-engine/internal/model"
)

// QuestionSetRecord is a persisted survey question set.
type QuestionSetRecord struct {
	ID        string           `json:"id"`
	EventName string           `json:"event_name"`
	Phase     string           `json:"phase"`
	Outcome   string           `json:"outcome"`
	Questions []model.Question `json:"questions"`
	CreatedAt time.Time        `json:"created_at"`
}

// QuestionSetFilter specifies criteria for listing question sets.
type QuestionSetFilter struct {
	EventName string `json:"event_name,omitempty"`
	Phase     string `json:"phase,omitempty"`
	Limit     int    `json:"limit,omitempty"`
	Offset    int    `json:"offset,omitempty"`
}

// Store defines the persistence interface for generated surveys and
// extracted event data.
type Store interface {
	// Question sets
	SaveQuestionSet(ctx context.Context, eventName, phase, outcome string, questions []model.Question) (*QuestionSetRecord, error)
	GetQuestionSet(ctx context.Context, id string) (*QuestionSetRecord, error)
	ListQuestionSets(ctx context.Context, filter QuestionSetFilter) ([]QuestionSetRecord, error)

	// Extraction cache
	GetCachedExtraction(ctx context.Context, urlKey string) (*model.ExtractedEventData, error)
	SetCachedExtraction(ctx context.Context, urlKey string, data model.ExtractedEventData, ttl time.Duration) error
	DeleteExpiredExtractions(ctx context.Context) (int, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
