package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/onedaone/reco-ai-demo/pkg/models"
)

var ErrNotFound = errors.New("resource not found")

// Store is the data access interface. All database operations go through here.
type Store interface {
	Ping(ctx context.Context) error

	CreateAnalysis(ctx context.Context, rec *models.AnalysisRecord) error
	ListAnalyses(ctx context.Context, limit, offset int) ([]*models.AnalysisRecord, int, error)
	GetAnalysis(ctx context.Context, id uuid.UUID) (*models.AnalysisRecord, error)
}
