package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/onedaone/reco-ai-demo/pkg/models"
)

// PostgresStore implements the Store interface using pgx/v5.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Ping checks database connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) CreateAnalysis(ctx context.Context, rec *models.AnalysisRecord) error {
	payload, err := json.Marshal(rec.Result)
	if err != nil {
		return fmt.Errorf("encode analysis result: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO analyses (id, input_type, source, summary, estimated_total, result, mail_sent, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rec.ID, rec.InputType, rec.Source, rec.Summary, rec.EstimatedTotal, payload, rec.MailSent, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("create analysis: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListAnalyses(ctx context.Context, limit, offset int) ([]*models.AnalysisRecord, int, error) {
	var total int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM analyses`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count analyses: %w", err)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, input_type, source, summary, estimated_total, result, mail_sent, created_at
		 FROM analyses ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list analyses: %w", err)
	}
	defer rows.Close()

	var recs []*models.AnalysisRecord
	for rows.Next() {
		rec, err := scanAnalysis(rows)
		if err != nil {
			return nil, 0, err
		}
		recs = append(recs, rec)
	}
	return recs, total, rows.Err()
}

func (s *PostgresStore) GetAnalysis(ctx context.Context, id uuid.UUID) (*models.AnalysisRecord, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, input_type, source, summary, estimated_total, result, mail_sent, created_at
		 FROM analyses WHERE id = $1`, id)

	rec, err := scanAnalysis(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func scanAnalysis(row pgx.Row) (*models.AnalysisRecord, error) {
	var rec models.AnalysisRecord
	var payload []byte
	if err := row.Scan(&rec.ID, &rec.InputType, &rec.Source, &rec.Summary,
		&rec.EstimatedTotal, &payload, &rec.MailSent, &rec.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, fmt.Errorf("scan analysis: %w", err)
	}
	if err := json.Unmarshal(payload, &rec.Result); err != nil {
		return nil, fmt.Errorf("decode analysis result: %w", err)
	}
	return &rec, nil
}

var _ Store = (*PostgresStore)(nil)
