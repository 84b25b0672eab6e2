package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/ppc-optimizer-api/infrastructure/database/postgres"
	"github.com/vfg2006/ppc-optimizer-api/internal/domain"
)

const runSummariesTable = "run_summaries"

type RunSummaryRepository interface {
	InsertRunSummary(ctx context.Context, result *domain.RunResult) error
	GetByRunID(ctx context.Context, runID string) (*domain.RunResult, error)
	GetRecent(ctx context.Context, limit int) ([]*domain.RunResult, error)
}

type runSummaryRepository struct {
	conn *postgres.Connection
}

func NewRunSummaryRepository(conn *postgres.Connection) RunSummaryRepository {
	return &runSummaryRepository{
		conn: conn,
	}
}

// InsertRunSummary grava o resumo de um run. O detalhamento por feature vai
// serializado como JSON, no mesmo esquema do RunResult emitido pela API.
func (r *runSummaryRepository) InsertRunSummary(ctx context.Context, result *domain.RunResult) error {
	detailJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("erro ao serializar RunResult para JSON: %w", err)
	}

	query := squirrel.StatementBuilder.
		Insert(runSummariesTable).
		Columns("run_id", "profile_id", "dry_run", "partial", "started_at", "finished_at",
			"total_intents", "total_applied", "total_failed", "detail").
		Values(
			result.RunID,
			result.ProfileID,
			result.DryRun,
			result.Partial,
			result.StartedAt,
			result.FinishedAt,
			result.TotalIntents,
			result.TotalApplied,
			result.TotalFailed,
			detailJSON,
		).
		Suffix(`
			ON CONFLICT (run_id) DO UPDATE SET
				partial = EXCLUDED.partial,
				finished_at = EXCLUDED.finished_at,
				total_intents = EXCLUDED.total_intents,
				total_applied = EXCLUDED.total_applied,
				total_failed = EXCLUDED.total_failed,
				detail = EXCLUDED.detail
		`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *runSummaryRepository) GetByRunID(ctx context.Context, runID string) (*domain.RunResult, error) {
	query, args, err := squirrel.
		Select("detail").
		From(runSummariesTable).
		Where(squirrel.Eq{"run_id": runID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var detailJSON []byte
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&detailJSON); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear resumo do run: %w", err)
	}

	result := &domain.RunResult{}
	if err := json.Unmarshal(detailJSON, result); err != nil {
		return nil, fmt.Errorf("erro ao deserializar JSON do resumo: %w", err)
	}

	return result, nil
}

func (r *runSummaryRepository) GetRecent(ctx context.Context, limit int) ([]*domain.RunResult, error) {
	if limit <= 0 {
		limit = 20
	}

	query, args, err := squirrel.
		Select("detail").
		From(runSummariesTable).
		OrderBy("started_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	results := make([]*domain.RunResult, 0)
	for rows.Next() {
		var detailJSON []byte
		if err := rows.Scan(&detailJSON); err != nil {
			return nil, fmt.Errorf("erro ao escanear resumo do run: %w", err)
		}

		result := &domain.RunResult{}
		if err := json.Unmarshal(detailJSON, result); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON do resumo: %w", err)
		}

		results = append(results, result)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return results, nil
}
