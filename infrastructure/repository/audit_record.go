package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/ppc-optimizer-api/infrastructure/database/postgres"
	"github.com/vfg2006/ppc-optimizer-api/internal/domain"
)

const auditRecordsTable = "audit_records"

type AuditRecordRepository interface {
	InsertAuditRecords(ctx context.Context, records []domain.AuditRecord) error
	GetByRunID(ctx context.Context, runID string) ([]domain.AuditRecord, error)
}

type auditRecordRepository struct {
	conn *postgres.Connection
}

func NewAuditRecordRepository(conn *postgres.Connection) AuditRecordRepository {
	return &auditRecordRepository{
		conn: conn,
	}
}

// InsertAuditRecords grava os registros de um run em um único insert.
func (r *auditRecordRepository) InsertAuditRecords(ctx context.Context, records []domain.AuditRecord) error {
	if len(records) == 0 {
		return nil
	}

	query := squirrel.StatementBuilder.
		Insert(auditRecordsTable).
		Columns("timestamp", "run_id", "action_type", "entity_type", "entity_id",
			"old_value", "new_value", "reason", "dry_run").
		PlaceholderFormat(squirrel.Dollar)

	for _, record := range records {
		query = query.Values(
			record.Timestamp,
			record.RunID,
			string(record.ActionType),
			string(record.EntityType),
			record.EntityID,
			record.OldValue,
			record.NewValue,
			record.Reason,
			record.DryRun,
		)
	}

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

func (r *auditRecordRepository) GetByRunID(ctx context.Context, runID string) ([]domain.AuditRecord, error) {
	query, args, err := squirrel.
		Select("timestamp", "run_id", "action_type", "entity_type", "entity_id",
			"old_value", "new_value", "reason", "dry_run").
		From(auditRecordsTable).
		Where(squirrel.Eq{"run_id": runID}).
		OrderBy("timestamp ASC").
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

	records := make([]domain.AuditRecord, 0)
	for rows.Next() {
		var record domain.AuditRecord
		var actionType, entityType string

		err := rows.Scan(
			&record.Timestamp,
			&record.RunID,
			&actionType,
			&entityType,
			&record.EntityID,
			&record.OldValue,
			&record.NewValue,
			&record.Reason,
			&record.DryRun,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear registro de auditoria: %w", err)
		}

		record.ActionType = domain.ActionType(actionType)
		record.EntityType = domain.EntityType(entityType)
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return records, nil
}
