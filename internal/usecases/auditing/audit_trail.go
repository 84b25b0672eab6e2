package auditing

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/vfg2006/ppc-optimizer-api/internal/domain"
	"github.com/vfg2006/ppc-optimizer-api/pkg/log"
)

var csvHeader = []string{
	"timestamp", "run_id", "action_type", "entity_type", "entity_id",
	"old_value", "new_value", "reason", "dry_run",
}

// Repository persiste registros de auditoria no warehouse para consulta
// histórica.
type Repository interface {
	InsertAuditRecords(ctx context.Context, records []domain.AuditRecord) error
}

// Trail registra cada mudança aplicada (ou simulada) em um arquivo CSV por
// run e, quando configurado, no warehouse. Falha de auditoria nunca derruba o
// run de otimização: os erros são logados e o run segue.
type Trail struct {
	runID      string
	repository Repository
	logger     log.Logger

	mu      sync.Mutex
	file    *os.File
	writer  *csv.Writer
	pending []domain.AuditRecord
}

// NewTrail cria a trilha de auditoria do run, com o CSV em
// <dir>/ppc_audit_<run_id>.csv. repository pode ser nil quando o warehouse
// está desabilitado.
func NewTrail(dir, runID string, repository Repository, logger log.Logger) *Trail {
	t := &Trail{
		runID:      runID,
		repository: repository,
		logger:     logger,
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.WithError(err).Warnf("Auditoria sem arquivo CSV: falha criando diretório %s", dir)
		return t
	}

	path := filepath.Join(dir, fmt.Sprintf("ppc_audit_%s.csv", runID))

	file, err := os.Create(path)
	if err != nil {
		logger.WithError(err).Warnf("Auditoria sem arquivo CSV: falha criando %s", path)
		return t
	}

	t.file = file
	t.writer = csv.NewWriter(file)

	if err := t.writer.Write(csvHeader); err != nil {
		logger.WithError(err).Warn("Falha escrevendo cabeçalho do CSV de auditoria")
	}

	return t
}

// Log registra uma mudança. Nunca retorna erro; qualquer falha de escrita é
// apenas logada.
func (t *Trail) Log(record domain.AuditRecord) {
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now().UTC()
	}
	record.RunID = t.runID

	t.mu.Lock()
	defer t.mu.Unlock()

	t.pending = append(t.pending, record)

	if t.writer == nil {
		return
	}

	row := []string{
		record.Timestamp.Format(time.RFC3339),
		record.RunID,
		string(record.ActionType),
		string(record.EntityType),
		record.EntityID,
		record.OldValue,
		record.NewValue,
		record.Reason,
		strconv.FormatBool(record.DryRun),
	}

	if err := t.writer.Write(row); err != nil {
		t.logger.WithError(err).Warn("Falha escrevendo linha no CSV de auditoria")
	}
}

// LogResult registra o desfecho de um MutationResult.
func (t *Trail) LogResult(result domain.MutationResult) {
	reason := result.Intent.Reason
	if result.Error != "" {
		reason = fmt.Sprintf("%s | erro: %s", reason, result.Error)
	}

	t.Log(domain.AuditRecord{
		ActionType: result.Intent.Action,
		EntityType: result.Intent.EntityType,
		EntityID:   result.Intent.EntityID,
		OldValue:   result.Intent.OldValue,
		NewValue:   result.Intent.NewValue,
		Reason:     reason,
		DryRun:     result.DryRun,
	})
}

// Flush descarrega o CSV em disco e envia os registros acumulados para o
// warehouse. Também não propaga erro.
func (t *Trail) Flush(ctx context.Context) {
	t.mu.Lock()

	if t.writer != nil {
		t.writer.Flush()
		if err := t.writer.Error(); err != nil {
			t.logger.WithError(err).Warn("Falha descarregando CSV de auditoria")
		}
	}

	records := make([]domain.AuditRecord, len(t.pending))
	copy(records, t.pending)
	t.pending = t.pending[:0]

	t.mu.Unlock()

	if t.repository == nil || len(records) == 0 {
		return
	}

	if err := t.repository.InsertAuditRecords(ctx, records); err != nil {
		t.logger.WithContext(ctx).WithError(err).
			Warnf("Falha persistindo %d registros de auditoria no warehouse", len(records))
	}
}

// Close descarrega e fecha o arquivo CSV.
func (t *Trail) Close(ctx context.Context) {
	t.Flush(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.file != nil {
		if err := t.file.Close(); err != nil {
			t.logger.WithError(err).Warn("Falha fechando CSV de auditoria")
		}
		t.file = nil
		t.writer = nil
	}
}
