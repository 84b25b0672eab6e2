package auditing

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ppc-optimizer-api/internal/domain"
	"github.com/vfg2006/ppc-optimizer-api/pkg/log"
)

type fakeAuditRepository struct {
	inserted [][]domain.AuditRecord
	err      error
}

func (f *fakeAuditRepository) InsertAuditRecords(ctx context.Context, records []domain.AuditRecord) error {
	f.inserted = append(f.inserted, records)
	return f.err
}

func TestTrail_EscreveCSVPorRun(t *testing.T) {
	dir := t.TempDir()
	trail := NewTrail(dir, "RUN001", nil, log.L)

	trail.Log(domain.AuditRecord{
		ActionType: domain.ActionTypeBidUpdate,
		EntityType: domain.EntityTypeKeyword,
		EntityID:   "1001",
		OldValue:   "1.00",
		NewValue:   "0.75",
		Reason:     "ACOS acima da banda alvo",
	})

	trail.Close(context.Background())

	path := filepath.Join(dir, "ppc_audit_RUN001.csv")
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, "RUN001", rows[1][1])
	assert.Equal(t, string(domain.ActionTypeBidUpdate), rows[1][2])
	assert.Equal(t, "1001", rows[1][4])
	assert.Equal(t, "0.75", rows[1][6])
	assert.Equal(t, "false", rows[1][8])
}

func TestTrail_LogResultAnexaErroNaRazao(t *testing.T) {
	dir := t.TempDir()
	trail := NewTrail(dir, "RUN002", nil, log.L)

	trail.LogResult(domain.MutationResult{
		Intent: domain.MutationIntent{
			EntityID:   "1001",
			EntityType: domain.EntityTypeKeyword,
			Action:     domain.ActionTypeBidUpdate,
			Reason:     "ACOS acima da banda alvo",
		},
		Applied: false,
		Error:   "INVALID_ARGUMENT: lance fora dos limites",
	})

	trail.Close(context.Background())

	content, err := os.ReadFile(filepath.Join(dir, "ppc_audit_RUN002.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "erro: INVALID_ARGUMENT")
}

func TestTrail_FlushEnviaParaOWarehouse(t *testing.T) {
	repo := &fakeAuditRepository{}
	trail := NewTrail(t.TempDir(), "RUN003", repo, log.L)

	trail.Log(domain.AuditRecord{EntityID: "1001", ActionType: domain.ActionTypeBidUpdate})
	trail.Log(domain.AuditRecord{EntityID: "1002", ActionType: domain.ActionTypeBidUpdate})

	trail.Flush(context.Background())

	require.Len(t, repo.inserted, 1)
	assert.Len(t, repo.inserted[0], 2)
	assert.Equal(t, "RUN003", repo.inserted[0][0].RunID)

	// Flush subsequente sem registros novos não insere de novo.
	trail.Flush(context.Background())
	assert.Len(t, repo.inserted, 1)
}

func TestTrail_FalhaDoWarehouseNaoPropaga(t *testing.T) {
	repo := &fakeAuditRepository{err: errors.New("conexão recusada")}
	trail := NewTrail(t.TempDir(), "RUN004", repo, log.L)

	trail.Log(domain.AuditRecord{EntityID: "1001"})

	// Não deve entrar em pânico nem retornar erro.
	trail.Close(context.Background())
	assert.Len(t, repo.inserted, 1)
}

func TestTrail_DiretorioInvalidoDegradaSemArquivo(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "bloqueio")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	// O caminho colide com um arquivo: a trilha segue sem CSV, apenas com o
	// buffer para o warehouse.
	trail := NewTrail(filepath.Join(blocker, "sub"), "RUN005", nil, log.L)

	trail.Log(domain.AuditRecord{EntityID: "1001"})
	trail.Close(context.Background())
}
