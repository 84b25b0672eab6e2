package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ppc-optimizer-api/infrastructure/repository"
	"github.com/vfg2006/ppc-optimizer-api/internal/domain"
	"github.com/vfg2006/ppc-optimizer-api/internal/scheduler"
	"github.com/vfg2006/ppc-optimizer-api/pkg/apiErrors"
)

type RunOptimizationRequest struct {
	ProfileID string   `json:"profile_id,omitempty"`
	DryRun    *bool    `json:"dry_run,omitempty"`
	Features  []string `json:"features,omitempty"`
}

// RunOptimization dispara um run de otimização em background. O progresso e
// o resultado ficam disponíveis nos endpoints de status e de runs.
func RunOptimization(syncService *scheduler.OptimizationSyncService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RunOptimizationRequest

		if r.Body != nil && r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
				return
			}
		}

		// Sem dry_run explícito o run roda em modo simulação, nunca o
		// contrário: aplicar mutações de verdade exige pedido explícito.
		dryRun := true
		if req.DryRun != nil {
			dryRun = *req.DryRun
		}

		features := make([]domain.Feature, 0, len(req.Features))
		for _, f := range req.Features {
			feature := domain.Feature(f)
			if !domain.IsValidFeature(feature) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFeature, "Feature de otimização desconhecida", map[string]any{
					"feature": f,
				})
				return
			}
			features = append(features, feature)
		}

		if !syncService.TriggerRun(req.ProfileID, dryRun, features) {
			apiErrors.WriteError(w, apiErrors.ErrRunInProgress, "Já existe um run de otimização em andamento", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(map[string]any{
			"message": "Run de otimização iniciado",
			"dry_run": dryRun,
		})
	}
}

// GetOptimizationStatus retorna o status do agendador e do último run
func GetOptimizationStatus(syncService *scheduler.OptimizationSyncService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(syncService.GetStatus())
	}
}

// ListRunSummaries retorna os resumos dos runs mais recentes do warehouse
func ListRunSummaries(repo repository.RunSummaryRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Warehouse desabilitado", nil)
			return
		}

		results, err := repo.GetRecent(r.Context(), 20)
		if err != nil {
			logrus.WithError(err).Error("Erro ao listar resumos de runs")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar resumos de runs", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(results)
	}
}

// GetRunSummary retorna o resumo de um run específico
func GetRunSummary(repo repository.RunSummaryRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Warehouse desabilitado", nil)
			return
		}

		params := httprouter.ParamsFromContext(r.Context())
		runID := params.ByName("id")

		result, err := repo.GetByRunID(r.Context(), runID)
		if err != nil {
			logrus.WithError(err).Error("Erro ao consultar resumo do run")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar resumo do run", nil)
			return
		}

		if result == nil {
			apiErrors.WriteError(w, apiErrors.ErrRunNotFound, "Run não encontrado", map[string]any{
				"run_id": runID,
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
	}
}
