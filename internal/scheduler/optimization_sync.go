package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ppc-optimizer-api/internal/config"
	"github.com/vfg2006/ppc-optimizer-api/internal/domain"
)

// Runner dispara um run de otimização completo.
type Runner interface {
	Run(ctx context.Context, profileID string, dryRun bool, features []domain.Feature) (*domain.RunResult, error)
}

// OptimizationSyncConfig representa a configuração do agendador de runs de otimização
type OptimizationSyncConfig struct {
	CronSchedule string
	DryRun       bool
	SyncEnabled  bool
}

// OptimizationSyncService gerencia o agendamento e execução dos runs de otimização
type OptimizationSyncService struct {
	scheduler           *gocron.Scheduler
	config              OptimizationSyncConfig
	appConfig           *config.Config
	runner              Runner
	syncRunning         bool
	syncMutex           sync.Mutex
	lastRunStartedAt    time.Time
	lastRunCompletedAt  time.Time
	lastRunID           string
	lastRunPartial      bool
	lastRunTotalApplied int
}

// NewOptimizationSyncService cria uma nova instância do serviço de agendamento de otimização
func NewOptimizationSyncService(runner Runner, appConfig *config.Config) *OptimizationSyncService {
	syncConfig := OptimizationSyncConfig{
		CronSchedule: appConfig.OptimizationSync.CronSchedule,
		DryRun:       appConfig.OptimizationSync.DryRun,
		SyncEnabled:  appConfig.OptimizationSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"dry_run":       syncConfig.DryRun,
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de otimização carregada")

	return &OptimizationSyncService{
		scheduler:   scheduler,
		config:      syncConfig,
		appConfig:   appConfig,
		runner:      runner,
		syncRunning: false,
	}
}

// Start inicia o agendador
func (s *OptimizationSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Agendamento de runs de otimização desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de runs de otimização")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.runOptimization()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar run de otimização: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de runs de otimização")
		s.scheduler.Stop()
	}()

	return nil
}

// runOptimization executa um run completo com os parâmetros da configuração.
func (s *OptimizationSyncService) runOptimization() {
	s.execute(s.appConfig.Amazon.ProfileID, s.config.DryRun, nil)
}

// execute roda a otimização, ignorando o disparo caso outro run ainda esteja
// em andamento.
func (s *OptimizationSyncService) execute(profileID string, dryRun bool, features []domain.Feature) {
	startTime := time.Now()

	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Run de otimização já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastRunStartedAt = startTime
	s.syncMutex.Unlock()

	// Os campos de status são lidos pelo endpoint HTTP em paralelo, então
	// toda escrita acontece sob o syncMutex.
	defer func() {
		s.syncMutex.Lock()
		s.lastRunCompletedAt = time.Now()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	logrus.WithFields(logrus.Fields{
		"profile_id": profileID,
		"dry_run":    dryRun,
	}).Info("Iniciando run de otimização")

	result, err := s.runner.Run(context.Background(), profileID, dryRun, features)
	if err != nil {
		logrus.WithError(err).Error("Run de otimização terminou com erro")
	}

	if result != nil {
		s.syncMutex.Lock()
		s.lastRunID = result.RunID
		s.lastRunPartial = result.Partial
		s.lastRunTotalApplied = result.TotalApplied
		s.syncMutex.Unlock()

		logrus.WithFields(logrus.Fields{
			"run_id":        result.RunID,
			"duration":      time.Since(startTime).String(),
			"total_intents": result.TotalIntents,
			"total_applied": result.TotalApplied,
			"total_failed":  result.TotalFailed,
			"partial":       result.Partial,
		}).Info("Run de otimização concluído")
	}
}

// TriggerManualSync inicia manualmente um run de otimização. Retorna false se
// já havia um run em andamento.
func (s *OptimizationSyncService) TriggerManualSync() bool {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Run de otimização já em andamento, ignorando solicitação manual")
		return false
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando run de otimização manual")
	go s.runOptimization()

	return true
}

// TriggerRun inicia um run com parâmetros específicos (disparo via API).
// Retorna false se já havia um run em andamento.
func (s *OptimizationSyncService) TriggerRun(profileID string, dryRun bool, features []domain.Feature) bool {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Run de otimização já em andamento, ignorando disparo via API")
		return false
	}
	s.syncMutex.Unlock()

	if profileID == "" {
		profileID = s.appConfig.Amazon.ProfileID
	}

	go s.execute(profileID, dryRun, features)

	return true
}

// IsRunning indica se há um run em andamento
func (s *OptimizationSyncService) IsRunning() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()
	return s.syncRunning
}

// GetStatus retorna o status atual do agendador
func (s *OptimizationSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":          s.config.SyncEnabled,
		"sync_cron":             s.config.CronSchedule,
		"sync_dry_run":          s.config.DryRun,
		"sync_running":          s.syncRunning,
		"last_run_id":           s.lastRunID,
		"last_run_partial":      s.lastRunPartial,
		"last_run_applied":      s.lastRunTotalApplied,
		"last_run_started_at":   s.lastRunStartedAt,
		"last_run_completed_at": s.lastRunCompletedAt,
	}
}
