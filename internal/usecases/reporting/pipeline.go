package reporting

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ppc-optimizer-api/internal/config"
	"github.com/vfg2006/ppc-optimizer-api/internal/domain"
)

// ReportClient é o subconjunto do cliente da Amazon Ads API que o pipeline
// de relatórios consome.
type ReportClient interface {
	CreateReport(ctx context.Context, spec domain.ReportSpec) (*domain.ReportJob, error)
	GetReportStatus(ctx context.Context, job *domain.ReportJob) (*domain.ReportJob, error)
	DownloadReport(ctx context.Context, job *domain.ReportJob) ([]domain.ReportRow, error)
}

// PipelineConfig controla o polling adaptativo e o paralelismo do pipeline.
type PipelineConfig struct {
	InitialPollInterval time.Duration
	PollBackoffFactor   float64
	MaxPollInterval     time.Duration
	PollCeiling         time.Duration
	MaxWorkers          int
}

func DefaultPipelineConfig(cfg *config.Config) PipelineConfig {
	pollCeiling := time.Duration(cfg.Reports.PollCeilingSeconds) * time.Second
	if pollCeiling <= 0 {
		pollCeiling = 120 * time.Second
	}

	maxWorkers := cfg.Reports.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = 3
	}

	return PipelineConfig{
		InitialPollInterval: 2 * time.Second,
		PollBackoffFactor:   1.5,
		MaxPollInterval:     10 * time.Second,
		PollCeiling:         pollCeiling,
		MaxWorkers:          maxWorkers,
	}
}

// Pipeline solicita relatórios assíncronos, faz polling com backoff
// adaptativo e baixa os artefatos prontos em paralelo.
type Pipeline struct {
	client ReportClient
	config PipelineConfig
}

func NewPipeline(client ReportClient, config PipelineConfig) *Pipeline {
	if config.InitialPollInterval <= 0 {
		config.InitialPollInterval = 2 * time.Second
	}
	if config.PollBackoffFactor <= 1 {
		config.PollBackoffFactor = 1.5
	}
	if config.MaxPollInterval <= 0 {
		config.MaxPollInterval = 10 * time.Second
	}
	if config.PollCeiling <= 0 {
		config.PollCeiling = 120 * time.Second
	}
	if config.MaxWorkers <= 0 {
		config.MaxWorkers = 3
	}

	return &Pipeline{
		client: client,
		config: config,
	}
}

// WaitForReport faz polling do job até ele sair de processamento, com
// intervalos crescentes (2s, 3s, 4.5s... teto de 10s). Passado o teto total
// de polling, retorna ErrReportTimeout.
func (p *Pipeline) WaitForReport(ctx context.Context, job *domain.ReportJob) (*domain.ReportJob, error) {
	start := time.Now()
	interval := p.config.InitialPollInterval

	current := job
	for {
		updated, err := p.client.GetReportStatus(ctx, current)
		if err != nil {
			return nil, err
		}
		current = updated

		if current.Status.IsTerminal() {
			logrus.WithFields(logrus.Fields{
				"report":  current.Spec.Name,
				"job_id":  current.JobID,
				"status":  string(current.Status),
				"elapsed": time.Since(start).String(),
			}).Info("Relatório atingiu estado final")
			return current, nil
		}

		if time.Since(start)+interval > p.config.PollCeiling {
			logrus.WithFields(logrus.Fields{
				"report": current.Spec.Name,
				"job_id": current.JobID,
			}).Error("Relatório não ficou pronto dentro do teto de polling")
			return nil, ErrReportTimeout
		}

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		interval = time.Duration(float64(interval) * p.config.PollBackoffFactor)
		if interval > p.config.MaxPollInterval {
			interval = p.config.MaxPollInterval
		}
	}
}

// Download baixa e parseia o artefato de um job terminal. Jobs FAILED
// viram ReportFailedError com a razão da plataforma.
func (p *Pipeline) Download(ctx context.Context, job *domain.ReportJob) ([]domain.ReportRow, error) {
	if job.Status == domain.ReportStatusFailed {
		return nil, &ReportFailedError{
			JobID:  job.JobID,
			Name:   job.Spec.Name,
			Reason: job.FailureReason,
		}
	}

	return p.client.DownloadReport(ctx, job)
}

// RunParallel cria todos os jobs primeiro, para sobrepor o tempo de geração
// do lado do servidor, e depois faz polling e download concorrentes
// limitados por MaxWorkers. O mapa de resultado é indexado pelo nome do
// spec e não tem ordem relativa definida entre relatórios.
func (p *Pipeline) RunParallel(ctx context.Context, specs []domain.ReportSpec) (map[string][]domain.ReportRow, map[string]error) {
	start := time.Now()

	logrus.WithField("reports", len(specs)).Info("Criando relatórios em paralelo")

	// Fase 1: criar todos os jobs antes de qualquer espera
	jobs := make([]*domain.ReportJob, 0, len(specs))
	failures := make(map[string]error)

	for _, spec := range specs {
		job, err := p.client.CreateReport(ctx, spec)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"report": spec.Name,
				"error":  err.Error(),
			}).Error("Erro ao criar relatório")
			failures[spec.Name] = err
			continue
		}
		jobs = append(jobs, job)
	}

	if len(jobs) == 0 {
		return map[string][]domain.ReportRow{}, failures
	}

	// Fase 2: polling e download concorrentes com pool limitado
	semaphore := make(chan struct{}, p.config.MaxWorkers)
	var wg sync.WaitGroup
	var mu sync.Mutex

	results := make(map[string][]domain.ReportRow)

	for _, job := range jobs {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(j *domain.ReportJob) {
			defer func() {
				<-semaphore
				wg.Done()
			}()

			done, err := p.WaitForReport(ctx, j)
			if err == nil {
				var rows []domain.ReportRow
				rows, err = p.Download(ctx, done)
				if err == nil {
					mu.Lock()
					results[j.Spec.Name] = rows
					mu.Unlock()
					return
				}
			}

			logrus.WithFields(logrus.Fields{
				"report": j.Spec.Name,
				"error":  err.Error(),
			}).Error("Erro ao processar relatório")

			mu.Lock()
			failures[j.Spec.Name] = err
			mu.Unlock()
		}(job)
	}

	wg.Wait()

	logrus.WithFields(logrus.Fields{
		"reports":  len(specs),
		"ok":       len(results),
		"failed":   len(failures),
		"duration": time.Since(start).String(),
	}).Info("Processamento paralelo de relatórios concluído")

	return results, failures
}
