package orchestrating

import (
	"context"
	"fmt"
	"time"

	"github.com/vfg2006/ppc-optimizer-api/infrastructure/integrator/amazon/adsclient"
	"github.com/vfg2006/ppc-optimizer-api/internal/config"
	"github.com/vfg2006/ppc-optimizer-api/internal/domain"
	"github.com/vfg2006/ppc-optimizer-api/internal/usecases/auditing"
	"github.com/vfg2006/ppc-optimizer-api/internal/usecases/optimizing"
	"github.com/vfg2006/ppc-optimizer-api/internal/usecases/verifying"
	"github.com/vfg2006/ppc-optimizer-api/pkg/log"
	"github.com/vfg2006/ppc-optimizer-api/pkg/utils"
)

// reportMetrics são as colunas pedidas nos relatórios de keywords e termos
// de busca.
var keywordReportMetrics = []string{
	"campaignId", "adGroupId", "keywordId", "keywordText", "matchType",
	"impressions", "clicks", "cost", "attributedSales14d", "attributedConversions14d",
}

var campaignReportMetrics = []string{
	"campaignId", "campaignName", "impressions", "clicks", "cost",
	"attributedSales14d", "attributedConversions14d",
}

var searchTermReportMetrics = []string{
	"campaignId", "adGroupId", "keywordId", "query",
	"impressions", "clicks", "cost", "attributedSales14d", "attributedConversions14d",
}

// ReportFetcher solicita, acompanha e baixa relatórios em paralelo.
type ReportFetcher interface {
	RunParallel(ctx context.Context, specs []domain.ReportSpec) (map[string][]domain.ReportRow, map[string]error)
}

// Mutator aplica intenções de mutação em lotes.
type Mutator interface {
	Apply(ctx context.Context, intents []domain.MutationIntent, dryRun bool) []domain.MutationResult
}

// Preflight executa as verificações que liberam um run.
type Preflight interface {
	Run(ctx context.Context, audit verifying.AuditSink) (*verifying.Report, error)
}

// SummaryRepository persiste o resumo de cada run no warehouse.
type SummaryRepository interface {
	InsertRunSummary(ctx context.Context, result *domain.RunResult) error
}

// Service orquestra um run completo de otimização: pré-voo, relatórios,
// motor de decisão, aplicação em lote e auditoria.
type Service struct {
	cfg       *config.Config
	client    adsclient.Client
	pipeline  ReportFetcher
	mutator   Mutator
	verifier  Preflight
	auditRepo auditing.Repository
	summaries SummaryRepository
	logger    log.Logger

	now func() time.Time
}

func NewService(
	cfg *config.Config,
	client adsclient.Client,
	pipeline ReportFetcher,
	mutator Mutator,
	verifier Preflight,
	auditRepo auditing.Repository,
	summaries SummaryRepository,
	logger log.Logger,
) *Service {
	return &Service{
		cfg:       cfg,
		client:    client,
		pipeline:  pipeline,
		mutator:   mutator,
		verifier:  verifier,
		auditRepo: auditRepo,
		summaries: summaries,
		logger:    logger,
		now:       time.Now,
	}
}

// Run executa um run de otimização para o profile informado. features vazio
// executa todas. O run respeita um deadline de relógio de parede: ao
// alcançá-lo, as fases restantes são abandonadas e o resultado sai marcado
// como parcial, com a auditoria do que já foi aplicado preservada.
func (s *Service) Run(ctx context.Context, profileID string, dryRun bool, features []domain.Feature) (*domain.RunResult, error) {
	runID, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("falha gerando id do run: %w", err)
	}

	if profileID == "" {
		profileID = s.cfg.Amazon.ProfileID
	}

	result := &domain.RunResult{
		RunID:     runID,
		ProfileID: profileID,
		DryRun:    dryRun,
		StartedAt: s.now().UTC(),
		Features:  make(map[domain.Feature]*domain.FeatureResult),
	}

	deadline := s.now().Add(time.Duration(s.cfg.Optimizer.RunDeadlineSeconds) * time.Second)
	ctx, cancel := context.WithDeadline(ctx, deadline)
	defer cancel()

	ctx, _ = log.WithCorrelationID(ctx)
	logger := s.logger.WithContext(ctx).WithFields(log.Fields{
		"run_id":  runID,
		"profile": profileID,
		"dry_run": dryRun,
	})

	logger.Info("Iniciando run de otimização")

	trail := auditing.NewTrail(s.cfg.Optimizer.AuditOutputDir, runID, s.auditRepo, s.logger)
	// O flush final não usa o ctx do run: um run parcial por deadline ainda
	// precisa persistir a trilha do que foi aplicado.
	defer func() {
		result.FinishedAt = s.now().UTC()
		trail.Close(context.Background())
		s.persistSummary(result)
	}()

	features, err = normalizeFeatures(features)
	if err != nil {
		result.AddError(err.Error())
		return result, err
	}

	verification, err := s.verifier.Run(ctx, trail)
	if verification != nil {
		result.Warnings = append(result.Warnings, verification.Warnings...)
	}
	if err != nil {
		logger.WithError(err).Error("Pré-voo reprovado, abortando run")
		result.AddError(err.Error())
		return result, err
	}

	rules, err := s.buildRules()
	if err != nil {
		result.AddError(err.Error())
		return result, err
	}

	reportData, err := s.fetchReports(ctx, features, result)
	if err != nil {
		if partial := s.markPartial(ctx, result, "relatorios"); partial != nil {
			return result, partial
		}
		result.AddError(err.Error())
		return result, err
	}

	for _, feature := range features {
		if ctx.Err() != nil {
			if partial := s.markPartial(ctx, result, string(feature)); partial != nil {
				return result, partial
			}
		}

		started := s.now()
		featureResult := &domain.FeatureResult{Feature: feature}
		result.Features[feature] = featureResult

		intents, warnings := s.decide(ctx, feature, rules, reportData)
		for _, w := range warnings {
			result.AddWarning(w)
		}

		featureResult.IntentsProduced = len(intents)
		result.TotalIntents += len(intents)

		if len(intents) > 0 {
			mutationResults := s.mutator.Apply(ctx, intents, dryRun)
			for _, mr := range mutationResults {
				trail.LogResult(mr)

				switch {
				case mr.DryRun:
					featureResult.Skipped++
				case mr.Applied:
					featureResult.Applied++
				default:
					featureResult.Failed++
					result.AddError(fmt.Sprintf("%s %s: %s", mr.Intent.Action, mr.Intent.EntityID, mr.Error))
				}
			}

			result.TotalApplied += featureResult.Applied
			result.TotalFailed += featureResult.Failed
		}

		featureResult.DurationSeconds = s.now().Sub(started).Seconds()

		logger.WithFields(log.Fields{
			"feature": feature,
			"intents": featureResult.IntentsProduced,
			"applied": featureResult.Applied,
			"failed":  featureResult.Failed,
		}).Info("Feature concluída")
	}

	logger.WithFields(log.Fields{
		"total_intents": result.TotalIntents,
		"total_applied": result.TotalApplied,
		"total_failed":  result.TotalFailed,
		"partial":       result.Partial,
	}).Info("Run de otimização concluído")

	return result, nil
}

// persistSummary grava o resumo do run no warehouse quando ele está
// habilitado. Falha de persistência não altera o desfecho do run.
func (s *Service) persistSummary(result *domain.RunResult) {
	if s.summaries == nil {
		return
	}

	if err := s.summaries.InsertRunSummary(context.Background(), result); err != nil {
		s.logger.WithError(err).Warnf("Falha persistindo resumo do run %s no warehouse", result.RunID)
	}
}

// markPartial registra a interrupção por deadline e devolve o erro de run
// parcial quando o ctx expirou.
func (s *Service) markPartial(ctx context.Context, result *domain.RunResult, phase string) error {
	if ctx.Err() == nil {
		return nil
	}

	result.Partial = true
	err := &optimizing.PartialRunError{RunID: result.RunID, Phase: phase}
	result.AddError(err.Error())

	s.logger.WithContext(ctx).Warnf("Deadline do run atingido na fase '%s', encerrando com resultado parcial", phase)

	return err
}

func normalizeFeatures(features []domain.Feature) ([]domain.Feature, error) {
	if len(features) == 0 {
		return domain.AllFeatures(), nil
	}

	valid := make([]domain.Feature, 0, len(features))
	for _, f := range features {
		if !domain.IsValidFeature(f) {
			return nil, fmt.Errorf("%w: feature desconhecida '%s'", optimizing.ErrInvalidConfig, f)
		}
		valid = append(valid, f)
	}

	// Preserva a ordem canônica de execução independente da ordem pedida.
	ordered := make([]domain.Feature, 0, len(valid))
	for _, f := range domain.AllFeatures() {
		for _, requested := range valid {
			if f == requested {
				ordered = append(ordered, f)
				break
			}
		}
	}

	return ordered, nil
}

// ruleSet agrupa as regras construídas para um run, validadas contra a
// configuração vigente no momento do disparo.
type ruleSet struct {
	bid        *optimizing.BidRule
	dayparting *optimizing.Dayparting
	campaign   *optimizing.CampaignStateRule
	discovery  *optimizing.KeywordDiscovery
	negatives  *optimizing.NegativeKeywordRule
}

func (s *Service) buildRules() (*ruleSet, error) {
	opt := s.cfg.Optimizer

	bid, err := optimizing.NewBidRule(optimizing.BidRuleParams{
		TargetAcos:    opt.TargetAcos,
		AcosTolerance: opt.Tolerance,
		MinBid:        opt.MinBid,
		MaxBid:        opt.MaxBid,
		MaxBidStep:    opt.MaxBidStep,
		StepFactor:    opt.StepFactor,
		MinClicks:     opt.MinClicks,
	})
	if err != nil {
		return nil, err
	}

	dayparting, err := optimizing.NewDayparting(
		s.cfg.Dayparting.Windows,
		s.cfg.Dayparting.Timezone,
		s.cfg.Dayparting.MinMultiplier,
		s.cfg.Dayparting.MaxMultiplier,
	)
	if err != nil {
		return nil, err
	}

	campaign, err := optimizing.NewCampaignStateRule(optimizing.CampaignStateParams{
		PauseThreshold:        opt.PauseThreshold,
		ReactivateThreshold:   opt.ReactivateThreshold,
		MinSpendForDecision:   opt.MinSpendForDecision,
		MinConsecutivePeriods: opt.MinConsecutivePeriods,
	})
	if err != nil {
		return nil, err
	}

	discovery, err := optimizing.NewKeywordDiscovery(optimizing.KeywordDiscoveryParams{
		MinClicks:      opt.MinClicksForDiscovery,
		MinConversions: opt.MinConversionsForDiscovery,
		InitialBid:     opt.DiscoveryInitialBid,
	})
	if err != nil {
		return nil, err
	}

	negatives, err := optimizing.NewNegativeKeywordRule(optimizing.NegativeKeywordParams{
		MinClicksForNegative: opt.MinClicksForNegative,
	})
	if err != nil {
		return nil, err
	}

	return &ruleSet{
		bid:        bid,
		dayparting: dayparting,
		campaign:   campaign,
		discovery:  discovery,
		negatives:  negatives,
	}, nil
}
