package verifying

import (
	"context"
	"fmt"
	"time"

	"github.com/vfg2006/ppc-optimizer-api/infrastructure/integrator/amazon/adsclient"
	"github.com/vfg2006/ppc-optimizer-api/internal/config"
	"github.com/vfg2006/ppc-optimizer-api/internal/domain"
	"github.com/vfg2006/ppc-optimizer-api/internal/usecases/optimizing"
	"github.com/vfg2006/ppc-optimizer-api/pkg/log"
)

// CheckStatus é o desfecho de uma verificação individual.
type CheckStatus string

const (
	CheckStatusPassed  CheckStatus = "PASSED"
	CheckStatusWarning CheckStatus = "WARNING"
	CheckStatusFailed  CheckStatus = "FAILED"
)

// CheckResult é o desfecho de uma verificação de pré-voo.
type CheckResult struct {
	Name    string      `json:"name"`
	Status  CheckStatus `json:"status"`
	Detail  string      `json:"detail,omitempty"`
	Elapsed float64     `json:"elapsed_seconds"`
}

// Report consolida as verificações de um pré-voo.
type Report struct {
	Checks   []CheckResult `json:"checks"`
	Passed   bool          `json:"passed"`
	Warnings []string      `json:"warnings,omitempty"`
}

// checkNameConfig identifica a checagem de configuração, a única cujo
// fracasso aborta o run independente de FAIL_ON_CRITICAL_ERRORS.
const checkNameConfig = "configuracao"

// AuditSink recebe um registro por verificação executada.
type AuditSink interface {
	Log(record domain.AuditRecord)
}

// Verifier executa as checagens de pré-voo que liberam um run de otimização:
// configuração, conectividade, integridade de dados e sanidade de limites de
// lance. Com FAIL_ON_CRITICAL_ERRORS desligado, falhas viram avisos no
// RunResult em vez de abortar o run.
type Verifier struct {
	cfg    *config.Config
	client adsclient.Client
	logger log.Logger
}

func NewVerifier(cfg *config.Config, client adsclient.Client, logger log.Logger) *Verifier {
	return &Verifier{
		cfg:    cfg,
		client: client,
		logger: logger,
	}
}

// Run executa todas as verificações e registra uma entrada de auditoria por
// checagem. Retorna erro fatal apenas quando a configuração é inválida ou
// quando FAIL_ON_CRITICAL_ERRORS está ligado e alguma checagem crítica falhou.
func (v *Verifier) Run(ctx context.Context, audit AuditSink) (*Report, error) {
	report := &Report{Passed: true}

	checks := []struct {
		name     string
		critical bool
		fn       func(ctx context.Context) CheckResult
	}{
		{checkNameConfig, true, v.checkConfig},
		{"conectividade", true, v.checkConnectivity},
		{"integridade_de_dados", false, v.checkDataIntegrity},
		{"sanidade_de_lances", false, v.checkBidBounds},
	}

	var criticalFailure error
	configInvalid := false

	for _, check := range checks {
		started := time.Now()
		result := check.fn(ctx)
		result.Name = check.name
		result.Elapsed = time.Since(started).Seconds()

		report.Checks = append(report.Checks, result)

		if audit != nil {
			audit.Log(domain.AuditRecord{
				ActionType: domain.ActionTypeVerificationCheck,
				EntityID:   check.name,
				NewValue:   string(result.Status),
				Reason:     result.Detail,
			})
		}

		switch result.Status {
		case CheckStatusFailed:
			report.Passed = false
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("verificação '%s' falhou: %s", check.name, result.Detail))

			if check.critical && criticalFailure == nil {
				criticalFailure = fmt.Errorf("verificação crítica '%s' falhou: %s", check.name, result.Detail)
			}

			if check.name == checkNameConfig {
				configInvalid = true
			}
		case CheckStatusWarning:
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("verificação '%s': %s", check.name, result.Detail))
		}

		v.logger.WithContext(ctx).WithFields(log.Fields{
			"check":  check.name,
			"status": result.Status,
		}).Info("Verificação de pré-voo concluída")
	}

	// Configuração inválida aborta sempre: um run com parâmetros
	// inconsistentes produziria decisões sem sentido mesmo em dry-run.
	if criticalFailure != nil && (configInvalid || v.cfg.Optimizer.FailOnCriticalErrors) {
		return report, criticalFailure
	}

	return report, nil
}

// checkConfig valida a superfície de configuração consumida pelo motor de
// decisão. Configuração inválida é sempre fatal, independente de
// FAIL_ON_CRITICAL_ERRORS.
func (v *Verifier) checkConfig(_ context.Context) CheckResult {
	opt := v.cfg.Optimizer

	problems := make([]string, 0)

	if opt.TargetAcos <= 0 || opt.TargetAcos >= 1 {
		problems = append(problems, fmt.Sprintf("TARGET_ACOS %.2f fora de (0, 1)", opt.TargetAcos))
	}

	if opt.Tolerance < 0 || opt.Tolerance >= 1 {
		problems = append(problems, fmt.Sprintf("ACOS_TOLERANCE %.2f fora de [0, 1)", opt.Tolerance))
	}

	if opt.MinBid <= 0 || opt.MaxBid <= opt.MinBid {
		problems = append(problems, fmt.Sprintf("limites de lance inconsistentes (min=%.2f, max=%.2f)", opt.MinBid, opt.MaxBid))
	}

	if opt.MaxBidStep <= 0 || opt.MaxBidStep >= 1 {
		problems = append(problems, fmt.Sprintf("MAX_BID_STEP %.2f fora de (0, 1)", opt.MaxBidStep))
	}

	if opt.MinClicks < 1 {
		problems = append(problems, "MIN_CLICKS deve ser ao menos 1")
	}

	if opt.PauseThreshold <= opt.ReactivateThreshold {
		problems = append(problems, fmt.Sprintf("PAUSE_THRESHOLD %.2f deve ser maior que REACTIVATE_THRESHOLD %.2f",
			opt.PauseThreshold, opt.ReactivateThreshold))
	}

	if opt.BatchSize < 1 {
		problems = append(problems, "BATCH_SIZE deve ser ao menos 1")
	}

	if opt.LookbackDays < 1 {
		problems = append(problems, "LOOKBACK_DAYS deve ser ao menos 1")
	}

	if v.cfg.RateLimit.MaxRequestsPerSecond <= 0 {
		problems = append(problems, "MAX_REQUESTS_PER_SECOND deve ser positivo")
	}

	if v.cfg.Dayparting.Enabled {
		if _, err := optimizing.NewDayparting(
			v.cfg.Dayparting.Windows,
			v.cfg.Dayparting.Timezone,
			v.cfg.Dayparting.MinMultiplier,
			v.cfg.Dayparting.MaxMultiplier,
		); err != nil {
			problems = append(problems, err.Error())
		}
	}

	if len(problems) > 0 {
		return CheckResult{
			Status: CheckStatusFailed,
			Detail: fmt.Sprintf("%d problemas: %v", len(problems), problems),
		}
	}

	return CheckResult{Status: CheckStatusPassed}
}

// checkConnectivity busca uma amostra de campanhas direto da plataforma,
// dentro do timeout configurado.
func (v *Verifier) checkConnectivity(ctx context.Context) CheckResult {
	timeout := time.Duration(v.cfg.Optimizer.VerifierTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	campaigns, err := v.client.GetCampaigns(ctx, false)
	if err != nil {
		return CheckResult{
			Status: CheckStatusFailed,
			Detail: fmt.Sprintf("falha buscando campanhas: %v", err),
		}
	}

	return CheckResult{
		Status: CheckStatusPassed,
		Detail: fmt.Sprintf("%d campanhas acessíveis", len(campaigns)),
	}
}

// checkDataIntegrity valida campos obrigatórios em uma amostra das entidades
// já buscadas (a checagem de conectividade populou o cache).
func (v *Verifier) checkDataIntegrity(ctx context.Context) CheckResult {
	campaigns, err := v.client.GetCampaigns(ctx, true)
	if err != nil {
		return CheckResult{
			Status: CheckStatusWarning,
			Detail: fmt.Sprintf("amostra indisponível: %v", err),
		}
	}

	sampleSize := v.cfg.Optimizer.VerifierSampleSize
	if sampleSize <= 0 || sampleSize > len(campaigns) {
		sampleSize = len(campaigns)
	}

	missing := 0
	for _, campaign := range campaigns[:sampleSize] {
		if campaign.ID == "" || campaign.Name == "" || campaign.State == "" {
			missing++
		}
	}

	if missing > 0 {
		return CheckResult{
			Status: CheckStatusFailed,
			Detail: fmt.Sprintf("%d de %d campanhas da amostra com campos obrigatórios vazios", missing, sampleSize),
		}
	}

	return CheckResult{
		Status: CheckStatusPassed,
		Detail: fmt.Sprintf("amostra de %d campanhas íntegra", sampleSize),
	}
}

// checkBidBounds sinaliza keywords cujo lance atual já está fora dos limites
// configurados. A checagem apenas reporta; o lance não é corrigido aqui.
func (v *Verifier) checkBidBounds(ctx context.Context) CheckResult {
	keywords, err := v.client.GetKeywords(ctx, true)
	if err != nil {
		return CheckResult{
			Status: CheckStatusWarning,
			Detail: fmt.Sprintf("keywords indisponíveis: %v", err),
		}
	}

	outOfBounds := 0
	for _, kw := range keywords {
		if kw.Bid > 0 && (kw.Bid < v.cfg.Optimizer.MinBid || kw.Bid > v.cfg.Optimizer.MaxBid) {
			outOfBounds++
		}
	}

	if outOfBounds > 0 {
		return CheckResult{
			Status: CheckStatusWarning,
			Detail: fmt.Sprintf("%d keywords com lance fora de [%.2f, %.2f]",
				outOfBounds, v.cfg.Optimizer.MinBid, v.cfg.Optimizer.MaxBid),
		}
	}

	return CheckResult{Status: CheckStatusPassed}
}
