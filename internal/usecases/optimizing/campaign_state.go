package optimizing

import (
	"fmt"

	"github.com/vfg2006/ppc-optimizer-api/internal/domain"
)

// CampaignStateParams concentra os limiares de pausa e reativação.
type CampaignStateParams struct {
	PauseThreshold        float64
	ReactivateThreshold   float64
	MinSpendForDecision   float64
	MinConsecutivePeriods int
}

// CampaignStateRule decide pausa e reativação de campanhas a partir do ACOS
// da janela de análise. Reativação exige ACOS saudável por períodos
// consecutivos para evitar flapping.
type CampaignStateRule struct {
	params CampaignStateParams
}

func NewCampaignStateRule(params CampaignStateParams) (*CampaignStateRule, error) {
	if params.PauseThreshold <= params.ReactivateThreshold {
		return nil, fmt.Errorf("%w: PAUSE_THRESHOLD (%.2f) deve ser maior que REACTIVATE_THRESHOLD (%.2f)",
			ErrInvalidConfig, params.PauseThreshold, params.ReactivateThreshold)
	}

	if params.MinConsecutivePeriods < 1 {
		return nil, fmt.Errorf("%w: MIN_CONSECUTIVE_PERIODS deve ser ao menos 1", ErrInvalidConfig)
	}

	return &CampaignStateRule{params: params}, nil
}

// Evaluate decide a transição de estado de uma campanha. periodMetrics traz
// as métricas por período da janela, do mais antigo para o mais recente, e
// alimenta a contagem de períodos consecutivos saudáveis.
func (r *CampaignStateRule) Evaluate(campaign domain.Campaign, window domain.Metrics, periodMetrics []domain.Metrics) *domain.MutationIntent {
	acos := window.Acos()

	switch campaign.State {
	case domain.EntityStateEnabled:
		if acos > r.params.PauseThreshold && window.Cost > r.params.MinSpendForDecision {
			return &domain.MutationIntent{
				EntityID:   campaign.ID,
				EntityType: domain.EntityTypeCampaign,
				Action:     domain.ActionTypeCampaignPause,
				Field:      domain.MutationFieldState,
				OldValue:   string(domain.EntityStateEnabled),
				NewValue:   string(domain.EntityStatePaused),
				Reason: fmt.Sprintf("ACOS %.2f acima do limiar de pausa %.2f com gasto %.2f",
					acos, r.params.PauseThreshold, window.Cost),
				Confidence: 1.0,
			}
		}
	case domain.EntityStatePaused:
		streak := r.healthyStreak(periodMetrics)
		if streak >= r.params.MinConsecutivePeriods {
			return &domain.MutationIntent{
				EntityID:   campaign.ID,
				EntityType: domain.EntityTypeCampaign,
				Action:     domain.ActionTypeCampaignActivate,
				Field:      domain.MutationFieldState,
				OldValue:   string(domain.EntityStatePaused),
				NewValue:   string(domain.EntityStateEnabled),
				Reason: fmt.Sprintf("ACOS abaixo do limiar de reativação %.2f por %d períodos consecutivos",
					r.params.ReactivateThreshold, streak),
				Confidence: 1.0,
			}
		}
	}

	return nil
}

// healthyStreak conta, do período mais recente para trás, quantos períodos
// consecutivos fecharam com ACOS abaixo do limiar de reativação. Períodos sem
// gasto contam como saudáveis.
func (r *CampaignStateRule) healthyStreak(periodMetrics []domain.Metrics) int {
	streak := 0

	for i := len(periodMetrics) - 1; i >= 0; i-- {
		m := periodMetrics[i]
		if m.Cost > 0 && m.Acos() >= r.params.ReactivateThreshold {
			break
		}

		streak++
	}

	return streak
}
