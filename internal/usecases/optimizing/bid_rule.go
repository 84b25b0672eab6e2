package optimizing

import (
	"fmt"
	"math"

	"github.com/vfg2006/ppc-optimizer-api/internal/domain"
	"github.com/vfg2006/ppc-optimizer-api/pkg/utils"
)

// BidRuleParams concentra os limites e fatores usados no cálculo de lances.
type BidRuleParams struct {
	TargetAcos    float64
	AcosTolerance float64
	MinBid        float64
	MaxBid        float64
	MaxBidStep    float64
	StepFactor    float64
	MinClicks     int
}

// BidRule decide ajustes de lance por keyword a partir das métricas agregadas
// da janela de análise.
type BidRule struct {
	params BidRuleParams
}

func NewBidRule(params BidRuleParams) (*BidRule, error) {
	if params.TargetAcos <= 0 {
		return nil, fmt.Errorf("%w: TARGET_ACOS deve ser positivo", ErrInvalidConfig)
	}

	if params.MinBid <= 0 || params.MaxBid <= params.MinBid {
		return nil, fmt.Errorf("%w: limites de lance inconsistentes (min=%.2f, max=%.2f)",
			ErrInvalidConfig, params.MinBid, params.MaxBid)
	}

	if params.MaxBidStep <= 0 || params.MaxBidStep >= 1 {
		return nil, fmt.Errorf("%w: MAX_BID_STEP deve estar em (0, 1)", ErrInvalidConfig)
	}

	return &BidRule{params: params}, nil
}

// Evaluate computa a intenção de ajuste para uma keyword. Retorna nil quando
// nenhuma mudança é necessária: sinal insuficiente, ACOS dentro da banda de
// tolerância ou clamp que colapsa o lance novo no antigo. O multiplicador de
// dayparting escala o lance final; fora de janela configurada vale 1.0.
func (r *BidRule) Evaluate(kw domain.Keyword, metrics domain.Metrics, multiplier float64) (*domain.MutationIntent, error) {
	if kw.Bid <= 0 {
		return nil, nil
	}

	// Sinal insuficiente suprime qualquer ação, independente do ACOS.
	if metrics.Clicks < r.params.MinClicks {
		return nil, nil
	}

	acos := metrics.Acos()
	upperBand := r.params.TargetAcos * (1 + r.params.AcosTolerance)
	lowerBand := r.params.TargetAcos * (1 - r.params.AcosTolerance)

	overTarget := acos > upperBand
	underTarget := acos < lowerBand && !math.IsInf(acos, 1)

	var newBid float64
	var reason string

	switch {
	// Redução tem precedência quando as duas condições coincidirem por ruído.
	case overTarget:
		step := r.stepFor(acos)
		newBid = kw.Bid * (1 - step)
		reason = fmt.Sprintf("ACOS %.2f acima da banda alvo %.2f, reduzindo lance em %.0f%%",
			acos, upperBand, step*100)
	case underTarget:
		step := r.stepFor(acos)
		newBid = kw.Bid * (1 + step)
		reason = fmt.Sprintf("ACOS %.2f abaixo da banda alvo %.2f, aumentando lance em %.0f%%",
			acos, lowerBand, step*100)
	default:
		return nil, nil
	}

	newBid = utils.RoundWithTwoDecimalPlace(clamp(newBid*multiplier, r.params.MinBid, r.params.MaxBid))

	if newBid < r.params.MinBid || newBid > r.params.MaxBid {
		return nil, &InvalidBidError{
			EntityID: kw.ID,
			Bid:      newBid,
			MinBid:   r.params.MinBid,
			MaxBid:   r.params.MaxBid,
		}
	}

	if newBid == kw.Bid {
		return nil, nil
	}

	return &domain.MutationIntent{
		EntityID:   kw.ID,
		EntityType: domain.EntityTypeKeyword,
		Action:     domain.ActionTypeBidUpdate,
		Field:      domain.MutationFieldBid,
		OldValue:   fmt.Sprintf("%.2f", kw.Bid),
		NewValue:   fmt.Sprintf("%.2f", newBid),
		Reason:     reason,
		Confidence: confidenceFor(metrics.Clicks, r.params.MinClicks),
		Payload: map[string]any{
			"bid":        newBid,
			"adGroupId":  kw.AdGroupID,
			"campaignId": kw.CampaignID,
		},
	}, nil
}

// stepFor retorna o passo proporcional ao desvio do ACOS em relação ao alvo,
// limitado por MaxBidStep.
func (r *BidRule) stepFor(acos float64) float64 {
	excessRatio := math.Abs(acos-r.params.TargetAcos) / r.params.TargetAcos
	return math.Min(r.params.MaxBidStep, excessRatio*r.params.StepFactor)
}

func confidenceFor(clicks, minClicks int) float64 {
	if minClicks <= 0 {
		return 1.0
	}

	return math.Min(1.0, float64(clicks)/float64(minClicks*3))
}

func clamp(v, low, high float64) float64 {
	return math.Max(low, math.Min(high, v))
}
