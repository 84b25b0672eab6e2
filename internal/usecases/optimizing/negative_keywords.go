package optimizing

import (
	"fmt"
	"strings"

	"github.com/vfg2006/ppc-optimizer-api/internal/domain"
)

// NegativeKeywordParams concentra os limiares de negativação de termos.
type NegativeKeywordParams struct {
	MinClicksForNegative int
}

// NegativeKeywordRule propõe negativação exata de termos de busca que gastam
// cliques sem gerar nenhuma venda na janela de análise.
type NegativeKeywordRule struct {
	params NegativeKeywordParams
}

func NewNegativeKeywordRule(params NegativeKeywordParams) (*NegativeKeywordRule, error) {
	if params.MinClicksForNegative <= 0 {
		return nil, fmt.Errorf("%w: MIN_CLICKS_FOR_NEGATIVE deve ser positivo", ErrInvalidConfig)
	}

	return &NegativeKeywordRule{params: params}, nil
}

// Propose retorna intenções de negativação para termos com cliques acima do
// limiar e zero vendas, deduplicadas contra as negativas existentes.
func (r *NegativeKeywordRule) Propose(terms []SearchTermStat, existing []domain.NegativeKeyword) []domain.MutationIntent {
	idx := make(map[string]struct{}, len(existing))
	for _, neg := range existing {
		idx[indexKey(neg.AdGroupID, neg.Text, neg.MatchType)] = struct{}{}
	}

	intents := make([]domain.MutationIntent, 0)

	for _, term := range terms {
		if term.Metrics.Clicks < r.params.MinClicksForNegative || term.Metrics.Sales > 0 {
			continue
		}

		key := indexKey(term.AdGroupID, term.Term, domain.MatchTypeNegativeExact)
		if _, exists := idx[key]; exists {
			continue
		}

		idx[key] = struct{}{}

		intents = append(intents, domain.MutationIntent{
			EntityID:   term.Term,
			EntityType: domain.EntityTypeNegativeKeyword,
			Action:     domain.ActionTypeNegativeKeywordAdd,
			Field:      domain.MutationFieldState,
			NewValue:   term.Term,
			Reason: fmt.Sprintf("termo de busca com %d cliques e nenhuma venda na janela de análise",
				term.Metrics.Clicks),
			Confidence: confidenceFor(term.Metrics.Clicks, r.params.MinClicksForNegative),
			Payload: map[string]any{
				"adGroupId":   term.AdGroupID,
				"campaignId":  term.CampaignID,
				"keywordText": strings.TrimSpace(term.Term),
				"matchType":   string(domain.MatchTypeNegativeExact),
			},
		})
	}

	return intents
}
