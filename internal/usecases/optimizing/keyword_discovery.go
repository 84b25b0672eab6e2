package optimizing

import (
	"fmt"
	"strings"

	"github.com/vfg2006/ppc-optimizer-api/internal/domain"
)

// SearchTermStat agrega as métricas de um termo de busca no relatório da
// janela de análise.
type SearchTermStat struct {
	AdGroupID  string
	CampaignID string
	Term       string
	Metrics    domain.Metrics
}

// KeywordDiscoveryParams concentra os limiares de promoção de termos de busca.
type KeywordDiscoveryParams struct {
	MinClicks      int
	MinConversions int
	InitialBid     float64
}

// KeywordDiscovery propõe keywords exatas para termos de busca que converteram
// acima dos limiares e ainda não existem na conta.
type KeywordDiscovery struct {
	params KeywordDiscoveryParams
}

func NewKeywordDiscovery(params KeywordDiscoveryParams) (*KeywordDiscovery, error) {
	if params.InitialBid <= 0 {
		return nil, fmt.Errorf("%w: DISCOVERY_INITIAL_BID deve ser positivo", ErrInvalidConfig)
	}

	return &KeywordDiscovery{params: params}, nil
}

// keywordIndex indexa as keywords existentes por (adGroupID, texto, matchType)
// para dedup em O(1) por candidato.
type keywordIndex map[string]struct{}

func indexKey(adGroupID, text string, matchType domain.MatchType) string {
	return adGroupID + "|" + strings.ToLower(strings.TrimSpace(text)) + "|" + string(matchType)
}

func buildKeywordIndex(existing []domain.Keyword) keywordIndex {
	idx := make(keywordIndex, len(existing))
	for _, kw := range existing {
		idx[indexKey(kw.AdGroupID, kw.Text, kw.MatchType)] = struct{}{}
	}

	return idx
}

// Propose retorna intenções de criação de keyword exata para os termos que
// cruzaram os limiares de cliques e conversões e não colidem com keywords
// existentes do mesmo grupo de anúncio.
func (d *KeywordDiscovery) Propose(terms []SearchTermStat, existing []domain.Keyword) []domain.MutationIntent {
	idx := buildKeywordIndex(existing)

	intents := make([]domain.MutationIntent, 0)

	for _, term := range terms {
		if term.Metrics.Clicks < d.params.MinClicks || term.Metrics.Orders < d.params.MinConversions {
			continue
		}

		key := indexKey(term.AdGroupID, term.Term, domain.MatchTypeExact)
		if _, exists := idx[key]; exists {
			continue
		}

		// Marca o termo no índice para não propor duplicado dentro do
		// mesmo run quando o relatório repete o termo em linhas distintas.
		idx[key] = struct{}{}

		intents = append(intents, domain.MutationIntent{
			EntityID:   term.Term,
			EntityType: domain.EntityTypeKeyword,
			Action:     domain.ActionTypeKeywordCreate,
			Field:      domain.MutationFieldState,
			NewValue:   term.Term,
			Reason: fmt.Sprintf("termo de busca com %d cliques e %d conversões na janela de análise",
				term.Metrics.Clicks, term.Metrics.Orders),
			Confidence: confidenceFor(term.Metrics.Clicks, d.params.MinClicks),
			Payload: map[string]any{
				"adGroupId":   term.AdGroupID,
				"campaignId":  term.CampaignID,
				"keywordText": strings.TrimSpace(term.Term),
				"matchType":   string(domain.MatchTypeExact),
				"bid":         d.params.InitialBid,
			},
		})
	}

	return intents
}
