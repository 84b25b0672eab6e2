package optimizing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ppc-optimizer-api/internal/domain"
)

func defaultDiscoveryParams() KeywordDiscoveryParams {
	return KeywordDiscoveryParams{
		MinClicks:      10,
		MinConversions: 2,
		InitialBid:     0.75,
	}
}

func TestNewKeywordDiscovery_LanceInicialInvalido(t *testing.T) {
	_, err := NewKeywordDiscovery(KeywordDiscoveryParams{InitialBid: 0})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestKeywordDiscovery_Propose(t *testing.T) {
	existing := []domain.Keyword{
		{
			ID:        "KW001",
			AdGroupID: "AG001",
			Text:      "armação de óculos",
			MatchType: domain.MatchTypeExact,
		},
	}

	terms := []SearchTermStat{
		{
			// Cruza os limiares e não existe: deve virar proposta.
			AdGroupID:  "AG001",
			CampaignID: "CP001",
			Term:       "óculos de grau feminino",
			Metrics:    domain.Metrics{Clicks: 15, Orders: 3, Sales: 90.00},
		},
		{
			// Já existe como keyword exata no mesmo grupo de anúncio.
			AdGroupID:  "AG001",
			CampaignID: "CP001",
			Term:       "Armação de Óculos",
			Metrics:    domain.Metrics{Clicks: 20, Orders: 5, Sales: 150.00},
		},
		{
			// Cliques insuficientes.
			AdGroupID:  "AG001",
			CampaignID: "CP001",
			Term:       "lentes de contato",
			Metrics:    domain.Metrics{Clicks: 4, Orders: 3, Sales: 60.00},
		},
		{
			// Conversões insuficientes.
			AdGroupID:  "AG001",
			CampaignID: "CP001",
			Term:       "estojo para óculos",
			Metrics:    domain.Metrics{Clicks: 25, Orders: 1, Sales: 20.00},
		},
		{
			// Mesmo termo em outro grupo de anúncio não colide.
			AdGroupID:  "AG002",
			CampaignID: "CP001",
			Term:       "armação de óculos",
			Metrics:    domain.Metrics{Clicks: 12, Orders: 2, Sales: 80.00},
		},
	}

	discovery, err := NewKeywordDiscovery(defaultDiscoveryParams())
	require.NoError(t, err)

	intents := discovery.Propose(terms, existing)
	require.Len(t, intents, 2)

	assert.Equal(t, "óculos de grau feminino", intents[0].Payload["keywordText"])
	assert.Equal(t, "AG001", intents[0].Payload["adGroupId"])
	assert.Equal(t, string(domain.MatchTypeExact), intents[0].Payload["matchType"])
	assert.Equal(t, 0.75, intents[0].Payload["bid"])
	assert.Equal(t, domain.ActionTypeKeywordCreate, intents[0].Action)

	assert.Equal(t, "AG002", intents[1].Payload["adGroupId"])
}

func TestKeywordDiscovery_Propose_DedupDentroDoRun(t *testing.T) {
	discovery, err := NewKeywordDiscovery(defaultDiscoveryParams())
	require.NoError(t, err)

	// O relatório pode repetir o termo em linhas distintas; só a primeira
	// ocorrência deve virar proposta.
	terms := []SearchTermStat{
		{AdGroupID: "AG001", Term: "óculos redondo", Metrics: domain.Metrics{Clicks: 12, Orders: 2}},
		{AdGroupID: "AG001", Term: "Óculos Redondo", Metrics: domain.Metrics{Clicks: 18, Orders: 4}},
	}

	intents := discovery.Propose(terms, nil)
	assert.Len(t, intents, 1)
}
