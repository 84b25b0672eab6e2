package optimizing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ppc-optimizer-api/internal/domain"
)

func defaultBidParams() BidRuleParams {
	return BidRuleParams{
		TargetAcos:    0.30,
		AcosTolerance: 0.10,
		MinBid:        0.10,
		MaxBid:        5.00,
		MaxBidStep:    0.25,
		StepFactor:    0.50,
		MinClicks:     10,
	}
}

func TestNewBidRule_ValidacaoDeParametros(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *BidRuleParams)
	}{
		{
			name:   "ACOS alvo zerado",
			mutate: func(p *BidRuleParams) { p.TargetAcos = 0 },
		},
		{
			name:   "lance mínimo não positivo",
			mutate: func(p *BidRuleParams) { p.MinBid = 0 },
		},
		{
			name:   "lance máximo menor que o mínimo",
			mutate: func(p *BidRuleParams) { p.MaxBid = 0.05 },
		},
		{
			name:   "passo máximo fora de (0, 1)",
			mutate: func(p *BidRuleParams) { p.MaxBidStep = 1.0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := defaultBidParams()
			tt.mutate(&params)

			_, err := NewBidRule(params)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestBidRule_Evaluate(t *testing.T) {
	keyword := domain.Keyword{
		ID:         "KW001",
		AdGroupID:  "AG001",
		CampaignID: "CP001",
		Text:       "óculos de sol",
		MatchType:  domain.MatchTypeExact,
		State:      domain.EntityStateEnabled,
		Bid:        1.00,
	}

	tests := []struct {
		name       string
		metrics    domain.Metrics
		multiplier float64
		wantNil    bool
		wantNewBid string
		wantAction domain.ActionType
	}{
		{
			name: "ACOS acima da banda reduz o lance limitado pelo passo máximo",
			// ACOS 0.50 com alvo 0.30: desvio de 66% vira passo de 25%.
			metrics:    domain.Metrics{Clicks: 30, Cost: 15.00, Sales: 30.00, Orders: 3},
			multiplier: 1.0,
			wantNewBid: "0.75",
			wantAction: domain.ActionTypeBidUpdate,
		},
		{
			name: "ACOS abaixo da banda aumenta o lance proporcionalmente",
			// ACOS 0.15: desvio de 50% com fator 0.5 vira passo de 25%.
			metrics:    domain.Metrics{Clicks: 30, Cost: 4.50, Sales: 30.00, Orders: 3},
			multiplier: 1.0,
			wantNewBid: "1.25",
			wantAction: domain.ActionTypeBidUpdate,
		},
		{
			name:       "cliques abaixo do mínimo suprimem a ação mesmo com ACOS ruim",
			metrics:    domain.Metrics{Clicks: 2, Cost: 5.00, Sales: 1.00, Orders: 1},
			multiplier: 1.0,
			wantNil:    true,
		},
		{
			name:       "ACOS dentro da banda de tolerância não gera intenção",
			metrics:    domain.Metrics{Clicks: 30, Cost: 9.00, Sales: 30.00, Orders: 3},
			multiplier: 1.0,
			wantNil:    true,
		},
		{
			name:       "gasto sem nenhuma venda reduz no passo máximo",
			metrics:    domain.Metrics{Clicks: 25, Cost: 12.00, Sales: 0, Orders: 0},
			multiplier: 1.0,
			wantNewBid: "0.75",
			wantAction: domain.ActionTypeBidUpdate,
		},
		{
			name:       "multiplicador de dayparting escala o lance final",
			metrics:    domain.Metrics{Clicks: 30, Cost: 15.00, Sales: 30.00, Orders: 3},
			multiplier: 0.60,
			wantNewBid: "0.45",
			wantAction: domain.ActionTypeBidUpdate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, err := NewBidRule(defaultBidParams())
			require.NoError(t, err)

			intent, err := rule.Evaluate(keyword, tt.metrics, tt.multiplier)
			require.NoError(t, err)

			if tt.wantNil {
				assert.Nil(t, intent)
				return
			}

			require.NotNil(t, intent)
			assert.Equal(t, keyword.ID, intent.EntityID)
			assert.Equal(t, tt.wantAction, intent.Action)
			assert.Equal(t, domain.MutationFieldBid, intent.Field)
			assert.Equal(t, "1.00", intent.OldValue)
			assert.Equal(t, tt.wantNewBid, intent.NewValue)
			assert.Equal(t, keyword.AdGroupID, intent.Payload["adGroupId"])
		})
	}
}

func TestBidRule_Evaluate_ClampNoLimiteInferior(t *testing.T) {
	rule, err := NewBidRule(defaultBidParams())
	require.NoError(t, err)

	// Lance já no piso: a redução colapsa no próprio lance e nada muda.
	keyword := domain.Keyword{ID: "KW010", Bid: 0.10, State: domain.EntityStateEnabled}
	metrics := domain.Metrics{Clicks: 40, Cost: 20.00, Sales: 10.00, Orders: 1}

	intent, err := rule.Evaluate(keyword, metrics, 1.0)
	require.NoError(t, err)
	assert.Nil(t, intent)
}

func TestBidRule_Evaluate_LanceZeradoIgnorado(t *testing.T) {
	rule, err := NewBidRule(defaultBidParams())
	require.NoError(t, err)

	intent, err := rule.Evaluate(domain.Keyword{ID: "KW011", Bid: 0}, domain.Metrics{Clicks: 50}, 1.0)
	require.NoError(t, err)
	assert.Nil(t, intent)
}

func TestBidRule_Evaluate_ConfiancaCresceComCliques(t *testing.T) {
	rule, err := NewBidRule(defaultBidParams())
	require.NoError(t, err)

	keyword := domain.Keyword{ID: "KW012", Bid: 1.00, State: domain.EntityStateEnabled}

	poucos, err := rule.Evaluate(keyword, domain.Metrics{Clicks: 12, Cost: 10.00, Sales: 10.00, Orders: 1}, 1.0)
	require.NoError(t, err)
	require.NotNil(t, poucos)

	muitos, err := rule.Evaluate(keyword, domain.Metrics{Clicks: 60, Cost: 50.00, Sales: 50.00, Orders: 5}, 1.0)
	require.NoError(t, err)
	require.NotNil(t, muitos)

	assert.Less(t, poucos.Confidence, muitos.Confidence)
	assert.Equal(t, 1.0, muitos.Confidence)
}
