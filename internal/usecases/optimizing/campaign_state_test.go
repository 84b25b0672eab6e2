package optimizing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ppc-optimizer-api/internal/domain"
)

func defaultCampaignParams() CampaignStateParams {
	return CampaignStateParams{
		PauseThreshold:        0.80,
		ReactivateThreshold:   0.40,
		MinSpendForDecision:   10.00,
		MinConsecutivePeriods: 3,
	}
}

func TestNewCampaignStateRule_ValidacaoDeParametros(t *testing.T) {
	params := defaultCampaignParams()
	params.PauseThreshold = 0.30
	_, err := NewCampaignStateRule(params)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	params = defaultCampaignParams()
	params.MinConsecutivePeriods = 0
	_, err = NewCampaignStateRule(params)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestCampaignStateRule_Evaluate_Pausa(t *testing.T) {
	tests := []struct {
		name     string
		campaign domain.Campaign
		window   domain.Metrics
		wantNil  bool
	}{
		{
			name:     "ACOS acima do limiar com gasto relevante pausa a campanha",
			campaign: domain.Campaign{ID: "CP001", State: domain.EntityStateEnabled},
			window:   domain.Metrics{Cost: 50.00, Sales: 40.00},
			wantNil:  false,
		},
		{
			name:     "gasto abaixo do mínimo não decide mesmo com ACOS ruim",
			campaign: domain.Campaign{ID: "CP002", State: domain.EntityStateEnabled},
			window:   domain.Metrics{Cost: 5.00, Sales: 2.00},
			wantNil:  true,
		},
		{
			name:     "ACOS saudável mantém a campanha ativa",
			campaign: domain.Campaign{ID: "CP003", State: domain.EntityStateEnabled},
			window:   domain.Metrics{Cost: 30.00, Sales: 100.00},
			wantNil:  true,
		},
		{
			name:     "gasto sem nenhuma venda pausa (ACOS infinito)",
			campaign: domain.Campaign{ID: "CP004", State: domain.EntityStateEnabled},
			window:   domain.Metrics{Cost: 25.00, Sales: 0},
			wantNil:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, err := NewCampaignStateRule(defaultCampaignParams())
			require.NoError(t, err)

			intent := rule.Evaluate(tt.campaign, tt.window, nil)

			if tt.wantNil {
				assert.Nil(t, intent)
				return
			}

			require.NotNil(t, intent)
			assert.Equal(t, domain.ActionTypeCampaignPause, intent.Action)
			assert.Equal(t, string(domain.EntityStatePaused), intent.NewValue)
		})
	}
}

func TestCampaignStateRule_Evaluate_Reativacao(t *testing.T) {
	saudavel := domain.Metrics{Cost: 10.00, Sales: 50.00} // ACOS 0.20
	ruim := domain.Metrics{Cost: 30.00, Sales: 50.00}     // ACOS 0.60
	semGasto := domain.Metrics{}

	tests := []struct {
		name    string
		periods []domain.Metrics
		wantNil bool
	}{
		{
			name:    "períodos saudáveis consecutivos reativam",
			periods: []domain.Metrics{ruim, saudavel, saudavel, saudavel},
			wantNil: false,
		},
		{
			name:    "sequência insuficiente mantém pausada",
			periods: []domain.Metrics{saudavel, ruim, saudavel, saudavel},
			wantNil: true,
		},
		{
			name:    "período ruim mais recente zera a contagem",
			periods: []domain.Metrics{saudavel, saudavel, saudavel, ruim},
			wantNil: true,
		},
		{
			name:    "períodos sem gasto contam como saudáveis",
			periods: []domain.Metrics{ruim, semGasto, saudavel, semGasto},
			wantNil: false,
		},
		{
			name:    "sem histórico não reativa",
			periods: nil,
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, err := NewCampaignStateRule(defaultCampaignParams())
			require.NoError(t, err)

			campaign := domain.Campaign{ID: "CP010", State: domain.EntityStatePaused}
			intent := rule.Evaluate(campaign, domain.Metrics{}, tt.periods)

			if tt.wantNil {
				assert.Nil(t, intent)
				return
			}

			require.NotNil(t, intent)
			assert.Equal(t, domain.ActionTypeCampaignActivate, intent.Action)
			assert.Equal(t, string(domain.EntityStateEnabled), intent.NewValue)
		})
	}
}

func TestCampaignStateRule_Evaluate_EstadoArquivadoIgnorado(t *testing.T) {
	rule, err := NewCampaignStateRule(defaultCampaignParams())
	require.NoError(t, err)

	campaign := domain.Campaign{ID: "CP020", State: domain.EntityStateArchived}
	assert.Nil(t, rule.Evaluate(campaign, domain.Metrics{Cost: 100.00, Sales: 1.00}, nil))
}
