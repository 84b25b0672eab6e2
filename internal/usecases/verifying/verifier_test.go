package verifying

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/ppc-optimizer-api/infrastructure/integrator/amazon/adsclient/mocks"
	"github.com/vfg2006/ppc-optimizer-api/internal/config"
	"github.com/vfg2006/ppc-optimizer-api/internal/domain"
	"github.com/vfg2006/ppc-optimizer-api/pkg/log"
)

type fakeAuditSink struct {
	records []domain.AuditRecord
}

func (f *fakeAuditSink) Log(record domain.AuditRecord) {
	f.records = append(f.records, record)
}

func verifierTestConfig() *config.Config {
	return &config.Config{
		Optimizer: config.Optimizer{
			TargetAcos:             0.30,
			Tolerance:              0.10,
			MinBid:                 0.10,
			MaxBid:                 5.00,
			MaxBidStep:             0.25,
			MinClicks:              10,
			PauseThreshold:         0.80,
			ReactivateThreshold:    0.40,
			BatchSize:              100,
			LookbackDays:           30,
			VerifierSampleSize:     10,
			VerifierTimeoutSeconds: 5,
		},
		RateLimit: config.RateLimit{
			MaxRequestsPerSecond: 10,
		},
	}
}

func healthyCampaigns() []domain.Campaign {
	return []domain.Campaign{
		{ID: "C001", Name: "Campanha A", State: domain.EntityStateEnabled},
		{ID: "C002", Name: "Campanha B", State: domain.EntityStatePaused},
	}
}

func TestVerifierRun_TodasAsVerificacoesPassam(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockClient(ctrl)
	client.EXPECT().GetCampaigns(gomock.Any(), false).Return(healthyCampaigns(), nil)
	client.EXPECT().GetCampaigns(gomock.Any(), true).Return(healthyCampaigns(), nil)
	client.EXPECT().GetKeywords(gomock.Any(), true).Return([]domain.Keyword{
		{ID: "K001", Bid: 0.75},
		{ID: "K002", Bid: 1.20},
	}, nil)

	verifier := NewVerifier(verifierTestConfig(), client, log.L)
	audit := &fakeAuditSink{}

	report, err := verifier.Run(context.Background(), audit)

	require.NoError(t, err)
	require.NotNil(t, report)
	assert.True(t, report.Passed)
	assert.Empty(t, report.Warnings)
	require.Len(t, report.Checks, 4)

	assert.Equal(t, "configuracao", report.Checks[0].Name)
	assert.Equal(t, "conectividade", report.Checks[1].Name)
	assert.Equal(t, "integridade_de_dados", report.Checks[2].Name)
	assert.Equal(t, "sanidade_de_lances", report.Checks[3].Name)

	for _, check := range report.Checks {
		assert.Equal(t, CheckStatusPassed, check.Status, check.Name)
	}

	require.Len(t, audit.records, 4)
	for i, record := range audit.records {
		assert.Equal(t, domain.ActionTypeVerificationCheck, record.ActionType)
		assert.Equal(t, report.Checks[i].Name, record.EntityID)
		assert.Equal(t, string(CheckStatusPassed), record.NewValue)
	}
}

func TestVerifierRun_FalhaDeConectividade(t *testing.T) {
	tests := []struct {
		name                 string
		failOnCriticalErrors bool
		wantErr              bool
	}{
		{
			name:                 "aborta quando falhas críticas são fatais",
			failOnCriticalErrors: true,
			wantErr:              true,
		},
		{
			name:                 "degrada para aviso quando falhas críticas não são fatais",
			failOnCriticalErrors: false,
			wantErr:              false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			client := mocks.NewMockClient(ctrl)
			client.EXPECT().GetCampaigns(gomock.Any(), false).
				Return(nil, errors.New("connection refused"))
			client.EXPECT().GetCampaigns(gomock.Any(), true).
				Return(nil, errors.New("connection refused"))
			client.EXPECT().GetKeywords(gomock.Any(), true).
				Return(nil, errors.New("connection refused"))

			cfg := verifierTestConfig()
			cfg.Optimizer.FailOnCriticalErrors = tt.failOnCriticalErrors

			verifier := NewVerifier(cfg, client, log.L)

			report, err := verifier.Run(context.Background(), nil)

			require.NotNil(t, report)
			assert.False(t, report.Passed)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "conectividade")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestVerifierRun_ConfiguracaoInvalida(t *testing.T) {
	tests := []struct {
		name                 string
		failOnCriticalErrors bool
	}{
		{name: "aborta com falhas críticas fatais", failOnCriticalErrors: true},
		{name: "aborta mesmo com falhas críticas não fatais", failOnCriticalErrors: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			client := mocks.NewMockClient(ctrl)
			client.EXPECT().GetCampaigns(gomock.Any(), false).Return(healthyCampaigns(), nil)
			client.EXPECT().GetCampaigns(gomock.Any(), true).Return(healthyCampaigns(), nil)
			client.EXPECT().GetKeywords(gomock.Any(), true).Return(nil, nil)

			cfg := verifierTestConfig()
			cfg.Optimizer.TargetAcos = 1.50
			cfg.Optimizer.MaxBid = 0.05
			cfg.Optimizer.FailOnCriticalErrors = tt.failOnCriticalErrors

			verifier := NewVerifier(cfg, client, log.L)

			report, err := verifier.Run(context.Background(), nil)

			require.Error(t, err)
			assert.Contains(t, err.Error(), "configuracao")
			require.NotNil(t, report)
			assert.False(t, report.Passed)
			assert.Equal(t, CheckStatusFailed, report.Checks[0].Status)
			assert.Contains(t, report.Checks[0].Detail, "TARGET_ACOS")
			assert.Contains(t, report.Checks[0].Detail, "limites de lance inconsistentes")
		})
	}
}

func TestVerifierRun_JanelaDeDaypartingInvalida(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockClient(ctrl)
	client.EXPECT().GetCampaigns(gomock.Any(), false).Return(healthyCampaigns(), nil)
	client.EXPECT().GetCampaigns(gomock.Any(), true).Return(healthyCampaigns(), nil)
	client.EXPECT().GetKeywords(gomock.Any(), true).Return(nil, nil)

	cfg := verifierTestConfig()
	cfg.Dayparting = config.Dayparting{
		Enabled:       true,
		Timezone:      "America/Sao_Paulo",
		MinMultiplier: 0.10,
		MaxMultiplier: 2.00,
		Windows:       []string{"SEGUNDA:08-12:0.50"},
	}

	verifier := NewVerifier(cfg, client, log.L)

	report, err := verifier.Run(context.Background(), nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuracao")
	assert.False(t, report.Passed)
	assert.Equal(t, CheckStatusFailed, report.Checks[0].Status)
}

func TestVerifierRun_IntegridadeDeDadosComprometida(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	broken := []domain.Campaign{
		{ID: "C001", Name: "Campanha A", State: domain.EntityStateEnabled},
		{ID: "C002", Name: "", State: domain.EntityStateEnabled},
		{ID: "", Name: "Campanha C", State: domain.EntityStatePaused},
	}

	client := mocks.NewMockClient(ctrl)
	client.EXPECT().GetCampaigns(gomock.Any(), false).Return(broken, nil)
	client.EXPECT().GetCampaigns(gomock.Any(), true).Return(broken, nil)
	client.EXPECT().GetKeywords(gomock.Any(), true).Return(nil, nil)

	verifier := NewVerifier(verifierTestConfig(), client, log.L)

	report, err := verifier.Run(context.Background(), nil)

	require.NoError(t, err)
	assert.False(t, report.Passed)
	assert.Equal(t, CheckStatusFailed, report.Checks[2].Status)
	assert.Contains(t, report.Checks[2].Detail, "2 de 3 campanhas")
}

func TestVerifierRun_LancesForaDosLimitesViramAviso(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockClient(ctrl)
	client.EXPECT().GetCampaigns(gomock.Any(), false).Return(healthyCampaigns(), nil)
	client.EXPECT().GetCampaigns(gomock.Any(), true).Return(healthyCampaigns(), nil)
	client.EXPECT().GetKeywords(gomock.Any(), true).Return([]domain.Keyword{
		{ID: "K001", Bid: 0.05},
		{ID: "K002", Bid: 7.50},
		{ID: "K003", Bid: 1.00},
		{ID: "K004", Bid: 0},
	}, nil)

	verifier := NewVerifier(verifierTestConfig(), client, log.L)

	report, err := verifier.Run(context.Background(), nil)

	require.NoError(t, err)
	assert.True(t, report.Passed)
	assert.Equal(t, CheckStatusWarning, report.Checks[3].Status)
	assert.Contains(t, report.Checks[3].Detail, "2 keywords com lance fora de")
	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0], "sanidade_de_lances")
}
