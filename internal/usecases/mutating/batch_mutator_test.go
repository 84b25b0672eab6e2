package mutating

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ppc-optimizer-api/infrastructure/integrator/amazon/adsclient"
	amazondomain "github.com/vfg2006/ppc-optimizer-api/infrastructure/integrator/amazon/domain"
	"github.com/vfg2006/ppc-optimizer-api/internal/domain"
	"github.com/vfg2006/ppc-optimizer-api/pkg/log"
)

// fakeAdsClient implementa adsclient.Client registrando as chamadas de
// mutação recebidas, com falha de transporte programável por lote.
type fakeAdsClient struct {
	keywordUpdateCalls  [][]amazondomain.KeywordUpdate
	campaignUpdateCalls [][]amazondomain.CampaignUpdate
	keywordCreateCalls  [][]amazondomain.KeywordCreate
	negativeCreateCalls [][]amazondomain.NegativeKeywordCreate
	invalidations       []domain.EntityType

	// failKeywordUpdateCall indica qual chamada de UpdateKeywords (1-based)
	// deve falhar no transporte; zero desabilita.
	failKeywordUpdateCall int

	// rejectKeywordID marca um item específico como rejeitado pela
	// plataforma na resposta por item.
	rejectKeywordID int64

	// cancelOnKeywordUpdateCall cancela o contexto do run durante a chamada
	// de UpdateKeywords indicada (1-based); zero desabilita.
	cancelOnKeywordUpdateCall int
	cancel                    context.CancelFunc
}

func (f *fakeAdsClient) GetCampaigns(ctx context.Context, useCache bool) ([]domain.Campaign, error) {
	return nil, nil
}

func (f *fakeAdsClient) GetAdGroups(ctx context.Context, useCache bool) ([]domain.AdGroup, error) {
	return nil, nil
}

func (f *fakeAdsClient) GetKeywords(ctx context.Context, useCache bool) ([]domain.Keyword, error) {
	return nil, nil
}

func (f *fakeAdsClient) GetNegativeKeywords(ctx context.Context, useCache bool) ([]domain.NegativeKeyword, error) {
	return nil, nil
}

func (f *fakeAdsClient) UpdateKeywords(ctx context.Context, updates []amazondomain.KeywordUpdate) ([]amazondomain.BatchItemResult, *adsclient.APIError) {
	f.keywordUpdateCalls = append(f.keywordUpdateCalls, updates)

	if f.cancelOnKeywordUpdateCall == len(f.keywordUpdateCalls) && f.cancel != nil {
		f.cancel()
	}

	if f.failKeywordUpdateCall == len(f.keywordUpdateCalls) {
		return nil, &adsclient.APIError{
			Kind:       adsclient.ErrorKindRetryable,
			StatusCode: 500,
			Message:    "erro interno da plataforma",
		}
	}

	results := make([]amazondomain.BatchItemResult, 0, len(updates))
	for _, update := range updates {
		if f.rejectKeywordID != 0 && update.KeywordID == f.rejectKeywordID {
			results = append(results, amazondomain.BatchItemResult{
				Code:        "INVALID_ARGUMENT",
				Description: "lance fora dos limites da conta",
			})
			continue
		}

		results = append(results, amazondomain.BatchItemResult{
			Code:      amazondomain.BatchItemSuccess,
			KeywordID: update.KeywordID,
		})
	}

	return results, nil
}

func (f *fakeAdsClient) UpdateCampaigns(ctx context.Context, updates []amazondomain.CampaignUpdate) ([]amazondomain.BatchItemResult, *adsclient.APIError) {
	f.campaignUpdateCalls = append(f.campaignUpdateCalls, updates)

	results := make([]amazondomain.BatchItemResult, 0, len(updates))
	for _, update := range updates {
		results = append(results, amazondomain.BatchItemResult{
			Code:       amazondomain.BatchItemSuccess,
			CampaignID: update.CampaignID,
		})
	}

	return results, nil
}

func (f *fakeAdsClient) CreateKeywords(ctx context.Context, creates []amazondomain.KeywordCreate) ([]amazondomain.BatchItemResult, *adsclient.APIError) {
	f.keywordCreateCalls = append(f.keywordCreateCalls, creates)

	results := make([]amazondomain.BatchItemResult, 0, len(creates))
	for range creates {
		results = append(results, amazondomain.BatchItemResult{Code: amazondomain.BatchItemSuccess})
	}

	return results, nil
}

func (f *fakeAdsClient) CreateNegativeKeywords(ctx context.Context, creates []amazondomain.NegativeKeywordCreate) ([]amazondomain.BatchItemResult, *adsclient.APIError) {
	f.negativeCreateCalls = append(f.negativeCreateCalls, creates)

	results := make([]amazondomain.BatchItemResult, 0, len(creates))
	for range creates {
		results = append(results, amazondomain.BatchItemResult{Code: amazondomain.BatchItemSuccess})
	}

	return results, nil
}

func (f *fakeAdsClient) CreateReport(ctx context.Context, spec domain.ReportSpec) (*domain.ReportJob, error) {
	return nil, nil
}

func (f *fakeAdsClient) GetReportStatus(ctx context.Context, job *domain.ReportJob) (*domain.ReportJob, error) {
	return nil, nil
}

func (f *fakeAdsClient) DownloadReport(ctx context.Context, job *domain.ReportJob) ([]domain.ReportRow, error) {
	return nil, nil
}

func (f *fakeAdsClient) InvalidateCache(entityType domain.EntityType) {
	f.invalidations = append(f.invalidations, entityType)
}

func bidIntent(id string, bid float64) domain.MutationIntent {
	return domain.MutationIntent{
		EntityID:   id,
		EntityType: domain.EntityTypeKeyword,
		Action:     domain.ActionTypeBidUpdate,
		Field:      domain.MutationFieldBid,
		NewValue:   fmt.Sprintf("%.2f", bid),
		Payload:    map[string]any{"bid": bid},
	}
}

func TestBatchMutator_Apply_DryRunNaoChamaRede(t *testing.T) {
	client := &fakeAdsClient{}
	mutator := NewBatchMutator(client, 100, log.L)

	intents := []domain.MutationIntent{
		bidIntent("1001", 0.80),
		bidIntent("1002", 0.95),
	}

	results := mutator.Apply(context.Background(), intents, true)
	require.Len(t, results, 2)

	for _, result := range results {
		assert.True(t, result.DryRun)
		assert.False(t, result.Applied)
		assert.Empty(t, result.Error)
	}

	assert.Empty(t, client.keywordUpdateCalls)
	assert.Empty(t, client.invalidations)
}

func TestBatchMutator_Apply_DivideEmLotes(t *testing.T) {
	client := &fakeAdsClient{}
	mutator := NewBatchMutator(client, 100, log.L)

	intents := make([]domain.MutationIntent, 0, 150)
	for i := 0; i < 150; i++ {
		intents = append(intents, bidIntent(fmt.Sprintf("%d", 1000+i), 0.80))
	}

	results := mutator.Apply(context.Background(), intents, false)
	require.Len(t, results, 150)

	require.Len(t, client.keywordUpdateCalls, 2)
	assert.Len(t, client.keywordUpdateCalls[0], 100)
	assert.Len(t, client.keywordUpdateCalls[1], 50)

	for _, result := range results {
		assert.True(t, result.Applied)
	}

	// Uma invalidação de cache por lote aplicado.
	assert.Equal(t, []domain.EntityType{domain.EntityTypeKeyword, domain.EntityTypeKeyword}, client.invalidations)
}

func TestBatchMutator_Apply_FalhaDeTransporteMarcaOLoteInteiro(t *testing.T) {
	client := &fakeAdsClient{failKeywordUpdateCall: 2}
	mutator := NewBatchMutator(client, 100, log.L)

	intents := make([]domain.MutationIntent, 0, 150)
	for i := 0; i < 150; i++ {
		intents = append(intents, bidIntent(fmt.Sprintf("%d", 1000+i), 0.80))
	}

	results := mutator.Apply(context.Background(), intents, false)
	require.Len(t, results, 150)

	applied := 0
	failed := 0
	for _, result := range results {
		if result.Applied {
			applied++
		} else {
			failed++
			assert.Contains(t, result.Error, "status 500")
		}
	}

	assert.Equal(t, 100, applied)
	assert.Equal(t, 50, failed)
}

func TestBatchMutator_Apply_ContextoExpiradoNaoIniciaLotes(t *testing.T) {
	client := &fakeAdsClient{}
	mutator := NewBatchMutator(client, 100, log.L)

	intents := make([]domain.MutationIntent, 0, 150)
	for i := 0; i < 150; i++ {
		intents = append(intents, bidIntent(fmt.Sprintf("%d", 1000+i), 0.80))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := mutator.Apply(ctx, intents, false)
	require.Len(t, results, 150)

	assert.Empty(t, client.keywordUpdateCalls, "nenhum lote é iniciado com o contexto expirado")
	assert.Empty(t, client.invalidations)

	for _, result := range results {
		assert.False(t, result.Applied)
		assert.Contains(t, result.Error, context.Canceled.Error())
	}
}

func TestBatchMutator_Apply_ExpiracaoNoMeioInterrompeOsLotesSeguintes(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := &fakeAdsClient{cancelOnKeywordUpdateCall: 1, cancel: cancel}
	mutator := NewBatchMutator(client, 100, log.L)

	intents := make([]domain.MutationIntent, 0, 250)
	for i := 0; i < 250; i++ {
		intents = append(intents, bidIntent(fmt.Sprintf("%d", 1000+i), 0.80))
	}

	results := mutator.Apply(ctx, intents, false)
	require.Len(t, results, 250)

	// O primeiro lote completa; os dois seguintes nem chegam à rede.
	require.Len(t, client.keywordUpdateCalls, 1)

	applied := 0
	failed := 0
	for _, result := range results {
		if result.Applied {
			applied++
			continue
		}
		failed++
		assert.Contains(t, result.Error, context.Canceled.Error())
	}

	assert.Equal(t, 100, applied)
	assert.Equal(t, 150, failed)
}

func TestBatchMutator_Apply_RejeicaoPorItemNaoDerrubaOLote(t *testing.T) {
	client := &fakeAdsClient{rejectKeywordID: 1002}
	mutator := NewBatchMutator(client, 100, log.L)

	intents := []domain.MutationIntent{
		bidIntent("1001", 0.80),
		bidIntent("1002", 0.95),
		bidIntent("1003", 1.10),
	}

	results := mutator.Apply(context.Background(), intents, false)
	require.Len(t, results, 3)

	assert.True(t, results[0].Applied)
	assert.False(t, results[1].Applied)
	assert.Contains(t, results[1].Error, "INVALID_ARGUMENT")
	assert.True(t, results[2].Applied)
}

func TestBatchMutator_Apply_PayloadInvalidoNaoDescartaOsDemais(t *testing.T) {
	client := &fakeAdsClient{}
	mutator := NewBatchMutator(client, 100, log.L)

	semBid := domain.MutationIntent{
		EntityID: "1002",
		Action:   domain.ActionTypeBidUpdate,
	}

	intents := []domain.MutationIntent{
		bidIntent("1001", 0.80),
		semBid,
		bidIntent("abc", 0.90), // id não numérico
		bidIntent("1003", 1.10),
	}

	results := mutator.Apply(context.Background(), intents, false)
	require.Len(t, results, 4)

	require.Len(t, client.keywordUpdateCalls, 1)
	assert.Len(t, client.keywordUpdateCalls[0], 2)

	applied := 0
	for _, result := range results {
		if result.Applied {
			applied++
		}
	}
	assert.Equal(t, 2, applied)
}

func TestBatchMutator_Apply_AgrupaPorEndpoint(t *testing.T) {
	client := &fakeAdsClient{}
	mutator := NewBatchMutator(client, 100, log.L)

	intents := []domain.MutationIntent{
		bidIntent("1001", 0.80),
		{
			EntityID: "2001",
			Action:   domain.ActionTypeCampaignPause,
			NewValue: string(domain.EntityStatePaused),
		},
		{
			EntityID: "óculos de grau",
			Action:   domain.ActionTypeKeywordCreate,
			Payload: map[string]any{
				"campaignId":  "2001",
				"adGroupId":   "3001",
				"keywordText": "óculos de grau",
				"matchType":   string(domain.MatchTypeExact),
				"bid":         0.75,
			},
		},
		{
			EntityID: "óculos grátis",
			Action:   domain.ActionTypeNegativeKeywordAdd,
			Payload: map[string]any{
				"campaignId":  "2001",
				"adGroupId":   "3001",
				"keywordText": "óculos grátis",
				"matchType":   string(domain.MatchTypeNegativeExact),
			},
		},
	}

	results := mutator.Apply(context.Background(), intents, false)
	require.Len(t, results, 4)

	require.Len(t, client.keywordUpdateCalls, 1)
	require.Len(t, client.campaignUpdateCalls, 1)
	require.Len(t, client.keywordCreateCalls, 1)
	require.Len(t, client.negativeCreateCalls, 1)

	create := client.keywordCreateCalls[0][0]
	assert.Equal(t, int64(2001), create.CampaignID)
	assert.Equal(t, int64(3001), create.AdGroupID)
	assert.Equal(t, "óculos de grau", create.KeywordText)

	state := client.campaignUpdateCalls[0][0].State
	require.NotNil(t, state)
	assert.Equal(t, string(domain.EntityStatePaused), *state)
}
