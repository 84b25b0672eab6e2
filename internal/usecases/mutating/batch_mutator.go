package mutating

import (
	"context"
	"fmt"
	"strconv"

	"github.com/vfg2006/ppc-optimizer-api/infrastructure/integrator/amazon/adsclient"
	amazondomain "github.com/vfg2006/ppc-optimizer-api/infrastructure/integrator/amazon/domain"
	"github.com/vfg2006/ppc-optimizer-api/internal/domain"
	"github.com/vfg2006/ppc-optimizer-api/pkg/log"
)

// BatchMutator aplica intenções de mutação na plataforma em lotes, com
// reconciliação item a item da resposta. Em dry-run nenhuma chamada de rede
// acontece.
type BatchMutator struct {
	client    adsclient.Client
	batchSize int
	logger    log.Logger
}

func NewBatchMutator(client adsclient.Client, batchSize int, logger log.Logger) *BatchMutator {
	if batchSize <= 0 {
		batchSize = 100
	}

	return &BatchMutator{
		client:    client,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Apply agrupa os intents por endpoint de mutação, divide cada grupo em lotes
// de batchSize e emite uma chamada por lote. Falha de transporte em um lote
// marca todos os intents daquele lote como falhos; sucesso de transporte com
// erros por item marca apenas os itens rejeitados. Após cada lote aplicado, o
// bucket de cache da entidade afetada é invalidado.
func (m *BatchMutator) Apply(ctx context.Context, intents []domain.MutationIntent, dryRun bool) []domain.MutationResult {
	results := make([]domain.MutationResult, 0, len(intents))

	if dryRun {
		for _, intent := range intents {
			results = append(results, domain.MutationResult{
				Intent:  intent,
				Applied: false,
				DryRun:  true,
			})
		}

		return results
	}

	groups := groupByEndpoint(intents)

	for gi, group := range groups {
		for start := 0; start < len(group.intents); start += m.batchSize {
			// Deadline do run expirado: nenhum lote novo é iniciado. Os
			// intents restantes saem como falha com o erro do contexto.
			if ctx.Err() != nil {
				return append(results, m.abortRemaining(ctx, groups[gi:], start)...)
			}

			end := start + m.batchSize
			if end > len(group.intents) {
				end = len(group.intents)
			}

			chunk := group.intents[start:end]
			results = append(results, m.applyChunk(ctx, group.kind, chunk)...)
		}
	}

	return results
}

// abortRemaining marca como falhos os intents ainda não enviados quando o
// contexto do run expira, sem emitir novas chamadas à plataforma.
func (m *BatchMutator) abortRemaining(ctx context.Context, groups []intentGroup, start int) []domain.MutationResult {
	ctxErr := ctx.Err()
	results := make([]domain.MutationResult, 0)

	for gi, group := range groups {
		pending := group.intents
		if gi == 0 {
			pending = pending[start:]
		}

		for _, intent := range pending {
			results = append(results, domain.MutationResult{
				Intent: intent,
				Error:  ctxErr.Error(),
			})
		}
	}

	m.logger.WithContext(ctx).Warnf("Contexto do run expirado, %d intents não enviados", len(results))

	return results
}

type endpointKind int

const (
	endpointKeywordUpdate endpointKind = iota
	endpointCampaignUpdate
	endpointKeywordCreate
	endpointNegativeCreate
)

type intentGroup struct {
	kind    endpointKind
	intents []domain.MutationIntent
}

// groupByEndpoint separa os intents pelo endpoint de lote que os aplica,
// preservando a ordem de chegada dentro de cada grupo.
func groupByEndpoint(intents []domain.MutationIntent) []intentGroup {
	buckets := map[endpointKind][]domain.MutationIntent{}
	order := []endpointKind{endpointKeywordUpdate, endpointCampaignUpdate, endpointKeywordCreate, endpointNegativeCreate}

	for _, intent := range intents {
		kind, ok := endpointFor(intent)
		if !ok {
			continue
		}

		buckets[kind] = append(buckets[kind], intent)
	}

	groups := make([]intentGroup, 0, len(buckets))
	for _, kind := range order {
		if len(buckets[kind]) > 0 {
			groups = append(groups, intentGroup{kind: kind, intents: buckets[kind]})
		}
	}

	return groups
}

func endpointFor(intent domain.MutationIntent) (endpointKind, bool) {
	switch intent.Action {
	case domain.ActionTypeBidUpdate, domain.ActionTypeDaypartingAdjust:
		return endpointKeywordUpdate, true
	case domain.ActionTypeCampaignPause, domain.ActionTypeCampaignActivate, domain.ActionTypeBudgetUpdate:
		return endpointCampaignUpdate, true
	case domain.ActionTypeKeywordCreate:
		return endpointKeywordCreate, true
	case domain.ActionTypeNegativeKeywordAdd:
		return endpointNegativeCreate, true
	default:
		return 0, false
	}
}

func (m *BatchMutator) applyChunk(ctx context.Context, kind endpointKind, chunk []domain.MutationIntent) []domain.MutationResult {
	var (
		itemResults []amazondomain.BatchItemResult
		apiErr      *adsclient.APIError
		entityType  domain.EntityType
		sent        []domain.MutationIntent
		invalid     []domain.MutationResult
	)

	// Intents com payload inválido ficam de fora do envio e são marcados
	// como falha; os demais seguem no lote normalmente.
	switch kind {
	case endpointKeywordUpdate:
		var updates []amazondomain.KeywordUpdate
		updates, sent, invalid = buildKeywordUpdates(chunk)
		if len(updates) > 0 {
			itemResults, apiErr = m.client.UpdateKeywords(ctx, updates)
		}
		entityType = domain.EntityTypeKeyword
	case endpointCampaignUpdate:
		var updates []amazondomain.CampaignUpdate
		updates, sent, invalid = buildCampaignUpdates(chunk)
		if len(updates) > 0 {
			itemResults, apiErr = m.client.UpdateCampaigns(ctx, updates)
		}
		entityType = domain.EntityTypeCampaign
	case endpointKeywordCreate:
		sent = chunk
		itemResults, apiErr = m.client.CreateKeywords(ctx, buildKeywordCreates(chunk))
		entityType = domain.EntityTypeKeyword
	case endpointNegativeCreate:
		sent = chunk
		itemResults, apiErr = m.client.CreateNegativeKeywords(ctx, buildNegativeCreates(chunk))
		entityType = domain.EntityTypeNegativeKeyword
	}

	// Falha de transporte do lote inteiro: todos os intents enviados recebem
	// o mesmo erro, sem fabricar sucesso parcial.
	if apiErr != nil {
		m.logger.WithContext(ctx).WithError(apiErr).
			Errorf("Falha de transporte aplicando lote de %d intents", len(sent))

		results := invalid
		for _, intent := range sent {
			results = append(results, domain.MutationResult{
				Intent: intent,
				Error:  apiErr.Error(),
			})
		}

		return results
	}

	if len(sent) > 0 {
		m.client.InvalidateCache(entityType)
	}

	return append(invalid, reconcile(sent, itemResults)...)
}

// reconcile casa a resposta por item com os intents enviados. A plataforma
// responde na mesma ordem do envio, um resultado por item.
func reconcile(chunk []domain.MutationIntent, itemResults []amazondomain.BatchItemResult) []domain.MutationResult {
	results := make([]domain.MutationResult, 0, len(chunk))

	for i, intent := range chunk {
		if i >= len(itemResults) {
			results = append(results, domain.MutationResult{
				Intent: intent,
				Error:  "resposta da plataforma sem resultado para o item",
			})
			continue
		}

		item := itemResults[i]
		if item.IsSuccess() {
			results = append(results, domain.MutationResult{
				Intent:  intent,
				Applied: true,
			})
			continue
		}

		detail := item.Description
		if detail == "" {
			detail = item.Details
		}

		results = append(results, domain.MutationResult{
			Intent: intent,
			Error:  fmt.Sprintf("%s: %s", item.Code, detail),
		})
	}

	return results
}

func buildKeywordUpdates(chunk []domain.MutationIntent) ([]amazondomain.KeywordUpdate, []domain.MutationIntent, []domain.MutationResult) {
	updates := make([]amazondomain.KeywordUpdate, 0, len(chunk))
	sent := make([]domain.MutationIntent, 0, len(chunk))
	invalid := make([]domain.MutationResult, 0)

	for _, intent := range chunk {
		keywordID, err := strconv.ParseInt(intent.EntityID, 10, 64)
		if err != nil {
			invalid = append(invalid, domain.MutationResult{
				Intent: intent,
				Error:  fmt.Sprintf("id de keyword inválido: %s", intent.EntityID),
			})
			continue
		}

		bid, ok := payloadFloat(intent.Payload, "bid")
		if !ok {
			invalid = append(invalid, domain.MutationResult{
				Intent: intent,
				Error:  "intent de lance sem valor de bid no payload",
			})
			continue
		}

		updates = append(updates, amazondomain.KeywordUpdate{
			KeywordID: keywordID,
			Bid:       &bid,
		})
		sent = append(sent, intent)
	}

	return updates, sent, invalid
}

func buildCampaignUpdates(chunk []domain.MutationIntent) ([]amazondomain.CampaignUpdate, []domain.MutationIntent, []domain.MutationResult) {
	updates := make([]amazondomain.CampaignUpdate, 0, len(chunk))
	sent := make([]domain.MutationIntent, 0, len(chunk))
	invalid := make([]domain.MutationResult, 0)

	for _, intent := range chunk {
		campaignID, err := strconv.ParseInt(intent.EntityID, 10, 64)
		if err != nil {
			invalid = append(invalid, domain.MutationResult{
				Intent: intent,
				Error:  fmt.Sprintf("id de campanha inválido: %s", intent.EntityID),
			})
			continue
		}

		update := amazondomain.CampaignUpdate{CampaignID: campaignID}

		switch intent.Action {
		case domain.ActionTypeBudgetUpdate:
			budget, ok := payloadFloat(intent.Payload, "dailyBudget")
			if !ok {
				invalid = append(invalid, domain.MutationResult{
					Intent: intent,
					Error:  "intent de orçamento sem valor de dailyBudget no payload",
				})
				continue
			}
			update.DailyBudget = &budget
		default:
			state := intent.NewValue
			update.State = &state
		}

		updates = append(updates, update)
		sent = append(sent, intent)
	}

	return updates, sent, invalid
}

func buildKeywordCreates(chunk []domain.MutationIntent) []amazondomain.KeywordCreate {
	creates := make([]amazondomain.KeywordCreate, 0, len(chunk))

	for _, intent := range chunk {
		bid, _ := payloadFloat(intent.Payload, "bid")
		creates = append(creates, amazondomain.KeywordCreate{
			CampaignID:  payloadInt(intent.Payload, "campaignId"),
			AdGroupID:   payloadInt(intent.Payload, "adGroupId"),
			KeywordText: payloadString(intent.Payload, "keywordText"),
			MatchType:   payloadString(intent.Payload, "matchType"),
			State:       string(domain.EntityStateEnabled),
			Bid:         bid,
		})
	}

	return creates
}

func buildNegativeCreates(chunk []domain.MutationIntent) []amazondomain.NegativeKeywordCreate {
	creates := make([]amazondomain.NegativeKeywordCreate, 0, len(chunk))

	for _, intent := range chunk {
		creates = append(creates, amazondomain.NegativeKeywordCreate{
			CampaignID:  payloadInt(intent.Payload, "campaignId"),
			AdGroupID:   payloadInt(intent.Payload, "adGroupId"),
			KeywordText: payloadString(intent.Payload, "keywordText"),
			MatchType:   payloadString(intent.Payload, "matchType"),
			State:       string(domain.EntityStateEnabled),
		})
	}

	return creates
}

func payloadFloat(payload map[string]any, key string) (float64, bool) {
	if payload == nil {
		return 0, false
	}

	switch v := payload[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

func payloadInt(payload map[string]any, key string) int64 {
	if payload == nil {
		return 0
	}

	switch v := payload[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	case string:
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

func payloadString(payload map[string]any, key string) string {
	if payload == nil {
		return ""
	}

	if v, ok := payload[key].(string); ok {
		return v
	}

	return ""
}
