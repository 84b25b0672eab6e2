package adsclient

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	amazondomain "github.com/vfg2006/ppc-optimizer-api/infrastructure/integrator/amazon/domain"
	"github.com/vfg2006/ppc-optimizer-api/internal/domain"
)

func (c *AdsClient) GetKeywords(ctx context.Context, useCache bool) ([]domain.Keyword, error) {
	if useCache {
		if cached, ok := c.Cache.GetKeywords(); ok {
			logrus.WithField("count", len(cached)).Debug("Usando keywords do cache")
			return cached, nil
		}
	}

	body, apiErr := c.Gateway.Call(ctx, "GET", "/v2/sp/keywords", nil)
	if apiErr != nil {
		return nil, fmt.Errorf("erro ao buscar keywords: %w", apiErr)
	}

	var wire []amazondomain.Keyword
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("erro ao decodificar keywords: %w", err)
	}

	keywords := make([]domain.Keyword, 0, len(wire))
	for _, w := range wire {
		keywords = append(keywords, domain.Keyword{
			ID:         strconv.FormatInt(w.KeywordID, 10),
			AdGroupID:  strconv.FormatInt(w.AdGroupID, 10),
			CampaignID: strconv.FormatInt(w.CampaignID, 10),
			Text:       w.KeywordText,
			MatchType:  domain.MatchType(w.MatchType),
			State:      domain.EntityState(w.State),
			Bid:        w.Bid,
		})
	}

	logrus.WithField("count", len(keywords)).Info("Keywords obtidas da API")
	c.Cache.SetKeywords(keywords)

	return keywords, nil
}

// UpdateKeywords envia uma atualização em lote de keywords (até 100 itens
// por chamada, responsabilidade do chamador) e retorna o resultado por item.
func (c *AdsClient) UpdateKeywords(ctx context.Context, updates []amazondomain.KeywordUpdate) ([]amazondomain.BatchItemResult, *APIError) {
	payload, err := json.Marshal(updates)
	if err != nil {
		return nil, &APIError{Kind: ErrorKindValidation, Message: err.Error(), Cause: err}
	}

	body, apiErr := c.Gateway.Call(ctx, "PUT", "/v2/sp/keywords", payload)
	if apiErr != nil {
		return nil, apiErr
	}

	var results []amazondomain.BatchItemResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, &APIError{Kind: ErrorKindValidation, Message: "resposta de lote inválida: " + err.Error(), Cause: err}
	}

	return results, nil
}

func (c *AdsClient) CreateKeywords(ctx context.Context, creates []amazondomain.KeywordCreate) ([]amazondomain.BatchItemResult, *APIError) {
	payload, err := json.Marshal(creates)
	if err != nil {
		return nil, &APIError{Kind: ErrorKindValidation, Message: err.Error(), Cause: err}
	}

	body, apiErr := c.Gateway.Call(ctx, "POST", "/v2/sp/keywords", payload)
	if apiErr != nil {
		return nil, apiErr
	}

	var results []amazondomain.BatchItemResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, &APIError{Kind: ErrorKindValidation, Message: "resposta de lote inválida: " + err.Error(), Cause: err}
	}

	return results, nil
}
