package adsclient

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	amazondomain "github.com/vfg2006/ppc-optimizer-api/infrastructure/integrator/amazon/domain"
	"github.com/vfg2006/ppc-optimizer-api/internal/domain"
)

func (c *AdsClient) GetNegativeKeywords(ctx context.Context, useCache bool) ([]domain.NegativeKeyword, error) {
	if useCache {
		if cached, ok := c.Cache.GetNegativeKeywords(); ok {
			logrus.WithField("count", len(cached)).Debug("Usando negative keywords do cache")
			return cached, nil
		}
	}

	body, apiErr := c.Gateway.Call(ctx, "GET", "/v2/sp/negativeKeywords", nil)
	if apiErr != nil {
		return nil, fmt.Errorf("erro ao buscar negative keywords: %w", apiErr)
	}

	var wire []amazondomain.NegativeKeyword
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("erro ao decodificar negative keywords: %w", err)
	}

	negatives := make([]domain.NegativeKeyword, 0, len(wire))
	for _, w := range wire {
		negatives = append(negatives, domain.NegativeKeyword{
			ID:         strconv.FormatInt(w.KeywordID, 10),
			CampaignID: strconv.FormatInt(w.CampaignID, 10),
			AdGroupID:  strconv.FormatInt(w.AdGroupID, 10),
			Text:       w.KeywordText,
			MatchType:  domain.MatchType(w.MatchType),
		})
	}

	logrus.WithField("count", len(negatives)).Info("Negative keywords obtidas da API")
	c.Cache.SetNegativeKeywords(negatives)

	return negatives, nil
}

func (c *AdsClient) CreateNegativeKeywords(ctx context.Context, creates []amazondomain.NegativeKeywordCreate) ([]amazondomain.BatchItemResult, *APIError) {
	payload, err := json.Marshal(creates)
	if err != nil {
		return nil, &APIError{Kind: ErrorKindValidation, Message: err.Error(), Cause: err}
	}

	body, apiErr := c.Gateway.Call(ctx, "POST", "/v2/sp/negativeKeywords", payload)
	if apiErr != nil {
		return nil, apiErr
	}

	var results []amazondomain.BatchItemResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, &APIError{Kind: ErrorKindValidation, Message: "resposta de lote inválida: " + err.Error(), Cause: err}
	}

	return results, nil
}
