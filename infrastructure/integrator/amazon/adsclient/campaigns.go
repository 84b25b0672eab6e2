package adsclient

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	amazondomain "github.com/vfg2006/ppc-optimizer-api/infrastructure/integrator/amazon/domain"
	"github.com/vfg2006/ppc-optimizer-api/internal/domain"
)

// GetCampaigns retorna as campanhas do perfil. Com useCache, devolve o
// snapshot guardado sem chamada de rede; em miss (ou cache desabilitado),
// busca pela API e armazena.
func (c *AdsClient) GetCampaigns(ctx context.Context, useCache bool) ([]domain.Campaign, error) {
	if useCache {
		if cached, ok := c.Cache.GetCampaigns(); ok {
			logrus.WithField("count", len(cached)).Debug("Usando campanhas do cache")
			return cached, nil
		}
	}

	body, apiErr := c.Gateway.Call(ctx, "GET", "/v2/sp/campaigns", nil)
	if apiErr != nil {
		return nil, fmt.Errorf("erro ao buscar campanhas: %w", apiErr)
	}

	var wire []amazondomain.Campaign
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("erro ao decodificar campanhas: %w", err)
	}

	campaigns := make([]domain.Campaign, 0, len(wire))
	for _, w := range wire {
		campaigns = append(campaigns, domain.Campaign{
			ID:            strconv.FormatInt(w.CampaignID, 10),
			Name:          w.Name,
			State:         domain.EntityState(w.State),
			DailyBudget:   w.DailyBudget,
			TargetingType: w.TargetingType,
		})
	}

	logrus.WithField("count", len(campaigns)).Info("Campanhas obtidas da API")
	c.Cache.SetCampaigns(campaigns)

	return campaigns, nil
}

// UpdateCampaigns envia uma atualização em lote de campanhas e retorna o
// resultado por item na ordem de envio.
func (c *AdsClient) UpdateCampaigns(ctx context.Context, updates []amazondomain.CampaignUpdate) ([]amazondomain.BatchItemResult, *APIError) {
	payload, err := json.Marshal(updates)
	if err != nil {
		return nil, &APIError{Kind: ErrorKindValidation, Message: err.Error(), Cause: err}
	}

	body, apiErr := c.Gateway.Call(ctx, "PUT", "/v2/sp/campaigns", payload)
	if apiErr != nil {
		return nil, apiErr
	}

	var results []amazondomain.BatchItemResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, &APIError{Kind: ErrorKindValidation, Message: "resposta de lote inválida: " + err.Error(), Cause: err}
	}

	return results, nil
}
