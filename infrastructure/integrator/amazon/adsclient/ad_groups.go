package adsclient

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	amazondomain "github.com/vfg2006/ppc-optimizer-api/infrastructure/integrator/amazon/domain"
	"github.com/vfg2006/ppc-optimizer-api/internal/domain"
)

func (c *AdsClient) GetAdGroups(ctx context.Context, useCache bool) ([]domain.AdGroup, error) {
	if useCache {
		if cached, ok := c.Cache.GetAdGroups(); ok {
			logrus.WithField("count", len(cached)).Debug("Usando ad groups do cache")
			return cached, nil
		}
	}

	body, apiErr := c.Gateway.Call(ctx, "GET", "/v2/sp/adGroups", nil)
	if apiErr != nil {
		return nil, fmt.Errorf("erro ao buscar ad groups: %w", apiErr)
	}

	var wire []amazondomain.AdGroup
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("erro ao decodificar ad groups: %w", err)
	}

	adGroups := make([]domain.AdGroup, 0, len(wire))
	for _, w := range wire {
		adGroups = append(adGroups, domain.AdGroup{
			ID:         strconv.FormatInt(w.AdGroupID, 10),
			CampaignID: strconv.FormatInt(w.CampaignID, 10),
			Name:       w.Name,
			State:      domain.EntityState(w.State),
			DefaultBid: w.DefaultBid,
		})
	}

	logrus.WithField("count", len(adGroups)).Info("Ad groups obtidos da API")
	c.Cache.SetAdGroups(adGroups)

	return adGroups, nil
}
