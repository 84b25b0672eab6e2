package adsclient

import (
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ppc-optimizer-api/internal/domain"
)

// EntityCache guarda snapshots das entidades de referência (campanhas, ad
// groups, keywords) pela duração de um run de otimização. A invalidação é
// explícita: o BatchMutator invalida o balde da entidade após qualquer
// mutação bem sucedida, forçando re-fetch na próxima leitura.
type EntityCache struct {
	mu sync.Mutex

	campaigns        []domain.Campaign
	adGroups         []domain.AdGroup
	keywords         []domain.Keyword
	negativeKeywords []domain.NegativeKeyword

	hasCampaigns bool
	hasAdGroups  bool
	hasKeywords  bool
	hasNegatives bool
}

func NewEntityCache() *EntityCache {
	return &EntityCache{}
}

func (c *EntityCache) GetCampaigns() ([]domain.Campaign, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.campaigns, c.hasCampaigns
}

func (c *EntityCache) SetCampaigns(campaigns []domain.Campaign) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.campaigns = campaigns
	c.hasCampaigns = true
}

func (c *EntityCache) GetAdGroups() ([]domain.AdGroup, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.adGroups, c.hasAdGroups
}

func (c *EntityCache) SetAdGroups(adGroups []domain.AdGroup) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.adGroups = adGroups
	c.hasAdGroups = true
}

func (c *EntityCache) GetKeywords() ([]domain.Keyword, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.keywords, c.hasKeywords
}

func (c *EntityCache) SetKeywords(keywords []domain.Keyword) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.keywords = keywords
	c.hasKeywords = true
}

func (c *EntityCache) GetNegativeKeywords() ([]domain.NegativeKeyword, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.negativeKeywords, c.hasNegatives
}

func (c *EntityCache) SetNegativeKeywords(negatives []domain.NegativeKeyword) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.negativeKeywords = negatives
	c.hasNegatives = true
}

// Invalidate limpa o balde do tipo de entidade informado.
func (c *EntityCache) Invalidate(entityType domain.EntityType) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch entityType {
	case domain.EntityTypeCampaign:
		c.campaigns = nil
		c.hasCampaigns = false
	case domain.EntityTypeAdGroup:
		c.adGroups = nil
		c.hasAdGroups = false
	case domain.EntityTypeKeyword:
		c.keywords = nil
		c.hasKeywords = false
	case domain.EntityTypeNegativeKeyword:
		c.negativeKeywords = nil
		c.hasNegatives = false
	}

	logrus.WithField("entity_type", string(entityType)).Debug("Cache de entidades invalidado")
}

// InvalidateAll limpa todos os baldes; usado no início de cada run.
func (c *EntityCache) InvalidateAll() {
	c.Invalidate(domain.EntityTypeCampaign)
	c.Invalidate(domain.EntityTypeAdGroup)
	c.Invalidate(domain.EntityTypeKeyword)
	c.Invalidate(domain.EntityTypeNegativeKeyword)
}
