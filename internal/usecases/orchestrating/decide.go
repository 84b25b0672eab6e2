package orchestrating

import (
	"context"
	"fmt"
	"math"

	"github.com/vfg2006/ppc-optimizer-api/internal/domain"
	"github.com/vfg2006/ppc-optimizer-api/pkg/utils"
)

// decide roda a regra da feature sobre os dados consolidados e devolve as
// intenções de mutação. Erros de validação de uma entidade individual viram
// avisos; a feature segue para as demais entidades.
func (s *Service) decide(ctx context.Context, feature domain.Feature, rules *ruleSet, data *reportData) ([]domain.MutationIntent, []string) {
	switch feature {
	case domain.FeatureBidOptimization:
		return s.decideBids(ctx, rules, data)
	case domain.FeatureDayparting:
		return s.decideDayparting(ctx, rules, data)
	case domain.FeatureCampaignManagement:
		return s.decideCampaignStates(ctx, rules, data)
	case domain.FeatureKeywordDiscovery:
		return s.decideDiscovery(ctx, rules, data)
	case domain.FeatureNegativeKeywords:
		return s.decideNegatives(ctx, rules, data)
	default:
		return nil, []string{fmt.Sprintf("feature '%s' sem regra associada", feature)}
	}
}

func (s *Service) decideBids(ctx context.Context, rules *ruleSet, data *reportData) ([]domain.MutationIntent, []string) {
	if !data.hasKeywords {
		return nil, []string{"otimização de lances pulada: relatório de keywords indisponível"}
	}

	keywords, err := s.client.GetKeywords(ctx, true)
	if err != nil {
		return nil, []string{fmt.Sprintf("otimização de lances pulada: %v", err)}
	}

	intents := make([]domain.MutationIntent, 0)
	warnings := make([]string, 0)

	for _, kw := range keywords {
		if kw.State != domain.EntityStateEnabled {
			continue
		}

		metrics, ok := data.keywordMetrics[kw.ID]
		if !ok {
			continue
		}

		intent, err := rules.bid.Evaluate(kw, metrics, 1.0)
		if err != nil {
			warnings = append(warnings, err.Error())
			continue
		}

		if intent != nil {
			intents = append(intents, *intent)
			data.adjustedKeywords[kw.ID] = struct{}{}
		}
	}

	return intents, warnings
}

// decideDayparting aplica o multiplicador da janela de horário vigente sobre
// o lance atual das keywords que a otimização de lances não tocou neste run.
func (s *Service) decideDayparting(ctx context.Context, rules *ruleSet, data *reportData) ([]domain.MutationIntent, []string) {
	if !s.cfg.Dayparting.Enabled || !rules.dayparting.HasWindows() {
		return nil, nil
	}

	multiplier := rules.dayparting.MultiplierAt(s.now())
	if multiplier == 1.0 {
		return nil, nil
	}

	keywords, err := s.client.GetKeywords(ctx, true)
	if err != nil {
		return nil, []string{fmt.Sprintf("dayparting pulado: %v", err)}
	}

	minBid := s.cfg.Optimizer.MinBid
	maxBid := s.cfg.Optimizer.MaxBid

	intents := make([]domain.MutationIntent, 0)

	for _, kw := range keywords {
		if kw.State != domain.EntityStateEnabled || kw.Bid <= 0 {
			continue
		}

		if _, adjusted := data.adjustedKeywords[kw.ID]; adjusted {
			continue
		}

		newBid := utils.RoundWithTwoDecimalPlace(math.Max(minBid, math.Min(maxBid, kw.Bid*multiplier)))
		if newBid == kw.Bid {
			continue
		}

		intents = append(intents, domain.MutationIntent{
			EntityID:   kw.ID,
			EntityType: domain.EntityTypeKeyword,
			Action:     domain.ActionTypeDaypartingAdjust,
			Field:      domain.MutationFieldBid,
			OldValue:   fmt.Sprintf("%.2f", kw.Bid),
			NewValue:   fmt.Sprintf("%.2f", newBid),
			Reason:     fmt.Sprintf("janela de dayparting vigente com multiplicador %.2f", multiplier),
			Confidence: 1.0,
			Payload: map[string]any{
				"bid":        newBid,
				"adGroupId":  kw.AdGroupID,
				"campaignId": kw.CampaignID,
			},
		})
	}

	return intents, nil
}

func (s *Service) decideCampaignStates(ctx context.Context, rules *ruleSet, data *reportData) ([]domain.MutationIntent, []string) {
	if !data.hasCampaigns {
		return nil, []string{"gestão de campanhas pulada: relatório de campanhas indisponível"}
	}

	campaigns, err := s.client.GetCampaigns(ctx, true)
	if err != nil {
		return nil, []string{fmt.Sprintf("gestão de campanhas pulada: %v", err)}
	}

	intents := make([]domain.MutationIntent, 0)

	for _, campaign := range campaigns {
		if campaign.State == domain.EntityStateArchived {
			continue
		}

		window, ok := data.campaignWindow[campaign.ID]
		if !ok {
			continue
		}

		if intent := rules.campaign.Evaluate(campaign, window, data.campaignPeriods[campaign.ID]); intent != nil {
			intents = append(intents, *intent)
		}
	}

	return intents, nil
}

func (s *Service) decideDiscovery(ctx context.Context, rules *ruleSet, data *reportData) ([]domain.MutationIntent, []string) {
	if !data.hasSearchTerms {
		return nil, []string{"descoberta de keywords pulada: relatório de termos de busca indisponível"}
	}

	existing, err := s.client.GetKeywords(ctx, true)
	if err != nil {
		return nil, []string{fmt.Sprintf("descoberta de keywords pulada: %v", err)}
	}

	return rules.discovery.Propose(data.searchTerms, existing), nil
}

func (s *Service) decideNegatives(ctx context.Context, rules *ruleSet, data *reportData) ([]domain.MutationIntent, []string) {
	if !data.hasSearchTerms {
		return nil, []string{"negativação de termos pulada: relatório de termos de busca indisponível"}
	}

	existing, err := s.client.GetNegativeKeywords(ctx, true)
	if err != nil {
		return nil, []string{fmt.Sprintf("negativação de termos pulada: %v", err)}
	}

	return rules.negatives.Propose(data.searchTerms, existing), nil
}
