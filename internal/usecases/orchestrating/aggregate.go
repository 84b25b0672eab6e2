package orchestrating

import (
	"github.com/vfg2006/ppc-optimizer-api/internal/domain"
	"github.com/vfg2006/ppc-optimizer-api/internal/usecases/optimizing"
)

func sumMetrics(a, b domain.Metrics) domain.Metrics {
	return domain.Metrics{
		Impressions: a.Impressions + b.Impressions,
		Clicks:      a.Clicks + b.Clicks,
		Cost:        a.Cost + b.Cost,
		Sales:       a.Sales + b.Sales,
		Orders:      a.Orders + b.Orders,
	}
}

// aggregateKeywordMetrics soma as métricas por keyword ao longo dos dias da
// janela de análise.
func aggregateKeywordMetrics(rowsByDay [][]domain.ReportRow) map[string]domain.Metrics {
	byKeyword := make(map[string]domain.Metrics)

	for _, rows := range rowsByDay {
		for _, row := range rows {
			id := row["keywordId"]
			if id == "" {
				continue
			}

			byKeyword[id] = sumMetrics(byKeyword[id], row.Metrics())
		}
	}

	return byKeyword
}

// aggregateCampaignMetrics produz, por campanha, o total da janela e a série
// por período (um item por dia, do mais antigo para o mais recente). Dias sem
// linha para a campanha entram como métricas zeradas para que a contagem de
// períodos consecutivos reflita o calendário.
func aggregateCampaignMetrics(rowsByDay [][]domain.ReportRow) (map[string]domain.Metrics, map[string][]domain.Metrics) {
	window := make(map[string]domain.Metrics)
	periods := make(map[string][]domain.Metrics)

	seen := make(map[string]struct{})
	for _, rows := range rowsByDay {
		for _, row := range rows {
			if id := row["campaignId"]; id != "" {
				seen[id] = struct{}{}
			}
		}
	}

	for id := range seen {
		periods[id] = make([]domain.Metrics, len(rowsByDay))
	}

	for day, rows := range rowsByDay {
		for _, row := range rows {
			id := row["campaignId"]
			if id == "" {
				continue
			}

			m := row.Metrics()
			window[id] = sumMetrics(window[id], m)
			periods[id][day] = sumMetrics(periods[id][day], m)
		}
	}

	return window, periods
}

// aggregateSearchTerms soma as métricas por (grupo de anúncio, termo) ao
// longo da janela.
func aggregateSearchTerms(rowsByDay [][]domain.ReportRow) []optimizing.SearchTermStat {
	type key struct {
		adGroupID string
		term      string
	}

	byTerm := make(map[key]*optimizing.SearchTermStat)
	order := make([]key, 0)

	for _, rows := range rowsByDay {
		for _, row := range rows {
			term := row["query"]
			if term == "" {
				continue
			}

			k := key{adGroupID: row["adGroupId"], term: term}

			stat, exists := byTerm[k]
			if !exists {
				stat = &optimizing.SearchTermStat{
					AdGroupID:  row["adGroupId"],
					CampaignID: row["campaignId"],
					Term:       term,
				}
				byTerm[k] = stat
				order = append(order, k)
			}

			stat.Metrics = sumMetrics(stat.Metrics, row.Metrics())
		}
	}

	stats := make([]optimizing.SearchTermStat, 0, len(order))
	for _, k := range order {
		stats = append(stats, *byTerm[k])
	}

	return stats
}
