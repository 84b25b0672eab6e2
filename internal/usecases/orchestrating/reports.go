package orchestrating

import (
	"context"
	"fmt"

	"github.com/vfg2006/ppc-optimizer-api/internal/domain"
	"github.com/vfg2006/ppc-optimizer-api/internal/usecases/optimizing"
)

const (
	reportKindKeywords    = "keywords"
	reportKindCampaigns   = "campaigns"
	reportKindSearchTerms = "searchTerms"
)

// reportData agrega os relatórios da janela de análise já consolidados por
// entidade, prontos para o motor de decisão.
type reportData struct {
	keywordMetrics  map[string]domain.Metrics
	campaignWindow  map[string]domain.Metrics
	campaignPeriods map[string][]domain.Metrics
	searchTerms     []optimizing.SearchTermStat

	hasKeywords    bool
	hasCampaigns   bool
	hasSearchTerms bool

	// adjustedKeywords marca keywords que já receberam intent de lance no
	// run, para o dayparting não propor um segundo ajuste em cima.
	adjustedKeywords map[string]struct{}
}

func featureNeeds(features []domain.Feature) (keywords, campaigns, searchTerms bool) {
	for _, f := range features {
		switch f {
		case domain.FeatureBidOptimization, domain.FeatureDayparting:
			keywords = true
		case domain.FeatureCampaignManagement:
			campaigns = true
		case domain.FeatureKeywordDiscovery, domain.FeatureNegativeKeywords:
			searchTerms = true
		}
	}

	return keywords, campaigns, searchTerms
}

// fetchReports solicita em paralelo um relatório por dia da janela para cada
// tipo exigido pelas features do run e consolida as linhas baixadas. Falha em
// um relatório individual não aborta o run: o dia fica de fora do agregado e
// o erro é anotado no resultado.
func (s *Service) fetchReports(ctx context.Context, features []domain.Feature, result *domain.RunResult) (*reportData, error) {
	needKeywords, needCampaigns, needSearchTerms := featureNeeds(features)

	dates := s.lookbackDates()
	specs := make([]domain.ReportSpec, 0, len(dates)*3)

	for _, date := range dates {
		if needKeywords {
			specs = append(specs, domain.ReportSpec{
				Name:       reportKindKeywords + "_" + date,
				ReportType: "keywords",
				Metrics:    keywordReportMetrics,
				ReportDate: date,
			})
		}

		if needCampaigns {
			specs = append(specs, domain.ReportSpec{
				Name:       reportKindCampaigns + "_" + date,
				ReportType: "campaigns",
				Metrics:    campaignReportMetrics,
				ReportDate: date,
			})
		}

		if needSearchTerms {
			specs = append(specs, domain.ReportSpec{
				Name:       reportKindSearchTerms + "_" + date,
				ReportType: "keywords",
				Metrics:    searchTermReportMetrics,
				Segment:    "query",
				ReportDate: date,
			})
		}
	}

	data := &reportData{adjustedKeywords: make(map[string]struct{})}

	if len(specs) == 0 {
		return data, nil
	}

	rows, failures := s.pipeline.RunParallel(ctx, specs)

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	for name, err := range failures {
		result.AddError(fmt.Sprintf("relatório %s: %v", name, err))
	}

	collect := func(kind string) [][]domain.ReportRow {
		byDay := make([][]domain.ReportRow, 0, len(dates))
		succeeded := false

		for _, date := range dates {
			name := kind + "_" + date
			dayRows, ok := rows[name]
			if ok {
				succeeded = true
			}

			byDay = append(byDay, dayRows)
		}

		if !succeeded {
			return nil
		}

		return byDay
	}

	if needKeywords {
		if byDay := collect(reportKindKeywords); byDay != nil {
			data.keywordMetrics = aggregateKeywordMetrics(byDay)
			data.hasKeywords = true
		}
	}

	if needCampaigns {
		if byDay := collect(reportKindCampaigns); byDay != nil {
			data.campaignWindow, data.campaignPeriods = aggregateCampaignMetrics(byDay)
			data.hasCampaigns = true
		}
	}

	if needSearchTerms {
		if byDay := collect(reportKindSearchTerms); byDay != nil {
			data.searchTerms = aggregateSearchTerms(byDay)
			data.hasSearchTerms = true
		}
	}

	return data, nil
}

// lookbackDates retorna as datas da janela de análise no formato da
// plataforma (AAAAMMDD), da mais antiga para a mais recente, terminando em
// ontem.
func (s *Service) lookbackDates() []string {
	days := s.cfg.Optimizer.LookbackDays
	if days < 1 {
		days = 1
	}

	now := s.now()
	dates := make([]string, 0, days)

	for i := days; i >= 1; i-- {
		dates = append(dates, now.AddDate(0, 0, -i).Format("20060102"))
	}

	return dates
}

