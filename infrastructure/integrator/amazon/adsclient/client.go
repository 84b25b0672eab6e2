package adsclient

import (
	"context"
	"net/http"
	"time"

	amazondomain "github.com/vfg2006/ppc-optimizer-api/infrastructure/integrator/amazon/domain"
	"github.com/vfg2006/ppc-optimizer-api/internal/config"
	"github.com/vfg2006/ppc-optimizer-api/internal/domain"
)

// Client é a interface da Amazon Ads API consumida pelo motor de otimização.
type Client interface {
	GetCampaigns(ctx context.Context, useCache bool) ([]domain.Campaign, error)
	GetAdGroups(ctx context.Context, useCache bool) ([]domain.AdGroup, error)
	GetKeywords(ctx context.Context, useCache bool) ([]domain.Keyword, error)
	GetNegativeKeywords(ctx context.Context, useCache bool) ([]domain.NegativeKeyword, error)

	UpdateKeywords(ctx context.Context, updates []amazondomain.KeywordUpdate) ([]amazondomain.BatchItemResult, *APIError)
	UpdateCampaigns(ctx context.Context, updates []amazondomain.CampaignUpdate) ([]amazondomain.BatchItemResult, *APIError)
	CreateKeywords(ctx context.Context, creates []amazondomain.KeywordCreate) ([]amazondomain.BatchItemResult, *APIError)
	CreateNegativeKeywords(ctx context.Context, creates []amazondomain.NegativeKeywordCreate) ([]amazondomain.BatchItemResult, *APIError)

	CreateReport(ctx context.Context, spec domain.ReportSpec) (*domain.ReportJob, error)
	GetReportStatus(ctx context.Context, job *domain.ReportJob) (*domain.ReportJob, error)
	DownloadReport(ctx context.Context, job *domain.ReportJob) ([]domain.ReportRow, error)

	InvalidateCache(entityType domain.EntityType)
}

// AdsClient implementa Client sobre o Gateway, com cache de entidades de
// leitura frequente.
type AdsClient struct {
	Cfg     *config.Config
	Gateway *Gateway
	Cache   *EntityCache

	// downloadClient baixa artefatos de relatório direto da URL assinada,
	// fora do gateway (a URL não é um endpoint da API e não consome tokens
	// de rate limit da conta).
	downloadClient *http.Client
}

func NewClient(cfg *config.Config, gateway *Gateway) Client {
	timeout := time.Duration(cfg.Reports.DownloadTimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &AdsClient{
		Cfg:            cfg,
		Gateway:        gateway,
		Cache:          NewEntityCache(),
		downloadClient: &http.Client{Timeout: timeout},
	}
}

func (c *AdsClient) InvalidateCache(entityType domain.EntityType) {
	c.Cache.Invalidate(entityType)
}
