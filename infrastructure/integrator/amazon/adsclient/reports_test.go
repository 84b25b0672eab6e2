package adsclient

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ppc-optimizer-api/internal/config"
	"github.com/vfg2006/ppc-optimizer-api/internal/domain"
)

func TestParseReportArtifact_CSVPuro(t *testing.T) {
	csvContent := []byte("keywordId,clicks,cost,attributedSales14d\n1001,15,7.50,45.00\n1002,3,1.20,0\n")

	rows, err := parseReportArtifact(csvContent)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "1001", rows[0]["keywordId"])
	assert.Equal(t, 15, rows[0].Int("clicks"))
	assert.Equal(t, 7.50, rows[0].Float("cost"))

	metrics := rows[0].Metrics()
	assert.Equal(t, 15, metrics.Clicks)
	assert.Equal(t, 45.00, metrics.Sales)
}

func TestParseReportArtifact_Gzip(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte("campaignId,clicks,cost\n2001,30,12.00\n"))
	require.NoError(t, err)
	require.NoError(t, gz.Close())

	rows, err := parseReportArtifact(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2001", rows[0]["campaignId"])
}

func TestParseReportArtifact_Vazio(t *testing.T) {
	rows, err := parseReportArtifact([]byte(""))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestParseReportArtifact_LinhaCurtaNaoQuebra(t *testing.T) {
	rows, err := parseReportArtifact([]byte("keywordId,clicks,cost\n1001,15\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "15", rows[0]["clicks"])
	assert.Equal(t, "", rows[0]["cost"])
}

func TestAdsClient_DownloadReport(t *testing.T) {
	artifact := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("keywordId,clicks\n1001,10\n"))
	}))
	defer artifact.Close()

	client := &AdsClient{
		Cfg:            &config.Config{},
		downloadClient: &http.Client{Timeout: 5 * time.Second},
	}

	job := &domain.ReportJob{
		JobID:       "job-1",
		Spec:        domain.ReportSpec{Name: "keywords_20260828"},
		Status:      domain.ReportStatusCompleted,
		DownloadURL: artifact.URL,
	}

	rows, err := client.DownloadReport(context.Background(), job)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "1001", rows[0]["keywordId"])
}

func TestAdsClient_DownloadReport_JobNaoPronto(t *testing.T) {
	client := &AdsClient{downloadClient: http.DefaultClient}

	job := &domain.ReportJob{JobID: "job-2", Status: domain.ReportStatusProcessing}
	_, err := client.DownloadReport(context.Background(), job)
	assert.Error(t, err)
}

func TestAdsClient_GetReportStatus_JobTerminalNaoConsulta(t *testing.T) {
	client := &AdsClient{}

	job := &domain.ReportJob{JobID: "job-3", Status: domain.ReportStatusCompleted}
	got, err := client.GetReportStatus(context.Background(), job)
	require.NoError(t, err)
	assert.Same(t, job, got)
}
