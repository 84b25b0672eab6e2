package adsclient

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	amazondomain "github.com/vfg2006/ppc-optimizer-api/infrastructure/integrator/amazon/domain"
	"github.com/vfg2006/ppc-optimizer-api/internal/domain"
)

// CreateReport solicita a geração assíncrona de um relatório e devolve o
// job em estado PENDING.
func (c *AdsClient) CreateReport(ctx context.Context, spec domain.ReportSpec) (*domain.ReportJob, error) {
	reportDate := spec.ReportDate
	if reportDate == "" {
		reportDate = time.Now().AddDate(0, 0, -1).Format("20060102")
	}

	request := amazondomain.ReportCreateRequest{
		ReportDate: reportDate,
		Metrics:    strings.Join(spec.Metrics, ","),
		Segment:    spec.Segment,
	}

	payload, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("erro ao montar requisição de relatório: %w", err)
	}

	path := fmt.Sprintf("/v2/sp/%s/report", spec.ReportType)
	body, apiErr := c.Gateway.Call(ctx, "POST", path, payload)
	if apiErr != nil {
		return nil, fmt.Errorf("erro ao criar relatório '%s': %w", spec.Name, apiErr)
	}

	var response amazondomain.ReportCreateResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta de criação de relatório: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"report":    spec.Name,
		"report_id": response.ReportID,
	}).Info("Relatório solicitado")

	return &domain.ReportJob{
		JobID:       response.ReportID,
		Spec:        spec,
		RequestedAt: time.Now(),
		Status:      domain.ReportStatusPending,
	}, nil
}

// GetReportStatus consulta o estado do job e devolve uma cópia com a
// transição aplicada. Estados terminais são finais: um job COMPLETED ou
// FAILED não é consultado novamente.
func (c *AdsClient) GetReportStatus(ctx context.Context, job *domain.ReportJob) (*domain.ReportJob, error) {
	if job.Status.IsTerminal() {
		return job, nil
	}

	body, apiErr := c.Gateway.Call(ctx, "GET", fmt.Sprintf("/v2/reports/%s", job.JobID), nil)
	if apiErr != nil {
		return nil, fmt.Errorf("erro ao consultar status do relatório %s: %w", job.JobID, apiErr)
	}

	var response amazondomain.ReportStatusResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("erro ao decodificar status do relatório: %w", err)
	}

	updated := *job
	switch response.Status {
	case amazondomain.ReportStatusSuccess:
		updated.Status = domain.ReportStatusCompleted
		updated.DownloadURL = response.Location
	case amazondomain.ReportStatusFailure, amazondomain.ReportStatusCancelled:
		updated.Status = domain.ReportStatusFailed
		updated.FailureReason = response.StatusDetails
		if updated.FailureReason == "" {
			updated.FailureReason = response.Status
		}
	default:
		updated.Status = domain.ReportStatusProcessing
	}

	return &updated, nil
}

// DownloadReport baixa o artefato de um job COMPLETED e devolve as linhas
// parseadas. O artefato pode vir comprimido em gzip ou como CSV puro.
func (c *AdsClient) DownloadReport(ctx context.Context, job *domain.ReportJob) ([]domain.ReportRow, error) {
	if job.Status != domain.ReportStatusCompleted || job.DownloadURL == "" {
		return nil, fmt.Errorf("relatório %s não está pronto para download (status %s)", job.JobID, job.Status)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, job.DownloadURL, nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar requisição de download: %w", err)
	}

	resp, err := c.downloadClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao baixar relatório %s: %w", job.JobID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download do relatório %s retornou status %d", job.JobID, resp.StatusCode)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler artefato do relatório: %w", err)
	}

	rows, err := parseReportArtifact(content)
	if err != nil {
		return nil, fmt.Errorf("erro ao parsear relatório %s: %w", job.JobID, err)
	}

	logrus.WithFields(logrus.Fields{
		"report": job.Spec.Name,
		"rows":   len(rows),
	}).Info("Relatório baixado")

	return rows, nil
}

// parseReportArtifact tenta gzip primeiro (formato usual da plataforma) e
// cai para CSV puro.
func parseReportArtifact(content []byte) ([]domain.ReportRow, error) {
	var reader io.Reader = bytes.NewReader(content)

	if gz, err := gzip.NewReader(bytes.NewReader(content)); err == nil {
		defer gz.Close()
		reader = gz
	}

	return parseCSVRows(reader)
}

func parseCSVRows(reader io.Reader) ([]domain.ReportRow, error) {
	cr := csv.NewReader(reader)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return []domain.ReportRow{}, nil
	}
	if err != nil {
		return nil, err
	}

	var rows []domain.ReportRow
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		row := make(domain.ReportRow, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}
