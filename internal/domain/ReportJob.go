package domain

import (
	"strconv"
	"strings"
	"time"
)

type ReportStatus string

const (
	ReportStatusPending    ReportStatus = "PENDING"
	ReportStatusProcessing ReportStatus = "PROCESSING"
	ReportStatusCompleted  ReportStatus = "COMPLETED"
	ReportStatusFailed     ReportStatus = "FAILED"
)

// IsTerminal indica se o job chegou a um estado final.
func (s ReportStatus) IsTerminal() bool {
	return s == ReportStatusCompleted || s == ReportStatusFailed
}

// ReportSpec descreve um relatório assíncrono a ser solicitado à plataforma.
type ReportSpec struct {
	Name       string   `json:"name"`
	ReportType string   `json:"report_type"`
	Metrics    []string `json:"metrics"`
	Segment    string   `json:"segment,omitempty"`
	ReportDate string   `json:"report_date,omitempty"`
}

// ReportJob é a máquina de estados explícita de um relatório assíncrono:
// PENDING -> PROCESSING -> {COMPLETED, FAILED}.
type ReportJob struct {
	JobID         string       `json:"job_id"`
	Spec          ReportSpec   `json:"spec"`
	RequestedAt   time.Time    `json:"requested_at"`
	Status        ReportStatus `json:"status"`
	DownloadURL   string       `json:"download_url,omitempty"`
	FailureReason string       `json:"failure_reason,omitempty"`
}

// ReportRow é uma linha crua de um relatório baixado, indexada pelo nome da
// coluna do CSV da plataforma.
type ReportRow map[string]string

func (r ReportRow) Int(key string) int {
	v, err := strconv.Atoi(strings.TrimSpace(r[key]))
	if err != nil {
		return 0
	}
	return v
}

func (r ReportRow) Float(key string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(r[key]), 64)
	if err != nil {
		return 0
	}
	return v
}

// Metrics monta as métricas de performance de uma linha, usando as colunas
// de atribuição de 14 dias dos relatórios de sponsored products.
func (r ReportRow) Metrics() Metrics {
	return Metrics{
		Impressions: r.Int("impressions"),
		Clicks:      r.Int("clicks"),
		Cost:        r.Float("cost"),
		Sales:       r.Float("attributedSales14d"),
		Orders:      r.Int("attributedConversions14d"),
	}
}
