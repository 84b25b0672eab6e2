package domain

// Estados retornados pela API de relatórios.
const (
	ReportStatusInProgress = "IN_PROGRESS"
	ReportStatusSuccess    = "SUCCESS"
	ReportStatusFailure    = "FAILURE"
	ReportStatusCancelled  = "CANCELLED"
)

type ReportCreateRequest struct {
	ReportDate string `json:"reportDate"`
	Metrics    string `json:"metrics"`
	Segment    string `json:"segment,omitempty"`
}

type ReportCreateResponse struct {
	ReportID string `json:"reportId"`
	Status   string `json:"status"`
}

type ReportStatusResponse struct {
	ReportID      string `json:"reportId"`
	Status        string `json:"status"`
	StatusDetails string `json:"statusDetails,omitempty"`
	Location      string `json:"location,omitempty"`
}
