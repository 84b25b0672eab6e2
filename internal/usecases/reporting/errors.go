package reporting

import (
	"errors"
	"fmt"
)

// ErrReportTimeout indica que um job de relatório ficou em processamento
// além do teto configurado de polling.
var ErrReportTimeout = errors.New("tempo máximo de espera do relatório excedido")

// ReportFailedError carrega a razão de falha informada pela plataforma para
// um job que terminou em FAILED.
type ReportFailedError struct {
	JobID  string
	Name   string
	Reason string
}

func (e *ReportFailedError) Error() string {
	return fmt.Sprintf("relatório '%s' (job %s) falhou: %s", e.Name, e.JobID, e.Reason)
}
