package domain

const BatchItemSuccess = "SUCCESS"

// BatchItemResult é a resposta por item de uma chamada de mutação em lote.
// A plataforma retorna um resultado por item, na mesma ordem do envio, com
// o id preenchido quando a operação foi aceita.
type BatchItemResult struct {
	Code        string `json:"code"`
	KeywordID   int64  `json:"keywordId,omitempty"`
	CampaignID  int64  `json:"campaignId,omitempty"`
	AdGroupID   int64  `json:"adGroupId,omitempty"`
	Description string `json:"description,omitempty"`
	Details     string `json:"details,omitempty"`
}

func (r BatchItemResult) IsSuccess() bool {
	return r.Code == BatchItemSuccess
}
