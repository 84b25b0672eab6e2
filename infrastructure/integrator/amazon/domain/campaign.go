package domain

// Campaign é o formato de campanha retornado pelo endpoint /v2/sp/campaigns.
type Campaign struct {
	CampaignID    int64   `json:"campaignId"`
	Name          string  `json:"name"`
	State         string  `json:"state"`
	DailyBudget   float64 `json:"dailyBudget"`
	TargetingType string  `json:"targetingType"`
}

// CampaignUpdate é um item de atualização em lote de campanhas. Campos nil
// não são enviados.
type CampaignUpdate struct {
	CampaignID  int64    `json:"campaignId"`
	State       *string  `json:"state,omitempty"`
	DailyBudget *float64 `json:"dailyBudget,omitempty"`
}
