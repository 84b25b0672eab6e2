package domain

type AdGroup struct {
	AdGroupID  int64   `json:"adGroupId"`
	CampaignID int64   `json:"campaignId"`
	Name       string  `json:"name"`
	State      string  `json:"state"`
	DefaultBid float64 `json:"defaultBid"`
}
