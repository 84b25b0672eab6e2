package domain

type Keyword struct {
	KeywordID   int64   `json:"keywordId"`
	AdGroupID   int64   `json:"adGroupId"`
	CampaignID  int64   `json:"campaignId"`
	KeywordText string  `json:"keywordText"`
	MatchType   string  `json:"matchType"`
	State       string  `json:"state"`
	Bid         float64 `json:"bid"`
}

type KeywordUpdate struct {
	KeywordID int64    `json:"keywordId"`
	Bid       *float64 `json:"bid,omitempty"`
	State     *string  `json:"state,omitempty"`
}

type KeywordCreate struct {
	CampaignID  int64   `json:"campaignId"`
	AdGroupID   int64   `json:"adGroupId"`
	KeywordText string  `json:"keywordText"`
	MatchType   string  `json:"matchType"`
	State       string  `json:"state"`
	Bid         float64 `json:"bid"`
}

type NegativeKeyword struct {
	KeywordID   int64  `json:"keywordId"`
	CampaignID  int64  `json:"campaignId"`
	AdGroupID   int64  `json:"adGroupId,omitempty"`
	KeywordText string `json:"keywordText"`
	MatchType   string `json:"matchType"`
	State       string `json:"state"`
}

type NegativeKeywordCreate struct {
	CampaignID  int64  `json:"campaignId"`
	AdGroupID   int64  `json:"adGroupId,omitempty"`
	KeywordText string `json:"keywordText"`
	MatchType   string `json:"matchType"`
	State       string `json:"state"`
}
