package domain

type EntityType string

const (
	EntityTypeCampaign        EntityType = "CAMPAIGN"
	EntityTypeAdGroup         EntityType = "AD_GROUP"
	EntityTypeKeyword         EntityType = "KEYWORD"
	EntityTypeNegativeKeyword EntityType = "NEGATIVE_KEYWORD"
)

type EntityState string

const (
	EntityStateEnabled  EntityState = "enabled"
	EntityStatePaused   EntityState = "paused"
	EntityStateArchived EntityState = "archived"
)

type Campaign struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	State         EntityState `json:"state"`
	DailyBudget   float64     `json:"daily_budget"`
	TargetingType string      `json:"targeting_type"`
}

type AdGroup struct {
	ID         string      `json:"id"`
	CampaignID string      `json:"campaign_id"`
	Name       string      `json:"name"`
	State      EntityState `json:"state"`
	DefaultBid float64     `json:"default_bid"`
}

type MatchType string

const (
	MatchTypeExact          MatchType = "exact"
	MatchTypePhrase         MatchType = "phrase"
	MatchTypeBroad          MatchType = "broad"
	MatchTypeNegativePhrase MatchType = "negativePhrase"
	MatchTypeNegativeExact  MatchType = "negativeExact"
)

type Keyword struct {
	ID         string      `json:"id"`
	AdGroupID  string      `json:"ad_group_id"`
	CampaignID string      `json:"campaign_id"`
	Text       string      `json:"text"`
	MatchType  MatchType   `json:"match_type"`
	State      EntityState `json:"state"`
	Bid        float64     `json:"bid"`
}

type NegativeKeyword struct {
	ID         string    `json:"id"`
	CampaignID string    `json:"campaign_id"`
	AdGroupID  string    `json:"ad_group_id,omitempty"`
	Text       string    `json:"text"`
	MatchType  MatchType `json:"match_type"`
}
