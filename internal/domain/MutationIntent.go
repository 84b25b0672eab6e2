package domain

type ActionType string

const (
	ActionTypeBidUpdate          ActionType = "BID_UPDATE"
	ActionTypeDaypartingAdjust   ActionType = "DAYPARTING_ADJUSTMENT"
	ActionTypeCampaignPause      ActionType = "CAMPAIGN_PAUSE"
	ActionTypeCampaignActivate   ActionType = "CAMPAIGN_ACTIVATE"
	ActionTypeBudgetUpdate       ActionType = "BUDGET_UPDATE"
	ActionTypeKeywordCreate      ActionType = "KEYWORD_CREATE"
	ActionTypeNegativeKeywordAdd ActionType = "NEGATIVE_KEYWORD_ADD"
	ActionTypeVerificationCheck  ActionType = "VERIFICATION_CHECK"
)

type MutationField string

const (
	MutationFieldBid    MutationField = "bid"
	MutationFieldState  MutationField = "state"
	MutationFieldBudget MutationField = "budget"
	MutationFieldText   MutationField = "text"
)

// MutationIntent representa uma alteração que o motor de decisão propõe para
// uma entidade. É imutável após criada e consumida exatamente uma vez pelo
// BatchMutator.
type MutationIntent struct {
	EntityID   string        `json:"entity_id"`
	EntityType EntityType    `json:"entity_type"`
	Action     ActionType    `json:"action"`
	Field      MutationField `json:"field"`
	OldValue   string        `json:"old_value"`
	NewValue   string        `json:"new_value"`
	Reason     string        `json:"reason"`
	Confidence float64       `json:"confidence"`

	// Payload carrega os dados necessários para montar a chamada de
	// mutação (ex.: proposta de keyword nova com campaignId/adGroupId).
	Payload map[string]any `json:"payload,omitempty"`
}

// MutationResult é o resultado terminal da aplicação de um intent, um para um.
type MutationResult struct {
	Intent  MutationIntent `json:"intent"`
	Applied bool           `json:"applied"`
	DryRun  bool           `json:"dry_run"`
	Error   string         `json:"error,omitempty"`
}
