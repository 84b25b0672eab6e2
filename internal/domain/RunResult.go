package domain

import "time"

type Feature string

const (
	FeatureBidOptimization    Feature = "bid_optimization"
	FeatureDayparting         Feature = "dayparting"
	FeatureCampaignManagement Feature = "campaign_management"
	FeatureKeywordDiscovery   Feature = "keyword_discovery"
	FeatureNegativeKeywords   Feature = "negative_keywords"
)

// AllFeatures lista todas as features na ordem em que são executadas.
func AllFeatures() []Feature {
	return []Feature{
		FeatureBidOptimization,
		FeatureDayparting,
		FeatureCampaignManagement,
		FeatureKeywordDiscovery,
		FeatureNegativeKeywords,
	}
}

func IsValidFeature(f Feature) bool {
	for _, known := range AllFeatures() {
		if f == known {
			return true
		}
	}
	return false
}

// FeatureResult resume a execução de uma feature dentro de um run.
type FeatureResult struct {
	Feature         Feature `json:"feature"`
	IntentsProduced int     `json:"intents_produced"`
	Applied         int     `json:"applied"`
	Failed          int     `json:"failed"`
	Skipped         int     `json:"skipped"`
	DurationSeconds float64 `json:"duration_seconds"`
}

// RunResult é o objeto emitido ao final de um run de otimização, consumido
// pelo notificador de status externo e persistido como resumo no warehouse.
type RunResult struct {
	RunID        string                     `json:"run_id"`
	ProfileID    string                     `json:"profile_id"`
	DryRun       bool                       `json:"dry_run"`
	StartedAt    time.Time                  `json:"started_at"`
	FinishedAt   time.Time                  `json:"finished_at"`
	Partial      bool                       `json:"partial"`
	Features     map[Feature]*FeatureResult `json:"features"`
	TotalIntents int                        `json:"total_intents"`
	TotalApplied int                        `json:"total_applied"`
	TotalFailed  int                        `json:"total_failed"`
	Errors       []string                   `json:"errors,omitempty"`
	Warnings     []string                   `json:"warnings,omitempty"`
}

func (r *RunResult) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

func (r *RunResult) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}
