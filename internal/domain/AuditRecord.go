package domain

import "time"

// AuditRecord é uma entrada append-only da trilha de auditoria: uma por
// MutationIntent (aplicado ou não) e uma por verificação executada.
type AuditRecord struct {
	Timestamp  time.Time  `json:"timestamp"`
	RunID      string     `json:"run_id"`
	ActionType ActionType `json:"action_type"`
	EntityType EntityType `json:"entity_type"`
	EntityID   string     `json:"entity_id"`
	OldValue   string     `json:"old_value"`
	NewValue   string     `json:"new_value"`
	Reason     string     `json:"reason"`
	DryRun     bool       `json:"dry_run"`
}
