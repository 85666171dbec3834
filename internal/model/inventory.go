package model

import (
	"time"

	"github.com/google/uuid"
)

// Defect types
const (
	DefectMissingEvent       = "missing_event"
	DefectMissingEnforcement = "missing_enforcement"
)

// Defect severities. Severity is fixed per type: an unenforced setting gives
// users false confidence their configuration does anything, so it outranks an
// action with no observable effect.
const (
	SeverityP0 = "P0"
	SeverityP1 = "P1"
	SeverityP2 = "P2"
)

// Trigger origin variants
const (
	TriggerDatabase   = "database"
	TriggerAutomation = "automation"
	TriggerScheduled  = "scheduled"
)

// DefectID derives the deterministic defect id from defect type and component
// name. Rerunning a scan against unchanged metadata yields the same ids, which
// is what makes scan history diffable.
func DefectID(defectType, componentName string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(defectType+":"+componentName)).String()
}

// Defect is a detected inconsistency between what is declared and what is
// observably wired up. Defects are data, not errors: they ride in a
// successful scan response.
type Defect struct {
	ID            string `json:"id"`
	Type          string `json:"type"`
	Severity      string `json:"severity"`
	ComponentType string `json:"component_type"`
	ComponentName string `json:"component_name"`
	Description   string `json:"description"`
	SuggestedFix  string `json:"suggested_fix,omitempty"`
}

// InventoryAction is one registered action with its observed wiring.
type InventoryAction struct {
	Name               string   `json:"name"`
	Module             string   `json:"module"`
	EntityType         string   `json:"entity_type"`
	Roles              []string `json:"roles"`
	Effects            []string `json:"effects"`
	HasEvent           bool     `json:"has_event"`
	VerificationStatus string   `json:"verification_status"` // verified | unverified | no_event
}

// InventorySetting is one setting with the union of its declared enforcement
// points and whether that union is empty (the defect condition).
type InventorySetting struct {
	Key               string   `json:"key"`
	Module            string   `json:"module"`
	Label             string   `json:"label"`
	DataType          string   `json:"data_type"`
	EnforcementPoints []string `json:"enforcement_points"`
	HasEnforcement    bool     `json:"has_enforcement"`
	IsDefect          bool     `json:"is_defect"`
}

// InventoryEvent is one action name observed in the impact matrix with its
// distinct effect types. Actions with zero impact mappings do not appear
// here even though they appear in the actions inventory.
type InventoryEvent struct {
	ActionName  string   `json:"action_name"`
	Module      string   `json:"module"`
	EffectTypes []string `json:"effect_types"`
}

// InventoryEffect is one catalog effect annotated with the actions that
// reference it, whether or not any currently does.
type InventoryEffect struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	IsAsync     bool     `json:"is_async"`
	IsActive    bool     `json:"is_active"`
	TriggeredBy []string `json:"triggered_by"`
}

// InventoryTrigger is the normalized shape of the three heterogeneous trigger
// sources, tagged with its originating variant.
type InventoryTrigger struct {
	Type            string `json:"type"` // database | automation | scheduled
	Name            string `json:"name"`
	TableOrSchedule string `json:"table_or_schedule"`
	Condition       string `json:"condition"`
	Consequence     string `json:"consequence"`
	IsActive        bool   `json:"is_active"`
}

// RolePermissions groups the flat role/permission pairs into one entry per
// role, permissions in encounter order.
type RolePermissions struct {
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// UnverifiedEntry flags an action that declares effects but has no verified
// event trail.
type UnverifiedEntry struct {
	ComponentType string `json:"component_type"`
	ComponentName string `json:"component_name"`
	Reason        string `json:"reason"`
}

// Summary holds the counters computed over the assembled inventories.
// Invariant: total_actions == actions_with_events + actions_without_events,
// and analogously for settings.
type Summary struct {
	TotalActions         int `json:"total_actions"`
	ActionsWithEvents    int `json:"actions_with_events"`
	ActionsWithoutEvents int `json:"actions_without_events"`
	TotalSettings        int `json:"total_settings"`
	SettingsEnforced     int `json:"settings_enforced"`
	SettingsUnenforced   int `json:"settings_unenforced"`
	TotalEvents          int `json:"total_events"`
	TotalEffects         int `json:"total_effects"`
	ActiveEffects        int `json:"active_effects"`
	TotalTriggers        int `json:"total_triggers"`
	TotalRoles           int `json:"total_roles"`
	TotalDefects         int `json:"total_defects"`
	DefectsP0            int `json:"defects_p0"`
	DefectsP1            int `json:"defects_p1"`
	DefectsP2            int `json:"defects_p2"`
}

// InventorySnapshot is the aggregate result of one scan run. It is built
// fresh per invocation and archived immutably; ScanID is set once the
// history row has been written.
type InventorySnapshot struct {
	ScanID      string             `json:"scan_id,omitempty"`
	GeneratedAt time.Time          `json:"generated_at"`
	DurationMs  int64              `json:"duration_ms"`
	TriggeredBy string             `json:"triggered_by"`
	Actions     []InventoryAction  `json:"actions"`
	Settings    []InventorySetting `json:"settings"`
	Events      []InventoryEvent   `json:"events"`
	Effects     []InventoryEffect  `json:"effects"`
	Triggers    []InventoryTrigger `json:"triggers"`
	Permissions []RolePermissions  `json:"permissions"`
	Summary     Summary            `json:"summary"`
	Defects     []Defect           `json:"defects"`
	Unverified  []UnverifiedEntry  `json:"unverified"`
}
