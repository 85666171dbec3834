package service

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/internal/websocket"

	"github.com/google/uuid"
)

const unverifiedReason = "action declares effects but emits no verifiable event"

// ScanService runs the full introspection pass: fan out the six domain
// scanners, aggregate their outputs into one snapshot, archive it best-effort
// and notify connected dashboards.
type ScanService interface {
	RunScan(ctx context.Context, triggeredBy string) (*model.InventorySnapshot, error)
}

type scanService struct {
	actions  repository.ActionRepository
	settings repository.SettingRepository
	effects  repository.EffectRepository
	triggers repository.TriggerRepository
	perms    repository.PermissionRepository
	scans    repository.ScanRepository
	hub      *websocket.Hub // optional; nil disables notifications
}

// NewScanService wires the scanner over its metadata repositories and the
// scan-history sink.
func NewScanService(
	actions repository.ActionRepository,
	settings repository.SettingRepository,
	effects repository.EffectRepository,
	triggers repository.TriggerRepository,
	perms repository.PermissionRepository,
	scans repository.ScanRepository,
	hub *websocket.Hub,
) ScanService {
	return &scanService{
		actions:  actions,
		settings: settings,
		effects:  effects,
		triggers: triggers,
		perms:    perms,
		scans:    scans,
		hub:      hub,
	}
}

// RunScan executes one request-scoped scan. The six scanners read disjoint
// metadata slices and carry their own error boundaries, so they run
// concurrently into disjoint result slots; only the aggregation below joins
// them.
func (s *scanService) RunScan(ctx context.Context, triggeredBy string) (*model.InventorySnapshot, error) {
	start := time.Now()

	var (
		invActions     []model.InventoryAction
		actionDefects  []model.Defect
		invSettings    []model.InventorySetting
		settingDefects []model.Defect
		invEvents      []model.InventoryEvent
		invEffects     []model.InventoryEffect
		invTriggers    []model.InventoryTrigger
		invPerms       []model.RolePermissions
	)

	var wg sync.WaitGroup
	wg.Add(6)
	go func() {
		defer wg.Done()
		invActions, actionDefects = scanActions(ctx, s.actions)
	}()
	go func() {
		defer wg.Done()
		invSettings, settingDefects = scanSettings(ctx, s.settings)
	}()
	go func() {
		defer wg.Done()
		invEvents = scanEvents(ctx, s.actions)
	}()
	go func() {
		defer wg.Done()
		invEffects = scanEffects(ctx, s.effects, s.actions)
	}()
	go func() {
		defer wg.Done()
		invTriggers = scanTriggers(ctx, s.triggers)
	}()
	go func() {
		defer wg.Done()
		invPerms = scanPermissions(ctx, s.perms)
	}()
	wg.Wait()

	defects := make([]model.Defect, 0, len(actionDefects)+len(settingDefects))
	defects = append(defects, actionDefects...)
	defects = append(defects, settingDefects...)

	snapshot := &model.InventorySnapshot{
		GeneratedAt: start.UTC(),
		TriggeredBy: triggeredBy,
		Actions:     emptyIfNil(invActions),
		Settings:    emptyIfNil(invSettings),
		Events:      emptyIfNil(invEvents),
		Effects:     emptyIfNil(invEffects),
		Triggers:    emptyIfNil(invTriggers),
		Permissions: emptyIfNil(invPerms),
		Defects:     defects,
		Unverified:  deriveUnverified(invActions),
	}
	snapshot.Summary = buildSummary(snapshot)
	snapshot.DurationMs = time.Since(start).Milliseconds()

	s.persist(ctx, snapshot)
	s.notify(snapshot)

	return snapshot, nil
}

// buildSummary computes the counters over the assembled lists. Simple
// counting predicates only; the invariants (totals split cleanly by
// has_event / has_enforcement, severities sum to the defect count) fall out
// of the scanners.
func buildSummary(snap *model.InventorySnapshot) model.Summary {
	sum := model.Summary{
		TotalActions:  len(snap.Actions),
		TotalSettings: len(snap.Settings),
		TotalEvents:   len(snap.Events),
		TotalEffects:  len(snap.Effects),
		TotalTriggers: len(snap.Triggers),
		TotalRoles:    len(snap.Permissions),
		TotalDefects:  len(snap.Defects),
	}
	for _, a := range snap.Actions {
		if a.HasEvent {
			sum.ActionsWithEvents++
		} else {
			sum.ActionsWithoutEvents++
		}
	}
	for _, s := range snap.Settings {
		if s.HasEnforcement {
			sum.SettingsEnforced++
		} else {
			sum.SettingsUnenforced++
		}
	}
	for _, e := range snap.Effects {
		if e.IsActive {
			sum.ActiveEffects++
		}
	}
	for _, d := range snap.Defects {
		switch d.Severity {
		case model.SeverityP0:
			sum.DefectsP0++
		case model.SeverityP1:
			sum.DefectsP1++
		case model.SeverityP2:
			sum.DefectsP2++
		}
	}
	return sum
}

func deriveUnverified(actions []model.InventoryAction) []model.UnverifiedEntry {
	entries := []model.UnverifiedEntry{}
	for _, a := range actions {
		if a.VerificationStatus == model.VerificationUnverified {
			entries = append(entries, model.UnverifiedEntry{
				ComponentType: "action",
				ComponentName: a.Name,
				Reason:        unverifiedReason,
			})
		}
	}
	return entries
}

// persist archives the snapshot append-only: one scan row, then one row per
// defect referencing it. Both writes are best-effort; the report must not be
// lost merely because history-logging failed.
func (s *scanService) persist(ctx context.Context, snap *model.InventorySnapshot) {
	summaryJSON, err := json.Marshal(snap.Summary)
	if err != nil {
		log.Printf("failed to serialize scan summary: %v", err)
		return
	}
	payloadJSON, err := json.Marshal(snap)
	if err != nil {
		log.Printf("failed to serialize scan payload: %v", err)
		return
	}

	record := &model.ScanRecord{
		ID:          uuid.New(),
		TriggeredBy: snap.TriggeredBy,
		StartedAt:   snap.GeneratedAt,
		DurationMs:  snap.DurationMs,
		Summary:     string(summaryJSON),
		Payload:     string(payloadJSON),
		DefectCount: len(snap.Defects),
	}
	if err := s.scans.CreateScan(ctx, record); err != nil {
		log.Printf("failed to archive scan, returning in-memory result anyway: %v", err)
		return
	}
	snap.ScanID = record.ID.String()

	rows := make([]model.ScanDefect, 0, len(snap.Defects))
	for _, d := range snap.Defects {
		rows = append(rows, model.ScanDefect{
			ID:            uuid.New(),
			ScanID:        record.ID,
			DefectID:      d.ID,
			Type:          d.Type,
			Severity:      d.Severity,
			ComponentType: d.ComponentType,
			ComponentName: d.ComponentName,
			Description:   d.Description,
			SuggestedFix:  d.SuggestedFix,
		})
	}
	if err := s.scans.CreateDefects(ctx, rows); err != nil {
		log.Printf("failed to archive %d defect rows: %v", len(rows), err)
	}
}

// notify pushes a small scan-completed event to connected dashboards.
func (s *scanService) notify(snap *model.InventorySnapshot) {
	if s.hub == nil {
		return
	}
	event, err := json.Marshal(map[string]interface{}{
		"event":      "scan_completed",
		"scan_id":    snap.ScanID,
		"defects":    snap.Summary.TotalDefects,
		"defects_p0": snap.Summary.DefectsP0,
		"defects_p1": snap.Summary.DefectsP1,
	})
	if err != nil {
		return
	}
	select {
	case s.hub.Broadcast <- event:
	default:
		// Hub busy or not running; notifications are fire-and-forget.
	}
}

func emptyIfNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
