package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"backend/internal/model"
	"backend/internal/repository"
)

// The six domain scanners. Each is a pure read over its slice of the
// metadata store: (repositories) -> (inventory list, defect list). A failed
// read is logged and the scanner contributes an empty result so one broken
// metadata source never blocks the whole report.

// scanActions inventories every registered action and derives missing_event
// defects for actions with neither impact mappings nor event mappings.
func scanActions(ctx context.Context, repo repository.ActionRepository) ([]model.InventoryAction, []model.Defect) {
	actions, err := repo.ListActiveActions(ctx)
	if err != nil {
		log.Printf("action scanner: failed to load action registry: %v", err)
		return nil, nil
	}
	impacts, err := repo.ListActiveImpactMappings(ctx)
	if err != nil {
		log.Printf("action scanner: failed to load impact matrix: %v", err)
		return nil, nil
	}
	events, err := repo.ListEventMappings(ctx)
	if err != nil {
		log.Printf("action scanner: failed to load event mappings: %v", err)
		return nil, nil
	}

	impactsByAction := make(map[string][]string)
	for _, m := range impacts {
		impactsByAction[m.ActionName] = appendUnique(impactsByAction[m.ActionName], m.EffectType)
	}
	eventsByAction := make(map[string][]model.EventMapping)
	for _, e := range events {
		eventsByAction[e.ActionName] = append(eventsByAction[e.ActionName], e)
	}

	inventory := make([]model.InventoryAction, 0, len(actions))
	var defects []model.Defect
	for _, a := range actions {
		effects := impactsByAction[a.Name]
		if effects == nil {
			effects = []string{}
		}
		actionEvents := eventsByAction[a.Name]
		hasEvent := len(effects) > 0 || len(actionEvents) > 0

		// Precedence: an event mapping's own status wins; effects without an
		// event mapping are unverified; neither means no_event.
		var status string
		switch {
		case len(actionEvents) > 0:
			status = actionEvents[0].VerificationStatus
		case len(effects) > 0:
			status = model.VerificationUnverified
		default:
			status = model.VerificationNoEvent
		}

		inventory = append(inventory, model.InventoryAction{
			Name:               a.Name,
			Module:             a.Module,
			EntityType:         a.EntityType,
			Roles:              a.Roles,
			Effects:            effects,
			HasEvent:           hasEvent,
			VerificationStatus: status,
		})

		if !hasEvent {
			defects = append(defects, model.Defect{
				ID:            model.DefectID(model.DefectMissingEvent, a.Name),
				Type:          model.DefectMissingEvent,
				Severity:      model.SeverityP1,
				ComponentType: "action",
				ComponentName: a.Name,
				Description:   fmt.Sprintf("action %q declares no effects and emits no events; it silently has no observable side effect", a.Name),
				SuggestedFix:  "declare an impact mapping or wire an event emitter for this action",
			})
		}
	}
	return inventory, defects
}

// scanSettings inventories every setting with the union of its inline and
// externally recorded enforcement points, deriving missing_enforcement
// defects where the union is empty.
func scanSettings(ctx context.Context, repo repository.SettingRepository) ([]model.InventorySetting, []model.Defect) {
	settings, err := repo.ListActiveSettings(ctx)
	if err != nil {
		log.Printf("settings scanner: failed to load setting definitions: %v", err)
		return nil, nil
	}
	points, err := repo.ListEnforcementPoints(ctx)
	if err != nil {
		log.Printf("settings scanner: failed to load enforcement points: %v", err)
		return nil, nil
	}

	pointsByKey := make(map[string][]string)
	for _, p := range points {
		pointsByKey[p.SettingKey] = append(pointsByKey[p.SettingKey], p.EnforcementType)
	}

	inventory := make([]model.InventorySetting, 0, len(settings))
	var defects []model.Defect
	for _, s := range settings {
		// Set union, inline declarations first. Only non-emptiness matters
		// for the defect condition.
		union := []string{}
		for _, e := range s.Enforcement {
			union = appendUnique(union, e)
		}
		for _, e := range pointsByKey[s.Key] {
			union = appendUnique(union, e)
		}
		hasEnforcement := len(union) > 0

		inventory = append(inventory, model.InventorySetting{
			Key:               s.Key,
			Module:            s.Module,
			Label:             s.Label,
			DataType:          s.DataType,
			EnforcementPoints: union,
			HasEnforcement:    hasEnforcement,
			IsDefect:          !hasEnforcement,
		})

		if !hasEnforcement {
			defects = append(defects, model.Defect{
				ID:            model.DefectID(model.DefectMissingEnforcement, s.Key),
				Type:          model.DefectMissingEnforcement,
				Severity:      model.SeverityP0,
				ComponentType: "setting",
				ComponentName: s.Key,
				Description:   fmt.Sprintf("setting %q is not enforced anywhere; configuring it has no effect", s.Key),
				SuggestedFix:  "add an enforcement point (UI, API, trigger or policy) that reads this setting",
			})
		}
	}
	return inventory, defects
}

// scanEvents inventories one entry per action name observed in the impact
// matrix. Actions with zero impact mappings do not appear here even though
// the action scanner lists them; consumers joining both inventories by name
// must not assume equal coverage.
func scanEvents(ctx context.Context, repo repository.ActionRepository) []model.InventoryEvent {
	impacts, err := repo.ListActiveImpactMappings(ctx)
	if err != nil {
		log.Printf("event scanner: failed to load impact matrix: %v", err)
		return nil
	}

	order := make([]string, 0)
	effectsByAction := make(map[string][]string)
	for _, m := range impacts {
		if _, seen := effectsByAction[m.ActionName]; !seen {
			order = append(order, m.ActionName)
		}
		effectsByAction[m.ActionName] = appendUnique(effectsByAction[m.ActionName], m.EffectType)
	}

	inventory := make([]model.InventoryEvent, 0, len(order))
	for _, name := range order {
		inventory = append(inventory, model.InventoryEvent{
			ActionName:  name,
			Module:      moduleOf(name),
			EffectTypes: effectsByAction[name],
		})
	}
	return inventory
}

// scanEffects inventories the full effect catalog, annotating each effect
// with the actions referencing it (reverse index of the impact matrix).
func scanEffects(ctx context.Context, effects repository.EffectRepository, actions repository.ActionRepository) []model.InventoryEffect {
	catalog, err := effects.ListEffectTypes(ctx)
	if err != nil {
		log.Printf("effect scanner: failed to load effect catalog: %v", err)
		return nil
	}
	impacts, err := actions.ListActiveImpactMappings(ctx)
	if err != nil {
		log.Printf("effect scanner: failed to load impact matrix: %v", err)
		return nil
	}

	actionsByEffect := make(map[string][]string)
	for _, m := range impacts {
		actionsByEffect[m.EffectType] = appendUnique(actionsByEffect[m.EffectType], m.ActionName)
	}

	inventory := make([]model.InventoryEffect, 0, len(catalog))
	for _, e := range catalog {
		triggeredBy := actionsByEffect[e.Name]
		if triggeredBy == nil {
			triggeredBy = []string{}
		}
		inventory = append(inventory, model.InventoryEffect{
			Name:        e.Name,
			Category:    e.Category,
			IsAsync:     e.IsAsync,
			IsActive:    e.IsActive,
			TriggeredBy: triggeredBy,
		})
	}
	return inventory
}

// scanTriggers concatenates the three trigger sources into the normalized
// tagged shape. Each source degrades independently: an unavailable source
// contributes an empty list instead of aborting the scan.
func scanTriggers(ctx context.Context, repo repository.TriggerRepository) []model.InventoryTrigger {
	var inventory []model.InventoryTrigger

	dbTriggers, err := repo.ListDatabaseTriggers(ctx)
	if err != nil {
		log.Printf("trigger scanner: database trigger introspection unavailable: %v", err)
	} else {
		inventory = append(inventory, dbTriggers...)
	}

	workflows, err := repo.ListWorkflowRules(ctx)
	if err != nil {
		log.Printf("trigger scanner: workflow rules unavailable: %v", err)
	} else {
		for _, w := range workflows {
			t := model.InventoryTrigger{
				Type:            model.TriggerAutomation,
				Name:            w.Name,
				TableOrSchedule: w.TriggerEvent,
				Condition:       w.Condition,
				Consequence:     w.Consequence,
				IsActive:        w.IsActive,
			}
			if w.Schedule != "" {
				t.Type = model.TriggerScheduled
				t.TableOrSchedule = w.Schedule
			}
			inventory = append(inventory, t)
		}
	}

	tickets, err := repo.ListTicketRules(ctx)
	if err != nil {
		log.Printf("trigger scanner: ticket rules unavailable: %v", err)
	} else {
		for _, t := range tickets {
			inventory = append(inventory, model.InventoryTrigger{
				Type:            model.TriggerAutomation,
				Name:            t.Name,
				TableOrSchedule: "tickets",
				Condition:       t.Condition,
				Consequence:     t.Consequence,
				IsActive:        t.IsActive,
			})
		}
	}

	return inventory
}

// scanPermissions groups the flat role/permission pairs into one entry per
// role, permissions concatenated in encounter order.
func scanPermissions(ctx context.Context, repo repository.PermissionRepository) []model.RolePermissions {
	pairs, err := repo.ListRolePermissions(ctx)
	if err != nil {
		log.Printf("permission scanner: failed to load role permissions: %v", err)
		return nil
	}

	order := make([]string, 0)
	permsByRole := make(map[string][]string)
	for _, p := range pairs {
		if _, seen := permsByRole[p.Role]; !seen {
			order = append(order, p.Role)
		}
		permsByRole[p.Role] = append(permsByRole[p.Role], p.Permission)
	}

	inventory := make([]model.RolePermissions, 0, len(order))
	for _, role := range order {
		inventory = append(inventory, model.RolePermissions{Role: role, Permissions: permsByRole[role]})
	}
	return inventory
}

// moduleOf projects the module from a dot-namespaced action name.
func moduleOf(actionName string) string {
	segments := strings.Split(actionName, ".")
	if len(segments) == 0 || segments[0] == "" {
		return "unknown"
	}
	return segments[0]
}

func appendUnique(list []string, value string) []string {
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}
