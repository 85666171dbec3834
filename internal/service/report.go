package service

import (
	"fmt"
	"sort"
	"strings"

	"backend/internal/model"
)

// maxListedDefects caps how many defects are listed verbatim per severity
// tier in the markdown report. A readability cap, not a data-loss mechanism:
// the JSON mode always carries everything.
const maxListedDefects = 20

// RenderMarkdown formats the snapshot as a human-readable report with a
// fixed section order: title, generation metadata, summary, defects by
// severity, actions per module, effects, triggers, permissions, unverified.
func RenderMarkdown(snap *model.InventorySnapshot) string {
	var b strings.Builder

	b.WriteString("# System Inventory Report\n\n")
	fmt.Fprintf(&b, "Generated: %s  \n", snap.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "Duration: %d ms  \n", snap.DurationMs)
	fmt.Fprintf(&b, "Triggered by: %s\n\n", snap.TriggeredBy)

	writeSummary(&b, snap.Summary)
	writeDefects(&b, snap)
	writeActions(&b, snap.Actions)
	writeEffects(&b, snap.Effects)
	writeTriggers(&b, snap.Triggers)
	writePermissions(&b, snap.Permissions)
	writeUnverified(&b, snap.Unverified)

	return b.String()
}

func writeSummary(b *strings.Builder, sum model.Summary) {
	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Count |\n|---|---|\n")
	fmt.Fprintf(b, "| Actions | %d |\n", sum.TotalActions)
	fmt.Fprintf(b, "| Actions with events | %d |\n", sum.ActionsWithEvents)
	fmt.Fprintf(b, "| Actions without events | %d |\n", sum.ActionsWithoutEvents)
	fmt.Fprintf(b, "| Settings | %d |\n", sum.TotalSettings)
	fmt.Fprintf(b, "| Settings enforced | %d |\n", sum.SettingsEnforced)
	fmt.Fprintf(b, "| Settings unenforced | %d |\n", sum.SettingsUnenforced)
	fmt.Fprintf(b, "| Effects (active) | %d (%d) |\n", sum.TotalEffects, sum.ActiveEffects)
	fmt.Fprintf(b, "| Triggers | %d |\n", sum.TotalTriggers)
	fmt.Fprintf(b, "| Roles | %d |\n", sum.TotalRoles)
	b.WriteString("\n")
}

func writeDefects(b *strings.Builder, snap *model.InventorySnapshot) {
	b.WriteString("## Defects\n\n")
	fmt.Fprintf(b, "P0: %d, P1: %d, P2: %d\n\n",
		snap.Summary.DefectsP0, snap.Summary.DefectsP1, snap.Summary.DefectsP2)

	writeDefectTier(b, snap.Defects, model.SeverityP0)
	writeDefectTier(b, snap.Defects, model.SeverityP1)
}

func writeDefectTier(b *strings.Builder, defects []model.Defect, severity string) {
	var tier []model.Defect
	for _, d := range defects {
		if d.Severity == severity {
			tier = append(tier, d)
		}
	}
	if len(tier) == 0 {
		return
	}

	fmt.Fprintf(b, "### %s\n\n", severity)
	listed := tier
	if len(listed) > maxListedDefects {
		listed = listed[:maxListedDefects]
	}
	for _, d := range listed {
		fmt.Fprintf(b, "- **%s** (%s): %s\n", d.ComponentName, d.Type, d.Description)
	}
	if remainder := len(tier) - maxListedDefects; remainder > 0 {
		fmt.Fprintf(b, "- ... und %d weitere\n", remainder)
	}
	b.WriteString("\n")
}

func writeActions(b *strings.Builder, actions []model.InventoryAction) {
	b.WriteString("## Actions\n\n")

	byModule := make(map[string][]model.InventoryAction)
	for _, a := range actions {
		byModule[a.Module] = append(byModule[a.Module], a)
	}
	modules := make([]string, 0, len(byModule))
	for m := range byModule {
		modules = append(modules, m)
	}
	sort.Strings(modules)

	for _, m := range modules {
		fmt.Fprintf(b, "### %s\n\n", m)
		b.WriteString("| Action | Entity | Roles | Effects | Event | Status |\n|---|---|---|---|---|---|\n")
		for _, a := range byModule[m] {
			mark := "❌"
			if a.HasEvent {
				mark = "✅"
			}
			fmt.Fprintf(b, "| %s | %s | %s | %s | %s | %s |\n",
				a.Name, a.EntityType, strings.Join(a.Roles, ", "),
				strings.Join(a.Effects, ", "), mark, a.VerificationStatus)
		}
		b.WriteString("\n")
	}
}

func writeEffects(b *strings.Builder, effects []model.InventoryEffect) {
	b.WriteString("## Effects\n\n")
	if len(effects) == 0 {
		b.WriteString("_none_\n\n")
		return
	}
	b.WriteString("| Effect | Category | Async | Active | Triggered by |\n|---|---|---|---|---|\n")
	for _, e := range effects {
		fmt.Fprintf(b, "| %s | %s | %s | %s | %s |\n",
			e.Name, e.Category, yesNo(e.IsAsync), yesNo(e.IsActive), strings.Join(e.TriggeredBy, ", "))
	}
	b.WriteString("\n")
}

func writeTriggers(b *strings.Builder, triggers []model.InventoryTrigger) {
	if len(triggers) == 0 {
		return
	}
	b.WriteString("## Triggers\n\n")
	b.WriteString("| Type | Name | Table/Schedule | Condition | Consequence | Active |\n|---|---|---|---|---|---|\n")
	for _, t := range triggers {
		fmt.Fprintf(b, "| %s | %s | %s | %s | %s | %s |\n",
			t.Type, t.Name, t.TableOrSchedule, t.Condition, t.Consequence, yesNo(t.IsActive))
	}
	b.WriteString("\n")
}

func writePermissions(b *strings.Builder, perms []model.RolePermissions) {
	b.WriteString("## Permissions\n\n")
	if len(perms) == 0 {
		b.WriteString("_none_\n\n")
		return
	}
	for _, rp := range perms {
		fmt.Fprintf(b, "### %s\n\n", rp.Role)
		for _, p := range rp.Permissions {
			fmt.Fprintf(b, "- %s\n", p)
		}
		b.WriteString("\n")
	}
}

func writeUnverified(b *strings.Builder, entries []model.UnverifiedEntry) {
	if len(entries) == 0 {
		return
	}
	b.WriteString("## Unverified\n\n")
	for _, e := range entries {
		fmt.Fprintf(b, "- %s: %s\n", e.ComponentName, e.Reason)
	}
	b.WriteString("\n")
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
