package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"backend/internal/model"
)

func reportSnapshot() *model.InventorySnapshot {
	snap := &model.InventorySnapshot{
		GeneratedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		DurationMs:  42,
		TriggeredBy: "user-1",
		Actions: []model.InventoryAction{
			{Name: "payroll.approve", Module: "payroll", HasEvent: true, VerificationStatus: model.VerificationVerified, Roles: []string{"hr_admin"}, Effects: []string{"notification"}},
			{Name: "leave.cancel", Module: "leave", HasEvent: false, VerificationStatus: model.VerificationNoEvent, Roles: []string{}, Effects: []string{}},
		},
		Settings:    []model.InventorySetting{},
		Events:      []model.InventoryEvent{},
		Effects:     []model.InventoryEffect{{Name: "notification", Category: "messaging", IsAsync: true, IsActive: true, TriggeredBy: []string{"payroll.approve"}}},
		Triggers:    []model.InventoryTrigger{},
		Permissions: []model.RolePermissions{{Role: "hr_admin", Permissions: []string{"payroll.read"}}},
		Defects:     []model.Defect{},
		Unverified:  []model.UnverifiedEntry{},
	}
	snap.Summary = buildSummary(snap)
	return snap
}

func TestRenderMarkdownSectionOrder(t *testing.T) {
	snap := reportSnapshot()
	out := RenderMarkdown(snap)

	sections := []string{
		"# System Inventory Report",
		"## Summary",
		"## Defects",
		"## Actions",
		"## Effects",
		"## Permissions",
	}
	last := -1
	for _, s := range sections {
		idx := strings.Index(out, s)
		if idx < 0 {
			t.Fatalf("section %q missing from report", s)
		}
		if idx < last {
			t.Errorf("section %q out of order", s)
		}
		last = idx
	}
}

func TestRenderMarkdownStatusMarks(t *testing.T) {
	out := RenderMarkdown(reportSnapshot())

	if !strings.Contains(out, "| payroll.approve |") || !strings.Contains(out, "✅") {
		t.Error("expected wired action row with check mark")
	}
	if !strings.Contains(out, "| leave.cancel |") || !strings.Contains(out, "❌") {
		t.Error("expected unwired action row with cross mark")
	}
}

func TestRenderMarkdownConditionalSections(t *testing.T) {
	snap := reportSnapshot()
	out := RenderMarkdown(snap)

	// Empty triggers and unverified lists suppress their sections entirely.
	if strings.Contains(out, "## Triggers") {
		t.Error("triggers section rendered despite empty list")
	}
	if strings.Contains(out, "## Unverified") {
		t.Error("unverified section rendered despite empty list")
	}

	snap.Triggers = []model.InventoryTrigger{{Type: model.TriggerDatabase, Name: "audit_insert", TableOrSchedule: "payrolls", IsActive: true}}
	snap.Unverified = []model.UnverifiedEntry{{ComponentType: "action", ComponentName: "payroll.export", Reason: unverifiedReason}}
	out = RenderMarkdown(snap)

	if !strings.Contains(out, "## Triggers") || !strings.Contains(out, "audit_insert") {
		t.Error("triggers section missing")
	}
	if !strings.Contains(out, "## Unverified") || !strings.Contains(out, "payroll.export") {
		t.Error("unverified section missing")
	}
}

func TestRenderMarkdownTruncatesDefectTiers(t *testing.T) {
	snap := reportSnapshot()
	for i := 0; i < 25; i++ {
		name := fmt.Sprintf("setting_%02d", i)
		snap.Defects = append(snap.Defects, model.Defect{
			ID:            model.DefectID(model.DefectMissingEnforcement, name),
			Type:          model.DefectMissingEnforcement,
			Severity:      model.SeverityP0,
			ComponentType: "setting",
			ComponentName: name,
			Description:   "not enforced",
		})
	}
	for i := 0; i < 21; i++ {
		name := fmt.Sprintf("module.action_%02d", i)
		snap.Defects = append(snap.Defects, model.Defect{
			ID:            model.DefectID(model.DefectMissingEvent, name),
			Type:          model.DefectMissingEvent,
			Severity:      model.SeverityP1,
			ComponentType: "action",
			ComponentName: name,
			Description:   "no observable side effect",
		})
	}
	snap.Summary = buildSummary(snap)

	out := RenderMarkdown(snap)

	if got := strings.Count(out, "(missing_enforcement)"); got != maxListedDefects {
		t.Errorf("expected %d listed P0 defects, got %d", maxListedDefects, got)
	}
	if got := strings.Count(out, "(missing_event)"); got != maxListedDefects {
		t.Errorf("expected %d listed P1 defects, got %d", maxListedDefects, got)
	}
	if !strings.Contains(out, "... und 5 weitere") {
		t.Error("expected elision line for 5 remaining P0 defects")
	}
	if !strings.Contains(out, "... und 1 weitere") {
		t.Error("expected elision line for 1 remaining P1 defect")
	}
}
