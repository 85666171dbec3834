package service

import (
	"context"
	"testing"
	"time"

	"backend/internal/model"

	"github.com/google/uuid"
)

func TestHistoryServiceListScans(t *testing.T) {
	scans := &mockScanRepo{
		scans: []model.ScanRecord{
			{
				ID:          uuid.New(),
				TriggeredBy: "user-1",
				StartedAt:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
				DurationMs:  42,
				Summary:     `{"total_actions":3,"defects_p0":1}`,
				DefectCount: 2,
			},
		},
	}

	svc := NewHistoryService(scans)
	list, total, err := svc.ListScans(context.Background(), 1, 20)
	if err != nil {
		t.Fatalf("ListScans: %v", err)
	}
	if total != 1 || len(list) != 1 {
		t.Fatalf("expected 1 scan, got total=%d len=%d", total, len(list))
	}
	got := list[0]
	if got.Summary.TotalActions != 3 || got.Summary.DefectsP0 != 1 {
		t.Errorf("summary column not decoded: %+v", got.Summary)
	}
	if got.DefectCount != 2 || got.TriggeredBy != "user-1" {
		t.Errorf("unexpected scan summary: %+v", got)
	}
}

func TestHistoryServiceMalformedSummaryDegrades(t *testing.T) {
	scans := &mockScanRepo{
		scans: []model.ScanRecord{
			{ID: uuid.New(), Summary: `{not json`, DefectCount: 1},
		},
	}

	svc := NewHistoryService(scans)
	list, _, err := svc.ListScans(context.Background(), 1, 20)
	if err != nil {
		t.Fatalf("a malformed summary row must still list: %v", err)
	}
	if list[0].Summary.TotalActions != 0 {
		t.Errorf("expected zeroed counters, got %+v", list[0].Summary)
	}
}

func TestHistoryServiceGetScanNotFound(t *testing.T) {
	svc := NewHistoryService(&mockScanRepo{})
	if _, err := svc.GetScan(context.Background(), uuid.NewString()); err == nil {
		t.Error("expected error for unknown scan id")
	}
}
