package service

import (
	"context"
	"encoding/json"
	"errors"

	"backend/internal/model"
	"backend/internal/repository"
)

// DTOs keep jsonb payloads out of list responses; the full snapshot is only
// returned for a single scan.

type ScanSummaryResponse struct {
	ID          string        `json:"id"`
	TriggeredBy string        `json:"triggered_by"`
	StartedAt   string        `json:"started_at"`
	DurationMs  int64         `json:"duration_ms"`
	DefectCount int           `json:"defect_count"`
	Summary     model.Summary `json:"summary"`
}

type ScanDetailResponse struct {
	ScanSummaryResponse
	Payload string `json:"payload"` // serialized InventorySnapshot as archived
}

type DefectResponse struct {
	DefectID      string `json:"defect_id"`
	Type          string `json:"type"`
	Severity      string `json:"severity"`
	ComponentType string `json:"component_type"`
	ComponentName string `json:"component_name"`
	Description   string `json:"description"`
	SuggestedFix  string `json:"suggested_fix,omitempty"`
}

// HistoryService reads the append-only scan archive for history and diffing.
type HistoryService interface {
	ListScans(ctx context.Context, page, limit int) ([]ScanSummaryResponse, int64, error)
	GetScan(ctx context.Context, id string) (*ScanDetailResponse, error)
	ListDefects(ctx context.Context, scanID string, page, limit int) ([]DefectResponse, int64, error)
}

type historyService struct {
	scans repository.ScanRepository
}

// NewHistoryService creates a new HistoryService instance
func NewHistoryService(scans repository.ScanRepository) HistoryService {
	return &historyService{scans: scans}
}

func (s *historyService) ListScans(ctx context.Context, page, limit int) ([]ScanSummaryResponse, int64, error) {
	records, total, err := s.scans.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	res := make([]ScanSummaryResponse, 0, len(records))
	for _, r := range records {
		res = append(res, mapScanSummary(&r))
	}
	return res, total, nil
}

func (s *historyService) GetScan(ctx context.Context, id string) (*ScanDetailResponse, error) {
	record, err := s.scans.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("scan not found")
	}
	return &ScanDetailResponse{
		ScanSummaryResponse: mapScanSummary(record),
		Payload:             record.Payload,
	}, nil
}

func (s *historyService) ListDefects(ctx context.Context, scanID string, page, limit int) ([]DefectResponse, int64, error) {
	defects, total, err := s.scans.ListDefects(ctx, scanID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	res := make([]DefectResponse, 0, len(defects))
	for _, d := range defects {
		res = append(res, DefectResponse{
			DefectID:      d.DefectID,
			Type:          d.Type,
			Severity:      d.Severity,
			ComponentType: d.ComponentType,
			ComponentName: d.ComponentName,
			Description:   d.Description,
			SuggestedFix:  d.SuggestedFix,
		})
	}
	return res, total, nil
}

func mapScanSummary(r *model.ScanRecord) ScanSummaryResponse {
	res := ScanSummaryResponse{
		ID:          r.ID.String(),
		TriggeredBy: r.TriggeredBy,
		StartedAt:   r.StartedAt.Format("2006-01-02 15:04:05"),
		DurationMs:  r.DurationMs,
		DefectCount: r.DefectCount,
	}
	// Summary column is jsonb written by this service; a row with a
	// malformed one still lists, just with zeroed counters.
	_ = unmarshalSummary(r.Summary, &res.Summary)
	return res
}

func unmarshalSummary(raw string, into *model.Summary) error {
	if raw == "" {
		return nil
	}
	return json.Unmarshal([]byte(raw), into)
}
