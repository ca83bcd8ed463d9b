package engine

import (
	"testing"
	"time"

	"attendance-engine/internal/model"
)

var jakarta = time.FixedZone("WIB", 7*60*60)

func TestSummarizeSingleShift(t *testing.T) {
	req := &model.SummaryRequest{
		Query: model.AttendanceQuery{
			PersonID:         "BUDI SANTOSO",
			Date:             "2024-01-01",
			DefaultWorkHour:  8,
			BreakTimeMinutes: 60,
		},
		Punches: []model.PunchEvent{
			{Type: "IN", Timestamp: "2024-01-01 08:00:00.0", RFIDTag: "0012345"},
			{Type: "OUT", Timestamp: "2024-01-01 17:00:00.0", RFIDTag: "0012345"},
		},
	}

	resp := Summarize(req, time.Date(2024, 1, 1, 12, 0, 0, 0, jakarta), jakarta)

	if resp.SummaryMetadata.SummaryID == "" {
		t.Fatal("expected summary_id to be set")
	}

	s := resp.Summary
	if s.TotalWorkedHours != 8 {
		t.Fatalf("expected 8 worked hours, got %v", s.TotalWorkedHours)
	}
	if s.TotalWorkedClock != "08:00" {
		t.Fatalf("expected 08:00, got %s", s.TotalWorkedClock)
	}
	if !s.QuotaMet {
		t.Fatal("expected quota to be met")
	}
	if s.EstimatedFinish != "08:36" {
		t.Fatalf("expected estimate 08:36, got %s", s.EstimatedFinish)
	}
	if !s.ShowProjection {
		t.Fatal("expected projection to be shown for today")
	}
	if s.LongDate != "Senin, 1 Januari 2024" {
		t.Fatalf("unexpected long date %q", s.LongDate)
	}
	if s.PrevDate != "2023-12-31" || s.NextDate != "2024-01-02" {
		t.Fatalf("unexpected navigation %s / %s", s.PrevDate, s.NextDate)
	}
	if len(s.Intervals) != 1 || s.Intervals[0].Hours != 9 {
		t.Fatalf("expected one 9h interval, got %+v", s.Intervals)
	}
	if len(s.Rows) != 2 || s.Rows[0].Time != "08:00:00" || s.Rows[0].RFIDTag != "0012345" {
		t.Fatalf("unexpected rows %+v", s.Rows)
	}
	if len(s.Messages) != 0 {
		t.Fatalf("expected 0 messages, got %d", len(s.Messages))
	}
}

func TestSummarizeHidesProjectionForPastDays(t *testing.T) {
	req := &model.SummaryRequest{
		Query: model.AttendanceQuery{DefaultWorkHour: 8, BreakTimeMinutes: 60},
		Punches: []model.PunchEvent{
			{Type: "IN", Timestamp: "2024-01-01 08:00:00"},
		},
	}

	resp := Summarize(req, time.Date(2024, 1, 3, 9, 0, 0, 0, jakarta), jakarta)

	s := resp.Summary
	// Date falls back to the first punch.
	if s.Date != "2024-01-01" {
		t.Fatalf("expected date from first punch, got %q", s.Date)
	}
	if s.EstimatedFinish != "16:00" {
		t.Fatalf("expected estimate 16:00, got %s", s.EstimatedFinish)
	}
	if s.ShowProjection {
		t.Fatal("projection must only be shown for today")
	}
	if s.QuotaMet {
		t.Fatal("quota should not be met")
	}
	if len(s.Messages) != 1 || s.Messages[0].Code != model.CodeOpenSession {
		t.Fatalf("expected OPEN_SESSION, got %+v", s.Messages)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	req := &model.SummaryRequest{
		Query: model.AttendanceQuery{Date: "2024-01-01", DefaultWorkHour: 8, BreakTimeMinutes: 60},
	}

	resp := Summarize(req, time.Date(2024, 1, 1, 9, 0, 0, 0, jakarta), jakarta)

	s := resp.Summary
	if s.HasData {
		t.Fatal("expected has_data false")
	}
	if s.TotalWorkedHours != 0 || s.EstimatedFinish != NoEstimate {
		t.Fatalf("expected neutral values, got %v / %s", s.TotalWorkedHours, s.EstimatedFinish)
	}
	if s.Intervals == nil || s.Rows == nil {
		t.Fatal("expected empty, non-nil slices")
	}
	if len(s.Messages) != 1 || s.Messages[0].Code != model.CodeNoPunchData {
		t.Fatalf("expected NO_PUNCH_DATA, got %+v", s.Messages)
	}
}

func TestSummarizeDiagnostics(t *testing.T) {
	req := &model.SummaryRequest{
		Query: model.AttendanceQuery{Date: "2024-01-01", DefaultWorkHour: 8, BreakTimeMinutes: 60},
		Punches: []model.PunchEvent{
			{Type: "OUT", Timestamp: "2024-01-01 07:30:00"},
			{Type: "IN", Timestamp: "2024-01-01 08:00:00"},
			{Type: "IN", Timestamp: "2024-01-01 08:05:00"},
			{Type: "OUT", Timestamp: "2024-01-01 12:05:00"},
			{Type: "VISIT", Timestamp: "2024-01-01 12:30:00"},
			{Type: "IN", Timestamp: "13:00"},
		},
	}

	resp := Summarize(req, time.Date(2024, 1, 1, 14, 0, 0, 0, jakarta), jakarta)

	s := resp.Summary
	if s.TotalWorkedHours != 4 {
		t.Fatalf("expected 4 worked hours, got %v", s.TotalWorkedHours)
	}

	want := []string{
		model.CodeUnparseableTimestamp,
		model.CodeIgnoredPunchType,
		model.CodeOrphanOut,
		model.CodeSupersededIn,
		model.CodeOpenSession,
	}
	if len(s.Messages) != len(want) {
		t.Fatalf("expected %d messages, got %+v", len(want), s.Messages)
	}
	for i, code := range want {
		if s.Messages[i].Code != code {
			t.Fatalf("message %d: expected %s, got %s", i, code, s.Messages[i].Code)
		}
		if s.Messages[i].ID != i {
			t.Fatalf("message %d has id %d", i, s.Messages[i].ID)
		}
	}
	if len(s.Rows) != 6 {
		t.Fatalf("expected all 6 punches as rows, got %d", len(s.Rows))
	}
}

func TestSummarizeBreakExceedsShift(t *testing.T) {
	req := &model.SummaryRequest{
		Query: model.AttendanceQuery{Date: "2024-01-01", DefaultWorkHour: 8, BreakTimeMinutes: 60},
		Punches: []model.PunchEvent{
			{Type: "IN", Timestamp: "2024-01-01 08:00:00"},
			{Type: "OUT", Timestamp: "2024-01-01 08:20:00"},
		},
	}

	resp := Summarize(req, time.Date(2024, 1, 2, 9, 0, 0, 0, jakarta), jakarta)

	if resp.Summary.TotalWorkedHours != 0 {
		t.Fatalf("expected clamped total 0, got %v", resp.Summary.TotalWorkedHours)
	}
	if len(resp.Summary.Messages) != 1 || resp.Summary.Messages[0].Code != model.CodeBreakExceedsShift {
		t.Fatalf("expected BREAK_EXCEEDS_SHIFT, got %+v", resp.Summary.Messages)
	}
}
