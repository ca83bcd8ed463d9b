package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"attendance-engine/internal/calendar"
	"attendance-engine/internal/model"
)

// Summarize computes the day summary shown on the attendance board. now and
// loc decide whether the day is today, which is the only case where the
// finish-time projection is shown.
func Summarize(req *model.SummaryRequest, now time.Time, loc *time.Location) *model.SummaryResponse {
	start := time.Now()

	q := req.Query
	date := q.Date
	if date == "" && len(req.Punches) > 0 {
		date = dayOf(req.Punches[0].Timestamp)
	}

	total := TotalWorkedHours(req.Punches, q.BreakTimeMinutes)
	finish := EstimateFinishTime(req.Punches, q.DefaultWorkHour, q.BreakTimeMinutes)
	analysis := PairIntervals(req.Punches)

	summary := model.DaySummary{
		PersonID:         q.PersonID,
		Date:             date,
		LongDate:         calendar.LongDate(date),
		HasData:          len(req.Punches) > 0,
		DefaultWorkHour:  q.DefaultWorkHour,
		BreakTimeMinutes: q.BreakTimeMinutes,
		TotalWorkedHours: total,
		TotalWorkedClock: DecimalHoursToClock(total),
		QuotaMet:         QuotaMet(total, q.DefaultWorkHour),
		EstimatedFinish:  finish,
		ShowProjection:   date != "" && date == calendar.Today(now, loc) && finish != NoEstimate,
		Intervals:        analysis.Intervals,
		Rows:             rows(req.Punches),
		Messages:         messages(analysis, len(req.Punches), q.BreakTimeMinutes),
	}
	if prev, err := calendar.ShiftDay(date, -1); err == nil {
		summary.PrevDate = prev
	}
	if next, err := calendar.ShiftDay(date, 1); err == nil {
		summary.NextDate = next
	}

	elapsed := time.Since(start)
	completed := time.Now().UTC()

	return &model.SummaryResponse{
		SummaryMetadata: model.SummaryMetadata{
			SummaryID:          uuid.New().String(),
			SummaryStartedAt:   completed.Add(-elapsed).Format(time.RFC3339),
			SummaryCompletedAt: completed.Format(time.RFC3339),
			SummaryDurationMs:  elapsed.Milliseconds(),
		},
		Summary: summary,
	}
}

func rows(events []model.PunchEvent) []model.PunchRow {
	out := make([]model.PunchRow, 0, len(events))
	for _, e := range events {
		out = append(out, model.PunchRow{
			RFIDTag: e.RFIDTag,
			Time:    calendar.ShortTime(e.Timestamp),
			Type:    e.Type,
		})
	}
	return out
}

func messages(a Analysis, received int, breakTimeMinutes float64) []model.SummaryMessage {
	msgs := []model.SummaryMessage{}
	add := func(level, code, text string) {
		msgs = append(msgs, model.SummaryMessage{
			ID:      len(msgs),
			Level:   level,
			Code:    code,
			Message: text,
		})
	}

	if received == 0 {
		add(model.LevelInfo, model.CodeNoPunchData, "No punch data for this day")
		return msgs
	}
	for _, ts := range a.Unparseable {
		add(model.LevelWarning, model.CodeUnparseableTimestamp, fmt.Sprintf("Timestamp %q could not be parsed and counts as zero hours", ts))
	}
	for _, e := range a.Ignored {
		add(model.LevelInfo, model.CodeIgnoredPunchType, fmt.Sprintf("Punch type %q at %s is not counted", e.Type, e.Timestamp))
	}
	for _, e := range a.OrphanOuts {
		add(model.LevelWarning, model.CodeOrphanOut, "OUT at "+e.Timestamp+" has no matching IN")
	}
	for _, e := range a.Superseded {
		add(model.LevelWarning, model.CodeSupersededIn, "IN at "+e.Timestamp+" was followed by another IN")
	}
	if a.OpenIn != nil {
		add(model.LevelInfo, model.CodeOpenSession, "Session opened at "+a.OpenIn.Timestamp+" is still open")
	}
	if a.SingleShift {
		shift := Duration(a.Punches[0].Timestamp, a.Punches[1].Timestamp)
		if breakTimeMinutes/60 > shift {
			add(model.LevelWarning, model.CodeBreakExceedsShift, "Break time exceeds the shift length; total clamped to zero")
		}
	}
	return msgs
}
