package engine

import (
	"attendance-engine/internal/model"
)

// Analysis describes how a day's punches were paired. It is diagnostic
// only; totals always come from TotalWorkedHours.
type Analysis struct {
	Punches     []model.PunchEvent
	Intervals   []model.WorkInterval
	OrphanOuts  []model.PunchEvent
	Superseded  []model.PunchEvent
	OpenIn      *model.PunchEvent
	Unparseable []string
	Ignored     []model.PunchEvent
	SingleShift bool
}

func PairIntervals(events []model.PunchEvent) Analysis {
	a := Analysis{
		Punches:   FilterPunches(events),
		Intervals: []model.WorkInterval{},
	}

	for _, e := range events {
		if e.Type != model.PunchIn && e.Type != model.PunchOut {
			a.Ignored = append(a.Ignored, e)
			continue
		}
		if _, ok := parseTimestamp(e.Timestamp); !ok {
			a.Unparseable = append(a.Unparseable, e.Timestamp)
		}
	}

	a.SingleShift = isSingleShift(a.Punches)
	a.Intervals = append(a.Intervals, pair(a.Punches)...)

	open := -1
	for i, p := range a.Punches {
		switch p.Type {
		case model.PunchIn:
			if open != -1 {
				a.Superseded = append(a.Superseded, a.Punches[open])
			}
			open = i
		case model.PunchOut:
			if open == -1 {
				a.OrphanOuts = append(a.OrphanOuts, p)
				continue
			}
			open = -1
		}
	}
	if open != -1 {
		in := a.Punches[open]
		a.OpenIn = &in
	}
	return a
}
