package engine

import (
	"math"
	"strconv"
	"strings"

	"attendance-engine/internal/model"
)

// NoEstimate is returned by EstimateFinishTime when there is nothing to
// project: quota met, no IN punch, or an unreadable anchor timestamp.
const NoEstimate = "00:00"

// clockSnap absorbs float drift (in minutes) so 7.999999999h renders as 08:00.
const clockSnap = 1e-6

// FilterPunches keeps IN and OUT events in their received order.
func FilterPunches(events []model.PunchEvent) []model.PunchEvent {
	punches := make([]model.PunchEvent, 0, len(events))
	for _, e := range events {
		if e.Type == model.PunchIn || e.Type == model.PunchOut {
			punches = append(punches, e)
		}
	}
	return punches
}

// Duration returns the absolute number of hours between two timestamps.
// An unparseable timestamp yields 0.
func Duration(t1, t2 string) float64 {
	a, ok := parseTimestamp(t1)
	if !ok {
		return 0
	}
	b, ok := parseTimestamp(t2)
	if !ok {
		return 0
	}
	ms := b.Sub(a).Milliseconds()
	if ms < 0 {
		ms = -ms
	}
	return float64(ms) / 3_600_000
}

// TotalWorkedHours sums the worked hours of a day.
//
// A day made of exactly one IN followed by one OUT is a single shift and
// the break allowance is deducted from it. Any other shape is treated as
// multi-segment: breaks are already the gaps between intervals, so nothing
// is deducted.
func TotalWorkedHours(events []model.PunchEvent, breakTimeMinutes float64) float64 {
	punches := FilterPunches(events)
	if isSingleShift(punches) {
		return singleShift(punches, breakTimeMinutes)
	}
	return multiSegment(punches)
}

func isSingleShift(punches []model.PunchEvent) bool {
	return len(punches) == 2 && punches[0].Type == model.PunchIn && punches[1].Type == model.PunchOut
}

func singleShift(punches []model.PunchEvent, breakTimeMinutes float64) float64 {
	hours := Duration(punches[0].Timestamp, punches[1].Timestamp) - breakTimeMinutes/60
	if hours < 0 || math.IsNaN(hours) {
		return 0
	}
	return hours
}

func multiSegment(punches []model.PunchEvent) float64 {
	var total float64
	for _, iv := range pair(punches) {
		total += iv.Hours
	}
	return total
}

// pair matches each OUT with the most recent still-open IN.
func pair(punches []model.PunchEvent) []model.WorkInterval {
	var intervals []model.WorkInterval
	open := -1
	for i, p := range punches {
		switch {
		case p.Type == model.PunchIn:
			open = i
		case p.Type == model.PunchOut && open != -1:
			intervals = append(intervals, model.WorkInterval{
				In:    punches[open].Timestamp,
				Out:   p.Timestamp,
				Hours: Duration(punches[open].Timestamp, p.Timestamp),
			})
			open = -1
		}
	}
	return intervals
}

// EstimateFinishTime projects the clock time at which defaultWorkHour will be
// reached, anchored on the latest IN punch. It returns NoEstimate when the
// quota is already exceeded or there is no usable IN.
func EstimateFinishTime(events []model.PunchEvent, defaultWorkHour, breakTimeMinutes float64) string {
	punches := FilterPunches(events)
	total := TotalWorkedHours(punches, breakTimeMinutes)

	last, ok := latestIn(punches)
	if !ok || !(total <= defaultWorkHour) {
		return NoEstimate
	}
	sinceLastIn, ok := ClockStringToDecimal(last.Timestamp)
	if !ok {
		return NoEstimate
	}

	var estimate float64
	if len(punches) == 2 {
		// Break is scaled by 1/100 here, unlike the /60 in TotalWorkedHours.
		estimate = breakTimeMinutes/100 + math.Abs(defaultWorkHour) - math.Abs(total) + math.Abs(sinceLastIn)
	} else {
		estimate = math.Abs(defaultWorkHour) - math.Abs(total) + math.Abs(sinceLastIn)
	}
	return DecimalHoursToClock(estimate)
}

// latestIn picks the IN punch with the greatest timestamp; on ties the later
// punch in the list wins.
func latestIn(punches []model.PunchEvent) (model.PunchEvent, bool) {
	var last model.PunchEvent
	found := false
	for _, p := range punches {
		if p.Type != model.PunchIn {
			continue
		}
		if !found || !(last.Timestamp > p.Timestamp) {
			last = p
			found = true
		}
	}
	if last.Timestamp == "" {
		return model.PunchEvent{}, false
	}
	return last, found
}

// DecimalHoursToClock renders decimal hours as "HH:MM". Components below ten
// get a leading zero; negative input is not corrected.
func DecimalHoursToClock(decimalHours float64) string {
	if math.IsNaN(decimalHours) || math.IsInf(decimalHours, 0) {
		return NoEstimate
	}
	hours := math.Floor(decimalHours)
	minutes := math.Floor((decimalHours-hours)*60 + clockSnap)
	if minutes >= 60 {
		hours++
		minutes = 0
	}
	return padClock(int(hours)) + ":" + padClock(int(minutes))
}

func padClock(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// ClockStringToDecimal converts the time-of-day of a "YYYY-MM-DD HH:MM:SS"
// string into decimal hours. The bool is false when the string does not have
// that shape.
func ClockStringToDecimal(timestamp string) (float64, bool) {
	parts := strings.Split(timestamp, " ")
	if len(parts) != 2 {
		return 0, false
	}
	clock := strings.Split(parts[1], ":")
	if len(clock) != 3 {
		return 0, false
	}
	hours, ok := leadingInt(clock[0])
	if !ok {
		return 0, false
	}
	minutes, ok := leadingInt(clock[1])
	if !ok {
		return 0, false
	}
	seconds, ok := leadingInt(clock[2])
	if !ok {
		return 0, false
	}
	return float64(hours) + math.Round(float64(minutes))/60 + float64(seconds)/3600, true
}

// leadingInt parses the leading decimal digits of s, so "05.000" reads as 5.
func leadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t")
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}

// QuotaMet reports whether total reaches the whole-hour part of the quota.
func QuotaMet(total, defaultWorkHour float64) bool {
	return total >= math.Trunc(defaultWorkHour)
}
