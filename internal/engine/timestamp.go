package engine

import (
	"time"
)

var fallbackLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	time.RFC3339Nano,
	"2006-01-02 15:04",
}

// parseTimestamp reads "YYYY-MM-DD HH:MM:SS" (space or T separated, optional
// fractional seconds) without going through time.Parse for the common case.
// Returns zero time and false on invalid input.
func parseTimestamp(s string) (time.Time, bool) {
	if t, ok := fastParseTimestamp(s); ok {
		return t, true
	}
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func fastParseTimestamp(s string) (time.Time, bool) {
	if len(s) != 19 || s[4] != '-' || s[7] != '-' || (s[10] != ' ' && s[10] != 'T') || s[13] != ':' || s[16] != ':' {
		return time.Time{}, false
	}
	for _, i := range [...]int{0, 1, 2, 3, 5, 6, 8, 9, 11, 12, 14, 15, 17, 18} {
		if s[i] < '0' || s[i] > '9' {
			return time.Time{}, false
		}
	}
	y := int(s[0]-'0')*1000 + int(s[1]-'0')*100 + int(s[2]-'0')*10 + int(s[3]-'0')
	m := time.Month(int(s[5]-'0')*10 + int(s[6]-'0'))
	d := int(s[8]-'0')*10 + int(s[9]-'0')
	hh := int(s[11]-'0')*10 + int(s[12]-'0')
	mm := int(s[14]-'0')*10 + int(s[15]-'0')
	ss := int(s[17]-'0')*10 + int(s[18]-'0')
	if m < 1 || m > 12 || d < 1 || d > 31 || hh > 23 || mm > 59 || ss > 59 {
		return time.Time{}, false
	}
	return time.Date(y, m, d, hh, mm, ss, 0, time.UTC), true
}

// dayOf returns the date part of a timestamp, or "" when it has none.
func dayOf(ts string) string {
	t, ok := parseTimestamp(ts)
	if !ok {
		return ""
	}
	return t.Format("2006-01-02")
}
