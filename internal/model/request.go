package model

const (
	PunchIn  = "IN"
	PunchOut = "OUT"
)

// PunchEvent is a single record from the time clock. Timestamp uses the
// "YYYY-MM-DD HH:MM:SS" layout.
type PunchEvent struct {
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
	RFIDTag   string `json:"rfid_tag,omitempty"`
}

// AttendanceQuery carries the per-day parameters that the time clock used to
// attach to every punch record.
type AttendanceQuery struct {
	PersonID         string  `json:"person_id"`
	Date             string  `json:"date"`
	DefaultWorkHour  float64 `json:"default_work_hour"`
	BreakTimeMinutes float64 `json:"break_time_minutes"`
}

type SummaryRequest struct {
	Query   AttendanceQuery `json:"query"`
	Punches []PunchEvent    `json:"punches"`
}

type Employee struct {
	FullName string `json:"full_name"`
	RFIDTag  string `json:"rfid_tag,omitempty"`
}
