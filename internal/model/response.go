package model

type SummaryResponse struct {
	SummaryMetadata SummaryMetadata `json:"summary_metadata"`
	Summary         DaySummary      `json:"summary"`
}

type SummaryMetadata struct {
	SummaryID          string `json:"summary_id"`
	SummaryStartedAt   string `json:"summary_started_at"`
	SummaryCompletedAt string `json:"summary_completed_at"`
	SummaryDurationMs  int64  `json:"summary_duration_ms"`
}

type DaySummary struct {
	PersonID         string           `json:"person_id"`
	Date             string           `json:"date"`
	LongDate         string           `json:"long_date"`
	PrevDate         string           `json:"prev_date"`
	NextDate         string           `json:"next_date"`
	HasData          bool             `json:"has_data"`
	DefaultWorkHour  float64          `json:"default_work_hour"`
	BreakTimeMinutes float64          `json:"break_time_minutes"`
	TotalWorkedHours float64          `json:"total_worked_hours"`
	TotalWorkedClock string           `json:"total_worked_clock"`
	QuotaMet         bool             `json:"quota_met"`
	EstimatedFinish  string           `json:"estimated_finish"`
	ShowProjection   bool             `json:"show_projection"`
	Intervals        []WorkInterval   `json:"intervals"`
	Rows             []PunchRow       `json:"rows"`
	Messages         []SummaryMessage `json:"messages"`
}

// WorkInterval is a matched IN/OUT pair.
type WorkInterval struct {
	In    string  `json:"in"`
	Out   string  `json:"out"`
	Hours float64 `json:"hours"`
}

// PunchRow is a punch as shown in the attendance table.
type PunchRow struct {
	RFIDTag string `json:"rfid_tag"`
	Time    string `json:"time"`
	Type    string `json:"type"`
}

type HistoryResponse struct {
	Name  string            `json:"name"`
	From  string            `json:"from"`
	To    string            `json:"to"`
	Days  []SummaryResponse `json:"days"`
	Total float64           `json:"total_worked_hours"`
}

type EmployeesResponse struct {
	Employees []Employee `json:"employees"`
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}
