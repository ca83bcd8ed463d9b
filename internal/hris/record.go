package hris

import (
	"bytes"
	"strconv"

	json "github.com/goccy/go-json"

	"attendance-engine/internal/model"
)

// rawRecord is one row of /hris-api/raw/get. Quota and break come attached
// to every row.
type rawRecord struct {
	RFIDTag         string    `json:"rfidtag"`
	DateTime        string    `json:"dateTime"`
	Type            string    `json:"type"`
	DefaultWorkHour flexFloat `json:"defaultWorkHour"`
	BreakTime       flexFloat `json:"breakTime"`
}

type employeeRecord struct {
	FullName string `json:"fullName"`
	RFIDTag  string `json:"rfidtag"`
}

// flexFloat accepts a JSON number or a numeric string; anything else reads
// as 0.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = flexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

// toSummaryRequest splits upstream rows into punch events and a query. The
// quota and break of the first row apply to the whole day.
func toSummaryRequest(name, date string, records []rawRecord) *model.SummaryRequest {
	req := &model.SummaryRequest{
		Query: model.AttendanceQuery{
			PersonID: name,
			Date:     date,
		},
		Punches: make([]model.PunchEvent, 0, len(records)),
	}
	if len(records) > 0 {
		req.Query.DefaultWorkHour = float64(records[0].DefaultWorkHour)
		req.Query.BreakTimeMinutes = float64(records[0].BreakTime)
	}
	for _, r := range records {
		req.Punches = append(req.Punches, model.PunchEvent{
			Type:      r.Type,
			Timestamp: r.DateTime,
			RFIDTag:   r.RFIDTag,
		})
	}
	return req
}
