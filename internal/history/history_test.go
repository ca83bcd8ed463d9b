package history

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"attendance-engine/internal/calendar"
	"attendance-engine/internal/hris"
	"attendance-engine/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeSource struct {
	mu       sync.Mutex
	days     map[string][]model.PunchEvent
	fail     map[string]error
	inFlight atomic.Int32
	peak     atomic.Int32
}

func (f *fakeSource) Employees(ctx context.Context, name string) ([]model.Employee, error) {
	return []model.Employee{{FullName: name}}, nil
}

func (f *fakeSource) Punches(ctx context.Context, name, date string) (*model.SummaryRequest, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}

	// Later days answer first so ordering is exercised.
	d, _ := calendar.ParseDay(date)
	time.Sleep(time.Duration(31-d.Day()) * time.Millisecond)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.fail[date]; ok {
		return nil, err
	}
	punches, ok := f.days[date]
	if !ok {
		return nil, hris.ErrNoData
	}
	return &model.SummaryRequest{
		Query:   model.AttendanceQuery{PersonID: name, Date: date, DefaultWorkHour: 8, BreakTimeMinutes: 60},
		Punches: punches,
	}, nil
}

func shift(date, from, to string) []model.PunchEvent {
	return []model.PunchEvent{
		{Type: model.PunchIn, Timestamp: date + " " + from},
		{Type: model.PunchOut, Timestamp: date + " " + to},
	}
}

func TestCollect(t *testing.T) {
	src := &fakeSource{days: map[string][]model.PunchEvent{
		"2024-01-01": shift("2024-01-01", "08:00:00", "17:00:00"),
		"2024-01-02": shift("2024-01-02", "08:00:00", "16:00:00"),
		"2024-01-04": shift("2024-01-04", "09:00:00", "18:00:00"),
	}}

	resp, err := Collect(context.Background(), src, "BUDI SANTOSO", "2024-01-01", "2024-01-04", Options{
		Concurrency: 2,
		MaxDays:     31,
		Now:         time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC),
		Location:    time.UTC,
	})
	require.NoError(t, err)
	require.Len(t, resp.Days, 4)

	var dates []string
	for _, d := range resp.Days {
		dates = append(dates, d.Summary.Date)
	}
	assert.Equal(t, []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04"}, dates)

	assert.InDelta(t, 8.0, resp.Days[0].Summary.TotalWorkedHours, 1e-9)
	assert.InDelta(t, 7.0, resp.Days[1].Summary.TotalWorkedHours, 1e-9)
	assert.False(t, resp.Days[2].Summary.HasData)
	assert.Equal(t, model.CodeNoPunchData, resp.Days[2].Summary.Messages[0].Code)
	assert.InDelta(t, 23.0, resp.Total, 1e-9)
	assert.LessOrEqual(t, src.peak.Load(), int32(2))
}

func TestCollectUpstreamFailure(t *testing.T) {
	boom := errors.New("boom")
	src := &fakeSource{
		days: map[string][]model.PunchEvent{},
		fail: map[string]error{"2024-01-02": boom},
	}

	_, err := Collect(context.Background(), src, "BUDI SANTOSO", "2024-01-01", "2024-01-03", Options{MaxDays: 31})
	assert.ErrorIs(t, err, boom)
}

func TestCollectRangeLimits(t *testing.T) {
	src := &fakeSource{}

	_, err := Collect(context.Background(), src, "BUDI SANTOSO", "2024-01-01", "2024-03-01", Options{MaxDays: 31})
	assert.ErrorIs(t, err, calendar.ErrRangeTooLong)

	resp, err := Collect(context.Background(), src, "BUDI SANTOSO", "2024-01-02", "2024-01-01", Options{MaxDays: 31})
	require.NoError(t, err)
	assert.Empty(t, resp.Days)
}
