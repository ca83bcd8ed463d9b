package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"attendance-engine/internal/calendar"
	"attendance-engine/internal/engine"
	"attendance-engine/internal/hris"
	"attendance-engine/internal/model"
)

type Options struct {
	// Concurrency bounds in-flight upstream requests; <= 0 means unbounded.
	Concurrency int
	MaxDays     int
	Now         time.Time
	Location    *time.Location
}

// Day fetches and summarises a single day. A day without punches yields an
// empty summary instead of an error.
func Day(ctx context.Context, src hris.Source, name, date string, now time.Time, loc *time.Location) (*model.SummaryResponse, error) {
	req, err := src.Punches(ctx, name, date)
	if errors.Is(err, hris.ErrNoData) {
		req = &model.SummaryRequest{
			Query:   model.AttendanceQuery{PersonID: name, Date: date},
			Punches: []model.PunchEvent{},
		}
	} else if err != nil {
		return nil, fmt.Errorf("fetch punches for %s: %w", date, err)
	}
	return engine.Summarize(req, now, loc), nil
}

// Collect summarises every day in from..to, fetching days concurrently. Days
// come back in calendar order.
func Collect(ctx context.Context, src hris.Source, name, from, to string, opts Options) (*model.HistoryResponse, error) {
	days, err := calendar.Days(from, to, opts.MaxDays)
	if err != nil {
		return nil, err
	}

	results := make([]model.SummaryResponse, len(days))
	g, gctx := errgroup.WithContext(ctx)
	if opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	}
	for i, day := range days {
		i, day := i, day
		g.Go(func() error {
			resp, err := Day(gctx, src, name, day, opts.Now, opts.Location)
			if err != nil {
				return err
			}
			results[i] = *resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &model.HistoryResponse{
		Name: name,
		From: from,
		To:   to,
		Days: results,
	}
	for _, d := range results {
		out.Total += d.Summary.TotalWorkedHours
	}
	return out, nil
}
