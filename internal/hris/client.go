package hris

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"attendance-engine/internal/model"
)

const (
	employeePath = "/hris-api/employee/get"
	rawPath      = "/hris-api/raw/get"
)

// ErrNoData is returned when the time clock has no punches for the day.
var ErrNoData = errors.New("hris: no punch data")

// StatusError reports an unexpected upstream status code.
type StatusError struct {
	Path   string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("hris: %s returned status %d", e.Path, e.Status)
}

// Source is where employees and punches come from.
type Source interface {
	Employees(ctx context.Context, name string) ([]model.Employee, error)
	Punches(ctx context.Context, name, date string) (*model.SummaryRequest, error)
}

type Client struct {
	baseURL string
	timeout time.Duration
	http    *fasthttp.Client
}

func NewClient(baseURL string, timeout time.Duration, maxConns int) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		http: &fasthttp.Client{
			Name:                "attendance-engine",
			MaxConnsPerHost:     maxConns,
			MaxIdleConnDuration: 90 * time.Second,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
		},
	}
}

// Employees looks up employees by (partial) name. Names shorter than four
// letters are not searched. Any non-200 answer means no match.
func (c *Client) Employees(ctx context.Context, name string) ([]model.Employee, error) {
	name = NormalizeName(name)
	if !searchable(name) {
		return []model.Employee{}, nil
	}

	status, body, err := c.get(ctx, employeePath, "name", name)
	if err != nil {
		return nil, err
	}
	if status != fasthttp.StatusOK {
		return []model.Employee{}, nil
	}

	var records []employeeRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("hris: decode employees: %w", err)
	}
	employees := make([]model.Employee, 0, len(records))
	for _, r := range records {
		employees = append(employees, model.Employee{FullName: r.FullName, RFIDTag: r.RFIDTag})
	}
	return employees, nil
}

// Punches fetches the raw punches of name on date ("YYYY-MM-DD").
func (c *Client) Punches(ctx context.Context, name, date string) (*model.SummaryRequest, error) {
	status, body, err := c.get(ctx, rawPath, "name", name, "date", date)
	if err != nil {
		return nil, err
	}
	switch status {
	case fasthttp.StatusOK:
	case fasthttp.StatusNoContent:
		return nil, ErrNoData
	default:
		return nil, &StatusError{Path: rawPath, Status: status}
	}

	var records []rawRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("hris: decode punches: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNoData
	}
	return toSummaryRequest(name, date, records), nil
}

func (c *Client) get(ctx context.Context, path string, kv ...string) (int, []byte, error) {
	if err := ctx.Err(); err != nil {
		return 0, nil, err
	}
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		left := time.Until(deadline)
		if left <= 0 {
			return 0, nil, context.DeadlineExceeded
		}
		if timeout <= 0 || left < timeout {
			timeout = left
		}
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(fasthttp.MethodGet)
	args := req.URI().QueryArgs()
	for i := 0; i+1 < len(kv); i += 2 {
		args.Set(kv[i], kv[i+1])
	}

	var err error
	if timeout > 0 {
		err = c.http.DoTimeout(req, resp, timeout)
	} else {
		err = c.http.Do(req, resp)
	}
	if err != nil {
		return 0, nil, fmt.Errorf("hris: get %s: %w", path, err)
	}
	body := append([]byte(nil), resp.Body()...)
	return resp.StatusCode(), body, nil
}
