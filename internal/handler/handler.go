package handler

import (
	"context"
	"errors"
	"time"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"attendance-engine/internal/calendar"
	"attendance-engine/internal/engine"
	"attendance-engine/internal/history"
	"attendance-engine/internal/hris"
	"attendance-engine/internal/model"
)

const defaultHistoryDays = 7

type Options struct {
	Location       *time.Location
	RequestTimeout time.Duration
	History        history.Options
}

type Handler struct {
	src  hris.Source
	log  *zap.Logger
	opts Options
	now  func() time.Time
}

// New builds the HTTP handler. src may be nil, in which case only the
// summary endpoint is served.
func New(src hris.Source, logger *zap.Logger, opts Options) *Handler {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &Handler{
		src:  src,
		log:  logger,
		opts: opts,
		now:  time.Now,
	}
}

func (h *Handler) Handle(ctx *fasthttp.RequestCtx) {
	start := time.Now()

	switch string(ctx.Path()) {
	case "/healthz":
		writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
	case "/v1/attendance/summary":
		h.handleSummary(ctx)
	case "/v1/attendance":
		h.handleAttendance(ctx)
	case "/v1/attendance/history":
		h.handleHistory(ctx)
	case "/v1/employees":
		h.handleEmployees(ctx)
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found")
	}

	h.log.Debug("request handled",
		zap.ByteString("method", ctx.Method()),
		zap.ByteString("path", ctx.Path()),
		zap.Int("status", ctx.Response.StatusCode()),
		zap.Duration("elapsed", time.Since(start)))
}

func (h *Handler) handleSummary(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req model.SummaryRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Query.Date != "" {
		if _, err := calendar.ParseDay(req.Query.Date); err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, "Invalid date: "+req.Query.Date)
			return
		}
	}

	resp := engine.Summarize(&req, h.now(), h.opts.Location)
	writeJSON(ctx, fasthttp.StatusOK, resp)
}

func (h *Handler) handleEmployees(ctx *fasthttp.RequestCtx) {
	if !h.ready(ctx) {
		return
	}
	c, cancel := h.context()
	defer cancel()

	employees, err := h.src.Employees(c, string(ctx.QueryArgs().Peek("name")))
	if err != nil {
		h.upstreamError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, model.EmployeesResponse{Employees: employees})
}

func (h *Handler) handleAttendance(ctx *fasthttp.RequestCtx) {
	if !h.ready(ctx) {
		return
	}
	date := string(ctx.QueryArgs().Peek("date"))
	if date == "" {
		date = calendar.Today(h.now(), h.opts.Location)
	}
	if _, err := calendar.ParseDay(date); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid date: "+date)
		return
	}

	c, cancel := h.context()
	defer cancel()

	employee, ok := h.resolve(c, ctx)
	if !ok {
		return
	}
	resp, err := history.Day(c, h.src, employee.FullName, date, h.now(), h.opts.Location)
	if err != nil {
		h.upstreamError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, resp)
}

func (h *Handler) handleHistory(ctx *fasthttp.RequestCtx) {
	if !h.ready(ctx) {
		return
	}
	args := ctx.QueryArgs()
	to := string(args.Peek("to"))
	if to == "" {
		to = calendar.Today(h.now(), h.opts.Location)
	}
	from := string(args.Peek("from"))
	if from == "" {
		from, _ = calendar.ShiftDay(to, -(defaultHistoryDays - 1))
	}
	for _, day := range []string{from, to} {
		if _, err := calendar.ParseDay(day); err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, "Invalid date: "+day)
			return
		}
	}

	c, cancel := h.context()
	defer cancel()

	employee, ok := h.resolve(c, ctx)
	if !ok {
		return
	}

	opts := h.opts.History
	opts.Now = h.now()
	opts.Location = h.opts.Location
	resp, err := history.Collect(c, h.src, employee.FullName, from, to, opts)
	if errors.Is(err, calendar.ErrRangeTooLong) {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		h.upstreamError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, resp)
}

// resolve finds the single employee matching the name query argument.
func (h *Handler) resolve(c context.Context, ctx *fasthttp.RequestCtx) (model.Employee, bool) {
	name := string(ctx.QueryArgs().Peek("name"))
	if name == "" {
		writeError(ctx, fasthttp.StatusBadRequest, "name is required")
		return model.Employee{}, false
	}

	employees, err := h.src.Employees(c, name)
	if err != nil {
		h.upstreamError(ctx, err)
		return model.Employee{}, false
	}
	switch len(employees) {
	case 0:
		writeError(ctx, fasthttp.StatusNotFound, "EMPLOYEE_NOT_FOUND: no employee matches "+name)
		return model.Employee{}, false
	case 1:
		return employees[0], true
	default:
		writeError(ctx, fasthttp.StatusConflict, "AMBIGUOUS_EMPLOYEE: more than one employee matches "+name)
		return model.Employee{}, false
	}
}

func (h *Handler) ready(ctx *fasthttp.RequestCtx) bool {
	if !ctx.IsGet() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return false
	}
	if h.src == nil {
		writeError(ctx, fasthttp.StatusServiceUnavailable, "HRIS upstream is not configured")
		return false
	}
	return true
}

func (h *Handler) context() (context.Context, context.CancelFunc) {
	if h.opts.RequestTimeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), h.opts.RequestTimeout)
}

func (h *Handler) upstreamError(ctx *fasthttp.RequestCtx, err error) {
	status := fasthttp.StatusBadGateway
	if errors.Is(err, context.DeadlineExceeded) {
		status = fasthttp.StatusGatewayTimeout
	}
	h.log.Warn("hris request failed",
		zap.ByteString("path", ctx.Path()),
		zap.Error(err))
	writeError(ctx, status, "HRIS request failed: "+err.Error())
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v interface{}) {
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	json.NewEncoder(ctx).Encode(v)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	writeJSON(ctx, status, model.ErrorResponse{
		Status:  status,
		Message: message,
	})
}
