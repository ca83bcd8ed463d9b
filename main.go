package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"
	_ "time/tzdata"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"attendance-engine/internal/config"
	"attendance-engine/internal/engine"
	"attendance-engine/internal/handler"
	"attendance-engine/internal/history"
	"attendance-engine/internal/hris"
	"attendance-engine/internal/logging"
	"attendance-engine/internal/model"
)

var (
	verbose bool
	cfg     *config.Config
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "attendance",
	Short: "Office attendance time accounting",
	Long: `attendance pairs RFID time-clock punches into work intervals, totals the
hours worked net of break time and projects when the daily quota is reached.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		logger, err = logging.New(verbose || cfg.Verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the attendance HTTP API",
	Long: `Environment variables:
	PORT                 (default: 8080)
	ATTENDANCE_TIMEZONE  (default: Asia/Jakarta)
	REQUEST_TIMEOUT      (default: 10s)
	VERBOSE              (default: false)
	HRIS_BASE_URL        (HRIS routes return 503 when unset)
	HRIS_TIMEOUT         (default: 2s)
	HRIS_MAX_CONNS       (default: 100)
	HISTORY_CONCURRENCY  (default: 4)
	HISTORY_MAX_DAYS     (default: 31)`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var summaryFile string

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarise a day of punches from a JSON request file",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

var clockCmd = &cobra.Command{
	Use:   "clock [decimal-hours]",
	Short: "Render decimal hours as HH:MM",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hours, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid hours %q: %w", args[0], err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), engine.DecimalHoursToClock(hours))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	summaryCmd.Flags().StringVarP(&summaryFile, "file", "f", "-", "request JSON file, - for stdin")
	rootCmd.AddCommand(serveCmd, summaryCmd, clockCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	var src hris.Source
	if cfg.HRIS.BaseURL != "" {
		src = hris.NewClient(cfg.HRIS.BaseURL, cfg.HRIS.Timeout, cfg.HRIS.MaxConns)
	} else {
		logger.Warn("HRIS_BASE_URL not set, only the summary endpoint is served")
	}

	h := handler.New(src, logger, handler.Options{
		Location:       loc,
		RequestTimeout: cfg.RequestTimeout,
		History: history.Options{
			Concurrency: cfg.History.Concurrency,
			MaxDays:     cfg.History.MaxDays,
		},
	})
	srv := &fasthttp.Server{
		Handler:      h.Handle,
		Name:         "attendance-engine",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("Attendance engine starting",
			zap.String("port", cfg.Port),
			zap.String("timezone", loc.String()),
			zap.Bool("hris", src != nil))
		errc <- srv.ListenAndServe(":" + cfg.Port)
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		logger.Info("Shutting down")
		return srv.Shutdown()
	}
}

func runSummary(cmd *cobra.Command, args []string) error {
	var r io.Reader = cmd.InOrStdin()
	if summaryFile != "-" {
		f, err := os.Open(summaryFile)
		if err != nil {
			return fmt.Errorf("failed to open request: %w", err)
		}
		defer f.Close()
		r = f
	}

	var req model.SummaryRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return fmt.Errorf("failed to decode request: %w", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	resp := engine.Summarize(&req, time.Now(), loc)
	logger.Debug("Summarised day",
		zap.String("person", req.Query.PersonID),
		zap.String("date", resp.Summary.Date),
		zap.Int("punches", len(req.Punches)),
		zap.Float64("hours", resp.Summary.TotalWorkedHours))

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
