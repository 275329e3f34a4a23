package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/username/trail-availability/internal/booking"
	"github.com/username/trail-availability/internal/config"
	"github.com/username/trail-availability/internal/render"
	"github.com/username/trail-availability/internal/session"
	"github.com/username/trail-availability/internal/widget"
	"github.com/username/trail-availability/pkg/dateutil"
)

var (
	configPath string
	logger     *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "trail-availability",
		Short: "Inca Trail availability calendar",
		Long:  "Pick a month and a route and see remaining seats per day from the booking service",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load config to get log settings
			cfg, err := config.Load(configPath)
			if err == nil && cfg.Log.File != "" {
				cfg.ExpandEnvVars()
				logger, err = initFileLogger(cfg.Log.File, cfg.Log.Level)
				if err != nil {
					initLogger("warn") // Fallback to console
				}
			} else if err == nil {
				initLogger(cfg.Log.Level)
			} else {
				initLogger("warn")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default: config.yaml in . or $HOME/.trail-availability)")

	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(browseCmd())
	rootCmd.AddCommand(routesCmd())

	err := rootCmd.Execute()
	if logger != nil {
		_ = logger.Sync()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// selectionFlags are shared by show and browse
type selectionFlags struct {
	month   string
	route   string
	noColor bool
}

func (f *selectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.month, "month", "m", "", "Month to show (YYYY-MM, default: current month)")
	cmd.Flags().StringVarP(&f.route, "route", "r", "", "Route key: 4d or 2d (default: routes.default from config)")
	cmd.Flags().BoolVar(&f.noColor, "no-color", false, "Disable ANSI colors")
}

func (f *selectionFlags) selection(cfg *config.Config) (widget.Selection, error) {
	sel := widget.NewSelection(dateutil.Today(), cfg.Routes.DefaultRoute())

	if f.month != "" {
		year, month, err := dateutil.ParseMonth(f.month)
		if err != nil {
			return widget.Selection{}, err
		}
		sel.Year, sel.Month = year, month
	}

	if f.route != "" {
		route, err := booking.ParseRoute(f.route)
		if err != nil {
			return widget.Selection{}, err
		}
		sel.Route = route
	}

	return sel, nil
}

func (f *selectionFlags) color(cfg *config.Config) bool {
	return cfg.Display.Color && !f.noColor
}

func showCmd() *cobra.Command {
	var flags selectionFlags
	var output string
	var teeOutput string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Fetch one month and print the availability calendar",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := io.Writer(os.Stdout)
			if teeOutput != "" {
				if err := os.MkdirAll(filepath.Dir(teeOutput), 0o755); err != nil {
					return fmt.Errorf("failed to create tee path: %w", err)
				}
				f, err := os.OpenFile(teeOutput, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
				if err != nil {
					return fmt.Errorf("failed to open tee-output file: %w", err)
				}
				defer f.Close()
				out = io.MultiWriter(os.Stdout, f)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			sel, err := flags.selection(cfg)
			if err != nil {
				return err
			}

			renderer, err := render.New(output, out, flags.color(cfg) && teeOutput == "")
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cal, err := newCalendar(ctx, cfg, sel)
			if err != nil {
				return err
			}
			defer cal.Close()

			start := time.Now()
			cal.Mount()
			cal.Wait()

			view := cal.Render()
			logger.Info("Calendar fetched",
				zap.Int("year", sel.Year),
				zap.Int("month", int(sel.Month)),
				zap.String("route", sel.Route.String()),
				zap.String("status", view.Status.String()),
				zap.Duration("took", time.Since(start)))

			if err := renderer.Render(view); err != nil {
				return fmt.Errorf("failed to render calendar: %w", err)
			}

			if view.Status == widget.StatusError {
				return fmt.Errorf("availability unavailable: %s", view.Err)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format: text or json")
	cmd.Flags().StringVar(&teeOutput, "tee-output", "", "Mirror output to file (disables colors)")

	return cmd
}

func browseCmd() *cobra.Command {
	var flags selectionFlags
	var noClear bool

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Interactively change month and route; the calendar refreshes on every change",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			sel, err := flags.selection(cfg)
			if err != nil {
				return err
			}

			cal, err := newCalendar(context.Background(), cfg, sel)
			if err != nil {
				return err
			}

			s := session.New(cal, render.NewText(os.Stdout, flags.color(cfg)), os.Stdin, os.Stdout, !noClear, logger)
			if err := s.Run(); err != nil {
				return fmt.Errorf("session failed: %w", err)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&noClear, "no-clear", false, "Do not clear the screen between frames")

	return cmd
}

func routesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List routes and their booking pages",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			links := cfg.Routes.Links()
			out := cmd.OutOrStdout()
			for _, r := range booking.Routes() {
				info, _ := r.Info()
				marker := " "
				if r == cfg.Routes.DefaultRoute() {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %-3s %-18s %s\n", marker, r, info.Title, links.BookingURL(r))
			}
			fmt.Fprintf(out, "  contact                %s\n", links.ContactURL())
			return nil
		},
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ExpandEnvVars()
	return cfg, nil
}

func newCalendar(ctx context.Context, cfg *config.Config, sel widget.Selection) (*widget.Calendar, error) {
	client := booking.NewClient(
		cfg.Availability.Endpoint,
		cfg.Availability.GetTimeout(),
		logger,
	)

	cal, err := widget.NewCalendar(ctx, client, sel, cfg.Routes.Links(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar: %w", err)
	}
	return cal, nil
}

func initLogger(level string) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.WarnLevel
	}
	config.Level = zap.NewAtomicLevelAt(zapLevel)

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100,  // MB
		MaxBackups: 3,    // Keep max 3 old log files
		MaxAge:     28,   // days
		Compress:   true, // Compress old logs with gzip
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}
