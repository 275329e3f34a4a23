package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"go.uber.org/zap"

	"github.com/username/trail-availability/internal/booking"
	"github.com/username/trail-availability/internal/render"
	"github.com/username/trail-availability/internal/widget"
	"github.com/username/trail-availability/pkg/dateutil"
)

const clearScreen = "\033[H\033[2J"

const helpText = `Commands:
  next | n            next month
  prev | p            previous month
  YYYY-MM             jump to a month (also "March 2025", "03/2025")
  route <4d|2d>       switch route (or just "4d" / "2d")
  refresh | r         fetch the current selection again
  routes              list routes
  help | ?            this help
  quit | q            exit
`

// ErrQuit is returned by Execute when the user asks to leave
var ErrQuit = errors.New("quit")

// Session drives a calendar from line commands and redraws on every transition
type Session struct {
	calendar *widget.Calendar
	renderer render.Renderer
	in       io.Reader
	out      io.Writer
	clear    bool
	logger   *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	drawMu  sync.Mutex
	stopped bool
}

// New creates a session. When clear is set the screen is wiped before each frame.
func New(cal *widget.Calendar, renderer render.Renderer, in io.Reader, out io.Writer, clear bool, logger *zap.Logger) *Session {
	ctx, cancel := context.WithCancel(context.Background())

	return &Session{
		calendar: cal,
		renderer: renderer,
		in:       in,
		out:      out,
		clear:    clear,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Run mounts the calendar and processes commands until quit, EOF or a signal
func (s *Session) Run() error {
	s.logger.Info("Session started")

	s.calendar.OnChange(func(widget.State) { s.redraw() })
	s.calendar.Mount()
	defer s.shutdown()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	lines := make(chan string)
	readErr := make(chan error, 1)
	go s.readLines(lines, readErr)

	for {
		select {
		case <-s.ctx.Done():
			s.logger.Info("Session stopped")
			return nil

		case sig := <-sigChan:
			s.logger.Info("Received signal, shutting down",
				zap.String("signal", sig.String()))
			s.Stop()
			return nil

		case err := <-readErr:
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			s.logger.Info("Input closed, ending session")
			s.Stop()
			return nil

		case line := <-lines:
			if err := s.Execute(line); err != nil {
				if errors.Is(err, ErrQuit) {
					s.Stop()
					return nil
				}
				s.printf("%v\n", err)
			}
		}
	}
}

// Stop ends the session
func (s *Session) Stop() {
	s.cancel()
}

// Execute applies one command line to the calendar
func (s *Session) Execute(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	sel := s.calendar.State().Selection
	cmd := strings.ToLower(fields[0])

	switch cmd {
	case "quit", "q", "exit":
		return ErrQuit

	case "help", "?":
		s.printf("%s", helpText)
		return nil

	case "routes":
		for _, r := range booking.Routes() {
			info, _ := r.Info()
			s.printf("  %s  %s\n", r, info.Title)
		}
		return nil

	case "next", "n", "prev", "p":
		step := 1
		if cmd == "prev" || cmd == "p" {
			step = -1
		}
		year, month := dateutil.AddMonths(sel.Year, sel.Month, step)
		return s.calendar.OnSelectionChange(year, month, sel.Route)

	case "refresh", "r":
		return s.calendar.OnSelectionChange(sel.Year, sel.Month, sel.Route)

	case "route":
		if len(fields) != 2 {
			return fmt.Errorf("usage: route <%s>", routeKeys())
		}
		route, err := booking.ParseRoute(fields[1])
		if err != nil {
			return err
		}
		return s.calendar.OnSelectionChange(sel.Year, sel.Month, route)
	}

	if route, err := booking.ParseRoute(fields[0]); err == nil {
		return s.calendar.OnSelectionChange(sel.Year, sel.Month, route)
	}

	year, month, err := dateutil.ParseMonth(line)
	if err != nil {
		return fmt.Errorf("unknown command %q (type help)", strings.TrimSpace(line))
	}
	return s.calendar.OnSelectionChange(year, month, sel.Route)
}

// shutdown stops drawing and then cancels in-flight fetches, so nothing is
// painted after Run returns
func (s *Session) shutdown() {
	s.Stop()

	s.drawMu.Lock()
	s.stopped = true
	s.drawMu.Unlock()

	s.calendar.Close()
}

// redraw renders the current state rather than the listener's snapshot,
// so a late notification can never paint an older frame
func (s *Session) redraw() {
	s.drawMu.Lock()
	defer s.drawMu.Unlock()

	if s.stopped {
		return
	}
	if s.clear {
		fmt.Fprint(s.out, clearScreen)
	}
	if err := s.renderer.Render(s.calendar.Render()); err != nil {
		s.logger.Error("Failed to render calendar", zap.Error(err))
	}
}

func (s *Session) printf(format string, a ...interface{}) {
	s.drawMu.Lock()
	defer s.drawMu.Unlock()

	fmt.Fprintf(s.out, format, a...)
}

func (s *Session) readLines(lines chan<- string, readErr chan<- error) {
	scanner := bufio.NewScanner(s.in)
	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-s.ctx.Done():
			return
		}
	}
	readErr <- scanner.Err()
}

func routeKeys() string {
	keys := make([]string, 0, 2)
	for _, r := range booking.Routes() {
		keys = append(keys, r.String())
	}
	return strings.Join(keys, "|")
}
