package widget

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sourcegraph/conc"
	"go.uber.org/zap"

	"github.com/username/trail-availability/internal/booking"
	"github.com/username/trail-availability/internal/calendar"
)

// Fetcher retrieves availability for one selection
type Fetcher interface {
	FetchAvailability(ctx context.Context, req booking.AvailabilityRequest) (booking.Availability, error)
}

// Listener is notified after every state transition. Notifications run
// outside the lock and may arrive late; a snapshot whose Generation is
// below the calendar's current one is stale.
type Listener func(State)

// View is everything a renderer needs for one frame
type View struct {
	Selection Selection
	Route     booking.RouteInfo
	Status    Status
	Err       string
	Grid      calendar.Grid
	Cells     [][]calendar.CellView
	Links     calendar.Links
}

// Calendar binds a month/route selection to remote availability.
// All state is owned here; OnSelectionChange is the only mutation path
// after Mount.
type Calendar struct {
	fetcher Fetcher
	links   booking.Links
	logger  *zap.Logger

	ctx  context.Context
	stop context.CancelFunc
	wg   conc.WaitGroup

	mu         sync.Mutex
	state      State
	generation uint64
	cancel     context.CancelFunc
	listeners  []Listener
}

// NewCalendar creates a calendar in the idle state. Fetches run under ctx
// until it is done or Close is called.
func NewCalendar(ctx context.Context, fetcher Fetcher, initial Selection, links booking.Links, logger *zap.Logger) (*Calendar, error) {
	if err := validateSelection(initial); err != nil {
		return nil, err
	}

	ctx, stop := context.WithCancel(ctx)

	return &Calendar{
		fetcher: fetcher,
		links:   links,
		logger:  logger,
		ctx:     ctx,
		stop:    stop,
		state:   State{Selection: initial, Status: StatusIdle},
	}, nil
}

// OnChange registers a listener. Listeners run outside the lock, in the
// goroutine that caused the transition.
func (c *Calendar) OnChange(l Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.listeners = append(c.listeners, l)
}

// Mount performs the initial idle → loading transition
func (c *Calendar) Mount() {
	sel := c.State().Selection
	c.logger.Info("Calendar mounted",
		zap.Int("year", sel.Year),
		zap.Int("month", int(sel.Month)),
		zap.String("route", sel.Route.String()))

	c.fetchAvailability()
}

// OnSelectionChange updates the selection and always triggers a new fetch
func (c *Calendar) OnSelectionChange(year int, month time.Month, route booking.Route) error {
	sel := Selection{Year: year, Month: month, Route: route}
	if err := validateSelection(sel); err != nil {
		return err
	}

	c.mu.Lock()
	c.state.Selection = sel
	c.mu.Unlock()

	c.logger.Info("Selection changed",
		zap.Int("year", year),
		zap.Int("month", int(month)),
		zap.String("route", route.String()))

	c.fetchAvailability()
	return nil
}

// State returns a snapshot; the availability map is copied
func (c *Calendar) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.snapshotLocked()
}

// Render derives the grid for the current state
func (c *Calendar) Render() View {
	return c.renderState(c.State())
}

func (c *Calendar) renderState(s State) View {
	info, _ := s.Selection.Route.Info()
	links := calendar.Links{
		Booking: c.links.BookingURL(s.Selection.Route),
		Contact: c.links.ContactURL(),
	}

	grid := calendar.BuildGrid(s.Selection.Year, s.Selection.Month)

	return View{
		Selection: s.Selection,
		Route:     info,
		Status:    s.Status,
		Err:       s.Err,
		Grid:      grid,
		Cells:     calendar.Present(grid, s.Data, s.Loading(), links),
		Links:     links,
	}
}

// Wait blocks until every in-flight fetch has settled
func (c *Calendar) Wait() {
	c.wg.Wait()
}

// Close cancels in-flight fetches and waits for them to settle. Results
// that arrive after Close are dropped and listeners are not notified.
func (c *Calendar) Close() {
	c.stop()
	c.wg.Wait()

	c.logger.Debug("Calendar closed")
}

// fetchAvailability clears the data, marks loading and starts one request.
// A newer fetch supersedes older ones: their context is canceled and their
// results are dropped by generation.
func (c *Calendar) fetchAvailability() {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.generation++
	gen := c.generation
	ctx, cancel := context.WithCancel(c.ctx)
	c.cancel = cancel

	c.state.Generation = gen
	c.state.Status = StatusLoading
	c.state.Data = nil
	c.state.Err = ""
	sel := c.state.Selection
	snapshot := c.snapshotLocked()
	listeners := c.listenersLocked()
	c.mu.Unlock()

	notify(listeners, snapshot)

	c.wg.Go(func() {
		defer cancel()

		data, err := c.fetcher.FetchAvailability(ctx, sel.Request())
		c.complete(gen, sel, data, err)
	})
}

func (c *Calendar) complete(gen uint64, sel Selection, data booking.Availability, err error) {
	c.mu.Lock()
	if gen != c.generation || c.ctx.Err() != nil {
		c.mu.Unlock()
		c.logger.Debug("Discarding stale availability response",
			zap.Uint64("generation", gen),
			zap.Int("year", sel.Year),
			zap.Int("month", int(sel.Month)),
			zap.String("route", sel.Route.String()))
		return
	}

	c.cancel = nil
	if err != nil {
		c.state.Status = StatusError
		c.state.Err = err.Error()
		c.state.Data = nil
	} else {
		c.state.Status = StatusSuccess
		c.state.Data = data.Clone()
	}
	snapshot := c.snapshotLocked()
	listeners := c.listenersLocked()
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn("Availability fetch failed",
			zap.Int("year", sel.Year),
			zap.Int("month", int(sel.Month)),
			zap.String("route", sel.Route.String()),
			zap.Error(err))
	}

	notify(listeners, snapshot)
}

func (c *Calendar) snapshotLocked() State {
	s := c.state
	s.Data = c.state.Data.Clone()
	return s
}

func (c *Calendar) listenersLocked() []Listener {
	out := make([]Listener, len(c.listeners))
	copy(out, c.listeners)
	return out
}

func notify(listeners []Listener, s State) {
	for _, l := range listeners {
		l(s)
	}
}

func validateSelection(s Selection) error {
	if s.Month < time.January || s.Month > time.December {
		return fmt.Errorf("month must be between 1 and 12, got %d", int(s.Month))
	}
	if s.Year < 1 {
		return fmt.Errorf("year must be positive, got %d", s.Year)
	}
	if !s.Route.Valid() {
		return fmt.Errorf("unknown route %q", s.Route)
	}
	return nil
}
