// Package service serializes check-ins against the in-memory seat pools and
// fans each committed result out to the audit store, the event queue, the
// chart cache and metrics.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/iliyamo/flight-checkin/internal/metrics"
	"github.com/iliyamo/flight-checkin/internal/model"
	"github.com/iliyamo/flight-checkin/internal/queue"
	"github.com/iliyamo/flight-checkin/internal/repository"
	"github.com/iliyamo/flight-checkin/internal/seating"
)

// CheckinStore persists committed check-ins.
type CheckinStore interface {
	SaveAssignments(ctx context.Context, flight string, res seating.CheckinResult) error
	ListByFlight(ctx context.Context, flight string) ([]repository.CheckinRecord, error)
}

// EventPublisher announces committed check-ins.
type EventPublisher interface {
	PublishCheckinCompleted(ctx context.Context, ev queue.CheckinCompletedEvent) error
}

// ChartInvalidator drops the chart cached for one generation of a flight.
type ChartInvalidator interface {
	Invalidate(ctx context.Context, flight string, gen uint64) error
}

// flightEntry pairs a flight with one lock per travel class.  Every call
// touching a class pool holds that class's lock for the whole
// read-compute-commit sequence.  gen counts the commits that seated
// somebody; it is bumped under the class lock.
type flightEntry struct {
	flight *seating.Flight
	locks  map[model.TravelClass]*sync.Mutex
	gen    atomic.Uint64
}

func newFlightEntry(f *seating.Flight, cat *model.Catalog) *flightEntry {
	e := &flightEntry{flight: f, locks: make(map[model.TravelClass]*sync.Mutex)}
	for _, c := range cat.Classes() {
		e.locks[c] = &sync.Mutex{}
	}
	return e
}

// CheckinService owns the loaded flights.
type CheckinService struct {
	flights   *xsync.Map[string, *flightEntry]
	catalog   *model.Catalog
	store     CheckinStore
	publisher EventPublisher
	charts    ChartInvalidator
	metrics   metrics.Recorder
	log       *slog.Logger
	now       func() time.Time
}

// Option configures a CheckinService.
type Option func(*CheckinService)

// WithStore persists every committed check-in.
func WithStore(s CheckinStore) Option { return func(c *CheckinService) { c.store = s } }

// WithPublisher publishes an event for every committed check-in.
func WithPublisher(p EventPublisher) Option { return func(c *CheckinService) { c.publisher = p } }

// WithChartCache invalidates cached charts after every commit.
func WithChartCache(ci ChartInvalidator) Option { return func(c *CheckinService) { c.charts = ci } }

// WithMetrics records check-in metrics.
func WithMetrics(m metrics.Recorder) Option { return func(c *CheckinService) { c.metrics = m } }

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option { return func(c *CheckinService) { c.log = l } }

// WithClock overrides the time source used for event timestamps.
func WithClock(now func() time.Time) Option { return func(c *CheckinService) { c.now = now } }

// NewCheckinService creates a service with no flights.
func NewCheckinService(opts ...Option) *CheckinService {
	s := &CheckinService{
		flights: xsync.NewMap[string, *flightEntry](),
		catalog: model.DefaultCatalog(),
		metrics: metrics.NewNop(),
		log:     slog.Default(),
		now:     time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Register adds a flight.  Its pools are published to metrics right away.
func (s *CheckinService) Register(f *seating.Flight) error {
	if _, loaded := s.flights.LoadOrStore(f.Number(), newFlightEntry(f, s.catalog)); loaded {
		return fmt.Errorf("%w: %s", ErrDuplicateFlight, f.Number())
	}
	for _, c := range f.Classes() {
		s.metrics.SetAvailableSeats(f.Number(), s.catalog.ClassName(c), len(f.Available(c)))
	}
	s.log.Info("flight registered", "flight", f.Number(), "classes", len(f.Classes()))
	return nil
}

// Flights lists the registered flight numbers in ascending order.
func (s *CheckinService) Flights() []string {
	out := make([]string, 0, s.flights.Size())
	s.flights.Range(func(k string, _ *flightEntry) bool {
		out = append(out, k)
		return true
	})
	slices.Sort(out)
	return out
}

func (s *CheckinService) entry(number string) (*flightEntry, error) {
	e, ok := s.flights.Load(number)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFlightNotFound, number)
	}
	return e, nil
}

func (s *CheckinService) lock(e *flightEntry, class model.TravelClass) (*sync.Mutex, error) {
	mu, ok := e.locks[class]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownClass, int(class))
	}
	return mu, nil
}

// commit runs fn under the class lock and hands the result to the
// post-commit pipeline.  The in-memory commit stands even when persisting
// fails; the error is returned alongside the result.
func (s *CheckinService) commit(ctx context.Context, number, agent string, class model.TravelClass,
	fn func(f *seating.Flight) seating.CheckinResult) (seating.CheckinResult, error) {
	e, err := s.entry(number)
	if err != nil {
		return seating.CheckinResult{}, err
	}
	mu, err := s.lock(e, class)
	if err != nil {
		return seating.CheckinResult{}, err
	}

	mu.Lock()
	start := time.Now()
	res := fn(e.flight)
	elapsed := time.Since(start)
	available := len(e.flight.Available(class))
	gen := e.gen.Load()
	if len(res.Assignments) > 0 {
		gen = e.gen.Add(1)
	}
	mu.Unlock()

	return res, s.afterCommit(ctx, number, agent, res, gen, elapsed, available)
}

func (s *CheckinService) afterCommit(ctx context.Context, number, agent string, res seating.CheckinResult,
	gen uint64, elapsed time.Duration, available int) error {
	className := s.catalog.ClassName(res.Class)
	s.metrics.RecordCheckin(number, className, res.Status.String(), len(res.Assignments))
	s.metrics.ObserveWindowSearch(elapsed.Seconds())
	s.metrics.SetAvailableSeats(number, className, available)

	log := s.log.With("flight", number, "class", className, "agent", agent)
	log.Info("check-in", "status", res.Status.String(), "seated", len(res.Assignments),
		"unseated", len(res.Unseated), "score", res.Score)
	if len(res.Assignments) == 0 {
		return nil
	}

	if s.charts != nil {
		if err := s.charts.Invalidate(ctx, number, gen-1); err != nil {
			log.Warn("chart cache invalidation failed", "error", err)
		}
	}
	if s.publisher != nil {
		ev := queue.NewCheckinCompletedEvent(number, agent, res, s.now())
		if err := s.publisher.PublishCheckinCompleted(ctx, ev); err != nil {
			log.Warn("publish check-in event failed", "error", err)
		}
	}
	if s.store != nil {
		if err := s.store.SaveAssignments(ctx, number, res); err != nil {
			log.Error("persist check-in failed", "error", err)
			return fmt.Errorf("persist check-in: %w", err)
		}
	}
	return nil
}

// CheckinParty seats a party on a flight.  Engine outcomes (overbooked)
// are reported in the result status, not as errors.
func (s *CheckinService) CheckinParty(ctx context.Context, number, agent string, p *model.Party) (seating.CheckinResult, error) {
	return s.commit(ctx, number, agent, p.Class, func(f *seating.Flight) seating.CheckinResult {
		return f.Checkin(p)
	})
}

// CheckinTraveler seats a single traveler.
func (s *CheckinService) CheckinTraveler(ctx context.Context, number, agent string, class model.TravelClass,
	name string, pref model.SeatType, minor bool) (seating.CheckinResult, error) {
	return s.commit(ctx, number, agent, class, func(f *seating.Flight) seating.CheckinResult {
		return f.CheckinTraveler(class, name, pref, minor)
	})
}

// CheckinSeat places a traveler on the seat with the given label.
func (s *CheckinService) CheckinSeat(ctx context.Context, number, agent string, class model.TravelClass,
	name string, minor bool, label string) (seating.CheckinResult, error) {
	return s.commit(ctx, number, agent, class, func(f *seating.Flight) seating.CheckinResult {
		return f.CheckinSeat(class, name, minor, label)
	})
}

// Generation returns the number of commits that seated somebody on the
// flight.  A chart built at generation g is current until it moves past g.
func (s *CheckinService) Generation(number string) (uint64, error) {
	e, err := s.entry(number)
	if err != nil {
		return 0, err
	}
	return e.gen.Load(), nil
}

// Chart returns the seating chart of every class of a flight and the
// generation it reflects.  Each class is read under its own lock; the
// generation is read first, so the chart holds at least every commit it
// counts.
func (s *CheckinService) Chart(_ context.Context, number string) ([]seating.ClassChart, uint64, error) {
	e, err := s.entry(number)
	if err != nil {
		return nil, 0, err
	}
	gen := e.gen.Load()
	classes := e.flight.Classes()
	out := make([]seating.ClassChart, 0, len(classes))
	for _, c := range classes {
		mu := e.locks[c]
		mu.Lock()
		cc, _ := e.flight.Chart(c)
		mu.Unlock()
		out = append(out, cc)
	}
	return out, gen, nil
}

// Available returns the free seats of one class in ascending seat id order.
func (s *CheckinService) Available(number string, class model.TravelClass) ([]model.Seat, error) {
	e, err := s.entry(number)
	if err != nil {
		return nil, err
	}
	mu, err := s.lock(e, class)
	if err != nil {
		return nil, err
	}
	mu.Lock()
	defer mu.Unlock()
	return e.flight.Available(class), nil
}

// Restore replays the persisted check-ins of a flight by seat label.  It
// must run before the flight takes traffic.  Records that no longer fit
// the seat map are skipped and logged.  It returns the number of travelers
// restored.
func (s *CheckinService) Restore(ctx context.Context, number string) (int, error) {
	if s.store == nil {
		return 0, nil
	}
	e, err := s.entry(number)
	if err != nil {
		return 0, err
	}
	recs, err := s.store.ListByFlight(ctx, number)
	if err != nil {
		return 0, fmt.Errorf("restore %s: %w", number, err)
	}

	restored := 0
	for _, r := range recs {
		class, err := s.catalog.ParseClass(r.Class)
		if err != nil {
			s.log.Warn("restore: skipping record", "flight", number, "id", r.ID, "error", err)
			continue
		}
		mu := e.locks[class]
		mu.Lock()
		res := e.flight.CheckinSeat(class, r.Traveler, r.Minor, r.SeatLabel)
		if res.Status == seating.StatusOK {
			e.gen.Add(1)
		}
		mu.Unlock()
		if res.Status != seating.StatusOK {
			s.log.Warn("restore: seat not available", "flight", number, "id", r.ID,
				"seat", r.SeatLabel, "status", res.Status.String())
			continue
		}
		restored++
	}
	for _, c := range e.flight.Classes() {
		s.metrics.SetAvailableSeats(number, s.catalog.ClassName(c), len(e.flight.Available(c)))
	}
	s.log.Info("flight restored", "flight", number, "travelers", restored, "records", len(recs))
	return restored, nil
}
