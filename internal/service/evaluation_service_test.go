package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lcibils/monitor-neuratek/internal/domain"
	"github.com/lcibils/monitor-neuratek/internal/events"
	"github.com/lcibils/monitor-neuratek/internal/sla"
)

type stubSource struct {
	snapshots []domain.TicketSnapshot
	err       error
}

func (s *stubSource) FetchSnapshots(ctx context.Context) ([]domain.TicketSnapshot, error) {
	return s.snapshots, s.err
}

type stubCache struct {
	stored [][]domain.TicketSnapshot
	cached []domain.TicketSnapshot
	has    bool
}

func (c *stubCache) Store(ctx context.Context, snapshots []domain.TicketSnapshot) error {
	c.stored = append(c.stored, snapshots)
	return nil
}

func (c *stubCache) Load(ctx context.Context) ([]domain.TicketSnapshot, bool, error) {
	return c.cached, c.has, nil
}

type stubSink struct {
	records []domain.BreachRecord
}

func (s *stubSink) Record(ctx context.Context, record domain.BreachRecord) error {
	s.records = append(s.records, record)
	return nil
}

func testCustomers() map[string]*domain.CustomerSLAConfig {
	return map[string]*domain.CustomerSLAConfig{
		"Acme": {
			Name:        "Acme",
			ServiceMode: domain.ServiceModeFull,
			Thresholds: map[string]map[domain.SLAType]int{
				"incident": {
					domain.SLAInitialResponse:     4,
					domain.SLAEstimatedResolution: 24,
				},
			},
		},
		"Globex": {
			Name:        "Globex",
			ServiceMode: domain.ServiceModeNone,
		},
	}
}

func newTestService(source TicketSource, cache SnapshotStore, sink BreachSink, dispatcher events.Dispatcher) *EvaluationService {
	holidays := sla.NewHolidayCalendar(time.Now())
	engine := sla.NewDeadlineEngine(sla.NewBusinessCalendar(holidays), "consulting")
	return NewEvaluationService(EvaluationDependencies{
		Source:     source,
		Cache:      cache,
		Breaches:   sink,
		Engine:     engine,
		Customers:  testCustomers(),
		Dispatcher: dispatcher,
		Logger:     zap.NewNop(),
		WorkerPool: 4,
	})
}

func snapshotBatch(now time.Time) []domain.TicketSnapshot {
	return []domain.TicketSnapshot{
		// Long overdue, both deadlines pending: breached twice.
		{ID: 1, CustomerName: "Acme", Category: "incident", CreatedAt: now.Add(-100 * time.Hour)},
		// Fresh ticket: both deadlines comfortably in the future.
		{ID: 2, CustomerName: "Acme", Category: "incident", CreatedAt: now},
		// No SLA contract: both columns none.
		{ID: 3, CustomerName: "Globex", Category: "incident", CreatedAt: now.Add(-100 * time.Hour)},
		// Unknown customer: per-ticket error, cycle unaffected.
		{ID: 4, CustomerName: "Hooli", Category: "incident", CreatedAt: now},
		// No customer resolved from the tracker: no SLA, no error.
		{ID: 5, CustomerName: "", Category: "incident", CreatedAt: now},
	}
}

func TestRunCycleEvaluatesBatch(t *testing.T) {
	now := time.Now()
	source := &stubSource{snapshots: snapshotBatch(now)}
	sink := &stubSink{}
	svc := newTestService(source, nil, sink, events.NewInMemoryDispatcher())

	result, err := svc.RunCycle(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Tickets, 5)
	assert.False(t, result.FromCache)

	overdue := result.Tickets[0]
	assert.Equal(t, domain.StatusBreached, overdue.ResponseStatus)
	assert.Equal(t, domain.StatusBreached, overdue.ResolutionStatus)
	assert.Empty(t, overdue.Err)

	fresh := result.Tickets[1]
	assert.Equal(t, domain.StatusOK, fresh.ResponseStatus)
	assert.Equal(t, domain.StatusOK, fresh.ResolutionStatus)

	noSLA := result.Tickets[2]
	assert.Equal(t, domain.StatusNone, noSLA.ResponseStatus)
	assert.Equal(t, domain.StatusNone, noSLA.ResolutionStatus)
	assert.Nil(t, noSLA.Deadlines.Response)

	unknown := result.Tickets[3]
	assert.Contains(t, unknown.Err, "Hooli")
	assert.Equal(t, domain.StatusNone, unknown.ResponseStatus)

	anonymous := result.Tickets[4]
	assert.Empty(t, anonymous.Err)
	assert.Equal(t, domain.StatusNone, anonymous.ResponseStatus)

	// Both breached columns of ticket 1 reached the sink.
	require.Len(t, sink.records, 2)
	assert.Equal(t, 1, sink.records[0].TicketID)

	assert.Same(t, result, svc.Latest())
}

func TestRunCycleDeduplicatesBreachNotifications(t *testing.T) {
	now := time.Now()
	source := &stubSource{snapshots: snapshotBatch(now)}
	sink := &stubSink{}
	dispatcher := events.NewInMemoryDispatcher()

	breachEvents := 0
	dispatcher.Subscribe(events.EventSLABreached, func(ctx context.Context, e events.Event) error {
		breachEvents++
		return nil
	})

	svc := newTestService(source, nil, sink, dispatcher)

	_, err := svc.RunCycle(context.Background())
	require.NoError(t, err)
	_, err = svc.RunCycle(context.Background())
	require.NoError(t, err)

	// Second cycle re-detects the same breaches but must not re-announce.
	assert.Equal(t, 2, breachEvents)
	assert.Len(t, sink.records, 2)
}

func TestRunCycleFallsBackToCache(t *testing.T) {
	now := time.Now()
	cache := &stubCache{
		cached: snapshotBatch(now),
		has:    true,
	}
	source := &stubSource{err: errors.New("tracker down")}
	svc := newTestService(source, cache, nil, nil)

	result, err := svc.RunCycle(context.Background())
	require.NoError(t, err)
	assert.True(t, result.FromCache)
	assert.Len(t, result.Tickets, 5)
}

func TestRunCycleFailsWithoutCache(t *testing.T) {
	source := &stubSource{err: errors.New("tracker down")}
	svc := newTestService(source, &stubCache{}, nil, nil)

	_, err := svc.RunCycle(context.Background())
	require.Error(t, err)
	assert.Nil(t, svc.Latest())
}

func TestRunCycleStoresFreshBatch(t *testing.T) {
	now := time.Now()
	cache := &stubCache{}
	source := &stubSource{snapshots: snapshotBatch(now)}
	svc := newTestService(source, cache, nil, nil)

	_, err := svc.RunCycle(context.Background())
	require.NoError(t, err)
	require.Len(t, cache.stored, 1)
	assert.Len(t, cache.stored[0], 5)
}
