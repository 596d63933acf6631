package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lcibils/monitor-neuratek/internal/domain"
	"github.com/lcibils/monitor-neuratek/internal/events"
	"github.com/lcibils/monitor-neuratek/internal/observability"
	"github.com/lcibils/monitor-neuratek/internal/sla"
)

// TicketSource supplies the ticket batch for one evaluation cycle.
type TicketSource interface {
	FetchSnapshots(ctx context.Context) ([]domain.TicketSnapshot, error)
}

// SnapshotStore caches the last good batch as a fetch-failure fallback.
type SnapshotStore interface {
	Store(ctx context.Context, snapshots []domain.TicketSnapshot) error
	Load(ctx context.Context) ([]domain.TicketSnapshot, bool, error)
}

// BreachSink persists newly detected breaches.
type BreachSink interface {
	Record(ctx context.Context, record domain.BreachRecord) error
}

// EvaluationDependencies bundles collaborators for the evaluation service.
type EvaluationDependencies struct {
	Source     TicketSource
	Cache      SnapshotStore
	Breaches   BreachSink
	Engine     *sla.DeadlineEngine
	Customers  map[string]*domain.CustomerSLAConfig
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
	WorkerPool int
}

// EvaluationService runs the fetch-evaluate-classify cycle and retains the
// latest result for the HTTP handlers. Customer configuration is immutable
// after construction, which is what makes the per-ticket parallelism safe.
type EvaluationService struct {
	source     TicketSource
	cache      SnapshotStore
	breaches   BreachSink
	engine     *sla.DeadlineEngine
	customers  map[string]*domain.CustomerSLAConfig
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
	workerPool int

	mu     sync.RWMutex
	latest *domain.EvaluationResult

	notifiedMu sync.Mutex
	notified   map[string]struct{}
}

// NewEvaluationService constructs the service.
func NewEvaluationService(deps EvaluationDependencies) *EvaluationService {
	workers := deps.WorkerPool
	if workers <= 0 {
		workers = 1
	}
	return &EvaluationService{
		source:     deps.Source,
		cache:      deps.Cache,
		breaches:   deps.Breaches,
		engine:     deps.Engine,
		customers:  deps.Customers,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
		workerPool: workers,
		notified:   make(map[string]struct{}),
	}
}

// RunCycle executes one full evaluation pass and swaps it in as the latest
// result.
func (s *EvaluationService) RunCycle(ctx context.Context) (*domain.EvaluationResult, error) {
	started := time.Now()
	cycleID := uuid.NewString()

	snapshots, fromCache, err := s.loadSnapshots(ctx)
	if err != nil {
		s.metrics.RecordCycleError()
		return nil, err
	}

	now := time.Now()
	result := &domain.EvaluationResult{
		CycleID:     cycleID,
		EvaluatedAt: now,
		FromCache:   fromCache,
		Tickets:     s.evaluateBatch(snapshots, now),
	}

	s.publishBreaches(ctx, result)

	s.mu.Lock()
	s.latest = result
	s.mu.Unlock()

	s.metrics.ObserveCycle(result, time.Since(started))
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventCycleCompleted,
			Timestamp: now,
			Payload: events.CycleCompletedPayload{
				CycleID:   cycleID,
				Tickets:   len(result.Tickets),
				FromCache: fromCache,
			},
		})
	}

	s.logger.Info("evaluation cycle complete",
		zap.String("cycle_id", cycleID),
		zap.Int("tickets", len(result.Tickets)),
		zap.Bool("from_cache", fromCache),
		zap.Duration("duration", time.Since(started)))
	return result, nil
}

// Latest returns the most recent cycle result, or nil before the first run.
func (s *EvaluationService) Latest() *domain.EvaluationResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

func (s *EvaluationService) loadSnapshots(ctx context.Context) ([]domain.TicketSnapshot, bool, error) {
	snapshots, err := s.source.FetchSnapshots(ctx)
	if err == nil {
		if s.cache != nil {
			if cacheErr := s.cache.Store(ctx, snapshots); cacheErr != nil {
				s.logger.Warn("snapshot cache store failed", zap.Error(cacheErr))
			}
		}
		return snapshots, false, nil
	}

	s.logger.Warn("ticket fetch failed, trying snapshot cache", zap.Error(err))
	if s.cache != nil {
		cached, ok, cacheErr := s.cache.Load(ctx)
		if cacheErr != nil {
			s.logger.Warn("snapshot cache load failed", zap.Error(cacheErr))
		} else if ok {
			return cached, true, nil
		}
	}
	return nil, false, err
}

// evaluateBatch computes deadlines and classifications for every snapshot
// through a bounded worker pool. Tickets have no cross-dependencies, so
// order of execution does not matter; results land at their input index.
func (s *EvaluationService) evaluateBatch(snapshots []domain.TicketSnapshot, now time.Time) []domain.EvaluatedTicket {
	results := make([]domain.EvaluatedTicket, len(snapshots))
	if len(snapshots) == 0 {
		return results
	}

	workers := s.workerPool
	if workers > len(snapshots) {
		workers = len(snapshots)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = s.evaluateOne(&snapshots[i], now)
			}
		}()
	}
	for i := range snapshots {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

func (s *EvaluationService) evaluateOne(snapshot *domain.TicketSnapshot, now time.Time) domain.EvaluatedTicket {
	out := domain.EvaluatedTicket{
		Snapshot:         *snapshot,
		ResponseStatus:   domain.StatusNone,
		ResolutionStatus: domain.StatusNone,
	}

	// Tickets without a customer or category carry no SLA; the tracker can
	// legitimately hold such issues, so this is not an error.
	if snapshot.CustomerName == "" || snapshot.Category == "" {
		return out
	}

	customer, ok := s.customers[snapshot.CustomerName]
	if !ok {
		out.Err = fmt.Sprintf("customer %q not found in SLA configuration", snapshot.CustomerName)
		s.logger.Warn("ticket evaluation failed",
			zap.Int("ticket_id", snapshot.ID),
			zap.String("customer", snapshot.CustomerName),
			zap.String("error", out.Err))
		return out
	}

	pair, err := s.engine.ComputeDeadlines(customer, snapshot)
	if err != nil {
		out.Err = err.Error()
		s.logger.Warn("ticket evaluation failed",
			zap.Int("ticket_id", snapshot.ID),
			zap.String("customer", snapshot.CustomerName),
			zap.Error(err))
		return out
	}

	out.Deadlines = pair
	out.ResponseStatus = sla.Classify(pair.Response, snapshot.EnteredInProgressAt, now)
	out.ResolutionStatus = sla.Classify(pair.Resolution, snapshot.ResolvedAt, now)
	return out
}

// publishBreaches records and announces breaches seen for the first time.
func (s *EvaluationService) publishBreaches(ctx context.Context, result *domain.EvaluationResult) {
	for i := range result.Tickets {
		ticket := &result.Tickets[i]
		if ticket.ResponseStatus == domain.StatusBreached && ticket.Deadlines.Response != nil {
			s.handleBreach(ctx, ticket, domain.ColumnResponse, *ticket.Deadlines.Response, result.EvaluatedAt)
		}
		if ticket.ResolutionStatus == domain.StatusBreached && ticket.Deadlines.Resolution != nil {
			s.handleBreach(ctx, ticket, domain.ColumnResolution, *ticket.Deadlines.Resolution, result.EvaluatedAt)
		}
	}
}

func (s *EvaluationService) handleBreach(ctx context.Context, ticket *domain.EvaluatedTicket, column domain.DeadlineColumn, deadline, detectedAt time.Time) {
	key := fmt.Sprintf("%d/%s", ticket.Snapshot.ID, column)
	s.notifiedMu.Lock()
	if _, seen := s.notified[key]; seen {
		s.notifiedMu.Unlock()
		return
	}
	s.notified[key] = struct{}{}
	s.notifiedMu.Unlock()

	s.metrics.RecordBreach(ticket.Snapshot.CustomerName, column)

	if s.breaches != nil {
		record := domain.BreachRecord{
			ID:           uuid.NewString(),
			TicketID:     ticket.Snapshot.ID,
			CustomerName: ticket.Snapshot.CustomerName,
			Category:     ticket.Snapshot.Category,
			Column:       column,
			Deadline:     deadline,
			DetectedAt:   detectedAt,
		}
		if err := s.breaches.Record(ctx, record); err != nil {
			s.logger.Warn("breach record failed", zap.Int("ticket_id", ticket.Snapshot.ID), zap.Error(err))
		}
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventSLABreached,
			Timestamp: detectedAt,
			Payload: events.SLABreachedPayload{
				TicketID:     ticket.Snapshot.ID,
				CustomerName: ticket.Snapshot.CustomerName,
				Category:     ticket.Snapshot.Category,
				Column:       column,
				Deadline:     deadline,
			},
		})
	}
}
