package sla

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcibils/monitor-neuratek/internal/domain"
	apperrors "github.com/lcibils/monitor-neuratek/pkg/util"
)

const estimateCategory = "consulting"

func testEngine() *DeadlineEngine {
	return NewDeadlineEngine(testCalendar(), estimateCategory)
}

func incident(created string) *domain.TicketSnapshot {
	return &domain.TicketSnapshot{
		ID:           101,
		CustomerName: "Acme",
		Category:     "incident",
		CreatedAt:    ts(created),
	}
}

func TestComputeDeadlinesPartial(t *testing.T) {
	engine := testEngine()

	pair, err := engine.ComputeDeadlines(partialCustomer(), incident("2024-12-10 15:00"))
	require.NoError(t, err)
	require.NotNil(t, pair.Response)
	require.NotNil(t, pair.Resolution)

	assert.Equal(t, ts("2024-12-11 10:00"), *pair.Response)
	// 24 business hours: 3h Tuesday, 9h Wednesday, 9h Thursday, 3h Friday.
	assert.Equal(t, ts("2024-12-13 12:00"), *pair.Resolution)
}

func TestComputeDeadlinesFullMode(t *testing.T) {
	engine := testEngine()
	customer := partialCustomer()
	customer.ServiceMode = domain.ServiceModeFull
	customer.BusinessHours = nil

	ticket := incident("2024-12-13 17:00") // Friday evening

	pair, err := engine.ComputeDeadlines(customer, ticket)
	require.NoError(t, err)
	// Wall-clock addition, weekday and holiday agnostic.
	assert.Equal(t, ticket.CreatedAt.Add(4*time.Hour), *pair.Response)
	assert.Equal(t, ticket.CreatedAt.Add(24*time.Hour), *pair.Resolution)
}

func TestComputeDeadlinesServiceModeNone(t *testing.T) {
	engine := testEngine()
	customer := partialCustomer()
	customer.ServiceMode = domain.ServiceModeNone

	pair, err := engine.ComputeDeadlines(customer, incident("2024-12-10 15:00"))
	require.NoError(t, err)
	assert.Nil(t, pair.Response)
	assert.Nil(t, pair.Resolution)
}

func TestComputeDeadlinesEstimateCategory(t *testing.T) {
	engine := testEngine()
	customer := partialCustomer()
	customer.Thresholds[estimateCategory] = map[domain.SLAType]int{
		domain.SLAInitialResponse: 8,
	}

	estimate := ts("2025-02-01 00:00")
	ticket := incident("2024-12-10 15:00")
	ticket.Category = estimateCategory
	ticket.ExternallyEstimatedDate = &estimate

	pair, err := engine.ComputeDeadlines(customer, ticket)
	require.NoError(t, err)
	require.NotNil(t, pair.Response)
	// The estimate passes through verbatim, no calendar arithmetic.
	assert.Equal(t, &estimate, pair.Resolution)

	t.Run("estimate absent", func(t *testing.T) {
		ticket.ExternallyEstimatedDate = nil
		pair, err := engine.ComputeDeadlines(customer, ticket)
		require.NoError(t, err)
		assert.NotNil(t, pair.Response)
		assert.Nil(t, pair.Resolution)
	})
}

func TestComputeDeadlinesUnknownCategory(t *testing.T) {
	engine := testEngine()
	ticket := incident("2024-12-10 15:00")
	ticket.Category = "mystery"

	_, err := engine.ComputeDeadlines(partialCustomer(), ticket)
	require.Error(t, err)
	assert.True(t, apperrors.IsConfigurationError(err), "unknown category must error, not default")
}

func TestComputeDeadlinesMilestoneBeforeCreation(t *testing.T) {
	engine := testEngine()
	ticket := incident("2024-12-10 15:00")
	early := ticket.CreatedAt.Add(-time.Minute)
	ticket.EnteredInProgressAt = &early

	_, err := engine.ComputeDeadlines(partialCustomer(), ticket)
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidInput(err))
}
