package sla

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcibils/monitor-neuratek/internal/domain"
	apperrors "github.com/lcibils/monitor-neuratek/pkg/util"
)

func TestResolveHours(t *testing.T) {
	customer := partialCustomer()

	hours, err := ResolveHours(customer, "incident", domain.SLAInitialResponse)
	require.NoError(t, err)
	assert.Equal(t, 4, hours)

	hours, err = ResolveHours(customer, "incident", domain.SLAEstimatedResolution)
	require.NoError(t, err)
	assert.Equal(t, 24, hours)
}

func TestResolveHoursServiceModeNone(t *testing.T) {
	customer := partialCustomer()
	customer.ServiceMode = domain.ServiceModeNone
	customer.Thresholds = nil

	hours, err := ResolveHours(customer, "anything", domain.SLAInitialResponse)
	require.NoError(t, err)
	assert.Equal(t, 0, hours)
}

func TestResolveHoursMissingKeys(t *testing.T) {
	customer := partialCustomer()

	_, err := ResolveHours(customer, "outage", domain.SLAInitialResponse)
	require.Error(t, err)
	assert.True(t, apperrors.IsConfigurationError(err))
	assert.Contains(t, err.Error(), "category")

	_, err = ResolveHours(customer, "incident", domain.SLAType("follow_up"))
	require.Error(t, err)
	assert.True(t, apperrors.IsConfigurationError(err))
	assert.Contains(t, err.Error(), "SLA type")
}

func TestResolveHoursNegativeValue(t *testing.T) {
	customer := partialCustomer()
	customer.Thresholds["incident"][domain.SLAInitialResponse] = -4

	_, err := ResolveHours(customer, "incident", domain.SLAInitialResponse)
	require.Error(t, err)
	assert.True(t, apperrors.IsConfigurationError(err))
}
