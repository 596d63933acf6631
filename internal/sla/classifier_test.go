package sla

import (
	"testing"
	"time"

	"github.com/lcibils/monitor-neuratek/internal/domain"
)

func TestClassifyPending(t *testing.T) {
	now := time.Date(2024, 12, 10, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		deadline time.Duration // offset from now
		want     domain.StatusCategory
	}{
		{"one second past deadline", -time.Second, domain.StatusBreached},
		{"deadline right now", 0, domain.StatusWarning},
		{"59 minutes ahead", 59 * time.Minute, domain.StatusWarning},
		{"exactly one hour ahead", time.Hour, domain.StatusOK},
		{"61 minutes ahead", 61 * time.Minute, domain.StatusOK},
		{"far in the future", 72 * time.Hour, domain.StatusOK},
		{"long overdue", -48 * time.Hour, domain.StatusBreached},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deadline := now.Add(tt.deadline)
			if got := Classify(&deadline, nil, now); got != tt.want {
				t.Errorf("Classify(now%+v, nil) = %s, want %s", tt.deadline, got, tt.want)
			}
		})
	}
}

func TestClassifyRetrospective(t *testing.T) {
	deadline := time.Date(2024, 12, 11, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		milestone time.Duration // offset from deadline
		want      domain.StatusCategory
	}{
		{"met one second early", -time.Second, domain.StatusOK},
		{"met exactly on deadline", 0, domain.StatusOK},
		{"missed by one second", time.Second, domain.StatusBreached},
		{"missed by a day", 24 * time.Hour, domain.StatusBreached},
	}

	// A milestone makes "now" irrelevant; pick a now far past the deadline
	// to prove it.
	now := deadline.Add(30 * 24 * time.Hour)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			milestone := deadline.Add(tt.milestone)
			if got := Classify(&deadline, &milestone, now); got != tt.want {
				t.Errorf("Classify(deadline%+v) = %s, want %s", tt.milestone, got, tt.want)
			}
		})
	}
}

func TestClassifyAbsentDeadline(t *testing.T) {
	now := time.Now()
	milestone := now.Add(-time.Hour)

	if got := Classify(nil, nil, now); got != domain.StatusNone {
		t.Errorf("Classify(nil, nil) = %s, want none", got)
	}
	if got := Classify(nil, &milestone, now); got != domain.StatusNone {
		t.Errorf("Classify(nil, milestone) = %s, want none", got)
	}
}
