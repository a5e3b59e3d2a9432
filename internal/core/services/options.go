package services

import "github.com/SscSPs/institute_ledger/internal/platform/metrics"

// BaseOption configures the shared parts of a service
type BaseOption func(*BaseService)

// WithMetrics records ledger metrics on the given collectors.
func WithMetrics(m *metrics.Ledger) BaseOption {
	return func(s *BaseService) {
		s.Metrics = m
	}
}

func applyBaseOptions(base *BaseService, options []BaseOption) {
	for _, option := range options {
		option(base)
	}
}
