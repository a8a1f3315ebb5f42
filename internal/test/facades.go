package test

import (
	"context"
	"sync/atomic"
)

// WizardFacadeStub mimics the sweeper's view of the application facade.
type WizardFacadeStub struct {
	Expired  int
	ExpireFn func(context.Context) int

	calls atomic.Int32
}

// ExpireWizardSessions counts invocations and returns the configured result.
func (s *WizardFacadeStub) ExpireWizardSessions(ctx context.Context) int {
	s.calls.Add(1)
	if s.ExpireFn != nil {
		return s.ExpireFn(ctx)
	}
	return s.Expired
}

// Calls returns how many sweeps happened.
func (s *WizardFacadeStub) Calls() int {
	return int(s.calls.Load())
}
