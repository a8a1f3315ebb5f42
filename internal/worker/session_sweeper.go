package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// WizardFacade exposes the subset of application functionality required by the sweeper.
type WizardFacade interface {
	ExpireWizardSessions(ctx context.Context) int
}

// SessionSweeper periodically drops idle order wizard sessions.
type SessionSweeper struct {
	facade   WizardFacade
	interval time.Duration
	logger   *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewSessionSweeper constructs a sweeper running every interval.
func NewSessionSweeper(facade WizardFacade, interval time.Duration, logger *slog.Logger) *SessionSweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &SessionSweeper{facade: facade, interval: interval, logger: logger}
}

// Start launches the background loop. Calling Start twice is a no-op.
func (s *SessionSweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.loop(runCtx)
}

// Stop cancels the loop and waits for it to exit.
func (s *SessionSweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *SessionSweeper) loop(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *SessionSweeper) sweep(ctx context.Context) {
	if n := s.facade.ExpireWizardSessions(ctx); n > 0 {
		s.logger.Info("expired wizard sessions", slog.Int("count", n))
	}
}
