package verification

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Scanner re-runs ScanForNewSubmissions on a fixed interval for the lifetime
// of the server: once at start, then every tick until stopped.
type Scanner struct {
	rec      *Reconciler
	interval time.Duration
	logger   *slog.Logger
	stop     chan struct{}
	wg       sync.WaitGroup
}

func NewScanner(rec *Reconciler, interval time.Duration, logger *slog.Logger) *Scanner {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{rec: rec, interval: interval, logger: logger, stop: make(chan struct{})}
}

// Start launches the scan loop goroutine.
func (s *Scanner) Start(ctx context.Context) {
	s.wg.Add(1)
	go s.loop(ctx)
}

// Stop signals the loop to exit and waits for it.
func (s *Scanner) Stop() {
	close(s.stop)
	s.wg.Wait()
}

func (s *Scanner) loop(ctx context.Context) {
	defer s.wg.Done()

	s.runOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			s.logger.Info("verification scanner stopping")
			return
		case <-ctx.Done():
			s.logger.Info("context canceled, verification scanner exiting")
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scanner) runOnce(ctx context.Context) {
	created, err := s.rec.ScanForNewSubmissions(ctx)
	if err != nil {
		s.logger.Error("verification scan failed", slog.Any("err", err))
		return
	}
	if created > 0 {
		s.logger.Info("verification scan promoted submissions", slog.Int("created", created))
	}
}
