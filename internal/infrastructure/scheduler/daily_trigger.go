// Package scheduler fires the migration entry point once immediately on
// process start and then once daily at a fixed UTC time.
package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Runner is the fire-and-forget migration entry point. Outcomes are
// observable only through the run log and notification.
type Runner interface {
	RunMigration(ctx context.Context)
}

// Config holds the daily trigger settings.
type Config struct {
	// UTCHour and UTCMinute are the daily fire time in UTC.
	UTCHour   int
	UTCMinute int

	// CheckInterval is how often to check whether it is time to fire.
	CheckInterval time.Duration

	// RunOnStart fires one run immediately when the trigger starts.
	RunOnStart bool
}

// DefaultConfig returns the default daily trigger configuration.
func DefaultConfig() Config {
	return Config{
		UTCHour:       2,
		UTCMinute:     0,
		CheckInterval: time.Minute,
		RunOnStart:    true,
	}
}

// DailyTrigger invokes the runner on the configured schedule. Overlap
// protection lives in the runner itself; the trigger only decides when to
// fire.
type DailyTrigger struct {
	config Config
	runner Runner
	logger *zap.Logger

	cancel      context.CancelFunc
	wg          sync.WaitGroup
	mu          sync.Mutex
	isRunning   bool
	lastRunDate string // date (UTC) the daily fire last happened
}

// NewDailyTrigger creates a daily trigger.
func NewDailyTrigger(config Config, runner Runner, logger *zap.Logger) *DailyTrigger {
	if config.CheckInterval <= 0 {
		config.CheckInterval = time.Minute
	}
	return &DailyTrigger{
		config: config,
		runner: runner,
		logger: logger,
	}
}

// Start starts the trigger loop.
func (t *DailyTrigger) Start(ctx context.Context) error {
	t.mu.Lock()
	if t.isRunning {
		t.mu.Unlock()
		return nil
	}
	t.isRunning = true
	t.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	t.cancel = cancel

	t.wg.Add(1)
	go t.runLoop(ctx)

	t.logger.Info("Daily trigger started",
		zap.Int("utc_hour", t.config.UTCHour),
		zap.Int("utc_minute", t.config.UTCMinute),
		zap.Duration("check_interval", t.config.CheckInterval),
		zap.Bool("run_on_start", t.config.RunOnStart),
	)
	return nil
}

// Stop stops the trigger loop and waits for it to exit.
func (t *DailyTrigger) Stop(ctx context.Context) error {
	t.mu.Lock()
	if !t.isRunning {
		t.mu.Unlock()
		return nil
	}
	t.isRunning = false
	t.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
	}

	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		t.logger.Info("Daily trigger stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// runLoop fires on start when configured, then checks periodically whether
// the daily fire time has been reached.
func (t *DailyTrigger) runLoop(ctx context.Context) {
	defer t.wg.Done()

	if t.config.RunOnStart {
		t.logger.Info("Triggering migration run on start")
		t.runner.RunMigration(ctx)
	}

	ticker := time.NewTicker(t.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.checkAndTrigger(ctx)
		}
	}
}

// checkAndTrigger fires the runner when the configured UTC time is reached
// and the daily fire has not already happened today.
func (t *DailyTrigger) checkAndTrigger(ctx context.Context) {
	now := time.Now().UTC()
	currentDate := now.Format("2006-01-02")

	t.mu.Lock()
	alreadyRan := t.lastRunDate == currentDate
	t.mu.Unlock()
	if alreadyRan {
		return
	}

	if now.Hour() != t.config.UTCHour || now.Minute() != t.config.UTCMinute {
		return
	}

	t.mu.Lock()
	t.lastRunDate = currentDate
	t.mu.Unlock()

	t.logger.Info("Triggering scheduled migration run", zap.String("date", currentDate))
	t.runner.RunMigration(ctx)
}
