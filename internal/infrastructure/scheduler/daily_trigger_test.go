package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// countingRunner counts entry-point invocations.
type countingRunner struct {
	runs  atomic.Int32
	fired chan struct{}
}

func newCountingRunner() *countingRunner {
	return &countingRunner{fired: make(chan struct{}, 8)}
}

func (r *countingRunner) RunMigration(context.Context) {
	r.runs.Add(1)
	r.fired <- struct{}{}
}

func TestDailyTrigger_RunOnStart(t *testing.T) {
	runner := newCountingRunner()
	trigger := NewDailyTrigger(Config{
		UTCHour:       2,
		CheckInterval: time.Hour, // never reached in this test
		RunOnStart:    true,
	}, runner, zap.NewNop())

	require.NoError(t, trigger.Start(context.Background()))
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = trigger.Stop(stopCtx)
	}()

	select {
	case <-runner.fired:
	case <-time.After(2 * time.Second):
		t.Fatal("expected an immediate run on start")
	}
	assert.Equal(t, int32(1), runner.runs.Load())
}

func TestDailyTrigger_NoRunOnStart(t *testing.T) {
	runner := newCountingRunner()
	trigger := NewDailyTrigger(Config{
		UTCHour:       2,
		CheckInterval: time.Hour,
		RunOnStart:    false,
	}, runner, zap.NewNop())

	require.NoError(t, trigger.Start(context.Background()))

	select {
	case <-runner.fired:
		t.Fatal("run fired without run_on_start")
	case <-time.After(50 * time.Millisecond):
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, trigger.Stop(stopCtx))
	assert.Equal(t, int32(0), runner.runs.Load())
}

func TestDailyTrigger_FiresAtConfiguredUTCTime(t *testing.T) {
	now := time.Now().UTC()
	runner := newCountingRunner()
	trigger := NewDailyTrigger(Config{
		UTCHour:       now.Hour(),
		UTCMinute:     now.Minute(),
		CheckInterval: 10 * time.Millisecond,
		RunOnStart:    false,
	}, runner, zap.NewNop())

	require.NoError(t, trigger.Start(context.Background()))
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = trigger.Stop(stopCtx)
	}()

	select {
	case <-runner.fired:
	case <-time.After(2 * time.Second):
		t.Fatal("expected the trigger to fire at the configured time")
	}

	// The same date never fires twice even though the minute is still
	// current on the next ticks.
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), runner.runs.Load())
}

func TestDailyTrigger_StartIsIdempotent(t *testing.T) {
	runner := newCountingRunner()
	trigger := NewDailyTrigger(Config{CheckInterval: time.Hour}, runner, zap.NewNop())

	require.NoError(t, trigger.Start(context.Background()))
	require.NoError(t, trigger.Start(context.Background()))

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, trigger.Stop(stopCtx))
	require.NoError(t, trigger.Stop(stopCtx))
}
