// Package migration models a single catalog migration run: its stage
// progression, per-stage counts, and the ordered run log that becomes the
// end-of-run notification body.
package migration

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Stage is one of the three sequential migration phases.
type Stage string

const (
	StageBrands     Stage = "brands"
	StageCategories Stage = "categories"
	StageProducts   Stage = "products"
)

// Stages returns the stages in dependency order.
func Stages() []Stage {
	return []Stage{StageBrands, StageCategories, StageProducts}
}

// State is the run's position in its lifecycle. A run advances through the
// three stage states and ends in StateCompleted, or jumps to StateFailed when
// a listing request fails.
type State string

const (
	StatePending             State = "pending"
	StateMigratingBrands     State = "migrating_brands"
	StateMigratingCategories State = "migrating_categories"
	StateMigratingProducts   State = "migrating_products"
	StateCompleted           State = "completed"
	StateFailed              State = "failed"
)

// stageStates maps each stage to its in-progress state.
var stageStates = map[Stage]State{
	StageBrands:     StateMigratingBrands,
	StageCategories: StateMigratingCategories,
	StageProducts:   StateMigratingProducts,
}

// Sink receives every run log line for durable storage. The persisted log is
// append-only and accumulates across runs.
type Sink interface {
	Append(line string) error
}

// Entry is a single timestamped run log line.
type Entry struct {
	At      time.Time
	Message string
}

// String renders the entry the way it appears in the log file and in the
// notification body.
func (e Entry) String() string {
	return e.At.UTC().Format("2006-01-02 15:04:05") + " " + e.Message
}

// Run is the ephemeral aggregate for one migration run. It is created at run
// start, reported, and discarded; only its flat log text survives the run.
// A Run is not safe for concurrent use: stages execute strictly one after
// another on a single timeline.
type Run struct {
	ID         uuid.UUID
	State      State
	StartedAt  time.Time
	FinishedAt time.Time

	entries []Entry
	counts  map[Stage]int
	sink    Sink
	now     func() time.Time
}

// NewRun creates a run that mirrors every log entry to the given sink. A nil
// sink keeps entries in memory only.
func NewRun(sink Sink) *Run {
	now := time.Now
	return &Run{
		ID:        uuid.New(),
		State:     StatePending,
		StartedAt: now(),
		counts:    make(map[Stage]int),
		sink:      sink,
		now:       now,
	}
}

// Logf appends a timestamped entry to the run log and mirrors it to the
// durable sink. Sink failures are swallowed: losing a durable line must not
// disturb the run itself.
func (r *Run) Logf(format string, args ...any) {
	entry := Entry{At: r.now(), Message: fmt.Sprintf(format, args...)}
	r.entries = append(r.entries, entry)
	if r.sink != nil {
		_ = r.sink.Append(entry.String())
	}
}

// Begin moves the run into the given stage's in-progress state.
func (r *Run) Begin(stage Stage) {
	r.State = stageStates[stage]
}

// RecordCreated increments the stage's confirmed-creation count.
func (r *Run) RecordCreated(stage Stage) {
	r.counts[stage]++
}

// Count returns the number of confirmed creations for a stage.
func (r *Run) Count(stage Stage) int {
	return r.counts[stage]
}

// Complete marks the run as finished with all stages executed.
func (r *Run) Complete() {
	r.State = StateCompleted
	r.FinishedAt = r.now()
}

// Fail marks the run as aborted by a fatal fetch error.
func (r *Run) Fail() {
	r.State = StateFailed
	r.FinishedAt = r.now()
}

// Failed returns true if the run ended in StateFailed.
func (r *Run) Failed() bool {
	return r.State == StateFailed
}

// Entries returns the ordered run log entries accumulated so far.
func (r *Run) Entries() []Entry {
	return r.entries
}

// Transcript joins all accumulated entries into the single text block
// dispatched as the run notification body.
func (r *Run) Transcript() string {
	lines := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		lines = append(lines, e.String())
	}
	return strings.Join(lines, "\n")
}
