package systems

import (
	"time"

	"github.com/zeusync/wildcatch/internal/core/session"
	"github.com/zeusync/wildcatch/internal/core/world"
)

// System is one stage of the per-tick pipeline.
type System interface {
	Name() string
	Priority() Priority

	// RunsIn reports whether the system updates while the session is in phase.
	// The manager asks again before every system, so a phase change made by an
	// earlier system takes effect within the same tick.
	RunsIn(phase session.Phase) bool

	Update(dt float64, w *world.World) error

	// Reset drops any state the system keeps outside the world.
	Reset()
}

// Priority defines execution order. Lower runs first.
type Priority uint16

const (
	PriorityInput      Priority = 100
	PrioritySpawn      Priority = 200
	PriorityWildlife   Priority = 300
	PriorityOpponent   Priority = 400
	PriorityBallistics Priority = 500
	PriorityCollision  Priority = 600
	PriorityClock      Priority = 700
)

// Metrics provides runtime metrics for a system
type Metrics struct {
	ExecutionCount       uint64
	SkippedCount         uint64
	TotalExecutionTime   time.Duration
	AverageExecutionTime time.Duration
	MaxExecutionTime     time.Duration
	ErrorCount           uint64
	LastError            error
}

func (m *Metrics) record(took time.Duration, err error) {
	m.ExecutionCount++
	m.TotalExecutionTime += took
	m.AverageExecutionTime = m.TotalExecutionTime / time.Duration(m.ExecutionCount)
	m.MaxExecutionTime = max(m.MaxExecutionTime, took)
	if err != nil {
		m.ErrorCount++
		m.LastError = err
	}
}

// unlessDefeated is the phase filter of every system that moves entities:
// the world freezes on defeat and keeps running after a victory.
func unlessDefeated(phase session.Phase) bool { return phase != session.PhaseDefeat }

// Default returns the full pipeline in tick order.
func Default() []System {
	return []System{
		NewPlayer(),
		NewSpawner(),
		NewWildlife(),
		NewOpponent(),
		NewBallistics(),
		NewCollision(),
		NewClock(),
	}
}
