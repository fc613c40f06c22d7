package systems

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/zeusync/wildcatch/internal/core/observability/log"
	"github.com/zeusync/wildcatch/internal/core/world"
)

var ErrSystemExists = errors.New("system already registered")

// Manager runs registered systems in priority order and keeps per-system
// metrics. It is not safe for concurrent use.
type Manager struct {
	systems []System
	metrics map[string]*Metrics
	log     log.Log
}

func NewManager(logger log.Log) *Manager {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Manager{
		metrics: make(map[string]*Metrics),
		log:     logger,
	}
}

// Register adds systems. Systems of equal priority keep registration order.
func (m *Manager) Register(systems ...System) error {
	for _, sys := range systems {
		if _, ok := m.metrics[sys.Name()]; ok {
			return fmt.Errorf("%w: %s", ErrSystemExists, sys.Name())
		}
		m.metrics[sys.Name()] = &Metrics{}
		m.systems = append(m.systems, sys)
	}
	slices.SortStableFunc(m.systems, func(a, b System) int {
		return int(a.Priority()) - int(b.Priority())
	})
	return nil
}

// Update runs one tick. A failing system is logged and recorded; the rest of
// the pipeline still runs and the errors are returned joined.
func (m *Manager) Update(dt float64, w *world.World) error {
	var errs []error
	for _, sys := range m.systems {
		metrics := m.metrics[sys.Name()]
		if !sys.RunsIn(w.Session.Phase) {
			metrics.SkippedCount++
			continue
		}

		start := time.Now()
		err := sys.Update(dt, w)
		metrics.record(time.Since(start), err)

		if err != nil {
			m.log.Error("system update failed",
				log.String("system", sys.Name()),
				log.Uint64("tick", w.Session.Tick),
				log.Error(err),
			)
			errs = append(errs, fmt.Errorf("%s: %w", sys.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// Reset resets every system.
func (m *Manager) Reset() {
	for _, sys := range m.systems {
		sys.Reset()
	}
}

func (m *Manager) ExecutionOrder() []string {
	names := make([]string, len(m.systems))
	for i, sys := range m.systems {
		names[i] = sys.Name()
	}
	return names
}

func (m *Manager) SystemMetrics(name string) (Metrics, bool) {
	metrics, ok := m.metrics[name]
	if !ok {
		return Metrics{}, false
	}
	return *metrics, true
}
