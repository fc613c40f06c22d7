package behavior

import "fmt"

// Sensor refreshes blackboard facts before each tick of the tree.
type Sensor interface {
	Sense(bb *Blackboard) error
}

// Agent runs sensors and then the tree once per Step, keeping its own clock
// for time-based decorators.
type Agent struct {
	tree    *Tree
	sensors []Sensor
	bb      *Blackboard
	now     float64
	last    Status
}

func NewAgent(tree *Tree, sensors ...Sensor) *Agent {
	return &Agent{tree: tree, sensors: sensors, bb: NewBlackboard(), last: StatusFailure}
}

// Step advances the agent clock by dt and ticks the tree. Negative dt is
// treated as zero.
func (a *Agent) Step(dt float64) (Status, error) {
	if dt < 0 {
		dt = 0
	}
	a.now += dt
	for _, s := range a.sensors {
		if err := s.Sense(a.bb); err != nil {
			return StatusFailure, fmt.Errorf("sense: %w", err)
		}
	}
	st, err := a.tree.Tick(Context{BB: a.bb, Now: a.now, DT: dt})
	if err != nil {
		return StatusFailure, err
	}
	a.last = st
	return st, nil
}

func (a *Agent) Blackboard() *Blackboard { return a.bb }
func (a *Agent) Now() float64            { return a.now }
func (a *Agent) Last() Status            { return a.last }

// Reset forgets all blackboard state and rewinds the clock.
func (a *Agent) Reset() {
	a.bb.Clear()
	a.now = 0
	a.last = StatusFailure
}
