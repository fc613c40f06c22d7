package systems

import (
	"github.com/zeusync/wildcatch/internal/core/session"
	"github.com/zeusync/wildcatch/internal/core/world"
)

// Clock keeps session time and ages the event message. It runs in every
// phase so outcome messages expire on the game-over screen too.
type Clock struct{}

func NewClock() *Clock { return &Clock{} }

func (*Clock) Name() string              { return "clock" }
func (*Clock) Priority() Priority        { return PriorityClock }
func (*Clock) RunsIn(session.Phase) bool { return true }
func (*Clock) Reset()                    {}

func (*Clock) Update(dt float64, w *world.World) error {
	w.Session.Elapsed += dt
	w.Session.CountDown(dt)
	return nil
}
