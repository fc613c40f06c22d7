package systems_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/wildcatch/internal/core/session"
	"github.com/zeusync/wildcatch/internal/core/systems"
	"github.com/zeusync/wildcatch/internal/core/world/worldtest"
)

func TestClockAgesMessage(t *testing.T) {
	w, _, _ := worldtest.New(worldtest.Quiet())
	sys := systems.NewClock()
	w.Session.Notify("hello", 0.25)

	require.NoError(t, sys.Update(0.125, w))
	assert.Equal(t, "hello", w.Session.Message)
	assert.Equal(t, 0.125, w.Session.Elapsed)

	require.NoError(t, sys.Update(0.125, w))
	assert.Empty(t, w.Session.Message)
	assert.Zero(t, w.Session.MessageTTL)
	assert.Equal(t, 0.25, w.Session.Elapsed)
}

func TestClockRunsInEveryPhase(t *testing.T) {
	sys := systems.NewClock()
	for _, ph := range []session.Phase{session.PhaseActive, session.PhaseVictory, session.PhaseDefeat} {
		assert.True(t, sys.RunsIn(ph), ph.String())
	}
}
