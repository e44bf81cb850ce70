package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pulsenet/admission"
	"github.com/katalvlaran/pulsenet/config"
	"github.com/katalvlaran/pulsenet/scenario"
	"github.com/katalvlaran/pulsenet/topology"
	"github.com/katalvlaran/pulsenet/trafficeng"
)

func TestNewController_EveryKnownStrategy(t *testing.T) {
	cfg := config.New()
	g := topology.NewGraph()

	for _, name := range []string{"ours", "bate", "aequitas", "seawall"} {
		c, err := newController(name, cfg, g)
		require.NoError(t, err, name)
		assert.Implements(t, (*admission.Controller)(nil), c)
	}
}

func TestNewController_UnknownStrategy(t *testing.T) {
	_, err := newController("bogus", config.New(), topology.NewGraph())
	require.Error(t, err)
	assert.Equal(t, UnknownStrategy{Flag: "phase1", Value: "bogus"}, err)
}

func TestNewEngineer_EveryKnownStrategy(t *testing.T) {
	cfg := config.New()
	for _, name := range []string{"ours", "greedy", "ncflow", "igr"} {
		e, err := newEngineer(name, cfg)
		require.NoError(t, err, name)
		assert.Implements(t, (*trafficeng.Engineer)(nil), e)
	}
}

func TestNewEngineer_UnknownStrategy(t *testing.T) {
	_, err := newEngineer("bogus", config.New())
	require.Error(t, err)
	assert.Equal(t, UnknownStrategy{Flag: "phase2", Value: "bogus"}, err)
}

func TestNewScenario(t *testing.T) {
	s, err := newScenario("fcfs")
	require.NoError(t, err)
	assert.Equal(t, scenario.FCFS, s)

	s, err = newScenario("sjf")
	require.NoError(t, err)
	assert.Equal(t, scenario.SJF, s)

	_, err = newScenario("bogus")
	require.Error(t, err)
}
