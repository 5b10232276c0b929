package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScenarioTimespan(t *testing.T) {
	s := &Scenario{
		Iterations: []*Iteration{
			{Index: 0, TimeS: 8.0},
			{Index: 1, TimeS: 8.5},
			{Index: 2, TimeS: 9.1},
		},
	}

	dt, ok := s.Timespan(0, 1)
	assert.True(t, ok)
	assert.InDelta(t, 0.5, dt, 1e-9)
	dt, ok = s.Timespan(1, 2)
	assert.True(t, ok)
	assert.InDelta(t, 0.6, dt, 1e-9)
	// 同一迭代步的跨度为0
	dt, ok = s.Timespan(1, 1)
	assert.True(t, ok)
	assert.InDelta(t, 0, dt, 1e-9)
	// 时间戳倒退时返回负值，由调用方校验
	dt, ok = s.Timespan(2, 0)
	assert.True(t, ok)
	assert.InDelta(t, -1.1, dt, 1e-9)

	// 任一迭代步缺失时间戳
	_, ok = s.Timespan(0, 5)
	assert.False(t, ok)
	_, ok = s.Timespan(5, 0)
	assert.False(t, ok)

	// nil场景
	var nilScenario *Scenario
	_, ok = nilScenario.Timespan(0, 1)
	assert.False(t, ok)
}

func TestScenarioLightsAt(t *testing.T) {
	s := &Scenario{
		TrafficLights: []*TrafficLight{
			{Iteration: 1, LaneConnectorID: "2", State: "RED"},
			{Iteration: 1, LaneConnectorID: "3", State: "GREEN"},
			{Iteration: 2, LaneConnectorID: "2", State: "GREEN"},
		},
	}
	assert.Len(t, s.LightsAt(1), 2)
	assert.Len(t, s.LightsAt(2), 1)
	assert.Empty(t, s.LightsAt(3))

	var nilScenario *Scenario
	assert.Empty(t, nilScenario.LightsAt(1))
}

func TestScenarioEgoAt(t *testing.T) {
	s := &Scenario{
		Ego: []*EgoPose{
			{Iteration: 0, X: 10},
			{Iteration: 1, X: 12},
		},
	}
	pose := s.EgoAt(1)
	assert.NotNil(t, pose)
	assert.InDelta(t, 12, pose.X, 1e-9)
	assert.Nil(t, s.EgoAt(9))

	var nilScenario *Scenario
	assert.Nil(t, nilScenario.EgoAt(0))
}
