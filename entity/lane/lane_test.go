package lane_test

import (
	"math"
	"testing"

	"git.fiblab.net/general/common/v2/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/idmsim/entity"
	"github.com/tsinghua-fib-lab/idmsim/entity/lane"
	"github.com/tsinghua-fib-lab/idmsim/utils/input"
)

func testLanes() []*input.Lane {
	// 1 --> 2(connector) --> 3
	return []*input.Lane{
		{
			ID: 1, Width: 3.5, MaxSpeed: 15,
			CenterLine: []input.Point{{X: 0, Y: 0}, {X: 50, Y: 0}, {X: 100, Y: 0}},
			Successors: []int32{2},
		},
		{
			ID: 2, IsConnector: true, Width: 3.5, MaxSpeed: 10,
			CenterLine:   []input.Point{{X: 100, Y: 0}, {X: 110, Y: 10}},
			Predecessors: []int32{1},
			Successors:   []int32{3},
		},
		{
			ID: 3, Width: 3.5, MaxSpeed: 15,
			CenterLine:   []input.Point{{X: 110, Y: 10}, {X: 110, Y: 60}},
			Predecessors: []int32{2},
		},
	}
}

func TestManagerInit(t *testing.T) {
	m := lane.NewManager()
	require.NoError(t, m.Init(testLanes()))
	assert.Len(t, m.Lanes(), 3)

	l1 := m.Get(1)
	assert.Equal(t, int32(1), l1.ID())
	assert.InDelta(t, 100, l1.Length(), 1e-9)
	assert.False(t, l1.IsConnector())
	l2 := m.Get(2)
	assert.True(t, l2.IsConnector())

	// 拓扑
	assert.Same(t, l2, l1.UniqueSuccessor())
	assert.Same(t, l2, m.Get(3).Predecessors()[2])
	assert.Nil(t, m.Get(3).UniqueSuccessor())

	_, err := m.GetOrError(99)
	assert.Error(t, err)
	assert.Panics(t, func() { m.Get(99) })
}

func TestManagerInitMalformed(t *testing.T) {
	m := lane.NewManager()
	err := m.Init([]*input.Lane{
		{ID: 1, CenterLine: []input.Point{{X: 0, Y: 0}}},
	})
	assert.ErrorIs(t, err, entity.ErrMalformedPath)

	m = lane.NewManager()
	err = m.Init([]*input.Lane{
		{ID: 1, CenterLine: []input.Point{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 10, Y: 0}}},
	})
	assert.ErrorIs(t, err, entity.ErrMalformedPath)

	// 未知后继
	m = lane.NewManager()
	err = m.Init([]*input.Lane{
		{ID: 1, CenterLine: []input.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}, Successors: []int32{2}},
	})
	assert.Error(t, err)
}

func TestLaneGeometry(t *testing.T) {
	m := lane.NewManager()
	require.NoError(t, m.Init(testLanes()))
	l := m.Get(1)

	pos := l.GetPositionByS(25)
	assert.InDelta(t, 25, pos.X, 1e-9)
	assert.InDelta(t, 0, pos.Y, 1e-9)
	assert.InDelta(t, 0, l.GetHeadingByS(25), 1e-9)

	// 超界截断
	pos = l.GetPositionByS(1000)
	assert.InDelta(t, 100, pos.X, 1e-9)

	l3 := m.Get(3)
	assert.InDelta(t, math.Pi/2, l3.GetHeadingByS(10), 1e-9)

	s, lateral := l.ProjectToLane(geometry.Point{X: 30, Y: 1.2})
	assert.InDelta(t, 30, s, 1e-6)
	assert.InDelta(t, 1.2, lateral, 1e-6)
}

func TestLights(t *testing.T) {
	m := lane.NewManager()
	require.NoError(t, m.Init(testLanes()))

	assert.Equal(t, entity.LightStateUnknown, m.Get(2).Light())
	m.SetLights(map[int32]entity.LightState{
		2:  entity.LightStateRed,
		99: entity.LightStateGreen, // 未知车道，忽略
	})
	assert.Equal(t, entity.LightStateRed, m.Get(2).Light())

	m.ResetLights()
	assert.Equal(t, entity.LightStateUnknown, m.Get(2).Light())
}

func TestFindNearestLane(t *testing.T) {
	m := lane.NewManager()
	require.NoError(t, m.Init(testLanes()))

	l, s := m.FindNearestLane(&entity.EgoState{
		XYZ: geometry.Point{X: 40, Y: 0.5}, Width: 2,
	})
	require.NotNil(t, l)
	assert.Equal(t, int32(1), l.ID())
	assert.InDelta(t, 40, s, 1e-6)

	// 偏离所有车道
	l, _ = m.FindNearestLane(&entity.EgoState{
		XYZ: geometry.Point{X: 40, Y: 50}, Width: 2,
	})
	assert.Nil(t, l)
}

func TestFindNearestLaneTieBreak(t *testing.T) {
	m := lane.NewManager()
	require.NoError(t, m.Init(testLanes()))

	// 车道1与connector 2共享端点(100,0)，投影到该点时横向距离相等，
	// 取车道ID较小者
	for i := 0; i < 10; i++ {
		l, s := m.FindNearestLane(&entity.EgoState{
			XYZ: geometry.Point{X: 100, Y: -2.5}, Width: 2,
		})
		require.NotNil(t, l)
		assert.Equal(t, int32(1), l.ID())
		assert.InDelta(t, 100, s, 1e-6)
	}
}
