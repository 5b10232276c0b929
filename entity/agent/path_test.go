package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/idmsim/entity"
	"github.com/tsinghua-fib-lab/idmsim/entity/lane"
	"github.com/tsinghua-fib-lab/idmsim/utils/input"
)

// testNet 构建共线的三车道路网：1(0~100m) -> 2(connector, 100~114m) -> 3(114~160m)
// 说明：几何沿x轴布置，路径弧长与x坐标一致，便于断言
func testNet(t *testing.T) entity.ILaneManager {
	m := lane.NewManager()
	require.NoError(t, m.Init([]*input.Lane{
		{
			ID: 1, Width: 3.5, MaxSpeed: 15,
			CenterLine: []input.Point{{X: 0}, {X: 100}},
			Successors: []int32{2},
		},
		{
			ID: 2, IsConnector: true, Width: 3.5, MaxSpeed: 15,
			CenterLine:   []input.Point{{X: 100}, {X: 114}},
			Predecessors: []int32{1},
			Successors:   []int32{3},
		},
		{
			ID: 3, Width: 3.5, MaxSpeed: 15,
			CenterLine:   []input.Point{{X: 114}, {X: 160}},
			Predecessors: []int32{2},
		},
	}))
	return m
}

func TestNewLanePath(t *testing.T) {
	lm := testNet(t)
	p, err := NewLanePath([]entity.ILane{lm.Get(1), lm.Get(2), lm.Get(3)})
	require.NoError(t, err)
	assert.Equal(t, int32(1), p.ID())
	assert.InDelta(t, 160, p.Length(), 1e-9)
	assert.Equal(t, []float64{0, 100, 114}, p.Offsets())

	// 空路径
	_, err = NewLanePath(nil)
	assert.ErrorIs(t, err, entity.ErrMalformedPath)
	// 不连通
	_, err = NewLanePath([]entity.ILane{lm.Get(1), lm.Get(3)})
	assert.ErrorIs(t, err, entity.ErrMalformedPath)
}

func TestLanePathCoordinates(t *testing.T) {
	lm := testNet(t)
	p, err := NewLanePath([]entity.ILane{lm.Get(1), lm.Get(2), lm.Get(3)})
	require.NoError(t, err)

	l, laneS := p.LaneAt(50)
	assert.Equal(t, int32(1), l.ID())
	assert.InDelta(t, 50, laneS, 1e-9)
	// 车道边界处归入下一车道起点
	l, laneS = p.LaneAt(100)
	assert.Equal(t, int32(2), l.ID())
	assert.InDelta(t, 0, laneS, 1e-9)
	l, laneS = p.LaneAt(160)
	assert.Equal(t, int32(3), l.ID())
	assert.InDelta(t, 46, laneS, 1e-9)

	assert.InDelta(t, 105, p.PositionAt(105).X, 1e-9)
	assert.InDelta(t, 0, p.HeadingAt(105), 1e-9)

	offset, ok := p.OffsetOfLane(3)
	assert.True(t, ok)
	assert.InDelta(t, 114, offset, 1e-9)
	_, ok = p.OffsetOfLane(99)
	assert.False(t, ok)
}
