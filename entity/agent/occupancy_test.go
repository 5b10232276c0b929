package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/idmsim/entity"
)

func TestFindLeadSamePath(t *testing.T) {
	lm := testNet(t)
	p, err := NewLanePath([]entity.ILane{lm.Get(1), lm.Get(2), lm.Get(3)})
	require.NoError(t, err)
	idx := NewOccupancyIndex()
	idx.AddPath(p)

	rear := newAgent(1, 4, 2, 10, 10, 3, p)
	front := newAgent(2, 5, 2, 10, 30, 6, p)
	idx.Insert(rear)
	idx.Insert(front)

	lead := idx.FindLead(1)
	require.NotNil(t, lead)
	assert.InDelta(t, 30, lead.S, 1e-9)
	assert.InDelta(t, 6, lead.V, 1e-9)
	assert.InDelta(t, 5, lead.L, 1e-9)

	// 最前方无前车（无下游路径）
	assert.Nil(t, idx.FindLead(2))
	// 未知ID视为编程错误
	assert.Panics(t, func() { idx.FindLead(99) })

	// 前车移除后无前车
	idx.Remove(front)
	assert.Nil(t, idx.FindLead(1))
	assert.Panics(t, func() { idx.FindLead(2) })
}

func TestFindLeadDownstream(t *testing.T) {
	lm := testNet(t)
	up, err := NewLanePath([]entity.ILane{lm.Get(1)})
	require.NoError(t, err)
	down, err := NewLanePath([]entity.ILane{lm.Get(2), lm.Get(3)})
	require.NoError(t, err)
	up.downstream = down

	idx := NewOccupancyIndex()
	idx.AddPath(up)
	idx.AddPath(down)
	a1 := newAgent(1, 4, 2, 10, 50, 5, up)
	a2 := newAgent(2, 4, 2, 10, 5, 2, down)
	idx.Insert(a1)
	idx.Insert(a2)

	// 同路径无前车时回退到单跳下游路径，坐标换算到本路径坐标系
	lead := idx.FindLead(1)
	require.NotNil(t, lead)
	assert.InDelta(t, up.Length()+5, lead.S, 1e-9)
	assert.InDelta(t, 2, lead.V, 1e-9)

	// 下游路径上的agent不再回退
	assert.Nil(t, idx.FindLead(2))
}

func TestTransientOccupant(t *testing.T) {
	lm := testNet(t)
	p, err := NewLanePath([]entity.ILane{lm.Get(1), lm.Get(2), lm.Get(3)})
	require.NoError(t, err)
	idx := NewOccupancyIndex()
	idx.AddPath(p)

	rear := newAgent(1, 4, 2, 10, 10, 3, p)
	front := newAgent(2, 5, 2, 10, 30, 6, p)
	idx.Insert(rear)
	idx.Insert(front)

	// 自车插入到两车之间，成为后车的前车
	idx.InsertTransient(p.ID(), &entity.OccupantNode{
		S:     20,
		Value: &staticOccupant{id: egoOccupantID, v: 1, length: 4.5},
	})
	lead := idx.FindLead(1)
	require.NotNil(t, lead)
	assert.InDelta(t, 20, lead.S, 1e-9)
	assert.InDelta(t, 1, lead.V, 1e-9)
	assert.InDelta(t, 4.5, lead.L, 1e-9)

	// 清理后恢复原状
	idx.ClearTransient()
	lead = idx.FindLead(1)
	require.NotNil(t, lead)
	assert.InDelta(t, 30, lead.S, 1e-9)
}

func TestOccupancyCommit(t *testing.T) {
	lm := testNet(t)
	p, err := NewLanePath([]entity.ILane{lm.Get(1), lm.Get(2), lm.Get(3)})
	require.NoError(t, err)
	idx := NewOccupancyIndex()
	idx.AddPath(p)

	a1 := newAgent(1, 4, 2, 10, 10, 0, p)
	a2 := newAgent(2, 4, 2, 10, 20, 0, p)
	idx.Insert(a1)
	idx.Insert(a2)

	// 后车超越前车后提交，链表恢复有序
	a1.runtime.S = 25
	a1.commit()
	a2.runtime.S = 22
	a2.commit()
	idx.Commit()

	lead := idx.FindLead(2)
	require.NotNil(t, lead)
	assert.InDelta(t, 25, lead.S, 1e-9)
	assert.Nil(t, idx.FindLead(1))
}
