package agent

import (
	"fmt"
	"sort"

	"github.com/tsinghua-fib-lab/idmsim/entity"
	"github.com/tsinghua-fib-lab/idmsim/utils/input"
	"github.com/tsinghua-fib-lab/idmsim/utils/randengine"
)

// 期望速度抖动范围（全局期望速度的±10%）
const targetVJitter = 0.1

// Init 初始化agent管理器（两阶段初始化的第二阶段）
// 功能：构建车道路径、agent实体与占据索引
// 参数：laneManager-车道管理器，bases-初始agent输入数据
// 返回：起始车道不存在或路径非法时返回error
// 算法说明：
// 1. 路径按起始车道去重构建，同车道起步的agent共享路径对象
// 2. 剩余可行驶距离不足最小路径长度的agent跳过并告警
// 3. 期望速度：输入未指定时在全局期望速度上做确定性抖动（以agent ID为种子）
// 4. 全部agent构建后建立路径间单跳下游连接与车道反查表
func (m *AgentManager) Init(laneManager entity.ILaneManager, bases []*input.Agent) error {
	if m.initialized {
		return nil
	}
	m.laneManager = laneManager

	for _, base := range bases {
		startLane, err := laneManager.GetOrError(base.LaneID)
		if err != nil {
			return fmt.Errorf("init agent %d: %w", base.ID, err)
		}
		p, ok := m.paths[startLane.ID()]
		if !ok {
			if p, err = m.buildPath(startLane); err != nil {
				return fmt.Errorf("init agent %d: %w", base.ID, err)
			}
			m.paths[p.ID()] = p
			m.occupancy.AddPath(p)
		}
		if p.Length()-base.S < m.cfg.MinimumPathLength {
			log.Warnf("skip agent %d: only %.1fm drivable ahead of lane %d s=%.1f, need %.1fm",
				base.ID, p.Length()-base.S, base.LaneID, base.S, m.cfg.MinimumPathLength)
			continue
		}
		if _, ok := m.agents[base.ID]; ok {
			log.Panicf("agent %d already exists", base.ID)
		}
		targetV := base.TargetV
		if targetV <= 0 {
			e := randengine.New(uint64(base.ID))
			targetV = m.cfg.TargetVelocity * (1 + targetVJitter*(2*e.SafeFloat64()-1))
		}
		a := newAgent(base.ID, base.Length, base.Width, targetV, base.S, base.V, p)
		m.agents[a.id] = a
		m.order = append(m.order, a)
		m.occupancy.Insert(a)
	}
	sort.Slice(m.order, func(i, j int) bool { return m.order[i].id < m.order[j].id })

	// 下游连接与车道反查表
	for _, p := range m.paths {
		lanes, offsets := p.Lanes(), p.Offsets()
		if next := lanes[len(lanes)-1].UniqueSuccessor(); next != nil {
			if down, ok := m.paths[next.ID()]; ok && down != p {
				p.downstream = down
			}
		}
		for i, l := range lanes {
			m.laneIndex[l.ID()] = append(m.laneIndex[l.ID()], pathPlacement{path: p, offset: offsets[i]})
		}
	}

	m.numActive = len(m.order)
	m.initialized = true
	log.Infof("agent manager init: %d agents on %d paths (%d skipped)",
		len(m.order), len(m.paths), len(bases)-len(m.order))
	return nil
}

// buildPath 从起始车道构建路径
// 算法说明：沿唯一后继延伸，直到路径长度覆盖起始车道长度加最小路径长度，
// 或后继不唯一/不存在/成环为止
func (m *AgentManager) buildPath(start entity.ILane) (*LanePath, error) {
	lanes := []entity.ILane{start}
	seen := map[int32]struct{}{start.ID(): {}}
	length := start.Length()
	need := start.Length() + m.cfg.MinimumPathLength
	cur := start
	for length < need {
		next := cur.UniqueSuccessor()
		if next == nil {
			break
		}
		if _, ok := seen[next.ID()]; ok {
			break
		}
		lanes = append(lanes, next)
		seen[next.ID()] = struct{}{}
		length += next.Length()
		cur = next
	}
	return NewLanePath(lanes)
}
