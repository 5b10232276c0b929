package agent

import (
	"fmt"
	"math"

	"git.fiblab.net/general/common/v2/parallel"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/idmsim/entity"
	"github.com/tsinghua-fib-lab/idmsim/utils/config"
)

// pathPlacement 车道在某条路径上的落位
type pathPlacement struct {
	path   *LanePath
	offset float64 // 车道起点在路径上的弧长偏移
}

// AgentManager IDM agent管理器
// 功能：管理所有模拟agent，按步推进跟车模型并产生检测输出
// 说明：两阶段初始化，NewManager只存配置，Init构建路径、agent与占据索引
type AgentManager struct {
	cfg  config.AgentConfig
	ctrl controller

	laneManager entity.ILaneManager
	agents      map[int32]*Agent          // agent ID->agent
	order       []*Agent                  // ID升序的agent列表，决定输出顺序
	paths       map[int32]*LanePath       // 起始车道ID->路径
	laneIndex   map[int32][]pathPlacement // 车道ID->包含该车道的路径落位
	occupancy   *OccupancyIndex

	numActive   int
	initialized bool
}

// NewManager 创建agent管理器
// 说明：只存储配置，构建实体需调用Init
func NewManager(cfg config.AgentConfig) *AgentManager {
	return &AgentManager{
		cfg:       cfg,
		ctrl:      newController(cfg),
		agents:    make(map[int32]*Agent),
		paths:     make(map[int32]*LanePath),
		laneIndex: make(map[int32][]pathPlacement),
		occupancy: NewOccupancyIndex(),
	}
}

// Initialized 查询管理器是否已完成初始化
func (m *AgentManager) Initialized() bool {
	return m.initialized
}

// Get 获取指定ID的agent，不存在时panic
func (m *AgentManager) Get(id int32) *Agent {
	if a, ok := m.agents[id]; ok {
		return a
	}
	log.Panicf("no agent %d", id)
	panic("unreachable")
}

// GetOrError 获取指定ID的agent，不存在时返回error
func (m *AgentManager) GetOrError(id int32) (*Agent, error) {
	if a, ok := m.agents[id]; ok {
		return a, nil
	}
	return nil, fmt.Errorf("%w: %d", entity.ErrUnknownAgent, id)
}

// NumActive 获取仍在路网上的agent数
func (m *AgentManager) NumActive() int {
	return m.numActive
}

// PropagateAgents 推进一步
// 功能：解析前车、计算IDM加速度、积分运动并批量提交占据索引
// 参数：ego-自车状态（可为nil），dt-时间步长（秒），iteration-迭代序号，
// lights-本步lane connector信号灯状态
// 返回：dt为负时返回entity.ErrInvalidTimestep，此时不产生任何状态变更
// 算法说明：
// 1. 重建信号灯状态（不跨步保存）
// 2. 自车投影到最近车道，作为临时占据者参与前车解析
// 3. 计算阶段：并行，各agent只读已发布状态与占据索引，只写各自runtime
// 4. 提交阶段：串行发布新状态、恢复占据索引有序性、移除到达终点的agent
// 说明：一步要么完整提交要么完全不提交，计算阶段不修改任何共享状态
func (m *AgentManager) PropagateAgents(
	ego *entity.EgoState, dt float64, iteration int32, lights map[int32]entity.LightState,
) error {
	if !m.initialized {
		return fmt.Errorf("agent manager is not initialized")
	}
	if dt < 0 {
		return fmt.Errorf("%w: dt=%v at iteration %d", entity.ErrInvalidTimestep, dt, iteration)
	}

	// 本步信号灯状态
	m.laneManager.ResetLights()
	m.laneManager.SetLights(lights)

	// 自车临时占据
	m.insertEgo(ego)
	defer m.occupancy.ClearTransient()

	// 计算阶段
	active := lo.Filter(m.order, func(a *Agent, _ int) bool { return a.snapshot.Status == statusActive })
	parallel.GoFor(active, func(a *Agent) { m.compute(a, dt) })

	// 提交阶段
	for _, a := range active {
		a.commit()
	}
	m.occupancy.Commit()
	for _, a := range active {
		if a.snapshot.Status == statusExited {
			m.occupancy.Remove(a)
			m.numActive--
			log.Debugf("agent %d exited at iteration %d", a.id, iteration)
		}
	}
	return nil
}

// insertEgo 将自车投影到最近车道并插入占据索引
// 说明：自车只作为潜在前车参与计算，不被推进；偏离路网时不插入
func (m *AgentManager) insertEgo(ego *entity.EgoState) {
	if ego == nil {
		return
	}
	lane, laneS := m.laneManager.FindNearestLane(ego)
	if lane == nil {
		return
	}
	occ := &staticOccupant{id: egoOccupantID, v: ego.V, length: ego.Length}
	for _, pl := range m.laneIndex[lane.ID()] {
		m.occupancy.InsertTransient(pl.path.ID(), &entity.OccupantNode{S: pl.offset + laneS, Value: occ})
	}
}

// gapTo 计算与前车的保险杠间距
// 说明：位置差扣除双方半车长，下限gapEpsilon以避免除零
func gapTo(a *Agent, s float64, lead *leadInfo) float64 {
	return math.Max(gapEpsilon, lead.S-s-(a.length+lead.L)/2)
}

// resolveLead 解析agent的有效前车
// 功能：真实前车与信号灯虚拟障碍取车距较近者
// 说明：车距相等时保留真实前车，避免在前车后方因虚拟障碍无谓减速
func (m *AgentManager) resolveLead(a *Agent, s float64) *leadInfo {
	lead := m.occupancy.FindLead(a.id)
	if stopS, ok := findLightObstacle(a.path, s, m.cfg.LightLookahead); ok {
		virt := &leadInfo{S: stopS}
		if lead == nil || gapTo(a, s, virt) < gapTo(a, s, lead) {
			lead = virt
		}
	}
	return lead
}

// accelerationFor 计算IDM加速度
func (m *AgentManager) accelerationFor(a *Agent, s, v float64, lead *leadInfo) float64 {
	if lead == nil {
		return m.ctrl.freeRoad(v, a.targetV)
	}
	return m.ctrl.follow(v, a.targetV, lead.V, gapTo(a, s, lead))
}

// compute 计算agent的下一状态（计算阶段，并行调用）
// 说明：结果写入runtime，提交前对其他agent不可见；
// 位置到达路径终点时转为EXITED终态
func (m *AgentManager) compute(a *Agent, dt float64) {
	s, v := a.snapshot.S, a.snapshot.V
	acc := m.accelerationFor(a, s, v, m.resolveLead(a, s))
	newV, ds := computeVAndDistance(v, acc, dt)
	rt := agentRuntime{S: s + ds, V: newV, Status: statusActive}
	if rt.S >= a.path.Length() {
		rt.S = a.path.Length()
		rt.Status = statusExited
	}
	a.runtime = rt
}

// projectTrajectory 生成短时域预测轨迹
// 功能：以当前IDM加速度假设前向积分，不修改真实状态
// 说明：前车冻结在解析时刻的位置与速度，每个采样点重新计算车距与加速度
func (m *AgentManager) projectTrajectory(a *Agent, samples int, interval float64) []entity.TrajectorySample {
	s, v := a.snapshot.S, a.snapshot.V
	lead := m.resolveLead(a, s)
	traj := make([]entity.TrajectorySample, 0, samples)
	for i := 1; i <= samples; i++ {
		acc := m.accelerationFor(a, s, v, lead)
		var ds float64
		v, ds = computeVAndDistance(v, acc, interval)
		s = math.Min(s+ds, a.path.Length())
		traj = append(traj, entity.TrajectorySample{
			TimeOffset: float64(i) * interval,
			XYZ:        a.path.PositionAt(s),
			Heading:    a.path.HeadingAt(s),
			V:          v,
		})
	}
	return traj
}

// GetActiveAgents 产生当前活跃agent的检测输出
// 功能：输出每个活跃agent的位姿、速度、外形与预测轨迹，按ID升序排列
// 参数：iteration-迭代序号，samples-预测轨迹采样数，interval-采样间隔（秒）
func (m *AgentManager) GetActiveAgents(iteration int32, samples int, interval float64) *entity.DetectionsTracks {
	active := lo.Filter(m.order, func(a *Agent, _ int) bool { return a.snapshot.Status == statusActive })
	tracks := parallel.GoMap(active, func(a *Agent) entity.AgentTrack {
		return entity.AgentTrack{
			AgentID:    a.id,
			XYZ:        a.XYZ(),
			Heading:    a.Heading(),
			V:          a.snapshot.V,
			BoxLength:  a.length,
			BoxWidth:   a.width,
			Trajectory: m.projectTrajectory(a, samples, interval),
		}
	})
	return &entity.DetectionsTracks{Iteration: iteration, Tracks: tracks}
}

// 接口断言
var _ entity.IAgentManager = (*AgentManager)(nil)
