package lane

import (
	"fmt"

	"git.fiblab.net/general/common/v2/mathutil"
	"github.com/tsinghua-fib-lab/idmsim/entity"
	"github.com/tsinghua-fib-lab/idmsim/utils/input"
)

// LaneManager 车道管理器
// 功能：管理所有Lane实体，提供查询、信号灯批量写入与最近车道搜索
type LaneManager struct {
	data       map[int32]*Lane        // 车道数据映射表
	lanes      map[int32]entity.ILane // 接口形式的车道映射表
	connectors []*Lane                // lane connector列表
}

// NewManager 创建车道管理器
// 说明：仅分配容器，加载数据需调用Init（两阶段初始化）
func NewManager() *LaneManager {
	return &LaneManager{
		data:       make(map[int32]*Lane),
		lanes:      make(map[int32]entity.ILane),
		connectors: make([]*Lane, 0),
	}
}

// Init 初始化车道管理器
// 功能：构建所有Lane实体并建立拓扑关系
// 参数：lanes-车道输入数据
// 返回：几何或拓扑非法时返回error
// 算法说明：
// 1. 第一阶段：构建所有Lane实体（几何校验在此完成）
// 2. 第二阶段：建立车道间前驱后继连接关系
func (m *LaneManager) Init(lanes []*input.Lane) error {
	for _, base := range lanes {
		l, err := newLane(base)
		if err != nil {
			return fmt.Errorf("init lane manager: %w", err)
		}
		m.data[l.id] = l
		m.lanes[l.id] = l
		if l.isConnector {
			m.connectors = append(m.connectors, l)
		}
	}
	for _, l := range m.data {
		if err := l.initWithManager(m); err != nil {
			return fmt.Errorf("init lane manager: %w", err)
		}
	}
	log.Debugf("lane manager init: %d lanes, %d connectors", len(m.data), len(m.connectors))
	return nil
}

// Get 获取指定ID的Lane实体，不存在时panic
func (m *LaneManager) Get(id int32) entity.ILane {
	if lane, ok := m.data[id]; ok {
		return lane
	}
	log.Panicf("no lane %d", id)
	panic("unreachable")
}

// GetOrError 获取指定ID的Lane实体，不存在时返回error
func (m *LaneManager) GetOrError(id int32) (entity.ILane, error) {
	if lane, ok := m.data[id]; ok {
		return lane, nil
	}
	return nil, fmt.Errorf("no lane %d", id)
}

// Lanes 获取所有车道
func (m *LaneManager) Lanes() map[int32]entity.ILane {
	return m.lanes
}

// ResetLights 将所有lane connector的信号灯恢复为未知状态
// 说明：信号灯状态是每步的瞬时输入，不跨步保存
func (m *LaneManager) ResetLights() {
	for _, l := range m.connectors {
		l.lightState = entity.LightStateUnknown
	}
}

// SetLights 批量写入信号灯状态
// 参数：lights-lane connector ID到信号灯状态的映射表
// 说明：未知车道ID仅记录告警，场景数据可能覆盖地图范围之外的路口
func (m *LaneManager) SetLights(lights map[int32]entity.LightState) {
	for id, state := range lights {
		l, ok := m.data[id]
		if !ok {
			log.Warnf("set light on unknown lane %d", id)
			continue
		}
		if !l.isConnector {
			log.Warnf("set light on lane %d which is not a connector", id)
			continue
		}
		l.lightState = state
	}
}

// 接口断言
var (
	_ entity.ILane        = (*Lane)(nil)
	_ entity.ILaneManager = (*LaneManager)(nil)
)

// FindNearestLane 搜索距指定位姿最近的车道
// 参数：state-自车位姿
// 返回：最近车道与对应的s坐标；横向偏差超过半车道宽加半车宽时返回nil
// 算法说明：遍历所有车道做折线投影，取横向距离最小者；
// 相邻车道共享折线端点，投影到公共端点时横向距离相等，
// 此时取车道ID较小者，保证结果与遍历顺序无关
func (m *LaneManager) FindNearestLane(state *entity.EgoState) (entity.ILane, float64) {
	var best *Lane
	bestS, bestLateral := 0.0, mathutil.INF
	for _, l := range m.data {
		s, lateral := l.ProjectToLane(state.XYZ)
		if lateral < bestLateral || (lateral == bestLateral && best != nil && l.id < best.id) {
			best, bestS, bestLateral = l, s, lateral
		}
	}
	if best == nil || bestLateral > best.width/2+state.Width/2 {
		return nil, 0
	}
	return best, bestS
}
