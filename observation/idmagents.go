package observation

import (
	"fmt"
	"strconv"

	"git.fiblab.net/general/common/v2/geometry"
	"github.com/tsinghua-fib-lab/idmsim/entity"
	"github.com/tsinghua-fib-lab/idmsim/entity/agent"
	"github.com/tsinghua-fib-lab/idmsim/utils/config"
	"github.com/tsinghua-fib-lab/idmsim/utils/input"
)

// IDMAgents IDM跟车模拟观测源
// 功能：持有agent管理器，按场景数据逐步推进跟车模拟并输出检测结果
// 说明：构造函数只存配置与输入引用，Initialize构建agent管理器；
// Reset丢弃全部agent状态并重建
type IDMAgents struct {
	cfg         config.AgentConfig
	defaultDT   float64 // 场景无时间戳时的默认时间步长（秒）
	laneManager entity.ILaneManager
	in          *input.Input

	manager *agent.AgentManager
}

// NewIDMAgents 创建IDM模拟观测源
// 参数：cfg-agent配置，defaultDT-默认时间步长，laneManager-车道管理器，in-输入数据
func NewIDMAgents(
	cfg config.AgentConfig, defaultDT float64,
	laneManager entity.ILaneManager, in *input.Input,
) *IDMAgents {
	return &IDMAgents{
		cfg:         cfg,
		defaultDT:   defaultDT,
		laneManager: laneManager,
		in:          in,
	}
}

// ObservationType 获取观测输出类型
func (o *IDMAgents) ObservationType() Type {
	return TypeDetectionsTracks
}

// Initialize 构建agent管理器（两阶段初始化的第二阶段）
// 说明：已初始化时为空操作
func (o *IDMAgents) Initialize() error {
	if o.manager != nil && o.manager.Initialized() {
		return nil
	}
	m := agent.NewManager(o.cfg)
	if err := m.Init(o.laneManager, o.in.Agents); err != nil {
		return fmt.Errorf("initialize idm agents: %w", err)
	}
	o.manager = m
	log.Infof("idm agents observation initialized with %d active agents", m.NumActive())
	return nil
}

// Reset 丢弃全部agent状态并从初始输入重建
func (o *IDMAgents) Reset() error {
	o.manager = nil
	return o.Initialize()
}

// GetObservation 获取当前检测输出
// 说明：未初始化时视为编程错误直接panic
func (o *IDMAgents) GetObservation(iteration int32) *entity.DetectionsTracks {
	if o.manager == nil {
		log.Panicf("get observation at iteration %d before initialization", iteration)
	}
	return o.manager.GetActiveAgents(
		iteration, o.cfg.PlannedTrajectorySamples, o.cfg.PlannedTrajectorySampleInterval)
}

// UpdateObservation 推进一步
// 功能：由场景时间戳推导时间步长，重建本步信号灯状态与自车位姿，
// 驱动agent管理器推进
// 算法说明：
// 1. 时间步长=nextIteration与iteration的时间戳之差，缺失时间戳时用默认步长
// 2. 信号灯取nextIteration的记录，connector ID由字符串解析，非法ID或未知相位记录告警后跳过
// 3. 自车位姿取iteration的记录，缺失时本步无自车参与
func (o *IDMAgents) UpdateObservation(iteration, nextIteration int32) error {
	if o.manager == nil {
		return fmt.Errorf("idm agents observation is not initialized")
	}
	dt := o.timespan(iteration, nextIteration)
	lights := o.lightsAt(nextIteration)
	ego := o.egoAt(iteration)
	if err := o.manager.PropagateAgents(ego, dt, nextIteration, lights); err != nil {
		return fmt.Errorf("update observation %d->%d: %w", iteration, nextIteration, err)
	}
	return nil
}

// timespan 计算两个迭代步之间的时间步长
// 说明：场景缺失时间戳时回退到默认步长
func (o *IDMAgents) timespan(iteration, nextIteration int32) float64 {
	if dt, ok := o.in.Scenario.Timespan(iteration, nextIteration); ok {
		return dt
	}
	return o.defaultDT
}

// lightsAt 构建指定迭代步的信号灯状态表
func (o *IDMAgents) lightsAt(iteration int32) map[int32]entity.LightState {
	records := o.in.Scenario.LightsAt(iteration)
	if len(records) == 0 {
		return nil
	}
	lights := make(map[int32]entity.LightState, len(records))
	for _, r := range records {
		id, err := strconv.ParseInt(r.LaneConnectorID, 10, 32)
		if err != nil {
			log.Warnf("skip traffic light with bad lane connector id %q at iteration %d",
				r.LaneConnectorID, iteration)
			continue
		}
		state, ok := entity.ParseLightState(r.State)
		if !ok {
			log.Warnf("skip traffic light with unknown state %q at iteration %d", r.State, iteration)
			continue
		}
		lights[int32(id)] = state
	}
	return lights
}

// egoAt 构建指定迭代步的自车状态
func (o *IDMAgents) egoAt(iteration int32) *entity.EgoState {
	pose := o.in.Scenario.EgoAt(iteration)
	if pose == nil {
		return nil
	}
	return &entity.EgoState{
		XYZ:     geometry.Point{X: pose.X, Y: pose.Y, Z: pose.Z},
		Heading: pose.Heading,
		V:       pose.V,
		Length:  pose.Length,
		Width:   pose.Width,
	}
}

// 接口断言
var _ IObservation = (*IDMAgents)(nil)
