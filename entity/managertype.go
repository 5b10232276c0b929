package entity

import (
	"github.com/tsinghua-fib-lab/idmsim/utils/input"
)

// Manager依赖倒置

// entity/lane/manager.go的依赖倒置
type ILaneManager interface {
	Init(lanes []*input.Lane) error // 初始化，校验几何并建立拓扑

	// 输入Lane ID，查找Lane，如果不存在则panic
	Get(id int32) ILane
	// 输入Lane ID，查找Lane，如果不存在则返回error
	GetOrError(id int32) (ILane, error)

	Lanes() map[int32]ILane // 获取所有Lane

	ResetLights()                                     // 将所有lane connector的信号灯状态重置为UNKNOWN
	SetLights(states map[int32]LightState)            // 写入本步的信号灯状态
	FindNearestLane(state *EgoState) (ILane, float64) // 查找距离给定位姿最近的车道及其s坐标
}

// entity/agent/manager.go的依赖倒置
type IAgentManager interface {
	// 推进一步：解析前车、计算IDM加速度、积分运动、批量提交占据索引
	PropagateAgents(ego *EgoState, dt float64, iteration int32, lights map[int32]LightState) error
	// 产生当前活跃agent的检测输出，包含短时域预测轨迹
	GetActiveAgents(iteration int32, samples int, interval float64) *DetectionsTracks
	// 活跃agent数
	NumActive() int
}
