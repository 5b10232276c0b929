package agent

import (
	"fmt"

	"git.fiblab.net/general/common/v2/geometry"
	"github.com/tsinghua-fib-lab/idmsim/entity"
	"github.com/tsinghua-fib-lab/idmsim/utils/container"
)

// status agent生命周期状态
type status int8

const (
	statusActive status = iota // 在路网上，参与推进
	statusExited               // 到达路径终点，终态
)

// agentRuntime agent运动状态
// 功能：存储agent的可变状态，作为双缓冲的一侧
// 说明：runtime为计算工作区，snapshot为已发布状态；
// 并行计算阶段各agent只写自己的runtime、只读他人的snapshot
type agentRuntime struct {
	S      float64 // 路径弧长位置（米）
	V      float64 // 速度（米/秒）
	Status status  // 生命周期状态
}

// Agent 模拟车辆agent
// 功能：沿固定车道路径行驶的IDM跟车agent
type Agent struct {
	// 不可变属性

	id      int32
	length  float64 // 车长（米）
	width   float64 // 车宽（米）
	targetV float64 // 期望速度（米/秒）
	path    *LanePath

	// 双缓冲状态

	runtime  agentRuntime // 计算工作区，仅本agent的计算goroutine写入
	snapshot agentRuntime // 已发布状态，提交阶段由runtime整体覆盖

	node *entity.OccupantNode // 占据索引中的节点
}

// newAgent 创建agent
// 说明：初始状态直接发布，保证首步计算前snapshot有效
func newAgent(id int32, length, width, targetV, s, v float64, path *LanePath) *Agent {
	a := &Agent{
		id:      id,
		length:  length,
		width:   width,
		targetV: targetV,
		path:    path,
		runtime: agentRuntime{S: s, V: v, Status: statusActive},
	}
	a.snapshot = a.runtime
	a.node = &entity.OccupantNode{S: s, Value: a}
	return a
}

func (a *Agent) String() string {
	return fmt.Sprintf("Agent %d", a.id)
}

// 获取agent ID
func (a *Agent) ID() int32 {
	return a.id
}

// 获取agent速度（已发布状态）
func (a *Agent) V() float64 {
	return a.snapshot.V
}

// 获取agent车长
func (a *Agent) Length() float64 {
	return a.length
}

// 获取agent车宽
func (a *Agent) Width() float64 {
	return a.width
}

// 获取agent在路径上的弧长位置（已发布状态）
func (a *Agent) S() float64 {
	return a.snapshot.S
}

// 获取agent的期望速度
func (a *Agent) TargetV() float64 {
	return a.targetV
}

// 获取agent所在的路径
func (a *Agent) Path() *LanePath {
	return a.path
}

// 获取agent的位置坐标
func (a *Agent) XYZ() geometry.Point {
	return a.path.PositionAt(a.snapshot.S)
}

// 获取agent的航向角
func (a *Agent) Heading() float64 {
	return a.path.HeadingAt(a.snapshot.S)
}

// 判断agent是否仍在路网上
func (a *Agent) Active() bool {
	return a.snapshot.Status == statusActive
}

// commit 发布本步计算结果
// 说明：将runtime整体覆盖到snapshot并回写占据节点位置，
// 仅在提交阶段串行调用
func (a *Agent) commit() {
	a.snapshot = a.runtime
	a.node.S = a.runtime.S
}

// 接口断言
var (
	_ entity.IAgent       = (*Agent)(nil)
	_ container.IOccupant = (*Agent)(nil)
)
