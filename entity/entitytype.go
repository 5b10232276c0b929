package entity

import (
	"git.fiblab.net/general/common/v2/geometry"
	"github.com/tsinghua-fib-lab/idmsim/utils/container"
)

// LightState 信号灯相位
// 功能：描述lane connector在当前迭代步的信号灯状态
// 说明：由外部场景数据逐步重建，不跨步保存
type LightState int32

const (
	LightStateUnknown LightState = iota // 未知（视为不注入障碍物）
	LightStateGreen                     // 绿灯
	LightStateYellow                    // 黄灯（按红灯处理，注入停止线障碍物）
	LightStateRed                       // 红灯
)

// String 获取信号灯相位的字符串表示
func (s LightState) String() string {
	switch s {
	case LightStateGreen:
		return "GREEN"
	case LightStateYellow:
		return "YELLOW"
	case LightStateRed:
		return "RED"
	default:
		return "UNKNOWN"
	}
}

// ParseLightState 解析信号灯相位字符串
// 功能：将场景数据中的相位名转换为LightState
// 返回：相位枚举与是否识别成功
func ParseLightState(s string) (LightState, bool) {
	switch s {
	case "GREEN":
		return LightStateGreen, true
	case "YELLOW":
		return LightStateYellow, true
	case "RED":
		return LightStateRed, true
	case "UNKNOWN":
		return LightStateUnknown, true
	default:
		return LightStateUnknown, false
	}
}

// entity/agent/agent.go的依赖倒置
type IAgent interface {
	// print

	String() string

	// getter

	ID() int32           // 获取agent ID
	V() float64          // 获取agent速度
	Length() float64     // 获取agent车长
	Width() float64      // 获取agent车宽
	S() float64          // 获取agent在路径上的弧长位置
	XYZ() geometry.Point // 获取agent的位置坐标
	Heading() float64    // 获取agent的航向角（弧度）
	Active() bool        // 判断agent是否仍在路网上
}

// 占据记录链表节点类型
type OccupantNode = container.OccupantNode[container.IOccupant]

// 占据记录链表类型
type OccupantList = container.OccupantList[container.IOccupant]

// EgoState 自车状态
// 功能：每步传入的自车位姿与速度，仅作为模拟agent的潜在前车参与计算，
// 本模拟器不推进自车
type EgoState struct {
	XYZ     geometry.Point // 位置
	Heading float64        // 航向角（弧度）
	V       float64        // 速度（米/秒）
	Length  float64        // 车长（米）
	Width   float64        // 车宽（米）
}

// entity/lane/lane.go的依赖倒置
type ILane interface {
	// print

	String() string

	// getter

	ID() int32                    // 获取Lane ID
	Length() float64              // 获取Lane长度
	Width() float64               // 获取Lane宽度
	MaxV() float64                // 获取车道限速
	IsConnector() bool            // 检查Lane是否为lane connector（路口内车道）
	CenterLine() []geometry.Point // 获取Lane的中心线
	CenterLineLengths() []float64 // 获取Lane的中心线累积长度

	Predecessors() map[int32]ILane // 获取Lane的所有前驱Lane
	Successors() map[int32]ILane   // 获取Lane的所有后继Lane
	UniqueSuccessor() ILane        // 查询唯一后继，不唯一或不存在时返回nil

	GetPositionByS(s float64) geometry.Point               // 将当前车道s坐标转换为xy坐标
	GetHeadingByS(s float64) float64                       // 根据本车道s坐标计算切向角度
	ProjectToLane(pos geometry.Point) (s, lateral float64) // 将xy坐标投影到车道上，返回s坐标与横向距离

	// 信号灯（每步由Agent管理器写入，不跨步保存）

	Light() LightState         // 获取信号灯状态
	SetLight(state LightState) // 设置信号灯状态
}
