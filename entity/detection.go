package entity

import (
	"git.fiblab.net/general/common/v2/geometry"
)

// TrajectorySample 预测轨迹采样点
// 功能：agent未来某一时刻的位姿与速度，由当前IDM加速度前向积分得到
type TrajectorySample struct {
	TimeOffset float64        // 相对当前时刻的时间偏移（秒）
	XYZ        geometry.Point // 位置
	Heading    float64        // 航向角（弧度）
	V          float64        // 速度（米/秒）
}

// AgentTrack 单个agent的检测记录
// 功能：每步输出的agent位姿、速度、外形与短时域预测轨迹
type AgentTrack struct {
	AgentID    int32              // agent ID
	XYZ        geometry.Point     // 位置
	Heading    float64            // 航向角（弧度）
	V          float64            // 速度（米/秒）
	BoxLength  float64            // 车长（米）
	BoxWidth   float64            // 车宽（米）
	Trajectory []TrajectorySample // 预测轨迹，固定采样数与采样间隔
}

// DetectionsTracks 一步的检测输出
// 功能：按agent ID升序排列的检测记录集合
type DetectionsTracks struct {
	Iteration int32        // 产生本输出的迭代步
	Tracks    []AgentTrack // 检测记录
}
