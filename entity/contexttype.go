package entity

import (
	"github.com/tsinghua-fib-lab/idmsim/clock"
)

// ITaskContext 任务上下文依赖倒置
// 功能：向各实体提供时钟与管理器的访问入口，避免全局变量
type ITaskContext interface {
	Clock() *clock.Clock
	LaneManager() ILaneManager
}
