package clock

import (
	"fmt"

	"github.com/tsinghua-fib-lab/idmsim/utils/config"
)

// Clock 仿真时钟管理器
// 功能：管理仿真系统的时间推进
// 说明：维护当前仿真时间与步数；步间实际时间差由场景迭代时间戳决定，
// DT仅作为无场景时间戳时的默认步长
type Clock struct {
	DT         float64 // 默认模拟步时间间隔（秒）
	START_STEP int32   // 起始步
	END_STEP   int32   // 结束步，模拟区间[START, END)

	T            float64 // 当前时间（秒）
	InternalStep int32   // 当前步数
}

// New 根据配置创建新的时钟实例
// 参数：stepConfig-控制步配置
// 返回：初始化完成的时钟实例
func New(stepConfig config.ControlStep) *Clock {
	c := &Clock{
		DT:         stepConfig.Interval,
		START_STEP: stepConfig.Start,
		END_STEP:   stepConfig.Start + stepConfig.Total,
	}
	c.Init()
	return c
}

// Init 初始化时钟状态到起始步
func (c *Clock) Init() {
	c.InternalStep = c.START_STEP
	c.T = float64(c.START_STEP) * c.DT
}

// Tick 推进一步
// 参数：dt-本步实际时间差（秒）
func (c *Clock) Tick(dt float64) {
	c.InternalStep++
	c.T += dt
}

// String 获取时钟的字符串表示
func (c *Clock) String() string {
	return fmt.Sprintf("Clock{Step:%d, T:%.2f}", c.InternalStep, c.T)
}

// GetHourMinuteSecond 将当前时间转换为时分秒，用于心跳日志
func (c *Clock) GetHourMinuteSecond() (int32, int32, float64) {
	t := c.T
	hour := int32(t / 3600)
	t -= float64(hour) * 3600
	minute := int32(t / 60)
	t -= float64(minute) * 60
	return hour, minute, t
}
