package task

import (
	"flag"
	"fmt"

	"github.com/tsinghua-fib-lab/idmsim/clock"
	"github.com/tsinghua-fib-lab/idmsim/entity"
	"github.com/tsinghua-fib-lab/idmsim/entity/lane"
	"github.com/tsinghua-fib-lab/idmsim/observation"
	"github.com/tsinghua-fib-lab/idmsim/utils/config"
	"github.com/tsinghua-fib-lab/idmsim/utils/input"
)

var (
	heartBeatInterval = flag.Int("log.heartbeat_interval", 100, "心跳日志间隔步数")
)

// Context 仿真任务上下文
// 功能：包含一次仿真任务的所有变量和状态，避免全局变量
// 说明：持有时钟、车道管理器与观测源；构造时加载输入并构建车道，
// 观测源的agent构建延迟到Init（两阶段初始化）
type Context struct {
	// 时钟
	clock *clock.Clock
	// Lane管理器
	laneManager entity.ILaneManager
	// 观测源
	obs observation.IObservation
	// 运行时配置
	runtimeConfig *config.RuntimeConfig
	// 用于初始化的输入
	initRes *input.Input
}

// NewContext 创建新的仿真任务上下文
// 功能：加载输入数据并构建除agent外的所有组件
// 参数：c-配置对象
// 返回：上下文实例
// 算法说明：
// 1. 补全运行时配置默认值并创建时钟
// 2. 加载输入数据（文件或MongoDB）
// 3. 构建车道管理器（几何校验与拓扑连接）
// 4. 创建IDM观测源（只存配置，不构建agent）
func NewContext(c config.Config) *Context {
	rc := config.NewRuntimeConfig(c)
	ctx := &Context{
		runtimeConfig: rc,
		clock:         clock.New(rc.C.Step),
	}

	ctx.initRes = input.Init(c)

	laneManager := lane.NewManager()
	if err := laneManager.Init(ctx.initRes.Map.Lanes); err != nil {
		log.Panicf("failed to init lane manager: %v", err)
	}
	ctx.laneManager = laneManager

	ctx.obs = observation.NewIDMAgents(rc.Agent, rc.C.Step.Interval, laneManager, ctx.initRes)
	return ctx
}

// Clock 获取时钟
func (ctx *Context) Clock() *clock.Clock {
	return ctx.clock
}

// LaneManager 获取车道管理器
func (ctx *Context) LaneManager() entity.ILaneManager {
	return ctx.laneManager
}

// Observation 获取观测源
func (ctx *Context) Observation() observation.IObservation {
	return ctx.obs
}

// Init 初始化
// 功能：完成观测源初始化（两阶段初始化的第二阶段）
func (ctx *Context) Init() error {
	if err := ctx.obs.Initialize(); err != nil {
		return fmt.Errorf("init task context: %w", err)
	}
	return nil
}

// step 推进一步
// 功能：将观测源从当前迭代步推进到下一迭代步并更新时钟
// 说明：步间实际时间差由场景时间戳决定，心跳日志定期输出进度
func (ctx *Context) step() error {
	iteration := ctx.clock.InternalStep
	if err := ctx.obs.UpdateObservation(iteration, iteration+1); err != nil {
		return err
	}
	// 优先使用场景时间戳，缺失时用配置的默认步长
	dt, ok := ctx.initRes.Scenario.Timespan(iteration, iteration+1)
	if !ok {
		dt = ctx.clock.DT
	}
	ctx.clock.Tick(dt)

	if ctx.clock.InternalStep%int32(*heartBeatInterval) == 0 {
		hour, minute, second := ctx.clock.GetHourMinuteSecond()
		res := ctx.obs.GetObservation(ctx.clock.InternalStep)
		log.Infof(
			"STEP: %d(%d:%d:%.2f) agents: %d",
			ctx.clock.InternalStep,
			hour, minute, second,
			len(res.Tracks),
		)
	}
	return nil
}

// 接口断言
var _ entity.ITaskContext = (*Context)(nil)

// Run 运行
// 功能：初始化后按配置的步数区间推进模拟，一步失败立即终止
func (ctx *Context) Run() error {
	if err := ctx.Init(); err != nil {
		return err
	}
	log.Infof("run simulation: step [%d, %d)", ctx.clock.START_STEP, ctx.clock.END_STEP)
	for ctx.clock.InternalStep < ctx.clock.END_STEP {
		if err := ctx.step(); err != nil {
			return fmt.Errorf("run failed at step %d: %w", ctx.clock.InternalStep, err)
		}
	}
	log.Info("simulation finished")
	return nil
}
