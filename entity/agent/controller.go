package agent

import (
	"math"

	"git.fiblab.net/general/common/v2/mathutil"
	"github.com/tsinghua-fib-lab/idmsim/utils/config"
)

// idmTheta IDM模型中自由流项的指数
const idmTheta = 4

// gapEpsilon 车距下限，避免除零
const gapEpsilon = 1e-2

// controller IDM纵向控制器
// 功能：根据本车与前车状态计算纵向加速度
// 说明：纯函数集合，无副作用；输出不截断，由积分环节保证速度非负
type controller struct {
	minGap  float64 // 最小车距（米）
	headway float64 // 安全车头时距（秒）
	maxA    float64 // 最大加速度（米/秒²）
	brakeA  float64 // 最大舒适减速度（米/秒²，正值）
}

func newController(c config.AgentConfig) controller {
	return controller{
		minGap:  c.MinGapToLead,
		headway: c.HeadwayTime,
		maxA:    c.AccelMax,
		brakeA:  c.DecelMax,
	}
}

// followImpl 跟车模型核心实现
// 功能：实现智能驾驶模型(IDM)的跟车逻辑
// 参数：selfV-本车速度，targetV-期望速度，aheadV-前车速度，distance-车距，minGap-最小车距，headway-安全车头时距
// 返回：计算得到的加速度（米/秒²）
// 算法说明：
// 1. 检查是否发生碰撞（距离小于等于0），此时紧急制动
// 2. 使用IDM模型计算期望车距：s_star = minGap + max(0, v*headway + v*(v-v_ahead)/(2*sqrt(a*b)))
// 3. 计算加速度：a = maxA * (1 - (v/targetV)^4 - (s_star/distance)^2)
func (c *controller) followImpl(
	selfV, targetV, aheadV, distance, minGap, headway float64,
) float64 {
	if distance <= 0 {
		// 车辆已经发生碰撞，紧急制动
		return -mathutil.INF
	}
	// https://en.wikipedia.org/wiki/Intelligent_driver_model
	sStar := minGap + math.Max(
		0,
		selfV*headway+selfV*(selfV-aheadV)/2/math.Sqrt(c.maxA*c.brakeA),
	)
	return c.maxA * (1 - math.Pow(selfV/targetV, idmTheta) - math.Pow(sStar/distance, 2))
}

// follow 跟车模型
// 功能：使用控制器默认参数调用跟车模型
func (c *controller) follow(selfV, targetV, aheadV, distance float64) float64 {
	return c.followImpl(selfV, targetV, aheadV, distance, c.minGap, c.headway)
}

// freeRoad 自由流模型
// 功能：无前车时的加速度，省略交互项
func (c *controller) freeRoad(selfV, targetV float64) float64 {
	return c.maxA * (1 - math.Pow(selfV/targetV, idmTheta))
}

// computeVAndDistance 运动积分
// 功能：根据当前速度与加速度计算一步后的速度与行驶距离
// 返回：新速度与行驶距离
// 算法说明：速度降为负时按刹车到停止处理，行驶距离为v²/(2|a|)，
// 保证速度非负且行驶距离非负
func computeVAndDistance(v, a, dt float64) (float64, float64) {
	dv := a * dt
	if v+dv < 0 {
		// 刹车到停止
		return 0, v * v / 2 / -a
	}
	return v + dv, (v + dv/2) * dt
}
