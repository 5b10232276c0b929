package agent

import (
	"github.com/tsinghua-fib-lab/idmsim/entity"
)

// findLightObstacle 查询路径前方的信号灯虚拟障碍
// 功能：在lookahead范围内查找第一个红灯或黄灯lane connector的停止线
// 参数：p-路径，fromS-查询起点弧长，lookahead-查找范围（米）
// 返回：停止线的路径弧长位置与是否存在
// 算法说明：
// 1. 停止线为connector在路径上的起点偏移
// 2. 已过线（位置不在查询点前方）的connector不再注入障碍
// 3. 绿灯与未知相位不注入
// 说明：虚拟障碍为零速度零长度占据者，仅在本步前车解析中生效，不持久化
func findLightObstacle(p *LanePath, fromS, lookahead float64) (float64, bool) {
	lanes, offsets := p.Lanes(), p.Offsets()
	for i, l := range lanes {
		if !l.IsConnector() {
			continue
		}
		offset := offsets[i]
		if offset <= fromS {
			continue
		}
		if offset-fromS > lookahead {
			break
		}
		switch l.Light() {
		case entity.LightStateRed, entity.LightStateYellow:
			return offset, true
		}
	}
	return 0, false
}
