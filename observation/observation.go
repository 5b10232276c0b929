// 观测源：向外部调用方提供每步的agent检测输出
// 说明：IDM模拟与轨迹回放是同一接口的两种实现，调用方按配置选择
package observation

import (
	"github.com/tsinghua-fib-lab/idmsim/entity"
)

// Type 观测输出类型
type Type string

// TypeDetectionsTracks 检测框输出
const TypeDetectionsTracks Type = "detections_tracks"

// IObservation 观测源接口
// 功能：定义观测源的能力集合：初始化、重置、类型查询、取观测与推进
// 说明：两阶段初始化，构造函数只存配置，Initialize完成实体构建；
// UpdateObservation将观测源从iteration推进到nextIteration
type IObservation interface {
	// ObservationType 获取观测输出类型
	ObservationType() Type
	// Initialize 完成初始化（两阶段初始化的第二阶段），可重复调用
	Initialize() error
	// Reset 重置到初始状态
	Reset() error
	// GetObservation 获取当前观测输出
	GetObservation(iteration int32) *entity.DetectionsTracks
	// UpdateObservation 将观测源从iteration推进到nextIteration
	UpdateObservation(iteration, nextIteration int32) error
}
