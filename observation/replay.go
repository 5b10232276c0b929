package observation

import (
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/idmsim/entity"
)

// TracksReplay 轨迹回放观测源
// 功能：逐步回放预先录制的检测输出，不做任何模拟
// 说明：与IDM模拟实现同一观测源接口，用于以真实记录替代模拟agent
type TracksReplay struct {
	records map[int32]*entity.DetectionsTracks // 迭代序号->检测输出
}

// NewTracksReplay 创建轨迹回放观测源
// 参数：records-按迭代步录制的检测输出
func NewTracksReplay(records []*entity.DetectionsTracks) *TracksReplay {
	return &TracksReplay{
		records: lo.SliceToMap(records, func(r *entity.DetectionsTracks) (int32, *entity.DetectionsTracks) {
			return r.Iteration, r
		}),
	}
}

// ObservationType 获取观测输出类型
func (o *TracksReplay) ObservationType() Type {
	return TypeDetectionsTracks
}

// Initialize 回放无需构建实体，空操作
func (o *TracksReplay) Initialize() error {
	return nil
}

// Reset 回放无状态，空操作
func (o *TracksReplay) Reset() error {
	return nil
}

// GetObservation 获取指定迭代步的录制输出
// 说明：无记录的迭代步返回空检测输出
func (o *TracksReplay) GetObservation(iteration int32) *entity.DetectionsTracks {
	if r, ok := o.records[iteration]; ok {
		return r
	}
	log.Debugf("no recorded tracks at iteration %d", iteration)
	return &entity.DetectionsTracks{Iteration: iteration}
}

// UpdateObservation 回放不推进任何状态，空操作
func (o *TracksReplay) UpdateObservation(iteration, nextIteration int32) error {
	return nil
}

// 接口断言
var _ IObservation = (*TracksReplay)(nil)
