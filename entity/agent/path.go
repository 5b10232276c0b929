package agent

import (
	"fmt"
	"sort"

	"git.fiblab.net/general/common/v2/geometry"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/idmsim/entity"
)

// LanePath 车道路径
// 功能：有序不可变的车道序列及其累积弧长偏移，作为agent行驶的固定轨道
// 说明：同一起始车道的所有agent共享同一路径对象；路径间通过downstream
// 形成单跳下游连接，供前车查询跨路径回退使用
type LanePath struct {
	id      int32          // 路径ID（以起始车道ID标识）
	lanes   []entity.ILane // 车道序列
	offsets []float64      // 每条车道起点在路径上的累积弧长偏移
	length  float64        // 路径总长度

	downstream *LanePath // 单跳下游路径，不存在时为nil
}

// NewLanePath 创建车道路径
// 参数：lanes-有序车道序列
// 返回：路径对象，路径为空或相邻车道不连通时返回entity.ErrMalformedPath
// 算法说明：累积各车道长度得到偏移表，偏移表天然严格单调递增
// （车道几何已在车道管理器初始化时校验）
func NewLanePath(lanes []entity.ILane) (*LanePath, error) {
	if len(lanes) == 0 {
		return nil, fmt.Errorf("%w: empty lane sequence", entity.ErrMalformedPath)
	}
	p := &LanePath{
		id:      lanes[0].ID(),
		lanes:   lanes,
		offsets: make([]float64, len(lanes)),
	}
	for i, l := range lanes {
		if i > 0 {
			if _, ok := lanes[i-1].Successors()[l.ID()]; !ok {
				return nil, fmt.Errorf("%w: lane %d is not a successor of lane %d",
					entity.ErrMalformedPath, l.ID(), lanes[i-1].ID())
			}
		}
		p.offsets[i] = p.length
		p.length += l.Length()
	}
	return p, nil
}

func (p *LanePath) String() string {
	return fmt.Sprintf("LanePath %d (%d lanes, %.1fm)", p.id, len(p.lanes), p.length)
}

// 获取路径ID
func (p *LanePath) ID() int32 {
	return p.id
}

// 获取路径总长度
func (p *LanePath) Length() float64 {
	return p.length
}

// 获取路径的车道序列
func (p *LanePath) Lanes() []entity.ILane {
	return p.lanes
}

// 获取各车道起点在路径上的累积弧长偏移
func (p *LanePath) Offsets() []float64 {
	return p.offsets
}

// 获取单跳下游路径，不存在时返回nil
func (p *LanePath) Downstream() *LanePath {
	return p.downstream
}

// LaneAt 将路径弧长坐标转换为车道与车道内s坐标
// 说明：超界时截断到路径两端
func (p *LanePath) LaneAt(s float64) (entity.ILane, float64) {
	s = lo.Clamp(s, 0, p.length)
	// 找到最后一个offset<=s的车道
	i := sort.SearchFloat64s(p.offsets, s)
	if i == len(p.offsets) || p.offsets[i] > s {
		i--
	}
	return p.lanes[i], s - p.offsets[i]
}

// PositionAt 将路径弧长坐标转换为xy(z)坐标
func (p *LanePath) PositionAt(s float64) geometry.Point {
	l, laneS := p.LaneAt(s)
	return l.GetPositionByS(laneS)
}

// HeadingAt 将路径弧长坐标转换为航向角
func (p *LanePath) HeadingAt(s float64) float64 {
	l, laneS := p.LaneAt(s)
	return l.GetHeadingByS(laneS)
}

// OffsetOfLane 查询车道在路径上的起点偏移
// 返回：偏移与该车道是否在路径中
func (p *LanePath) OffsetOfLane(laneID int32) (float64, bool) {
	for i, l := range p.lanes {
		if l.ID() == laneID {
			return p.offsets[i], true
		}
	}
	return 0, false
}
