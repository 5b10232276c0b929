package lane

import (
	"fmt"
	"math"
	"sort"

	"git.fiblab.net/general/common/v2/geometry"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/idmsim/entity"
	"github.com/tsinghua-fib-lab/idmsim/utils/input"
)

// Lane 车道实体
// 功能：表示地图中的车道或lane connector，提供中心线弧长参数化与拓扑关系
// 说明：几何与拓扑不可变；信号灯状态每步由Agent管理器写入，不跨步保存
type Lane struct {
	id int32

	// 初始化临时变量

	initPredecessors []int32
	initSuccessors   []int32

	isConnector     bool                         // 是否为lane connector（路口内车道）
	maxV            float64                      // 车道限速
	width           float64                      // 车道宽度
	predecessors    map[int32]entity.ILane       // 前驱车道映射表
	successors      map[int32]entity.ILane       // 后继车道映射表
	uniqueSuccessor entity.ILane                 // 唯一后继
	lineLengths     []float64                    // 中心线折线点对应的累积长度列表
	length          float64                      // 以中心线的长度为车道长度
	lineDirections  []geometry.PolylineDirection // 中心线折线段每一段的方向（atan2）
	line            []geometry.Point             // 转成Point的中心线折线

	lightState entity.LightState // 车道信号灯状态（仅connector有意义）
}

// newLane 创建并初始化一个新的Lane实例
// 功能：根据基础数据创建Lane对象，初始化几何信息
// 参数：base-基础Lane数据
// 返回：初始化完成的Lane实例，几何非法时返回entity.ErrMalformedPath
// 算法说明：
// 1. 中心线至少需要2个点
// 2. 计算累积长度列表并校验严格单调递增（退化折线视为数据错误）
// 3. 计算每段的切向角度
func newLane(base *input.Lane) (*Lane, error) {
	l := &Lane{
		id:               base.ID,
		initPredecessors: base.Predecessors,
		initSuccessors:   base.Successors,
		isConnector:      base.IsConnector,
		maxV:             base.MaxSpeed,
		width:            base.Width,
		predecessors:     make(map[int32]entity.ILane),
		successors:       make(map[int32]entity.ILane),
		lightState:       entity.LightStateUnknown,
	}
	if len(base.CenterLine) < 2 {
		return nil, fmt.Errorf("%w: lane %d center line needs at least 2 points, got %d",
			entity.ErrMalformedPath, base.ID, len(base.CenterLine))
	}
	l.line = lo.Map(base.CenterLine, func(p input.Point, _ int) geometry.Point {
		return geometry.Point{X: p.X, Y: p.Y, Z: p.Z}
	})
	l.lineLengths = geometry.GetPolylineLengths2D(l.line)
	for i := 1; i < len(l.lineLengths); i++ {
		if l.lineLengths[i] <= l.lineLengths[i-1] {
			return nil, fmt.Errorf("%w: lane %d center line lengths are not strictly increasing at point %d",
				entity.ErrMalformedPath, base.ID, i)
		}
	}
	l.length = l.lineLengths[len(l.lineLengths)-1]
	l.lineDirections = geometry.GetPolylineDirections(l.line)
	return l, nil
}

// initWithManager 在管理器初始化后建立Lane的连接关系
// 功能：根据初始化数据建立前驱、后继连接关系
// 参数：laneManager-车道管理器
// 说明：建立车道间的拓扑关系，为前车查询与路径延伸提供基础
func (l *Lane) initWithManager(laneManager entity.ILaneManager) error {
	for _, id := range l.initPredecessors {
		lane, err := laneManager.GetOrError(id)
		if err != nil {
			return fmt.Errorf("lane %d: unknown predecessor %d", l.id, id)
		}
		l.predecessors[id] = lane
	}
	for _, id := range l.initSuccessors {
		lane, err := laneManager.GetOrError(id)
		if err != nil {
			return fmt.Errorf("lane %d: unknown successor %d", l.id, id)
		}
		l.successors[id] = lane
	}
	if len(l.successors) == 1 {
		for _, lane := range l.successors {
			l.uniqueSuccessor = lane
		}
	}
	l.initPredecessors = nil
	l.initSuccessors = nil
	return nil
}

// 静态数据

func (l *Lane) String() string {
	return fmt.Sprintf("Lane %d", l.id)
}

// 获取Lane ID
func (l *Lane) ID() int32 {
	if l == nil {
		return -1
	}
	return l.id
}

// 获取Lane长度
func (l *Lane) Length() float64 {
	return l.length
}

// 获取Lane宽度
func (l *Lane) Width() float64 {
	return l.width
}

// 获取车道限速
func (l *Lane) MaxV() float64 {
	return l.maxV
}

// 检查Lane是否为lane connector（路口内车道）
func (l *Lane) IsConnector() bool {
	return l.isConnector
}

// 获取Lane的中心线
func (l *Lane) CenterLine() []geometry.Point {
	return l.line
}

// 获取Lane的中心线累积长度
func (l *Lane) CenterLineLengths() []float64 {
	return l.lineLengths
}

// 获取Lane的所有前驱Lane
func (l *Lane) Predecessors() map[int32]entity.ILane {
	return l.predecessors
}

// 获取Lane的所有后继Lane
func (l *Lane) Successors() map[int32]entity.ILane {
	return l.successors
}

// 查询唯一后继，不唯一或不存在时返回nil
func (l *Lane) UniqueSuccessor() entity.ILane {
	return l.uniqueSuccessor
}

// 根据本车道s坐标计算切向角度
func (l *Lane) GetHeadingByS(s float64) float64 {
	if s < l.lineLengths[0] || s > l.lineLengths[len(l.lineLengths)-1] {
		log.Debugf("get heading with s %v out of range{%v,%v}",
			s, l.lineLengths[0], l.lineLengths[len(l.lineLengths)-1])
		s = lo.Clamp(s, l.lineLengths[0], l.lineLengths[len(l.lineLengths)-1])
	}
	if i := sort.SearchFloat64s(l.lineLengths, s); i == 0 {
		return l.lineDirections[0].Direction
	} else {
		return l.lineDirections[i-1].Direction
	}
}

// 将当前车道s坐标转换为xy(z)坐标
func (l *Lane) GetPositionByS(s float64) (pos geometry.Point) {
	if s < l.lineLengths[0] || s > l.lineLengths[len(l.lineLengths)-1] {
		log.Debugf("get position with s %v out of range{%v,%v}",
			s, l.lineLengths[0], l.lineLengths[len(l.lineLengths)-1])
		s = lo.Clamp(s, l.lineLengths[0], l.lineLengths[len(l.lineLengths)-1])
	}
	if i := sort.SearchFloat64s(l.lineLengths, s); i == 0 {
		pos = l.line[0]
	} else {
		sHigh, sLow := l.lineLengths[i], l.lineLengths[i-1]
		k := (s - sLow) / (sHigh - sLow)
		pos = geometry.Blend(l.line[i-1], l.line[i], k)
	}
	return
}

// 将xyz坐标投影到车道折线上
// 返回：对应的s坐标与到中心线的横向距离
func (l *Lane) ProjectToLane(pos geometry.Point) (float64, float64) {
	s := geometry.GetClosestPolylineSToPoint2D(l.line, l.lineLengths, pos)
	s = lo.Clamp(s, 0, l.length)
	proj := l.GetPositionByS(s)
	lateral := math.Hypot(pos.X-proj.X, pos.Y-proj.Y)
	return s, lateral
}

// 信号灯

// 获取信号灯状态
func (l *Lane) Light() entity.LightState {
	return l.lightState
}

// 设置信号灯状态
func (l *Lane) SetLight(state entity.LightState) {
	l.lightState = state
}
