package input

// Point 输入坐标点
type Point struct {
	X float64 `yaml:"x" bson:"x"`
	Y float64 `yaml:"y" bson:"y"`
	Z float64 `yaml:"z,omitempty" bson:"z,omitempty"`
}

// Lane 车道输入数据
// 功能：描述一条车道或lane connector的几何与拓扑
type Lane struct {
	ID           int32   `yaml:"id" bson:"id"`                     // 车道ID
	IsConnector  bool    `yaml:"is_connector" bson:"is_connector"` // 是否为lane connector（路口内车道）
	Width        float64 `yaml:"width" bson:"width"`               // 车道宽度（米）
	MaxSpeed     float64 `yaml:"max_speed" bson:"max_speed"`       // 车道限速（米/秒）
	CenterLine   []Point `yaml:"center_line" bson:"center_line"`   // 中心线折线
	Predecessors []int32 `yaml:"predecessors" bson:"predecessors"` // 前驱车道ID列表
	Successors   []int32 `yaml:"successors" bson:"successors"`     // 后继车道ID列表
}

// Agent 初始agent输入数据
// 功能：地图采样器产出的初始agent记录，含起始车道与位置
type Agent struct {
	ID      int32   `yaml:"id" bson:"id"`                                 // agent ID
	LaneID  int32   `yaml:"lane_id" bson:"lane_id"`                       // 起始车道ID
	S       float64 `yaml:"s" bson:"s"`                                   // 起始弧长位置（米）
	V       float64 `yaml:"v" bson:"v"`                                   // 起始速度（米/秒）
	Length  float64 `yaml:"length" bson:"length"`                         // 车长（米）
	Width   float64 `yaml:"width" bson:"width"`                           // 车宽（米）
	TargetV float64 `yaml:"target_v,omitempty" bson:"target_v,omitempty"` // 期望速度（米/秒），0表示使用全局配置
}

// Iteration 场景迭代步
type Iteration struct {
	Index int32   `yaml:"index" bson:"index"`   // 迭代序号
	TimeS float64 `yaml:"time_s" bson:"time_s"` // 时间戳（秒）
}

// TrafficLight 场景信号灯记录
// 功能：某一迭代步下lane connector的信号灯相位
// 说明：lane connector ID以字符串形式给出，由observation层解析
type TrafficLight struct {
	Iteration       int32  `yaml:"iteration" bson:"iteration"`                 // 迭代序号
	LaneConnectorID string `yaml:"lane_connector_id" bson:"lane_connector_id"` // lane connector ID
	State           string `yaml:"state" bson:"state"`                         // 相位（RED/YELLOW/GREEN/UNKNOWN）
}

// EgoPose 场景自车记录
type EgoPose struct {
	Iteration int32   `yaml:"iteration" bson:"iteration"` // 迭代序号
	X         float64 `yaml:"x" bson:"x"`
	Y         float64 `yaml:"y" bson:"y"`
	Z         float64 `yaml:"z,omitempty" bson:"z,omitempty"`
	Heading   float64 `yaml:"heading" bson:"heading"` // 航向角（弧度）
	V         float64 `yaml:"v" bson:"v"`             // 速度（米/秒）
	Length    float64 `yaml:"length" bson:"length"`   // 车长（米）
	Width     float64 `yaml:"width" bson:"width"`     // 车宽（米）
}

// Scenario 场景数据
// 功能：驱动模拟的外部场景：迭代时间戳、逐步信号灯记录与自车轨迹
type Scenario struct {
	Iterations    []*Iteration    `yaml:"iterations" bson:"iterations"`
	TrafficLights []*TrafficLight `yaml:"traffic_lights" bson:"traffic_lights"`
	Ego           []*EgoPose      `yaml:"ego" bson:"ego"`
}

// LightsAt 获取指定迭代步的信号灯记录
func (s *Scenario) LightsAt(iteration int32) []*TrafficLight {
	if s == nil {
		return nil
	}
	records := make([]*TrafficLight, 0)
	for _, tl := range s.TrafficLights {
		if tl.Iteration == iteration {
			records = append(records, tl)
		}
	}
	return records
}

// Timespan 计算两个迭代步之间的时间跨度
// 返回：时间跨度（秒）与两个迭代步的时间戳是否都存在
func (s *Scenario) Timespan(iteration, nextIteration int32) (float64, bool) {
	if s == nil {
		return 0, false
	}
	var t1, t2 *float64
	for _, it := range s.Iterations {
		if it.Index == iteration {
			t1 = &it.TimeS
		}
		if it.Index == nextIteration {
			t2 = &it.TimeS
		}
	}
	if t1 == nil || t2 == nil {
		return 0, false
	}
	return *t2 - *t1, true
}

// EgoAt 获取指定迭代步的自车记录，不存在时返回nil
func (s *Scenario) EgoAt(iteration int32) *EgoPose {
	if s == nil {
		return nil
	}
	for _, e := range s.Ego {
		if e.Iteration == iteration {
			return e
		}
	}
	return nil
}

// Map 地图输入数据
type Map struct {
	Lanes []*Lane `yaml:"lanes" bson:"lanes"`
}
