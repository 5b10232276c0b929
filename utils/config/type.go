package config

// InputPath 指定输入数据来源的配置（MongoDB、文件系统）
// 功能：定义数据输入路径的配置结构，支持两种数据源
// 说明：文件路径优先级高于MongoDB
type InputPath struct {
	DB   string `yaml:"db"`             // 数据库名
	Col  string `yaml:"col"`            // 集合名
	File string `yaml:"file,omitempty"` // 文件路径（优先级高于MongoDB）
}

// GetDb 获取数据库名
func (p InputPath) GetDb() string {
	return p.DB
}

// GetColl 获取集合名
func (p InputPath) GetColl() string {
	return p.Col
}

// Input 指定模拟器所有输入数据的配置项
// 功能：定义仿真系统的所有输入数据配置
// 说明：包含地图、初始agent集合与场景（迭代时间戳、信号灯记录、自车轨迹）
type Input struct {
	URI      string     `yaml:"uri"`                // MongoDB连接字符串
	Map      InputPath  `yaml:"map"`                // 地图
	Agents   InputPath  `yaml:"agents"`             // 初始agent集合
	Scenario *InputPath `yaml:"scenario,omitempty"` // 场景数据
}

// ControlStep 指定模拟器模拟时间范围和间隔的配置项
type ControlStep struct {
	Start    int32   `yaml:"start"`    // 开始步数
	Total    int32   `yaml:"total"`    // 总步数
	Interval float64 `yaml:"interval"` // 无场景时间戳时每步的默认时间间隔（秒）
}

// Control 模拟器控制配置
type Control struct {
	Step ControlStep `yaml:"step"`
}

// AgentConfig IDM模拟agent配置
// 功能：定义全局IDM参数与轨迹预测参数
// 说明：所有参数一次性设定，模拟期间不可变
type AgentConfig struct {
	TargetVelocity    float64 `yaml:"target_velocity"`     // 自由流期望速度（米/秒）
	MinGapToLead      float64 `yaml:"min_gap_to_lead"`     // 与前车的最小间距（米）
	HeadwayTime       float64 `yaml:"headway_time"`        // 期望车头时距（秒）
	AccelMax          float64 `yaml:"accel_max"`           // 最大加速度（米/秒²）
	DecelMax          float64 `yaml:"decel_max"`           // 最大减速度（米/秒²，正值）
	MinimumPathLength float64 `yaml:"minimum_path_length"` // 采样agent路径的最小长度（米）

	PlannedTrajectorySamples        int     `yaml:"planned_trajectory_samples"`         // 预测轨迹采样数
	PlannedTrajectorySampleInterval float64 `yaml:"planned_trajectory_sample_interval"` // 预测轨迹采样间隔（秒）

	LightLookahead float64 `yaml:"light_lookahead"` // 信号灯停止线注入的前向查找距离（米）
}

// Config YAML配置文件的根结构
type Config struct {
	Input   Input       `yaml:"input"`   // 输入
	Control Control     `yaml:"control"` // 模拟过程控制
	Agent   AgentConfig `yaml:"agent"`   // IDM agent配置
}
