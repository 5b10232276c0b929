package config

// 未配置时采用的默认值，取自原始标定
const (
	DefaultTargetVelocity    = 10.0 // 米/秒
	DefaultMinGapToLead      = 1.0  // 米
	DefaultHeadwayTime       = 1.5  // 秒
	DefaultAccelMax          = 1.0  // 米/秒²
	DefaultDecelMax          = 2.0  // 米/秒²（正值）
	DefaultMinimumPathLength = 20.0 // 米

	DefaultPlannedTrajectorySamples        = 6
	DefaultPlannedTrajectorySampleInterval = 0.5 // 秒

	DefaultLightLookahead = 100.0 // 米
)

// RuntimeConfig 运行时配置
// 功能：存储仿真运行时的配置信息，补全未设置的默认值
type RuntimeConfig struct {
	All   Config      // 全部配置
	C     Control     // 全局控制配置
	Agent AgentConfig // agent配置（已补全默认值）
}

// NewRuntimeConfig 根据配置初始化运行时配置
// 功能：创建运行时配置对象，补全agent配置的默认值
// 参数：config-原始配置对象
// 返回：初始化的运行时配置指针
func NewRuntimeConfig(config Config) *RuntimeConfig {
	rc := &RuntimeConfig{}

	rc.All = config
	rc.C = config.Control
	rc.Agent = config.Agent
	if rc.Agent.TargetVelocity <= 0 {
		rc.Agent.TargetVelocity = DefaultTargetVelocity
	}
	if rc.Agent.MinGapToLead <= 0 {
		rc.Agent.MinGapToLead = DefaultMinGapToLead
	}
	if rc.Agent.HeadwayTime <= 0 {
		rc.Agent.HeadwayTime = DefaultHeadwayTime
	}
	if rc.Agent.AccelMax <= 0 {
		rc.Agent.AccelMax = DefaultAccelMax
	}
	if rc.Agent.DecelMax <= 0 {
		rc.Agent.DecelMax = DefaultDecelMax
	}
	if rc.Agent.MinimumPathLength <= 0 {
		rc.Agent.MinimumPathLength = DefaultMinimumPathLength
	}
	if rc.Agent.PlannedTrajectorySamples <= 0 {
		rc.Agent.PlannedTrajectorySamples = DefaultPlannedTrajectorySamples
	}
	if rc.Agent.PlannedTrajectorySampleInterval <= 0 {
		rc.Agent.PlannedTrajectorySampleInterval = DefaultPlannedTrajectorySampleInterval
	}
	if rc.Agent.LightLookahead <= 0 {
		rc.Agent.LightLookahead = DefaultLightLookahead
	}

	return rc
}
