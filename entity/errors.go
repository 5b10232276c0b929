package entity

import "errors"

// 前置条件错误，调用方可用errors.Is区分
var (
	// ErrInvalidTimestep 时间步长非法（负数）
	ErrInvalidTimestep = errors.New("invalid timestep")
	// ErrUnknownAgent 查询了不存在的agent ID
	ErrUnknownAgent = errors.New("unknown agent")
	// ErrMalformedPath 车道或路径几何非法（中心线退化、路径不连通或弧长非单调）
	ErrMalformedPath = errors.New("malformed path")
)
