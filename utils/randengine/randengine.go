// 随机数引擎，包装了golang.org/x/exp/rand
// 说明：agent构建时的属性扰动以agent ID为种子，保证整个模拟过程可复现
package randengine

import (
	"flag"
	"sync"

	"golang.org/x/exp/rand"
)

var (
	seedOffset = flag.Uint64("rand.seed_offset", 0, "seed offset") // 种子偏移量，用于调整随机数序列
)

// Engine 随机数引擎
// 功能：提供确定性的随机数生成功能，支持线程安全操作
type Engine struct {
	*rand.Rand
	mtx sync.Mutex
}

// New 创建随机数引擎
// 参数：seed-随机数种子（叠加全局种子偏移量）
// 返回：随机数引擎指针
func New(seed uint64) *Engine {
	return &Engine{Rand: rand.New(rand.NewSource(seed + *seedOffset))}
}

// SafeFloat64 生成[0,1)均匀分布随机数（线程安全）
func (e *Engine) SafeFloat64() float64 {
	e.mtx.Lock()
	defer e.mtx.Unlock()
	return e.Float64()
}

// SafeNormFloat64 生成标准正态分布随机数（线程安全）
func (e *Engine) SafeNormFloat64() float64 {
	e.mtx.Lock()
	defer e.mtx.Unlock()
	return e.NormFloat64()
}
