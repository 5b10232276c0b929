package agent

import (
	"github.com/tsinghua-fib-lab/idmsim/entity"
)

// egoOccupantID 自车在占据索引中的临时ID
const egoOccupantID int32 = -1

// staticOccupant 非模拟占据者（自车）
// 功能：以固定速度与长度参与前车查询，不被推进
type staticOccupant struct {
	id     int32
	v      float64
	length float64
}

func (o *staticOccupant) ID() int32       { return o.id }
func (o *staticOccupant) V() float64      { return o.v }
func (o *staticOccupant) Length() float64 { return o.length }

// leadInfo 前车查询结果
// 功能：以查询agent所在路径的弧长坐标描述前车
type leadInfo struct {
	S float64 // 前车在查询agent路径坐标系下的弧长位置
	V float64 // 前车速度
	L float64 // 前车长度
}

// OccupancyIndex 占据索引
// 功能：按路径维护弧长有序的占据记录，支持最近前车查询与批量重定位
// 说明：每条路径一个有序链表；agent节点长期驻留，
// 自车以临时节点形式每步插入、步末移除
type OccupancyIndex struct {
	lists     map[int32]*entity.OccupantList // 路径ID->占据链表
	paths     map[int32]*LanePath            // 路径ID->路径
	nodes     map[int32]*entity.OccupantNode // agent ID->节点
	transient []*entity.OccupantNode         // 本步临时节点（自车）
}

// NewOccupancyIndex 创建占据索引
func NewOccupancyIndex() *OccupancyIndex {
	return &OccupancyIndex{
		lists: make(map[int32]*entity.OccupantList),
		paths: make(map[int32]*LanePath),
		nodes: make(map[int32]*entity.OccupantNode),
	}
}

// AddPath 注册路径
func (o *OccupancyIndex) AddPath(p *LanePath) {
	if _, ok := o.lists[p.ID()]; ok {
		return
	}
	o.lists[p.ID()] = &entity.OccupantList{ID: p.String()}
	o.paths[p.ID()] = p
}

// Insert 将agent插入其路径的占据链表
func (o *OccupancyIndex) Insert(a *Agent) {
	list, ok := o.lists[a.path.ID()]
	if !ok {
		log.Panicf("insert agent %d into unregistered path %d", a.id, a.path.ID())
	}
	list.Insert(a.node)
	o.nodes[a.id] = a.node
}

// Remove 将agent从占据索引中移除（到达路径终点时调用）
func (o *OccupancyIndex) Remove(a *Agent) {
	node, ok := o.nodes[a.id]
	if !ok {
		log.Panicf("remove unknown agent %d", a.id)
	}
	node.Parent().Remove(node)
	delete(o.nodes, a.id)
}

// FindLead 查询agent的最近前车
// 功能：返回同路径上位置不小于查询agent的最近占据者；同路径无前车时
// 回退到单跳下游路径的第一个占据者
// 参数：id-agent ID，未知ID视为编程错误直接panic
// 返回：前车信息，无前车时返回nil
// 算法说明：
// 1. 链表按弧长升序排列，前车即为节点的后继
// 2. 位置相同时先插入者排在后继方向，作为前车，保证确定性
// 3. 下游回退时将下游路径坐标换算到本路径坐标系（本路径长度+下游弧长）
func (o *OccupancyIndex) FindLead(id int32) *leadInfo {
	node, ok := o.nodes[id]
	if !ok {
		log.Panicf("find lead of unknown agent %d: %v", id, entity.ErrUnknownAgent)
	}
	if next := node.Next(); next != nil {
		return &leadInfo{S: next.S, V: next.V(), L: next.L()}
	}
	// 单跳下游回退
	a := node.Value.(*Agent)
	down := a.path.Downstream()
	if down == nil {
		return nil
	}
	list, ok := o.lists[down.ID()]
	if !ok {
		return nil
	}
	if first := list.First(); first != nil {
		return &leadInfo{S: a.path.Length() + first.S, V: first.V(), L: first.L()}
	}
	return nil
}

// InsertTransient 插入本步临时占据节点（自车）
func (o *OccupancyIndex) InsertTransient(pathID int32, node *entity.OccupantNode) {
	list, ok := o.lists[pathID]
	if !ok {
		return
	}
	list.Insert(node)
	o.transient = append(o.transient, node)
}

// ClearTransient 移除所有临时占据节点
func (o *OccupancyIndex) ClearTransient() {
	for _, node := range o.transient {
		node.Parent().Remove(node)
	}
	o.transient = o.transient[:0]
}

// Commit 批量提交占据位置
// 功能：所有agent节点的S更新后调用，恢复各链表的有序性
// 说明：每步提交阶段串行执行，大多数节点位置次序不变，
// 只需移除逆序节点后归并插入
func (o *OccupancyIndex) Commit() {
	for _, list := range o.lists {
		if unsorted := list.PopUnsorted(); len(unsorted) > 0 {
			list.Merge(unsorted)
		}
	}
}
