package container

import (
	"fmt"
	"log"
)

// IOccupant 占据者接口
// 功能：定义可以占据车道路径的实体（真实agent、ego、虚拟障碍物）必须提供的关键信息
// 说明：便于在有序链表中快速访问占据者的标识、速度和长度信息
type IOccupant interface {
	ID() int32       // 获取占据者ID
	V() float64      // 获取速度
	Length() float64 // 获取长度
}

// OccupantNode 占据者有序链表中的节点
// 功能：表示路径上的一个占据记录，S为沿路径的弧长位置
// 说明：节点按S升序排列；S相等时后插入的节点排在前面，
// 使先插入者保持在前方（作为前车），保证排序的确定性
type OccupantNode[T IOccupant] struct {
	parent     *OccupantList[T]
	prev, next *OccupantNode[T]
	S          float64 // 沿路径的弧长位置（米）
	Value      T       // 占据者
}

// String 获取节点的字符串表示
func (n *OccupantNode[T]) String() string {
	return fmt.Sprintf("OccupantNode{S:%v, ID:%v}", n.S, n.Value.ID())
}

// Prev 获取节点的前一个节点（更靠后的占据者），如果是第一个节点则返回nil
func (n *OccupantNode[T]) Prev() *OccupantNode[T] {
	return n.prev
}

// Next 获取节点的下一个节点（更靠前的占据者），如果是最后一个节点则返回nil
func (n *OccupantNode[T]) Next() *OccupantNode[T] {
	return n.next
}

// Parent 获取节点所在的链表
func (n *OccupantNode[T]) Parent() *OccupantList[T] {
	return n.parent
}

// V 获取占据者的速度，简化代码的特殊函数
func (n *OccupantNode[T]) V() float64 {
	return n.Value.V()
}

// L 获取占据者的长度，简化代码的特殊函数
func (n *OccupantNode[T]) L() float64 {
	return n.Value.Length()
}

// insertBefore 在节点前插入新节点
// 算法说明：
// 1. 检查新节点是否已经在其他链表中
// 2. 设置新节点的父链表和前后指针
// 3. 如果新节点成为头节点，更新链表头指针
// 4. 增加链表长度计数
func (n *OccupantNode[T]) insertBefore(add *OccupantNode[T]) {
	if add.parent != nil {
		log.Panic("insert node who already in list")
	}
	add.parent = n.parent
	add.next = n
	add.prev = n.prev
	n.prev = add
	if add.prev != nil {
		add.prev.next = add
	} else {
		add.parent.head = add
	}
	n.parent.length++
}

// OccupantList 按弧长位置升序排列的占据者链表
// 功能：维护单条路径上的所有占据记录，支持有序插入、重定位与前车查询
// 说明：表头为位置最小（最靠后）的占据者，前车查询即为Next遍历
type OccupantList[T IOccupant] struct {
	ID         string // 链表标识符，用于调试
	head, tail *OccupantNode[T]
	length     int
}

// String 获取链表的字符串表示
func (l *OccupantList[T]) String() string {
	return fmt.Sprintf("OccupantList{ID:%v, Len:%v}", l.ID, l.length)
}

// Keys 获取链表中所有节点的弧长位置
func (l *OccupantList[T]) Keys() []float64 {
	keys := make([]float64, l.length)
	for i, node := 0, l.head; node != nil; i, node = i+1, node.next {
		keys[i] = node.S
	}
	return keys
}

// Values 获取链表中所有节点的占据者
func (l *OccupantList[T]) Values() []T {
	values := make([]T, l.length)
	for i, node := 0, l.head; node != nil; i, node = i+1, node.next {
		values[i] = node.Value
	}
	return values
}

// Len 获取链表长度
func (l *OccupantList[T]) Len() int {
	return l.length
}

// First 获取链表头部节点（位置最小），如果链表为空则返回nil
func (l *OccupantList[T]) First() *OccupantNode[T] {
	return l.head
}

// Last 获取链表尾部节点（位置最大），如果链表为空则返回nil
func (l *OccupantList[T]) Last() *OccupantNode[T] {
	return l.tail
}

// pushBack 向链表尾部插入节点，仅供已知有序的插入使用
func (l *OccupantList[T]) pushBack(add *OccupantNode[T]) {
	if add.parent != nil {
		log.Panic("insert node who already in list")
	}
	add.parent = l
	add.next = nil
	if l.tail == nil {
		add.prev = nil
		l.head = add
		l.tail = add
	} else {
		add.prev = l.tail
		l.tail.next = add
		l.tail = add
	}
	l.length++
}

// Insert 有序插入节点
// 算法说明：
// 1. 从头部开始查找第一个位置不小于新节点的节点
// 2. 在该节点前插入，位置相等时新节点排在已有节点之前
// 3. 不存在这样的节点时插入到尾部
func (l *OccupantList[T]) Insert(add *OccupantNode[T]) {
	for node := l.head; node != nil; node = node.next {
		if node.S >= add.S {
			node.insertBefore(add)
			return
		}
	}
	l.pushBack(add)
}

// Remove 从链表中移除节点
// 算法说明：
// 1. 检查节点是否属于当前链表
// 2. 更新前驱/后继指针与头尾指针
// 3. 清空被删除节点的指针并减少长度计数
func (l *OccupantList[T]) Remove(node *OccupantNode[T]) {
	if node.parent != l {
		log.Panic("remove node from wrong list")
	}
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		l.head = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	} else {
		l.tail = node.prev
	}
	node.prev = nil
	node.next = nil
	node.parent = nil
	l.length--
}

// PopUnsorted 移除逆序节点
// 功能：批量更新节点的S值后调用，移除所有与前驱逆序的节点
// 返回：被移除的逆序节点数组，供Merge重新插入
// 说明：与Merge配合构成批量重定位操作，用于每步提交阶段
func (l *OccupantList[T]) PopUnsorted() (unsorted []*OccupantNode[T]) {
	for node := l.head; node != nil; {
		next := node.next
		if node.prev != nil && node.prev.S > node.S {
			l.Remove(node)
			unsorted = append(unsorted, node)
		}
		node = next
	}
	return unsorted
}

// Merge 批量有序插入节点
// 算法说明：
// 1. 对待插入数组按S升序排序
// 2. 归并插入：插入到第一个位置不小于自身的节点之前
func (l *OccupantList[T]) Merge(adds []*OccupantNode[T]) {
	for i := 0; i < len(adds)-1; i++ {
		for j := i + 1; j < len(adds); j++ {
			if adds[i].S > adds[j].S {
				adds[i], adds[j] = adds[j], adds[i]
			}
		}
	}
	node := l.head
	for _, add := range adds {
		for node != nil && node.S < add.S {
			node = node.next
		}
		if node != nil {
			node.insertBefore(add)
		} else {
			l.pushBack(add)
		}
	}
}
