package container_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/idmsim/utils/container"
)

type testOccupant struct {
	id int32
}

func (t testOccupant) ID() int32 {
	return t.id
}

func (t testOccupant) V() float64 {
	return 0
}

func (t testOccupant) Length() float64 {
	return 4
}

func newNode(id int32, s float64) *container.OccupantNode[testOccupant] {
	return &container.OccupantNode[testOccupant]{
		S:     s,
		Value: testOccupant{id: id},
	}
}

func TestListInit(t *testing.T) {
	l := &container.OccupantList[testOccupant]{}
	assert.Nil(t, l.First())
	assert.Nil(t, l.Last())
	assert.Equal(t, 0, l.Len())
}

func TestListInsertOrder(t *testing.T) {
	l := &container.OccupantList[testOccupant]{}

	// insert out of order: 10, 5, 20, 15
	n1 := newNode(1, 10)
	n2 := newNode(2, 5)
	n3 := newNode(3, 20)
	n4 := newNode(4, 15)
	l.Insert(n1)
	l.Insert(n2)
	l.Insert(n3)
	l.Insert(n4)
	assert.Equal(t, 4, l.Len())
	assert.Equal(t, []float64{5, 10, 15, 20}, l.Keys())

	// first/last/next/prev
	assert.Equal(t, n2, l.First())
	assert.Equal(t, n3, l.Last())
	assert.Equal(t, n1, n2.Next())
	assert.Equal(t, n1, n4.Prev())
	assert.Nil(t, n3.Next())

	// remove
	l.Remove(n4)
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, n3, n1.Next())
	assert.Nil(t, n4.Parent())
}

func TestListEqualKeyOrder(t *testing.T) {
	l := &container.OccupantList[testOccupant]{}

	// the earlier insert must stay ahead (closer to tail) on equal keys
	n1 := newNode(1, 10)
	n2 := newNode(2, 10)
	l.Insert(n1)
	l.Insert(n2)
	assert.Equal(t, n2, l.First())
	assert.Equal(t, n1, n2.Next())
}

func TestListPopUnsortedMerge(t *testing.T) {
	l := &container.OccupantList[testOccupant]{}

	n1 := newNode(1, 10)
	n2 := newNode(2, 20)
	n3 := newNode(3, 30)
	l.Insert(n1)
	l.Insert(n2)
	l.Insert(n3)

	// move n1 past n2 and verify repositioning restores sorted order
	n1.S = 25
	n2.S = 21
	unsorted := l.PopUnsorted()
	assert.ElementsMatch(t, []*container.OccupantNode[testOccupant]{n2}, unsorted)
	l.Merge(unsorted)
	assert.Equal(t, []float64{21, 25, 30}, l.Keys())
	assert.Equal(t, n1, n2.Next())
	assert.Equal(t, n3, n1.Next())
}
