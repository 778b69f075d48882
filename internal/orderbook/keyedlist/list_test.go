package keyedlist

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestList_Basics(t *testing.T) {
	l := New[string, int]()

	_, ok := l.PopFront()
	require.False(t, ok)

	l.PushBack("k", 1)
	l.PushBack("k", 2) // duplicate key, rejected
	l.PushBack("v", 2)

	v, ok := l.PopFront()
	require.True(t, ok)
	require.Equal(t, 1, v)

	v, ok = l.PopFront()
	require.True(t, ok)
	require.Equal(t, 2, v)

	require.True(t, l.IsEmpty())
}

func TestList_RemoveKey(t *testing.T) {
	l := New[string, string]()

	l.PushBack("a", "a")
	l.PushBack("b", "b")
	l.PushBack("c", "c")
	l.PushBack("d", "d")

	require.False(t, l.RemoveKey("e"))
	require.True(t, l.RemoveKey("b"))

	front, ok := l.Front()
	require.True(t, ok)
	require.Equal(t, "a", front)

	v, _ := l.PopFront()
	require.Equal(t, "a", v)
	v, _ = l.PopFront()
	require.Equal(t, "c", v)
	v, _ = l.PopFront()
	require.Equal(t, "d", v)
	require.Equal(t, 0, l.Len())
}

func TestList_RemoveKeyAtHeadAndTail(t *testing.T) {
	l := New[int, int]()
	l.PushBack(1, 10)
	l.PushBack(2, 20)
	l.PushBack(3, 30)

	require.True(t, l.RemoveKey(1)) // head
	require.True(t, l.RemoveKey(3)) // tail

	v, ok := l.PopFront()
	require.True(t, ok)
	require.Equal(t, 20, v)
	require.True(t, l.IsEmpty())
}

func TestList_SlotReuse(t *testing.T) {
	l := New[int, int]()
	l.PushBack(1, 1)
	l.PopFront()
	l.PushBack(2, 2)
	l.PushBack(3, 3)

	require.Equal(t, 2, l.Len())
	v, ok := l.Get(2)
	require.True(t, ok)
	require.Equal(t, 2, v)
}

func TestList_ForEachPreservesOrder(t *testing.T) {
	l := New[int, int]()
	l.PushBack(1, 10)
	l.PushBack(2, 20)
	l.PushBack(3, 30)

	var seen []int
	l.ForEach(func(k, v int) { seen = append(seen, v) })
	require.Equal(t, []int{10, 20, 30}, seen)
}
