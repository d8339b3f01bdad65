package tree

import (
	"math"
	randv2 "math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/benz9527/xtree/lib/infra"
)

type checkData struct {
	color RBColor
	key   uint64
}

func newTestRBTree[K infra.OrderedKey, V any](opts ...RBTreeOpt[K, V]) *rbTree[K, V] {
	return newRBTree[K, V](infra.DefaultComparator[K], opts...)
}

func requireForeach(t *testing.T, tree RBTree[uint64, uint64], expected []checkData) {
	t.Helper()
	count := 0
	tree.Foreach(func(idx int64, color RBColor, key uint64, val uint64) bool {
		require.Less(t, int(idx), len(expected))
		require.Equal(t, expected[idx].color, color)
		require.Equal(t, expected[idx].key, key)
		count++
		return true
	})
	require.Equal(t, len(expected), count)
	require.NoError(t, Validate[uint64, uint64](tree))
}

func TestNilNode(t *testing.T) {
	tree := newTestRBTree[uint64, uint64]()
	require.Nil(t, tree.Root())
	require.Nil(t, tree.nodeRef(nilIdx))

	var nilNode RBNode[uint64, uint64] = tree.nodeRef(nilIdx)
	require.True(t, nilNode == nil)
}

func TestRbtreeNodeView(t *testing.T) {
	tree := newTestRBTree[uint64, uint64]()
	for _, k := range []uint64{2, 1, 3} {
		require.NoError(t, tree.Insert(k, k*10))
	}

	root := tree.Root()
	require.NotNil(t, root)
	require.Equal(t, uint64(2), root.Key())
	require.Equal(t, uint64(20), root.Val())
	require.Equal(t, Black, root.Color())
	require.Equal(t, Root, root.Direction())
	require.Nil(t, root.Parent())

	l, r := root.Left(), root.Right()
	require.Equal(t, uint64(1), l.Key())
	require.Equal(t, Left, l.Direction())
	require.Equal(t, Red, l.Color())
	require.Equal(t, uint64(3), r.Key())
	require.Equal(t, Right, r.Direction())
	require.Equal(t, uint64(2), r.Parent().Key())
	require.Nil(t, l.Left())
	require.False(t, l.IsKeyOwned())
	require.False(t, l.IsValOwned())
}

func TestRbtreeLeftAndRightRotate(t *testing.T) {
	tree := newTestRBTree[uint64, uint64]()
	for _, k := range []uint64{2, 1, 3} {
		require.NoError(t, tree.Insert(k, 1))
	}
	preorderKeys := func() []uint64 {
		keys := make([]uint64, 0, 3)
		tree.Preorder(func(key uint64, val uint64) bool {
			keys = append(keys, key)
			return true
		})
		return keys
	}

	tree.leftRotate(tree.root)
	require.Equal(t, []uint64{3, 2, 1}, preorderKeys())
	require.Equal(t, uint64(3), tree.Root().Key())
	require.Equal(t, uint64(3), tree.Root().Left().Parent().Key())
	require.Nil(t, tree.Root().Right())

	tree.rightRotate(tree.root)
	require.Equal(t, []uint64{2, 1, 3}, preorderKeys())
	require.Equal(t, uint64(2), tree.Root().Right().Parent().Key())
	require.Nil(t, tree.Root().Parent())

	require.Panics(t, func() {
		tree.rightRotate(tree.nd(tree.root).left())
	})
}

func TestRbtreeLeftAndRightRotate_Pred(t *testing.T) {
	tree := newTestRBTree[uint64, uint64](WithRBTreeRemoveBorrowPred[uint64, uint64]())

	require.NoError(t, tree.Insert(52, 1))
	requireForeach(t, tree, []checkData{{Black, 52}})

	require.NoError(t, tree.Insert(47, 1))
	requireForeach(t, tree, []checkData{{Red, 47}, {Black, 52}})

	require.NoError(t, tree.Insert(3, 1))
	requireForeach(t, tree, []checkData{{Red, 3}, {Black, 47}, {Red, 52}})

	require.NoError(t, tree.Insert(35, 1))
	requireForeach(t, tree, []checkData{
		{Black, 3},
		{Red, 35},
		{Black, 47},
		{Black, 52},
	})

	require.NoError(t, tree.Insert(24, 1))
	requireForeach(t, tree, []checkData{
		{Red, 3},
		{Black, 24},
		{Red, 35},
		{Black, 47},
		{Black, 52},
	})

	// remove

	_, ok := tree.Remove(24)
	require.True(t, ok)
	requireForeach(t, tree, []checkData{
		{Black, 3},
		{Red, 35},
		{Black, 47},
		{Black, 52},
	})

	_, ok = tree.Remove(47)
	require.True(t, ok)
	requireForeach(t, tree, []checkData{
		{Black, 3},
		{Black, 35},
		{Black, 52},
	})

	_, ok = tree.Remove(52)
	require.True(t, ok)
	requireForeach(t, tree, []checkData{{Red, 3}, {Black, 35}})

	_, ok = tree.Remove(3)
	require.True(t, ok)
	requireForeach(t, tree, []checkData{{Black, 35}})

	_, ok = tree.Remove(35)
	require.True(t, ok)
	require.Equal(t, int64(0), tree.Len())
	require.Nil(t, tree.Root())

	_, ok = tree.Remove(35)
	require.False(t, ok)
}

func TestRbtreeRemove_Succ(t *testing.T) {
	tree := newTestRBTree[uint64, uint64]()
	for _, k := range []uint64{52, 47, 3, 35, 24} {
		require.NoError(t, tree.Insert(k, k))
	}

	val, ok := tree.Remove(24)
	require.True(t, ok)
	require.Equal(t, uint64(24), val)
	requireForeach(t, tree, []checkData{
		{Red, 3},
		{Black, 35},
		{Black, 47},
		{Black, 52},
	})
}

func TestRbtree_RemoveMin(t *testing.T) {
	tree := newTestRBTree[uint64, uint64](WithRBTreeRemoveBorrowPred[uint64, uint64]())

	for _, k := range []uint64{52, 47, 3, 35, 24} {
		require.NoError(t, tree.Insert(k, 1))
	}
	requireForeach(t, tree, []checkData{
		{Red, 3},
		{Black, 24},
		{Red, 35},
		{Black, 47},
		{Black, 52},
	})

	// remove min

	key, _, ok := tree.RemoveMin()
	require.True(t, ok)
	require.Equal(t, uint64(3), key)
	requireForeach(t, tree, []checkData{
		{Black, 24},
		{Red, 35},
		{Black, 47},
		{Black, 52},
	})

	key, _, ok = tree.RemoveMin()
	require.True(t, ok)
	require.Equal(t, uint64(24), key)
	requireForeach(t, tree, []checkData{
		{Black, 35},
		{Black, 47},
		{Black, 52},
	})

	key, _, ok = tree.RemoveMin()
	require.True(t, ok)
	require.Equal(t, uint64(35), key)
	requireForeach(t, tree, []checkData{{Black, 47}, {Red, 52}})

	key, _, ok = tree.RemoveMin()
	require.True(t, ok)
	require.Equal(t, uint64(47), key)
	requireForeach(t, tree, []checkData{{Black, 52}})

	key, _, ok = tree.RemoveMin()
	require.True(t, ok)
	require.Equal(t, uint64(52), key)
	require.Equal(t, int64(0), tree.Len())

	_, _, ok = tree.RemoveMin()
	require.False(t, ok)
}

func TestRbtree_RemoveMax(t *testing.T) {
	tree := newTestRBTree[uint64, uint64]()
	for _, k := range []uint64{52, 47, 3, 35, 24} {
		require.NoError(t, tree.Insert(k, k+1))
	}

	for _, exp := range []uint64{52, 47, 35, 24, 3} {
		key, val, ok := tree.RemoveMax()
		require.True(t, ok)
		require.Equal(t, exp, key)
		require.Equal(t, exp+1, val)
		require.NoError(t, Validate[uint64, uint64](tree))
	}
	_, _, ok := tree.RemoveMax()
	require.False(t, ok)
}

func TestRbtree_InsertReplace(t *testing.T) {
	tree := newTestRBTree[int, string]()
	require.NoError(t, tree.Insert(1, "a"))
	require.NoError(t, tree.Insert(2, "b"))

	err := tree.InsertIfAbsent(1, "c")
	require.ErrorIs(t, err, ErrRBTreeKeyExists)
	val, ok := tree.Search(1)
	require.True(t, ok)
	require.Equal(t, "a", val)

	require.NoError(t, tree.Insert(1, "c"))
	require.Equal(t, int64(2), tree.Len())
	val, ok = tree.Search(1)
	require.True(t, ok)
	require.Equal(t, "c", val)

	require.NoError(t, tree.InsertIfAbsent(3, "d"))
	require.Equal(t, int64(3), tree.Len())
}

func TestRbtree_Search(t *testing.T) {
	tree := newTestRBTree[int, int]()

	_, ok := tree.Search(1)
	require.False(t, ok)
	_, ok = tree.SearchRecursive(1)
	require.False(t, ok)
	_, _, ok = tree.Min()
	require.False(t, ok)
	_, _, ok = tree.Max()
	require.False(t, ok)

	for i := 0; i < 100; i++ {
		require.NoError(t, tree.Insert(i*2, i))
	}
	for i := 0; i < 100; i++ {
		val, ok := tree.Search(i * 2)
		require.True(t, ok)
		require.Equal(t, i, val)
		val, ok = tree.SearchRecursive(i * 2)
		require.True(t, ok)
		require.Equal(t, i, val)
		require.True(t, tree.IsExist(i*2))
		require.False(t, tree.IsExist(i*2+1))
	}

	key, val, ok := tree.Min()
	require.True(t, ok)
	require.Equal(t, 0, key)
	require.Equal(t, 0, val)
	key, val, ok = tree.Max()
	require.True(t, ok)
	require.Equal(t, 198, key)
	require.Equal(t, 99, val)
}

func TestRbtree_Traversal(t *testing.T) {
	tree := newTestRBTree[int, int]()
	for _, k := range []int{4, 2, 6, 1, 3, 5, 7} {
		require.NoError(t, tree.Insert(k, k))
	}

	testcases := []struct {
		name     string
		walk     func(fn func(key int, val int) bool)
		expected []int
	}{
		{"preorder", tree.Preorder, []int{4, 2, 1, 3, 6, 5, 7}},
		{"inorder", tree.Inorder, []int{1, 2, 3, 4, 5, 6, 7}},
		{"postorder", tree.Postorder, []int{1, 3, 2, 5, 7, 6, 4}},
		{"levelorder", tree.Levelorder, []int{4, 2, 6, 1, 3, 5, 7}},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			keys := make([]int, 0, len(tc.expected))
			tc.walk(func(key int, val int) bool {
				require.Equal(tt, key, val)
				keys = append(keys, key)
				return true
			})
			require.Equal(tt, tc.expected, keys)

			keys = keys[:0]
			tc.walk(func(key int, val int) bool {
				keys = append(keys, key)
				return len(keys) < 3
			})
			require.Equal(tt, tc.expected[:3], keys)

			tc.walk(nil)
		})
	}

	empty := newTestRBTree[int, int]()
	empty.Preorder(func(key int, val int) bool {
		require.Fail(t, "empty tree visited")
		return true
	})
	empty.Levelorder(func(key int, val int) bool {
		require.Fail(t, "empty tree visited")
		return true
	})
	empty.Postorder(func(key int, val int) bool {
		require.Fail(t, "empty tree visited")
		return true
	})
}

func TestRbtree_ForeachStop(t *testing.T) {
	tree := newTestRBTree[int, int]()
	for i := 0; i < 10; i++ {
		require.NoError(t, tree.Insert(i, i))
	}
	visited := 0
	tree.Foreach(func(idx int64, color RBColor, key int, val int) bool {
		require.Equal(t, int(idx), key)
		visited++
		return idx < 4
	})
	require.Equal(t, 5, visited)
}

func TestRbtree_Validate(t *testing.T) {
	tree := newTestRBTree[int, int]()
	for _, k := range []int{4, 2, 6, 1, 3, 5, 7} {
		require.NoError(t, tree.Insert(k, k))
	}
	require.NoError(t, Validate[int, int](tree))

	tree.nd(tree.root).color = Red
	err := Validate[int, int](tree)
	require.ErrorIs(t, err, ErrRBTreeRootColor)
	require.NotErrorIs(t, err, ErrRBTreeRedViolation)
	tree.nd(tree.root).color = Black

	l := tree.nd(tree.root).left()
	tree.nd(l).key, tree.nd(tree.root).key = tree.nd(tree.root).key, tree.nd(l).key
	require.ErrorIs(t, Validate[int, int](tree), ErrRBTreeOrderViolation)
	tree.nd(l).key, tree.nd(tree.root).key = tree.nd(tree.root).key, tree.nd(l).key

	tree.nd(l).color = Red
	err = Validate[int, int](tree)
	require.ErrorIs(t, err, ErrRBTreeBlackViolation)
	require.ErrorIs(t, err, ErrRBTreeRedViolation)
}

func TestRbtree_DescComparator(t *testing.T) {
	tree := NewRBTree[int, int](WithRBTreeDesc[int, int]())
	for i := 0; i < 64; i++ {
		require.NoError(t, tree.Insert(i, i))
	}
	key, _, ok := tree.Min()
	require.True(t, ok)
	require.Equal(t, 63, key)
	key, _, ok = tree.Max()
	require.True(t, ok)
	require.Equal(t, 0, key)
	require.NoError(t, Validate[int, int](tree))
}

func TestRbtree_CustomComparator(t *testing.T) {
	type pair struct {
		major, minor int
	}
	cmp := func(i, j pair) int64 {
		if i.major != j.major {
			return int64(i.major - j.major)
		}
		return int64(i.minor - j.minor)
	}
	tree := NewRBTreeFunc[pair, string](cmp)
	require.NoError(t, tree.Insert(pair{2, 1}, "c"))
	require.NoError(t, tree.Insert(pair{1, 9}, "b"))
	require.NoError(t, tree.Insert(pair{1, 2}, "a"))

	vals := make([]string, 0, 3)
	tree.Inorder(func(key pair, val string) bool {
		vals = append(vals, val)
		return true
	})
	require.Equal(t, []string{"a", "b", "c"}, vals)
	require.NoError(t, Validate[pair, string](tree))

	require.Panics(t, func() {
		NewRBTreeFunc[pair, string](nil)
	})
}

func TestRbtree_ArenaRecycle(t *testing.T) {
	tree := newTestRBTree[int, int](WithRBTreeInitCap[int, int](8))
	for i := 0; i < 8; i++ {
		require.NoError(t, tree.Insert(i, i))
	}
	require.Equal(t, 8, tree.arena.objLen())
	for i := 0; i < 4; i++ {
		_, ok := tree.Remove(i)
		require.True(t, ok)
	}
	require.Equal(t, 4, tree.arena.recLen())
	require.Equal(t, 4, tree.arena.objLen())

	for i := 100; i < 104; i++ {
		require.NoError(t, tree.Insert(i, i))
	}
	require.Equal(t, 0, tree.arena.recLen())
	require.Equal(t, 9, len(tree.arena.nodes))
	require.NoError(t, Validate[int, int](tree))
}

func TestRbtree_ArenaCap(t *testing.T) {
	limit := int(min(uint64(maxArenaSize), uint64(math.MaxInt-1)))
	testcases := []struct {
		name     string
		capacity int
		expected int
	}{
		{"negative", -1, 0},
		{"zero", 0, 0},
		{"small", 8, 8},
		{"max int", math.MaxInt, limit},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			c := arenaCap(tc.capacity)
			require.Equal(tt, tc.expected, c)
			require.Greater(tt, c+1, 0)
		})
	}
}

func TestRbtree_DemoKeys(t *testing.T) {
	tree := newTestRBTree[int, int]()
	for _, k := range []int{10, 40, 30, 60, 90, 70, 20, 50, 80} {
		require.NoError(t, tree.Insert(k, k*10))
		require.NoError(t, Validate[int, int](tree))
	}

	keys := make([]int, 0, 9)
	tree.Inorder(func(key int, val int) bool {
		keys = append(keys, key)
		return true
	})
	require.Equal(t, []int{10, 20, 30, 40, 50, 60, 70, 80, 90}, keys)
	require.Equal(t, Black, tree.Root().Color())

	val, ok := tree.Remove(40)
	require.True(t, ok)
	require.Equal(t, 400, val)
	require.NoError(t, Validate[int, int](tree))

	_, ok = tree.Search(40)
	require.False(t, ok)
	val, ok = tree.Search(30)
	require.True(t, ok)
	require.Equal(t, 300, val)
	require.Equal(t, int64(8), tree.Len())
}

func TestRbtree_RemoveAbsentKey(t *testing.T) {
	type snapshot struct {
		preorder []int
		colors   []RBColor
	}
	tree := newTestRBTree[int, int]()
	for i := 0; i < 50; i++ {
		require.NoError(t, tree.Insert(i*2, i))
	}
	snap := func() snapshot {
		res := snapshot{}
		tree.Preorder(func(key int, val int) bool {
			res.preorder = append(res.preorder, key)
			return true
		})
		tree.Foreach(func(idx int64, color RBColor, key int, val int) bool {
			res.colors = append(res.colors, color)
			return true
		})
		return res
	}

	before := snap()
	for _, k := range []int{7, -1, 99, 1000} {
		_, ok := tree.Remove(k)
		require.False(t, ok)
		require.Equal(t, before, snap())
		require.Equal(t, int64(50), tree.Len())
	}
	require.NoError(t, Validate[int, int](tree))
}

func rbtreeRandomInsertAndRemoveSequentialNumberRunCore(t *testing.T, rbRmByPred bool) {
	total := uint64(1000)
	insertTotal := uint64(float64(total) * 0.8)
	removeTotal := uint64(float64(total) * 0.2)

	opts := make([]RBTreeOpt[uint64, uint64], 0, 1)
	if rbRmByPred {
		opts = append(opts, WithRBTreeRemoveBorrowPred[uint64, uint64]())
	}
	tree := newTestRBTree[uint64, uint64](opts...)

	for i := uint64(0); i < insertTotal; i++ {
		require.NoError(t, tree.Insert(i, 1))
		require.NoError(t, RedViolationValidate[uint64, uint64](tree))
		require.NoError(t, BlackViolationValidate[uint64, uint64](tree))
	}
	tree.Foreach(func(idx int64, color RBColor, key uint64, val uint64) bool {
		require.Equal(t, uint64(idx), key)
		return true
	})

	for i := insertTotal; i < removeTotal+insertTotal; i++ {
		require.NoError(t, tree.Insert(i, 1))
		require.NoError(t, RedViolationValidate[uint64, uint64](tree))
		require.NoError(t, BlackViolationValidate[uint64, uint64](tree))
	}

	for i := insertTotal; i < removeTotal+insertTotal; i++ {
		if i == 892 {
			val, ok := tree.SearchRecursive(i)
			require.True(t, ok)
			require.Equal(t, uint64(1), val)
		}
		_, ok := tree.Remove(i)
		require.True(t, ok)
		require.False(t, tree.IsExist(i))
		require.NoError(t, RedViolationValidate[uint64, uint64](tree))
		require.NoError(t, BlackViolationValidate[uint64, uint64](tree))
	}
	tree.Foreach(func(idx int64, color RBColor, key uint64, val uint64) bool {
		require.Equal(t, uint64(idx), key)
		return true
	})
	require.Equal(t, int64(insertTotal), tree.Len())
}

func TestRbtreeRandomInsertAndRemove_SequentialNumber(t *testing.T) {
	type testcase struct {
		name       string
		rbRmByPred bool
	}
	testcases := []testcase{
		{
			name: "rm by succ",
		},
		{
			name:       "rm by pred",
			rbRmByPred: true,
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			rbtreeRandomInsertAndRemoveSequentialNumberRunCore(tt, tc.rbRmByPred)
		})
	}
}

func TestRBTreeRandomInsertAndRemove_SequentialNumber_Release(t *testing.T) {
	insertTotal := uint64(100_000)

	tree := newTestRBTree[uint64, uint64]()

	rand := uint64(randv2.Uint32() % 1_000)
	for i := uint64(0); i < insertTotal; i++ {
		require.NoError(t, tree.Insert(i, 1))
		if i%1000 == rand {
			require.NoError(t, Validate[uint64, uint64](tree))
		}
	}
	tree.Foreach(func(idx int64, color RBColor, key uint64, val uint64) bool {
		require.Equal(t, uint64(idx), key)
		return true
	})
	tree.Release()
	require.Equal(t, int64(0), tree.Len())
	require.Nil(t, tree.Root())

	// Idempotent and reusable.
	tree.Release()
	require.NoError(t, tree.Insert(1, 1))
	require.Equal(t, int64(1), tree.Len())
}

func TestRbtreeRandomInsertAndRemove_ReverseSequentialNumber(t *testing.T) {
	total := int64(10000)
	insertTotal := int64(float64(total) * 0.8)
	removeTotal := int64(float64(total) * 0.2)

	tree := newTestRBTree[int64, uint64](WithRBTreeDesc[int64, uint64]())

	rand := int64(randv2.Uint32() % 1_000)
	for i := insertTotal - 1; i >= 0; i-- {
		require.NoError(t, tree.Insert(i, 1))
		if i%1000 == rand {
			require.NoError(t, Validate[int64, uint64](tree))
		}
	}
	tree.Foreach(func(idx int64, color RBColor, key int64, val uint64) bool {
		require.Equal(t, insertTotal-1-idx, key)
		return true
	})

	for i := removeTotal + insertTotal - 1; i >= insertTotal; i-- {
		require.NoError(t, tree.Insert(i, 1))
	}
	tree.Foreach(func(idx int64, color RBColor, key int64, val uint64) bool {
		require.Equal(t, removeTotal+insertTotal-1-idx, key)
		return true
	})

	for i := insertTotal; i < removeTotal+insertTotal; i++ {
		_, ok := tree.Remove(i)
		require.True(t, ok)
	}
	tree.Foreach(func(idx int64, color RBColor, key int64, val uint64) bool {
		require.Equal(t, insertTotal-1-idx, key)
		return true
	})
	require.NoError(t, Validate[int64, uint64](tree))
}

func rbtreeRandomInsertAndRemove_RandomNumberRunCore(t *testing.T, total uint64, rbRmByPred bool, violationCheck bool) {
	insertTotal := uint64(float64(total) * 0.8)
	removeTotal := uint64(float64(total) * 0.2)

	unique := make(map[uint64]struct{}, total)
	insertElements := make([]uint64, 0, insertTotal)
	removeElements := make([]uint64, 0, removeTotal)
	for uint64(len(insertElements)) < insertTotal || uint64(len(removeElements)) < removeTotal {
		num := randv2.Uint64()
		if _, exists := unique[num]; exists {
			continue
		}
		unique[num] = struct{}{}
		if num&0x1 == 0 && uint64(len(insertElements)) < insertTotal {
			insertElements = append(insertElements, num)
		} else if num&0x1 == 1 && uint64(len(removeElements)) < removeTotal {
			removeElements = append(removeElements, num)
		}
	}

	opts := make([]RBTreeOpt[uint64, uint64], 0, 1)
	if rbRmByPred {
		opts = append(opts, WithRBTreeRemoveBorrowPred[uint64, uint64]())
	}
	tree := newTestRBTree[uint64, uint64](opts...)

	for i := uint64(0); i < insertTotal; i++ {
		require.NoError(t, tree.Insert(insertElements[i], i))
		if violationCheck {
			require.NoError(t, RedViolationValidate[uint64, uint64](tree))
			require.NoError(t, BlackViolationValidate[uint64, uint64](tree))
		}
	}
	sort.Slice(insertElements, func(i, j int) bool {
		return insertElements[i] < insertElements[j]
	})
	tree.Foreach(func(idx int64, color RBColor, key uint64, val uint64) bool {
		require.Equal(t, insertElements[idx], key)
		return true
	})

	for i := uint64(0); i < removeTotal; i++ {
		require.NoError(t, tree.Insert(removeElements[i], 1))
		if violationCheck {
			require.NoError(t, RedViolationValidate[uint64, uint64](tree))
			require.NoError(t, BlackViolationValidate[uint64, uint64](tree))
		}
	}
	require.NoError(t, Validate[uint64, uint64](tree))

	for i := uint64(0); i < removeTotal; i++ {
		val, ok := tree.Remove(removeElements[i])
		require.Truef(t, ok, "key %d not found", removeElements[i])
		require.Equal(t, uint64(1), val)
		if violationCheck {
			require.NoError(t, RedViolationValidate[uint64, uint64](tree))
			require.NoError(t, BlackViolationValidate[uint64, uint64](tree))
		}
	}
	tree.Foreach(func(idx int64, color RBColor, key uint64, val uint64) bool {
		require.Equal(t, insertElements[idx], key)
		return true
	})
	require.NoError(t, Validate[uint64, uint64](tree))
}

func TestRbtreeRandomInsertAndRemove_RandomNumber(t *testing.T) {
	type testcase struct {
		name           string
		rbRmByPred     bool
		total          uint64
		violationCheck bool
	}
	testcases := []testcase{
		{
			name:  "rm by succ 200000",
			total: 200000,
		},
		{
			name:       "rm by pred 200000",
			rbRmByPred: true,
			total:      200000,
		},
		{
			name:           "violation check rm by succ 5000",
			total:          5000,
			violationCheck: true,
		},
		{
			name:           "violation check rm by pred 5000",
			rbRmByPred:     true,
			total:          5000,
			violationCheck: true,
		},
	}
	t.Parallel()
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			rbtreeRandomInsertAndRemove_RandomNumberRunCore(tt, tc.total, tc.rbRmByPred, tc.violationCheck)
		})
	}
}

func BenchmarkRBTree_Random(b *testing.B) {
	testByBytes := []byte(`abc`)

	b.StopTimer()
	tree := NewRBTree[int, []byte]()

	rngArr := make([]int, 0, b.N)
	for i := 0; i < b.N; i++ {
		rngArr = append(rngArr, randv2.Int())
	}

	b.StartTimer()
	for i := 0; i < b.N; i++ {
		err := tree.Insert(rngArr[i], testByBytes)
		if err != nil {
			panic(err)
		}
	}
}

func BenchmarkRBTree_Serial(b *testing.B) {
	testByBytes := []byte(`abc`)

	b.StopTimer()
	tree := NewRBTree[int, []byte]()

	b.StartTimer()
	for i := 0; i < b.N; i++ {
		_ = tree.Insert(i, testByBytes)
	}
}
