package tree

import (
	"errors"

	"go.uber.org/multierr"

	"github.com/benz9527/xtree/lib/queue"
)

var (
	ErrRBTreeRedViolation   = errors.New("[rbtree] red violation")
	ErrRBTreeBlackViolation = errors.New("[rbtree] black violation")
	ErrRBTreeRootColor      = errors.New("[rbtree] root is not black")
	ErrRBTreeOrderViolation = errors.New("[rbtree] order violation")
	ErrRBTreeLenMismatch    = errors.New("[rbtree] length mismatch")
)

func isBlack[K any, V any](node RBNode[K, V]) bool {
	return node == nil || node.Color() == Black
}

func isRed[K any, V any](node RBNode[K, V]) bool {
	return node != nil && node.Color() == Red
}

func isRoot[K any, V any](node RBNode[K, V]) bool {
	return node != nil && node.Parent() == nil
}

func blackDepthTo[K any, V any](target, to RBNode[K, V]) int {
	depth := 0
	for aux := target; aux != nil && !sameNode[K, V](aux, to); aux = aux.Parent() {
		if isBlack[K, V](aux) {
			depth++
		}
	}
	return depth
}

func sameNode[K any, V any](a, b RBNode[K, V]) bool {
	ra, ok1 := a.(*rbNodeRef[K, V])
	rb, ok2 := b.(*rbNodeRef[K, V])
	return ok1 && ok2 && ra.tree == rb.tree && ra.idx == rb.idx
}

// rbtree rule validation utilities.
// The validators read the nodes through the RBNode views, the tree must
// not be mutated concurrently.

// References:
// https://github1s.com/minghu6/rust-minghu6/blob/master/coll_st/src/bst/rb.rs

// Inorder traversal to validate the rbtree properties.
func RedViolationValidate[K any, V any](tree RBTree[K, V]) error {
	aux := tree.Root()
	if aux == nil {
		return nil
	}

	stack := make([]RBNode[K, V], 0, 32)
	for ; aux != nil; aux = aux.Left() {
		stack = append(stack, aux)
	}

	for size := len(stack); size > 0; size = len(stack) {
		if aux = stack[size-1]; isRed[K, V](aux) {
			if (!isRoot[K, V](aux) && isRed[K, V](aux.Parent())) ||
				(isRed[K, V](aux.Left()) || isRed[K, V](aux.Right())) {
				return ErrRBTreeRedViolation
			}
		}

		stack = stack[:size-1]
		for aux = aux.Right(); aux != nil; aux = aux.Left() {
			stack = append(stack, aux)
		}
	}
	return nil
}

// BFS traversal to load all nodes missing at least one child.
func bfsLeaves[K any, V any](tree RBTree[K, V]) []RBNode[K, V] {
	aux := tree.Root()
	if aux == nil {
		return nil
	}

	leaves := make([]RBNode[K, V], 0, tree.Len()>>1+1)
	q := queue.NewFIFOQueue[RBNode[K, V]]()
	defer q.Reset()
	q.Enqueue(aux)

	for node, ok := q.Dequeue(); ok; node, ok = q.Dequeue() {
		l, r := node.Left(), node.Right()
		if /* nil leaves, keep one */ l == nil || r == nil {
			leaves = append(leaves, node)
		}
		if l != nil {
			q.Enqueue(l)
		}
		if r != nil {
			q.Enqueue(r)
		}
	}
	return leaves
}

/*
<X> is a RED node.
[X] is a BLACK node (or NIL).

	        [13]
			/  \
		 <8>    [15]
		 / \    /  \
	  [6] [11] [14] [17]
	  /              /
	<1>            [16]

2-3-4 tree like:

	       <8> --- [13] --- <15>
		  /  \             /    \
		 /    \           /      \
	  <1>-[6][11]      [14] <16>-[17]

Each leaf node to root node black depth are equal.
*/
func BlackViolationValidate[K any, V any](tree RBTree[K, V]) error {
	leaves := bfsLeaves[K, V](tree)
	if leaves == nil {
		return nil
	}

	root := tree.Root()
	blackDepth := blackDepthTo[K, V](leaves[0], root)
	for i := 1; i < len(leaves); i++ {
		if blackDepthTo[K, V](leaves[i], root) != blackDepth {
			return ErrRBTreeBlackViolation
		}
	}
	return nil
}

func RootColorValidate[K any, V any](tree RBTree[K, V]) error {
	if root := tree.Root(); root != nil && root.Color() != Black {
		return ErrRBTreeRootColor
	}
	return nil
}

// OrderViolationValidate checks that the in-order keys are strictly
// increasing by the tree comparator and their number matches Len.
func OrderViolationValidate[K any, V any](tree RBTree[K, V]) error {
	impl, ok := tree.(*rbTree[K, V])
	if !ok {
		return nil
	}

	var (
		prev  K
		count int64
		err   error
	)
	tree.Foreach(func(idx int64, color RBColor, key K, val V) bool {
		if idx > 0 && impl.kcmp(prev, key) >= 0 {
			err = ErrRBTreeOrderViolation
			return false
		}
		prev = key
		count++
		return true
	})
	if err != nil {
		return err
	}
	if count != tree.Len() {
		return ErrRBTreeLenMismatch
	}
	return nil
}

// Validate checks all the rbtree properties and combines the violations.
func Validate[K any, V any](tree RBTree[K, V]) error {
	return multierr.Combine(
		RootColorValidate[K, V](tree),
		RedViolationValidate[K, V](tree),
		BlackViolationValidate[K, V](tree),
		OrderViolationValidate[K, V](tree),
	)
}
