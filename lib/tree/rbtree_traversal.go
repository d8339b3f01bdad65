package tree

import (
	"github.com/benz9527/xtree/lib/queue"
)

// All walks are iterative, the tree height never grows the goroutine stack.

func (tree *rbTree[K, V]) preorder(root nodeIdx, fn func(idx nodeIdx) bool) bool {
	if root == nilIdx {
		return true
	}

	stack := make([]nodeIdx, 0, 32)
	stack = append(stack, root)
	for size := len(stack); size > 0; size = len(stack) {
		aux := stack[size-1]
		stack = stack[:size-1]
		if !fn(aux) {
			return false
		}
		node := tree.nd(aux)
		if r := node.right(); r != nilIdx {
			stack = append(stack, r)
		}
		if l := node.left(); l != nilIdx {
			stack = append(stack, l)
		}
	}
	return true
}

func (tree *rbTree[K, V]) inorder(root nodeIdx, fn func(idx nodeIdx) bool) bool {
	stack := make([]nodeIdx, 0, 32)
	for aux := root; aux != nilIdx; aux = tree.nd(aux).left() {
		stack = append(stack, aux)
	}

	for size := len(stack); size > 0; size = len(stack) {
		aux := stack[size-1]
		if !fn(aux) {
			return false
		}
		stack = stack[:size-1]
		for aux = tree.nd(aux).right(); aux != nilIdx; aux = tree.nd(aux).left() {
			stack = append(stack, aux)
		}
	}
	return true
}

// postorder visits both subtrees before the node itself, so fn may
// detach the node data safely.
func (tree *rbTree[K, V]) postorder(root nodeIdx, fn func(idx nodeIdx) bool) bool {
	var (
		stack = make([]nodeIdx, 0, 32)
		last  = nilIdx
		aux   = root
	)
	for aux != nilIdx || len(stack) > 0 {
		if aux != nilIdx {
			stack = append(stack, aux)
			aux = tree.nd(aux).left()
			continue
		}
		top := stack[len(stack)-1]
		if r := tree.nd(top).right(); r != nilIdx && r != last {
			aux = r
			continue
		}
		if !fn(top) {
			return false
		}
		last = top
		stack = stack[:len(stack)-1]
	}
	return true
}

func (tree *rbTree[K, V]) levelorder(root nodeIdx, fn func(idx nodeIdx) bool) bool {
	if root == nilIdx {
		return true
	}

	q := queue.NewFIFOQueue[nodeIdx]()
	defer q.Reset()
	q.Enqueue(root)
	for aux, ok := q.Dequeue(); ok; aux, ok = q.Dequeue() {
		if !fn(aux) {
			return false
		}
		node := tree.nd(aux)
		if l := node.left(); l != nilIdx {
			q.Enqueue(l)
		}
		if r := node.right(); r != nilIdx {
			q.Enqueue(r)
		}
	}
	return true
}

func (tree *rbTree[K, V]) walk(
	order func(root nodeIdx, fn func(idx nodeIdx) bool) bool,
	fn func(key K, val V) bool,
) {
	if fn == nil {
		return
	}
	tree.guard.rlock()
	defer tree.guard.runlock()
	order(tree.root, func(idx nodeIdx) bool {
		node := tree.nd(idx)
		return fn(node.key, node.val)
	})
}

// Preorder visits node, left, right.
func (tree *rbTree[K, V]) Preorder(fn func(key K, val V) bool) {
	tree.walk(tree.preorder, fn)
}

// Inorder visits the keys in the tree order.
func (tree *rbTree[K, V]) Inorder(fn func(key K, val V) bool) {
	tree.walk(tree.inorder, fn)
}

// Postorder visits left, right, node.
func (tree *rbTree[K, V]) Postorder(fn func(key K, val V) bool) {
	tree.walk(tree.postorder, fn)
}

// Levelorder visits the nodes by depth, left to right.
func (tree *rbTree[K, V]) Levelorder(fn func(key K, val V) bool) {
	tree.walk(tree.levelorder, fn)
}

// Inorder traversal to implement the DFS.
func (tree *rbTree[K, V]) Foreach(action func(idx int64, color RBColor, key K, val V) bool) {
	if action == nil {
		return
	}
	tree.guard.rlock()
	defer tree.guard.runlock()

	i := int64(0)
	tree.inorder(tree.root, func(idx nodeIdx) bool {
		node := tree.nd(idx)
		if !action(i, node.color, node.key, node.val) {
			return false
		}
		i++
		return true
	})
}
