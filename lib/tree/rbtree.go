package tree

import (
	"errors"
	"sync/atomic"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/benz9527/xtree/lib/infra"
	"github.com/benz9527/xtree/xlog"
)

var (
	ErrRBTreeKeyExists = errors.New("[rbtree] key exists")
	ErrRBTreeKeyCopy   = errors.New("[rbtree] key copy failed")
	ErrRBTreeValCopy   = errors.New("[rbtree] value copy failed")
	ErrRBTreeFull      = errors.New("[rbtree] node arena is full")
)

var _ RBTree[int, int] = (*rbTree[int, int])(nil)

type rbTree[K any, V any] struct {
	arena          *rbArena[K, V]
	root           nodeIdx
	count          int64
	kcmp           infra.KeyComparator[K]
	keyOwnership   ownership[K]
	valOwnership   ownership[V]
	guard          rbGuard
	stats          *rbTreeStats
	logger         xlog.XLogger
	isDesc         bool
	isRmBorrowPred bool
	printColor     bool
}

// rbGarbage holds the owned data detached under the guard.
// It is released after the guard is dropped.
type rbGarbage[K any, V any] struct {
	keys []K
	vals []V
}

func (g *rbGarbage[K, V]) detach(node *rbNode[K, V]) {
	if node.owned.isKeyOwned() {
		g.keys = append(g.keys, node.key)
	}
	if node.owned.isValOwned() {
		g.vals = append(g.vals, node.val)
	}
}

func (tree *rbTree[K, V]) release(g *rbGarbage[K, V]) {
	if len(g.keys) <= 0 && len(g.vals) <= 0 {
		return
	}
	for _, key := range g.keys {
		tree.keyOwnership.release(key)
	}
	for _, val := range g.vals {
		tree.valOwnership.release(val)
	}
	tree.logger.Debug("[rbtree] owned data released",
		zap.Int("keys", len(g.keys)),
		zap.Int("vals", len(g.vals)),
	)
	clear(g.keys)
	clear(g.vals)
	g.keys, g.vals = g.keys[:0], g.vals[:0]
}

func (tree *rbTree[K, V]) nd(idx nodeIdx) *rbNode[K, V] {
	return tree.arena.at(idx)
}

// The absent leaf is black.
func (tree *rbTree[K, V]) isRed(idx nodeIdx) bool {
	return idx != nilIdx && tree.nd(idx).color == Red
}

func (tree *rbTree[K, V]) isBlack(idx nodeIdx) bool {
	return !tree.isRed(idx)
}

// sideOf returns which child of its parent the node is.
// The node must not be the root.
func (tree *rbTree[K, V]) sideOf(idx nodeIdx) side {
	if tree.nd(tree.nd(idx).parent).links[leftSide] == idx {
		return leftSide
	}
	return rightSide
}

// replaceChild links repl into the slot of old under parent.
func (tree *rbTree[K, V]) replaceChild(parent, old, repl nodeIdx) {
	if parent == nilIdx {
		tree.root = repl
		return
	}
	pn := tree.nd(parent)
	if pn.links[leftSide] == old {
		pn.links[leftSide] = repl
	} else {
		pn.links[rightSide] = repl
	}
}

// extreme walks down the s side until the last node.
func (tree *rbTree[K, V]) extreme(idx nodeIdx, s side) nodeIdx {
	if idx == nilIdx {
		return nilIdx
	}
	for next := tree.nd(idx).links[s]; next != nilIdx; next = tree.nd(idx).links[s] {
		idx = next
	}
	return idx
}

func (tree *rbTree[K, V]) Len() int64 {
	return atomic.LoadInt64(&tree.count)
}

func (tree *rbTree[K, V]) Root() RBNode[K, V] {
	tree.guard.rlock()
	defer tree.guard.runlock()
	return tree.nodeRef(tree.root)
}

// References:
// https://elixir.bootlin.com/linux/latest/source/lib/rbtree.c
// rbtree properties:
// https://en.wikipedia.org/wiki/Red%E2%80%93black_tree#Properties
// p1. Every node is either red or black.
// p2. All NIL nodes are considered black.
// p3. A red node does not have a red child. (red-violation)
// p4. Every path from a given node to any of its descendant
//   NIL nodes goes through the same number of black nodes. (black-violation)
// p5. The root is black.

/*
		 |                         |
		 X                         Y
		/ \     rotate(X, left)   / \
	   L   Y    ============>    X   Yd
		  / \                   / \
		Yc   Yd                L   Yc
*/
// rotate moves the s.opposite() child of x up into the position of x,
// x becomes its s child. The inner grandchild is handed over to x.
func (tree *rbTree[K, V]) rotate(x nodeIdx, s side) {
	xn := tree.nd(x)
	y := xn.links[s.opposite()]
	if x == nilIdx || y == nilIdx {
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] rotate node x is nil or its child is nil")
	}

	yn := tree.nd(y)
	xn.links[s.opposite()] = yn.links[s]
	if c := yn.links[s]; c != nilIdx {
		tree.nd(c).parent = x
	}
	yn.parent = xn.parent
	tree.replaceChild(xn.parent, x, y)
	yn.links[s] = x
	xn.parent = y
	tree.stats.IncreaseRotateCount(s)
}

func (tree *rbTree[K, V]) leftRotate(x nodeIdx) {
	tree.rotate(x, leftSide)
}

func (tree *rbTree[K, V]) rightRotate(x nodeIdx) {
	tree.rotate(x, rightSide)
}

func ownershipOf(own []Ownership) Ownership {
	if len(own) <= 0 {
		return Borrowed
	}
	return own[0] & OwnKeyVal
}

func (tree *rbTree[K, V]) Insert(key K, val V, own ...Ownership) error {
	return tree.insert(key, val, ownershipOf(own), false)
}

func (tree *rbTree[K, V]) InsertIfAbsent(key K, val V, own ...Ownership) error {
	return tree.insert(key, val, ownershipOf(own), true)
}

func (tree *rbTree[K, V]) insert(key K, val V, own Ownership, ifAbsent bool) error {
	g := rbGarbage[K, V]{}
	tree.guard.lock()
	err := tree.insertNode(key, val, own, ifAbsent, &g)
	tree.guard.unlock()
	tree.release(&g)

	if err != nil && !errors.Is(err, ErrRBTreeKeyExists) {
		tree.logger.Error(err, "[rbtree] insert failed")
	}
	return err
}

// i1: Empty rbtree, the new node becomes the root and is painted to black.
// i2: Equal key, replace the value in place. The key is kept.
// i3: Otherwise link a red leaf and rebalance.
func (tree *rbTree[K, V]) insertNode(key K, val V, own Ownership, ifAbsent bool, g *rbGarbage[K, V]) error {
	var (
		parent = nilIdx
		s      = leftSide
	)
	for aux := tree.root; aux != nilIdx; {
		node := tree.nd(aux)
		res := tree.kcmp(key, node.key)
		if /* i2 */ res == 0 {
			if ifAbsent {
				return ErrRBTreeKeyExists
			}
			return tree.replaceVal(aux, val, own, g)
		}
		parent = aux
		if res < 0 {
			s = leftSide
		} else {
			s = rightSide
		}
		aux = node.links[s]
	}

	z, err := tree.newNode(key, val, own, g)
	if err != nil {
		return err
	}
	tree.nd(z).parent = parent
	if /* i1 */ parent == nilIdx {
		tree.root = z
	} else /* i3 */ {
		tree.nd(parent).links[s] = z
	}
	tree.insertRebalance(z)

	atomic.AddInt64(&tree.count, 1)
	tree.stats.RecordNodeCount(1)
	tree.stats.IncreaseInsertCount(false)
	return nil
}

func (tree *rbTree[K, V]) replaceVal(idx nodeIdx, val V, own Ownership, g *rbGarbage[K, V]) error {
	if own.isValOwned() {
		v, err := tree.valOwnership.copy(val)
		if err != nil {
			return infra.WrapErrorStackWithMessage(multierr.Combine(ErrRBTreeValCopy, err), "[rbtree] replace value")
		}
		val = v
	}
	node := tree.nd(idx)
	if node.owned.isValOwned() {
		g.vals = append(g.vals, node.val)
	}
	node.val = val
	node.owned = node.owned&^OwnVal | own&OwnVal
	tree.stats.IncreaseInsertCount(true)
	return nil
}

// newNode copies the owned data and allocates a red node.
// Nothing stays allocated or copied if any step fails.
func (tree *rbTree[K, V]) newNode(key K, val V, own Ownership, g *rbGarbage[K, V]) (nodeIdx, error) {
	if tree.arena.isFull() {
		return nilIdx, infra.WrapErrorStack(ErrRBTreeFull)
	}

	var err error
	if own.isKeyOwned() {
		if key, err = tree.keyOwnership.copy(key); err != nil {
			return nilIdx, infra.WrapErrorStackWithMessage(multierr.Combine(ErrRBTreeKeyCopy, err), "[rbtree] create node")
		}
	}
	if own.isValOwned() {
		if val, err = tree.valOwnership.copy(val); err != nil {
			if own.isKeyOwned() {
				g.keys = append(g.keys, key)
			}
			return nilIdx, infra.WrapErrorStackWithMessage(multierr.Combine(ErrRBTreeValCopy, err), "[rbtree] create node")
		}
	}

	idx, ok := tree.arena.allocate()
	if !ok {
		g.detach(&rbNode[K, V]{key: key, val: val, owned: own})
		return nilIdx, infra.WrapErrorStack(ErrRBTreeFull)
	}
	node := tree.nd(idx)
	node.key, node.val = key, val
	node.color, node.owned = Red, own
	return idx, nil
}

// ir1: Uncle is red. Recolor parent and uncle to black, grandpa to red,
// then continue from grandpa.
// ir2: Uncle is black and z is the inner grandchild. Rotate the parent
// so z becomes the outer grandchild, then go to ir3.
// ir3: Uncle is black and z is the outer grandchild. Paint parent to black,
// grandpa to red and rotate the grandpa away from the parent.
// The mirror cases are covered by the parent side.
func (tree *rbTree[K, V]) insertRebalance(z nodeIdx) {
	for z != tree.root && tree.isRed(tree.nd(z).parent) {
		p := tree.nd(z).parent
		// Red parent is never the root, the grandpa exists.
		gp := tree.nd(p).parent
		ps := tree.sideOf(p)
		u := tree.nd(gp).links[ps.opposite()]

		if /* ir1 */ tree.isRed(u) {
			tree.nd(p).color = Black
			tree.nd(u).color = Black
			tree.nd(gp).color = Red
			z = gp
			tree.stats.IncreaseFixupCount(insertRecolor)
			continue
		}

		if /* ir2 */ tree.sideOf(z) != ps {
			z = p
			tree.rotate(z, ps)
			p = tree.nd(z).parent
			tree.stats.IncreaseFixupCount(insertInnerRotate)
		}

		/* ir3 */
		tree.nd(p).color = Black
		tree.nd(gp).color = Red
		tree.rotate(gp, ps.opposite())
		tree.stats.IncreaseFixupCount(insertOuterRotate)
	}
	tree.nd(tree.root).color = Black
}

// r1: z has at most one child. Splice the child into z's place.
// r2: z has two children. Borrow the successor (or the predecessor),
// which takes z's position and color; the borrowed node's own slot
// loses a node instead.
// A black removed color leaves a double black at the spliced child.
func (tree *rbTree[K, V]) removeNode(z nodeIdx) {
	bs := rightSide
	if tree.isRmBorrowPred {
		bs = leftSide
	}

	var (
		zn           = tree.nd(z)
		removedColor = zn.color
		child        nodeIdx
		parent       nodeIdx
	)
	if /* r1 */ !zn.hasTwoChildren() {
		if child = zn.left(); child == nilIdx {
			child = zn.right()
		}
		parent = zn.parent
		if child != nilIdx {
			tree.nd(child).parent = parent
		}
		tree.replaceChild(parent, z, child)
	} else /* r2 */ {
		y := tree.extreme(zn.links[bs], bs.opposite())
		yn := tree.nd(y)
		removedColor = yn.color
		child = yn.links[bs]
		if yn.parent == z {
			parent = y
		} else {
			parent = yn.parent
			tree.nd(parent).links[bs.opposite()] = child
			if child != nilIdx {
				tree.nd(child).parent = parent
			}
			yn.links[bs] = zn.links[bs]
			tree.nd(yn.links[bs]).parent = y
		}
		yn.parent = zn.parent
		tree.replaceChild(zn.parent, z, y)
		yn.links[bs.opposite()] = zn.links[bs.opposite()]
		tree.nd(yn.links[bs.opposite()]).parent = y
		yn.color = zn.color
	}

	if removedColor == Black {
		tree.removeRebalance(child, parent)
	}
}

// x carries an extra black, it may be the absent leaf, so its parent is
// passed in explicitly.
// rr1: Sibling is red. Recolor and rotate the parent toward x, the new
// sibling is black, go on to rr2~rr4.
// rr2: Sibling and both nephews are black. Paint sibling to red and move
// the extra black up to the parent.
// rr3: The far nephew is black, the near one is red. Rotate the sibling
// away from x so the far nephew becomes red, go to rr4.
// rr4: The far nephew is red. Sibling takes the parent color, parent and
// far nephew are painted to black, rotate the parent toward x. Done.
func (tree *rbTree[K, V]) removeRebalance(x, parent nodeIdx) {
	for x != tree.root && tree.isBlack(x) {
		pn := tree.nd(parent)
		s := leftSide
		if pn.links[leftSide] != x {
			s = rightSide
		}
		w := pn.links[s.opposite()]

		if /* rr1 */ tree.isRed(w) {
			tree.nd(w).color = Black
			pn.color = Red
			tree.rotate(parent, s)
			w = pn.links[s.opposite()]
			tree.stats.IncreaseFixupCount(removeRedSibling)
		}

		wn := tree.nd(w)
		if /* rr2 */ tree.isBlack(wn.links[leftSide]) && tree.isBlack(wn.links[rightSide]) {
			wn.color = Red
			x = parent
			parent = tree.nd(x).parent
			tree.stats.IncreaseFixupCount(removeRecolor)
			continue
		}

		if /* rr3 */ tree.isBlack(wn.links[s.opposite()]) {
			tree.nd(wn.links[s]).color = Black
			wn.color = Red
			tree.rotate(w, s.opposite())
			w = pn.links[s.opposite()]
			wn = tree.nd(w)
			tree.stats.IncreaseFixupCount(removeNearRed)
		}

		/* rr4 */
		wn.color = pn.color
		pn.color = Black
		tree.nd(wn.links[s.opposite()]).color = Black
		tree.rotate(parent, s)
		x = tree.root
		tree.stats.IncreaseFixupCount(removeFarRed)
	}
	if x != nilIdx {
		tree.nd(x).color = Black
	}
}

// unlink removes the node and recycles its slot.
// It returns the removed key and value.
func (tree *rbTree[K, V]) unlink(z nodeIdx, g *rbGarbage[K, V]) (K, V) {
	zn := tree.nd(z)
	key, val := zn.key, zn.val
	g.detach(zn)

	tree.removeNode(z)
	tree.arena.recycle(z)

	atomic.AddInt64(&tree.count, -1)
	tree.stats.RecordNodeCount(-1)
	tree.stats.IncreaseRemoveCount()
	return key, val
}

func (tree *rbTree[K, V]) Remove(key K) (val V, ok bool) {
	g := rbGarbage[K, V]{}
	tree.guard.lock()
	if z := tree.lookup(key); z != nilIdx {
		_, val = tree.unlink(z, &g)
		ok = true
	}
	tree.guard.unlock()
	tree.release(&g)
	return val, ok
}

func (tree *rbTree[K, V]) RemoveMin() (K, V, bool) {
	return tree.removeExtreme(leftSide)
}

func (tree *rbTree[K, V]) RemoveMax() (K, V, bool) {
	return tree.removeExtreme(rightSide)
}

func (tree *rbTree[K, V]) removeExtreme(s side) (key K, val V, ok bool) {
	g := rbGarbage[K, V]{}
	tree.guard.lock()
	if z := tree.extreme(tree.root, s); z != nilIdx {
		key, val = tree.unlink(z, &g)
		ok = true
	}
	tree.guard.unlock()
	tree.release(&g)
	return key, val, ok
}

func (tree *rbTree[K, V]) lookup(key K) nodeIdx {
	for aux := tree.root; aux != nilIdx; {
		node := tree.nd(aux)
		res := tree.kcmp(key, node.key)
		if res == 0 {
			return aux
		} else if res > 0 {
			aux = node.right()
		} else {
			aux = node.left()
		}
	}
	return nilIdx
}

func (tree *rbTree[K, V]) lookupRecursive(idx nodeIdx, key K) nodeIdx {
	if idx == nilIdx {
		return nilIdx
	}
	node := tree.nd(idx)
	res := tree.kcmp(key, node.key)
	if res == 0 {
		return idx
	} else if res > 0 {
		return tree.lookupRecursive(node.right(), key)
	}
	return tree.lookupRecursive(node.left(), key)
}

func (tree *rbTree[K, V]) IsExist(key K) bool {
	tree.guard.rlock()
	defer tree.guard.runlock()
	return tree.lookup(key) != nilIdx
}

func (tree *rbTree[K, V]) Search(key K) (val V, ok bool) {
	tree.guard.rlock()
	defer tree.guard.runlock()
	if idx := tree.lookup(key); idx != nilIdx {
		return tree.nd(idx).val, true
	}
	return val, false
}

func (tree *rbTree[K, V]) SearchRecursive(key K) (val V, ok bool) {
	tree.guard.rlock()
	defer tree.guard.runlock()
	if idx := tree.lookupRecursive(tree.root, key); idx != nilIdx {
		return tree.nd(idx).val, true
	}
	return val, false
}

// Min returns the first key in the tree order.
func (tree *rbTree[K, V]) Min() (K, V, bool) {
	return tree.first(leftSide)
}

// Max returns the last key in the tree order.
func (tree *rbTree[K, V]) Max() (K, V, bool) {
	return tree.first(rightSide)
}

func (tree *rbTree[K, V]) first(s side) (key K, val V, ok bool) {
	tree.guard.rlock()
	defer tree.guard.runlock()
	if idx := tree.extreme(tree.root, s); idx != nilIdx {
		node := tree.nd(idx)
		return node.key, node.val, true
	}
	return key, val, false
}

// Release removes all nodes. The owned data is released once the
// guard is dropped. The tree is still usable afterwards.
func (tree *rbTree[K, V]) Release() {
	g := rbGarbage[K, V]{}
	tree.guard.lock()
	size := atomic.SwapInt64(&tree.count, 0)
	tree.postorder(tree.root, func(idx nodeIdx) bool {
		g.detach(tree.nd(idx))
		return true
	})
	tree.root = nilIdx
	tree.arena.reset()
	tree.stats.RecordNodeCount(-size)
	tree.stats.IncreaseReleaseCount()
	tree.guard.unlock()

	if size > 0 {
		tree.logger.Debug("[rbtree] released", zap.Int64("nodes", size))
	}
	tree.release(&g)
}
