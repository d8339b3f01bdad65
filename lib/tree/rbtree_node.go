package tree

// side indexes the children links.
type side uint8

const (
	leftSide side = iota
	rightSide
)

func (s side) opposite() side {
	return s ^ 1
}

func (s side) direction() RBDirection {
	if s == leftSide {
		return Left
	}
	return Right
}

type rbNode[K any, V any] struct {
	key    K
	val    V
	parent nodeIdx
	links  [2]nodeIdx // left, right
	color  RBColor
	owned  Ownership
}

func (node *rbNode[K, V]) left() nodeIdx {
	return node.links[leftSide]
}

func (node *rbNode[K, V]) right() nodeIdx {
	return node.links[rightSide]
}

func (node *rbNode[K, V]) hasTwoChildren() bool {
	return node.links[leftSide] != nilIdx && node.links[rightSide] != nilIdx
}

var _ RBNode[int, int] = (*rbNodeRef[int, int])(nil)

// rbNodeRef is the exported view of an arena slot.
type rbNodeRef[K any, V any] struct {
	tree *rbTree[K, V]
	idx  nodeIdx
}

func (tree *rbTree[K, V]) nodeRef(idx nodeIdx) RBNode[K, V] {
	if idx == nilIdx {
		return nil
	}
	return &rbNodeRef[K, V]{tree: tree, idx: idx}
}

func (ref *rbNodeRef[K, V]) node() *rbNode[K, V] {
	return ref.tree.arena.at(ref.idx)
}

func (ref *rbNodeRef[K, V]) Key() K {
	return ref.node().key
}

func (ref *rbNodeRef[K, V]) Val() V {
	return ref.node().val
}

func (ref *rbNodeRef[K, V]) Color() RBColor {
	return ref.node().color
}

func (ref *rbNodeRef[K, V]) Direction() RBDirection {
	if ref.node().parent == nilIdx {
		return Root
	}
	return ref.tree.sideOf(ref.idx).direction()
}

func (ref *rbNodeRef[K, V]) IsKeyOwned() bool {
	return ref.node().owned.isKeyOwned()
}

func (ref *rbNodeRef[K, V]) IsValOwned() bool {
	return ref.node().owned.isValOwned()
}

func (ref *rbNodeRef[K, V]) Left() RBNode[K, V] {
	return ref.tree.nodeRef(ref.node().left())
}

func (ref *rbNodeRef[K, V]) Right() RBNode[K, V] {
	return ref.tree.nodeRef(ref.node().right())
}

func (ref *rbNodeRef[K, V]) Parent() RBNode[K, V] {
	return ref.tree.nodeRef(ref.node().parent)
}
