package tree

import (
	"io"
)

// go install golang.org/x/tools/cmd/stringer@latest

//go:generate stringer -type=RBColor
type RBColor uint8

const (
	Black RBColor = iota
	Red
)

//go:generate stringer -type=RBDirection
type RBDirection int8

const (
	Left RBDirection = -1 + iota
	Root
	Right
)

// Ownership decides whether the key or value of a single insert is
// copied into the tree (owned) or only referenced (borrowed).
// Owned data is released by the tree exactly once, when its node is
// removed, its value is replaced or the whole tree is released.
type Ownership uint8

const (
	Borrowed Ownership = 0
	OwnKey   Ownership = 1 << (iota - 1)
	OwnVal
	OwnKeyVal = OwnKey | OwnVal
)

func (o Ownership) isKeyOwned() bool { return o&OwnKey != 0 }
func (o Ownership) isValOwned() bool { return o&OwnVal != 0 }

// Copier copies the data into tree owned storage.
// A returned error aborts the insert and leaves the tree unchanged.
type Copier[T any] func(T) (T, error)

// Releaser releases tree owned storage.
type Releaser[T any] func(T)

// RBNode is a read only view of a tree node.
// The view is only valid until the next mutation of the tree.
type RBNode[K any, V any] interface {
	Key() K
	Val() V
	Color() RBColor
	Direction() RBDirection
	IsKeyOwned() bool
	IsValOwned() bool
	Left() RBNode[K, V]
	Right() RBNode[K, V]
	Parent() RBNode[K, V]
}

type RBTree[K any, V any] interface {
	Len() int64
	Root() RBNode[K, V]
	// Insert adds the key/value or replaces the value of an existing key.
	Insert(key K, val V, own ...Ownership) error
	// InsertIfAbsent returns ErrRBTreeKeyExists instead of replacing.
	InsertIfAbsent(key K, val V, own ...Ownership) error
	IsExist(key K) bool
	Search(key K) (V, bool)
	SearchRecursive(key K) (V, bool)
	Min() (K, V, bool)
	Max() (K, V, bool)
	// Remove unlinks the key. An owned value has already been passed
	// to the value releaser when it is returned.
	Remove(key K) (V, bool)
	RemoveMin() (K, V, bool)
	RemoveMax() (K, V, bool)
	// Traversals stop once fn returns false.
	Preorder(fn func(key K, val V) bool)
	Inorder(fn func(key K, val V) bool)
	Postorder(fn func(key K, val V) bool)
	Levelorder(fn func(key K, val V) bool)
	Foreach(action func(idx int64, color RBColor, key K, val V) bool)
	Print()
	Fprint(w io.Writer) error
	Release()
}
