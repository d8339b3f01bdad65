package tree

import (
	"strings"

	"github.com/fatih/color"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/benz9527/xtree/lib/infra"
	"github.com/benz9527/xtree/xlog"
)

type ownership[T any] struct {
	copier   Copier[T]
	releaser Releaser[T]
}

func (o ownership[T]) copy(obj T) (T, error) {
	if o.copier == nil {
		return obj, nil
	}
	return o.copier(obj)
}

func (o ownership[T]) release(obj T) {
	if o.releaser == nil {
		return
	}
	o.releaser(obj)
}

type RBTreeOpt[K any, V any] func(*rbTree[K, V])

// WithRBTreeComparator replaces the key comparator.
// Nil is ignored.
func WithRBTreeComparator[K any, V any](cmp infra.KeyComparator[K]) RBTreeOpt[K, V] {
	return func(tree *rbTree[K, V]) {
		if cmp != nil {
			tree.kcmp = cmp
		}
	}
}

// WithRBTreeKeyOwnership sets how an owned key is copied and released.
// Missing callbacks fall back to identity copy and no-op release.
func WithRBTreeKeyOwnership[K any, V any](copier Copier[K], releaser Releaser[K]) RBTreeOpt[K, V] {
	return func(tree *rbTree[K, V]) {
		tree.keyOwnership = ownership[K]{copier: copier, releaser: releaser}
	}
}

// WithRBTreeValOwnership sets how an owned value is copied and released.
func WithRBTreeValOwnership[K any, V any](copier Copier[V], releaser Releaser[V]) RBTreeOpt[K, V] {
	return func(tree *rbTree[K, V]) {
		tree.valOwnership = ownership[V]{copier: copier, releaser: releaser}
	}
}

// WithRBTreeThreadSafe guards the tree by a single reader-writer lock.
// Callbacks run while the lock is held must not re-enter the tree.
func WithRBTreeThreadSafe[K any, V any]() RBTreeOpt[K, V] {
	return func(tree *rbTree[K, V]) {
		tree.guard = &rwGuard{}
	}
}

func WithRBTreeDesc[K any, V any]() RBTreeOpt[K, V] {
	return func(tree *rbTree[K, V]) {
		tree.isDesc = true
	}
}

// WithRBTreeRemoveBorrowPred removes a node with two children by
// borrowing its in-order predecessor instead of the successor.
func WithRBTreeRemoveBorrowPred[K any, V any]() RBTreeOpt[K, V] {
	return func(tree *rbTree[K, V]) {
		tree.isRmBorrowPred = true
	}
}

func WithRBTreeInitCap[K any, V any](capacity int) RBTreeOpt[K, V] {
	return func(tree *rbTree[K, V]) {
		tree.arena = newRBArena[K, V](capacity)
	}
}

// WithRBTreeStats enables the otel metrics. The global meter provider
// is used if provider is absent.
func WithRBTreeStats[K any, V any](name string, provider ...metric.MeterProvider) RBTreeOpt[K, V] {
	return func(tree *rbTree[K, V]) {
		var mp metric.MeterProvider
		if len(provider) > 0 && provider[0] != nil {
			mp = provider[0]
		} else {
			mp = otel.GetMeterProvider()
		}
		if name = strings.TrimSpace(name); len(name) == 0 {
			name = "default"
		}
		tree.stats = newRBTreeStats(name, mp)
	}
}

func WithRBTreeLogger[K any, V any](logger xlog.XLogger) RBTreeOpt[K, V] {
	return func(tree *rbTree[K, V]) {
		if logger != nil {
			tree.logger = logger
		}
	}
}

// WithRBTreePrintColor forces the colored output of Print/Fprint on or off.
// By default, it follows the terminal detection of fatih/color.
func WithRBTreePrintColor[K any, V any](enabled bool) RBTreeOpt[K, V] {
	return func(tree *rbTree[K, V]) {
		tree.printColor = enabled
	}
}

func newRBTree[K any, V any](cmp infra.KeyComparator[K], opts ...RBTreeOpt[K, V]) *rbTree[K, V] {
	tree := &rbTree[K, V]{
		kcmp:           cmp,
		guard:          noopGuard{},
		logger:         xlog.NopXLogger(),
		printColor:     !color.NoColor,
		isDesc:         false,
		isRmBorrowPred: false,
	}

	for _, o := range opts {
		if o != nil {
			o(tree)
		}
	}

	if tree.kcmp == nil {
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] nil key comparator")
	}
	if tree.isDesc {
		tree.kcmp = infra.ReverseComparator[K](tree.kcmp)
	}
	if tree.arena == nil {
		tree.arena = newRBArena[K, V](0)
	}
	return tree
}

// NewRBTree creates a tree ordered by the natural key order.
func NewRBTree[K infra.OrderedKey, V any](opts ...RBTreeOpt[K, V]) RBTree[K, V] {
	return newRBTree[K, V](infra.DefaultComparator[K], opts...)
}

// NewRBTreeFunc creates a tree ordered by cmp.
func NewRBTreeFunc[K any, V any](cmp infra.KeyComparator[K], opts ...RBTreeOpt[K, V]) RBTree[K, V] {
	if cmp == nil {
		panic("[rbtree] nil key comparator")
	}
	return newRBTree[K, V](cmp, opts...)
}
