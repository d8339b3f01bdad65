package tree

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	RBTreeStatsName = "xtree/rbtree"
)

var (
	opInsertAttrs    = metric.WithAttributeSet(attribute.NewSet(attribute.String("rbtree.op", "insert")))
	opReplaceAttrs   = metric.WithAttributeSet(attribute.NewSet(attribute.String("rbtree.op", "replace")))
	opRemoveAttrs    = metric.WithAttributeSet(attribute.NewSet(attribute.String("rbtree.op", "remove")))
	opReleaseAttrs   = metric.WithAttributeSet(attribute.NewSet(attribute.String("rbtree.op", "release")))
	leftRotateAttrs  = metric.WithAttributeSet(attribute.NewSet(attribute.String("rbtree.rotate", "left")))
	rightRotateAttrs = metric.WithAttributeSet(attribute.NewSet(attribute.String("rbtree.rotate", "right")))
)

type rbFixupCase string

const (
	insertRecolor     rbFixupCase = "insert.recolor"      // uncle is red
	insertInnerRotate rbFixupCase = "insert.inner.rotate" // uncle is black, inner child
	insertOuterRotate rbFixupCase = "insert.outer.rotate" // uncle is black, outer child
	removeRedSibling  rbFixupCase = "remove.red.sibling"
	removeRecolor     rbFixupCase = "remove.recolor"
	removeNearRed     rbFixupCase = "remove.near.red"
	removeFarRed      rbFixupCase = "remove.far.red"
)

type rbTreeStats struct {
	nodeCount   metric.Int64UpDownCounter
	opCount     metric.Int64Counter
	rotateCount metric.Int64Counter
	fixupCount  metric.Int64Counter
}

func (stats *rbTreeStats) RecordNodeCount(delta int64) {
	if stats == nil || delta == 0 {
		return
	}
	stats.nodeCount.Add(context.Background(), delta)
}

func (stats *rbTreeStats) IncreaseInsertCount(replaced bool) {
	if stats == nil {
		return
	}
	if replaced {
		stats.opCount.Add(context.Background(), 1, opReplaceAttrs)
		return
	}
	stats.opCount.Add(context.Background(), 1, opInsertAttrs)
}

func (stats *rbTreeStats) IncreaseRemoveCount() {
	if stats == nil {
		return
	}
	stats.opCount.Add(context.Background(), 1, opRemoveAttrs)
}

func (stats *rbTreeStats) IncreaseReleaseCount() {
	if stats == nil {
		return
	}
	stats.opCount.Add(context.Background(), 1, opReleaseAttrs)
}

func (stats *rbTreeStats) IncreaseRotateCount(s side) {
	if stats == nil {
		return
	}
	if s == leftSide {
		stats.rotateCount.Add(context.Background(), 1, leftRotateAttrs)
		return
	}
	stats.rotateCount.Add(context.Background(), 1, rightRotateAttrs)
}

func (stats *rbTreeStats) IncreaseFixupCount(c rbFixupCase) {
	if stats == nil {
		return
	}
	stats.fixupCount.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("rbtree.fixup", string(c))),
	)
}

func newRBTreeStats(name string, provider metric.MeterProvider) *rbTreeStats {
	meterName := fmt.Sprintf("%s/%s", RBTreeStatsName, name)
	meter := provider.Meter(meterName)
	return &rbTreeStats{
		nodeCount: lo.Must[metric.Int64UpDownCounter](meter.Int64UpDownCounter(
			"rbtree.node.count",
			metric.WithDescription("The number of nodes in the rbtree."),
		)),
		opCount: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"rbtree.op.count",
			metric.WithDescription("The number of rbtree mutations, by operation."),
		)),
		rotateCount: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"rbtree.rotate.count",
			metric.WithDescription("The number of rbtree rotations, by direction."),
		)),
		fixupCount: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"rbtree.fixup.count",
			metric.WithDescription("The number of rbtree rebalance cases hit, by case."),
		)),
	}
}
