package tree

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/samber/lo"
)

const (
	printBranch = "├── "
	printLast   = "└── "
	printPipe   = "│   "
	printSpace  = "    "
	printNull   = "(null)"
)

type printFrame struct {
	idx     nodeIdx
	depth   int
	hasNext bool // a sibling line follows
}

// Print writes the tree to the colorable stdout.
func (tree *rbTree[K, V]) Print() {
	_ = tree.Fprint(color.Output)
}

// Fprint renders the tree like tree(1), right child first:
//
//	2:black
//	├── 3:red
//	└── 1:red
//
// A missing child is printed as (null) only if its sibling exists.
func (tree *rbTree[K, V]) Fprint(w io.Writer) error {
	red, black := color.New(color.FgRed), color.New(color.FgWhite)
	if tree.printColor {
		red.EnableColor()
		black.EnableColor()
	} else {
		red.DisableColor()
		black.DisableColor()
	}

	var sb strings.Builder
	tree.guard.rlock()
	var (
		stack = []printFrame{{idx: tree.root}}
		flags = make([]bool, 0, 32)
	)
	for size := len(stack); size > 0; size = len(stack) {
		f := stack[size-1]
		stack = stack[:size-1]
		if f.depth > 0 {
			flags = append(flags[:f.depth-1], f.hasNext)
			for i := 0; i < f.depth-1; i++ {
				sb.WriteString(lo.Ternary(flags[i], printPipe, printSpace))
			}
			sb.WriteString(lo.Ternary(f.hasNext, printBranch, printLast))
		}
		if f.idx == nilIdx {
			sb.WriteString(printNull)
			sb.WriteByte('\n')
			continue
		}

		node := tree.nd(f.idx)
		if node.color == Red {
			sb.WriteString(red.Sprintf("%v:red", node.key))
		} else {
			sb.WriteString(black.Sprintf("%v:black", node.key))
		}
		sb.WriteByte('\n')
		if node.left() == nilIdx && node.right() == nilIdx {
			continue
		}
		stack = append(stack,
			printFrame{idx: node.left(), depth: f.depth + 1},
			printFrame{idx: node.right(), depth: f.depth + 1, hasNext: true},
		)
	}
	tree.guard.runlock()

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("[rbtree] print failed: %w", err)
	}
	return nil
}
