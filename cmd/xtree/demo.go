package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/benz9527/xtree/lib/infra"
	"github.com/benz9527/xtree/lib/tree"
)

var (
	defaultIntKeys    = []string{"10", "40", "30", "60", "90", "70", "20", "50", "80", "33", "56", "12", "53", "31", "55"}
	defaultStringKeys = []string{"fff", "1111", "3", "f432", "11fds1", "fdsfafdsa", "43grfdg", "igfdg"}
)

func intsCmd(opts *rootOptions) *cobra.Command {
	var removes []string
	cmd := &cobra.Command{
		Use:   "ints [keys...]",
		Short: "Run the demo with integer keys (borrowed)",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.newEnv(cmd)
			if err != nil {
				return err
			}
			rbtree := tree.NewRBTree[int64, int64](treeOpts[int64, int64](env, "ints")...)
			err = runDemo[int64](env, rbtree, parseInt, orDefault(args, defaultIntKeys), removes, tree.Borrowed)
			return multierr.Append(err, env.close())
		},
	}
	cmd.Flags().StringSliceVar(&removes, "remove", nil, "keys to remove after the insertion")
	return cmd
}

func stringsCmd(opts *rootOptions) *cobra.Command {
	var removes []string
	cmd := &cobra.Command{
		Use:   "strings [keys...]",
		Short: "Run the demo with string keys, the tree owns copies of them",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.newEnv(cmd)
			if err != nil {
				return err
			}
			copier := func(s string) (string, error) {
				return strings.Clone(s), nil
			}
			releaser := func(s string) {
				env.logger.DebugContext(env.ctx, "[xtree] free", zap.String("data", s))
			}
			rbOpts := append(treeOpts[string, string](env, "strings"),
				tree.WithRBTreeKeyOwnership[string, string](copier, releaser),
				tree.WithRBTreeValOwnership[string, string](copier, releaser),
			)
			rbtree := tree.NewRBTreeFunc[string, string](compareString, rbOpts...)
			err = runDemo[string](env, rbtree, parseString, orDefault(args, defaultStringKeys), removes, tree.OwnKeyVal)
			return multierr.Append(err, env.close())
		},
	}
	cmd.Flags().StringSliceVar(&removes, "remove", nil, "keys to remove after the insertion")
	return cmd
}

func treeOpts[K any, V any](env *demoEnv, name string) []tree.RBTreeOpt[K, V] {
	return []tree.RBTreeOpt[K, V]{
		tree.WithRBTreeLogger[K, V](env.logger.Named(name)),
		tree.WithRBTreePrintColor[K, V](env.color),
		tree.WithRBTreeStats[K, V](name, env.provider),
	}
}

func compareString(i, j string) int64 {
	return int64(strings.Compare(i, j))
}

func parseInt(s string) (int64, error) {
	i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, infra.WrapErrorStackWithMessage(err, "[xtree] invalid integer key "+strconv.Quote(s))
	}
	return i, nil
}

func parseString(s string) (string, error) {
	return s, nil
}

func orDefault(args, defaults []string) []string {
	if len(args) > 0 {
		return args
	}
	return defaults
}

// runDemo stores every key with itself as the value.
func runDemo[K any](
	env *demoEnv,
	rbtree tree.RBTree[K, K],
	parse func(string) (K, error),
	keys, removes []string,
	own tree.Ownership,
) error {
	defer rbtree.Release()

	for _, s := range keys {
		key, err := parse(s)
		if err != nil {
			return err
		}
		if err = rbtree.Insert(key, key, own); err != nil {
			return err
		}
	}
	env.logger.InfoContext(env.ctx, "[xtree] keys inserted", zap.Int64("len", rbtree.Len()))
	rbtree.Inorder(func(key K, val K) bool {
		fmt.Fprintf(env.out, "key: %v, val: %v\n", key, val)
		return true
	})
	if err := rbtree.Fprint(env.out); err != nil {
		return err
	}
	if err := tree.Validate[K, K](rbtree); err != nil {
		return err
	}

	for _, s := range removes {
		key, err := parse(s)
		if err != nil {
			return err
		}
		if _, ok := rbtree.Remove(key); !ok {
			env.logger.Warn("[xtree] key not found", zap.String("key", s))
			continue
		}
		fmt.Fprintf(env.out, "remove key: %v, len: %d\n", key, rbtree.Len())
		if err = rbtree.Fprint(env.out); err != nil {
			return err
		}
		if err = tree.Validate[K, K](rbtree); err != nil {
			return err
		}
	}
	return nil
}
