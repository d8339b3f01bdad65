package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap/zapcore"

	"github.com/benz9527/xtree/observability"
	"github.com/benz9527/xtree/xlog"
)

// demoCtxKey carries the running demo name into every log entry.
const demoCtxKey = "demo"

type rootOptions struct {
	noColor  bool
	logLevel string
	stats    string
}

// demoEnv carries what every demo command shares.
type demoEnv struct {
	ctx      context.Context
	out      io.Writer
	logger   xlog.XLogger
	provider metric.MeterProvider
	color    bool
	shutdown func(ctx context.Context) error
}

func (env *demoEnv) close() error {
	_ = env.logger.Sync()
	if env.shutdown == nil {
		return nil
	}
	return env.shutdown(env.ctx)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:   "xtree",
		Short: "Red-black tree demo",
		Long: `xtree inserts the keys into a red-black tree, prints the in-order
walk and the tree shape, then removes the requested keys one by one.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "INFO", "log level, DEBUG|INFO|WARN|ERROR")
	rootCmd.PersistentFlags().StringVar(&opts.stats, "stats", "", "dump the tree metrics after the run, console|prometheus")

	rootCmd.AddCommand(intsCmd(opts))
	rootCmd.AddCommand(stringsCmd(opts))
	return rootCmd
}

func (opts *rootOptions) newEnv(cmd *cobra.Command) (*demoEnv, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	env := &demoEnv{
		ctx: context.WithValue(ctx, xlog.ContextKey(demoCtxKey), cmd.Name()),
		out: cmd.OutOrStdout(),
		logger: xlog.NewXLogger(
			xlog.WithXLoggerWriter(zapcore.AddSync(cmd.ErrOrStderr())),
			xlog.WithXLoggerEncoder(xlog.PlainText),
			xlog.WithXLoggerLevelText(opts.logLevel),
			xlog.WithXLoggerName("xtree"),
			xlog.WithXLoggerContextFieldExtract(demoCtxKey),
		),
		provider: noop.NewMeterProvider(),
		color:    !opts.noColor,
	}

	undo, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		env.logger.Logf(zapcore.DebugLevel, format, args...)
	}))
	if err != nil {
		env.logger.Warn("[xtree] set GOMAXPROCS failed")
	}

	if len(opts.stats) <= 0 {
		env.shutdown = func(context.Context) error {
			undo()
			return nil
		}
		return env, nil
	}

	exporter, err := observability.NewMetricsExporter(observability.MetricsFormat(opts.stats), env.out)
	if err != nil {
		undo()
		return nil, err
	}
	if err = observability.StartAppStats(cmd.Name(), exporter.Provider()); err != nil {
		env.logger.ErrorContext(env.ctx, err, "[xtree] start app stats failed")
	}
	env.provider = exporter.Provider()
	env.shutdown = func(ctx context.Context) error {
		defer undo()
		return exporter.Shutdown(ctx)
	}
	return env, nil
}
