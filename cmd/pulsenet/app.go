package main

import (
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/katalvlaran/pulsenet/config"
)

// newApp builds the pulsenet command-line application: the four selection
// axes (phase, scenario, phase-1 strategy, phase-2 strategy), the required
// topology/workload input flags, and the tunable-constant flag group backing
// config.Config.
func newApp(log *logrus.Logger) *cli.App {
	app := cli.NewApp()
	app.Name = "pulsenet"
	app.Usage = "admit and schedule periodic network jobs onto a capacitated graph"
	app.Flags = []cli.Flag{
		&cli.StringFlag{Name: "topology", Required: true, Usage: "path to a JSON topology record file"},
		&cli.StringFlag{Name: "workload", Required: true, Usage: "path to a JSON workload/job file"},
		&cli.IntFlag{Name: "phase", Value: 2, Usage: "run admission only (1) or admission + traffic engineering (2)"},
		&cli.StringFlag{Name: "scenario", Value: "fcfs", Usage: "job ordering: fcfs or sjf"},
		&cli.StringFlag{Name: "phase1", Value: "ours", Usage: "admission strategy: ours, bate, aequitas, seawall"},
		&cli.StringFlag{Name: "phase2", Value: "ours", Usage: "traffic-engineering strategy: ours, greedy, ncflow, igr"},

		&cli.Int64Flag{Name: "epoch-millis", Value: 10, Usage: "time discretisation unit, in ms"},
		&cli.Int64Flag{Name: "cycle-precision", Value: 100, Usage: "job cycle rounding precision, in epochs"},
		&cli.Int64Flag{Name: "max-overlap-cycle", Value: 10000, Usage: "superposition cycle cap, in epochs"},
		&cli.Int64Flag{Name: "time-precision", Value: 100, Usage: "offset-sweep step size, in epochs"},
		&cli.Int64Flag{Name: "schedule-interval", Value: 10000, Usage: "periodic re-optimisation horizon, in epochs"},
		&cli.IntFlag{Name: "max-adjust-calls", Value: 10, Usage: "local-adjustment call budget per job"},
		&cli.IntFlag{Name: "max-offset-trials", Value: 1000, Usage: "offset-sweep trial budget per job"},
		&cli.IntFlag{Name: "max-igr-iterations", Value: 100, Usage: "IGR growth-round cap"},
		&cli.Float64Flag{Name: "ncflow-util-threshold", Value: 0.95, Usage: "NCFlow cleanup-pass trigger, in (0, 1]"},
	}
	app.Action = func(ctx *cli.Context) error {
		return runPulsenet(ctx, log)
	}
	return app
}

// configFromFlags builds a config.Config from the tunable-constant flag
// group, applying only the options whose flags were actually set so
// config.New's defaults still govern every unset knob.
func configFromFlags(ctx *cli.Context) *config.Config {
	var opts []config.Option
	if ctx.IsSet("epoch-millis") {
		opts = append(opts, config.WithEpochMillis(ctx.Int64("epoch-millis")))
	}
	if ctx.IsSet("cycle-precision") {
		opts = append(opts, config.WithCyclePrecision(ctx.Int64("cycle-precision")))
	}
	if ctx.IsSet("max-overlap-cycle") {
		opts = append(opts, config.WithMaxOverlapCycle(ctx.Int64("max-overlap-cycle")))
	}
	if ctx.IsSet("time-precision") {
		opts = append(opts, config.WithTimePrecision(ctx.Int64("time-precision")))
	}
	if ctx.IsSet("schedule-interval") {
		opts = append(opts, config.WithScheduleInterval(ctx.Int64("schedule-interval")))
	}
	if ctx.IsSet("max-adjust-calls") {
		opts = append(opts, config.WithMaxAdjustCallsPerJob(ctx.Int("max-adjust-calls")))
	}
	if ctx.IsSet("max-offset-trials") {
		opts = append(opts, config.WithMaxOffsetTrialsPerJob(ctx.Int("max-offset-trials")))
	}
	if ctx.IsSet("max-igr-iterations") {
		opts = append(opts, config.WithMaxIGRIterations(ctx.Int("max-igr-iterations")))
	}
	if ctx.IsSet("ncflow-util-threshold") {
		opts = append(opts, config.WithNCFlowUtilThreshold(ctx.Float64("ncflow-util-threshold")))
	}
	return config.New(opts...)
}
