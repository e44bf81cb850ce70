package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/katalvlaran/pulsenet/admission"
	"github.com/katalvlaran/pulsenet/config"
	"github.com/katalvlaran/pulsenet/resultemit"
	"github.com/katalvlaran/pulsenet/schedule"
	"github.com/katalvlaran/pulsenet/scenario"
	"github.com/katalvlaran/pulsenet/topology"
	"github.com/katalvlaran/pulsenet/trafficeng"
)

// newController builds the Phase-1 admission controller named by strategy.
func newController(strategy string, cfg *config.Config, g *topology.Graph) (admission.Controller, error) {
	switch strategy {
	case "ours":
		return admission.NewOurs(cfg, g), nil
	case "bate":
		return admission.NewBATE(cfg, g), nil
	case "aequitas":
		return admission.NewAequitas(cfg, g), nil
	case "seawall":
		return admission.NewSeawall(cfg, g), nil
	default:
		return nil, UnknownStrategy{Flag: "phase1", Value: strategy}
	}
}

// newEngineer builds the Phase-2 traffic engineer named by strategy.
func newEngineer(strategy string, cfg *config.Config) (trafficeng.Engineer, error) {
	switch strategy {
	case "ours":
		return trafficeng.NewOurs(cfg), nil
	case "greedy":
		return trafficeng.NewGreedy(cfg), nil
	case "ncflow":
		return trafficeng.NewNCFlow(cfg), nil
	case "igr":
		return trafficeng.NewIGR(cfg), nil
	default:
		return nil, UnknownStrategy{Flag: "phase2", Value: strategy}
	}
}

// newScenario resolves the --scenario flag value to a scenario.Scenario.
func newScenario(value string) (scenario.Scenario, error) {
	switch value {
	case "fcfs":
		return scenario.FCFS, nil
	case "sjf":
		return scenario.SJF, nil
	default:
		return 0, UnknownStrategy{Flag: "scenario", Value: value}
	}
}

// runPulsenet is the cli.App Action: load inputs, run admission and
// (for phase 2) traffic engineering, and print the result streams. It
// returns a plain error; runApp maps that to an exit code.
func runPulsenet(ctx *cli.Context, log *logrus.Logger) error {
	cfg := configFromFlags(ctx)

	log.WithField("path", ctx.String("topology")).Info("loading topology")
	g, err := loadTopology(ctx.String("topology"))
	if err != nil {
		return err
	}

	log.WithField("path", ctx.String("workload")).Info("loading workload")
	jobs, err := loadWorkload(ctx.String("workload"), cfg)
	if err != nil {
		return err
	}

	sc, err := newScenario(ctx.String("scenario"))
	if err != nil {
		return err
	}
	ordered := scenario.Order(jobs, sc)

	controller, err := newController(ctx.String("phase1"), cfg, g)
	if err != nil {
		return err
	}

	admitted := 0
	for _, job := range ordered {
		if err := job.Validate(); err != nil {
			log.WithError(err).WithField("job_id", job.ID).Warn("rejecting malformed job")
			continue
		}
		sched := controller.ScheduleJob(job)
		if sched.Admitted() {
			admitted++
		}
	}
	schedules := toScheduleMap(controller.Emit())
	log.WithFields(logrus.Fields{"admitted": admitted, "total": len(ordered)}).Info("phase 1 complete")

	fmt.Println(resultemit.FormatAdmissionSummary(admitted, len(ordered)))

	if ctx.Int("phase") >= 2 {
		engineer, err := newEngineer(ctx.String("phase2"), cfg)
		if err != nil {
			return err
		}
		totalFlow, totalDemand := engineer.Allocate(ordered, schedules, g)
		log.WithFields(logrus.Fields{"flow": totalFlow, "demand": totalDemand}).Info("phase 2 complete")

		if err := trafficeng.CheckFeasible(ordered, schedules, g, cfg); err != nil {
			log.WithError(err).Error("phase 2 result violates link capacity")
			return err
		}

		utils := resultemit.BuildLinkUtilizations(ordered, schedules, g, cfg)
		fmt.Println(resultemit.FormatLinkUtilizationStream(utils))
	}

	results := resultemit.BuildJobResults(ordered, schedules)
	data, err := resultemit.MarshalJobResults(results)
	if err != nil {
		return err
	}
	fmt.Println(string(data))

	return nil
}

func toScheduleMap(schedules []*schedule.JobSchedule) map[int64]*schedule.JobSchedule {
	out := make(map[int64]*schedule.JobSchedule, len(schedules))
	for _, s := range schedules {
		out[s.JobID] = s
	}
	return out
}
