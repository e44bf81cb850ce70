package main

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/katalvlaran/pulsenet/config"
	"github.com/katalvlaran/pulsenet/schedule"
	"github.com/katalvlaran/pulsenet/topology"
)

// topologyRecordInput is one parsed topology row, in the wire field names
// external tooling produces: a directed link from a_node_id to z_node_id,
// with optional delay/node_type passed through but never consumed.
type topologyRecordInput struct {
	ANodeID  int64   `json:"a_node_id"`
	ZNodeID  int64   `json:"z_node_id"`
	Capacity float64 `json:"capacity"`
	Delay    float64 `json:"delay"`
	NodeType string  `json:"node_type"`
}

// demandInput is one workload within a jobInput, in millisecond wire units.
type demandInput struct {
	SrcRank        int64   `json:"src_rank"`
	DstRank        int64   `json:"dst_rank"`
	StartTimestamp int64   `json:"start_timestamp"`
	EndTimestamp   int64   `json:"end_timestamp"`
	Bandwidth      float64 `json:"bandwidth"`
}

// jobInput is one periodic job in millisecond wire units. Demands accepts
// either the "demands" or "workloads" key, matching either producer's
// convention for the same shape.
type jobInput struct {
	JobID     int64         `json:"job_id"`
	CycleMs   int64         `json:"cycle"`
	Demands   []demandInput `json:"demands"`
	Workloads []demandInput `json:"workloads"`
}

func (j jobInput) demands() []demandInput {
	if len(j.Demands) > 0 {
		return j.Demands
	}
	return j.Workloads
}

// loadTopology reads a JSON array of topologyRecordInput from path and
// builds a Graph. A missing file is reported as MissingInputFile so the
// caller can map it to the required non-zero exit code.
func loadTopology(path string) (*topology.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(MissingInputFile{Flag: "topology", Path: path})
	}

	var rows []topologyRecordInput
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, errors.Wrapf(err, "pulsenet: parsing topology file %q", path)
	}

	records := make([]topology.Record, len(rows))
	for i, r := range rows {
		records[i] = topology.Record{
			ANode: r.ANodeID, ZNode: r.ZNodeID,
			Capacity: r.Capacity, Delay: r.Delay, NodeType: r.NodeType,
		}
	}

	g, err := topology.BuildGraph(records)
	if err != nil {
		return nil, errors.Wrapf(err, "pulsenet: building graph from %q", path)
	}
	return g, nil
}

// loadWorkload reads a JSON array of jobInput from path and converts every
// millisecond timestamp to epochs via cfg, per the ms-to-epoch conversion
// rule: start floors, end and cycle ceiling.
func loadWorkload(path string, cfg *config.Config) ([]schedule.Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(MissingInputFile{Flag: "workload", Path: path})
	}

	var rows []jobInput
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, errors.Wrapf(err, "pulsenet: parsing workload file %q", path)
	}

	jobs := make([]schedule.Job, len(rows))
	for i, jr := range rows {
		demands := jr.demands()
		workloads := make([]schedule.Workload, len(demands))
		for k, d := range demands {
			workloads[k] = schedule.Workload{
				Src:       d.SrcRank,
				Dst:       d.DstRank,
				StartTime: cfg.EpochsFromMillis(d.StartTimestamp),
				EndTime:   cfg.EpochsFromMillisCeil(d.EndTimestamp),
				Bandwidth: d.Bandwidth,
			}
		}
		jobs[i] = schedule.Job{
			ID:        jr.JobID,
			Cycle:     cfg.EpochsFromMillisCeil(jr.CycleMs),
			Workloads: workloads,
		}
	}
	return jobs, nil
}
