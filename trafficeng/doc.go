// Package trafficeng implements Phase 2 of the pipeline: given the set of
// jobs Phase 1 admitted, re-allocate bandwidth on their already-chosen
// tunnels to track actual measured or predicted demand, without changing
// which tunnel a workload uses or whether a job is admitted.
//
// Four variants are provided, one per original_source/src/phase2 file:
//
//   - Ours (ours.go): closed-form per-workload allocation, grounded on
//     traffic_schedule.py:update_schedule. The source frames this as a
//     linear program, but every constraint touches exactly one decision
//     variable (update_schedule's own comment: "为了简化，不考虑更新流之间的重叠"
//     — for simplicity, overlap between updated flows is not considered),
//     so the optimum decomposes to alloc = min(demand, bottleneck) with no
//     solver required.
//   - Greedy (greedy.go): a single pass over jobs in slice order, each
//     workload taking min(demand, remaining link headroom), grounded on
//     greedy.py:greedy_alloc.
//   - NCFlow (ncflow.go): priority-weighted allocation with a per-workload
//     minimum guarantee, followed by a utilisation-threshold cleanup pass
//     that trims the lowest-priority contributors on overloaded links.
//     Grounded on ncflow.py:update_schedule/get_bottleneck_links.
//   - IGR (igr.go): table-carving (demand-proportional path-weight budget)
//     plus bounded iterative growth toward each workload's bottleneck,
//     falling back to Greedy's allocation for any workload left under
//     cfg.IGRFallbackFraction of its demand.
//     Grounded on igr.py:table_carving/igr_alloc.
package trafficeng
