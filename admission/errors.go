package admission

import "errors"

// ErrInsufficientCapacity indicates direct deployment failed: some link on
// some workload's tunnel cannot absorb the workload's bandwidth on top of
// its current peak.
var ErrInsufficientCapacity = errors.New("admission: insufficient residual capacity for direct deployment")

// ErrBudgetExhausted indicates local adjustment exceeded its per-job
// link_adjust call budget before finding a feasible offset.
var ErrBudgetExhausted = errors.New("admission: local adjustment call budget exhausted")

// ErrNoPath indicates the path finder could not connect a workload's
// endpoints at all.
var ErrNoPath = errors.New("admission: no path exists for a workload's endpoints")
