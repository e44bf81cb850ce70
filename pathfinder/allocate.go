// File: allocate.go
// Role: AllocateDemandBandwidth — greedy multi-path bandwidth spreading,
// grounded on original_source/src/network/path_finder.py:
// allocate_demand_bandwidth.
package pathfinder

// AllocateDemandBandwidth fills demand.Bandwidth across up to maxPaths
// enumerated paths greedily: for each path, compute residual capacity as
// the minimum over its links of (capacity - already-allocated-on-this-
// Finder), allocate min(remaining demand, residual), and subtract from the
// Finder's running per-link allocation. On failure to fully satisfy the
// demand, every increment made during this call is rolled back atomically
// and nil is returned.
func (f *Finder) AllocateDemandBandwidth(demand Demand, maxPaths int) []PathAllocation {
	remaining := demand.Bandwidth
	var result []PathAllocation

	paths := f.FindAllPaths(demand.Src, demand.Dst, maxPaths)

	for _, path := range paths {
		if remaining <= 0 {
			break
		}

		residual := posInf
		for _, link := range path {
			used := f.linkAllocated[link.ID]
			if avail := link.Capacity - used; avail < residual {
				residual = avail
			}
		}
		if residual <= 0 {
			continue
		}

		alloc := remaining
		if residual < alloc {
			alloc = residual
		}
		for _, link := range path {
			f.linkAllocated[link.ID] += alloc
		}

		result = append(result, PathAllocation{Path: path, Bandwidth: alloc})
		remaining -= alloc
	}

	if remaining > 1e-9 {
		// Roll back every increment made during this call.
		for _, a := range result {
			for _, link := range a.Path {
				f.linkAllocated[link.ID] -= a.Bandwidth
			}
		}
		return nil
	}

	return result
}

// ReleaseAllocation reverses a previously returned allocation, restoring
// the Finder's running per-link allocation state, for callers that need to
// roll back a demand after the fact.
func (f *Finder) ReleaseAllocation(allocations []PathAllocation) {
	for _, a := range allocations {
		for _, link := range a.Path {
			f.linkAllocated[link.ID] -= a.Bandwidth
		}
	}
}
