// Package peakengine implements the periodic-traffic peak-bandwidth engine
// shared by the admission controller and the traffic engineer: given a
// link's set of contributing traffic patterns and each owning job's current
// start offset, it computes the bounded superposition cycle, the
// change-point set, and the peak aggregate bandwidth attained on that
// cycle.
//
// Grounded on original_source/src/network/scheduler_base.py:
// update_link_traffic_pattern and original_source/src/phase1/bate.py:
// update_peak_bw, re-expressed as incremental per-link state with a
// journalled rollback log (journal.go) instead of a Python dict rebuild.
package peakengine
