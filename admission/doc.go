// Package admission implements Phase-1 admission control: given a sequence
// of job requests, decide which to admit, place each admitted job's
// workloads onto tunnels, and (for the "Ours" variant) choose a start
// offset so the shared peak-bandwidth engine reports every touched link at
// or under capacity.
//
// Four variants share the Controller capability interface
// (ScheduleJob, Rollback, Emit):
//
// - Ours (ours.go) — direct deployment, falling back to bounded local
// phase-offset adjustment. Grounded on
// original_source/src/phase1/bate.py's direct_deploy/local_adjust/
// link_adjust, which — despite the file name — is the variant this
// module calls "Ours".
// - BATE (bate.go) — direct deployment only (step 1 of the same file).
// - Aequitas (aequitas.go) — admission-probability path selection,
// grounded on phase1/aequitas.py:deploy. All jobs are treated alike: there
// are no priority classes and no per-class weights.
// - Seawall (seawall.go) — bandwidth-quota path selection, grounded on
// phase1/seawall.py:deploy.
//
// All four place their committed traffic through a shared
// peakengine.Engine so capacity checks and the peak-bandwidth map stay
// consistent with Phase 2.
package admission
