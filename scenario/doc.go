// Package scenario orders a job list before it enters the Admission
// Controller, implementing the two Phase-1 job-ordering scenarios:
// FCFS (arrival order, a no-op) and SJF (ascending by total workload
// bandwidth). Grounded on original_source/src/test/run_test.py's
// "TE-SJF"/"SJF" sort key.
package scenario
