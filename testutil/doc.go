// Package testutil provides pure helpers for exercising the core packages
// under realistic noise without touching their determinism guarantee.
// Perturb is grounded on
// original_source/src/test/workload_fluctuate.py:random_fluctuate.
package testutil
