// Package config carries every tunable constant of the admission and
// traffic-engineering pipeline (EPOCH, SCHEDULE_INTERVAL, rounding and
// budget parameters) as a single immutable value built with functional
// options, instead of package-level globals read at call sites.
package config
