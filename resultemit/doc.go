// Package resultemit formats admission and traffic-engineering outcomes for
// external consumption. It does not print or write anything itself — every
// function returns a value (a struct, a JSON blob, a string) that the caller
// decides what to do with, keeping this package free of any notion of
// stdout, a file handle, or a log sink.
//
// Three shapes:
//
//   - JobResult / BuildJobResult: one admitted-or-rejected job, its per-demand
//     paths and carried bandwidth, ready for json.Marshal.
//   - LinkUtilization / FormatLinkUtilizationStream: per-link peak/capacity ratios
//     as a newline-separated stream, for downstream plotting.
//   - FormatAdmissionSummary: a single "admitted/total ratio" line
//     summarising one test case's Phase-1 outcome.
package resultemit
