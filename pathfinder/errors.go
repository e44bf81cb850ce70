package pathfinder

import "errors"

// ErrNoPath indicates the path finder could not connect src to dst with any
// capacity. Never returned directly — callers detect "no path" by
// receiving an empty result, since no exceptions cross this package's
// boundary; ErrNoPath exists so callers that prefer an error-returning
// wrapper have a sentinel to match against. No function in this package
// returns it.
var ErrNoPath = errors.New("pathfinder: no path with sufficient capacity")
