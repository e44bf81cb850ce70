package trafficeng

import "errors"

// ErrInfeasible indicates a computed allocation would carry more than some
// link's capacity at some point in its change-point set. No variant's Allocate should ever produce this; CheckFeasible
// is the boundary check an orchestrator runs on the result before trusting
// it, the same role bate.py's callers play by re-deriving peak bandwidth
// after every deploy.
var ErrInfeasible = errors.New("trafficeng: allocation exceeds link capacity")
