package pid

import "errors"

// ErrInvalidArgument is returned for negative gains and non-positive time deltas.
var ErrInvalidArgument = errors.New("pid: invalid argument")
