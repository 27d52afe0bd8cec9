package domain

import "errors"

// ErrValidation marks malformed search input (missing coordinates, absent
// time-window structure). It is distinct from a zero-result search, which is
// a normal outcome, and is translated to a 400 at the API boundary.
var ErrValidation = errors.New("invalid search input")
