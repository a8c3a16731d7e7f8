package domain

import "errors"

// ErrCheckCleared is returned by Check.CanClear for checks already in the terminal state.
var ErrCheckCleared = errors.New("check already cleared")
