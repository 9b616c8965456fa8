package planner

import "github.com/pkg/errors"

var (
	ErrInvalidLimits   = errors.New("invalid limits")
	ErrInvalidState    = errors.New("invalid state")
	ErrInfeasible      = errors.New("infeasible move")
	ErrSpeedReversal   = errors.New("speed change reverses direction")
	ErrOverSpeed       = errors.New("speed exceeds limit")
	ErrInvalidInterval = errors.New("invalid sample interval")
)
