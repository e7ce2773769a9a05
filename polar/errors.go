package polar

import "errors"

var (
	ErrDegenerateInput    = errors.New("polar: both axes are at the origin")
	ErrNotANumber         = errors.New("polar: axis value is NaN")
	ErrInvalidSentinel    = errors.New("polar: sentinel out of range")
	ErrRadiusOverflow     = errors.New("polar: radius is not finite at this width")
	ErrInvalidPlaceholder = errors.New("polar: placeholder must be a finite non-negative value")
	ErrUnknownZeroPolicy  = errors.New("polar: unknown zero policy")
	ErrUnknownAssignment  = errors.New("polar: unknown axis assignment")
	ErrUnknownWidth       = errors.New("polar: unknown numeric width")
)
