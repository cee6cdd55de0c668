package formula

import "errors"

// Construction errors. Callers branch on them with errors.Is; the returned
// errors wrap these sentinels with the offending descriptor or group.
var (
	// ErrInvalidDescriptor marks a descriptor with a missing output, no
	// inputs, a blank or repeated input, an output listed among its own
	// inputs, or a nil compute function.
	ErrInvalidDescriptor = errors.New("formula: invalid descriptor")

	// ErrDuplicateOutput marks a group declaring two descriptors that solve
	// for the same output.
	ErrDuplicateOutput = errors.New("formula: duplicate output in group")
)
