package vg

import "errors"

// Capacity errors. These describe precondition violations: the functions
// that detect them panic with an error wrapping one of these sentinels.
var (
	// ErrArenaOverflow: the shared curve arena cannot hold another path.
	ErrArenaOverflow = errors.New("vg: curve arena overflow")

	// ErrFrameOverflow: a frame emitted more vertices than 16-bit indices address.
	ErrFrameOverflow = errors.New("vg: frame vertex overflow")

	// ErrFrameFinished: a frame was used after Finish.
	ErrFrameFinished = errors.New("vg: frame already finished")

	// ErrInvalidColor is returned by Hex for malformed color strings.
	ErrInvalidColor = errors.New("vg: invalid hex color")
)

// ErrInvalidKey is the panic value (wrapped) for placements with key 0.
var ErrInvalidKey = errors.New("vg: invalid resource key")
