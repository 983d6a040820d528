package algebra

import "errors"

// Errors raised for programmer misuse — a document whose type does not
// match the operation. These are always returned as plain errors, never
// signaled via the conflict/no-fusion "ok" channel.
var (
	// ErrTypeMismatch is returned when Apply is called on a document
	// whose runtime type does not match what the operation expects.
	ErrTypeMismatch = errors.New("algebra: document type does not match operation")

	// ErrOutOfRange is returned when an offset/length/index falls
	// outside the document's bounds.
	ErrOutOfRange = errors.New("algebra: offset or length out of range")

	// ErrInvalidOperand is returned when an operation's own construction
	// parameters are malformed (e.g. a Math "rot" with modulus <= 0).
	ErrInvalidOperand = errors.New("algebra: invalid operand")
)
