package board

import "errors"

var (
	// ErrInvalidArgument reports a missing or unusable argument.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrOccupiedSquare is returned when a piece is added to a square
	// that already holds one.
	ErrOccupiedSquare = errors.New("square already occupied")
	// ErrOutOfRange reports a rank or file outside [0, Size).
	ErrOutOfRange = errors.New("coordinate out of range")
	// ErrInvalidBoard reports a board that fails Valid.
	ErrInvalidBoard = errors.New("invalid board")
)
