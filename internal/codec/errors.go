package codec

import "errors"

var (
	// ErrInvalidArgument reports a missing path, board or reader, or an
	// unknown format.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrAlreadyExists is returned by Save when the file exists and
	// overwrite is false.
	ErrAlreadyExists = errors.New("file already exists")
	// ErrOpen wraps a failure to open a file for reading or writing.
	ErrOpen = errors.New("cannot open file")
	// ErrNotFound is returned by Load for a missing file.
	ErrNotFound = errors.New("file not found")
	// ErrCorruptData reports input that does not decode to a valid board.
	ErrCorruptData = errors.New("corrupt board data")
)
