package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/hailam/chessboard/internal/board"
)

// FileChecker reports whether a path already exists.
type FileChecker interface {
	Exists(path string) bool
}

// OSFileChecker checks the local filesystem.
type OSFileChecker struct{}

// Exists returns true if path can be stat'ed.
func (OSFileChecker) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

type options struct {
	format  Format
	checker FileChecker
	perm    fs.FileMode
}

// Option configures Save and Load.
type Option func(*options)

// WithFormat selects the file layout.
func WithFormat(f Format) Option {
	return func(o *options) { o.format = f }
}

// WithFileChecker replaces the existence check used by Save.
func WithFileChecker(fc FileChecker) Option {
	return func(o *options) {
		if fc != nil {
			o.checker = fc
		}
	}
}

// WithPerm sets the permissions of newly created files.
func WithPerm(perm fs.FileMode) Option {
	return func(o *options) { o.perm = perm }
}

func newOptions(opts []Option) options {
	o := options{
		format:  DefaultFormat,
		checker: OSFileChecker{},
		perm:    0644,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Save writes b to path. An existing file is only replaced when
// overwrite is true; otherwise Save fails with ErrAlreadyExists and
// leaves the file untouched.
func Save(path string, b *board.Board, overwrite bool, opts ...Option) error {
	if path == "" || b == nil {
		return ErrInvalidArgument
	}
	o := newOptions(opts)

	if o.checker.Exists(path) && !overwrite {
		return fmt.Errorf("save %s: %w", path, ErrAlreadyExists)
	}

	// A failed encode leaves an existing file intact.
	var buf bytes.Buffer
	if err := Encode(&buf, b, o.format); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, o.perm)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("save %s: %w", path, ErrAlreadyExists)
		}
		return fmt.Errorf("save %s: %w: %w", path, ErrOpen, err)
	}
	if _, err := buf.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// Load reads a board from path.
func Load(path string, opts ...Option) (*board.Board, error) {
	if path == "" {
		return nil, ErrInvalidArgument
	}
	o := newOptions(opts)

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("load %s: %w: %w", path, ErrOpen, err)
	}
	defer f.Close()

	b, err := Decode(f, o.format)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return b, nil
}

// Marshal returns the encoding of b in format f.
func Marshal(b *board.Board, f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, b, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a board in format f from data.
func Unmarshal(data []byte, f Format) (*board.Board, error) {
	return Decode(bytes.NewReader(data), f)
}
