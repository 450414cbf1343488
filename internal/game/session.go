// Package game holds the live board of a running program.
//
// A Session owns exactly one board. Every access goes through the
// session's lock: readers that outlive a call (renderers, exporters)
// take a Snapshot, which is a deep copy they may keep without locking.
// Mutators run inside Update with exclusive access.
package game

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/hailam/chessboard/internal/board"
	"github.com/hailam/chessboard/internal/codec"
)

// ErrNoPiece is returned by Kill when the square is empty.
var ErrNoPiece = errors.New("no piece on square")

// Session guards a single board.
type Session struct {
	mu    sync.RWMutex
	board *board.Board

	// version counts replacements and mutations so viewers can skip
	// redrawing an unchanged board.
	version uint64
}

// NewSession creates a session that takes ownership of b.
func NewSession(b *board.Board) (*Session, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("new session: %w", board.ErrInvalidBoard)
	}
	return &Session{board: b}, nil
}

// NewStartSession creates a session on the standard opening position.
func NewStartSession() (*Session, error) {
	b, err := board.NewStart()
	if err != nil {
		return nil, err
	}
	return NewSession(b)
}

// Snapshot returns a deep copy of the current board.
func (s *Session) Snapshot() *board.Board {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.board.Copy()
}

// Version returns a counter that changes whenever the board may have
// changed.
func (s *Session) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// View runs fn with shared access to the board. fn must not modify the
// board or keep references to it after returning.
func (s *Session) View(fn func(*board.Board) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.board)
}

// Update runs fn with exclusive access to the board.
func (s *Session) Update(fn func(*board.Board) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.version++
	return fn(s.board)
}

// Replace swaps in b as the session board and releases the old one.
// Replacing the board with itself does nothing.
func (s *Session) Replace(b *board.Board) error {
	if !b.Valid() {
		return fmt.Errorf("replace: %w", board.ErrInvalidBoard)
	}
	s.mu.Lock()
	old := s.board
	if old == b {
		s.mu.Unlock()
		return nil
	}
	s.board = b
	s.version++
	s.mu.Unlock()

	old.Release()
	return nil
}

// MovesNext returns the side whose ply is next.
func (s *Session) MovesNext() board.Color {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.board.MovesNext()
}

// SetMovesNext sets the side whose ply is next.
func (s *Session) SetMovesNext(c board.Color) {
	s.Update(func(b *board.Board) error {
		b.SetMovesNext(c)
		return nil
	})
}

// Place puts p on the square at rank and file.
func (s *Session) Place(rank, file int, p *board.Piece) error {
	return s.Update(func(b *board.Board) error {
		return b.Place(rank, file, p)
	})
}

// Kill marks the piece at rank and file dead. The piece stays on the
// board.
func (s *Session) Kill(rank, file int) (alreadyDead bool, err error) {
	err = s.Update(func(b *board.Board) error {
		sq := b.Square(rank, file)
		if sq == nil {
			return fmt.Errorf("kill at (%d,%d): %w", rank, file, board.ErrOutOfRange)
		}
		p := sq.Piece()
		if p == nil {
			return fmt.Errorf("kill at %s: %w", sq, ErrNoPiece)
		}
		alreadyDead = p.Kill()
		return nil
	})
	return alreadyDead, err
}

// Save writes a snapshot of the board to path.
func (s *Session) Save(path string, overwrite bool, opts ...codec.Option) error {
	if err := codec.Save(path, s.Snapshot(), overwrite, opts...); err != nil {
		return err
	}
	log.Printf("Saved board to %s", path)
	return nil
}

// Load reads a board from path and makes it the session board. On
// failure the current board is kept.
func (s *Session) Load(path string, opts ...codec.Option) error {
	b, err := codec.Load(path, opts...)
	if err != nil {
		return err
	}
	if err := s.Replace(b); err != nil {
		return err
	}
	log.Printf("Loaded board from %s", path)
	return nil
}
