// Package view is the terminal front end: a selection cursor and a
// tcell viewer that draws session snapshots.
package view

import (
	"errors"

	"github.com/hailam/chessboard/internal/board"
)

// ErrOutOfBounds is returned by Cursor.Move for a step off the board.
var ErrOutOfBounds = errors.New("cursor would leave the board")

// Direction is a single cursor step.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return "None"
	}
}

// Cursor marks the square the user is pointing at. It never leaves the
// board.
type Cursor struct {
	rank    int
	file    int
	visible bool
}

// NewCursor returns a visible cursor on a1.
func NewCursor() *Cursor {
	return &Cursor{visible: true}
}

// Rank returns the cursor's rank.
func (c *Cursor) Rank() int { return c.rank }

// File returns the cursor's file.
func (c *Cursor) File() int { return c.file }

// Visible reports whether the cursor is drawn.
func (c *Cursor) Visible() bool { return c.visible }

// Toggle flips the cursor's visibility.
func (c *Cursor) Toggle() { c.visible = !c.visible }

// Move steps the cursor one square. Up is towards rank 7, Right towards
// file 7. A step off the board returns ErrOutOfBounds and leaves the
// cursor where it was.
func (c *Cursor) Move(d Direction) error {
	rank, file := c.rank, c.file
	switch d {
	case Up:
		rank++
	case Down:
		rank--
	case Right:
		file++
	case Left:
		file--
	default:
		return board.ErrInvalidArgument
	}

	if !board.InBounds(rank, file) {
		return ErrOutOfBounds
	}
	c.rank, c.file = rank, file
	return nil
}
