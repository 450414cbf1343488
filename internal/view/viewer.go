package view

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/hailam/chessboard/internal/board"
	"github.com/hailam/chessboard/internal/game"
)

const (
	leftMargin  = 2
	topMargin   = 1
	squareWidth = 3
)

// Theme holds the terminal colors of the viewer.
type Theme struct {
	LightSquare tcell.Color
	DarkSquare  tcell.Color
	Cursor      tcell.Color
	White       tcell.Color
	Black       tcell.Color
	Dead        tcell.Color
	Label       tcell.Color
}

// DefaultTheme returns the default terminal theme.
func DefaultTheme() Theme {
	return Theme{
		LightSquare: tcell.NewRGBColor(240, 217, 181), // Tan
		DarkSquare:  tcell.NewRGBColor(181, 136, 99),  // Brown
		Cursor:      tcell.NewRGBColor(247, 247, 105), // Yellow highlight
		White:       tcell.ColorWhite,
		Black:       tcell.ColorBlack,
		Dead:        tcell.ColorGray,
		Label:       tcell.ColorSilver,
	}
}

// Viewer draws a session on a tcell screen and turns key presses into
// cursor moves and session updates. It only ever draws snapshots.
type Viewer struct {
	screen  tcell.Screen
	session *game.Session
	cursor  *Cursor
	theme   Theme

	snap    *board.Board
	version uint64
	status  string
}

// NewViewer creates a viewer for s on screen. The screen must already be
// initialized.
func NewViewer(screen tcell.Screen, s *game.Session) *Viewer {
	return &Viewer{
		screen:  screen,
		session: s,
		cursor:  NewCursor(),
		theme:   DefaultTheme(),
	}
}

// Cursor returns the viewer's cursor.
func (v *Viewer) Cursor() *Cursor { return v.cursor }

// Status returns the last status line.
func (v *Viewer) Status() string { return v.status }

// SquareAt returns the screen cell where the piece on rank/file is drawn.
func SquareAt(rank, file int) (x, y int) {
	return leftMargin + file*squareWidth + 1, topMargin + (board.Size - 1 - rank)
}

// snapshot returns a copy of the session board, taking a new one only
// when the session changed.
func (v *Viewer) snapshot() *board.Board {
	ver := v.session.Version()
	if v.snap == nil || ver != v.version {
		v.snap = v.session.Snapshot()
		v.version = ver
	}
	return v.snap
}

// Draw renders the current snapshot.
func (v *Viewer) Draw() {
	b := v.snapshot()
	v.screen.Clear()

	labelStyle := tcell.StyleDefault.Foreground(v.theme.Label)
	for rank := board.Size - 1; rank >= 0; rank-- {
		_, y := SquareAt(rank, 0)
		v.screen.SetContent(0, y, rune('1'+rank), nil, labelStyle)
		for file := 0; file < board.Size; file++ {
			v.drawSquare(b, rank, file)
		}
	}

	for file := 0; file < board.Size; file++ {
		x, _ := SquareAt(0, file)
		v.screen.SetContent(x, topMargin+board.Size, rune('a'+file), nil, labelStyle)
	}

	drawText(v.screen, 0, topMargin+board.Size+2, labelStyle, fmt.Sprintf("%s to move", b.MovesNext()))
	drawText(v.screen, 0, topMargin+board.Size+3, labelStyle, v.status)
	v.screen.Show()
}

func (v *Viewer) drawSquare(b *board.Board, rank, file int) {
	bg := v.theme.DarkSquare
	if (rank+file)%2 == 1 {
		bg = v.theme.LightSquare
	}
	if v.cursor.Visible() && v.cursor.Rank() == rank && v.cursor.File() == file {
		bg = v.theme.Cursor
	}
	style := tcell.StyleDefault.Background(bg)

	x, y := SquareAt(rank, file)
	v.screen.SetContent(x-1, y, ' ', nil, style)
	v.screen.SetContent(x+1, y, ' ', nil, style)

	p := b.PieceAt(rank, file)
	if p == nil {
		v.screen.SetContent(x, y, ' ', nil, style)
		return
	}

	fg := v.theme.Black
	if p.Color == board.White {
		fg = v.theme.White
	}
	if !p.IsAlive() {
		fg = v.theme.Dead
	}
	v.screen.SetContent(x, y, rune(p.Char()), nil, style.Foreground(fg).Bold(p.IsAlive()))
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

// HandleEvent applies one event and reports whether the viewer should
// quit.
func (v *Viewer) HandleEvent(ev tcell.Event) (quit bool) {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return false
	}

	switch key.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		v.move(Up)
	case tcell.KeyDown:
		v.move(Down)
	case tcell.KeyLeft:
		v.move(Left)
	case tcell.KeyRight:
		v.move(Right)
	case tcell.KeyRune:
		switch key.Rune() {
		case 'q':
			return true
		case ' ':
			v.cursor.Toggle()
		case 'x':
			v.kill()
		}
	}
	return false
}

func (v *Viewer) move(d Direction) {
	if err := v.cursor.Move(d); err != nil {
		v.status = "edge of board"
		return
	}
	v.status = ""
}

func (v *Viewer) kill() {
	rank, file := v.cursor.Rank(), v.cursor.File()
	alreadyDead, err := v.session.Kill(rank, file)
	switch {
	case errors.Is(err, game.ErrNoPiece):
		v.status = "no piece here"
	case err != nil:
		v.status = err.Error()
	case alreadyDead:
		v.status = "already dead"
	default:
		v.status = "killed"
	}
}

// Run draws and handles events until the user quits or the screen is
// finalized.
func (v *Viewer) Run() {
	for {
		v.Draw()
		ev := v.screen.PollEvent()
		if ev == nil {
			return
		}
		if v.HandleEvent(ev) {
			return
		}
	}
}
