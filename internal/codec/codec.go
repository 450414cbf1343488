package codec

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/hailam/chessboard/internal/board"
)

var sides = [2]board.Color{board.White, board.Black}

// encoder writes fixed-width little-endian fields and keeps the first
// write error.
type encoder struct {
	w   *bufio.Writer
	l   layout
	buf [8]byte
	err error
}

func (e *encoder) write(b []byte) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.Write(b)
}

func (e *encoder) int32(v int) {
	if e.err == nil && (v < math.MinInt32 || v > math.MaxInt32) {
		e.err = fmt.Errorf("value %d does not fit in 32 bits: %w", v, ErrInvalidArgument)
		return
	}
	binary.LittleEndian.PutUint32(e.buf[:4], uint32(int32(v)))
	e.write(e.buf[:4])
}

func (e *encoder) enum(v uint8) {
	binary.LittleEndian.PutUint32(e.buf[:4], uint32(v))
	e.write(e.buf[:e.l.enumWidth])
}

func (e *encoder) marker(present bool) {
	switch e.l.markerWidth {
	case 1:
		e.buf[0] = 0
		if present {
			e.buf[0] = 1
		}
	default:
		var v uint64
		if present {
			v = legacyMarker
		}
		binary.LittleEndian.PutUint64(e.buf[:8], v)
	}
	e.write(e.buf[:e.l.markerWidth])
}

// Encode writes b to w in format f.
func Encode(w io.Writer, b *board.Board, f Format) error {
	if w == nil || b == nil {
		return ErrInvalidArgument
	}
	if !b.Valid() {
		return fmt.Errorf("encode: %w", board.ErrInvalidBoard)
	}
	l, err := f.layout()
	if err != nil {
		return err
	}

	e := &encoder{w: bufio.NewWriter(w), l: l}
	e.enum(uint8(b.MovesNext()))

	for rank := 0; rank < board.Size; rank++ {
		for file := 0; file < board.Size; file++ {
			e.square(b.Square(rank, file))
		}
	}

	if e.err != nil {
		return e.err
	}
	return e.w.Flush()
}

func (e *encoder) square(sq *board.Square) {
	e.int32(sq.Rank())
	e.int32(sq.File())
	for _, c := range sides {
		e.int32(sq.Threats(c))
	}
	for _, c := range sides {
		e.int32(sq.TurnsHeld(c))
	}
	for _, c := range sides {
		e.int32(sq.AdjacentPieces(c))
	}

	p := sq.Piece()
	e.marker(p != nil)
	if p == nil {
		return
	}
	e.enum(uint8(p.Type))
	e.enum(uint8(p.Color))
	e.enum(uint8(p.Health))
	e.int32(p.Rank)
	e.int32(p.File)
}

// decoder reads fixed-width little-endian fields. Short reads are
// reported as ErrCorruptData.
type decoder struct {
	r   *bufio.Reader
	l   layout
	buf [8]byte
}

func (d *decoder) read(n int) ([]byte, error) {
	if _, err := io.ReadFull(d.r, d.buf[:n]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("truncated input: %w", ErrCorruptData)
		}
		return nil, err
	}
	return d.buf[:n], nil
}

func (d *decoder) int32() (int, error) {
	b, err := d.read(4)
	if err != nil {
		return 0, err
	}
	return int(int32(binary.LittleEndian.Uint32(b))), nil
}

func (d *decoder) enum() (uint32, error) {
	b, err := d.read(d.l.enumWidth)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (d *decoder) marker() (bool, error) {
	b, err := d.read(d.l.markerWidth)
	if err != nil {
		return false, err
	}
	if d.l.markerWidth == 1 {
		switch b[0] {
		case 0:
			return false, nil
		case 1:
			return true, nil
		}
		return false, fmt.Errorf("presence tag %#x: %w", b[0], ErrCorruptData)
	}
	return binary.LittleEndian.Uint64(b) != 0, nil
}

// Decode reads a board in format f from r. The input must hold exactly
// one board.
func Decode(r io.Reader, f Format) (*board.Board, error) {
	if r == nil {
		return nil, ErrInvalidArgument
	}
	l, err := f.layout()
	if err != nil {
		return nil, err
	}
	d := &decoder{r: bufio.NewReader(r), l: l}

	b, err := d.board()
	if err != nil {
		return nil, err
	}

	if _, err := d.r.ReadByte(); err != io.EOF {
		b.Release()
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("trailing bytes after board: %w", ErrCorruptData)
	}
	return b, nil
}

func (d *decoder) board() (*board.Board, error) {
	next, err := d.enum()
	if err != nil {
		return nil, err
	}
	if next > uint32(board.Grey) {
		return nil, fmt.Errorf("side to move %d: %w", next, ErrCorruptData)
	}

	// Squares are installed one at a time into an empty board.
	b := &board.Board{}
	b.SetMovesNext(board.Color(next))

	for rank := 0; rank < board.Size; rank++ {
		for file := 0; file < board.Size; file++ {
			sq, err := d.square(rank, file)
			if err == nil {
				err = b.SetSquare(sq)
			}
			if err != nil {
				b.Release()
				return nil, err
			}
		}
	}

	if !b.Valid() {
		b.Release()
		return nil, fmt.Errorf("incomplete board: %w", ErrCorruptData)
	}
	return b, nil
}

func (d *decoder) square(rank, file int) (*board.Square, error) {
	var fields [8]int
	for i := range fields {
		v, err := d.int32()
		if err != nil {
			return nil, err
		}
		fields[i] = v
	}
	if fields[0] != rank || fields[1] != file {
		return nil, fmt.Errorf("square (%d,%d) stored in slot (%d,%d): %w",
			fields[0], fields[1], rank, file, ErrCorruptData)
	}

	sq := board.NewBlankSquare()
	if err := sq.SetCoordinates(rank, file); err != nil {
		return nil, err
	}
	for i, c := range sides {
		sq.SetThreats(c, fields[2+i])
		sq.SetTurnsHeld(c, fields[4+i])
		sq.SetAdjacentPieces(c, fields[6+i])
	}

	present, err := d.marker()
	if err != nil || !present {
		return sq, err
	}

	p, err := d.piece()
	if err != nil {
		return nil, err
	}
	if p.Rank != rank || p.File != file {
		return nil, fmt.Errorf("piece at (%d,%d) stored on square %s: %w", p.Rank, p.File, sq, ErrCorruptData)
	}
	if err := sq.AddPiece(p); err != nil {
		return nil, err
	}
	return sq, nil
}

func (d *decoder) piece() (*board.Piece, error) {
	var enums [3]uint32
	for i := range enums {
		v, err := d.enum()
		if err != nil {
			return nil, err
		}
		enums[i] = v
	}
	pt, c, h := board.PieceType(enums[0]), board.Color(enums[1]), board.Health(enums[2])
	if enums[0] > 255 || !pt.IsValid() ||
		enums[1] > 255 || !c.IsValid() ||
		enums[2] > 255 || !h.IsValid() {
		return nil, fmt.Errorf("piece enums %v: %w", enums, ErrCorruptData)
	}

	rank, err := d.int32()
	if err != nil {
		return nil, err
	}
	file, err := d.int32()
	if err != nil {
		return nil, err
	}
	return board.NewPiece(c, pt, h, rank, file), nil
}
