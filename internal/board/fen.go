package board

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"

// ParseFEN builds a board from the placement and side-to-move fields of
// a FEN string. Castling, en passant and clock fields are accepted but
// not kept; every piece is created alive.
func ParseFEN(fen string) (*Board, error) {
	parts := strings.Fields(fen)
	if len(parts) < 2 {
		return nil, fmt.Errorf("invalid FEN: need at least 2 fields, got %d", len(parts))
	}

	b, err := New()
	if err != nil {
		return nil, err
	}

	// Parse piece placement (field 0)
	if err := parsePiecePlacement(b, parts[0]); err != nil {
		b.Release()
		return nil, err
	}

	// Parse side to move (field 1)
	switch parts[1] {
	case "w":
		b.movesNext = White
	case "b":
		b.movesNext = Black
	default:
		b.Release()
		return nil, fmt.Errorf("invalid side to move: %s", parts[1])
	}

	return b, nil
}

// parsePiecePlacement parses the piece placement section of a FEN string.
func parsePiecePlacement(b *Board, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != Size {
		return fmt.Errorf("invalid piece placement: need 8 ranks, got %d", len(ranks))
	}

	for i, rankStr := range ranks {
		rank := Size - 1 - i // FEN starts from rank 8
		file := 0

		for _, c := range rankStr {
			if file > Size-1 {
				return fmt.Errorf("too many squares in rank %d", rank+1)
			}

			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}

			if c >= utf8.RuneSelf {
				return fmt.Errorf("invalid piece character: %c", c)
			}
			pt, ok := PieceTypeFromChar(byte(c))
			if !ok {
				return fmt.Errorf("invalid piece character: %c", c)
			}
			color := Black
			if c >= 'A' && c <= 'Z' {
				color = White
			}
			if err := b.Place(rank, file, NewAlivePiece(color, pt, rank, file)); err != nil {
				return err
			}
			file++
		}

		if file != Size {
			return fmt.Errorf("invalid number of squares in rank %d: got %d", rank+1, file)
		}
	}

	return nil
}

// FEN returns the board as a FEN string. Castling and en passant are not
// tracked, so those fields are always "-" and the clocks are "0 1".
func (b *Board) FEN() string {
	var sb strings.Builder

	for rank := Size - 1; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < Size; file++ {
			p := b.PieceAt(rank, file)
			if p == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(p.Char())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	if b.movesNext == Black {
		sb.WriteString(" b")
	} else {
		sb.WriteString(" w")
	}
	sb.WriteString(" - - 0 1")

	return sb.String()
}
