// Package interop converts boards to and from github.com/notnil/chess,
// which is used for anything that needs the rules of the game, such as
// replaying a PGN.
package interop

import (
	"fmt"
	"io"

	"github.com/hailam/chessboard/internal/board"
	"github.com/notnil/chess"
)

var toChessType = map[board.PieceType]chess.PieceType{
	board.Rook:   chess.Rook,
	board.Knight: chess.Knight,
	board.Bishop: chess.Bishop,
	board.King:   chess.King,
	board.Queen:  chess.Queen,
	board.Pawn:   chess.Pawn,
}

var fromChessType = map[chess.PieceType]board.PieceType{
	chess.Rook:   board.Rook,
	chess.Knight: board.Knight,
	chess.Bishop: board.Bishop,
	chess.King:   board.King,
	chess.Queen:  board.Queen,
	chess.Pawn:   board.Pawn,
}

var chessPieces = map[chess.Color]map[chess.PieceType]chess.Piece{
	chess.White: {
		chess.King:   chess.WhiteKing,
		chess.Queen:  chess.WhiteQueen,
		chess.Rook:   chess.WhiteRook,
		chess.Bishop: chess.WhiteBishop,
		chess.Knight: chess.WhiteKnight,
		chess.Pawn:   chess.WhitePawn,
	},
	chess.Black: {
		chess.King:   chess.BlackKing,
		chess.Queen:  chess.BlackQueen,
		chess.Rook:   chess.BlackRook,
		chess.Bishop: chess.BlackBishop,
		chess.Knight: chess.BlackKnight,
		chess.Pawn:   chess.BlackPawn,
	},
}

// squareOf maps board coordinates to a chess square (a1 = 0, h8 = 63).
func squareOf(rank, file int) chess.Square {
	return chess.Square(rank*board.Size + file)
}

// ToChess converts b to a chess position. Dead pieces are left out and
// pieces of palette colors are rejected.
func ToChess(b *board.Board) (*chess.Position, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("to chess: %w", board.ErrInvalidBoard)
	}

	m := make(map[chess.Square]chess.Piece)
	for _, p := range b.Pieces() {
		if !p.IsAlive() {
			continue
		}
		var c chess.Color
		switch p.Color {
		case board.White:
			c = chess.White
		case board.Black:
			c = chess.Black
		default:
			return nil, fmt.Errorf("piece %s has no chess color: %w", p, board.ErrInvalidArgument)
		}
		m[squareOf(p.Rank, p.File)] = chessPieces[c][toChessType[p.Type]]
	}

	turn := "w"
	if b.MovesNext() == board.Black {
		turn = "b"
	}
	fen := chess.NewBoard(m).String() + " " + turn + " - - 0 1"

	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("to chess: %w", err)
	}
	return chess.NewGame(opt).Position(), nil
}

// FromChess converts a chess position to a board. Every piece is alive
// and every square statistic is zero.
func FromChess(pos *chess.Position) (*board.Board, error) {
	if pos == nil {
		return nil, board.ErrInvalidArgument
	}

	b, err := board.New()
	if err != nil {
		return nil, err
	}
	if pos.Turn() == chess.Black {
		b.SetMovesNext(board.Black)
	}

	for sq, cp := range pos.Board().SquareMap() {
		rank, file := int(sq)/board.Size, int(sq)%board.Size
		color := board.White
		if cp.Color() == chess.Black {
			color = board.Black
		}
		pt, ok := fromChessType[cp.Type()]
		if !ok {
			b.Release()
			return nil, fmt.Errorf("unknown piece %v on %v: %w", cp, sq, board.ErrInvalidArgument)
		}
		if err := b.Place(rank, file, board.NewAlivePiece(color, pt, rank, file)); err != nil {
			b.Release()
			return nil, err
		}
	}
	return b, nil
}

// ImportPGN replays the first game in r and returns its final position.
func ImportPGN(r io.Reader) (*board.Board, error) {
	opt, err := chess.PGN(r)
	if err != nil {
		return nil, fmt.Errorf("import pgn: %w", err)
	}
	game := chess.NewGame(opt)
	return FromChess(game.Position())
}
