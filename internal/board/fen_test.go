package board

import "testing"

func TestStartFEN(t *testing.T) {
	b, _ := NewStart()
	if got := b.FEN(); got != StartFEN {
		t.Errorf("FEN() = %q, want %q", got, StartFEN)
	}

	parsed, err := ParseFEN(StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if !parsed.Equal(b) {
		t.Errorf("parsed start position differs:\n%s\nwant:\n%s", parsed, b)
	}
}

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		"8/8/8/8/8/8/8/8 w - - 0 1",
		"R6k/6pp/8/8/8/8/8/K7 b - - 0 1",
		"r3k2r/8/8/3Qq3/8/8/8/R3K2R w - - 0 1",
	}
	for _, fen := range fens {
		b, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		if got := b.FEN(); got != fen {
			t.Errorf("round trip of %q gave %q", fen, got)
		}
	}
}

func TestParseFENCoordinates(t *testing.T) {
	b, err := ParseFEN("R6k/6pp/8/8/8/8/8/K7 b KQkq - 3 20")
	if err != nil {
		t.Fatal(err)
	}
	if b.MovesNext() != Black {
		t.Errorf("MovesNext = %s, want Black", b.MovesNext())
	}
	rook := b.PieceAt(7, 0)
	if !rook.Equal(NewAlivePiece(White, Rook, 7, 0)) {
		t.Errorf("a8 = %v, want white rook", rook)
	}
	king := b.PieceAt(7, 7)
	if !king.Equal(NewAlivePiece(Black, King, 7, 7)) {
		t.Errorf("h8 = %v, want black king", king)
	}
}

func TestParseFENErrors(t *testing.T) {
	bad := []string{
		"",
		"8/8/8/8/8/8/8/8",
		"8/8/8/8/8/8/8 w - - 0 1",
		"9/8/8/8/8/8/8/8 w - - 0 1",
		"7/8/8/8/8/8/8/8 w - - 0 1",
		"8/8/8/8/8/8/8/7x w - - 0 1",
		"8/8/8/8/8/8/8/8 x - - 0 1",
		"\u01727/8/8/8/8/8/8/8 w - - 0 1",
		"8/8/8/8/8/8/8/\u00e17 w - - 0 1",
	}
	for _, fen := range bad {
		if _, err := ParseFEN(fen); err == nil {
			t.Errorf("ParseFEN(%q) should fail", fen)
		}
	}
}
