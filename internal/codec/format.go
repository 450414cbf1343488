// Package codec reads and writes boards in the binary save format.
//
// The format has no header: the side to move comes first, followed by
// the 64 squares in rank-major order (rank 0 file 0, rank 0 file 1, ...).
// Each square is its rank, file and six statistics, then a presence
// marker and, when the marker is set, the piece's type, color, health,
// rank and file. All values are little-endian.
//
// Two layouts share that field order. FormatLegacy keeps the original
// widths: 4-byte enums and ints with an 8-byte presence marker holding
// any non-zero value for a piece. FormatTagged fixes every enum and int
// at 4 bytes and uses a single 0/1 tag byte as the marker.
package codec

import (
	"fmt"
	"strings"
)

// Format selects the on-disk layout.
type Format uint8

const (
	FormatTagged Format = iota
	FormatLegacy
)

// DefaultFormat is used when no format is given.
const DefaultFormat = FormatTagged

// layout holds the field widths of a format in bytes.
type layout struct {
	enumWidth   int
	intWidth    int
	markerWidth int
}

var layouts = map[Format]layout{
	FormatTagged: {enumWidth: 4, intWidth: 4, markerWidth: 1},
	FormatLegacy: {enumWidth: 4, intWidth: 4, markerWidth: 8},
}

// legacyMarker is written in place of the piece reference the legacy
// format stored. Readers only look at zero versus non-zero.
const legacyMarker uint64 = 1

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatTagged:
		return "tagged"
	case FormatLegacy:
		return "legacy"
	default:
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
}

// ParseFormat converts a format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "tagged":
		return FormatTagged, nil
	case "legacy":
		return FormatLegacy, nil
	}
	return 0, fmt.Errorf("unknown format %q: %w", s, ErrInvalidArgument)
}

func (f Format) layout() (layout, error) {
	l, ok := layouts[f]
	if !ok {
		return layout{}, fmt.Errorf("format %s: %w", f, ErrInvalidArgument)
	}
	return l, nil
}

// squareSize returns the encoded size of a square, piece excluded.
func (l layout) squareSize() int {
	return 8*l.intWidth + l.markerWidth
}

// pieceSize returns the encoded size of a piece.
func (l layout) pieceSize() int {
	return 3*l.enumWidth + 2*l.intWidth
}

// EncodedSize returns the number of bytes a board with the given number
// of pieces occupies in format f.
func EncodedSize(f Format, pieces int) (int, error) {
	l, err := f.layout()
	if err != nil {
		return 0, err
	}
	return l.enumWidth + 64*l.squareSize() + pieces*l.pieceSize(), nil
}
