// Package render rasterizes board snapshots into images.
package render

import (
	"fmt"
	"image"
	"strings"

	"github.com/hailam/chessboard/internal/board"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// pieceShapes holds the SVG elements of each piece on a 45x45 canvas.
// %[1]s is the fill color, %[2]s the outline color.
var pieceShapes = map[board.PieceType][]string{
	board.Pawn: {
		`<circle cx="22.5" cy="14" r="6" fill="%[1]s" stroke="%[2]s" stroke-width="1.5"/>`,
		`<polygon points="16,34 29,34 25,20 20,20" fill="%[1]s" stroke="%[2]s" stroke-width="1.5"/>`,
	},
	board.Rook: {
		`<polygon points="12,34 33,34 31,16 33,16 33,9 29,9 29,12 25,12 25,9 20,9 20,12 16,12 16,9 12,9 12,16 14,16" fill="%[1]s" stroke="%[2]s" stroke-width="1.5"/>`,
	},
	board.Knight: {
		`<polygon points="14,34 32,34 30,22 31,10 22,8 12,18 14,22 20,19 18,26" fill="%[1]s" stroke="%[2]s" stroke-width="1.5"/>`,
		`<circle cx="23" cy="13" r="1.5" fill="%[2]s"/>`,
	},
	board.Bishop: {
		`<ellipse cx="22.5" cy="20" rx="7" ry="10" fill="%[1]s" stroke="%[2]s" stroke-width="1.5"/>`,
		`<circle cx="22.5" cy="8" r="3" fill="%[1]s" stroke="%[2]s" stroke-width="1.5"/>`,
		`<polygon points="17,34 28,34 26,28 19,28" fill="%[1]s" stroke="%[2]s" stroke-width="1.5"/>`,
	},
	board.Queen: {
		`<polygon points="10,34 35,34 38,12 30,24 27,8 22.5,22 18,8 15,24 7,12" fill="%[1]s" stroke="%[2]s" stroke-width="1.5"/>`,
	},
	board.King: {
		`<rect x="21" y="3" width="3" height="13" fill="%[1]s" stroke="%[2]s" stroke-width="1"/>`,
		`<rect x="17" y="6" width="11" height="3" fill="%[1]s" stroke="%[2]s" stroke-width="1"/>`,
		`<polygon points="12,34 33,34 31,18 14,18" fill="%[1]s" stroke="%[2]s" stroke-width="1.5"/>`,
	},
}

const pieceBase = `<rect x="9" y="35" width="27" height="5" fill="%[1]s" stroke="%[2]s" stroke-width="1.5"/>`

// paletteFill maps piece colors to SVG fill colors.
var paletteFill = map[board.Color]string{
	board.White:  "#ffffff",
	board.Black:  "#202020",
	board.Red:    "#d32f2f",
	board.Green:  "#388e3c",
	board.Blue:   "#1976d2",
	board.Orange: "#f57c00",
	board.Yellow: "#fbc02d",
	board.Purple: "#7b1fa2",
	board.Grey:   "#757575",
}

const deadFill = "#9e9e9e"

// PieceSVG returns the SVG document used to draw a piece.
func PieceSVG(pt board.PieceType, c board.Color, alive bool) (string, error) {
	shapes, ok := pieceShapes[pt]
	if !ok {
		return "", fmt.Errorf("no sprite for piece type %s", pt)
	}
	fill, ok := paletteFill[c]
	if !ok {
		return "", fmt.Errorf("no sprite color for %s", c)
	}
	stroke := "#000000"
	if c == board.Black {
		stroke = "#e0e0e0"
	}
	if !alive {
		fill = deadFill
	}

	var sb strings.Builder
	sb.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 45 45" width="45" height="45">`)
	for _, s := range append(shapes, pieceBase) {
		fmt.Fprintf(&sb, s, fill, stroke)
	}
	sb.WriteString(`</svg>`)
	return sb.String(), nil
}

type spriteKey struct {
	pt    board.PieceType
	color board.Color
	alive bool
}

// SpriteManager rasterizes and caches piece sprites.
type SpriteManager struct {
	pieces map[spriteKey]*image.RGBA
	size   int // Raster size in pixels
}

// NewSpriteManager creates a sprite manager rendering sprites of the given size.
func NewSpriteManager(size int) *SpriteManager {
	return &SpriteManager{
		pieces: make(map[spriteKey]*image.RGBA),
		size:   size,
	}
}

// Size returns the size of piece sprites.
func (sm *SpriteManager) Size() int {
	return sm.size
}

// GetPiece returns the sprite for p, rasterizing it on first use.
func (sm *SpriteManager) GetPiece(p *board.Piece) (*image.RGBA, error) {
	key := spriteKey{pt: p.Type, color: p.Color, alive: p.IsAlive()}
	if img, ok := sm.pieces[key]; ok {
		return img, nil
	}

	doc, err := PieceSVG(key.pt, key.color, key.alive)
	if err != nil {
		return nil, err
	}

	icon, err := oksvg.ReadIconStream(strings.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("parse sprite for %s: %w", p, err)
	}
	icon.SetTarget(0, 0, float64(sm.size), float64(sm.size))

	rgba := image.NewRGBA(image.Rect(0, 0, sm.size, sm.size))
	scanner := rasterx.NewScannerGV(sm.size, sm.size, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(sm.size, sm.size, scanner)
	icon.Draw(raster, 1.0)

	sm.pieces[key] = rgba
	return rgba, nil
}
