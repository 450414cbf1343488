package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/hailam/chessboard/internal/board"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Theme defines the color scheme for the board.
type Theme struct {
	LightSquare color.RGBA
	DarkSquare  color.RGBA
	Highlight   color.RGBA
	Background  color.RGBA
	TextColor   color.RGBA
}

// DefaultTheme returns the default color theme.
func DefaultTheme() *Theme {
	return &Theme{
		LightSquare: color.RGBA{240, 217, 181, 255}, // Tan
		DarkSquare:  color.RGBA{181, 136, 99, 255},  // Brown
		Highlight:   color.RGBA{247, 247, 105, 255}, // Yellow
		Background:  color.RGBA{40, 44, 52, 255},    // Dark gray
		TextColor:   color.RGBA{220, 220, 220, 255}, // Light gray
	}
}

// margin is the width of the label border around the board.
const margin = 16

// Renderer draws boards into images.
type Renderer struct {
	sprites     *SpriteManager
	theme       *Theme
	squareSize  int
	renderScale int // Sprites are rasterized larger and scaled down
}

// NewRenderer creates a renderer with squares of squareSize pixels.
func NewRenderer(squareSize int) *Renderer {
	if squareSize < 8 {
		squareSize = 8
	}
	const renderScale = 3
	return &Renderer{
		sprites:     NewSpriteManager(squareSize * renderScale),
		theme:       DefaultTheme(),
		squareSize:  squareSize,
		renderScale: renderScale,
	}
}

// SetTheme replaces the color theme.
func (r *Renderer) SetTheme(t *Theme) {
	if t != nil {
		r.theme = t
	}
}

// SquareSize returns the size of a square in pixels.
func (r *Renderer) SquareSize() int {
	return r.squareSize
}

// SquareRect returns the pixel rectangle of the square at rank and file.
// Rank 0 is drawn at the bottom.
func (r *Renderer) SquareRect(rank, file int) image.Rectangle {
	x := margin + file*r.squareSize
	y := margin + (board.Size-1-rank)*r.squareSize
	return image.Rect(x, y, x+r.squareSize, y+r.squareSize)
}

// Render draws b. Squares listed in highlight are drawn in the highlight
// color.
func (r *Renderer) Render(b *board.Board, highlight ...[2]int) (*image.RGBA, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("render: %w", board.ErrInvalidBoard)
	}

	side := 2*margin + board.Size*r.squareSize
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	xdraw.Draw(img, img.Bounds(), image.NewUniform(r.theme.Background), image.Point{}, xdraw.Src)

	marked := make(map[[2]int]bool, len(highlight))
	for _, h := range highlight {
		marked[h] = true
	}

	for rank := 0; rank < board.Size; rank++ {
		for file := 0; file < board.Size; file++ {
			rect := r.SquareRect(rank, file)
			xdraw.Draw(img, rect, image.NewUniform(r.squareColor(rank, file, marked)), image.Point{}, xdraw.Src)

			p := b.PieceAt(rank, file)
			if p == nil {
				continue
			}
			sprite, err := r.sprites.GetPiece(p)
			if err != nil {
				return nil, err
			}
			xdraw.CatmullRom.Scale(img, rect, sprite, sprite.Bounds(), xdraw.Over, nil)
		}
	}

	r.drawLabels(img)
	return img, nil
}

func (r *Renderer) squareColor(rank, file int, marked map[[2]int]bool) color.RGBA {
	if marked[[2]int{rank, file}] {
		return r.theme.Highlight
	}
	// a1 is a dark square
	if (rank+file)%2 == 0 {
		return r.theme.DarkSquare
	}
	return r.theme.LightSquare
}

// drawLabels writes file letters below and rank numbers left of the board.
func (r *Renderer) drawLabels(img *image.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(r.theme.TextColor),
		Face: basicfont.Face7x13,
	}
	bottom := margin + board.Size*r.squareSize

	for i := 0; i < board.Size; i++ {
		rect := r.SquareRect(0, i)
		d.Dot = fixed.P(rect.Min.X+r.squareSize/2-3, bottom+12)
		d.DrawString(string(rune('a' + i)))

		rect = r.SquareRect(i, 0)
		d.Dot = fixed.P(4, rect.Min.Y+r.squareSize/2+5)
		d.DrawString(string(rune('1' + i)))
	}
}

// WritePNG renders b and encodes it as PNG.
func (r *Renderer) WritePNG(w io.Writer, b *board.Board, highlight ...[2]int) error {
	img, err := r.Render(b, highlight...)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
