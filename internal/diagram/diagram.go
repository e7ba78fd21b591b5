// Package diagram renders board positions as PNG images.
package diagram

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/hailam/chessproblem/internal/board"
)

// Glyphs are rasterized at renderScale times the square size and scaled
// down when composed.
const renderScale = 3

var (
	lightSquare = color.RGBA{0xf0, 0xd9, 0xb5, 0xff}
	darkSquare  = color.RGBA{0xb5, 0x88, 0x63, 0xff}
	highlight   = color.RGBA{0xcd, 0xd2, 0x6a, 0xc0}
	background  = color.RGBA{0x30, 0x2e, 0x2b, 0xff}
	coordColor  = color.RGBA{0xe0, 0xe0, 0xe0, 0xff}
)

type glyphKey struct {
	pt board.PieceType
	c  board.Color
}

// Renderer draws diagrams with a fixed square size. Its font face keeps a
// glyph cache, so a Renderer must not be shared between goroutines.
type Renderer struct {
	square int
	margin int
	glyphs map[glyphKey]*image.RGBA
	face   font.Face
}

// New creates a renderer with squares of the given pixel size.
func New(square int) (*Renderer, error) {
	if square < 8 {
		return nil, fmt.Errorf("square size too small: %d", square)
	}
	r := &Renderer{
		square: square,
		margin: square / 2,
		glyphs: make(map[glyphKey]*image.RGBA),
	}

	for _, pt := range board.PieceTypes {
		for _, c := range board.Colors {
			img, err := rasterize(pt, c, square*renderScale)
			if err != nil {
				return nil, err
			}
			r.glyphs[glyphKey{pt, c}] = img
		}
	}

	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	r.face, err = opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(square) / 3,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face: %w", err)
	}
	return r, nil
}

// Size returns the width and height of rendered diagrams.
func (r *Renderer) Size() int {
	return 8*r.square + 2*r.margin
}

// squareRect returns the pixel rectangle of sq, rank 8 at the top.
func (r *Renderer) squareRect(sq board.Square) image.Rectangle {
	x := r.margin + sq.X()*r.square
	y := r.margin + (7-sq.Y())*r.square
	return image.Rect(x, y, x+r.square, y+r.square)
}

// Render draws b, tinting the highlighted squares.
func (r *Renderer) Render(b board.Board, highlighted ...board.Square) *image.RGBA {
	size := r.Size()
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	for sq := board.A1; sq < board.NoSquare; sq++ {
		c := darkSquare
		if sq.IsLight() {
			c = lightSquare
		}
		draw.Draw(img, r.squareRect(sq), image.NewUniform(c), image.Point{}, draw.Src)
	}
	for _, sq := range highlighted {
		if sq.IsValid() {
			draw.Draw(img, r.squareRect(sq), image.NewUniform(highlight), image.Point{}, draw.Over)
		}
	}

	for _, p := range b.Pieces() {
		glyph := r.glyphs[glyphKey{p.Type, p.Color}]
		if glyph == nil {
			continue
		}
		draw.CatmullRom.Scale(img, r.squareRect(p.Square), glyph, glyph.Bounds(), draw.Over, nil)
	}

	r.drawCoordinates(img)
	return img
}

func (r *Renderer) drawCoordinates(img *image.RGBA) {
	d := &font.Drawer{Dst: img, Src: image.NewUniform(coordColor), Face: r.face}
	ascent := r.face.Metrics().Ascent.Ceil()

	for i := 0; i < 8; i++ {
		file := string(rune('a' + i))
		w := d.MeasureString(file).Ceil()
		x := r.margin + i*r.square + (r.square-w)/2
		d.Dot = fixed.P(x, r.margin+8*r.square+(r.margin+ascent)/2)
		d.DrawString(file)

		rank := string(rune('8' - i))
		w = d.MeasureString(rank).Ceil()
		d.Dot = fixed.P((r.margin-w)/2, r.margin+i*r.square+(r.square+ascent)/2)
		d.DrawString(rank)
	}
}

// WritePNG encodes the diagram of b to w.
func (r *Renderer) WritePNG(w io.Writer, b board.Board, highlighted ...board.Square) error {
	return png.Encode(w, r.Render(b, highlighted...))
}

// SaveFile writes the diagram of b to a PNG file.
func (r *Renderer) SaveFile(path string, b board.Board, highlighted ...board.Square) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.WritePNG(f, b, highlighted...); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// MoveSquares returns the origin and destination of a move in coordinate
// notation such as "e2e4" or "e7e8q". Malformed text yields nil.
func MoveSquares(move string) []board.Square {
	if len(move) < 4 {
		return nil
	}
	from, err := board.ParseSquare(move[:2])
	if err != nil {
		return nil
	}
	to, err := board.ParseSquare(move[2:4])
	if err != nil {
		return nil
	}
	return []board.Square{from, to}
}
