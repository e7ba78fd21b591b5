package diagram

import (
	"bytes"
	"fmt"
	"image"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/hailam/chessproblem/internal/board"
)

// Piece outlines in a 45x45 view box, drawn with the group fill and stroke.
var glyphShapes = map[board.PieceType]string{
	board.Pawn: `<circle cx="22.5" cy="14" r="5"/>
<path d="M 16,38 C 17,30 19,24 22.5,21 C 26,24 28,30 29,38 Z"/>
<rect x="12" y="36" width="21" height="4"/>`,

	board.Knight: knightPath,

	board.Bishop: `<circle cx="22.5" cy="9" r="2.5"/>
<path d="M 22.5,12 C 16,17 15,25 18,31 L 27,31 C 30,25 29,17 22.5,12 Z"/>
<rect x="16" y="31" width="13" height="3"/>
<path d="M 11,40 C 15,36 30,36 34,40 Z"/>`,

	board.Rook: `<path d="M 12,10 L 16,10 L 16,13 L 20,13 L 20,10 L 25,10 L 25,13 L 29,13 L 29,10 L 33,10 L 33,16 L 12,16 Z"/>
<rect x="15" y="16" width="15" height="18"/>
<rect x="11" y="34" width="23" height="5"/>`,

	board.Queen: `<circle cx="9" cy="12" r="2"/><circle cx="16" cy="9" r="2"/><circle cx="22.5" cy="8" r="2"/>
<circle cx="29" cy="9" r="2"/><circle cx="36" cy="12" r="2"/>
<path d="M 9,26 L 9,14 L 15,24 L 16,11 L 20,24 L 22.5,10 L 25,24 L 29,11 L 30,24 L 36,14 L 36,26 C 30,28 15,28 9,26 Z"/>
<path d="M 9,26 C 9,30 11,31 11,33 C 11,36 10,36 10,38 C 17,41 28,41 35,38 C 35,36 34,36 34,33 C 34,31 36,30 36,26 C 30,28 15,28 9,26 Z"/>`,

	board.King: `<path d="M 22.5,6 L 22.5,13 M 19,9 L 26,9" fill="none"/>
<path d="M 22.5,25 C 22.5,25 27,17.5 25.5,14.5 C 25.5,14.5 24.5,12 22.5,12 C 20.5,12 19.5,14.5 19.5,14.5 C 18,17.5 22.5,25 22.5,25 Z"/>
<path d="M 12,37 C 17.5,40.5 27.5,40.5 33,37 L 33,30 C 33,30 41.5,25.5 38.5,19.5 C 34.5,13 25,16 22.5,23.5 L 22.5,27 L 22.5,23.5 C 20,16 10.5,13 6.5,19.5 C 3.5,25.5 12,30 12,30 L 12,37 Z"/>`,

	board.UltraKnight: knightPath + `
<circle cx="22.5" cy="22.5" r="20" fill="none"/>`,
}

const knightPath = `<path d="M 22,10 C 32.5,11 38.5,18 38,39 L 15,39 C 15,30 25,32.5 23,18"/>
<path d="M 24,18 C 24.4,20.9 18.5,25.4 16,27 C 13,29 13.2,31.3 11,31 C 10,30.1 12.4,28 11,28 C 10,28 11.2,29.2 10,30 C 9,30 6,31 6,26 C 6,24 12,14 12,14 C 12,14 13.9,12.1 14,10.5 C 13.3,9.5 13.5,8.5 13.5,7.5 C 14.5,6.5 16.5,10 16.5,10 L 18.5,10 C 18.5,10 19.3,8 21,7 C 22,7 22,10 22,10"/>`

// glyphColors returns fill and stroke for a side.
func glyphColors(c board.Color) (fill, stroke string) {
	if c == board.White {
		return "#ffffff", "#000000"
	}
	return "#000000", "#ffffff"
}

// glyphSVG returns a standalone SVG document for the piece.
func glyphSVG(pt board.PieceType, c board.Color) (string, error) {
	shape, ok := glyphShapes[pt]
	if !ok {
		return "", fmt.Errorf("no glyph for %v", pt)
	}
	fill, stroke := glyphColors(c)
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="45" height="45" viewBox="0 0 45 45">
<g fill="%s" stroke="%s" stroke-width="1.5" stroke-linejoin="round" stroke-linecap="round">
%s
</g>
</svg>`, fill, stroke, shape), nil
}

// rasterize renders the glyph into a size x size image.
func rasterize(pt board.PieceType, c board.Color, size int) (*image.RGBA, error) {
	doc, err := glyphSVG(pt, c)
	if err != nil {
		return nil, err
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader([]byte(doc)))
	if err != nil {
		return nil, fmt.Errorf("parse %v glyph: %w", pt, err)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)
	return rgba, nil
}
