package diagram

import (
	"bytes"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/hailam/chessproblem/internal/board"
)

func mustBoard(t *testing.T, placement string) board.Board {
	t.Helper()
	b, err := board.ParsePlacement(placement, board.BitboardBackend)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestGlyphs(t *testing.T) {
	for _, pt := range board.PieceTypes {
		for _, c := range board.Colors {
			img, err := rasterize(pt, c, 48)
			if err != nil {
				t.Fatalf("%v %v: %v", c, pt, err)
			}
			var opaque int
			for i := 3; i < len(img.Pix); i += 4 {
				if img.Pix[i] != 0 {
					opaque++
				}
			}
			if opaque == 0 {
				t.Errorf("%v %v glyph is empty", c, pt)
			}
		}
	}
}

func TestRender(t *testing.T) {
	r, err := New(32)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := New(4); err == nil {
		t.Error("New(4) succeeded")
	}

	empty := r.Render(board.BitboardBackend.New())
	b := mustBoard(t, "4k3/8/8/8/8/8/8/U3K3")
	img := r.Render(b, board.E1, board.E2)

	if got, want := img.Bounds().Dx(), r.Size(); got != want {
		t.Errorf("width = %d, want %d", got, want)
	}

	differs := func(sq board.Square) bool {
		rect := r.squareRect(sq)
		for y := rect.Min.Y; y < rect.Max.Y; y++ {
			for x := rect.Min.X; x < rect.Max.X; x++ {
				if img.RGBAAt(x, y) != empty.RGBAAt(x, y) {
					return true
				}
			}
		}
		return false
	}

	tests := []struct {
		sq      board.Square
		changed bool
	}{
		{board.A1, true},  // ultra-knight
		{board.E8, true},  // king
		{board.E2, true},  // highlight
		{board.D4, false}, // empty square
	}
	for _, tc := range tests {
		if got := differs(tc.sq); got != tc.changed {
			t.Errorf("%v changed = %v, want %v", tc.sq, got, tc.changed)
		}
	}

	// a8 sits at the top left.
	if rect := r.squareRect(board.A8); rect.Min.X != r.margin || rect.Min.Y != r.margin {
		t.Errorf("a8 at %v", rect)
	}
}

func TestWritePNG(t *testing.T) {
	r, err := New(24)
	if err != nil {
		t.Fatal(err)
	}
	b := mustBoard(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR")

	var buf bytes.Buffer
	if err := r.WritePNG(&buf, b); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != r.Size() || img.Bounds().Dy() != r.Size() {
		t.Errorf("bounds = %v", img.Bounds())
	}

	path := filepath.Join(t.TempDir(), "start.png")
	if err := r.SaveFile(path, b); err != nil {
		t.Fatal(err)
	}
}

func TestMoveSquares(t *testing.T) {
	tests := []struct {
		move string
		want []board.Square
	}{
		{"e2e4", []board.Square{board.E2, board.E4}},
		{"e7e8q", []board.Square{board.E7, board.E8}},
		{"e1g1", []board.Square{board.E1, board.G1}},
		{"e2", nil},
		{"z9e4", nil},
	}
	for _, tc := range tests {
		got := MoveSquares(tc.move)
		if len(got) != len(tc.want) {
			t.Errorf("MoveSquares(%q) = %v, want %v", tc.move, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("MoveSquares(%q) = %v, want %v", tc.move, got, tc.want)
			}
		}
	}
}
