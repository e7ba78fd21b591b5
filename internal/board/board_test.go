package board

import (
	"errors"
	"math/rand/v2"
	"testing"
)

const startPlacement = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR"

func TestSquareAt(t *testing.T) {
	tests := []struct {
		x, y    int
		want    Square
		wantErr bool
	}{
		{0, 0, A1, false},
		{7, 7, H8, false},
		{4, 3, E4, false},
		{-1, 0, NoSquare, true},
		{0, 8, NoSquare, true},
	}
	for _, tc := range tests {
		got, err := SquareAt(tc.x, tc.y)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidSquare) {
				t.Errorf("SquareAt(%d, %d) error = %v, want ErrInvalidSquare", tc.x, tc.y, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("SquareAt(%d, %d) = %v, %v; want %v", tc.x, tc.y, got, err, tc.want)
		}
	}

	if sq, err := ParseSquare("e4"); err != nil || sq != E4 {
		t.Errorf("ParseSquare(e4) = %v, %v", sq, err)
	}
	if _, err := ParseSquare("i9"); !errors.Is(err, ErrInvalidSquare) {
		t.Errorf("ParseSquare(i9) error = %v", err)
	}
}

func TestApply(t *testing.T) {
	for _, backend := range []Backend{ArrayBackend, BitboardBackend} {
		t.Run(backend.String(), func(t *testing.T) {
			b, err := ParsePlacement(startPlacement, backend)
			if err != nil {
				t.Fatal(err)
			}

			same, err := b.Apply(nil)
			if err != nil {
				t.Fatal(err)
			}
			if !Equal(b, same) {
				t.Errorf("Apply(nil) changed the board:\n%s", Grid(same))
			}

			moved, err := b.Apply([]Write{Clear(E2), Put(E4, NewPiece(Pawn, White, E2))})
			if err != nil {
				t.Fatal(err)
			}
			if b.IsOccupied(E4) || !b.IsOccupied(E2) {
				t.Error("Apply mutated the receiver")
			}
			if p, ok := moved.PieceAt(E4); !ok || p != NewPiece(Pawn, White, E4) {
				t.Errorf("PieceAt(e4) = %v, %v", p, ok)
			}
			if moved.IsOccupied(E2) {
				t.Error("e2 still occupied after clear")
			}
			if got := len(moved.Pieces()); got != 32 {
				t.Errorf("len(Pieces()) = %d, want 32", got)
			}

			if _, err := b.Apply([]Write{{Square: NoSquare + 3, Piece: NewPiece(Rook, Black, A1)}}); !errors.Is(err, ErrInvalidSquare) {
				t.Errorf("Apply off-board error = %v, want ErrInvalidSquare", err)
			}
			if b.IsOccupied(NoSquare) {
				t.Error("off-board square reported occupied")
			}
			if _, ok := b.PieceAt(Square(200)); ok {
				t.Error("off-board square returned a piece")
			}
		})
	}
}

func TestApplyRandomAgrees(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	arr, bb := Board(ArrayBoard{}), Board(BitBoard{})
	for i := 0; i < 200; i++ {
		writes := randomWrites(rng)
		// Clear a few squares as well.
		for j := 0; j < 4; j++ {
			writes = append(writes, Clear(Square(rng.IntN(64))))
		}
		arr = mustApply(t, arr, writes)
		bb = mustApply(t, bb, writes)
		if !Equal(arr, bb) {
			t.Fatalf("step %d: backends diverged:\n%s\n\n%s", i, Grid(arr), Grid(bb))
		}
		if Placement(arr) != Placement(bb) {
			t.Fatalf("step %d: placements differ", i)
		}
	}
}

func TestPlacement(t *testing.T) {
	tests := []struct {
		name      string
		placement string
		wantErr   bool
	}{
		{"start", startPlacement, false},
		{"ultra knights", "4k3/8/8/3U4/8/8/8/u3K3", false},
		{"empty", "8/8/8/8/8/8/8/8", false},
		{"seven ranks", "8/8/8/8/8/8/8", true},
		{"long rank", "9/8/8/8/8/8/8/8", true},
		{"short rank", "7/8/8/8/8/8/8/8", true},
		{"overflow", "rnbqkbnrp/8/8/8/8/8/8/8", true},
		{"bad piece", "x7/8/8/8/8/8/8/8", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, err := ParsePlacement(tc.placement, BitboardBackend)
			if tc.wantErr {
				if !errors.Is(err, ErrMalformedXFEN) {
					t.Errorf("error = %v, want ErrMalformedXFEN", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got := Placement(b); got != tc.placement {
				t.Errorf("Placement = %q, want %q", got, tc.placement)
			}
		})
	}
}

func TestGrid(t *testing.T) {
	b, err := ParsePlacement("4k3/8/8/8/8/8/4P3/4K2U", ArrayBackend)
	if err != nil {
		t.Fatal(err)
	}
	want := "....k...\n........\n........\n........\n........\n........\n....P...\n....K..U"
	if got := Grid(b); got != want {
		t.Errorf("Grid =\n%s\nwant\n%s", got, want)
	}
}
