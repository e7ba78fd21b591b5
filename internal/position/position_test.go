package position

import (
	"errors"
	"testing"

	"github.com/hailam/chessproblem/internal/board"
)

var backends = []board.Backend{board.BitboardBackend, board.ArrayBackend}

func mustParse(t *testing.T, xfen string, backend board.Backend) *Position {
	t.Helper()
	p, err := Parse(xfen, backend)
	if err != nil {
		t.Fatalf("Parse(%q): %v", xfen, err)
	}
	return p
}

func TestParseRoundTrip(t *testing.T) {
	tests := []string{
		StartXFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 2",
		"4k3/8/8/8/2U5/8/8/u3K3 b - - 12 40",
	}
	for _, xfen := range tests {
		for _, backend := range backends {
			if got := mustParse(t, xfen, backend).XFEN(); got != xfen {
				t.Errorf("%v: XFEN() = %q, want %q", backend, got, xfen)
			}
		}
	}

	p := mustParse(t, "8/8/8/8/8/8/8/K6k w - -", board.ArrayBackend)
	if p.HalfMoveClock() != 0 || p.FullMoveNumber() != 1 {
		t.Errorf("default clocks = %d %d", p.HalfMoveClock(), p.FullMoveNumber())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		"",
		"8/8/8/8/8/8/8/K6k",
		"8/8/8/8/8/8/8/K6k x - - 0 1",
		"8/8/8/8/8/8/8/K6k w X - 0 1",
		"8/8/8/8/8/8/8/K6k w - z9 0 1",
		"8/8/8/8/8/8/8/K6k w - - a 1",
		"8/8/8/8/8/8/8/K6k w - - 0 0",
		"8/8/8/8/8/8/8/K6k w - - -1 1",
		"8/8/8/8/8/8/8/K6k w - - 0 1 extra",
		"8/8/8/8/8/8/8/K6k w - a1 0 1",
		"8/8/8/8/8/8/8/K6k w - e4 0 1",
		"8/8/8/8/8/8/8/K6k w - e3 0 1",
		"8/8/8/8/8/8/8/K6k b - e6 0 1",
	}
	for _, xfen := range tests {
		if _, err := Parse(xfen, board.BitboardBackend); !errors.Is(err, board.ErrMalformedXFEN) {
			t.Errorf("Parse(%q) error = %v, want ErrMalformedXFEN", xfen, err)
		}
	}
}

func TestKingValidity(t *testing.T) {
	tests := []struct {
		name  string
		xfen  string
		valid bool
	}{
		{"normal", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", true},
		{"adjacent kings", "8/8/8/8/8/8/8/Kk6 w - - 0 1", false},
		{"diagonal kings", "8/8/8/8/8/8/1k6/K7 w - - 0 1", false},
		{"no black king", "8/8/8/8/8/8/8/K7 w - - 0 1", false},
		{"two white kings", "4k3/8/8/8/8/8/8/K3K3 w - - 0 1", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := mustParse(t, tc.xfen, board.BitboardBackend)
			if p.IsKingValid() != tc.valid {
				t.Fatalf("IsKingValid() = %v, want %v", p.IsKingValid(), tc.valid)
			}
			if !tc.valid {
				if len(p.Successors()) != 0 {
					t.Error("king-invalid position has successors")
				}
				if p.Outcome() != Invalid {
					t.Errorf("Outcome() = %v, want invalid", p.Outcome())
				}
			}
		})
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name  string
		xfen  string
		check bool
	}{
		{"rook on file", "4k3/8/8/8/8/8/8/4R1K1 b - - 0 1", true},
		{"blocked rook", "4k3/4n3/8/8/8/8/8/4R1K1 b - - 0 1", false},
		{"pawn", "4k3/3P4/8/8/8/8/8/6K1 b - - 0 1", true},
		{"pawn behind", "4k3/8/3P4/8/8/8/8/6K1 b - - 0 1", false},
		{"ultra-knight two leaps", "4k3/8/8/8/2U5/8/8/4K3 b - - 0 1", true},
		{"ultra-knight blocked", "4k3/8/3p4/8/2U5/8/8/4K3 b - - 0 1", false},
		{"knight", "4k3/8/3N4/8/8/8/8/4K3 b - - 0 1", true},
	}
	for _, tc := range tests {
		for _, backend := range backends {
			p := mustParse(t, tc.xfen, backend)
			if p.InCheck() != tc.check {
				t.Errorf("%s/%v: InCheck() = %v, want %v", tc.name, backend, p.InCheck(), tc.check)
			}
		}
	}
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		name string
		xfen string
		want Outcome
	}{
		{"back rank mate", "R6k/6pp/8/8/8/8/8/K7 b - - 0 1", Checkmate},
		{"king takes rook", "6Rk/8/8/8/8/8/8/K7 b - - 0 1", Ongoing},
		{"stalemate", "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", Stalemate},
		{"mate at clock limit", "R6k/6pp/8/8/8/8/8/K7 b - - 75 50", Checkmate},
		{"mate past clock limit", "R6k/6pp/8/8/8/8/8/K7 b - - 76 50", DrawByClock},
		{"clock limit", "4k3/8/8/8/8/8/4R3/4K3 w - - 75 40", DrawByClock},
		{"bare kings", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", DeadPosition},
		{"lone bishop", "4k3/8/8/8/8/8/8/2B1K3 w - - 0 1", DeadPosition},
		{"lone knight", "4k3/8/8/8/8/8/8/1N2K3 w - - 0 1", DeadPosition},
		{"same colour bishops", "4kb2/8/8/8/8/8/8/2B1K3 w - - 0 1", DeadPosition},
		{"opposite colour bishops", "4k1b1/8/8/8/8/8/8/2B1K3 w - - 0 1", Ongoing},
		{"two knights", "4k3/8/8/8/8/8/8/1NN1K3 w - - 0 1", Ongoing},
		{"pawn", "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1", Ongoing},
		{"ultra-knight", "4k3/8/8/8/8/8/8/U3K3 w - - 0 1", Ongoing},
	}
	for _, tc := range tests {
		for _, backend := range backends {
			p := mustParse(t, tc.xfen, backend)
			if got := p.Outcome(); got != tc.want {
				t.Errorf("%s/%v: Outcome() = %v, want %v", tc.name, backend, got, tc.want)
			}
		}
	}
}

func TestCanClaimDraw(t *testing.T) {
	if mustParse(t, "4k3/8/8/8/8/8/4R3/4K3 w - - 49 40", board.ArrayBackend).CanClaimDraw() {
		t.Error("claim allowed at 49")
	}
	if !mustParse(t, "4k3/8/8/8/8/8/4R3/4K3 w - - 50 40", board.ArrayBackend).CanClaimDraw() {
		t.Error("claim refused at 50")
	}
}
