package solver

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/hailam/chessproblem/internal/board"
	"github.com/hailam/chessproblem/internal/position"
)

const (
	// Kg8-h8 and Ra1-a8 mate.
	helpmateInOne = "6k1/8/6K1/8/8/8/8/R7 b - - 0 1 helpmate 1"
	// Rb1-e1+ leaves Rxe1 as Black's only reply, and it mates.
	selfmateInOne = "4k3/7R/2N3N1/8/8/8/6PP/rR5K w - - 0 1 selfmate 1"
	// Without the g6 knight Black answers Rb1-e1+ with Kf8.
	selfmateEscape = "4k3/7R/2N5/8/8/8/6PP/rR5K w - - 0 1 selfmate 1"
	// Na5-b7+ leaves Bxb7 mate as Black's only reply.
	selfmateForced = "2bkr3/2ppp3/8/N7/8/7p/4n2P/7K w - - 0 1 selfmate %d"
	// The c5 knight adds Nxb7, which stalemates White.
	selfmateStalemate = "2bkr3/2ppp3/8/N1n5/8/7p/4n2P/7K w - - 0 1 selfmate %d"
	// Ke8-f8 then Ra1-a8 mate; no mate in one.
	helpmateInTwo = "4k3/8/6K1/8/8/8/8/R7 b - - 0 1 helpmate %d"
)

func mustProblem(t *testing.T, line string, backend board.Backend) Problem {
	t.Helper()
	pr, err := ParseProblem(line, backend)
	if err != nil {
		t.Fatalf("ParseProblem(%q): %v", line, err)
	}
	return pr
}

func keys(res Result) map[string]int {
	out := make(map[string]int, len(res.Solutions))
	for _, s := range res.Solutions {
		out[s.Move.String()] = s.Moves
	}
	return out
}

func TestParseProblem(t *testing.T) {
	pr := mustProblem(t, "RB6/6kq/8/8/3K4/8/6bb/8 b - - 0 1 helpmate 2", board.BitboardBackend)
	if pr.Mode != Helpmate || pr.Moves != 2 {
		t.Errorf("got mode %v moves %d", pr.Mode, pr.Moves)
	}
	if got, want := pr.String(), "RB6/6kq/8/8/3K4/8/6bb/8 b - - 0 1 helpmate 2"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	bad := []string{
		"",
		"RB6/6kq/8/8/3K4/8/6bb/8 b - - 0 1 helpmate",
		"RB6/6kq/8/8/3K4/8/6bb/8 b - - 0 1 helpmate 2 extra",
		"RB6/6kq/8/8/3K4/8/6bb/8 b - - 0 1 mate 2",
		"RB6/6kq/8/8/3K4/8/6bb/8 b - - 0 1 helpmate 0",
		"RB6/6kq/8/8/3K4/8/6bb/8 b - - 0 1 helpmate two",
		"RB6/6kq/8/8/3K4/8/6bb/8 w - - 0 1 helpmate 2",
		"RB6/6kq/8/8/3K4/8/6bb/8 b - - 0 1 selfmate 2",
		"RB6/6kq/8/8/3K4/8/6bb b - - 0 1 helpmate 2",
	}
	for _, line := range bad {
		if _, err := ParseProblem(line, board.BitboardBackend); !errors.Is(err, ErrMalformedProblem) {
			t.Errorf("ParseProblem(%q) error = %v, want ErrMalformedProblem", line, err)
		}
	}
}

func TestHelpmate(t *testing.T) {
	for _, backend := range []board.Backend{board.BitboardBackend, board.ArrayBackend} {
		t.Run(backend.String(), func(t *testing.T) {
			res, err := New().Solve(context.Background(), mustProblem(t, helpmateInOne, backend))
			if err != nil {
				t.Fatal(err)
			}
			got := keys(res)
			if len(got) != 1 || got["g8h8"] != 1 {
				t.Fatalf("solutions = %v, want g8h8 in 1", got)
			}
			if s := res.Solutions[0].String(); s != "7k/8/6K1/8/8/8/8/R7 solved in 1 moves" {
				t.Errorf("String() = %q", s)
			}
			if res.Nodes == 0 {
				t.Error("no nodes counted")
			}
		})
	}
}

func TestHelpmateReportsShortest(t *testing.T) {
	pr := mustProblem(t, "6k1/8/6K1/8/8/8/8/R7 b - - 0 1 helpmate 2", board.BitboardBackend)
	res, err := New().Solve(context.Background(), pr)
	if err != nil {
		t.Fatal(err)
	}
	got := keys(res)
	if got["g8h8"] != 1 {
		t.Errorf("g8h8 reported in %d moves, want 1 (solutions %v)", got["g8h8"], got)
	}
	for move, n := range got {
		if n < 1 || n > 2 {
			t.Errorf("%s reported in %d moves", move, n)
		}
	}
}

func TestSelfmate(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		wantKey bool
	}{
		{"forced", selfmateInOne, true},
		{"king escapes", selfmateEscape, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := New().Solve(context.Background(), mustProblem(t, tc.line, board.BitboardBackend))
			if err != nil {
				t.Fatal(err)
			}
			got := keys(res)
			n, ok := got["b1e1"]
			if ok != tc.wantKey {
				t.Fatalf("b1e1 solution = %v, want %v (solutions %v)", ok, tc.wantKey, got)
			}
			if ok && n != 1 {
				t.Errorf("b1e1 in %d moves, want 1", n)
			}
		})
	}
}

func TestHelpmateInTwo(t *testing.T) {
	for _, backend := range []board.Backend{board.BitboardBackend, board.ArrayBackend} {
		t.Run(backend.String(), func(t *testing.T) {
			res, err := New().Solve(context.Background(), mustProblem(t, fmt.Sprintf(helpmateInTwo, 1), backend))
			if err != nil {
				t.Fatal(err)
			}
			if res.Solved() {
				t.Errorf("N=1 solutions = %v, want none", keys(res))
			}

			res, err = New().Solve(context.Background(), mustProblem(t, fmt.Sprintf(helpmateInTwo, 2), backend))
			if err != nil {
				t.Fatal(err)
			}
			got := keys(res)
			if len(got) != 1 || got["e8f8"] != 2 {
				t.Errorf("N=2 solutions = %v, want e8f8 in 2", got)
			}
		})
	}
}

func TestSelfmateStalemateEscape(t *testing.T) {
	// The escape really is a stalemate.
	pr := mustProblem(t, fmt.Sprintf(selfmateStalemate, 1), board.BitboardBackend)
	after, ok := pr.Position.FindMove("a5b7")
	if !ok {
		t.Fatal("a5b7 not legal")
	}
	if n := len(after.Position.Successors()); n != 2 {
		t.Fatalf("Black has %d replies to a5b7, want 2", n)
	}
	reply, ok := after.Position.FindMove("c5b7")
	if !ok {
		t.Fatal("c5b7 not legal")
	}
	if got := reply.Position.Outcome(); got != position.Stalemate {
		t.Fatalf("outcome after c5b7 = %v, want %v", got, position.Stalemate)
	}

	tests := []struct {
		name    string
		line    string
		wantKey bool
	}{
		{"forced in 1", fmt.Sprintf(selfmateForced, 1), true},
		{"forced in 2", fmt.Sprintf(selfmateForced, 2), true},
		{"stalemate in 1", fmt.Sprintf(selfmateStalemate, 1), false},
		{"stalemate in 2", fmt.Sprintf(selfmateStalemate, 2), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := New().Solve(context.Background(), mustProblem(t, tc.line, board.BitboardBackend))
			if err != nil {
				t.Fatal(err)
			}
			got := keys(res)
			n, ok := got["a5b7"]
			if ok != tc.wantKey {
				t.Fatalf("a5b7 solution = %v, want %v (solutions %v)", ok, tc.wantKey, got)
			}
			if ok && n != 1 {
				t.Errorf("a5b7 in %d moves, want 1", n)
			}
		})
	}
}

func TestUnsolvable(t *testing.T) {
	tests := []string{
		// Every line reaches a dead position.
		"4k3/8/8/8/8/8/8/4K3 w - - 0 1 selfmate 1",
		"4k3/8/8/8/8/8/8/4K3 b - - 0 1 helpmate 2",
		// Claimable draw cuts selfmate lines.
		"4k3/7R/2N3N1/8/8/8/6PP/rR5K w - - 50 1 selfmate 1",
		// Kings side by side.
		"8/8/8/8/8/8/8/Kk6 b - - 0 1 helpmate 1",
	}
	for _, line := range tests {
		res, err := New().Solve(context.Background(), mustProblem(t, line, board.BitboardBackend))
		if err != nil {
			t.Fatalf("%s: %v", line, err)
		}
		if res.Solved() {
			t.Errorf("%s: unexpected solutions %v", line, keys(res))
		}
	}
}

func TestOptionsAgree(t *testing.T) {
	memo, err := NewMemo(1 << 12)
	if err != nil {
		t.Fatal(err)
	}
	defer memo.Close()

	for _, line := range []string{helpmateInOne, selfmateInOne, "6k1/8/6K1/8/8/8/8/R7 b - - 0 1 helpmate 2"} {
		pr := mustProblem(t, line, board.BitboardBackend)
		base, err := New().Solve(context.Background(), pr)
		if err != nil {
			t.Fatal(err)
		}
		for name, s := range map[string]*Solver{
			"parallel": New(WithParallelism(4)),
			"memo":     New(WithMemo(memo)),
			"both":     New(WithParallelism(3), WithMemo(memo)),
		} {
			res, err := s.Solve(context.Background(), pr)
			if err != nil {
				t.Fatal(err)
			}
			if len(res.Solutions) != len(base.Solutions) {
				t.Fatalf("%s: %d solutions, want %d", name, len(res.Solutions), len(base.Solutions))
			}
			for i := range res.Solutions {
				if res.Solutions[i].Move != base.Solutions[i].Move || res.Solutions[i].Moves != base.Solutions[i].Moves {
					t.Errorf("%s: solution %d = %v, want %v", name, i, res.Solutions[i].Move, base.Solutions[i].Move)
				}
			}
			memo.Wait()
		}
	}
}

func TestCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New().Solve(ctx, mustProblem(t, helpmateInOne, board.BitboardBackend))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
