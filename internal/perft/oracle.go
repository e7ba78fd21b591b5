package perft

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	goosemg "github.com/Oliverans/GooseEngineMG/goosemg"
	"github.com/dylhunn/dragontoothmg"
	"golang.org/x/exp/slices"

	"github.com/hailam/chessproblem/internal/position"
)

// ErrUnsupported is returned when a position uses pieces the reference
// generators do not know.
var ErrUnsupported = errors.New("position not supported by oracle")

// Oracle divides perft trees with an independent move generator.
type Oracle interface {
	Name() string
	Divide(fen string, depth int) ([]Entry, error)
}

// Oracles returns every available reference generator.
func Oracles() []Oracle {
	return []Oracle{Dragontooth{}, Goose{}}
}

// Dragontooth wraps github.com/dylhunn/dragontoothmg.
type Dragontooth struct{}

// Name implements Oracle.
func (Dragontooth) Name() string { return "dragontoothmg" }

// Divide implements Oracle.
func (Dragontooth) Divide(fen string, depth int) ([]Entry, error) {
	if err := orthodox(fen); err != nil {
		return nil, err
	}
	b := dragontoothmg.ParseFen(fen)
	moves := b.GenerateLegalMoves()
	entries := make([]Entry, 0, len(moves))
	for _, m := range moves {
		unapply := b.Apply(m)
		entries = append(entries, Entry{Move: m.String(), Nodes: dragontoothCount(&b, depth-1)})
		unapply()
	}
	sortEntries(entries)
	return entries, nil
}

func dragontoothCount(b *dragontoothmg.Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		unapply := b.Apply(m)
		nodes += dragontoothCount(b, depth-1)
		unapply()
	}
	return nodes
}

// Goose wraps github.com/Oliverans/GooseEngineMG/goosemg.
type Goose struct{}

// Name implements Oracle.
func (Goose) Name() string { return "goosemg" }

// Divide implements Oracle.
func (Goose) Divide(fen string, depth int) ([]Entry, error) {
	if err := orthodox(fen); err != nil {
		return nil, err
	}
	b, err := goosemg.ParseFEN(fen)
	if err != nil {
		return nil, fmt.Errorf("goosemg: %w", err)
	}
	div := goosemg.PerftDivide(b, depth)
	entries := make([]Entry, 0, len(div))
	for m, n := range div {
		entries = append(entries, Entry{Move: m.String(), Nodes: n})
	}
	sortEntries(entries)
	return entries, nil
}

func orthodox(fen string) error {
	placement, _, _ := strings.Cut(fen, " ")
	if strings.ContainsAny(placement, "Uu") {
		return fmt.Errorf("%w: ultra-knight in %s", ErrUnsupported, placement)
	}
	return nil
}

func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].Move < entries[j].Move })
}

// Mismatch is a root move whose subtree size differs from an oracle's.
type Mismatch struct {
	Oracle string
	Move   string
	Got    uint64
	Want   uint64
}

// String describes the mismatch; a missing move on either side counts 0.
func (m Mismatch) String() string {
	return fmt.Sprintf("%s: %s got %d, want %d", m.Oracle, m.Move, m.Got, m.Want)
}

// Verify divides p at depth and compares every root move with each oracle.
// Oracles that cannot handle the position are skipped.
func Verify(p *position.Position, depth int, oracles ...Oracle) ([]Mismatch, error) {
	ours := Divide(p, depth)
	var mismatches []Mismatch
	for _, o := range oracles {
		theirs, err := o.Divide(p.XFEN(), depth)
		if errors.Is(err, ErrUnsupported) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if slices.Equal(ours, theirs) {
			continue
		}
		mismatches = append(mismatches, compare(o.Name(), ours, theirs)...)
	}
	return mismatches, nil
}

func compare(name string, ours, theirs []Entry) []Mismatch {
	got := make(map[string]uint64, len(ours))
	for _, e := range ours {
		got[e.Move] = e.Nodes
	}
	want := make(map[string]uint64, len(theirs))
	for _, e := range theirs {
		want[e.Move] = e.Nodes
	}
	var out []Mismatch
	for _, e := range ours {
		if w, ok := want[e.Move]; !ok || w != e.Nodes {
			out = append(out, Mismatch{Oracle: name, Move: e.Move, Got: e.Nodes, Want: w})
		}
	}
	for _, e := range theirs {
		if _, ok := got[e.Move]; !ok {
			out = append(out, Mismatch{Oracle: name, Move: e.Move, Want: e.Nodes})
		}
	}
	return out
}
