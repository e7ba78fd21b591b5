// Package perft counts move-generation trees for verifying the legality
// layer against published totals and independent generators.
package perft

import (
	"sort"

	"github.com/hailam/chessproblem/internal/position"
)

// Stats counts the moves made at the last ply of a perft tree.
type Stats struct {
	Nodes      uint64
	Captures   uint64
	EnPassants uint64
	Castles    uint64
	Promotions uint64
	Checks     uint64
	Checkmates uint64
}

func (s *Stats) add(o Stats) {
	s.Nodes += o.Nodes
	s.Captures += o.Captures
	s.EnPassants += o.EnPassants
	s.Castles += o.Castles
	s.Promotions += o.Promotions
	s.Checks += o.Checks
	s.Checkmates += o.Checkmates
}

// Count returns the number of leaf nodes at the given depth. Draw rules do
// not stop the tree.
func Count(p *position.Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	succ := p.Successors()
	if depth == 1 {
		return uint64(len(succ))
	}
	var nodes uint64
	for _, s := range succ {
		nodes += Count(s.Position, depth-1)
	}
	return nodes
}

// Run returns the node count together with the move statistics of the last
// ply.
func Run(p *position.Position, depth int) Stats {
	if depth <= 0 {
		return Stats{Nodes: 1}
	}
	var st Stats
	for _, s := range p.Successors() {
		if depth == 1 {
			st.add(classify(p, s))
			continue
		}
		st.add(Run(s.Position, depth-1))
	}
	return st
}

func classify(parent *position.Position, s position.Successor) Stats {
	st := Stats{Nodes: 1}
	switch m := s.Move.(type) {
	case position.Simple:
		if parent.Board().IsOccupied(m.To) {
			st.Captures++
		}
	case position.Promotion:
		st.Promotions++
		if parent.Board().IsOccupied(m.To) {
			st.Captures++
		}
	case position.EnPassant:
		st.Captures++
		st.EnPassants++
	case position.Castle:
		st.Castles++
	}
	if s.Position.InCheck() {
		st.Checks++
		if !s.Position.HasLegalMove() {
			st.Checkmates++
		}
	}
	return st
}

// Entry is one root move of a divided perft.
type Entry struct {
	Move  string
	Nodes uint64
}

// Divide returns the node count below each root move, ordered by move text.
func Divide(p *position.Position, depth int) []Entry {
	succ := p.Successors()
	entries := make([]Entry, 0, len(succ))
	for _, s := range succ {
		entries = append(entries, Entry{Move: s.Move.String(), Nodes: Count(s.Position, depth-1)})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Move < entries[j].Move })
	return entries
}
