package position

import (
	"github.com/hailam/chessproblem/internal/board"
)

// Successor pairs a legal move with the position it leads to.
type Successor struct {
	Move     Move
	Position *Position
}

// Successors returns every legal move of the side to move with its resulting
// position. Generation runs in two passes: plain piece moves first, then
// last-rank pawn moves are replaced by their four promotions and en passant
// and castling candidates are added. Each candidate is applied and kept only
// if the result is king-valid and leaves the mover's king unattacked.
// King-invalid positions have no successors.
func (p *Position) Successors() []Successor {
	if !p.kingValid {
		return nil
	}
	out := make([]Successor, 0, 48)
	for _, m := range p.candidates() {
		_, special := m.(Castle)
		if _, ep := m.(EnPassant); ep {
			special = true
		}
		if next, ok := apply(p, m, !special); ok {
			out = append(out, Successor{Move: m, Position: next})
		}
	}
	return out
}

// Moves returns the legal moves of the side to move.
func (p *Position) Moves() []Move {
	succ := p.Successors()
	moves := make([]Move, len(succ))
	for i, s := range succ {
		moves[i] = s.Move
	}
	return moves
}

// HasLegalMove reports whether the side to move has at least one legal move.
// It stops at the first one found.
func (p *Position) HasLegalMove() bool {
	if !p.kingValid {
		return false
	}
	for _, m := range p.candidates() {
		_, special := m.(Castle)
		if _, ep := m.(EnPassant); ep {
			special = true
		}
		if _, ok := apply(p, m, !special); ok {
			return true
		}
	}
	return false
}

// FindMove returns the legal move written as s in coordinate notation.
func (p *Position) FindMove(s string) (Successor, bool) {
	for _, succ := range p.Successors() {
		if succ.Move.String() == s {
			return succ, true
		}
	}
	return Successor{}, false
}

// candidates builds the pseudo-legal move list. Castling and en passant
// entries still need their own precondition check.
func (p *Position) candidates() []Move {
	var simple []Move
	for _, pc := range p.board.Pieces() {
		if pc.Color != p.side {
			continue
		}
		dests := board.Destinations(p.board, pc, board.TravelOrCapture)
		for dests != 0 {
			simple = append(simple, Simple{From: pc.Square, To: dests.PopLSB()})
		}
	}

	moves := make([]Move, 0, len(simple)+8)
	for _, m := range simple {
		s := m.(Simple)
		if s.To.Y() == lastRank(p.side) && p.isPawn(s.From) {
			for _, pt := range board.PromotionTypes {
				moves = append(moves, Promotion{From: s.From, To: s.To, Piece: pt})
			}
			continue
		}
		moves = append(moves, m)
	}

	if p.enPassant != board.NoSquare {
		victim := victimSquare(p.enPassant)
		for _, dx := range [2]int{-1, 1} {
			from, ok := victim.Offset(dx, 0)
			if ok && p.isPawn(from) {
				moves = append(moves, EnPassant{From: from, To: p.enPassant})
			}
		}
	}

	for _, side := range [2]CastleSide{KingSide, QueenSide} {
		if p.castling.CanCastle(p.side, side) {
			moves = append(moves, Castle{Color: p.side, Side: side})
		}
	}
	return moves
}

func (p *Position) isPawn(sq board.Square) bool {
	pc, ok := p.ownPiece(sq)
	return ok && pc.Type == board.Pawn
}

// IsDeadPosition reports insufficient material for either side to mate: no
// pawns, rooks, queens or ultra-knights, and either at most one minor piece
// on the board or exactly one bishop per side on squares of the same colour
// with no knights.
func (p *Position) IsDeadPosition() bool {
	var knights int
	var bishops [2][]board.Square
	for _, pc := range p.board.Pieces() {
		switch pc.Type {
		case board.King:
		case board.Knight:
			knights++
		case board.Bishop:
			bishops[pc.Color] = append(bishops[pc.Color], pc.Square)
		default:
			return false
		}
	}
	if knights+len(bishops[board.White])+len(bishops[board.Black]) <= 1 {
		return true
	}
	if knights == 0 && len(bishops[board.White]) == 1 && len(bishops[board.Black]) == 1 {
		return bishops[board.White][0].IsLight() == bishops[board.Black][0].IsLight()
	}
	return false
}
