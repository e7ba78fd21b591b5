package solver

import (
	"github.com/hailam/chessproblem/internal/board"
	"github.com/hailam/chessproblem/internal/position"
)

// helpmate returns the earliest full-move number at which Black, to move, is
// checkmated below p. Both sides cooperate, so every node takes the minimum
// over its successors.
func (w *worker) helpmate(p *position.Position, budget int) int {
	// Only a checkmate of Black can end the search with budget exhausted.
	if budget == 0 && (p.SideToMove() != board.Black || !p.InCheck()) {
		return unsolved
	}

	succ := p.Successors()
	outcome := p.OutcomeWith(len(succ) > 0)
	if p.SideToMove() == board.Black && outcome == position.Checkmate {
		return p.FullMoveNumber()
	}
	if budget == 0 || outcome.IsDraw() {
		return unsolved
	}

	best := unsolved
	for _, c := range succ {
		r := w.search(c.Position, budget-1)
		if r != unsolved && (best == unsolved || r < best) {
			best = r
		}
	}
	return best
}
