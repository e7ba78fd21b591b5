package solver

import (
	"github.com/hailam/chessproblem/internal/board"
	"github.com/hailam/chessproblem/internal/position"
)

// selfmate returns the full-move number at which White, to move, is
// checkmated below p when White steers toward it and Black resists. White
// nodes take the minimum over successors; Black nodes take the maximum, and
// a single Black escape makes the node unsolved. A draw or a claimable draw
// ends the line.
func (w *worker) selfmate(p *position.Position, budget int) int {
	if budget == 0 && (p.SideToMove() != board.White || !p.InCheck()) {
		return unsolved
	}

	succ := p.Successors()
	outcome := p.OutcomeWith(len(succ) > 0)
	if p.SideToMove() == board.White && outcome == position.Checkmate {
		return p.FullMoveNumber()
	}
	if budget == 0 || outcome.IsDraw() || p.CanClaimDraw() {
		return unsolved
	}

	best := unsolved
	if p.SideToMove() == board.White {
		for _, c := range succ {
			r := w.search(c.Position, budget-1)
			if r != unsolved && (best == unsolved || r < best) {
				best = r
			}
		}
		return best
	}

	for _, c := range succ {
		r := w.search(c.Position, budget-1)
		if r == unsolved {
			return unsolved
		}
		best = max(best, r)
	}
	return best
}
