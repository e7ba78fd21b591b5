package position

// Outcome classifies a position for the side to move.
type Outcome uint8

const (
	Ongoing Outcome = iota
	Checkmate
	Stalemate
	DrawByClock
	DeadPosition
	Invalid
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Ongoing:
		return "ongoing"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case DrawByClock:
		return "draw by 75-move rule"
	case DeadPosition:
		return "dead position"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// IsDraw reports whether the outcome ends the game without a winner.
func (o Outcome) IsDraw() bool {
	return o == Stalemate || o == DrawByClock || o == DeadPosition
}

// Outcome classifies the position, generating moves once.
func (p *Position) Outcome() Outcome {
	return p.OutcomeWith(p.HasLegalMove())
}

// OutcomeWith classifies the position given whether the side to move has a
// legal move, so callers that already generated successors need not repeat
// the work. Precedence: clock past the limit, checkmate, clock at the limit,
// dead position, stalemate.
func (p *Position) OutcomeWith(hasLegalMove bool) Outcome {
	switch {
	case !p.kingValid:
		return Invalid
	case p.halfMove > DrawMoves:
		return DrawByClock
	case p.inCheck && !hasLegalMove:
		return Checkmate
	case p.halfMove == DrawMoves:
		return DrawByClock
	case p.IsDeadPosition():
		return DeadPosition
	case !hasLegalMove:
		return Stalemate
	}
	return Ongoing
}

// IsCheckmate reports whether the side to move is checkmated.
func (p *Position) IsCheckmate() bool {
	return p.Outcome() == Checkmate
}

// IsStalemate reports whether the side to move has no legal move and is not
// in check, and no earlier draw rule applies.
func (p *Position) IsStalemate() bool {
	return p.Outcome() == Stalemate
}

// IsDraw reports whether the position is drawn by any rule.
func (p *Position) IsDraw() bool {
	return p.Outcome().IsDraw()
}

// CanClaimDraw reports whether the 50-move rule allows a draw claim.
func (p *Position) CanClaimDraw() bool {
	return p.halfMove >= ClaimDrawMoves
}
