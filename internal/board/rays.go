package board

// MoveMask selects which destinations a generator reports.
type MoveMask uint8

const (
	// Travel selects empty squares a piece can move to.
	Travel MoveMask = 1 << iota
	// Capture selects squares holding an enemy piece the piece can take.
	Capture

	TravelOrCapture = Travel | Capture
)

type step struct{ dx, dy int }

var (
	knightLeaps = []step{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	diagonals   = []step{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	orthogonals = []step{{-1, 0}, {0, -1}, {0, 1}, {1, 0}}
	allSteps    = append(append([]step{}, diagonals...), orthogonals...)

	moveSteps = [numPieceTypes][]step{
		Knight:      knightLeaps,
		Bishop:      diagonals,
		Rook:        orthogonals,
		Queen:       allSteps,
		King:        allSteps,
		UltraKnight: knightLeaps,
	}
	moveRange = [numPieceTypes]int{
		Knight:      1,
		Bishop:      Size,
		Rook:        Size,
		Queen:       Size,
		King:        1,
		UltraKnight: Size,
	}
)

// RayDestinations walks every step direction of p outward from its square,
// stopping at the board edge or at the first occupied square. An occupied
// square is reported as a capture only when it holds an enemy piece.
func RayDestinations(b Board, p Piece, mask MoveMask) Bitboard {
	if p.Type == Pawn {
		return pawnRayDestinations(b, p, mask)
	}
	if int(p.Type) >= numPieceTypes {
		return Empty
	}
	var out Bitboard
	for _, d := range moveSteps[p.Type] {
		sq := p.Square
		for dist := 1; dist <= moveRange[p.Type]; dist++ {
			next, ok := sq.Offset(d.dx, d.dy)
			if !ok {
				break
			}
			sq = next
			if occupant, occupied := b.PieceAt(sq); occupied {
				if mask&Capture != 0 && occupant.Color != p.Color {
					out = out.Set(sq)
				}
				break
			}
			if mask&Travel != 0 {
				out = out.Set(sq)
			}
		}
	}
	return out
}

// pawnRayDestinations handles pushes (single, and double from the start
// rank through two empty squares) and diagonal forward captures.
func pawnRayDestinations(b Board, p Piece, mask MoveMask) Bitboard {
	var out Bitboard
	dir := p.Color.Forward()
	if mask&Travel != 0 {
		if one, ok := p.Square.Offset(0, dir); ok && !b.IsOccupied(one) {
			out = out.Set(one)
			if p.Square.Y() == p.Color.HomeRank()+dir {
				if two, ok := one.Offset(0, dir); ok && !b.IsOccupied(two) {
					out = out.Set(two)
				}
			}
		}
	}
	if mask&Capture != 0 {
		for _, dx := range [2]int{-1, 1} {
			sq, ok := p.Square.Offset(dx, dir)
			if !ok {
				continue
			}
			if occupant, occupied := b.PieceAt(sq); occupied && occupant.Color != p.Color {
				out = out.Set(sq)
			}
		}
	}
	return out
}
