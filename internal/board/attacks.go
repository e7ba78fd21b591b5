package board

// Line kinds for sliding lookups.
const (
	lineRank = iota
	lineFile
	lineDiagonal
	lineAntiDiagonal
	numLineKinds
)

// Pre-computed attack tables. Built once in init and read-only afterwards.
var (
	knightAttacks [64]Bitboard
	kingAttacks   [64]Bitboard
	pawnAttacks   [2][64]Bitboard // [Color][Square]
	pawnPushes    [2][64]Bitboard // [Color][Square] - single push targets

	// ultraKnightRays holds, per square and leap, the squares reached by
	// repeating the leap, nearest first.
	ultraKnightRays [64][8][]Square

	// travelMasks holds every square on the line through a square except the
	// square itself.
	travelMasks [numLineKinds][64]Bitboard

	// lineAttacks maps the occupancy byte of a line, as extracted from the
	// rotated plane, to the reachable squares including the first blockers.
	lineAttacks [numLineKinds][64][256]Bitboard
)

func init() {
	var empty ArrayBoard
	for sq := A1; sq < NoSquare; sq++ {
		knightAttacks[sq] = RayDestinations(empty, NewPiece(Knight, White, sq), Travel)
		kingAttacks[sq] = RayDestinations(empty, NewPiece(King, White, sq), Travel)
		for _, c := range Colors {
			initPawnTables(c, sq)
		}
		initUltraKnightRays(sq)
		for kind := 0; kind < numLineKinds; kind++ {
			initLine(kind, sq)
		}
	}
}

func initPawnTables(c Color, sq Square) {
	dir := c.Forward()
	if push, ok := sq.Offset(0, dir); ok {
		pawnPushes[c][sq] = SquareBB(push)
	}
	for _, dx := range [2]int{-1, 1} {
		if target, ok := sq.Offset(dx, dir); ok {
			pawnAttacks[c][sq] |= SquareBB(target)
		}
	}
}

func initUltraKnightRays(sq Square) {
	for i, leap := range knightLeaps {
		var ray []Square
		for cur, ok := sq.Offset(leap.dx, leap.dy); ok; cur, ok = cur.Offset(leap.dx, leap.dy) {
			ray = append(ray, cur)
		}
		ultraKnightRays[sq][i] = ray
	}
}

// lineSquares lists the squares of the given line through sq in the bit
// order of the extracted occupancy byte.
func lineSquares(kind int, sq Square) []Square {
	x, y := sq.X(), sq.Y()
	squares := make([]Square, 0, Size)
	switch kind {
	case lineRank:
		for f := 0; f < Size; f++ {
			squares = append(squares, MustSquare(f, y))
		}
	case lineFile:
		for r := 0; r < Size; r++ {
			squares = append(squares, MustSquare(x, r))
		}
	case lineDiagonal:
		d := x - y
		for f := max(d, 0); f < Size && f-d < Size; f++ {
			squares = append(squares, MustSquare(f, f-d))
		}
	case lineAntiDiagonal:
		s := x + y
		for f := max(s-(Size-1), 0); f < Size && s-f >= 0; f++ {
			squares = append(squares, MustSquare(f, s-f))
		}
	}
	return squares
}

func initLine(kind int, sq Square) {
	squares := lineSquares(kind, sq)
	pos := 0
	for i, s := range squares {
		if s == sq {
			pos = i
		} else {
			travelMasks[kind][sq] |= SquareBB(s)
		}
	}
	for occ := 0; occ < 256; occ++ {
		var reach Bitboard
		for i := pos + 1; i < len(squares); i++ {
			reach |= SquareBB(squares[i])
			if occ&(1<<i) != 0 {
				break
			}
		}
		for i := pos - 1; i >= 0; i-- {
			reach |= SquareBB(squares[i])
			if occ&(1<<i) != 0 {
				break
			}
		}
		lineAttacks[kind][sq][occ] = reach
	}
}

// lineOccupancy masks occ with the line's travel mask, rotates the blockers
// so the line lies on one rank and extracts that rank as a byte.
func lineOccupancy(kind int, sq Square, occ Bitboard) uint8 {
	blockers := occ & travelMasks[kind][sq]
	x, y := sq.X(), sq.Y()
	switch kind {
	case lineRank:
		return blockers.Row(y)
	case lineFile:
		return blockers.Rotate90().Row(Size - 1 - x)
	case lineDiagonal:
		return DiagonalFromRotated45(blockers.Rotate45(), x, y)
	default:
		return DiagonalFromRotated45Anti(blockers.Rotate45Anti(), x, y)
	}
}

func slide(kind int, sq Square, occ Bitboard) Bitboard {
	return lineAttacks[kind][sq][lineOccupancy(kind, sq, occ)]
}

// RookAttacks returns the squares a rook on sq reaches given the occupancy.
// The first blocker on each ray is included regardless of its color.
func RookAttacks(sq Square, occ Bitboard) Bitboard {
	return slide(lineRank, sq, occ) | slide(lineFile, sq, occ)
}

// BishopAttacks returns the squares a bishop on sq reaches given the occupancy.
func BishopAttacks(sq Square, occ Bitboard) Bitboard {
	return slide(lineDiagonal, sq, occ) | slide(lineAntiDiagonal, sq, occ)
}

// QueenAttacks returns the squares a queen on sq reaches given the occupancy.
func QueenAttacks(sq Square, occ Bitboard) Bitboard {
	return RookAttacks(sq, occ) | BishopAttacks(sq, occ)
}

// UltraKnightAttacks returns the squares reached by repeated knight leaps
// from sq, each ray stopping at its first occupied square.
func UltraKnightAttacks(sq Square, occ Bitboard) Bitboard {
	var out Bitboard
	for _, ray := range ultraKnightRays[sq] {
		for _, s := range ray {
			out |= SquareBB(s)
			if occ.IsSet(s) {
				break
			}
		}
	}
	return out
}

// KnightAttacks returns the knight leaps from sq.
func KnightAttacks(sq Square) Bitboard {
	return knightAttacks[sq]
}

// KingAttacks returns the squares adjacent to sq.
func KingAttacks(sq Square) Bitboard {
	return kingAttacks[sq]
}

// PawnAttacks returns the diagonal capture squares of a c pawn on sq.
func PawnAttacks(c Color, sq Square) Bitboard {
	return pawnAttacks[c][sq]
}

// Attacks returns the capture pattern of a non-pawn piece type, or a pawn's
// diagonal captures, against the occupancy plane.
func Attacks(pt PieceType, c Color, sq Square, occ Bitboard) Bitboard {
	if !sq.IsValid() {
		return Empty
	}
	switch pt {
	case Pawn:
		return pawnAttacks[c][sq]
	case Knight:
		return knightAttacks[sq]
	case Bishop:
		return BishopAttacks(sq, occ)
	case Rook:
		return RookAttacks(sq, occ)
	case Queen:
		return QueenAttacks(sq, occ)
	case King:
		return kingAttacks[sq]
	case UltraKnight:
		return UltraKnightAttacks(sq, occ)
	}
	return Empty
}

// pawnPushTargets returns the single and double push squares for a c pawn
// on sq. The double push needs both squares empty and the start rank.
func pawnPushTargets(c Color, sq Square, occ Bitboard) Bitboard {
	one := pawnPushes[c][sq]
	if one == 0 || one&occ != 0 {
		return Empty
	}
	if sq.Y() != c.HomeRank()+c.Forward() {
		return one
	}
	two := pawnPushes[c][one.LSB()]
	if two&occ != 0 {
		return one
	}
	return one | two
}
