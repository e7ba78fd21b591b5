package position

import (
	"github.com/hailam/chessproblem/internal/board"
)

// Move is one of Simple, Castle, EnPassant or Promotion. Apply returns the
// successor position, or false when the move is not legal in p.
type Move interface {
	Apply(p *Position) (*Position, bool)

	// String returns coordinate notation (e2e4, e7e8q, e1g1).
	String() string

	valid(p *Position) bool
	play(p *Position) *Position
}

// CastleSide selects the wing of a castling move.
type CastleSide uint8

const (
	KingSide CastleSide = iota
	QueenSide
)

// String returns "O-O" or "O-O-O".
func (s CastleSide) String() string {
	if s == QueenSide {
		return "O-O-O"
	}
	return "O-O"
}

// castleMask lists the rights lost when a piece leaves or lands on a square.
var castleMask [64]CastlingRights

func init() {
	castleMask[board.E1] = WhiteKingSideCastle | WhiteQueenSideCastle
	castleMask[board.H1] = WhiteKingSideCastle
	castleMask[board.A1] = WhiteQueenSideCastle
	castleMask[board.E8] = BlackKingSideCastle | BlackQueenSideCastle
	castleMask[board.H8] = BlackKingSideCastle
	castleMask[board.A8] = BlackQueenSideCastle
}

func (p *Position) rightsAfter(from, to board.Square) CastlingRights {
	return p.castling &^ (castleMask[from] | castleMask[to])
}

// apply runs the shared legality envelope: the move's own precondition
// (unless the caller generated the move itself), then king validity of the
// result and safety of the mover's king.
func apply(p *Position, m Move, trusted bool) (*Position, bool) {
	if !p.kingValid {
		return nil, false
	}
	if !trusted && !m.valid(p) {
		return nil, false
	}
	next := m.play(p)
	if next == nil || !next.kingValid || next.IsCheck(p.side) {
		return nil, false
	}
	return next, true
}

// ownPiece returns the side to move's piece on sq.
func (p *Position) ownPiece(sq board.Square) (board.Piece, bool) {
	pc, ok := p.board.PieceAt(sq)
	if !ok || pc.Color != p.side {
		return board.Piece{}, false
	}
	return pc, true
}

func (p *Position) reaches(pc board.Piece, to board.Square) bool {
	return board.Destinations(p.board, pc, board.TravelOrCapture).IsSet(to)
}

func lastRank(c board.Color) int {
	return c.Other().HomeRank()
}

// Simple moves one piece to an empty square or onto an enemy piece. Pawn
// moves onto the last rank must be Promotions instead.
type Simple struct {
	From, To board.Square
}

// Apply implements Move.
func (m Simple) Apply(p *Position) (*Position, bool) { return apply(p, m, false) }

func (m Simple) valid(p *Position) bool {
	pc, ok := p.ownPiece(m.From)
	if !ok || !p.reaches(pc, m.To) {
		return false
	}
	return pc.Type != board.Pawn || m.To.Y() != lastRank(pc.Color)
}

func (m Simple) play(p *Position) *Position {
	pc, _ := p.board.PieceAt(m.From)
	reset := pc.Type == board.Pawn || p.board.IsOccupied(m.To)
	enPassant := board.NoSquare
	if pc.Type == board.Pawn && abs(m.To.Y()-m.From.Y()) == 2 {
		enPassant = board.MustSquare(m.From.X(), (m.From.Y()+m.To.Y())/2)
	}
	writes := []board.Write{board.Clear(m.From), board.Put(m.To, pc)}
	return p.successor(writes, p.rightsAfter(m.From, m.To), enPassant, reset)
}

func (m Simple) String() string { return m.From.String() + m.To.String() }

// Castle moves the king two squares toward a rook and the rook to the square
// the king crossed.
type Castle struct {
	Color board.Color
	Side  CastleSide
}

type castleGeometry struct {
	kingFrom, kingTo board.Square
	rookFrom, rookTo board.Square
	// empty must be vacant; transit must not be attacked.
	empty, transit []board.Square
}

var castles = [2][2]castleGeometry{
	board.White: {
		KingSide: {board.E1, board.G1, board.H1, board.F1,
			[]board.Square{board.F1, board.G1}, []board.Square{board.F1, board.G1}},
		QueenSide: {board.E1, board.C1, board.A1, board.D1,
			[]board.Square{board.B1, board.C1, board.D1}, []board.Square{board.D1, board.C1}},
	},
	board.Black: {
		KingSide: {board.E8, board.G8, board.H8, board.F8,
			[]board.Square{board.F8, board.G8}, []board.Square{board.F8, board.G8}},
		QueenSide: {board.E8, board.C8, board.A8, board.D8,
			[]board.Square{board.B8, board.C8, board.D8}, []board.Square{board.D8, board.C8}},
	},
}

// Apply implements Move.
func (m Castle) Apply(p *Position) (*Position, bool) { return apply(p, m, false) }

func (m Castle) valid(p *Position) bool {
	if m.Color != p.side || m.Color > board.Black || m.Side > QueenSide {
		return false
	}
	if !p.castling.CanCastle(m.Color, m.Side) || p.inCheck {
		return false
	}
	g := castles[m.Color][m.Side]
	if k, ok := p.ownPiece(g.kingFrom); !ok || k.Type != board.King {
		return false
	}
	if r, ok := p.ownPiece(g.rookFrom); !ok || r.Type != board.Rook {
		return false
	}
	for _, sq := range g.empty {
		if p.board.IsOccupied(sq) {
			return false
		}
	}
	for _, sq := range g.transit {
		if board.IsThreatened(p.board, board.NewPiece(board.King, m.Color, sq)) {
			return false
		}
	}
	return true
}

func (m Castle) play(p *Position) *Position {
	g := castles[m.Color][m.Side]
	writes := []board.Write{
		board.Clear(g.kingFrom),
		board.Clear(g.rookFrom),
		board.Put(g.kingTo, board.NewPiece(board.King, m.Color, g.kingTo)),
		board.Put(g.rookTo, board.NewPiece(board.Rook, m.Color, g.rookTo)),
	}
	return p.successor(writes, p.rightsAfter(g.kingFrom, g.rookFrom), board.NoSquare, false)
}

func (m Castle) String() string {
	if m.Color > board.Black || m.Side > QueenSide {
		return m.Side.String()
	}
	g := castles[m.Color][m.Side]
	return g.kingFrom.String() + g.kingTo.String()
}

// EnPassant captures the pawn that just made a double step, landing on the
// square it passed over.
type EnPassant struct {
	From, To board.Square
}

// victimSquare returns the square of the pawn captured by landing on target.
func victimSquare(target board.Square) board.Square {
	dy := -1
	if target.Y() < board.Size/2 {
		dy = 1
	}
	sq, _ := target.Offset(0, dy)
	return sq
}

// Apply implements Move.
func (m EnPassant) Apply(p *Position) (*Position, bool) { return apply(p, m, false) }

func (m EnPassant) valid(p *Position) bool {
	if p.enPassant == board.NoSquare || m.To != p.enPassant || p.board.IsOccupied(m.To) {
		return false
	}
	pawn, ok := p.ownPiece(m.From)
	if !ok || pawn.Type != board.Pawn {
		return false
	}
	if !board.PawnAttacks(pawn.Color, m.From).IsSet(m.To) {
		return false
	}
	victim, ok := p.board.PieceAt(victimSquare(m.To))
	return ok && victim.Type == board.Pawn && victim.Color != p.side
}

func (m EnPassant) play(p *Position) *Position {
	pawn, _ := p.board.PieceAt(m.From)
	writes := []board.Write{
		board.Clear(m.From),
		board.Clear(victimSquare(m.To)),
		board.Put(m.To, pawn),
	}
	return p.successor(writes, p.castling, board.NoSquare, true)
}

func (m EnPassant) String() string { return m.From.String() + m.To.String() }

// Promotion moves a pawn onto the last rank, replacing it with Piece.
type Promotion struct {
	From, To board.Square
	Piece    board.PieceType
}

// Apply implements Move.
func (m Promotion) Apply(p *Position) (*Position, bool) { return apply(p, m, false) }

func (m Promotion) valid(p *Position) bool {
	switch m.Piece {
	case board.Knight, board.Bishop, board.Rook, board.Queen:
	default:
		return false
	}
	pawn, ok := p.ownPiece(m.From)
	if !ok || pawn.Type != board.Pawn || m.To.Y() != lastRank(pawn.Color) {
		return false
	}
	return p.reaches(pawn, m.To)
}

func (m Promotion) play(p *Position) *Position {
	pawn, _ := p.board.PieceAt(m.From)
	writes := []board.Write{board.Clear(m.From), board.Put(m.To, pawn.As(m.Piece))}
	return p.successor(writes, p.rightsAfter(m.From, m.To), board.NoSquare, true)
}

func (m Promotion) String() string {
	return m.From.String() + m.To.String() + string(m.Piece.Char())
}
