// Package position holds the immutable game state built on a board: side
// to move, castling rights, en passant target and clocks, together with the
// move types and the legality rules that produce successor positions.
package position

import (
	"fmt"

	"github.com/hailam/chessproblem/internal/board"
)

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the XFEN castling rights string.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// CanCastle returns true if the right for the given side and wing is set.
func (cr CastlingRights) CanCastle(c board.Color, side CastleSide) bool {
	return cr&castleRight(c, side) != 0
}

func castleRight(c board.Color, side CastleSide) CastlingRights {
	right := WhiteKingSideCastle
	if side == QueenSide {
		right = WhiteQueenSideCastle
	}
	if c == board.Black {
		right <<= 2
	}
	return right
}

// Clock thresholds, counted in full-move pairs.
const (
	ClaimDrawMoves = 50
	DrawMoves      = 75
)

// Position is an immutable chess position. New positions are obtained by
// applying a Move or by parsing an XFEN record; nothing mutates an existing
// one, so positions may be shared freely between goroutines.
type Position struct {
	board     board.Board
	side      board.Color
	castling  CastlingRights
	enPassant board.Square
	halfMove  int
	fullMove  int

	// Derived on construction.
	kings     [2]board.Square
	kingValid bool
	inCheck   bool
}

// New builds a position from its parts and validates the clocks and the en
// passant square.
func New(b board.Board, side board.Color, castling CastlingRights, enPassant board.Square, halfMove, fullMove int) (*Position, error) {
	if side != board.White && side != board.Black {
		return nil, fmt.Errorf("%w: invalid side to move: %d", board.ErrMalformedXFEN, side)
	}
	if castling&^AllCastling != 0 {
		return nil, fmt.Errorf("%w: invalid castling rights: %#x", board.ErrMalformedXFEN, uint8(castling))
	}
	if enPassant != board.NoSquare && !enPassant.IsValid() {
		return nil, fmt.Errorf("%w: en passant", board.ErrInvalidSquare)
	}
	if enPassant != board.NoSquare && enPassant.Y() != enPassantRank(side) {
		return nil, fmt.Errorf("%w: en passant square %s with %s to move", board.ErrMalformedXFEN, enPassant, side)
	}
	if halfMove < 0 {
		return nil, fmt.Errorf("%w: invalid half-move clock: %d", board.ErrMalformedXFEN, halfMove)
	}
	if fullMove < 1 {
		return nil, fmt.Errorf("%w: invalid full-move number: %d", board.ErrMalformedXFEN, fullMove)
	}
	return newPosition(b, side, castling, enPassant, halfMove, fullMove), nil
}

// enPassantRank returns the rank index of a capturable en passant target
// when side is to move.
func enPassantRank(side board.Color) int {
	if side == board.White {
		return 5
	}
	return 2
}

func newPosition(b board.Board, side board.Color, castling CastlingRights, enPassant board.Square, halfMove, fullMove int) *Position {
	p := &Position{
		board:     b,
		side:      side,
		castling:  castling,
		enPassant: enPassant,
		halfMove:  halfMove,
		fullMove:  fullMove,
		kings:     [2]board.Square{board.NoSquare, board.NoSquare},
	}
	p.findKings()
	if p.kingValid {
		p.inCheck = p.IsCheck(side)
	}
	return p
}

// findKings records the king squares and decides king validity: exactly one
// king per color and the two kings not on adjacent squares.
func (p *Position) findKings() {
	var count [2]int
	for _, pc := range p.board.Pieces() {
		if pc.Type == board.King {
			count[pc.Color]++
			p.kings[pc.Color] = pc.Square
		}
	}
	if count[board.White] != 1 || count[board.Black] != 1 {
		return
	}
	w, b := p.kings[board.White], p.kings[board.Black]
	p.kingValid = chebyshev(w, b) > 1
}

func chebyshev(a, b board.Square) int {
	return max(abs(a.X()-b.X()), abs(a.Y()-b.Y()))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Board returns the piece placement.
func (p *Position) Board() board.Board { return p.board }

// SideToMove returns the color to play.
func (p *Position) SideToMove() board.Color { return p.side }

// Castling returns the castling rights.
func (p *Position) Castling() CastlingRights { return p.castling }

// EnPassant returns the en passant target square, or NoSquare.
func (p *Position) EnPassant() board.Square { return p.enPassant }

// HalfMoveClock returns the number of full-move pairs since the last capture
// or pawn move.
func (p *Position) HalfMoveClock() int { return p.halfMove }

// FullMoveNumber returns the full-move counter, starting at 1.
func (p *Position) FullMoveNumber() int { return p.fullMove }

// KingSquare returns the square of c's king, or NoSquare when the position is
// not king-valid.
func (p *Position) KingSquare(c board.Color) board.Square {
	if !p.kingValid {
		return board.NoSquare
	}
	return p.kings[c]
}

// IsKingValid reports whether each side has exactly one king and the kings
// are not adjacent.
func (p *Position) IsKingValid() bool { return p.kingValid }

// InCheck reports whether the side to move is in check.
func (p *Position) InCheck() bool { return p.inCheck }

// IsCheck reports whether c's king is attacked. En passant captures are not
// counted as attacks.
func (p *Position) IsCheck(c board.Color) bool {
	if !p.kingValid {
		return false
	}
	return board.IsThreatened(p.board, board.NewPiece(board.King, c, p.kings[c]))
}

// String returns the XFEN record of the position.
func (p *Position) String() string {
	return p.XFEN()
}

// successor applies writes to the board and advances the side to move and
// the clocks. reset marks a capture or pawn move.
func (p *Position) successor(writes []board.Write, castling CastlingRights, enPassant board.Square, reset bool) *Position {
	b, err := p.board.Apply(writes)
	if err != nil {
		return nil
	}
	halfMove, fullMove := p.halfMove, p.fullMove
	switch {
	case reset:
		halfMove = 0
	case p.side == board.Black:
		halfMove++
	}
	if p.side == board.Black {
		fullMove++
	}
	return newPosition(b, p.side.Other(), castling, enPassant, halfMove, fullMove)
}
