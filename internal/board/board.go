package board

import (
	"fmt"
	"strings"
)

// Board is a store of pieces by square. Implementations are immutable:
// Apply returns a new Board and leaves the receiver untouched.
type Board interface {
	// IsOccupied reports whether sq holds a piece. Squares outside the
	// board are never occupied.
	IsOccupied(sq Square) bool

	// PieceAt returns the piece on sq, or false when sq is empty.
	PieceAt(sq Square) (Piece, bool)

	// Pieces returns every piece on the board in no particular order.
	Pieces() []Piece

	// Apply returns a copy of the board with the writes performed in order.
	// Squares not written keep their contents; writing an empty Piece clears
	// the square.
	Apply(writes []Write) (Board, error)
}

// Generator is implemented by boards that generate destinations natively
// instead of through RayDestinations.
type Generator interface {
	Destinations(p Piece, mask MoveMask) Bitboard
}

// ThreatFinder is implemented by boards that can locate attackers of a
// square without probing piece by piece.
type ThreatFinder interface {
	Threatening(target Piece) Bitboard
}

// Write is a single square assignment for Board.Apply.
type Write struct {
	Square Square
	Piece  Piece
}

// Put places p on sq.
func Put(sq Square, p Piece) Write {
	return Write{Square: sq, Piece: p.At(sq)}
}

// Clear empties sq.
func Clear(sq Square) Write {
	return Write{Square: sq}
}

// Backend selects a Board implementation.
type Backend int

const (
	BitboardBackend Backend = iota
	ArrayBackend
)

// String returns the backend name used on command lines.
func (b Backend) String() string {
	if b == ArrayBackend {
		return "array"
	}
	return "bitboard"
}

// ParseBackend parses "array" or "bitboard".
func ParseBackend(s string) (Backend, error) {
	switch s {
	case "array":
		return ArrayBackend, nil
	case "bitboard", "":
		return BitboardBackend, nil
	}
	return BitboardBackend, fmt.Errorf("unknown board backend: %s", s)
}

// New returns an empty board of the given backend.
func (b Backend) New() Board {
	if b == ArrayBackend {
		return ArrayBoard{}
	}
	return BitBoard{}
}

// Destinations returns the squares p can travel to and/or capture on b,
// ignoring en passant, castling and whether the move leaves a king attacked.
func Destinations(b Board, p Piece, mask MoveMask) Bitboard {
	if g, ok := b.(Generator); ok {
		return g.Destinations(p, mask)
	}
	return RayDestinations(b, p, mask)
}

// Threatening returns the squares of every enemy piece that could capture
// target where it stands. A piece of type T attacks target exactly when a T
// of target's color placed on target's square could capture it. En passant
// is not considered.
func Threatening(b Board, target Piece) Bitboard {
	if tf, ok := b.(ThreatFinder); ok {
		return tf.Threatening(target)
	}
	var out Bitboard
	for _, pt := range PieceTypes {
		caps := Destinations(b, target.As(pt), Capture)
		for caps != 0 {
			sq := caps.PopLSB()
			if p, ok := b.PieceAt(sq); ok && p.Type == pt {
				out = out.Set(sq)
			}
		}
	}
	return out
}

// IsThreatened reports whether any enemy piece attacks target.
func IsThreatened(b Board, target Piece) bool {
	return Threatening(b, target) != 0
}

// Equal reports whether two boards hold the same pieces on the same squares,
// regardless of backend.
func Equal(a, b Board) bool {
	for sq := A1; sq < NoSquare; sq++ {
		pa, oka := a.PieceAt(sq)
		pb, okb := b.PieceAt(sq)
		if oka != okb || pa != pb {
			return false
		}
	}
	return true
}

// Grid renders the board as eight lines of piece characters, rank 8 first,
// with '.' for empty squares.
func Grid(b Board) string {
	var sb strings.Builder
	for y := Size - 1; y >= 0; y-- {
		for x := 0; x < Size; x++ {
			if p, ok := b.PieceAt(Square(y*Size + x)); ok {
				sb.WriteByte(p.Char())
			} else {
				sb.WriteByte('.')
			}
		}
		if y > 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
