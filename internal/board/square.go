// Package board implements the board abstraction and move generators of the
// problem solver: square and piece primitives, 64-bit planes with rotations,
// a dense array backend and a rotated-bitboard backend.
package board

import (
	"errors"
	"fmt"
)

// Size is the number of files (and ranks) on the board.
const Size = 8

// ErrInvalidSquare is returned when a square index or coordinate pair lies
// outside the board.
var ErrInvalidSquare = errors.New("invalid square")

// Square represents a square on the chess board (0-63).
// Uses Little-Endian Rank-File Mapping: A1=0, H1=7, A8=56, H8=63.
type Square uint8

// Square constants for all 64 squares.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	NoSquare Square = 64
)

// X returns the file of the square (0-7, where 0=a).
func (sq Square) X() int {
	return int(sq) & 7
}

// Y returns the rank of the square (0-7, where 0=1).
func (sq Square) Y() int {
	return int(sq) >> 3
}

// IsValid returns true if the square is a board square (0-63).
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// IsLight reports whether the square is a light square. Same-coloured
// bishops share this parity.
func (sq Square) IsLight() bool {
	return (sq.X()+sq.Y())&1 == 1
}

// Offset returns the square dx files and dy ranks away, and false when that
// square is off the board.
func (sq Square) Offset(dx, dy int) (Square, bool) {
	x, y := sq.X()+dx, sq.Y()+dy
	if !onBoard(x, y) {
		return NoSquare, false
	}
	return Square(y*Size + x), true
}

// String returns the algebraic notation for the square (e.g., "e4").
func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.X(), '1'+sq.Y())
}

// SquareAt creates a square from file and rank (0-indexed).
func SquareAt(x, y int) (Square, error) {
	if !onBoard(x, y) {
		return NoSquare, fmt.Errorf("%w: (%d, %d)", ErrInvalidSquare, x, y)
	}
	return Square(y*Size + x), nil
}

// MustSquare is SquareAt for coordinates known to be on the board.
func MustSquare(x, y int) Square {
	sq, err := SquareAt(x, y)
	if err != nil {
		panic(err)
	}
	return sq
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	sq, err := SquareAt(int(s[0])-'a', int(s[1])-'1')
	if err != nil {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	return sq, nil
}

func onBoard(x, y int) bool {
	return x >= 0 && x < Size && y >= 0 && y < Size
}
