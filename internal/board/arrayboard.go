package board

// ArrayBoard is the dense backend: one Piece per square. The zero value is
// an empty board. Move generation uses RayDestinations.
type ArrayBoard struct {
	squares [Size * Size]Piece
}

// IsOccupied implements Board.
func (b ArrayBoard) IsOccupied(sq Square) bool {
	return sq.IsValid() && !b.squares[sq].IsEmpty()
}

// PieceAt implements Board.
func (b ArrayBoard) PieceAt(sq Square) (Piece, bool) {
	if !b.IsOccupied(sq) {
		return Piece{}, false
	}
	return b.squares[sq], true
}

// Pieces implements Board.
func (b ArrayBoard) Pieces() []Piece {
	pieces := make([]Piece, 0, 32)
	for _, p := range b.squares {
		if !p.IsEmpty() {
			pieces = append(pieces, p)
		}
	}
	return pieces
}

// Apply implements Board.
func (b ArrayBoard) Apply(writes []Write) (Board, error) {
	for _, w := range writes {
		if !w.Square.IsValid() {
			return nil, ErrInvalidSquare
		}
		if w.Piece.IsEmpty() {
			b.squares[w.Square] = Piece{}
		} else {
			b.squares[w.Square] = w.Piece.At(w.Square)
		}
	}
	return b, nil
}

// Destinations implements Generator.
func (b ArrayBoard) Destinations(p Piece, mask MoveMask) Bitboard {
	return RayDestinations(b, p, mask)
}
