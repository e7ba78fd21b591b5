package board

// BitBoard is the plane backend: global occupancy plus one plane per color
// and per piece type. The zero value is an empty board. Sliders are resolved
// through the rotated lookup tables in attacks.go.
type BitBoard struct {
	occupied Bitboard
	colors   [2]Bitboard
	types    [numPieceTypes]Bitboard
}

// IsOccupied implements Board.
func (b BitBoard) IsOccupied(sq Square) bool {
	return b.occupied.IsSet(sq)
}

// PieceAt implements Board.
func (b BitBoard) PieceAt(sq Square) (Piece, bool) {
	if !b.occupied.IsSet(sq) {
		return Piece{}, false
	}
	color := White
	if b.colors[Black].IsSet(sq) {
		color = Black
	}
	for _, pt := range PieceTypes {
		if b.types[pt].IsSet(sq) {
			return NewPiece(pt, color, sq), true
		}
	}
	return Piece{}, false
}

// Pieces implements Board.
func (b BitBoard) Pieces() []Piece {
	pieces := make([]Piece, 0, b.occupied.PopCount())
	for _, c := range Colors {
		for _, pt := range PieceTypes {
			for bb := b.types[pt] & b.colors[c]; bb != 0; {
				pieces = append(pieces, NewPiece(pt, c, bb.PopLSB()))
			}
		}
	}
	return pieces
}

// Apply implements Board.
func (b BitBoard) Apply(writes []Write) (Board, error) {
	for _, w := range writes {
		if !w.Square.IsValid() {
			return nil, ErrInvalidSquare
		}
		sq := w.Square
		b.occupied = b.occupied.Clear(sq)
		for c := range b.colors {
			b.colors[c] = b.colors[c].Clear(sq)
		}
		for pt := range b.types {
			b.types[pt] = b.types[pt].Clear(sq)
		}
		p := w.Piece
		if p.IsEmpty() || int(p.Type) >= numPieceTypes || p.Color > Black {
			continue
		}
		b.occupied = b.occupied.Set(sq)
		b.colors[p.Color] = b.colors[p.Color].Set(sq)
		b.types[p.Type] = b.types[p.Type].Set(sq)
	}
	return b, nil
}

// Occupied returns the global occupancy plane.
func (b BitBoard) Occupied() Bitboard {
	return b.occupied
}

// ByColor returns the plane of c's pieces.
func (b BitBoard) ByColor(c Color) Bitboard {
	return b.colors[c]
}

// ByType returns the plane of every piece of type pt, both colors.
func (b BitBoard) ByType(pt PieceType) Bitboard {
	if int(pt) >= numPieceTypes {
		return Empty
	}
	return b.types[pt]
}

// Destinations implements Generator.
func (b BitBoard) Destinations(p Piece, mask MoveMask) Bitboard {
	if !p.Square.IsValid() {
		return Empty
	}
	enemy := b.colors[p.Color.Other()]
	if p.Type == Pawn {
		var out Bitboard
		if mask&Travel != 0 {
			out |= pawnPushTargets(p.Color, p.Square, b.occupied)
		}
		if mask&Capture != 0 {
			out |= pawnAttacks[p.Color][p.Square] & enemy
		}
		return out
	}
	reach := Attacks(p.Type, p.Color, p.Square, b.occupied)
	var out Bitboard
	if mask&Travel != 0 {
		out |= reach &^ b.occupied
	}
	if mask&Capture != 0 {
		out |= reach & enemy
	}
	return out
}

// Threatening implements ThreatFinder.
func (b BitBoard) Threatening(target Piece) Bitboard {
	if !target.Square.IsValid() {
		return Empty
	}
	enemy := b.colors[target.Color.Other()]
	var out Bitboard
	for _, pt := range PieceTypes {
		out |= Attacks(pt, target.Color, target.Square, b.occupied) & enemy & b.types[pt]
	}
	return out
}
