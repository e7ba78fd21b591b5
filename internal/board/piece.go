package board

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
)

// Colors lists both sides in index order.
var Colors = [2]Color{White, Black}

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// HomeRank is the rank the side's pieces start on.
func (c Color) HomeRank() int {
	if c == White {
		return 0
	}
	return Size - 1
}

// Forward is the rank direction the side's pawns advance in.
func (c Color) Forward() int {
	if c == White {
		return 1
	}
	return -1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// PieceType represents the type of a chess piece. The zero value marks an
// empty square.
type PieceType uint8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
	// UltraKnight leaps like a knight but may repeat the same leap until it
	// is blocked (a nightrider).
	UltraKnight

	numPieceTypes = int(UltraKnight) + 1
)

// PieceTypes lists every real piece type.
var PieceTypes = [...]PieceType{Pawn, Knight, Bishop, Rook, Queen, King, UltraKnight}

// PromotionTypes lists the types a pawn may promote to, in generation order.
var PromotionTypes = [...]PieceType{Knight, Bishop, Rook, Queen}

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	case UltraKnight:
		return "UltraKnight"
	default:
		return "None"
	}
}

// Char returns the notation character for the piece type (lowercase).
func (pt PieceType) Char() byte {
	const chars = " pnbrqku"
	if int(pt) >= len(chars) {
		return ' '
	}
	return chars[pt]
}

// IsSlider reports whether the piece type moves along rays of unlimited range.
func (pt PieceType) IsSlider() bool {
	return pt == Bishop || pt == Rook || pt == Queen || pt == UltraKnight
}

// Piece is a piece of some color standing on some square. It is derived from
// a board, never stored apart from one.
type Piece struct {
	Type   PieceType
	Color  Color
	Square Square
}

// NewPiece creates a Piece standing on sq.
func NewPiece(pt PieceType, c Color, sq Square) Piece {
	return Piece{Type: pt, Color: c, Square: sq}
}

// IsEmpty returns true for the zero Piece.
func (p Piece) IsEmpty() bool {
	return p.Type == NoPieceType
}

// At returns the same piece moved to sq.
func (p Piece) At(sq Square) Piece {
	p.Square = sq
	return p
}

// As returns the same piece with a different type, used for promotions and
// for probing attacks.
func (p Piece) As(pt PieceType) Piece {
	p.Type = pt
	return p
}

// Char returns the notation character for the piece.
// Uppercase for white, lowercase for black.
func (p Piece) Char() byte {
	c := p.Type.Char()
	if p.Color == White && c != ' ' {
		c -= 'a' - 'A'
	}
	return c
}

// String returns a human readable description, e.g. "White Rook on a1".
func (p Piece) String() string {
	if p.IsEmpty() {
		return "empty"
	}
	return p.Color.String() + " " + p.Type.String() + " on " + p.Square.String()
}

// PieceFromChar converts a notation character to a piece type and color.
func PieceFromChar(c byte) (PieceType, Color, bool) {
	color := White
	if c >= 'a' && c <= 'z' {
		color = Black
		c -= 'a' - 'A'
	}
	switch c {
	case 'P':
		return Pawn, color, true
	case 'N':
		return Knight, color, true
	case 'B':
		return Bishop, color, true
	case 'R':
		return Rook, color, true
	case 'Q':
		return Queen, color, true
	case 'K':
		return King, color, true
	case 'U':
		return UltraKnight, color, true
	default:
		return NoPieceType, White, false
	}
}
