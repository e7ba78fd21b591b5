package position

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hailam/chessproblem/internal/board"
)

// StartXFEN is the XFEN record of the initial position.
const StartXFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Parse decodes an XFEN record onto a board of the given backend. The clock
// fields are optional and default to 0 and 1.
func Parse(xfen string, backend board.Backend) (*Position, error) {
	parts := strings.Fields(xfen)
	if len(parts) < 4 || len(parts) > 6 {
		return nil, fmt.Errorf("%w: need 4 to 6 fields, got %d", board.ErrMalformedXFEN, len(parts))
	}
	return parseFields(parts, backend)
}

// MustParse is Parse for records known to be valid. It panics on error.
func MustParse(xfen string, backend board.Backend) *Position {
	p, err := Parse(xfen, backend)
	if err != nil {
		panic(err)
	}
	return p
}

func parseFields(parts []string, backend board.Backend) (*Position, error) {
	b, err := board.ParsePlacement(parts[0], backend)
	if err != nil {
		return nil, err
	}

	var side board.Color
	switch parts[1] {
	case "w":
		side = board.White
	case "b":
		side = board.Black
	default:
		return nil, fmt.Errorf("%w: invalid side to move: %s", board.ErrMalformedXFEN, parts[1])
	}

	castling, err := parseCastlingRights(parts[2])
	if err != nil {
		return nil, err
	}

	enPassant := board.NoSquare
	if parts[3] != "-" {
		sq, err := board.ParseSquare(parts[3])
		if err != nil {
			return nil, fmt.Errorf("%w: invalid en passant square: %s", board.ErrMalformedXFEN, parts[3])
		}
		enPassant = sq
	}

	halfMove, fullMove := 0, 1
	if len(parts) > 4 {
		if halfMove, err = strconv.Atoi(parts[4]); err != nil {
			return nil, fmt.Errorf("%w: invalid half-move clock: %s", board.ErrMalformedXFEN, parts[4])
		}
	}
	if len(parts) > 5 {
		if fullMove, err = strconv.Atoi(parts[5]); err != nil {
			return nil, fmt.Errorf("%w: invalid full-move number: %s", board.ErrMalformedXFEN, parts[5])
		}
	}
	return New(b, side, castling, enPassant, halfMove, fullMove)
}

func parseCastlingRights(s string) (CastlingRights, error) {
	if s == "-" {
		return NoCastling, nil
	}
	var cr CastlingRights
	for _, c := range s {
		switch c {
		case 'K':
			cr |= WhiteKingSideCastle
		case 'Q':
			cr |= WhiteQueenSideCastle
		case 'k':
			cr |= BlackKingSideCastle
		case 'q':
			cr |= BlackQueenSideCastle
		default:
			return NoCastling, fmt.Errorf("%w: invalid castling character: %c", board.ErrMalformedXFEN, c)
		}
	}
	return cr, nil
}

// XFEN returns the six-field XFEN record of the position.
func (p *Position) XFEN() string {
	var sb strings.Builder
	sb.WriteString(board.Placement(p.board))

	sb.WriteByte(' ')
	if p.side == board.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(p.castling.String())

	sb.WriteByte(' ')
	sb.WriteString(p.enPassant.String())

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.halfMove))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.fullMove))
	return sb.String()
}
