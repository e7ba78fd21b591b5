package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedXFEN is returned for placement or position records that do not
// follow the extended FEN grammar.
var ErrMalformedXFEN = errors.New("malformed XFEN")

// ParsePlacement parses the piece placement field of an XFEN record (ranks 8
// to 1 separated by '/', digits for runs of empty squares, 'U'/'u' for the
// ultra-knight) into an empty board of the given backend.
func ParsePlacement(placement string, backend Backend) (Board, error) {
	ranks := strings.Split(placement, "/")
	if len(ranks) != Size {
		return nil, fmt.Errorf("%w: need 8 ranks, got %d", ErrMalformedXFEN, len(ranks))
	}

	writes := make([]Write, 0, 32)
	for i, rankStr := range ranks {
		y := Size - 1 - i // XFEN starts from rank 8
		x := 0
		for j := 0; j < len(rankStr); j++ {
			c := rankStr[j]
			if x >= Size {
				return nil, fmt.Errorf("%w: too many squares in rank %d", ErrMalformedXFEN, y+1)
			}
			if c >= '1' && c <= '8' {
				x += int(c - '0')
				continue
			}
			pt, color, ok := PieceFromChar(c)
			if !ok {
				return nil, fmt.Errorf("%w: invalid piece character: %c", ErrMalformedXFEN, c)
			}
			sq := MustSquare(x, y)
			writes = append(writes, Put(sq, NewPiece(pt, color, sq)))
			x++
		}
		if x != Size {
			return nil, fmt.Errorf("%w: invalid number of squares in rank %d: got %d", ErrMalformedXFEN, y+1, x)
		}
	}
	return backend.New().Apply(writes)
}

// Placement encodes the board as an XFEN placement field.
func Placement(b Board) string {
	var sb strings.Builder
	for y := Size - 1; y >= 0; y-- {
		empty := 0
		for x := 0; x < Size; x++ {
			p, ok := b.PieceAt(MustSquare(x, y))
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(p.Char())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if y > 0 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}
