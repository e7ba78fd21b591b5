package board

import "math/bits"

// Rotation angles understood by Rotate. Rotate45 and Rotate45Anti are
// pseudo-rotations and must always be applied last.
const (
	Angle0 = iota
	Angle45
	Angle90
	Angle90And45
	Angle180
	Angle180And45
	Angle90Anti
	Angle45Anti
)

// FlipVertical swaps rank y with rank 7-y.
func (b Bitboard) FlipVertical() Bitboard {
	return Bitboard(bits.ReverseBytes64(uint64(b)))
}

// Rotate180 maps (x, y) to (7-x, 7-y).
func (b Bitboard) Rotate180() Bitboard {
	return Bitboard(bits.Reverse64(uint64(b)))
}

// MirrorHorizontal swaps file x with file 7-x.
func (b Bitboard) MirrorHorizontal() Bitboard {
	return b.FlipVertical().Rotate180()
}

// FlipDiagonal mirrors the plane about the a1-h8 diagonal: (x, y) to (y, x).
func (b Bitboard) FlipDiagonal() Bitboard {
	const (
		k1 = 0x5500550055005500
		k2 = 0x3333000033330000
		k4 = 0x0F0F0F0F00000000
	)
	x := uint64(b)
	t := k4 & (x ^ (x << 28))
	x ^= t ^ (t >> 28)
	t = k2 & (x ^ (x << 14))
	x ^= t ^ (t >> 14)
	t = k1 & (x ^ (x << 7))
	x ^= t ^ (t >> 7)
	return Bitboard(x)
}

// FlipAntiDiagonal mirrors the plane about the a8-h1 diagonal: (x, y) to (7-y, 7-x).
func (b Bitboard) FlipAntiDiagonal() Bitboard {
	const (
		k1 = 0xAA00AA00AA00AA00
		k2 = 0xCCCC0000CCCC0000
		k4 = 0xF0F0F0F00F0F0F0F
	)
	x := uint64(b)
	t := x ^ (x << 36)
	x ^= k4 & (t ^ (x >> 36))
	t = k2 & (x ^ (x << 18))
	x ^= t ^ (t >> 18)
	t = k1 & (x ^ (x << 9))
	x ^= t ^ (t >> 9)
	return Bitboard(x)
}

// Rotate90 turns the plane clockwise: (x, y) to (y, 7-x). File x becomes
// rank 7-x with bit y set for rank y.
func (b Bitboard) Rotate90() Bitboard {
	return b.MirrorHorizontal().FlipDiagonal()
}

// Rotate90Anti turns the plane anticlockwise and undoes Rotate90.
func (b Bitboard) Rotate90Anti() Bitboard {
	return b.MirrorHorizontal().FlipAntiDiagonal()
}

// Rotate45 shifts file x down by x ranks (cyclically) so that every a1-h8
// diagonal lands on a single rank: (x, y) goes to (x, (y-x)&7).
func (b Bitboard) Rotate45() Bitboard {
	const (
		k1 = 0xAAAAAAAAAAAAAAAA
		k2 = 0xCCCCCCCCCCCCCCCC
		k4 = 0xF0F0F0F0F0F0F0F0
	)
	x := uint64(b)
	x ^= k1 & (x ^ bits.RotateLeft64(x, -8))
	x ^= k2 & (x ^ bits.RotateLeft64(x, -16))
	x ^= k4 & (x ^ bits.RotateLeft64(x, -32))
	return Bitboard(x)
}

// Rotate45Anti shifts file x down by 7-x ranks so that every a8-h1 diagonal
// lands on a single rank: (x, y) goes to (x, (x+y+1)&7).
func (b Bitboard) Rotate45Anti() Bitboard {
	const (
		k1 = 0x5555555555555555
		k2 = 0x3333333333333333
		k4 = 0x0F0F0F0F0F0F0F0F
	)
	x := uint64(b)
	x ^= k1 & (x ^ bits.RotateLeft64(x, -8))
	x ^= k2 & (x ^ bits.RotateLeft64(x, -16))
	x ^= k4 & (x ^ bits.RotateLeft64(x, -32))
	return Bitboard(x)
}

// Rotate applies one of the Angle* transforms.
func (b Bitboard) Rotate(angle int) Bitboard {
	switch angle {
	case Angle90Anti:
		return b.Rotate90Anti()
	case Angle45Anti:
		return b.Rotate45Anti()
	}
	if angle < 0 || angle > Angle180And45 {
		return b
	}
	if angle&Angle180 != 0 {
		b = b.Rotate180()
	}
	if angle&Angle90 != 0 {
		b = b.Rotate90()
	}
	if angle&Angle45 != 0 {
		b = b.Rotate45()
	}
	return b
}

// Extraction tables for pseudo-rotated planes, indexed by ((x-y)+16)&15 for
// Rotate45 and by (x+y)^7 for Rotate45Anti. Bit 0 of the extracted byte is
// the lowest file on the diagonal.
var (
	rotate45Mask = [16]Bitboard{
		0xFF, 0xFE00000000000000, 0xFC000000000000, 0xF80000000000,
		0xF000000000, 0xE0000000, 0xC00000, 0x8000,
		0x0, 0x100000000000000, 0x3000000000000, 0x70000000000,
		0xF00000000, 0x1F000000, 0x3F0000, 0x7F00,
	}
	rotate45Shift = [16]uint{
		0, 57, 50, 43, 36, 29, 22, 15,
		0, 56, 48, 40, 32, 24, 16, 8,
	}

	rotate45AntiMask = [16]Bitboard{
		0xFF, 0x7F00000000000000, 0x3F000000000000, 0x1F0000000000,
		0xF00000000, 0x7000000, 0x30000, 0x100,
		0x0, 0x8000000000000000, 0xC0000000000000, 0xE00000000000,
		0xF000000000, 0xF8000000, 0xFC0000, 0xFE00,
	}
	rotate45AntiShift = [16]uint{
		0, 56, 48, 40, 32, 24, 16, 8,
		0, 63, 54, 45, 36, 27, 18, 9,
	}
)

// DiagonalFromRotated45 extracts the a1-h8 diagonal through (x, y) from a
// plane produced by Rotate45.
func DiagonalFromRotated45(b Bitboard, x, y int) uint8 {
	i := ((x - y) + 16) & 15
	return uint8((b & rotate45Mask[i]) >> rotate45Shift[i])
}

// DiagonalFromRotated45Anti extracts the a8-h1 diagonal through (x, y) from a
// plane produced by Rotate45Anti.
func DiagonalFromRotated45Anti(b Bitboard, x, y int) uint8 {
	i := (x + y) ^ 7
	return uint8((b & rotate45AntiMask[i]) >> rotate45AntiShift[i])
}

// diagonalByRowShift derives the same byte as DiagonalFromRotated45 from the
// diagonal's rank, start file and length instead of the mask table.
func diagonalByRowShift(b Bitboard, x, y int) uint8 {
	d := x - y
	row, shift, length := -d, 0, Size+d
	if d >= 0 {
		row, shift, length = (Size-d)&7, d, Size-d
	}
	return uint8((b >> uint(row*Size+shift)) & (1<<uint(length) - 1))
}

// antiDiagonalByRowShift is diagonalByRowShift for Rotate45Anti planes.
func antiDiagonalByRowShift(b Bitboard, x, y int) uint8 {
	s := x + y
	row, shift, length := (s+1)&7, 0, s+1
	if s >= Size {
		shift, length = s-(Size-1), 2*Size-1-s
	}
	return uint8((b >> uint(row*Size+shift)) & (1<<uint(length) - 1))
}
