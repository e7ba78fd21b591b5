package solver

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hailam/chessproblem/internal/board"
	"github.com/hailam/chessproblem/internal/position"
)

// ErrMalformedProblem is returned for problem lines that cannot be parsed.
var ErrMalformedProblem = errors.New("malformed problem")

// Mode is the problem stipulation.
type Mode uint8

const (
	// Helpmate: Black moves first and both sides cooperate so that White
	// mates Black.
	Helpmate Mode = iota
	// Selfmate: White moves first and forces Black to mate White against
	// Black's will.
	Selfmate
)

// String returns the stipulation keyword.
func (m Mode) String() string {
	if m == Selfmate {
		return "selfmate"
	}
	return "helpmate"
}

// FirstMover returns the side that moves first under the stipulation.
func (m Mode) FirstMover() board.Color {
	if m == Selfmate {
		return board.White
	}
	return board.Black
}

// ParseMode parses "helpmate" or "selfmate".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "helpmate":
		return Helpmate, nil
	case "selfmate":
		return Selfmate, nil
	}
	return Helpmate, fmt.Errorf("%w: unknown stipulation: %s", ErrMalformedProblem, s)
}

// Problem is a position with a stipulation and a move limit.
type Problem struct {
	Position *position.Position
	Mode     Mode
	Moves    int
}

// ParseProblem parses "<xfen> helpmate|selfmate <n>": the six XFEN fields,
// the stipulation and the number of full moves. The side to move must be
// the stipulation's first mover (Black for helpmate, White for selfmate);
// a mismatch is reported as ErrMalformedProblem rather than corrected.
func ParseProblem(line string, backend board.Backend) (Problem, error) {
	fields := strings.Fields(line)
	if len(fields) != 8 {
		return Problem{}, fmt.Errorf("%w: need 8 fields, got %d", ErrMalformedProblem, len(fields))
	}

	pos, err := position.Parse(strings.Join(fields[:6], " "), backend)
	if err != nil {
		return Problem{}, fmt.Errorf("%w: %w", ErrMalformedProblem, err)
	}

	mode, err := ParseMode(fields[6])
	if err != nil {
		return Problem{}, err
	}

	n, err := strconv.Atoi(fields[7])
	if err != nil || n < 1 {
		return Problem{}, fmt.Errorf("%w: invalid number of moves: %s", ErrMalformedProblem, fields[7])
	}

	if pos.SideToMove() != mode.FirstMover() {
		return Problem{}, fmt.Errorf("%w: %s starts with %s to move, got %s",
			ErrMalformedProblem, mode, mode.FirstMover(), pos.SideToMove())
	}
	return Problem{Position: pos, Mode: mode, Moves: n}, nil
}

// String returns the problem line.
func (pr Problem) String() string {
	return pr.Position.XFEN() + " " + pr.Mode.String() + " " + strconv.Itoa(pr.Moves)
}
