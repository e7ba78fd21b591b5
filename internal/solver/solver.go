// Package solver searches the game tree exhaustively to solve helpmate and
// selfmate problems.
package solver

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"

	"github.com/hailam/chessproblem/internal/board"
	"github.com/hailam/chessproblem/internal/position"
)

// unsolved marks a subtree in which the stipulation cannot be met within the
// remaining plies.
const unsolved = -1

// Solution is a key move together with the position it leads to and the
// shortest number of full moves in which the stipulation is met after it.
type Solution struct {
	Move     position.Move
	Position *position.Position
	Moves    int
}

// String returns "<placement> solved in <k> moves".
func (s Solution) String() string {
	return fmt.Sprintf("%s solved in %d moves", board.Placement(s.Position.Board()), s.Moves)
}

// Result is the outcome of solving one problem.
type Result struct {
	Problem   Problem
	Solutions []Solution
	Nodes     uint64
	Elapsed   time.Duration
}

// Solved reports whether at least one key move was found.
func (r Result) Solved() bool {
	return len(r.Solutions) > 0
}

// Option configures a Solver.
type Option func(*Solver)

// WithLogger sets the logger. Root moves are logged at V(1), progress at V(2).
func WithLogger(l logr.Logger) Option {
	return func(s *Solver) { s.log = l }
}

// WithParallelism sets how many root moves are searched concurrently.
// Values below 1 mean sequential.
func WithParallelism(n int) Option {
	return func(s *Solver) { s.parallel = max(n, 1) }
}

// WithMemo shares a result memo between searches.
func WithMemo(m *Memo) Option {
	return func(s *Solver) { s.memo = m }
}

// Solver runs searches. A Solver may be used for many problems and from
// several goroutines.
type Solver struct {
	log      logr.Logger
	parallel int
	memo     *Memo
	nodes    atomic.Uint64
}

// New creates a Solver.
func New(opts ...Option) *Solver {
	s := &Solver{log: logr.Discard(), parallel: 1}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Nodes returns the number of positions visited by all searches so far.
func (s *Solver) Nodes() uint64 {
	return s.nodes.Load()
}

// Solve searches every root move with a budget of 2N-1 further plies and
// returns, in generation order, those after which the stipulation is met
// within N moves. King-invalid positions yield no solutions. The search
// stops early with the context's error when ctx is done.
func (s *Solver) Solve(ctx context.Context, pr Problem) (Result, error) {
	start := time.Now()
	res := Result{Problem: pr}
	root := pr.Position
	if !root.IsKingValid() {
		s.log.V(1).Info("position is not king-valid, skipping", "xfen", root.XFEN())
		return res, nil
	}

	succ := root.Successors()
	results := make([]int, len(succ))
	var nodes atomic.Uint64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallel)
	for i, c := range succ {
		g.Go(func() error {
			w := &worker{ctx: gctx, mode: pr.Mode, memo: s.memo}
			results[i] = w.search(c.Position, 2*pr.Moves-1)
			nodes.Add(w.nodes)
			s.nodes.Add(w.nodes)
			if w.err != nil {
				return w.err
			}
			s.log.V(1).Info("root move searched", "move", c.Move.String(), "result", results[i], "nodes", w.nodes)
			return nil
		})
	}
	err := g.Wait()
	res.Nodes = nodes.Load()
	res.Elapsed = time.Since(start)
	if err != nil {
		return res, fmt.Errorf("search interrupted after %d nodes: %w", res.Nodes, err)
	}

	for i, r := range results {
		if r == unsolved {
			continue
		}
		if moves := r - root.FullMoveNumber(); moves <= pr.Moves {
			res.Solutions = append(res.Solutions, Solution{Move: succ[i].Move, Position: succ[i].Position, Moves: moves})
		}
	}
	s.log.V(1).Info("solved", "problem", pr.String(), "solutions", len(res.Solutions), "nodes", res.Nodes, "elapsed", res.Elapsed)
	return res, nil
}

// worker searches one root subtree. Workers are not shared between
// goroutines.
type worker struct {
	ctx   context.Context
	mode  Mode
	memo  *Memo
	nodes uint64
	err   error
}

// stopped returns true once the context is done. The context is polled every
// 4096 nodes.
func (w *worker) stopped() bool {
	if w.err != nil {
		return true
	}
	if w.nodes&4095 == 0 {
		if err := w.ctx.Err(); err != nil {
			w.err = err
			return true
		}
	}
	return false
}

// search returns the full-move number at which the stipulation is met below
// p within budget plies, or unsolved.
func (w *worker) search(p *position.Position, budget int) int {
	if w.stopped() {
		return unsolved
	}
	w.nodes++

	if w.memo != nil {
		if r, ok := w.memo.get(w.mode, p, budget); ok {
			return r
		}
	}

	var r int
	if w.mode == Selfmate {
		r = w.selfmate(p, budget)
	} else {
		r = w.helpmate(p, budget)
	}

	if w.memo != nil && w.err == nil {
		w.memo.put(w.mode, p, budget, r)
	}
	return r
}
