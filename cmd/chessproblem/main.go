package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"

	"github.com/hailam/chessproblem/internal/board"
	"github.com/hailam/chessproblem/internal/diagram"
	"github.com/hailam/chessproblem/internal/solver"
	"github.com/hailam/chessproblem/internal/storage"
)

var (
	problemLine = flag.String("problem", "", "problem line: <xfen> helpmate|selfmate <n> (default: read lines from stdin)")
	parallel    = flag.Int("parallel", runtime.NumCPU(), "root moves searched concurrently")
	timeout     = flag.Duration("timeout", 0, "time budget per problem (0 = none)")
	memoSize    = flag.Int64("memo", 1<<20, "search memo entries (0 disables)")
	backendName = flag.String("backend", board.BitboardBackend.String(), "board backend: bitboard or array")
	cacheDir    = flag.String("cache", "", "solution store directory (default: user data dir)")
	noCache     = flag.Bool("no-cache", false, "neither read nor write the solution store")
	diagramDir  = flag.String("diagram", "", "write PNG diagrams of each problem and solution to this directory")
	verbosity   = flag.Int("v", 0, "log verbosity")
	cpuprofile  = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()

	stdr.SetVerbosity(*verbosity)
	logger := stdr.New(log.New(os.Stderr, "", log.LstdFlags))

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		logger.Info("CPU profiling enabled", "path", *cpuprofile)
	}

	if err := run(logger); err != nil {
		logger.Error(err, "failed")
		pprof.StopCPUProfile()
		os.Exit(1)
	}
}

// app holds what every problem needs.
type app struct {
	log      logr.Logger
	backend  board.Backend
	solver   *solver.Solver
	store    *storage.Storage
	renderer *diagram.Renderer
	out      io.Writer
}

func run(logger logr.Logger) error {
	backend, err := board.ParseBackend(*backendName)
	if err != nil {
		return err
	}

	a := &app{log: logger, backend: backend, out: os.Stdout}

	opts := []solver.Option{solver.WithLogger(logger), solver.WithParallelism(*parallel)}
	if *memoSize > 0 {
		memo, err := solver.NewMemo(*memoSize)
		if err != nil {
			return fmt.Errorf("create memo: %w", err)
		}
		defer memo.Close()
		opts = append(opts, solver.WithMemo(memo))
	}
	a.solver = solver.New(opts...)

	if !*noCache {
		a.store, err = storage.Open(*cacheDir, logger)
		if err != nil {
			return err
		}
		defer a.store.Close()
	}

	if *diagramDir != "" {
		if err := os.MkdirAll(*diagramDir, 0755); err != nil {
			return err
		}
		if a.renderer, err = diagram.New(48); err != nil {
			return err
		}
	}

	if *problemLine != "" {
		return a.solve(0, *problemLine)
	}

	var failed int
	scanner := bufio.NewScanner(os.Stdin)
	for n := 0; scanner.Scan(); {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := a.solve(n, line); err != nil {
			logger.Error(err, "problem failed", "line", line)
			failed++
		}
		n++
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d problems failed", failed)
	}
	return nil
}

// solve parses, solves or looks up, prints and renders one problem.
func (a *app) solve(n int, line string) error {
	pr, err := solver.ParseProblem(line, a.backend)
	if err != nil {
		return err
	}
	key := pr.String()

	rec, cached, err := a.lookup(key)
	if err != nil {
		return err
	}
	if !cached {
		ctx := context.Background()
		if *timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, *timeout)
			defer cancel()
		}

		res, err := a.solver.Solve(ctx, pr)
		if errors.Is(err, context.DeadlineExceeded) {
			fmt.Fprintf(a.out, "%s\ntimed out after %s (%s nodes)\n", key, res.Elapsed.Round(time.Millisecond), humanize.Comma(int64(res.Nodes)))
			return nil
		}
		if err != nil {
			return err
		}
		rec = storage.NewRecord(res)
		if a.store != nil {
			if err := a.store.Save(rec); err != nil {
				a.log.Error(err, "could not store solution", "problem", key)
			}
		}
	}

	a.print(rec, cached)
	return a.render(n, pr, rec)
}

func (a *app) lookup(key string) (*storage.Record, bool, error) {
	if a.store == nil {
		return nil, false, nil
	}
	return a.store.Load(key)
}

func (a *app) print(rec *storage.Record, cached bool) {
	fmt.Fprintln(a.out, rec.Problem)
	if !rec.Solved() {
		fmt.Fprintln(a.out, "unresolved")
	}
	for _, s := range rec.Solutions {
		fmt.Fprintf(a.out, "%s  key %s\n", s, s.Move)
	}

	rate := 0.0
	if secs := rec.Elapsed.Seconds(); secs > 0 {
		rate = float64(rec.Nodes) / secs
	}
	source := ""
	if cached {
		source = fmt.Sprintf(", cached %s", humanize.Time(rec.SolvedAt))
	}
	fmt.Fprintf(a.out, "%s nodes in %s (%s)%s\n",
		humanize.Comma(int64(rec.Nodes)), rec.Elapsed.Round(time.Millisecond), humanize.SI(rate, "nodes/s"), source)
}

func (a *app) render(n int, pr solver.Problem, rec *storage.Record) error {
	if a.renderer == nil {
		return nil
	}
	name := filepath.Join(*diagramDir, fmt.Sprintf("problem-%03d.png", n))
	if err := a.renderer.SaveFile(name, pr.Position.Board()); err != nil {
		return err
	}
	for _, s := range rec.Solutions {
		b, err := board.ParsePlacement(s.Placement, a.backend)
		if err != nil {
			return err
		}
		name := filepath.Join(*diagramDir, fmt.Sprintf("problem-%03d-%s.png", n, s.Move))
		if err := a.renderer.SaveFile(name, b, diagram.MoveSquares(s.Move)...); err != nil {
			return err
		}
	}
	a.log.V(1).Info("diagrams written", "dir", *diagramDir, "count", len(rec.Solutions)+1)
	return nil
}
