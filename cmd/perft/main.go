package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/hailam/chessproblem/internal/board"
	"github.com/hailam/chessproblem/internal/perft"
	"github.com/hailam/chessproblem/internal/position"
)

func main() {
	xfen := flag.String("fen", position.StartXFEN, "XFEN record (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	stats := flag.Bool("stats", false, "Print capture, castle, check and mate counts of the last ply")
	verify := flag.Bool("verify", false, "Compare per-move counts with dragontoothmg and goosemg")
	backendName := flag.String("backend", board.BitboardBackend.String(), "Board backend: bitboard or array")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	backend, err := board.ParseBackend(*backendName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}
	p, err := position.Parse(*xfen, backend)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Parse error: %v\n", err)
		os.Exit(2)
	}

	if *verify {
		mismatches, err := perft.Verify(p, *depth, perft.Oracles()...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "verify: %v\n", err)
			os.Exit(2)
		}
		for _, m := range mismatches {
			fmt.Println(m)
		}
		if len(mismatches) > 0 {
			os.Exit(1)
		}
		fmt.Println("ok")
		return
	}

	if *divide {
		var sum uint64
		for _, e := range perft.Divide(p, *depth) {
			fmt.Printf("%s: %d\n", e.Move, e.Nodes)
			sum += e.Nodes
		}
		fmt.Printf("Total: %d\n", sum)
		return
	}

	start := time.Now()
	var st perft.Stats
	if *stats {
		st = perft.Run(p, *depth)
	} else {
		st.Nodes = perft.Count(p, *depth)
	}
	elapsed := time.Since(start)
	nps := float64(st.Nodes) / elapsed.Seconds()

	fmt.Printf("%d \t%s \t%s \t%s\n", *depth, humanize.Comma(int64(st.Nodes)), elapsed.Round(time.Millisecond), humanize.SI(nps, "nps"))
	if *stats {
		fmt.Printf("captures %d  e.p. %d  castles %d  promotions %d  checks %d  mates %d\n",
			st.Captures, st.EnPassants, st.Castles, st.Promotions, st.Checks, st.Checkmates)
	}
}
