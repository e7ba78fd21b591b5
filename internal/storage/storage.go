package storage

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/badger/v4"
	"github.com/go-logr/logr"

	"github.com/hailam/chessproblem/internal/board"
	"github.com/hailam/chessproblem/internal/solver"
)

// Key prefixes
var (
	prefixSolution = []byte("solution/")
)

// SolutionRecord is one stored key move.
type SolutionRecord struct {
	Move      string `json:"move"`
	Placement string `json:"placement"`
	Moves     int    `json:"moves"`
}

// String returns "<placement> solved in <k> moves", the same text as
// solver.Solution.
func (s SolutionRecord) String() string {
	return fmt.Sprintf("%s solved in %d moves", s.Placement, s.Moves)
}

// Record stores the result of solving one problem line.
type Record struct {
	Problem   string           `json:"problem"`
	Solutions []SolutionRecord `json:"solutions"`
	Nodes     uint64           `json:"nodes"`
	Elapsed   time.Duration    `json:"elapsed"`
	SolvedAt  time.Time        `json:"solved_at"`
}

// NewRecord converts a finished search into a storable record.
func NewRecord(res solver.Result) *Record {
	rec := &Record{
		Problem:  res.Problem.String(),
		Nodes:    res.Nodes,
		Elapsed:  res.Elapsed,
		SolvedAt: time.Now(),
	}
	for _, s := range res.Solutions {
		rec.Solutions = append(rec.Solutions, SolutionRecord{
			Move:      s.Move.String(),
			Placement: board.Placement(s.Position.Board()),
			Moves:     s.Moves,
		})
	}
	return rec
}

// Solved reports whether the record holds at least one key move.
func (r *Record) Solved() bool {
	return len(r.Solutions) > 0
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db  *badger.DB
	log logr.Logger
}

// Open opens the database in dir, or in GetDatabaseDir when dir is empty.
func Open(dir string, log logr.Logger) (*Storage, error) {
	if dir == "" {
		var err error
		if dir, err = GetDatabaseDir(); err != nil {
			return nil, err
		}
	}

	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open solution store %s: %w", dir, err)
	}
	log.V(1).Info("solution store opened", "dir", dir)

	return &Storage{db: db, log: log}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func solutionKey(problem string) []byte {
	key := make([]byte, len(prefixSolution), len(prefixSolution)+8)
	copy(key, prefixSolution)
	return binary.BigEndian.AppendUint64(key, xxhash.Sum64String(problem))
}

// Save stores rec under its problem line, replacing any earlier record.
func (s *Storage) Save(rec *Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(solutionKey(rec.Problem), data)
	})
}

// Load returns the record for a problem line. The boolean is false when
// nothing is stored for it.
func (s *Storage) Load(problem string) (*Record, bool, error) {
	var rec *Record

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(solutionKey(problem))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			rec = &Record{}
			return json.Unmarshal(val, rec)
		})
	})
	if err != nil {
		return nil, false, err
	}

	// Hash collision.
	if rec != nil && rec.Problem != problem {
		s.log.V(1).Info("stored record belongs to another problem", "want", problem, "got", rec.Problem)
		return nil, false, nil
	}
	return rec, rec != nil, nil
}

// Records returns every stored record.
func (s *Storage) Records() ([]*Record, error) {
	var out []*Record

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefixSolution); it.ValidForPrefix(prefixSolution); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				rec := &Record{}
				if err := json.Unmarshal(val, rec); err != nil {
					return err
				}
				out = append(out, rec)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})

	return out, err
}

// Delete removes the record for a problem line, if any.
func (s *Storage) Delete(problem string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(solutionKey(problem))
	})
}
