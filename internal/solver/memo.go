package solver

import (
	"strconv"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/hailam/chessproblem/internal/position"
)

// Memo caches search results by stipulation, position and remaining plies.
// Entries stay valid across problems and may be shared between goroutines.
type Memo struct {
	cache *ristretto.Cache[string, int]
}

// NewMemo creates a memo holding up to maxEntries results.
func NewMemo(maxEntries int64) (*Memo, error) {
	if maxEntries < 1 {
		maxEntries = 1
	}
	cache, err := ristretto.NewCache(&ristretto.Config[string, int]{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Memo{cache: cache}, nil
}

func memoKey(mode Mode, p *position.Position, budget int) string {
	return p.XFEN() + "|" + mode.String() + "|" + strconv.Itoa(budget)
}

func (m *Memo) get(mode Mode, p *position.Position, budget int) (int, bool) {
	return m.cache.Get(memoKey(mode, p, budget))
}

func (m *Memo) put(mode Mode, p *position.Position, budget, result int) {
	m.cache.Set(memoKey(mode, p, budget), result, 1)
}

// Wait blocks until buffered writes are visible to readers.
func (m *Memo) Wait() {
	m.cache.Wait()
}

// Close releases the cache's background goroutines.
func (m *Memo) Close() {
	m.cache.Close()
}
