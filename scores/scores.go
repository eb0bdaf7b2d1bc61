// Package scores keeps the local leaderboard.
package scores

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"sort"
	"time"
)

// Store is the key/value persistence the leaderboard is kept in.
// *gdata.Manager satisfies it.
type Store interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

// Player identifies who played a run.
type Player struct {
	Nick  string
	Email string
}

// Entry is one saved run.
type Entry struct {
	Nick      string  `json:"nick"`
	Email     string  `json:"email"`
	Score     int     `json:"score"`
	Wave      int     `json:"wave"`
	Time      float64 `json:"time"`      // seconds survived
	Timestamp int64   `json:"timestamp"` // unix milliseconds
}

// Rank is a 1-based leaderboard position and the entry found there.
type Rank struct {
	Rank  int
	Entry Entry
}

type Config struct {
	Key        string
	MaxEntries int
}

// Manager reads and writes the leaderboard. A nil store makes every
// operation a no-op that reports an empty board.
type Manager struct {
	store Store
	cfg   Config
	now   func() time.Time
}

func NewManager(store Store, cfg Config) *Manager {
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = 100
	}
	return &Manager{store: store, cfg: cfg, now: time.Now}
}

// Save records a run, keeps the board sorted (higher score first, then
// shorter time) and truncated to MaxEntries, and returns the new entry.
func (m *Manager) Save(p Player, score, wave int, seconds float64) (Entry, error) {
	entry := Entry{
		Nick:      p.Nick,
		Email:     p.Email,
		Score:     score,
		Wave:      wave,
		Time:      seconds,
		Timestamp: m.now().UnixMilli(),
	}
	if m.store == nil {
		return entry, nil
	}

	all := append(m.Scores(), entry)
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Score != all[j].Score {
			return all[i].Score > all[j].Score
		}
		return all[i].Time < all[j].Time
	})
	if len(all) > m.cfg.MaxEntries {
		all = all[:m.cfg.MaxEntries]
	}

	data, err := json.Marshal(all)
	if err != nil {
		return entry, fmt.Errorf("scores: encode: %w", err)
	}
	if err := m.store.SaveItem(m.cfg.Key, data); err != nil {
		log.Printf("Warning: Could not save scores: %v", err)
		return entry, fmt.Errorf("scores: save: %w", err)
	}
	return entry, nil
}

// Scores returns the whole board. Missing or unreadable data reads as empty.
func (m *Manager) Scores() []Entry {
	if m.store == nil {
		return nil
	}
	data, err := m.store.LoadItem(m.cfg.Key)
	if err != nil {
		log.Printf("Warning: Could not load scores: %v", err)
		return nil
	}
	if len(data) == 0 {
		return nil
	}
	var all []Entry
	if err := json.Unmarshal(data, &all); err != nil {
		log.Printf("Warning: Could not parse saved scores: %v", err)
		return nil
	}
	return all
}

// Top returns at most limit entries from the head of the board.
func (m *Manager) Top(limit int) []Entry {
	all := m.Scores()
	if limit < 0 {
		limit = 0
	}
	if len(all) > limit {
		all = all[:limit]
	}
	return all
}

// Clear removes every saved score.
func (m *Manager) Clear() error {
	if m.store == nil {
		return nil
	}
	if err := m.store.SaveItem(m.cfg.Key, nil); err != nil {
		log.Printf("Warning: Could not clear scores: %v", err)
		return fmt.Errorf("scores: clear: %w", err)
	}
	return nil
}

// IsTopScore reports whether score would enter the top limit entries:
// always while the top is not full, else only when strictly greater than
// its last entry.
func (m *Manager) IsTopScore(score, limit int) bool {
	top := m.Top(limit)
	if len(top) < limit {
		return true
	}
	if limit == 0 {
		return false
	}
	return score > top[len(top)-1].Score
}

// FindRank locates the run saved by p with the given score and time. Score
// and time match within one unit.
func (m *Manager) FindRank(p Player, score int, seconds float64) (Rank, bool) {
	for i, e := range m.Scores() {
		if e.Nick == p.Nick &&
			math.Abs(float64(e.Score-score)) < 1 &&
			math.Abs(e.Time-seconds) < 1 {
			return Rank{Rank: i + 1, Entry: e}, true
		}
	}
	return Rank{}, false
}
