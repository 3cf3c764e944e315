package session

import (
	"context"
	"sync"
	"time"

	"telemarketing/domain/dataset"
	"telemarketing/internal"

	"github.com/google/uuid"
)

// Session holds everything one browser session works on: the uploaded raw
// table, its cached outcome distribution and the last applied filters.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	lastSeen time.Time
	filename string
	raw      *dataset.Table
	rawDist  *dataset.OutcomeDistribution
	filters  dataset.FilterSpec
}

// HasData reports whether a non-empty table has been uploaded.
func (s *Session) HasData() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.raw.IsEmpty()
}

// SetData replaces the raw table, dropping the cached distribution and filters.
func (s *Session) SetData(filename string, table *dataset.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filename = filename
	s.raw = table
	s.rawDist = nil
	s.filters = nil
}

// Data returns the uploaded filename and raw table.
func (s *Session) Data() (string, *dataset.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filename, s.raw
}

// RawDistribution returns the distribution of table, computing it once with
// compute. Only the session's current raw table is cached; a table replaced
// by a concurrent upload is computed but not stored. Errors are not cached.
func (s *Session) RawDistribution(table *dataset.Table, compute func(*dataset.Table) (dataset.OutcomeDistribution, error)) (dataset.OutcomeDistribution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current := table == s.raw
	if current && s.rawDist != nil {
		return *s.rawDist, nil
	}
	dist, err := compute(table)
	if err != nil {
		return dist, err
	}
	if current {
		s.rawDist = &dist
	}
	return dist, nil
}

// Filters returns the last applied filter spec, or nil if none was applied.
func (s *Session) Filters() dataset.FilterSpec {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// SetFilters records the filter spec of the latest interaction.
func (s *Session) SetFilters(spec dataset.FilterSpec) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = spec
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// Store keeps sessions in memory and expires those idle for longer than ttl
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
	logger   *internal.Logger
}

// NewStore creates an empty session store
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
		logger:   internal.DefaultLogger.With("SessionStore"),
	}
}

// Create registers a new session with a random ID
func (st *Store) Create() *Session {
	now := st.now()
	sess := &Session{
		ID:        uuid.New().String(),
		CreatedAt: now,
		lastSeen:  now,
	}

	st.mu.Lock()
	st.sessions[sess.ID] = sess
	st.mu.Unlock()

	st.logger.Debug("created session %s", sess.ID)
	return sess
}

// Get returns a live session and marks it as seen. Expired sessions are removed.
func (st *Store) Get(id string) (*Session, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, false
	}

	st.mu.RLock()
	sess, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, false
	}

	now := st.now()
	if sess.idleSince(now) > st.ttl {
		st.Delete(id)
		return nil, false
	}
	sess.touch(now)
	return sess, true
}

// GetOrCreate returns the session for id, or a new one when id is unknown or expired.
func (st *Store) GetOrCreate(id string) (*Session, bool) {
	if sess, ok := st.Get(id); ok {
		return sess, false
	}
	return st.Create(), true
}

// Delete drops a session
func (st *Store) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

// Len returns the number of stored sessions, expired or not
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep removes expired sessions and returns how many were dropped
func (st *Store) Sweep() int {
	now := st.now()

	st.mu.Lock()
	defer st.mu.Unlock()
	removed := 0
	for id, sess := range st.sessions {
		if sess.idleSince(now) > st.ttl {
			delete(st.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		st.logger.Info("expired %d idle sessions (%d remaining)", removed, len(st.sessions))
	}
	return removed
}

// MinSweepInterval is the shortest interval StartSweeper accepts
const MinSweepInterval = time.Second

// StartSweeper runs Sweep every interval until ctx is done. Intervals below
// MinSweepInterval are raised to it.
func (st *Store) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval < MinSweepInterval {
		interval = MinSweepInterval
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				st.Sweep()
			}
		}
	}()
}
