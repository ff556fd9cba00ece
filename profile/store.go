package profile

import (
	"fmt"
	"math"
	"sync"

	"github.com/rustyeddy/riskbot/risk"
)

// ErrNoCapitalDefined is returned when a capital delta is applied to a
// profile that never had capital set.
var ErrNoCapitalDefined = risk.ErrNoCapitalDefined

// Change is a profile before and after a write.
type Change struct {
	Before Profile
	After  Profile
}

// Store holds per-user defaults. Implementations must serialize writes to
// the same user and must not block readers or writers of other users.
type Store interface {
	Get(userID string) Profile
	Set(userID string, field Field, value float64) (Change, error)
	ApplyCapitalDelta(userID string, delta float64) (Change, error)
}

type entry struct {
	mu sync.Mutex
	p  Profile
}

// MemoryStore keeps profiles for the lifetime of the process.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]*entry
	seed  Profile
}

// NewMemoryStore returns an empty store. A user seen for the first time
// starts from a copy of seed; pass Profile{} for no seeding.
func NewMemoryStore(seed Profile) *MemoryStore {
	return &MemoryStore{
		users: make(map[string]*entry),
		seed:  seed.Clone(),
	}
}

func (s *MemoryStore) lookup(userID string) (*entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.users[userID]
	return e, ok
}

func (s *MemoryStore) getOrCreate(userID string) *entry {
	if e, ok := s.lookup(userID); ok {
		return e
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.users[userID]; ok {
		return e
	}
	e := &entry{p: s.seed.Clone()}
	s.users[userID] = e
	return e
}

// Get returns a copy of the user's profile. Unknown users get the seed.
func (s *MemoryStore) Get(userID string) Profile {
	e, ok := s.lookup(userID)
	if !ok {
		return s.seed.Clone()
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.p.Clone()
}

// Set overwrites one field, creating the profile on first use.
func (s *MemoryStore) Set(userID string, field Field, value float64) (Change, error) {
	switch field {
	case FieldCapital, FieldRiskPercent, FieldLeverage, FieldFeeBps:
	default:
		return Change{}, fmt.Errorf("unknown profile field %q", field)
	}

	e := s.getOrCreate(userID)
	e.mu.Lock()
	defer e.mu.Unlock()

	c := Change{Before: e.p.Clone()}
	e.p.set(field, value)
	c.After = e.p.Clone()
	return c, nil
}

// ApplyCapitalDelta adds delta to the stored capital, clamping at zero.
func (s *MemoryStore) ApplyCapitalDelta(userID string, delta float64) (Change, error) {
	e, ok := s.lookup(userID)
	if !ok && s.seed.Capital == nil {
		return Change{}, ErrNoCapitalDefined
	}
	if !ok {
		e = s.getOrCreate(userID)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.p.Capital == nil {
		return Change{}, ErrNoCapitalDefined
	}
	c := Change{Before: e.p.Clone()}
	e.p.set(FieldCapital, math.Max(0, *e.p.Capital+delta))
	c.After = e.p.Clone()
	return c, nil
}

// Len is the number of users with a stored profile.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}
