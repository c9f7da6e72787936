package directory

import (
	"strings"
	"sync"

	"github.com/houseofcoffee/US-Chamber/models"
)

// Store is the in-memory member collection for one server session. The
// spreadsheet endpoint remains the authoritative owner; the store is fully
// replaced on every successful load and never partially mutated.
type Store struct {
	mu      sync.RWMutex
	members []models.Member
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Load replaces the entire collection. Callers use this after every
// successful fetch, including the reload that follows a create.
func (s *Store) Load(members []models.Member) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members = make([]models.Member, len(members))
	copy(s.members, members)
}

// InsertFront prepends one member, newest first. Only the non-persisted demo
// path uses this; the persisted path reloads from the endpoint instead.
func (s *Store) InsertFront(member models.Member) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members = append([]models.Member{member}, s.members...)
}

// All returns a copy of the full collection in store order.
func (s *Store) All() []models.Member {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Member, len(s.members))
	copy(out, s.members)
	return out
}

// Get returns the member with the given id.
func (s *Store) Get(id string) (models.Member, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, member := range s.members {
		if member.ID == id {
			return member, true
		}
	}
	return models.Member{}, false
}

// Len reports the number of members currently held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.members)
}

// Visible returns the subset matching a free-text search term and an optional
// specialty filter, preserving store order. The term matches
// case-insensitively against name, business name, and specialties; a nil
// specialty filter admits everyone.
func (s *Store) Visible(searchTerm string, specialty *models.Specialty) []models.Member {
	s.mu.RLock()
	defer s.mu.RUnlock()

	term := strings.ToLower(strings.TrimSpace(searchTerm))
	out := make([]models.Member, 0, len(s.members))
	for _, member := range s.members {
		if !matchesTerm(member, term) {
			continue
		}
		if specialty != nil && !hasSpecialty(member, *specialty) {
			continue
		}
		out = append(out, member)
	}
	return out
}

func matchesTerm(member models.Member, term string) bool {
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(member.Name), term) {
		return true
	}
	if strings.Contains(strings.ToLower(member.BusinessName), term) {
		return true
	}
	for _, specialty := range member.Specialties {
		if strings.Contains(strings.ToLower(string(specialty)), term) {
			return true
		}
	}
	return false
}

func hasSpecialty(member models.Member, specialty models.Specialty) bool {
	for _, s := range member.Specialties {
		if s == specialty {
			return true
		}
	}
	return false
}
