// Package codes holds the accepted redemption codes of a scanning session
// and renders them for display, clipboard and export.
package codes

// Store is the ordered, duplicate-free list of accepted codes.
// It is not safe for concurrent use; a session mutates it from one control flow.
type Store struct {
	seen  map[string]struct{}
	codes []string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		seen: make(map[string]struct{}),
	}
}

// Accept appends code when it is non-empty and not yet present.
// It reports whether the code was added.
func (s *Store) Accept(code string) bool {
	if code == "" {
		return false
	}
	if _, ok := s.seen[code]; ok {
		return false
	}
	s.seen[code] = struct{}{}
	s.codes = append(s.codes, code)
	return true
}

// AcceptAll accepts every code in order and returns how many were new.
func (s *Store) AcceptAll(codes []string) int {
	added := 0
	for _, code := range codes {
		if s.Accept(code) {
			added++
		}
	}
	return added
}

// Contains reports whether code has been accepted.
func (s *Store) Contains(code string) bool {
	_, ok := s.seen[code]
	return ok
}

// Clear drops every accepted code.
func (s *Store) Clear() {
	s.seen = make(map[string]struct{})
	s.codes = nil
}

// Count returns the number of accepted codes.
func (s *Store) Count() int {
	return len(s.codes)
}

// All returns a copy of the accepted codes in insertion order.
func (s *Store) All() []string {
	out := make([]string, len(s.codes))
	copy(out, s.codes)
	return out
}
