package linter

import (
	"sync"

	"github.com/nsxbet/changelog-linter/pkg/advisor"
)

// Session is the mutable state of one lint run: the changelog locations
// visited so far. A fresh Session is created for every Lint call unless the
// caller shares one through LintSession. It is safe for concurrent use.
type Session struct {
	mu      sync.Mutex
	visited map[string]struct{}
	order   []string
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{visited: make(map[string]struct{})}
}

// Visit records location and reports whether it was already recorded.
// The check and the insert happen atomically.
func (s *Session) Visit(location string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, seen := s.visited[location]; seen {
		return true
	}
	s.visited[location] = struct{}{}
	s.order = append(s.order, location)
	return false
}

// Visited returns the recorded locations in the order they were first seen.
func (s *Session) Visited() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.order...)
}

var _ advisor.Visited = (*Session)(nil)
