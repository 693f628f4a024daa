// pkg/memcache/job_tokens.go
package mem

import (
	"sync"

	"github.com/google/uuid"
)

// JobTokenStore tracks which generation run is allowed to write results for
// a memorial's greeting. Issue hands out a fresh token and invalidates the
// previous one; a goroutine holding a stale token must discard its output.
type JobTokenStore interface {
	Issue(memorialID string) string

	// Matches reports whether token is still the live token for memorialID.
	Matches(memorialID string, token string) bool

	// Revoke drops the live token so no in-flight job can write results.
	Revoke(memorialID string)
}

type JobTokens struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewJobTokens() *JobTokens {
	return &JobTokens{
		data: make(map[string]string),
	}
}

func (s *JobTokens) Issue(memorialID string) string {
	token := uuid.New().String()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[memorialID] = token
	return token
}

func (s *JobTokens) Matches(memorialID string, token string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	current, ok := s.data[memorialID]
	return ok && current == token
}

func (s *JobTokens) Revoke(memorialID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, memorialID)
}
