// Package id generates identifiers for posts, comments, users and events.
package id

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Clock returns the current time. Tests replace it to get stable values.
type Clock func() time.Time

// Sequence issues decimal millisecond-timestamp ids that are strictly
// increasing within the process, even when called twice in the same millisecond.
type Sequence struct {
	mu   sync.Mutex
	now  Clock
	last int64
}

// NewSequence creates a sequence reading time from now (time.Now when nil).
func NewSequence(now Clock) *Sequence {
	if now == nil {
		now = time.Now
	}
	return &Sequence{now: now}
}

// Next returns the next id.
func (s *Sequence) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ms := s.now().UnixMilli()
	if ms <= s.last {
		ms = s.last + 1
	}
	s.last = ms
	return strconv.FormatInt(ms, 10)
}

// Generate creates a prefixed unique ID using NanoID.
// Format: prefix-nanoid (e.g., "usr-V1StGXR8_Z5jdHi6B-myT")
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}
