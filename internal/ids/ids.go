package ids

import (
	"fmt"
	"strings"
)

type Policy string

const (
	// PolicySequential assigns len(tasks)+1. After a deletion this can
	// hand out an id that is still in use.
	PolicySequential Policy = "sequential"
	// PolicyMonotonic assigns one more than the highest id ever seen.
	PolicyMonotonic Policy = "monotonic"
)

func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicySequential, PolicyMonotonic:
		return p, nil
	default:
		return "", fmt.Errorf("unknown id policy %q (want %s or %s)", s, PolicySequential, PolicyMonotonic)
	}
}

// Allocator hands out task ids. Implementations are not safe for
// concurrent use; the store calls them while holding its write lock.
type Allocator interface {
	// Next returns the id for a new task given the current number of stored tasks.
	Next(size int) int
	// Observe records an id that entered the store without going through Next.
	Observe(id int)
}

func New(p Policy) Allocator {
	if p == PolicyMonotonic {
		return &monotonic{}
	}
	return sequential{}
}

type sequential struct{}

func (sequential) Next(size int) int { return size + 1 }
func (sequential) Observe(int)       {}

type monotonic struct {
	last int
}

func (m *monotonic) Next(int) int {
	m.last++
	return m.last
}

func (m *monotonic) Observe(id int) {
	if id > m.last {
		m.last = id
	}
}
