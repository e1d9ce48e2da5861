package payments

import (
	"math/rand"
	"sync"
	"time"
)

// ProbabilityOutcome returns an outcome source that reports success with the
// given probability. This is the simulation hook behind retry and notify:
// production code keeps the default rates, tests inject Always/Never to force
// both branches deterministically.
func ProbabilityOutcome(rate float64) func() bool {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	var mu sync.Mutex
	return func() bool {
		mu.Lock()
		defer mu.Unlock()
		return rng.Float64() < rate
	}
}

// Always is an outcome source that always succeeds.
func Always() bool { return true }

// Never is an outcome source that always fails.
func Never() bool { return false }
