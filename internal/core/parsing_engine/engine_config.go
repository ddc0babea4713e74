package parsing_engine

import (
	"fmt"
	"runtime"
	"strings"
)

// FailurePolicy decides which items of a batch still run once one has failed.
// Both policies report the same error: the one with the lowest input index.
type FailurePolicy string

const (
	// PolicyCollectAll runs every item to completion before reducing.
	PolicyCollectAll FailurePolicy = "collect-all"
	// PolicySkipAfterError skips items that have not started yet and sit
	// above the lowest index known to have failed.
	PolicySkipAfterError FailurePolicy = "skip-after-error"
)

// ParsePolicy accepts the policy names used in configuration files and flags.
func ParsePolicy(s string) (FailurePolicy, error) {
	switch FailurePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyCollectAll:
		return PolicyCollectAll, nil
	case PolicySkipAfterError:
		return PolicySkipAfterError, nil
	default:
		return "", fmt.Errorf("unknown failure policy %q (want %q or %q)", s, PolicyCollectAll, PolicySkipAfterError)
	}
}

// EngineConfig tunes the batch processor.
//
// Workers: size of the worker pool; 0 or less means GOMAXPROCS.
// Policy:  what happens to pending items after a failure.
type EngineConfig struct {
	Workers int
	Policy  FailurePolicy
}

func (c EngineConfig) poolSize(items int) int {
	n := c.Workers
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	if n > items {
		n = items
	}
	if n < 1 {
		n = 1
	}
	return n
}
