package fade

import (
	"fmt"
	"strings"

	"github.com/gruntwork-io/go-commons/errors"
)

// DriftPolicy decides how the scheduler books time when an update is due.
type DriftPolicy int

const (
	// DriftCatchUp runs one pass per elapsed interval, so a stalled loop replays every
	// missed fade step on its next call.
	DriftCatchUp DriftPolicy = iota

	// DriftSnap sets the last update to now. Drift is absorbed but the average rate
	// drops when the loop is slow.
	DriftSnap

	// DriftStep moves the last update forward by one interval per call.
	DriftStep

	// DriftResync steps one interval, but snaps to now when more than two intervals
	// were missed.
	DriftResync
)

var driftNames = map[DriftPolicy]string{
	DriftCatchUp: "catch-up",
	DriftSnap:    "snap",
	DriftStep:    "step",
	DriftResync:  "resync",
}

func (p DriftPolicy) String() string {
	if name, ok := driftNames[p]; ok {
		return name
	}
	return fmt.Sprintf("DriftPolicy(%d)", int(p))
}

// ParseDriftPolicy parses the name of a drift policy.
func ParseDriftPolicy(name string) (DriftPolicy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DriftCatchUp, nil
	}
	for p, n := range driftNames {
		if n == name {
			return p, nil
		}
	}
	return DriftCatchUp, errors.WithStackTrace(fmt.Errorf("unknown drift policy %q", name))
}
