// Package gamma maps abstract fade steps to output levels.
//
// A Map either passes steps through unchanged or looks them up in a Table, which is
// usually a perceptual brightness curve generated by this package.
package gamma

import (
	"github.com/gruntwork-io/go-commons/errors"
	"golang.org/x/exp/slices"
)

// DefaultResolution is the biggest level an uncorrected 8-bit output accepts.
const DefaultResolution = 255

// maxTableLen is the most entries a table indexed by uint16 can use.
const maxTableLen = 1 << 16

// Table is a read-only step to level lookup.
type Table interface {
	// At returns the level for step. Callers keep step below Len.
	At(step uint16) uint16

	// Len returns the number of entries in the table.
	Len() int
}

// Slice is a Table held in memory.
type Slice []uint16

func (s Slice) At(step uint16) uint16 {
	return s[step]
}

func (s Slice) Len() int {
	return len(s)
}

// BiggestStep returns the highest valid index of the table.
func (s Slice) BiggestStep() uint16 {
	if len(s) == 0 {
		return 0
	}
	return uint16(len(s) - 1)
}

// Validate checks that the table is usable as a brightness curve.
func (s Slice) Validate() error {
	if len(s) == 0 {
		return errors.WithStackTrace(InvalidTable{Reason: "table is empty"})
	}
	if len(s) > maxTableLen {
		return errors.WithStackTrace(InvalidTable{Reason: "table has more than 65536 entries"})
	}
	if !slices.IsSorted([]uint16(s)) {
		return errors.WithStackTrace(InvalidTable{Reason: "table is not monotonic"})
	}
	return nil
}

// Map converts steps into output levels.
type Map struct {
	table   Table
	biggest uint16
}

// Identity returns a Map without correction whose biggest step is resolution.
func Identity(resolution uint16) Map {
	return Map{biggest: resolution}
}

// New returns a Map backed by table. A nil table gives the identity mapping. The
// biggest step is capped to the last index of the table.
func New(table Table, biggestStep uint16) Map {
	if table == nil || table.Len() == 0 {
		return Identity(biggestStep)
	}
	if last := table.Len() - 1; int(biggestStep) > last {
		biggestStep = uint16(last)
	}
	return Map{table: table, biggest: biggestStep}
}

// Level maps step without clamping. Callers keep step within [0, BiggestStep].
func (m Map) Level(step uint16) uint16 {
	if m.table == nil {
		return step
	}
	return m.table.At(step)
}

// Value maps step after clamping it to [0, BiggestStep].
func (m Map) Value(step uint16) uint16 {
	return m.Level(clamp(step, 0, m.biggest))
}

// BiggestStep is the highest step the map accepts.
func (m Map) BiggestStep() uint16 {
	return m.biggest
}

// Corrected reports whether the map uses a lookup table.
func (m Map) Corrected() bool {
	return m.table != nil
}
