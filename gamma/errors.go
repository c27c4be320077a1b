package gamma

import "fmt"

// InvalidParam is returned when a table generator gets an argument it cannot use.
type InvalidParam struct {
	Name  string
	Value interface{}
}

func (err InvalidParam) Error() string {
	return fmt.Sprintf("invalid %s: %v", err.Name, err.Value)
}

// InvalidTable is returned when a table fails validation.
type InvalidTable struct {
	Reason string
}

func (err InvalidTable) Error() string {
	return fmt.Sprintf("invalid gamma table: %s", err.Reason)
}

// UnknownCurve is returned by Lookup for a name it does not understand.
type UnknownCurve struct {
	Name string
}

func (err UnknownCurve) Error() string {
	return fmt.Sprintf("unknown curve %q", err.Name)
}
