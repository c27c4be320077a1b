// Package fade drives pulsed outputs so each one moves smoothly from its current level
// to a target level over a configured duration.
//
// A Scheduler owns a fixed-capacity Registry of Channels. The host's control loop calls
// Scheduler.Tick often; whenever an update interval has elapsed every registered
// Channel advances one step of its fade and writes the gamma mapped level to its Output.
//
// Nothing in this package is safe for concurrent use. Tick and all Channel methods must
// be called from the goroutine that owns the Scheduler.
package fade
