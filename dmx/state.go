// Package dmx buffers fade levels as DMX512 universes and ships them to OLA.
package dmx

import (
	"fmt"
	"sort"
	"sync"

	"github.com/gruntwork-io/go-commons/errors"
)

// UniverseChannels is the number of slots in a DMX universe.
const UniverseChannels = 512

// AddressOutOfRange is returned for a slot outside 1..512.
type AddressOutOfRange struct {
	Universe int
	Address  int
}

func (err AddressOutOfRange) Error() string {
	return fmt.Sprintf("dmx address (%d) not in range on universe %d", err.Address, err.Universe)
}

// State holds the DMX512 values for each universe.
type State struct {
	universes map[int][]byte
	lock      sync.Mutex
}

// NewState creates an empty State.
func NewState() *State {
	return &State{universes: make(map[int][]byte)}
}

// Set stores value at the 1-based address of universe.
func (s *State) Set(universe, address int, value byte) error {
	if address < 1 || address > UniverseChannels {
		return errors.WithStackTrace(AddressOutOfRange{Universe: universe, Address: address})
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	s.initializeUniverse(universe)
	s.universes[universe][address-1] = value
	return nil
}

// Get returns the value at the 1-based address of universe.
func (s *State) Get(universe, address int) byte {
	if address < 1 || address > UniverseChannels {
		return 0
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	if s.universes[universe] == nil {
		return 0
	}
	return s.universes[universe][address-1]
}

// Universe returns a copy of a universe, or nil if nothing was written to it.
func (s *State) Universe(universe int) []byte {
	s.lock.Lock()
	defer s.lock.Unlock()
	data, ok := s.universes[universe]
	if !ok {
		return nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out
}

// Universes returns the ids of all universes written so far in ascending order.
func (s *State) Universes() []int {
	s.lock.Lock()
	defer s.lock.Unlock()
	ids := make([]int, 0, len(s.universes))
	for id := range s.universes {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (s *State) initializeUniverse(universe int) {
	if s.universes[universe] == nil {
		s.universes[universe] = make([]byte, UniverseChannels)
	}
}
