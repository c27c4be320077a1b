package fade

// DefaultCapacity is the number of channels a scheduler advances unless told otherwise.
const DefaultCapacity = 6

// Handle is the slot a channel occupies in a Registry.
type Handle int

// NoHandle is the handle of a channel the registry refused.
const NoHandle Handle = -1

// Registry is a fixed-capacity arena of channels. Slots are claimed from a free list, so
// registering and unregistering never move other channels.
type Registry struct {
	slots []*Channel
	free  []Handle
	count int
}

// NewRegistry creates an empty registry with room for capacity channels.
func NewRegistry(capacity int) *Registry {
	if capacity < 0 {
		capacity = 0
	}

	r := &Registry{
		slots: make([]*Channel, capacity),
		free:  make([]Handle, capacity),
	}
	// the lowest slot is at the top of the free list
	for i := range r.free {
		r.free[i] = Handle(capacity - 1 - i)
	}
	return r
}

// Register claims a slot for c. It returns false when the registry is full.
func (r *Registry) Register(c *Channel) (Handle, bool) {
	if c == nil || len(r.free) == 0 {
		return NoHandle, false
	}

	h := r.free[len(r.free)-1]
	r.free = r.free[:len(r.free)-1]
	r.slots[h] = c
	r.count++
	return h, true
}

// Unregister frees the slot h if c still holds it. Unknown or stale handles are ignored.
func (r *Registry) Unregister(h Handle, c *Channel) bool {
	if c == nil || h < 0 || int(h) >= len(r.slots) || r.slots[h] != c {
		return false
	}

	r.slots[h] = nil
	r.free = append(r.free, h)
	r.count--
	return true
}

// Len returns the number of registered channels.
func (r *Registry) Len() int {
	return r.count
}

// Cap returns the capacity of the registry.
func (r *Registry) Cap() int {
	return len(r.slots)
}

// Each calls fn for every registered channel in slot order.
func (r *Registry) Each(fn func(c *Channel)) {
	if r.count == 0 {
		return
	}
	for _, c := range r.slots {
		if c != nil {
			fn(c)
		}
	}
}
