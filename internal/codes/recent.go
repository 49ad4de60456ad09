package codes

// RecentCapacity is the number of codes remembered by the auto-scan repeat filter.
const RecentCapacity = 5

// RecentBuffer is a fixed-capacity FIFO ring of recently seen codes.
// Pushing past capacity evicts the oldest entry.
type RecentBuffer struct {
	entries []string
	head    int
	size    int
}

// NewRecentBuffer returns a ring holding at most capacity codes.
// A non-positive capacity falls back to RecentCapacity.
func NewRecentBuffer(capacity int) *RecentBuffer {
	if capacity <= 0 {
		capacity = RecentCapacity
	}
	return &RecentBuffer{
		entries: make([]string, capacity),
	}
}

// Push records code as the newest entry.
func (b *RecentBuffer) Push(code string) {
	idx := (b.head + b.size) % len(b.entries)
	if b.size == len(b.entries) {
		b.entries[b.head] = code
		b.head = (b.head + 1) % len(b.entries)
		return
	}
	b.entries[idx] = code
	b.size++
}

// Contains reports whether code is currently held.
func (b *RecentBuffer) Contains(code string) bool {
	for i := 0; i < b.size; i++ {
		if b.entries[(b.head+i)%len(b.entries)] == code {
			return true
		}
	}
	return false
}

// Len returns the number of held codes.
func (b *RecentBuffer) Len() int {
	return b.size
}

// Cap returns the ring capacity.
func (b *RecentBuffer) Cap() int {
	return len(b.entries)
}

// Snapshot returns the held codes, oldest first.
func (b *RecentBuffer) Snapshot() []string {
	out := make([]string, b.size)
	for i := 0; i < b.size; i++ {
		out[i] = b.entries[(b.head+i)%len(b.entries)]
	}
	return out
}

// Reset empties the ring.
func (b *RecentBuffer) Reset() {
	for i := range b.entries {
		b.entries[i] = ""
	}
	b.head = 0
	b.size = 0
}
