package history

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/birdayz/hexer/pkg/hexcodec"
)

// DefaultCapacity is the number of conversions kept when New is given no capacity.
const DefaultCapacity = 10

// Entry is one recorded conversion.
type Entry struct {
	ID        string        `json:"id"`
	Input     string        `json:"input"`
	Output    string        `json:"output"`
	Mode      hexcodec.Mode `json:"mode"`
	Timestamp time.Time     `json:"timestamp"`
}

// NewEntry creates an entry with a fresh ID.
func NewEntry(input, output string, mode hexcodec.Mode, ts time.Time) Entry {
	return Entry{
		ID:        uuid.NewString(),
		Input:     input,
		Output:    output,
		Mode:      mode,
		Timestamp: ts,
	}
}

// History is a bounded list of conversions, newest first.
type History struct {
	mu       sync.Mutex
	capacity int
	entries  []Entry
}

func New(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &History{capacity: capacity}
}

// Add prepends e, evicting the oldest entry once capacity is exceeded.
func (h *History) Add(e Entry) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append([]Entry{e}, h.entries...)
	if len(h.entries) > h.capacity {
		h.entries = h.entries[:h.capacity]
	}
}

// Entries returns a copy of the history, newest first.
func (h *History) Entries() []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Get looks up an entry by ID.
func (h *History) Get(id string) (Entry, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, e := range h.entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// At returns the entry at index i, where 0 is the newest.
func (h *History) At(i int) (Entry, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if i < 0 || i >= len(h.entries) {
		return Entry{}, false
	}
	return h.entries[i], true
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = nil
}
