package audit

import (
	"sync"

	"seguimiento_proyectos/internal/models"
)

// Hub fans new bitácora rows out to live dashboard streams.
type Hub struct {
	mu   sync.Mutex
	subs map[chan models.Auditoria]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan models.Auditoria]struct{})}
}

// Subscribe returns a buffered feed and a cancel func that closes it.
func (h *Hub) Subscribe(buffer int) (<-chan models.Auditoria, func()) {
	ch := make(chan models.Auditoria, buffer)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, ch)
			close(ch)
			h.mu.Unlock()
		})
	}
	return ch, cancel
}

// Publish never blocks: slow subscribers miss rows rather than stalling writers.
func (h *Hub) Publish(row models.Auditoria) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- row:
		default:
		}
	}
}

func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
