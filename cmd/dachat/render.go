package main

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"pkdindustries/dachat/internal/chat"
)

// renderer prints assistant output as it streams. Snapshots are cumulative,
// so only the suffix beyond what was already printed goes to the terminal.
type renderer struct {
	mu      sync.Mutex
	orch    *chat.Orchestrator
	printed map[uuid.UUID]int
	done    map[uuid.UUID]bool
}

func newRenderer(orch *chat.Orchestrator) *renderer {
	return &renderer{
		orch:    orch,
		printed: make(map[uuid.UUID]int),
		done:    make(map[uuid.UUID]bool),
	}
}

func (r *renderer) update() {
	r.mu.Lock()
	defer r.mu.Unlock()

	msgs := r.orch.Messages()
	current := make(map[uuid.UUID]bool, len(msgs))
	for _, msg := range msgs {
		current[msg.ID] = true
		if msg.FromUser || r.done[msg.ID] {
			continue
		}
		if n := r.printed[msg.ID]; len(msg.Content) > n {
			fmt.Print(msg.Content[n:])
			r.printed[msg.ID] = len(msg.Content)
		}
		if !msg.Partial {
			fmt.Println()
			r.done[msg.ID] = true
		}
	}

	// Drop state for messages removed from the transcript
	for id := range r.printed {
		if !current[id] {
			delete(r.printed, id)
		}
	}
	for id := range r.done {
		if !current[id] {
			delete(r.done, id)
		}
	}
}
