package testing

import (
	"context"
	"time"

	"pkdindustries/dachat/internal/core"
)

// MockModelSession implements core.ModelSession with canned snapshots
type MockModelSession struct {
	Snapshots []core.ResponseSnapshot // cumulative snapshots to emit
	Delay     time.Duration           // delay between snapshots (0 = immediate)

	// Recorded calls (for assertions)
	Prompts []string
	Opts    []core.GenerationOptions
}

// Verify MockModelSession implements core.ModelSession
var _ core.ModelSession = (*MockModelSession)(nil)

// StreamResponse implements core.ModelSession
func (m *MockModelSession) StreamResponse(ctx context.Context, prompt string, opts core.GenerationOptions) <-chan core.ResponseSnapshot {
	m.Prompts = append(m.Prompts, prompt)
	m.Opts = append(m.Opts, opts)

	ch := make(chan core.ResponseSnapshot, len(m.Snapshots))
	go func() {
		defer close(ch)
		for _, snap := range m.Snapshots {
			if m.Delay > 0 {
				select {
				case <-time.After(m.Delay):
				case <-ctx.Done():
					return
				}
			}
			select {
			case ch <- snap:
			case <-ctx.Done():
				return
			}
			if snap.Err != nil {
				return
			}
		}
	}()
	return ch
}

// CumulativeSnapshots builds an error-free snapshot sequence from the given
// progressive contents.
func CumulativeSnapshots(contents ...string) []core.ResponseSnapshot {
	snaps := make([]core.ResponseSnapshot, 0, len(contents))
	for _, c := range contents {
		snaps = append(snaps, core.ResponseSnapshot{Content: c})
	}
	return snaps
}
