package llm

import (
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/alexschlessinger/pollytool/messages"
	"github.com/alexschlessinger/pollytool/sessions"

	"pkdindustries/dachat/internal/core"
	mocktest "pkdindustries/dachat/internal/testing"
)

func newTestHistory(t *testing.T) sessions.Session {
	t.Helper()
	store := sessions.NewSyncMapSessionStore(&sessions.Metadata{
		MaxHistoryTokens: 4096,
		TTL:              time.Minute,
		SystemPrompt:     "You are a test assistant.",
	})
	history, err := store.Get("test")
	if err != nil {
		t.Fatalf("failed to create history: %v", err)
	}
	return history
}

func collectSnapshots(ch chan core.ResponseSnapshot) []core.ResponseSnapshot {
	var snaps []core.ResponseSnapshot
	for {
		select {
		case snap := <-ch:
			snaps = append(snaps, snap)
		default:
			return snaps
		}
	}
}

func TestSnapshotProcessor_CumulativeContent(t *testing.T) {
	out := make(chan core.ResponseSnapshot, 16)
	builder := &strings.Builder{}
	p := newSnapshotProcessor(newTestHistory(t), out, builder, slog.Default())

	p.OnContent("Hel", true)
	p.OnContent("lo ", false)
	p.OnContent("world", false)

	snaps := collectSnapshots(out)
	want := []string{"Hel", "Hello ", "Hello world"}
	if len(snaps) != len(want) {
		t.Fatalf("expected %d snapshots, got %d", len(want), len(snaps))
	}
	for i, w := range want {
		if snaps[i].Content != w {
			t.Errorf("snapshot %d: expected %q, got %q", i, w, snaps[i].Content)
		}
		if snaps[i].Err != nil {
			t.Errorf("snapshot %d: unexpected error %v", i, snaps[i].Err)
		}
	}
}

func TestSnapshotProcessor_BuilderSharedAcrossRounds(t *testing.T) {
	out := make(chan core.ResponseSnapshot, 16)
	builder := &strings.Builder{}
	history := newTestHistory(t)

	first := newSnapshotProcessor(history, out, builder, slog.Default())
	first.OnContent("Checking... ", true)

	// A continuation round reuses the builder, so earlier text survives
	second := newSnapshotProcessor(history, out, builder, slog.Default())
	second.OnContent("done.", true)

	snaps := collectSnapshots(out)
	if len(snaps) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(snaps))
	}
	if snaps[1].Content != "Checking... done." {
		t.Errorf("expected continuation text appended, got %q", snaps[1].Content)
	}
}

func TestSnapshotProcessor_OnComplete(t *testing.T) {
	out := make(chan core.ResponseSnapshot, 16)
	history := newTestHistory(t)
	p := newSnapshotProcessor(history, out, &strings.Builder{}, slog.Default())

	before := len(history.GetHistory())
	msg := messages.ChatMessage{
		Role:    messages.MessageRoleUser,
		Content: "final answer",
	}
	p.OnComplete(&msg)

	if got := p.GetResponse().Content; got != "final answer" {
		t.Errorf("expected response recorded, got %q", got)
	}
	if len(history.GetHistory()) != before+1 {
		t.Error("expected completed message added to history")
	}
}

func TestSnapshotProcessor_OnError(t *testing.T) {
	out := make(chan core.ResponseSnapshot, 16)
	p := newSnapshotProcessor(newTestHistory(t), out, &strings.Builder{}, slog.Default())

	boom := errors.New("stream broke")
	p.OnError(boom)

	if !errors.Is(p.Err(), boom) {
		t.Errorf("expected error recorded, got %v", p.Err())
	}
}

func TestStreamResponse_InvalidOptions(t *testing.T) {
	factory := NewSessionFactory(mocktest.DefaultTestConfig())
	session := factory("You are a test assistant.", nil)

	ch := session.StreamResponse(t.Context(), "hi", core.GenerationOptions{MaxTokens: 0, Temperature: 0.5})

	snap, ok := <-ch
	if !ok {
		t.Fatal("expected an error snapshot before close")
	}
	if snap.Err == nil {
		t.Fatal("expected validation error in terminal snapshot")
	}
	if _, open := <-ch; open {
		t.Error("expected channel closed after terminal snapshot")
	}
}
