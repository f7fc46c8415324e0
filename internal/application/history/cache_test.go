package history

import (
	"context"
	"errors"
	"testing"

	"github.com/doeshing/modelscout/internal/domain"
	"github.com/doeshing/modelscout/internal/pkg/logger"
)

type stubHistoryClient struct {
	entries []domain.HistoryEntry
	err     error
	calls   int
	tokens  []string
	during  func()
}

func (s *stubHistoryClient) History(_ context.Context, session domain.Session) ([]domain.HistoryEntry, error) {
	s.calls++
	s.tokens = append(s.tokens, session.Token)
	if s.during != nil {
		s.during()
	}
	return s.entries, s.err
}

var alice = domain.Session{Token: "tok", UserID: "u1", DisplayName: "alice"}

func TestToggleFetchesOnceThenFlips(t *testing.T) {
	client := &stubHistoryClient{entries: []domain.HistoryEntry{{Question: "q1"}, {Question: "q2"}}}
	cache := NewCache(client, logger.NewDiscard())

	view := cache.Toggle(context.Background(), alice)
	if !view.Visible || len(view.Entries) != 2 || view.Entries[0].Question != "q1" {
		t.Fatalf("first toggle = %+v", view)
	}
	if client.tokens[0] != "tok" {
		t.Fatalf("token = %q", client.tokens[0])
	}

	if view = cache.Toggle(context.Background(), alice); view.Visible {
		t.Fatal("second toggle should hide")
	}
	if view = cache.Toggle(context.Background(), alice); !view.Visible {
		t.Fatal("third toggle should show")
	}
	if client.calls != 1 {
		t.Fatalf("calls = %d, want 1", client.calls)
	}
}

func TestInvalidateForcesRefetch(t *testing.T) {
	client := &stubHistoryClient{entries: []domain.HistoryEntry{{Question: "q1"}}}
	cache := NewCache(client, logger.NewDiscard())

	cache.Toggle(context.Background(), alice)
	cache.Invalidate()
	if len(cache.View().Entries) != 0 {
		t.Fatal("Invalidate must clear entries")
	}
	cache.Toggle(context.Background(), alice)
	if client.calls != 2 {
		t.Fatalf("calls = %d, want 2", client.calls)
	}
}

func TestToggleFailureIsSoft(t *testing.T) {
	client := &stubHistoryClient{err: &domain.TransportError{Op: "history", Err: errors.New("down")}}
	cache := NewCache(client, logger.NewDiscard())

	view := cache.Toggle(context.Background(), alice)
	if view.Visible || len(view.Entries) != 0 {
		t.Fatalf("failed fetch changed state: %+v", view)
	}
}

func TestEmptyResultFetchesAgain(t *testing.T) {
	client := &stubHistoryClient{}
	cache := NewCache(client, logger.NewDiscard())

	if view := cache.Toggle(context.Background(), alice); !view.Visible {
		t.Fatal("empty success still shows the panel")
	}
	cache.Toggle(context.Background(), alice)
	if client.calls != 2 {
		t.Fatalf("calls = %d; an empty list is not considered loaded", client.calls)
	}
}

func TestInvalidateDuringFetchDiscardsResponse(t *testing.T) {
	client := &stubHistoryClient{entries: []domain.HistoryEntry{{Question: "old"}}}
	cache := NewCache(client, logger.NewDiscard())
	client.during = cache.Invalidate

	view := cache.Toggle(context.Background(), alice)
	if len(view.Entries) != 0 {
		t.Fatalf("stale response applied: %+v", view)
	}
}
