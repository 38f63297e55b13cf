package mcp

import (
	"sync"

	"github.com/peterkuimelis/mythduel/internal/log"
)

// maxBufferedEvents caps the undrained events kept per match.
const maxBufferedEvents = 200

// EventView is a match event as presented in tool responses.
type EventView struct {
	Turn    int    `json:"turn"`
	Phase   string `json:"phase"`
	Player  int    `json:"player"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Details string `json:"details"`
}

// EventFeed is an EventLogger that buffers events per match until a tool
// call drains them, so an agent sees everything that happened since its last
// call. Events are also forwarded to next, if set.
type EventFeed struct {
	next log.EventLogger

	mu      sync.Mutex
	pending map[string][]log.GameEvent
}

// NewEventFeed creates a feed forwarding to next (which may be nil).
func NewEventFeed(next log.EventLogger) *EventFeed {
	return &EventFeed{next: next, pending: map[string][]log.GameEvent{}}
}

func (f *EventFeed) Log(event log.GameEvent) {
	if f.next != nil {
		f.next.Log(event)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	buf := append(f.pending[event.MatchID], event)
	if len(buf) > maxBufferedEvents {
		buf = buf[len(buf)-maxBufferedEvents:]
	}
	f.pending[event.MatchID] = buf
}

// Events returns every undrained event across all matches.
func (f *EventFeed) Events() []log.GameEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []log.GameEvent
	for _, evs := range f.pending {
		out = append(out, evs...)
	}
	return out
}

// Drain returns and forgets the buffered events of one match.
func (f *EventFeed) Drain(matchID string) []EventView {
	f.mu.Lock()
	evs := f.pending[matchID]
	delete(f.pending, matchID)
	f.mu.Unlock()

	out := make([]EventView, 0, len(evs))
	for _, e := range evs {
		out = append(out, EventView{
			Turn:    e.Turn,
			Phase:   e.Phase,
			Player:  e.Player,
			Type:    e.Type.String(),
			Card:    e.Card,
			Details: e.Details,
		})
	}
	return out
}

// Forget drops the buffered events of a deleted match.
func (f *EventFeed) Forget(matchID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.pending, matchID)
}
