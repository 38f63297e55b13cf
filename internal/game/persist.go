package game

import (
	"encoding/json"
	"fmt"
)

// Record is the flat persisted form of a Match. Players holds the JSON
// encoding of both players, including hands, decks and cards in play.
type Record struct {
	ID                 string          `json:"id"`
	Players            json.RawMessage `json:"players"`
	CurrentPlayerIndex int             `json:"currentPlayerIndex"`
	Phase              string          `json:"phase"`
	TurnCount          int             `json:"turnCount"`
	WinnerID           string          `json:"winnerId,omitempty"`
}

// ToRecord serializes a match into its persisted form.
func ToRecord(m *Match) (Record, error) {
	players, err := json.Marshal(m.Players)
	if err != nil {
		return Record{}, fmt.Errorf("encode players of match %s: %w", m.ID, err)
	}
	return Record{
		ID:                 m.ID,
		Players:            players,
		CurrentPlayerIndex: m.CurrentPlayer,
		Phase:              m.Phase.String(),
		TurnCount:          m.Turn,
		WinnerID:           m.Winner,
	}, nil
}

// FromRecord rebuilds a match from its persisted form. Records that would
// produce a state the engine could never reach are rejected.
func FromRecord(rec Record) (*Match, error) {
	var players [2]*Player
	if err := json.Unmarshal(rec.Players, &players); err != nil {
		return nil, fmt.Errorf("decode players of match %s: %w", rec.ID, err)
	}
	phase, err := ParsePhase(rec.Phase)
	if err != nil {
		return nil, fmt.Errorf("match %s: %w", rec.ID, err)
	}
	m := &Match{
		ID:            rec.ID,
		Players:       players,
		CurrentPlayer: rec.CurrentPlayerIndex,
		Phase:         phase,
		Turn:          rec.TurnCount,
		Winner:        rec.WinnerID,
	}
	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("match %s: %w", rec.ID, err)
	}
	return m, nil
}

func (m *Match) validate() error {
	for i, p := range m.Players {
		if p == nil {
			return fmt.Errorf("player %d missing", i)
		}
		if p.NexusHP < 0 || p.NexusHP > p.MaxNexusHP {
			return fmt.Errorf("player %d nexus hp %d outside [0, %d]", i, p.NexusHP, p.MaxNexusHP)
		}
		zones := [][]*CardInstance{p.Hand, p.Deck, p.Discard, p.Artifacts}
		if p.ActiveBeast != nil {
			zones = append(zones, []*CardInstance{p.ActiveBeast})
		}
		for _, zone := range zones {
			for _, c := range zone {
				if c == nil || c.Card == nil {
					return fmt.Errorf("player %d holds a card without definition", i)
				}
				if c.Kind() == KindBeast && (c.HP < 0 || c.HP > c.MaxHP) {
					return fmt.Errorf("beast %s hp %d outside [0, %d]", c.ID, c.HP, c.MaxHP)
				}
			}
		}
		if p.ActiveBeast != nil && p.ActiveBeast.Kind() != KindBeast {
			return fmt.Errorf("player %d active card %s is not a beast", i, p.ActiveBeast.ID)
		}
	}
	if m.CurrentPlayer != 0 && m.CurrentPlayer != 1 {
		return fmt.Errorf("current player index %d out of range", m.CurrentPlayer)
	}
	if m.Turn < 1 {
		return fmt.Errorf("turn count %d below 1", m.Turn)
	}
	if m.Winner != "" && m.PlayerIndex(m.Winner) < 0 {
		return fmt.Errorf("winner %q is not a player", m.Winner)
	}
	return nil
}
