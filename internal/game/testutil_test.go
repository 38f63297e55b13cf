package game

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/peterkuimelis/mythduel/internal/log"
)

// --- Card helpers ---

func beastCard(id string, hp int, damages ...int) *Card {
	c := &Card{ID: id, Name: id, Mythology: "test", Kind: KindBeast, HP: hp, MaxHP: hp}
	for i, d := range damages {
		c.Attacks = append(c.Attacks, Attack{Name: fmt.Sprintf("%s-attack-%d", id, i), Damage: d})
	}
	return c
}

func passiveBeast(id string, hp int, passive string, damages ...int) *Card {
	c := beastCard(id, hp, damages...)
	c.Passive = passive
	return c
}

func techniqueCard(id, effect string) *Card {
	return &Card{ID: id, Name: id, Mythology: "test", Kind: KindTechnique, Effect: effect}
}

func artifactCard(id, effect string) *Card {
	return &Card{ID: id, Name: id, Mythology: "test", Kind: KindArtifact, Effect: effect}
}

// stubCatalog maps a mythology tag to its cards in order.
type stubCatalog map[string][]*Card

func (c stubCatalog) Cards(mythology string) []*Card {
	return c[mythology]
}

func testCatalog() stubCatalog {
	return stubCatalog{
		"test": {
			beastCard("b1", 5, 2),
			techniqueCard("t1", `{"type":"damage","amount":2}`),
			beastCard("b2", 6, 3),
			artifactCard("a1", `{"type":"attack_boost","amount":1}`),
			beastCard("b3", 7, 1),
			techniqueCard("t2", `{"type":"heal","amount":2}`),
			beastCard("b4", 8, 4),
			artifactCard("a2", `{"type":"hp_boost","amount":2}`),
			beastCard("b5", 9, 5),
			techniqueCard("t3", `{"type":"draw","amount":1}`),
			techniqueCard("t4", `{"type":"dispel"}`),
			artifactCard("a3", `{"type":"curse","amount":1}`),
			artifactCard("a4", `{"type":"damage","amount":1}`),
		},
		"tiny": {
			beastCard("lonely", 4, 1),
			artifactCard("trinket", `{"type":"hp_boost","amount":1}`),
		},
	}
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// --- Fixture ---

// fixture is a hand-built match in a known state: Alice (player 0) to act in
// the main phase of turn 2, both players holding one reserve beast in the deck.
type fixture struct {
	t      *testing.T
	e      *Engine
	logger *log.MemoryLogger
	m      *Match
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := log.NewMemoryLogger()
	e := NewEngine(Config{Catalog: testCatalog(), Logger: logger, NewID: sequentialIDs()})
	m := &Match{ID: "match-1", Phase: PhaseMain, Turn: 2}
	m.Players[0] = NewPlayer("alice", "Alice", []*Card{beastCard("alice-reserve", 3, 1)})
	m.Players[1] = NewPlayer("bob", "Bob", []*Card{beastCard("bob-reserve", 3, 1)})
	return &fixture{t: t, e: e, logger: logger, m: m}
}

// give puts fresh instances of the cards into a player's hand.
func (f *fixture) give(player int, cards ...*Card) {
	for _, c := range cards {
		f.m.Players[player].Hand = append(f.m.Players[player].Hand, NewCardInstance(c))
	}
}

// field makes a card the player's active beast.
func (f *fixture) field(player int, c *Card) *CardInstance {
	ci := NewCardInstance(c)
	f.m.Players[player].ActiveBeast = ci
	return ci
}

// collect adds an artifact to the player's artifact collection.
func (f *fixture) collect(player int, c *Card) *CardInstance {
	ci := NewCardInstance(c)
	f.m.Players[player].Artifacts = append(f.m.Players[player].Artifacts, ci)
	return ci
}

func (f *fixture) apply(a Action) Result {
	return f.e.Apply(f.m, a)
}

func (f *fixture) mustApply(a Action) Result {
	f.t.Helper()
	res := f.apply(a)
	if !res.Applied {
		f.t.Fatalf("%s rejected: %s", a, res.Reason)
	}
	return res
}

// mustReject applies an action that must be rejected and verifies the match
// is left exactly as it was.
func (f *fixture) mustReject(a Action) Result {
	f.t.Helper()
	before := f.snapshot()
	res := f.apply(a)
	if res.Applied {
		f.t.Fatalf("%s applied, expected rejection", a)
	}
	if res.Reason == "" {
		f.t.Errorf("%s rejected without a reason", a)
	}
	if after := f.snapshot(); after != before {
		f.t.Errorf("%s mutated the match on rejection:\nbefore %s\nafter  %s", a, before, after)
	}
	if last := f.logger.LastEvent(); last.Type != log.EventRejected {
		f.t.Errorf("last event = %s, want %s", last.Type, log.EventRejected)
	}
	return res
}

func (f *fixture) snapshot() string {
	f.t.Helper()
	data, err := json.Marshal(f.m)
	if err != nil {
		f.t.Fatalf("marshal match: %v", err)
	}
	return string(data)
}

func (f *fixture) player(i int) *Player {
	return f.m.Players[i]
}

// checkInvariants asserts the properties every reachable match state holds.
func checkInvariants(t *testing.T, m *Match) {
	t.Helper()
	for i, p := range m.Players {
		if p.NexusHP < 0 || p.NexusHP > p.MaxNexusHP {
			t.Errorf("player %d nexus hp %d outside [0, %d]", i, p.NexusHP, p.MaxNexusHP)
		}
		if b := p.ActiveBeast; b != nil && (b.HP <= 0 || b.HP > b.MaxHP) {
			t.Errorf("player %d active beast %s hp %d outside (0, %d]", i, b.ID, b.HP, b.MaxHP)
		}
	}
	if m.Turn < 1 {
		t.Errorf("turn %d below 1", m.Turn)
	}
	if m.Phase < PhaseDraw || m.Phase > PhaseEnd {
		t.Errorf("phase %d out of range", m.Phase)
	}
	if m.Winner != "" && m.PlayerIndex(m.Winner) < 0 {
		t.Errorf("winner %q is not a player", m.Winner)
	}
}
