package game

import (
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/peterkuimelis/mythduel/internal/log"
)

// Config holds configuration for creating an Engine.
type Config struct {
	Catalog Catalog
	Logger  log.EventLogger
	NewID   func() string // id generator for matches and players (default: uuid)

	// Shuffle, if set, reorders each freshly built deck before the opening
	// hands are dealt. Decks keep catalog order when nil.
	Shuffle func(deck []*Card)
}

// Engine creates matches and resolves actions against them. It holds no match
// state; the same Engine may serve many matches concurrently as long as each
// match is only touched by one Apply call at a time.
type Engine struct {
	Catalog Catalog
	Logger  log.EventLogger
	newID   func() string
	shuffle func([]*Card)
}

// NewEngine creates an engine from the given config.
func NewEngine(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	newID := cfg.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	return &Engine{
		Catalog: cfg.Catalog,
		Logger:  logger,
		newID:   newID,
		shuffle: cfg.Shuffle,
	}
}

// Result reports the outcome of a single Apply call.
type Result struct {
	Applied  bool   `json:"applied"`
	Reason   string `json:"reason,omitempty"` // why the action was rejected
	Terminal bool   `json:"terminal"`
}

// BuildDeck builds a deck for a mythology from the engine's catalog.
func (e *Engine) BuildDeck(mythology string) []*Card {
	return BuildDeck(e.Catalog, mythology)
}

func (e *Engine) freshDeck(mythology string) []*Card {
	deck := e.BuildDeck(mythology)
	if e.shuffle != nil {
		e.shuffle(deck)
	}
	return deck
}

// RandomShuffle shuffles a deck with the global random source.
func RandomShuffle(deck []*Card) {
	rand.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
}

// CreateMatch sets up a new match: fresh decks, three-card opening hands,
// player 0 to act in the draw phase of turn 1.
func (e *Engine) CreateMatch(p1Name, p2Name, p1Mythology, p2Mythology string) *Match {
	m := &Match{
		ID:            e.newID(),
		CurrentPlayer: 0,
		Phase:         PhaseDraw,
		Turn:          1,
	}
	m.Players[0] = NewPlayer(e.newID(), p1Name, e.freshDeck(p1Mythology))
	m.Players[1] = NewPlayer(e.newID(), p2Name, e.freshDeck(p2Mythology))

	r := &resolution{e: e, m: m}
	r.log(log.NewTurnEvent(m.Turn, m.CurrentPlayer))
	for p := 0; p < 2; p++ {
		for i := 0; i < InitialHandSize; i++ {
			r.draw(p)
		}
	}
	return m
}

// Apply validates and resolves one action for the current player. Rule
// violations never return errors: the action is dropped, logged as rejected,
// and the match is left untouched. The win conditions are evaluated after
// every call.
func (e *Engine) Apply(m *Match, a Action) Result {
	r := &resolution{e: e, m: m, actor: m.CurrentPlayer}

	reason := ""
	if m.IsOver() {
		reason = "match is over"
	} else {
		reason = r.dispatch(a)
	}
	if reason != "" {
		r.log(log.NewRejectedEvent(m.Turn, m.Phase.String(), r.actor, a.String(), reason))
	}

	r.checkWinConditions()

	return Result{
		Applied:  reason == "",
		Reason:   reason,
		Terminal: m.IsOver(),
	}
}

// resolution is the working context of a single Apply call.
type resolution struct {
	e     *Engine
	m     *Match
	actor int // acting player index
}

func (r *resolution) acting() *Player {
	return r.m.Players[r.actor]
}

func (r *resolution) opponent() *Player {
	return r.m.Players[r.m.Opponent(r.actor)]
}

// log stamps the match id and forwards the event to the engine's logger.
func (r *resolution) log(event log.GameEvent) {
	event.MatchID = r.m.ID
	r.e.Logger.Log(event)
}

func (r *resolution) setPhase(p Phase) {
	if r.m.Phase == p {
		return
	}
	r.m.Phase = p
	r.log(log.NewPhaseChangeEvent(r.m.Turn, p.String()))
}

// draw moves the top card of a player's deck to their hand. Empty decks draw nothing.
func (r *resolution) draw(player int) *CardInstance {
	card := r.m.Players[player].DrawCard()
	if card != nil {
		r.log(log.NewDrawEvent(r.m.Turn, r.m.Phase.String(), player, card.Name()))
	}
	return card
}

// damageNexus reduces a player's nexus hp, clamped at 0.
func (r *resolution) damageNexus(player int, amount int, reason string) {
	p := r.m.Players[player]
	old := p.NexusHP
	p.setNexusHP(p.NexusHP - amount)
	r.log(log.NewNexusChangeEvent(r.m.Turn, r.m.Phase.String(), player, old, p.NexusHP, reason))
}

// healNexus raises a player's nexus hp, clamped at the maximum.
func (r *resolution) healNexus(player int, amount int, reason string) {
	p := r.m.Players[player]
	old := p.NexusHP
	p.setNexusHP(p.NexusHP + amount)
	r.log(log.NewNexusChangeEvent(r.m.Turn, r.m.Phase.String(), player, old, p.NexusHP, reason))
}

// damageBeast reduces a beast's hp and destroys it at 0.
func (r *resolution) damageBeast(owner int, beast *CardInstance, amount int, reason string) {
	old := beast.HP
	beast.setHP(beast.HP - amount)
	r.log(log.NewDamageEvent(r.m.Turn, r.m.Phase.String(), owner, beast.Name(), old, beast.HP, reason))
	if beast.HP == 0 {
		r.destroyBeast(owner, beast)
	}
}

func (r *resolution) healBeast(owner int, beast *CardInstance, amount int, reason string) {
	old := beast.HP
	beast.setHP(beast.HP + amount)
	r.log(log.NewHealEvent(r.m.Turn, r.m.Phase.String(), owner, beast.Name(), old, beast.HP, reason))
}

// destroyBeast removes a beast from play if it is still its owner's active beast.
func (r *resolution) destroyBeast(owner int, beast *CardInstance) {
	p := r.m.Players[owner]
	if p.ActiveBeast != beast {
		return
	}
	p.discardBeast()
	r.log(log.NewBeastDestroyedEvent(r.m.Turn, r.m.Phase.String(), owner, beast.Name()))
}
