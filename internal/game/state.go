package game

const (
	StartingNexusHP = 20
	InitialHandSize = 3
)

// Player represents one side of a match.
type Player struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	NexusHP    int             `json:"nexusHp"`
	MaxNexusHP int             `json:"maxNexusHp"`
	Hand       []*CardInstance `json:"hand"`
	Deck       []*CardInstance `json:"deck"` // top of deck is last element (pop from end)
	Discard    []*CardInstance `json:"discard,omitempty"`

	ActiveBeast *CardInstance   `json:"activeBeast,omitempty"`
	Artifacts   []*CardInstance `json:"artifacts"`

	HasAttackedThisTurn bool `json:"hasAttackedThisTurn"`
}

// NewPlayer creates a player with full nexus hp and the given deck.
// Cards are drawn from the end of deck.
func NewPlayer(id, name string, deck []*Card) *Player {
	p := &Player{
		ID:         id,
		Name:       name,
		NexusHP:    StartingNexusHP,
		MaxNexusHP: StartingNexusHP,
		Hand:       []*CardInstance{},
		Artifacts:  []*CardInstance{},
	}
	p.Deck = make([]*CardInstance, 0, len(deck))
	for _, c := range deck {
		p.Deck = append(p.Deck, NewCardInstance(c))
	}
	return p
}

// DeckCount returns the number of cards remaining in the deck.
func (p *Player) DeckCount() int {
	return len(p.Deck)
}

// HandCount returns the number of cards in hand.
func (p *Player) HandCount() int {
	return len(p.Hand)
}

// DrawCard removes the top card from the deck and adds it to the hand.
// Returns the drawn card, or nil if the deck is empty.
func (p *Player) DrawCard() *CardInstance {
	if len(p.Deck) == 0 {
		return nil
	}
	card := p.Deck[len(p.Deck)-1]
	p.Deck = p.Deck[:len(p.Deck)-1]
	p.Hand = append(p.Hand, card)
	return card
}

// FindInHand returns the first hand card with the given id, or nil.
func (p *Player) FindInHand(id string) *CardInstance {
	for _, c := range p.Hand {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// RemoveFromHand removes a card from the hand.
func (p *Player) RemoveFromHand(card *CardInstance) {
	for i, c := range p.Hand {
		if c == card {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return
		}
	}
}

// FindArtifact returns the first artifact in the collection with the given id.
// Artifacts not yet equipped are preferred.
func (p *Player) FindArtifact(id string) *CardInstance {
	var found *CardInstance
	for _, a := range p.Artifacts {
		if a.ID != id {
			continue
		}
		if !a.Equipped {
			return a
		}
		if found == nil {
			found = a
		}
	}
	return found
}

// HasBeastAvailable reports whether the player has a beast in play, in hand or in the deck.
func (p *Player) HasBeastAvailable() bool {
	if p.ActiveBeast != nil {
		return true
	}
	for _, c := range p.Hand {
		if c.Kind() == KindBeast {
			return true
		}
	}
	for _, c := range p.Deck {
		if c.Kind() == KindBeast {
			return true
		}
	}
	return false
}

// setNexusHP assigns nexus hp clamped to [0, MaxNexusHP].
func (p *Player) setNexusHP(hp int) {
	if hp < 0 {
		hp = 0
	}
	if hp > p.MaxNexusHP {
		hp = p.MaxNexusHP
	}
	p.NexusHP = hp
}

// discardBeast takes the active beast out of play.
func (p *Player) discardBeast() *CardInstance {
	b := p.ActiveBeast
	if b == nil {
		return nil
	}
	p.ActiveBeast = nil
	p.Discard = append(p.Discard, b)
	return b
}

// --- Match ---

// Match holds the complete state of one game between two players.
type Match struct {
	ID            string     `json:"id"`
	Players       [2]*Player `json:"players"`
	CurrentPlayer int        `json:"currentPlayerIndex"` // 0 or 1: whose turn it is
	Phase         Phase      `json:"phase"`
	Turn          int        `json:"turnCount"` // 1-based turn counter
	Winner        string     `json:"winner,omitempty"`
}

// Opponent returns the index of the other player.
func (m *Match) Opponent(player int) int {
	return 1 - player
}

// Acting returns the Player struct for the turn player.
func (m *Match) Acting() *Player {
	return m.Players[m.CurrentPlayer]
}

// OpponentPlayer returns the Player struct for the non-turn player.
func (m *Match) OpponentPlayer() *Player {
	return m.Players[m.Opponent(m.CurrentPlayer)]
}

// PlayerIndex returns the index of the player with the given id, or -1.
func (m *Match) PlayerIndex(id string) int {
	for i, p := range m.Players {
		if p != nil && p.ID == id {
			return i
		}
	}
	return -1
}

// IsOver reports whether a winner has been decided.
func (m *Match) IsOver() bool {
	return m.Winner != ""
}
