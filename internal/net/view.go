package net

import "github.com/peterkuimelis/mythduel/internal/game"

// BuildMatchView creates a MatchView from a player's perspective. Only the
// viewer's hand is revealed. A viewer outside [0, 1] sees the match as a
// spectator from player 0's side with both hands hidden.
func BuildMatchView(m *game.Match, viewer int) *MatchView {
	self, reveal := viewer, true
	if viewer != 0 && viewer != 1 {
		self, reveal = 0, false
	}
	return &MatchView{
		MatchID:    m.ID,
		Turn:       m.Turn,
		Phase:      m.Phase.String(),
		IsYourTurn: reveal && m.CurrentPlayer == self && !m.IsOver(),
		You:        buildPlayerView(m.Players[self], reveal),
		Opponent:   buildPlayerView(m.Players[m.Opponent(self)], false),
		Winner:     m.Winner,
		Terminal:   m.IsOver(),
	}
}

func buildPlayerView(p *game.Player, showHand bool) PlayerView {
	pv := PlayerView{
		ID:           p.ID,
		Name:         p.Name,
		NexusHP:      p.NexusHP,
		MaxNexusHP:   p.MaxNexusHP,
		HandCount:    p.HandCount(),
		DeckCount:    p.DeckCount(),
		DiscardCount: len(p.Discard),
		Artifacts:    []CardView{},
		HasAttacked:  p.HasAttackedThisTurn,
	}
	if showHand {
		pv.Hand = make([]CardView, 0, len(p.Hand))
		for _, c := range p.Hand {
			pv.Hand = append(pv.Hand, buildCardView(c))
		}
	}
	for _, a := range p.Artifacts {
		pv.Artifacts = append(pv.Artifacts, buildCardView(a))
	}
	if b := p.ActiveBeast; b != nil {
		bv := &BeastView{ID: b.ID, Name: b.Name(), HP: b.HP, MaxHP: b.MaxHP, Attacks: []AttackView{}}
		for i, atk := range b.Attacks {
			bv.Attacks = append(bv.Attacks, AttackView{Index: i, Name: atk.Name, Damage: atk.Damage})
		}
		pv.ActiveBeast = bv
	}
	return pv
}

func buildCardView(c *game.CardInstance) CardView {
	return CardView{
		ID:          c.ID,
		Name:        c.Name(),
		Kind:        c.Kind().String(),
		Description: c.Card.Description,
		Equipped:    c.Equipped,
	}
}
