package game

import (
	"fmt"

	"github.com/peterkuimelis/mythduel/internal/log"
)

// dispatch routes an action to its handler. It returns the rejection reason,
// or "" if the action was applied. Handlers check every precondition before
// their first mutation.
func (r *resolution) dispatch(a Action) string {
	switch a.Type {
	case ActionDrawCard:
		return r.executeDrawCard()
	case ActionPlayCard:
		return r.executePlayCard(a)
	case ActionBeginAttack:
		return r.executeBeginAttack()
	case ActionAttackNexus:
		return r.executeAttackNexus(a)
	case ActionAttackBeast:
		return r.executeAttackBeast(a)
	case ActionEndTurn:
		return r.executeEndTurn()
	case ActionEquipArtifact:
		return r.executeEquipArtifact(a)
	case ActionUseArtifact:
		return r.executeUseFromHand(a, KindArtifact)
	case ActionUseTechnique:
		return r.executeUseFromHand(a, KindTechnique)
	default:
		return fmt.Sprintf("unknown action type %d", int(a.Type))
	}
}

// executeDrawCard draws one card and moves to the main phase.
func (r *resolution) executeDrawCard() string {
	if r.m.Phase != PhaseDraw {
		return fmt.Sprintf("cannot draw in %s phase", r.m.Phase)
	}
	r.draw(r.actor)
	r.setPhase(PhaseMain)
	return ""
}

// executePlayCard plays a card from hand during the main phase.
func (r *resolution) executePlayCard(a Action) string {
	if r.m.Phase != PhaseMain {
		return fmt.Sprintf("cannot play cards in %s phase", r.m.Phase)
	}
	p := r.acting()
	card := p.FindInHand(a.CardID)
	if card == nil {
		return fmt.Sprintf("card %q not in hand", a.CardID)
	}

	p.RemoveFromHand(card)
	r.log(log.NewPlayCardEvent(r.m.Turn, r.m.Phase.String(), r.actor, card.Name(), card.Kind().String()))

	switch card.Kind() {
	case KindBeast:
		if old := p.discardBeast(); old != nil {
			r.log(log.NewBeastReplacedEvent(r.m.Turn, r.m.Phase.String(), r.actor, old.Name()))
		}
		p.ActiveBeast = card
		r.log(log.NewBeastEnterPlayEvent(r.m.Turn, r.m.Phase.String(), r.actor, card.Name(), card.HP))
		r.onBeastEnterPlay(r.actor, card)
	case KindTechnique:
		r.playTechnique(card)
		p.Discard = append(p.Discard, card)
	case KindArtifact:
		p.Artifacts = append(p.Artifacts, card)
	}
	return ""
}

// playTechnique resolves a technique played via PlayCard. Only effects that
// make sense against the acting player's own nexus resolve here; anything else
// is consumed without effect.
func (r *resolution) playTechnique(card *CardInstance) {
	eff, err := ParseEffect(card.Card.Effect)
	if err != nil {
		r.log(log.NewEffectSkippedEvent(r.m.Turn, r.m.Phase.String(), r.actor, card.Name(), err.Error()))
		return
	}
	if !eff.Type.AllowedIn(LifecyclePlay) {
		r.log(log.NewEffectSkippedEvent(r.m.Turn, r.m.Phase.String(), r.actor, card.Name(),
			fmt.Sprintf("%s has no effect on play", eff.Type)))
		return
	}
	t, reason := r.prepareEffect(eff, LifecyclePlay, TargetAllyNexus, "")
	if reason != "" {
		r.log(log.NewEffectSkippedEvent(r.m.Turn, r.m.Phase.String(), r.actor, card.Name(), reason))
		return
	}
	r.log(log.NewActivateEvent(r.m.Turn, r.m.Phase.String(), r.actor, card.Name()))
	r.applyEffect(card, eff, t)
}

// executeBeginAttack moves from the main phase into the attack phase.
func (r *resolution) executeBeginAttack() string {
	if r.m.Phase != PhaseMain {
		return fmt.Sprintf("cannot begin attack in %s phase", r.m.Phase)
	}
	r.setPhase(PhaseAttack)
	return ""
}

// executeEndTurn hands the turn to the other player.
func (r *resolution) executeEndTurn() string {
	m := r.m
	for _, p := range m.Players {
		p.HasAttackedThisTurn = false
	}
	m.CurrentPlayer = m.Opponent(m.CurrentPlayer)
	m.Turn++
	m.Phase = PhaseDraw
	r.log(log.NewTurnEvent(m.Turn, m.CurrentPlayer))
	r.onTurnStart(m.CurrentPlayer)
	return ""
}

// executeUseFromHand consumes a technique or artifact from hand against an
// explicit target.
func (r *resolution) executeUseFromHand(a Action, kind CardKind) string {
	p := r.acting()
	card := p.FindInHand(a.CardID)
	if card == nil {
		return fmt.Sprintf("card %q not in hand", a.CardID)
	}
	if card.Kind() != kind {
		return fmt.Sprintf("card %q is a %s, not a %s", a.CardID, card.Kind(), kind)
	}
	eff, err := ParseEffect(card.Card.Effect)
	if err != nil {
		return err.Error()
	}
	t, reason := r.prepareEffect(eff, LifecycleUse, a.TargetType, a.TargetID)
	if reason != "" {
		return reason
	}

	p.RemoveFromHand(card)
	p.Discard = append(p.Discard, card)
	r.log(log.NewActivateEvent(r.m.Turn, r.m.Phase.String(), r.actor, card.Name()))
	r.applyEffect(card, eff, t)
	return ""
}
