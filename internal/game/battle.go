package game

import (
	"fmt"

	"github.com/peterkuimelis/mythduel/internal/log"
)

// checkAttack validates the preconditions shared by nexus and beast attacks
// and returns the chosen attack.
func (r *resolution) checkAttack(attackIndex int) (Attack, string) {
	p := r.acting()
	if r.m.Turn <= 1 {
		return Attack{}, "no attacks on the first turn"
	}
	if p.HasAttackedThisTurn {
		return Attack{}, "already attacked this turn"
	}
	if p.ActiveBeast == nil {
		return Attack{}, "no active beast"
	}
	if attackIndex < 0 || attackIndex >= len(p.ActiveBeast.Attacks) {
		return Attack{}, fmt.Sprintf("invalid attack index %d", attackIndex)
	}
	return p.ActiveBeast.Attacks[attackIndex], ""
}

// executeAttackNexus attacks the opponent's nexus with the active beast.
func (r *resolution) executeAttackNexus(a Action) string {
	atk, reason := r.checkAttack(a.AttackIndex)
	if reason != "" {
		return reason
	}
	p := r.acting()
	opp := r.m.Opponent(r.actor)

	r.log(log.NewAttackDeclareEvent(r.m.Turn, r.m.Phase.String(), r.actor,
		p.ActiveBeast.Name(), atk.Name, fmt.Sprintf("%s's nexus", r.opponent().Name)))

	p.HasAttackedThisTurn = true
	r.damageNexus(opp, atk.Damage, fmt.Sprintf("%s by %s", atk.Name, p.ActiveBeast.Name()))
	r.finishAttack()
	return ""
}

// executeAttackBeast attacks the opponent's active beast.
func (r *resolution) executeAttackBeast(a Action) string {
	atk, reason := r.checkAttack(a.AttackIndex)
	if reason != "" {
		return reason
	}
	opp := r.m.Opponent(r.actor)
	defender := r.m.Players[opp].ActiveBeast
	if defender == nil {
		return "opponent has no active beast"
	}
	if a.TargetID != "" && a.TargetID != defender.ID {
		return fmt.Sprintf("target %q is not in play", a.TargetID)
	}
	p := r.acting()

	r.log(log.NewAttackDeclareEvent(r.m.Turn, r.m.Phase.String(), r.actor,
		p.ActiveBeast.Name(), atk.Name, defender.Name()))

	p.HasAttackedThisTurn = true
	r.damageBeast(opp, defender, atk.Damage, fmt.Sprintf("%s by %s", atk.Name, p.ActiveBeast.Name()))
	r.finishAttack()
	return ""
}

// finishAttack closes the attack phase after an attack declared from it.
func (r *resolution) finishAttack() {
	if r.m.Phase == PhaseAttack {
		r.setPhase(PhaseEnd)
	}
}
