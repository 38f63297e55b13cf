package game

import (
	"fmt"

	"github.com/peterkuimelis/mythduel/internal/log"
)

// onBeastEnterPlay fires enter_play passives of a beast that just became active.
func (r *resolution) onBeastEnterPlay(owner int, beast *CardInstance) {
	r.firePassive(owner, beast, TriggerEnterPlay)
}

// onTurnStart fires turn_start passives of the player whose turn just began.
func (r *resolution) onTurnStart(owner int) {
	if beast := r.m.Players[owner].ActiveBeast; beast != nil {
		r.firePassive(owner, beast, TriggerTurnStart)
	}
}

// firePassive resolves a beast's passive descriptor when its trigger matches.
// Passives resolve on behalf of the beast's owner: heal and boosts hit the
// beast itself, damage hits the opposing active beast.
func (r *resolution) firePassive(owner int, beast *CardInstance, trigger string) {
	if beast.Card.Passive == "" {
		return
	}
	phase := r.m.Phase.String()
	eff, err := ParseEffect(beast.Card.Passive)
	if err != nil {
		r.log(log.NewEffectSkippedEvent(r.m.Turn, phase, owner, beast.Name(), err.Error()))
		return
	}
	want := eff.Trigger
	if want == "" {
		want = TriggerTurnStart
	}
	if want != trigger {
		return
	}

	pr := &resolution{e: r.e, m: r.m, actor: owner}
	tt := TargetAllyBeast
	if eff.Type == EffectDamage {
		tt = TargetEnemyBeast
	}
	t, reason := pr.prepareEffect(eff, LifecyclePassive, tt, "")
	if reason != "" {
		r.log(log.NewEffectSkippedEvent(r.m.Turn, phase, owner, beast.Name(), reason))
		return
	}
	r.log(log.NewPassiveEvent(r.m.Turn, phase, owner, beast.Name(), fmt.Sprintf("%s %d", eff.Type, eff.Amount)))
	pr.applyEffect(beast, eff, t)
}
