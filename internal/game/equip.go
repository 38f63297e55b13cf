package game

import (
	"fmt"

	"github.com/peterkuimelis/mythduel/internal/log"
)

// executeEquipArtifact applies an artifact from the collection to the active beast.
func (r *resolution) executeEquipArtifact(a Action) string {
	p := r.acting()
	art := p.FindArtifact(a.CardID)
	if art == nil {
		return fmt.Sprintf("artifact %q not in collection", a.CardID)
	}
	if art.Equipped {
		return fmt.Sprintf("artifact %q already equipped", a.CardID)
	}
	if p.ActiveBeast == nil {
		return "no active beast to equip"
	}
	eff, err := ParseEffect(art.Card.Effect)
	if err != nil {
		return err.Error()
	}
	t, reason := r.prepareEffect(eff, LifecycleEquip, TargetAllyBeast, "")
	if reason != "" {
		return reason
	}

	art.Equipped = true
	r.log(log.NewEquipEvent(r.m.Turn, r.m.Phase.String(), r.actor, art.Name(), p.ActiveBeast.Name()))
	r.applyEffect(art, eff, t)
	return ""
}
