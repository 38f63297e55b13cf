package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/peterkuimelis/mythduel/internal/log"
)

// EffectType names what an effect descriptor does.
type EffectType string

const (
	EffectDamage          EffectType = "damage"
	EffectHeal            EffectType = "heal"
	EffectHealNexus       EffectType = "heal_nexus"
	EffectAttackBoost     EffectType = "attack_boost"
	EffectDamageReduction EffectType = "damage_reduction"
	EffectCurse           EffectType = "curse"
	EffectDispel          EffectType = "dispel"
	EffectDraw            EffectType = "draw"
	EffectHPBoost         EffectType = "hp_boost"
)

// Passive triggers.
const (
	TriggerEnterPlay = "enter_play"
	TriggerTurnStart = "turn_start"
)

// Effect is a decoded effect descriptor.
type Effect struct {
	Type     EffectType `json:"type"`
	Amount   int        `json:"amount"`
	Target   TargetType `json:"target,omitempty"`   // hint used when an action names no target
	Duration int        `json:"duration,omitempty"` // carried, not interpreted
	Trigger  string     `json:"trigger,omitempty"`  // passives only
}

var ErrMalformedEffect = errors.New("malformed effect descriptor")

// ParseEffect decodes a serialized effect descriptor.
func ParseEffect(raw string) (Effect, error) {
	var eff Effect
	if strings.TrimSpace(raw) == "" {
		return eff, fmt.Errorf("%w: empty", ErrMalformedEffect)
	}
	if err := json.Unmarshal([]byte(raw), &eff); err != nil {
		return eff, fmt.Errorf("%w: %v", ErrMalformedEffect, err)
	}
	if eff.Type == "" {
		return eff, fmt.Errorf("%w: missing type", ErrMalformedEffect)
	}
	if eff.Amount < 0 {
		return eff, fmt.Errorf("%w: negative amount %d", ErrMalformedEffect, eff.Amount)
	}
	eff.Type = EffectType(strings.ToLower(string(eff.Type)))
	eff.Target = eff.Target.normalize()
	return eff, nil
}

// Lifecycle is the path through which an effect is resolved.
type Lifecycle int

const (
	LifecyclePlay    Lifecycle = iota // technique played via PlayCard, implicit target
	LifecycleUse                      // technique or artifact used from hand, explicit target
	LifecycleEquip                    // artifact equipped to the active beast
	LifecyclePassive                  // beast passive hook
)

func (l Lifecycle) String() string {
	switch l {
	case LifecyclePlay:
		return "play"
	case LifecycleUse:
		return "use"
	case LifecycleEquip:
		return "equip"
	case LifecyclePassive:
		return "passive"
	default:
		return "unknown"
	}
}

type targetReq int

const (
	needsAnyTarget targetReq = iota
	needsBeast
	targetless
)

// effectSpec describes how one effect type resolves.
type effectSpec struct {
	lifecycles []Lifecycle
	target     targetReq
	apply      func(r *resolution, source *CardInstance, eff Effect, t target)
}

// effectTable maps effect types to the lifecycles they may resolve through.
var effectTable = map[EffectType]effectSpec{
	EffectDamage: {
		lifecycles: []Lifecycle{LifecycleUse, LifecyclePassive},
		target:     needsAnyTarget,
		apply:      applyDamage,
	},
	EffectHeal: {
		lifecycles: []Lifecycle{LifecyclePlay, LifecycleUse, LifecyclePassive},
		target:     needsAnyTarget,
		apply:      applyHeal,
	},
	EffectHealNexus: {
		lifecycles: []Lifecycle{LifecyclePlay, LifecycleUse, LifecyclePassive},
		target:     targetless,
		apply:      applyHealNexus,
	},
	EffectAttackBoost: {
		lifecycles: []Lifecycle{LifecycleUse, LifecycleEquip, LifecyclePassive},
		target:     needsBeast,
		apply:      applyAttackBoost,
	},
	EffectDamageReduction: {
		lifecycles: []Lifecycle{LifecycleUse, LifecycleEquip, LifecyclePassive},
		target:     needsBeast,
		apply:      applyHPBoost,
	},
	EffectHPBoost: {
		lifecycles: []Lifecycle{LifecycleEquip, LifecyclePassive},
		target:     needsBeast,
		apply:      applyHPBoost,
	},
	EffectCurse: {
		lifecycles: []Lifecycle{LifecycleUse},
		target:     needsBeast,
		apply:      applyCurse,
	},
	EffectDispel: {
		lifecycles: []Lifecycle{LifecycleUse},
		target:     targetless,
		apply:      func(r *resolution, source *CardInstance, eff Effect, t target) {},
	},
	EffectDraw: {
		lifecycles: []Lifecycle{LifecyclePlay, LifecycleUse},
		target:     targetless,
		apply:      applyDraw,
	},
}

// Recognized reports whether the interpreter knows the effect type.
func (t EffectType) Recognized() bool {
	_, ok := effectTable[t]
	return ok
}

// AllowedIn reports whether the effect type may resolve through the lifecycle.
func (t EffectType) AllowedIn(lc Lifecycle) bool {
	entry, ok := effectTable[t]
	if !ok {
		return false
	}
	for _, l := range entry.lifecycles {
		if l == lc {
			return true
		}
	}
	return false
}

// --- Targets ---

// target is a resolved effect target: either a beast in play or a player's nexus.
type target struct {
	kind   TargetType
	player int           // owner of the beast, or the nexus player
	beast  *CardInstance // nil for nexus targets
}

func (t target) isBeast() bool {
	return t.beast != nil
}

func (t target) describe(m *Match) string {
	if t.beast != nil {
		return t.beast.Name()
	}
	if t.kind == TargetNone {
		return "-"
	}
	return fmt.Sprintf("%s's nexus", m.Players[t.player].Name)
}

// resolveTarget turns a target type (and optional id) into a concrete target.
func (r *resolution) resolveTarget(tt TargetType, targetID string) (target, string) {
	actor := r.actor
	opp := r.m.Opponent(actor)
	var t target
	switch tt.normalize() {
	case TargetAllyBeast:
		t = target{kind: TargetAllyBeast, player: actor, beast: r.m.Players[actor].ActiveBeast}
		if t.beast == nil {
			return t, "no ally beast in play"
		}
	case TargetEnemyBeast:
		t = target{kind: TargetEnemyBeast, player: opp, beast: r.m.Players[opp].ActiveBeast}
		if t.beast == nil {
			return t, "no enemy beast in play"
		}
	case TargetAllyNexus:
		t = target{kind: TargetAllyNexus, player: actor}
	case TargetEnemyNexus:
		t = target{kind: TargetEnemyNexus, player: opp}
	case TargetNone:
		return t, "no target given"
	default:
		return t, fmt.Sprintf("unknown target type %q", tt)
	}
	if targetID != "" {
		if t.beast != nil && t.beast.ID != targetID {
			return t, fmt.Sprintf("target %q is not in play", targetID)
		}
		if t.beast == nil && r.m.Players[t.player].ID != targetID {
			return t, fmt.Sprintf("target %q does not match nexus owner", targetID)
		}
	}
	return t, ""
}

// prepareEffect validates an effect against a lifecycle and resolves its target
// without mutating anything. requested may be empty, in which case the
// descriptor's own hint is used.
func (r *resolution) prepareEffect(eff Effect, lc Lifecycle, requested TargetType, targetID string) (target, string) {
	entry, ok := effectTable[eff.Type]
	if !ok {
		return target{}, fmt.Sprintf("unrecognized effect type %q", eff.Type)
	}
	if !eff.Type.AllowedIn(lc) {
		return target{}, fmt.Sprintf("effect %q cannot be resolved via %s", eff.Type, lc)
	}
	if entry.target == targetless {
		return target{player: r.actor}, ""
	}
	tt := requested
	if tt == TargetNone {
		tt = eff.Target
	}
	t, reason := r.resolveTarget(tt, targetID)
	if reason != "" {
		return t, reason
	}
	if entry.target == needsBeast && !t.isBeast() {
		return t, fmt.Sprintf("effect %q needs a beast target", eff.Type)
	}
	return t, ""
}

// applyEffect runs a prepared effect.
func (r *resolution) applyEffect(source *CardInstance, eff Effect, t target) {
	entry := effectTable[eff.Type]
	entry.apply(r, source, eff, t)
	r.log(log.NewEffectAppliedEvent(r.m.Turn, r.m.Phase.String(), r.actor, source.Name(),
		fmt.Sprintf("%s %d", eff.Type, eff.Amount), t.describe(r.m)))
}

// --- Effect implementations ---

func applyDamage(r *resolution, source *CardInstance, eff Effect, t target) {
	reason := source.Name()
	if t.isBeast() {
		r.damageBeast(t.player, t.beast, eff.Amount, reason)
		return
	}
	r.damageNexus(t.player, eff.Amount, reason)
}

func applyHeal(r *resolution, source *CardInstance, eff Effect, t target) {
	if t.isBeast() {
		r.healBeast(t.player, t.beast, eff.Amount, source.Name())
		return
	}
	r.healNexus(t.player, eff.Amount, source.Name())
}

func applyHealNexus(r *resolution, source *CardInstance, eff Effect, t target) {
	r.healNexus(r.actor, eff.Amount, source.Name())
}

func applyAttackBoost(r *resolution, source *CardInstance, eff Effect, t target) {
	for i := range t.beast.Attacks {
		t.beast.Attacks[i].Damage += eff.Amount
	}
}

// applyHPBoost raises both max hp and hp. damage_reduction resolves through
// this as well.
func applyHPBoost(r *resolution, source *CardInstance, eff Effect, t target) {
	t.beast.MaxHP += eff.Amount
	t.beast.setHP(t.beast.HP + eff.Amount)
}

func applyCurse(r *resolution, source *CardInstance, eff Effect, t target) {
	for i := range t.beast.Attacks {
		dmg := t.beast.Attacks[i].Damage - eff.Amount
		if dmg < 1 {
			dmg = 1
		}
		t.beast.Attacks[i].Damage = dmg
	}
}

func applyDraw(r *resolution, source *CardInstance, eff Effect, t target) {
	n := eff.Amount
	if n <= 0 {
		n = 1
	}
	for i := 0; i < n; i++ {
		r.draw(r.actor)
	}
}
