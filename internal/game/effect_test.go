package game

import (
	"errors"
	"testing"

	"github.com/peterkuimelis/mythduel/internal/log"
)

func TestParseEffect(t *testing.T) {
	eff, err := ParseEffect(`{"type":"Attack_Boost","amount":2,"target":"self","duration":3}`)
	if err != nil {
		t.Fatalf("ParseEffect: %v", err)
	}
	if eff.Type != EffectAttackBoost || eff.Amount != 2 || eff.Target != TargetAllyNexus || eff.Duration != 3 {
		t.Errorf("parsed %+v", eff)
	}

	for _, raw := range []string{"", "   ", "not json", `{"amount":2}`, `{"type":"heal","amount":-1}`, `{"type":"heal","amount":"two"}`} {
		if _, err := ParseEffect(raw); !errors.Is(err, ErrMalformedEffect) {
			t.Errorf("ParseEffect(%q) err = %v, want ErrMalformedEffect", raw, err)
		}
	}
}

func TestEffectLifecycleTable(t *testing.T) {
	tests := []struct {
		typ  EffectType
		play bool
		use  bool
		eq   bool
		pas  bool
	}{
		{EffectDamage, false, true, false, true},
		{EffectHeal, true, true, false, true},
		{EffectHealNexus, true, true, false, true},
		{EffectAttackBoost, false, true, true, true},
		{EffectDamageReduction, false, true, true, true},
		{EffectHPBoost, false, false, true, true},
		{EffectCurse, false, true, false, false},
		{EffectDispel, false, true, false, false},
		{EffectDraw, true, true, false, false},
		{EffectType("teleport"), false, false, false, false},
	}
	for _, tt := range tests {
		got := []bool{
			tt.typ.AllowedIn(LifecyclePlay),
			tt.typ.AllowedIn(LifecycleUse),
			tt.typ.AllowedIn(LifecycleEquip),
			tt.typ.AllowedIn(LifecyclePassive),
		}
		want := []bool{tt.play, tt.use, tt.eq, tt.pas}
		for i := range got {
			if got[i] != want[i] {
				t.Errorf("%s allowed in %s = %v, want %v", tt.typ, Lifecycle(i), got[i], want[i])
			}
		}
	}
	if EffectType("teleport").Recognized() {
		t.Error("teleport recognized")
	}
}

// TestUseTechniqueDamageWins: 6 damage to a 6 hp nexus ends the match.
func TestUseTechniqueDamageWins(t *testing.T) {
	f := newFixture(t)
	f.player(1).NexusHP = 6
	f.give(0, techniqueCard("bolt", `{"type":"damage","amount":6}`))

	res := f.mustApply(Action{Type: ActionUseTechnique, CardID: "bolt", TargetType: TargetEnemyNexus})

	if f.player(1).NexusHP != 0 {
		t.Errorf("opponent nexus = %d, want 0", f.player(1).NexusHP)
	}
	if !res.Terminal || f.m.Winner != "alice" {
		t.Errorf("terminal = %v winner = %q, want alice", res.Terminal, f.m.Winner)
	}
	if f.player(0).FindInHand("bolt") != nil {
		t.Error("technique still in hand")
	}
	wins := f.logger.EventsOfType(log.EventWin)
	if len(wins) != 1 || wins[0].Player != 0 {
		t.Errorf("win events = %v", wins)
	}
}

func TestUseTechniqueDestroysBeastAtZero(t *testing.T) {
	f := newFixture(t)
	f.field(1, beastCard("boar", 4, 1))
	f.give(0, techniqueCard("bolt", `{"type":"damage","amount":4}`))

	f.mustApply(Action{Type: ActionUseTechnique, CardID: "bolt", TargetType: TargetEnemyBeast, TargetID: "boar"})

	if f.player(1).ActiveBeast != nil {
		t.Error("boar still in play")
	}
}

func TestUseEffects(t *testing.T) {
	tests := []struct {
		name   string
		kind   CardKind
		effect string
		target TargetType
		check  func(t *testing.T, f *fixture)
	}{
		{
			name:   "damage clamps nexus at zero",
			kind:   KindTechnique,
			effect: `{"type":"damage","amount":30}`,
			target: TargetEnemyNexus,
			check: func(t *testing.T, f *fixture) {
				if f.player(1).NexusHP != 0 {
					t.Errorf("nexus = %d, want 0", f.player(1).NexusHP)
				}
			},
		},
		{
			name:   "damage own beast",
			kind:   KindArtifact,
			effect: `{"type":"damage","amount":2}`,
			target: TargetAllyBeast,
			check: func(t *testing.T, f *fixture) {
				if f.player(0).ActiveBeast.HP != 2 {
					t.Errorf("ally hp = %d, want 2", f.player(0).ActiveBeast.HP)
				}
			},
		},
		{
			name:   "heal clamps at max",
			kind:   KindTechnique,
			effect: `{"type":"heal","amount":10}`,
			target: TargetAllyBeast,
			check: func(t *testing.T, f *fixture) {
				if b := f.player(0).ActiveBeast; b.HP != b.MaxHP {
					t.Errorf("ally hp = %d, want %d", b.HP, b.MaxHP)
				}
			},
		},
		{
			name:   "heal enemy nexus",
			kind:   KindArtifact,
			effect: `{"type":"heal","amount":3}`,
			target: TargetEnemyNexus,
			check: func(t *testing.T, f *fixture) {
				if f.player(1).NexusHP != 13 {
					t.Errorf("opponent nexus = %d, want 13", f.player(1).NexusHP)
				}
			},
		},
		{
			name:   "heal_nexus ignores requested target",
			kind:   KindArtifact,
			effect: `{"type":"heal_nexus","amount":4}`,
			target: TargetEnemyNexus,
			check: func(t *testing.T, f *fixture) {
				if f.player(0).NexusHP != 14 || f.player(1).NexusHP != 10 {
					t.Errorf("nexus = %d/%d, want 14/10", f.player(0).NexusHP, f.player(1).NexusHP)
				}
			},
		},
		{
			name:   "attack_boost",
			kind:   KindTechnique,
			effect: `{"type":"attack_boost","amount":2}`,
			target: TargetAllyBeast,
			check: func(t *testing.T, f *fixture) {
				atks := f.player(0).ActiveBeast.Attacks
				if atks[0].Damage != 3 || atks[1].Damage != 5 {
					t.Errorf("attacks = %v, want damage 3 and 5", atks)
				}
			},
		},
		{
			name:   "damage_reduction raises hp and max hp",
			kind:   KindArtifact,
			effect: `{"type":"damage_reduction","amount":2}`,
			target: TargetEnemyBeast,
			check: func(t *testing.T, f *fixture) {
				b := f.player(1).ActiveBeast
				if b.HP != 7 || b.MaxHP != 7 {
					t.Errorf("enemy hp = %d/%d, want 7/7", b.HP, b.MaxHP)
				}
			},
		},
		{
			name:   "curse floors at one",
			kind:   KindTechnique,
			effect: `{"type":"curse","amount":2}`,
			target: TargetEnemyBeast,
			check: func(t *testing.T, f *fixture) {
				atks := f.player(1).ActiveBeast.Attacks
				if atks[0].Damage != 1 || atks[1].Damage != 3 {
					t.Errorf("attacks = %v, want damage 1 and 3", atks)
				}
			},
		},
		{
			name:   "dispel does nothing",
			kind:   KindArtifact,
			effect: `{"type":"dispel"}`,
			target: TargetEnemyBeast,
			check: func(t *testing.T, f *fixture) {
				if f.player(1).ActiveBeast.HP != 5 || f.player(1).NexusHP != 10 {
					t.Error("dispel changed state")
				}
			},
		},
		{
			name:   "draw defaults to one",
			kind:   KindTechnique,
			effect: `{"type":"draw"}`,
			check: func(t *testing.T, f *fixture) {
				if f.player(0).HandCount() != 1 || f.player(0).DeckCount() != 0 {
					t.Errorf("hand/deck = %d/%d, want 1/0", f.player(0).HandCount(), f.player(0).DeckCount())
				}
			},
		},
		{
			name:   "target hint used when action names none",
			kind:   KindArtifact,
			effect: `{"type":"damage","amount":3,"target":"opponent"}`,
			check: func(t *testing.T, f *fixture) {
				if f.player(1).NexusHP != 7 {
					t.Errorf("opponent nexus = %d, want 7", f.player(1).NexusHP)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.player(0).NexusHP = 10
			f.player(1).NexusHP = 10
			ally := f.field(0, beastCard("wolf", 6, 1, 3))
			ally.HP = 4
			f.field(1, beastCard("boar", 5, 2, 5))
			card := &Card{ID: "card", Name: "card", Mythology: "test", Kind: tt.kind, Effect: tt.effect}
			f.give(0, card)

			actionType := ActionUseTechnique
			if tt.kind == KindArtifact {
				actionType = ActionUseArtifact
			}
			f.mustApply(Action{Type: actionType, CardID: "card", TargetType: tt.target})

			if f.player(0).FindInHand("card") != nil {
				t.Error("card still in hand")
			}
			tt.check(t, f)
			checkInvariants(t, f.m)
		})
	}
}

func TestUseRejections(t *testing.T) {
	tests := []struct {
		name   string
		card   *Card
		action Action
		noAlly bool
	}{
		{
			name:   "technique used as artifact",
			card:   techniqueCard("bolt", `{"type":"damage","amount":2}`),
			action: Action{Type: ActionUseArtifact, CardID: "bolt", TargetType: TargetEnemyNexus},
		},
		{
			name:   "artifact used as technique",
			card:   artifactCard("charm", `{"type":"damage","amount":2}`),
			action: Action{Type: ActionUseTechnique, CardID: "charm", TargetType: TargetEnemyNexus},
		},
		{
			name:   "enemy beast missing",
			card:   techniqueCard("bolt", `{"type":"damage","amount":2}`),
			action: Action{Type: ActionUseTechnique, CardID: "bolt", TargetType: TargetEnemyBeast},
		},
		{
			name:   "ally beast missing",
			card:   techniqueCard("salve", `{"type":"heal","amount":2}`),
			action: Action{Type: ActionUseTechnique, CardID: "salve", TargetType: TargetAllyBeast},
			noAlly: true,
		},
		{
			name:   "no target at all",
			card:   techniqueCard("bolt", `{"type":"damage","amount":2}`),
			action: Action{Type: ActionUseTechnique, CardID: "bolt"},
		},
		{
			name:   "unknown target type",
			card:   techniqueCard("bolt", `{"type":"damage","amount":2}`),
			action: Action{Type: ActionUseTechnique, CardID: "bolt", TargetType: "graveyard"},
		},
		{
			name:   "nexus id mismatch",
			card:   techniqueCard("bolt", `{"type":"damage","amount":2}`),
			action: Action{Type: ActionUseTechnique, CardID: "bolt", TargetType: TargetEnemyNexus, TargetID: "alice"},
		},
		{
			name:   "beast effect on nexus",
			card:   techniqueCard("hex", `{"type":"curse","amount":1}`),
			action: Action{Type: ActionUseTechnique, CardID: "hex", TargetType: TargetEnemyNexus},
		},
		{
			name:   "equip-only effect used from hand",
			card:   artifactCard("fleece", `{"type":"hp_boost","amount":2}`),
			action: Action{Type: ActionUseArtifact, CardID: "fleece", TargetType: TargetAllyBeast},
		},
		{
			name:   "unrecognized effect",
			card:   techniqueCard("warp", `{"type":"teleport","amount":1}`),
			action: Action{Type: ActionUseTechnique, CardID: "warp", TargetType: TargetEnemyNexus},
		},
		{
			name:   "malformed effect",
			card:   techniqueCard("smudged", `{"type":"damage"`),
			action: Action{Type: ActionUseTechnique, CardID: "smudged", TargetType: TargetEnemyNexus},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if !tt.noAlly {
				f.field(0, beastCard("wolf", 6, 1))
			}
			f.give(0, tt.card)
			f.mustReject(tt.action)
		})
	}
}

func TestEquipArtifact(t *testing.T) {
	f := newFixture(t)
	wolf := f.field(0, beastCard("wolf", 6, 2))
	sword := f.collect(0, artifactCard("sword", `{"type":"attack_boost","amount":2}`))
	f.collect(0, artifactCard("fleece", `{"type":"hp_boost","amount":3}`))

	f.mustApply(Action{Type: ActionEquipArtifact, CardID: "sword"})
	f.mustApply(Action{Type: ActionEquipArtifact, CardID: "fleece"})

	if wolf.Attacks[0].Damage != 4 {
		t.Errorf("attack damage = %d, want 4", wolf.Attacks[0].Damage)
	}
	if wolf.HP != 9 || wolf.MaxHP != 9 {
		t.Errorf("wolf hp = %d/%d, want 9/9", wolf.HP, wolf.MaxHP)
	}
	if !sword.Equipped || len(f.player(0).Artifacts) != 2 {
		t.Error("artifact should stay in the collection marked equipped")
	}
	if len(f.logger.EventsOfType(log.EventEquip)) != 2 {
		t.Error("expected two equip events")
	}

	f.mustReject(Action{Type: ActionEquipArtifact, CardID: "sword"})
	if wolf.Attacks[0].Damage != 4 {
		t.Errorf("attack damage = %d after re-equip, want 4", wolf.Attacks[0].Damage)
	}
}

func TestEquipArtifactRejections(t *testing.T) {
	t.Run("no active beast", func(t *testing.T) {
		f := newFixture(t)
		f.collect(0, artifactCard("sword", `{"type":"attack_boost","amount":2}`))
		f.mustReject(Action{Type: ActionEquipArtifact, CardID: "sword"})
	})
	t.Run("not in collection", func(t *testing.T) {
		f := newFixture(t)
		f.field(0, beastCard("wolf", 6, 2))
		f.give(0, artifactCard("sword", `{"type":"attack_boost","amount":2}`))
		f.mustReject(Action{Type: ActionEquipArtifact, CardID: "sword"})
	})
	t.Run("instant effect", func(t *testing.T) {
		f := newFixture(t)
		f.field(0, beastCard("wolf", 6, 2))
		f.collect(0, artifactCard("spear", `{"type":"damage","amount":5}`))
		f.mustReject(Action{Type: ActionEquipArtifact, CardID: "spear"})
	})
	t.Run("malformed effect", func(t *testing.T) {
		f := newFixture(t)
		f.field(0, beastCard("wolf", 6, 2))
		f.collect(0, artifactCard("broken", `[]`))
		f.mustReject(Action{Type: ActionEquipArtifact, CardID: "broken"})
	})
}
