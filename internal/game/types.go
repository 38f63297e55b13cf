package game

import (
	"fmt"
	"strings"
)

// --- Enums ---

type Phase int

const (
	PhaseDraw Phase = iota
	PhaseMain
	PhaseAttack
	PhaseEnd
)

func (p Phase) String() string {
	switch p {
	case PhaseDraw:
		return "draw"
	case PhaseMain:
		return "main"
	case PhaseAttack:
		return "attack"
	case PhaseEnd:
		return "end"
	default:
		return "unknown"
	}
}

// ParsePhase parses a phase name as produced by String.
func ParsePhase(s string) (Phase, error) {
	switch strings.ToLower(s) {
	case "draw":
		return PhaseDraw, nil
	case "main":
		return PhaseMain, nil
	case "attack":
		return PhaseAttack, nil
	case "end":
		return PhaseEnd, nil
	}
	return PhaseDraw, fmt.Errorf("unknown phase %q", s)
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(b []byte) error {
	v, err := ParsePhase(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

type CardKind int

const (
	KindBeast CardKind = iota
	KindTechnique
	KindArtifact
)

func (k CardKind) String() string {
	switch k {
	case KindBeast:
		return "beast"
	case KindTechnique:
		return "technique"
	case KindArtifact:
		return "artifact"
	default:
		return "unknown"
	}
}

func (k CardKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *CardKind) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "beast":
		*k = KindBeast
	case "technique":
		*k = KindTechnique
	case "artifact":
		*k = KindArtifact
	default:
		return fmt.Errorf("unknown card kind %q", string(b))
	}
	return nil
}

// --- Card definition (static, from the catalog) ---

// Attack is a named damage source on a beast.
type Attack struct {
	Name        string `json:"name" yaml:"name"`
	Damage      int    `json:"damage" yaml:"damage"`
	Description string `json:"description,omitempty" yaml:"description"`
}

// Card is a read-only card definition shared by every match that uses it.
type Card struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Mythology   string   `json:"mythology" yaml:"mythology"`
	Kind        CardKind `json:"kind" yaml:"kind"`
	Description string   `json:"description,omitempty" yaml:"description"`
	Image       string   `json:"image,omitempty" yaml:"image"`

	// Beasts
	HP      int      `json:"hp,omitempty" yaml:"hp"`
	MaxHP   int      `json:"maxHp,omitempty" yaml:"max_hp"`
	Attacks []Attack `json:"attacks,omitempty" yaml:"attacks"`
	Passive string   `json:"passive,omitempty" yaml:"passive"` // serialized effect descriptor

	// Techniques and artifacts
	Effect string `json:"effect,omitempty" yaml:"effect"` // serialized effect descriptor
}

func (c *Card) String() string {
	return c.Name
}

// --- CardInstance (runtime card owned by one match) ---

// CardInstance is a card as it exists inside a single match. Beasts carry their
// own hp and attack list so effects never touch the shared definition.
type CardInstance struct {
	ID       string   `json:"id"`
	Card     *Card    `json:"card"`
	HP       int      `json:"hp,omitempty"`
	MaxHP    int      `json:"maxHp,omitempty"`
	Attacks  []Attack `json:"attacks,omitempty"`
	Equipped bool     `json:"equipped,omitempty"`
}

// NewCardInstance creates a runtime instance of a card definition.
func NewCardInstance(card *Card) *CardInstance {
	ci := &CardInstance{ID: card.ID, Card: card}
	if card.Kind == KindBeast {
		ci.MaxHP = card.MaxHP
		if ci.MaxHP == 0 {
			ci.MaxHP = card.HP
		}
		ci.HP = card.HP
		if ci.HP > ci.MaxHP {
			ci.HP = ci.MaxHP
		}
		ci.Attacks = make([]Attack, len(card.Attacks))
		copy(ci.Attacks, card.Attacks)
	}
	return ci
}

func (ci *CardInstance) String() string {
	if ci == nil {
		return "(none)"
	}
	if ci.Card.Kind == KindBeast {
		return fmt.Sprintf("%s (HP %d/%d)", ci.Card.Name, ci.HP, ci.MaxHP)
	}
	return ci.Card.Name
}

// Name returns the card's display name.
func (ci *CardInstance) Name() string {
	return ci.Card.Name
}

// Kind returns the card's category.
func (ci *CardInstance) Kind() CardKind {
	return ci.Card.Kind
}

// setHP assigns hp clamped to [0, MaxHP].
func (ci *CardInstance) setHP(hp int) {
	if hp < 0 {
		hp = 0
	}
	if hp > ci.MaxHP {
		hp = ci.MaxHP
	}
	ci.HP = hp
}

// --- Action types ---

type ActionType int

// The zero value is reserved so that an action with no type is rejected
// instead of resolving as a draw.
const (
	ActionUnknown ActionType = iota
	ActionDrawCard
	ActionPlayCard
	ActionBeginAttack
	ActionAttackNexus
	ActionAttackBeast
	ActionEndTurn
	ActionEquipArtifact
	ActionUseArtifact
	ActionUseTechnique
)

var actionNames = map[ActionType]string{
	ActionDrawCard:      "draw_card",
	ActionPlayCard:      "play_card",
	ActionBeginAttack:   "begin_attack",
	ActionAttackNexus:   "attack_nexus",
	ActionAttackBeast:   "attack_beast",
	ActionEndTurn:       "end_turn",
	ActionEquipArtifact: "equip_artifact",
	ActionUseArtifact:   "use_artifact",
	ActionUseTechnique:  "use_technique",
}

func (a ActionType) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// ParseActionType accepts both the snake_case wire names and the
// upper camel case names (e.g. "AttackNexus").
func ParseActionType(s string) (ActionType, error) {
	norm := strings.ToLower(strings.ReplaceAll(s, "_", ""))
	for t, name := range actionNames {
		if strings.ReplaceAll(name, "_", "") == norm {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown action type %q", s)
}

func (a ActionType) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *ActionType) UnmarshalText(b []byte) error {
	v, err := ParseActionType(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// TargetType names what an effect is aimed at, relative to the acting player.
type TargetType string

const (
	TargetNone       TargetType = ""
	TargetAllyBeast  TargetType = "ally_beast"
	TargetEnemyBeast TargetType = "enemy_beast"
	TargetAllyNexus  TargetType = "ally_nexus"
	TargetEnemyNexus TargetType = "enemy_nexus"
)

// normalize maps accepted aliases onto the canonical target names.
func (t TargetType) normalize() TargetType {
	switch strings.ToLower(string(t)) {
	case "self", "ally", "player":
		return TargetAllyNexus
	case "opponent", "enemy":
		return TargetEnemyNexus
	}
	return TargetType(strings.ToLower(string(t)))
}

// Action is a single player-submitted move.
type Action struct {
	Type        ActionType `json:"type"`
	PlayerID    string     `json:"playerId,omitempty"`
	CardID      string     `json:"cardId,omitempty"`
	AttackIndex int        `json:"attackIndex,omitempty"`
	TargetType  TargetType `json:"targetType,omitempty"`
	TargetID    string     `json:"targetId,omitempty"`
}

func (a Action) String() string {
	if a.CardID != "" {
		return fmt.Sprintf("%s(%s)", a.Type, a.CardID)
	}
	return a.Type.String()
}
