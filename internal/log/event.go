package log

// EventType enumerates all observable match events.
type EventType int

const (
	EventPhaseChange EventType = iota
	EventNewTurn
	EventDraw
	EventPlayCard
	EventBeastEnterPlay
	EventBeastReplaced
	EventAttackDeclare
	EventDamage
	EventHeal
	EventNexusChange
	EventBeastDestroyed
	EventActivate
	EventEffectApplied
	EventEffectSkipped
	EventEquip
	EventPassive
	EventRejected
	EventWin
)

func (e EventType) String() string {
	switch e {
	case EventPhaseChange:
		return "PhaseChange"
	case EventNewTurn:
		return "NewTurn"
	case EventDraw:
		return "Draw"
	case EventPlayCard:
		return "PlayCard"
	case EventBeastEnterPlay:
		return "BeastEnterPlay"
	case EventBeastReplaced:
		return "BeastReplaced"
	case EventAttackDeclare:
		return "AttackDeclare"
	case EventDamage:
		return "Damage"
	case EventHeal:
		return "Heal"
	case EventNexusChange:
		return "NexusChange"
	case EventBeastDestroyed:
		return "BeastDestroyed"
	case EventActivate:
		return "Activate"
	case EventEffectApplied:
		return "EffectApplied"
	case EventEffectSkipped:
		return "EffectSkipped"
	case EventEquip:
		return "Equip"
	case EventPassive:
		return "Passive"
	case EventRejected:
		return "Rejected"
	case EventWin:
		return "Win"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a match.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	MatchID string    // match the event belongs to
	Turn    int       // which turn (1-based)
	Phase   string    // current phase name (e.g. "main")
	Player  int       // acting player (0 or 1)
	Type    EventType // event type
	Card    string    // card name (if applicable)
	Details string    // human-readable detail string
}
