package net

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/peterkuimelis/mythduel/internal/game"
)

// ErrQuit is returned by ParseCommand for "quit".
var ErrQuit = errors.New("quit")

// ErrShowState is returned by ParseCommand when the user asks for the board.
var ErrShowState = errors.New("show state")

const commandHelp = `Commands:
  draw                       draw a card (draw phase)
  play <card>                play a card from hand (main phase)
  attack                     enter the attack phase
  hit nexus [n]              attack the enemy nexus with attack n (default 1)
  hit beast [n]              attack the enemy beast with attack n (default 1)
  equip <artifact>           equip an artifact from your collection
  use <card> [target]        use a technique or artifact from hand
                             targets: ally_beast enemy_beast ally_nexus enemy_nexus
  end                        end your turn
  state                      show the board
  help                       show this help
  quit                       leave
<card> is a hand position (1, 2, ...) or a card id.`

// HelpText returns the REPL command reference.
func HelpText() string {
	return commandHelp
}

// ParseCommand turns a REPL line into an action message, resolving card
// positions against the viewer's hand and artifact collection.
func ParseCommand(line string, v *MatchView) (ClientMessage, error) {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(line)))
	if len(fields) == 0 {
		return ClientMessage{}, fmt.Errorf("empty command")
	}
	msg := ClientMessage{Type: MsgAction}
	args := fields[1:]

	switch fields[0] {
	case "quit", "exit", "q":
		return ClientMessage{}, ErrQuit
	case "state", "board", "s":
		return ClientMessage{}, ErrShowState
	case "help", "?":
		return ClientMessage{}, errors.New(commandHelp)
	case "draw", "d":
		msg.Action = game.ActionDrawCard.String()
	case "play", "p":
		card, err := handCard(args, v)
		if err != nil {
			return ClientMessage{}, err
		}
		msg.Action = game.ActionPlayCard.String()
		msg.CardID = card.ID
	case "attack", "a":
		msg.Action = game.ActionBeginAttack.String()
	case "hit", "h":
		if len(args) == 0 {
			return ClientMessage{}, fmt.Errorf("hit what? nexus or beast")
		}
		switch args[0] {
		case "nexus", "n":
			msg.Action = game.ActionAttackNexus.String()
		case "beast", "b":
			msg.Action = game.ActionAttackBeast.String()
		default:
			return ClientMessage{}, fmt.Errorf("unknown attack target %q", args[0])
		}
		msg.AttackIndex = 0
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 {
				return ClientMessage{}, fmt.Errorf("attack number must be 1 or more")
			}
			msg.AttackIndex = n - 1
		}
	case "equip", "e":
		if len(args) == 0 {
			return ClientMessage{}, fmt.Errorf("equip which artifact?")
		}
		id := args[0]
		if n, err := strconv.Atoi(id); err == nil {
			arts := v.You.Artifacts
			if n < 1 || n > len(arts) {
				return ClientMessage{}, fmt.Errorf("artifact number must be between 1 and %d", len(arts))
			}
			id = arts[n-1].ID
		} else {
			for _, c := range v.You.Artifacts {
				if strings.EqualFold(c.ID, id) {
					id = c.ID
					break
				}
			}
		}
		msg.Action = game.ActionEquipArtifact.String()
		msg.CardID = id
	case "use", "u":
		card, err := handCard(args, v)
		if err != nil {
			return ClientMessage{}, err
		}
		switch card.Kind {
		case game.KindArtifact.String():
			msg.Action = game.ActionUseArtifact.String()
		case game.KindTechnique.String():
			msg.Action = game.ActionUseTechnique.String()
		default:
			return ClientMessage{}, fmt.Errorf("%s is a %s; play it instead", card.Name, card.Kind)
		}
		msg.CardID = card.ID
		if len(args) > 1 {
			msg.TargetType = args[1]
		}
	case "end", "pass":
		msg.Action = game.ActionEndTurn.String()
	default:
		return ClientMessage{}, fmt.Errorf("unknown command %q (try help)", fields[0])
	}
	return msg, nil
}

// handCard resolves the first argument to a card in the viewer's hand.
func handCard(args []string, v *MatchView) (CardView, error) {
	if len(args) == 0 {
		return CardView{}, fmt.Errorf("which card?")
	}
	hand := v.You.Hand
	if n, err := strconv.Atoi(args[0]); err == nil {
		if n < 1 || n > len(hand) {
			return CardView{}, fmt.Errorf("card number must be between 1 and %d", len(hand))
		}
		return hand[n-1], nil
	}
	for _, c := range hand {
		if strings.EqualFold(c.ID, args[0]) {
			return c, nil
		}
	}
	return CardView{}, fmt.Errorf("no card %q in hand", args[0])
}
