package net

import (
	"fmt"

	"github.com/peterkuimelis/mythduel/internal/game"
)

// Message types for the JSON protocol over websocket.

const (
	MsgState  = "state"
	MsgError  = "error"
	MsgAction = "action"
)

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"`

	// For "state"
	State  *MatchView   `json:"state,omitempty"`
	Result *game.Result `json:"result,omitempty"` // outcome of the action that produced State, if any
	Action string       `json:"action,omitempty"`

	// For "error"
	Error string `json:"error,omitempty"`
}

// MatchView is the match from one player's perspective.
type MatchView struct {
	MatchID    string     `json:"matchId"`
	Turn       int        `json:"turn"`
	Phase      string     `json:"phase"`
	IsYourTurn bool       `json:"isYourTurn"`
	You        PlayerView `json:"you"`
	Opponent   PlayerView `json:"opponent"`
	Winner     string     `json:"winner,omitempty"`
	Terminal   bool       `json:"terminal"`
}

// PlayerView shows one side of the board.
type PlayerView struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	NexusHP      int        `json:"nexusHp"`
	MaxNexusHP   int        `json:"maxNexusHp"`
	HandCount    int        `json:"handCount"`
	Hand         []CardView `json:"hand,omitempty"` // only for "you"
	DeckCount    int        `json:"deckCount"`
	DiscardCount int        `json:"discardCount"`
	ActiveBeast  *BeastView `json:"activeBeast,omitempty"`
	Artifacts    []CardView `json:"artifacts"`
	HasAttacked  bool       `json:"hasAttacked"`
}

// CardView describes a card in hand or in the artifact collection.
type CardView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Description string `json:"description,omitempty"`
	Equipped    bool   `json:"equipped,omitempty"`
}

// BeastView describes a beast in play.
type BeastView struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	HP      int          `json:"hp"`
	MaxHP   int          `json:"maxHp"`
	Attacks []AttackView `json:"attacks"`
}

// AttackView is a numbered attack choice.
type AttackView struct {
	Index  int    `json:"index"`
	Name   string `json:"name"`
	Damage int    `json:"damage"`
}

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "action"
	Action      string `json:"action,omitempty"` // action type, e.g. "play_card"
	CardID      string `json:"cardId,omitempty"`
	AttackIndex int    `json:"attackIndex,omitempty"`
	TargetType  string `json:"targetType,omitempty"`
	TargetID    string `json:"targetId,omitempty"`
}

// ToAction converts an action message into an engine action for a player.
func (m ClientMessage) ToAction(playerID string) (game.Action, error) {
	if m.Type != MsgAction {
		return game.Action{}, fmt.Errorf("unexpected message type %q", m.Type)
	}
	t, err := game.ParseActionType(m.Action)
	if err != nil {
		return game.Action{}, err
	}
	return game.Action{
		Type:        t,
		PlayerID:    playerID,
		CardID:      m.CardID,
		AttackIndex: m.AttackIndex,
		TargetType:  game.TargetType(m.TargetType),
		TargetID:    m.TargetID,
	}, nil
}

// ActionMessage builds the client message for an engine action.
func ActionMessage(a game.Action) ClientMessage {
	return ClientMessage{
		Type:        MsgAction,
		Action:      a.Type.String(),
		CardID:      a.CardID,
		AttackIndex: a.AttackIndex,
		TargetType:  string(a.TargetType),
		TargetID:    a.TargetID,
	}
}
