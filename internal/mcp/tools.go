// Package mcp exposes match play as Model Context Protocol tools so an agent
// can create matches and act for one or both seats.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/mythduel/internal/game"
	mdnet "github.com/peterkuimelis/mythduel/internal/net"
	"github.com/peterkuimelis/mythduel/internal/service"
)

// Tools holds what the tool handlers need.
type Tools struct {
	svc     *service.Service
	catalog *game.StaticCatalog
	feed    *EventFeed
}

// NewTools creates the tool set. feed must be the logger of the service's
// engine for events to show up in responses; it may be nil.
func NewTools(svc *service.Service, catalog *game.StaticCatalog, feed *EventFeed) *Tools {
	if feed == nil {
		feed = NewEventFeed(nil)
	}
	return &Tools{svc: svc, catalog: catalog, feed: feed}
}

// Register adds all match tools to the MCP server.
func (t *Tools) Register(s *server.MCPServer) {
	s.AddTool(listMythologiesTool(), t.handleListMythologies)
	s.AddTool(createMatchTool(), t.handleCreateMatch)
	s.AddTool(getMatchTool(), t.handleGetMatch)
	s.AddTool(takeActionTool(), t.handleTakeAction)
	s.AddTool(deleteMatchTool(), t.handleDeleteMatch)
}

// SeatInfo identifies one player of a created match.
type SeatInfo struct {
	Index int    `json:"index"`
	ID    string `json:"id"`
	Name  string `json:"name"`
}

// ToolResponse is the JSON envelope returned by the match tools.
type ToolResponse struct {
	MatchID string           `json:"match_id"`
	Seats   []SeatInfo       `json:"seats,omitempty"`
	Result  *game.Result     `json:"result,omitempty"`
	State   *mdnet.MatchView `json:"state,omitempty"`
	Events  []EventView      `json:"events"`
	Over    bool             `json:"game_over"`
	Winner  string           `json:"winner,omitempty"`
}

// --- Tool definitions ---

func listMythologiesTool() mcp.Tool {
	return mcp.NewTool("list_mythologies",
		mcp.WithDescription("List the mythologies a deck can be built from, with the cards each deck contains."),
	)
}

func createMatchTool() mcp.Tool {
	return mcp.NewTool("create_match",
		mcp.WithDescription("Create a new match. Returns the match id and the player id of each seat. "+
			"Seat 0 acts first, starting in the draw phase of turn 1."),
		mcp.WithString("player1", mcp.Required(), mcp.Description("Display name of seat 0")),
		mcp.WithString("player2", mcp.Required(), mcp.Description("Display name of seat 1")),
		mcp.WithString("mythology1", mcp.Required(), mcp.Description("Mythology of seat 0's deck (see list_mythologies)")),
		mcp.WithString("mythology2", mcp.Required(), mcp.Description("Mythology of seat 1's deck")),
	)
}

func getMatchTool() mcp.Tool {
	return mcp.NewTool("get_match",
		mcp.WithDescription("Get the board as seen by a player, plus events since the last call. Read-only. "+
			"Without player_id the board is shown with both hands hidden."),
		mcp.WithString("match_id", mcp.Required(), mcp.Description("Match id from create_match")),
		mcp.WithString("player_id", mcp.Description("Player id whose perspective to show")),
	)
}

func takeActionTool() mcp.Tool {
	return mcp.NewTool("take_action",
		mcp.WithDescription("Submit an action for the player whose turn it is. A turn goes: draw_card, then any "+
			"play_card / equip_artifact / use_technique / use_artifact, then optionally begin_attack and "+
			"attack_nexus or attack_beast, then end_turn. Rejected actions leave the match unchanged and report why."),
		mcp.WithString("match_id", mcp.Required(), mcp.Description("Match id")),
		mcp.WithString("player_id", mcp.Required(), mcp.Description("Id of the acting player")),
		mcp.WithString("action", mcp.Required(), mcp.Description("draw_card, play_card, begin_attack, attack_nexus, "+
			"attack_beast, end_turn, equip_artifact, use_artifact or use_technique")),
		mcp.WithString("card_id", mcp.Description("Card id for play_card, equip_artifact, use_artifact, use_technique")),
		mcp.WithNumber("attack_index", mcp.Description("0-based attack of the active beast (default 0)")),
		mcp.WithString("target_type", mcp.Description("ally_beast, enemy_beast, ally_nexus or enemy_nexus")),
		mcp.WithString("target_id", mcp.Description("Optional id the resolved target must match")),
	)
}

func deleteMatchTool() mcp.Tool {
	return mcp.NewTool("delete_match",
		mcp.WithDescription("Delete a match."),
		mcp.WithString("match_id", mcp.Required(), mcp.Description("Match id")),
	)
}

// --- Tool handlers ---

func (t *Tools) handleListMythologies(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	type deckInfo struct {
		Mythology string   `json:"mythology"`
		Cards     []string `json:"cards"`
	}
	var decks []deckInfo
	for _, m := range t.catalog.Mythologies() {
		d := deckInfo{Mythology: m}
		for _, c := range game.BuildDeck(t.catalog, m) {
			d.Cards = append(d.Cards, fmt.Sprintf("%s (%s)", c.Name, c.Kind))
		}
		decks = append(decks, d)
	}
	return mcp.NewToolResultText(respondJSON(decks)), nil
}

func (t *Tools) handleCreateMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p1 := request.GetString("player1", "")
	p2 := request.GetString("player2", "")
	m1 := request.GetString("mythology1", "")
	m2 := request.GetString("mythology2", "")
	if p1 == "" || p2 == "" {
		return mcp.NewToolResultError("player1 and player2 are required"), nil
	}
	for _, m := range []string{m1, m2} {
		if len(t.catalog.Cards(m)) == 0 {
			return mcp.NewToolResultErrorf("Unknown mythology %q. Use list_mythologies.", m), nil
		}
	}

	m, err := t.svc.CreateMatch(ctx, p1, p2, m1, m2)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to create match: %v", err), nil
	}
	resp := t.response(m, -1, nil)
	for i, p := range m.Players {
		resp.Seats = append(resp.Seats, SeatInfo{Index: i, ID: p.ID, Name: p.Name})
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (t *Tools) handleGetMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	m, errResult := t.load(ctx, request.GetString("match_id", ""))
	if errResult != nil {
		return errResult, nil
	}
	seat := -1
	if pid := request.GetString("player_id", ""); pid != "" {
		if seat = m.PlayerIndex(pid); seat < 0 {
			return mcp.NewToolResultErrorf("Player %q is not in this match.", pid), nil
		}
	}
	return mcp.NewToolResultText(respondJSON(t.response(m, seat, nil))), nil
}

func (t *Tools) handleTakeAction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := request.GetString("match_id", "")
	msg := mdnet.ClientMessage{
		Type:        mdnet.MsgAction,
		Action:      request.GetString("action", ""),
		CardID:      request.GetString("card_id", ""),
		AttackIndex: request.GetInt("attack_index", 0),
		TargetType:  request.GetString("target_type", ""),
		TargetID:    request.GetString("target_id", ""),
	}
	playerID := request.GetString("player_id", "")
	a, err := msg.ToAction(playerID)
	if err != nil {
		return mcp.NewToolResultErrorf("Invalid action: %v", err), nil
	}

	res, m, err := t.svc.Submit(ctx, id, a)
	if err != nil {
		return t.serviceError(err), nil
	}
	return mcp.NewToolResultText(respondJSON(t.response(m, m.PlayerIndex(playerID), &res))), nil
}

func (t *Tools) handleDeleteMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := request.GetString("match_id", "")
	if err := t.svc.Delete(ctx, id); err != nil {
		return t.serviceError(err), nil
	}
	t.feed.Forget(id)
	return mcp.NewToolResultText(fmt.Sprintf("Match %s deleted.", id)), nil
}

func (t *Tools) load(ctx context.Context, id string) (*game.Match, *mcp.CallToolResult) {
	if id == "" {
		return nil, mcp.NewToolResultError("match_id is required")
	}
	m, err := t.svc.Get(ctx, id)
	if err != nil {
		return nil, t.serviceError(err)
	}
	return m, nil
}

func (t *Tools) response(m *game.Match, seat int, res *game.Result) *ToolResponse {
	return &ToolResponse{
		MatchID: m.ID,
		Result:  res,
		State:   mdnet.BuildMatchView(m, seat),
		Events:  t.feed.Drain(m.ID),
		Over:    m.IsOver(),
		Winner:  m.Winner,
	}
}

func (t *Tools) serviceError(err error) *mcp.CallToolResult {
	if errors.Is(err, service.ErrMatchNotFound) {
		return mcp.NewToolResultError("No such match. Use create_match first.")
	}
	return mcp.NewToolResultErrorf("Error: %v", err)
}

func respondJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(data)
}
