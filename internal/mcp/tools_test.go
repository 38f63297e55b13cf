package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/peterkuimelis/mythduel/internal/game"
	"github.com/peterkuimelis/mythduel/internal/log"
	"github.com/peterkuimelis/mythduel/internal/service"
	"github.com/peterkuimelis/mythduel/internal/store"
)

func newTestTools(t *testing.T) *Tools {
	t.Helper()
	catalog, err := game.DefaultCatalog()
	require.NoError(t, err)
	feed := NewEventFeed(log.NewMemoryLogger())
	n := 0
	engine := game.NewEngine(game.Config{
		Catalog: catalog,
		Logger:  feed,
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
	})
	svc := service.New(engine, store.NewMemoryStore(), zap.NewNop())
	return NewTools(svc, catalog, feed)
}

func call(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) (string, bool) {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	res, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text, res.IsError
}

func createMatch(t *testing.T, tools *Tools) ToolResponse {
	t.Helper()
	text, isErr := call(t, tools.handleCreateMatch, map[string]any{
		"player1": "Agent", "player2": "Human", "mythology1": "greek", "mythology2": "egyptian",
	})
	require.False(t, isErr, text)
	var resp ToolResponse
	require.NoError(t, json.Unmarshal([]byte(text), &resp))
	return resp
}

func TestListMythologies(t *testing.T) {
	tools := newTestTools(t)
	text, isErr := call(t, tools.handleListMythologies, nil)
	require.False(t, isErr)

	var decks []struct {
		Mythology string   `json:"mythology"`
		Cards     []string `json:"cards"`
	}
	require.NoError(t, json.Unmarshal([]byte(text), &decks))
	require.Len(t, decks, 3)
	assert.Equal(t, "greek", decks[0].Mythology)
	assert.Len(t, decks[0].Cards, game.DeckSize)
}

func TestCreateMatch(t *testing.T) {
	tools := newTestTools(t)
	resp := createMatch(t, tools)

	assert.Equal(t, "id-1", resp.MatchID)
	require.Len(t, resp.Seats, 2)
	assert.Equal(t, SeatInfo{Index: 0, ID: "id-2", Name: "Agent"}, resp.Seats[0])
	assert.Equal(t, "Human", resp.Seats[1].Name)
	assert.False(t, resp.Over)
	require.NotNil(t, resp.State)
	assert.Nil(t, resp.State.You.Hand)
	assert.NotEmpty(t, resp.Events)
}

func TestCreateMatch_Invalid(t *testing.T) {
	tools := newTestTools(t)

	text, isErr := call(t, tools.handleCreateMatch, map[string]any{"player1": "A"})
	assert.True(t, isErr, text)

	text, isErr = call(t, tools.handleCreateMatch, map[string]any{
		"player1": "A", "player2": "B", "mythology1": "greek", "mythology2": "aztec",
	})
	assert.True(t, isErr)
	assert.Contains(t, text, "aztec")
}

func TestTakeAction(t *testing.T) {
	tools := newTestTools(t)
	created := createMatch(t, tools)
	p1 := created.Seats[0].ID

	text, isErr := call(t, tools.handleTakeAction, map[string]any{
		"match_id": created.MatchID, "player_id": p1, "action": "draw_card",
	})
	require.False(t, isErr, text)
	var resp ToolResponse
	require.NoError(t, json.Unmarshal([]byte(text), &resp))
	require.NotNil(t, resp.Result)
	assert.True(t, resp.Result.Applied)
	assert.Equal(t, "main", resp.State.Phase)
	assert.Len(t, resp.State.You.Hand, game.InitialHandSize+1)

	var sawDraw bool
	for _, e := range resp.Events {
		if e.Type == "Draw" {
			sawDraw = true
		}
	}
	assert.True(t, sawDraw, "draw event reported")

	// A rule violation is a normal result.
	text, isErr = call(t, tools.handleTakeAction, map[string]any{
		"match_id": created.MatchID, "player_id": p1, "action": "attack_nexus",
	})
	require.False(t, isErr)
	resp = ToolResponse{}
	require.NoError(t, json.Unmarshal([]byte(text), &resp))
	assert.False(t, resp.Result.Applied)
	assert.Equal(t, "no attacks on the first turn", resp.Result.Reason)
}

func TestTakeAction_Errors(t *testing.T) {
	tools := newTestTools(t)
	created := createMatch(t, tools)

	_, isErr := call(t, tools.handleTakeAction, map[string]any{
		"match_id": created.MatchID, "player_id": created.Seats[0].ID, "action": "cast_spell",
	})
	assert.True(t, isErr)

	text, isErr := call(t, tools.handleTakeAction, map[string]any{
		"match_id": "nope", "player_id": "x", "action": "draw_card",
	})
	assert.True(t, isErr)
	assert.Contains(t, text, "No such match")
}

func TestGetMatch(t *testing.T) {
	tools := newTestTools(t)
	created := createMatch(t, tools)

	text, isErr := call(t, tools.handleGetMatch, map[string]any{
		"match_id": created.MatchID, "player_id": created.Seats[1].ID,
	})
	require.False(t, isErr, text)
	var resp ToolResponse
	require.NoError(t, json.Unmarshal([]byte(text), &resp))
	assert.Equal(t, "Human", resp.State.You.Name)
	assert.Len(t, resp.State.You.Hand, game.InitialHandSize)
	assert.False(t, resp.State.IsYourTurn)
	// Creation events were drained by create_match.
	assert.Empty(t, resp.Events)

	_, isErr = call(t, tools.handleGetMatch, map[string]any{"match_id": created.MatchID, "player_id": "mallory"})
	assert.True(t, isErr)
	_, isErr = call(t, tools.handleGetMatch, map[string]any{})
	assert.True(t, isErr)
}

func TestDeleteMatch(t *testing.T) {
	tools := newTestTools(t)
	created := createMatch(t, tools)

	_, isErr := call(t, tools.handleDeleteMatch, map[string]any{"match_id": created.MatchID})
	assert.False(t, isErr)
	_, isErr = call(t, tools.handleGetMatch, map[string]any{"match_id": created.MatchID})
	assert.True(t, isErr)
}

func TestEventFeed(t *testing.T) {
	next := log.NewMemoryLogger()
	feed := NewEventFeed(next)

	feed.Log(log.GameEvent{MatchID: "a", Type: log.EventDraw, Details: "one"})
	feed.Log(log.GameEvent{MatchID: "b", Type: log.EventDraw, Details: "two"})
	feed.Log(log.GameEvent{MatchID: "a", Type: log.EventWin, Details: "three"})

	assert.Len(t, next.Events(), 3)
	assert.Len(t, feed.Events(), 3)

	got := feed.Drain("a")
	require.Len(t, got, 2)
	assert.Equal(t, "Draw", got[0].Type)
	assert.Equal(t, "three", got[1].Details)
	assert.Empty(t, feed.Drain("a"))

	for i := 0; i < maxBufferedEvents+10; i++ {
		feed.Log(log.GameEvent{MatchID: "c", Details: fmt.Sprint(i)})
	}
	got = feed.Drain("c")
	assert.Len(t, got, maxBufferedEvents)
	assert.Equal(t, "10", got[0].Details)
}
