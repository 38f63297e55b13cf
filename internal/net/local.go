package net

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/peterkuimelis/mythduel/internal/game"
)

// PlayLocal runs a hot-seat match on one terminal. Commands are issued for
// whichever player is acting; the board is redrawn from that player's side
// whenever the turn passes.
func PlayLocal(ctx context.Context, engine *game.Engine, m *game.Match, in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)
	lastTurn := -1

	for !m.IsOver() {
		if err := ctx.Err(); err != nil {
			return err
		}
		view := BuildMatchView(m, m.CurrentPlayer)
		if m.Turn != lastTurn {
			RenderView(out, view)
			lastTurn = m.Turn
		}
		fmt.Fprintf(out, "%s> ", m.Acting().Name)
		if !sc.Scan() {
			return sc.Err()
		}

		msg, err := ParseCommand(sc.Text(), view)
		switch {
		case errors.Is(err, ErrQuit):
			return nil
		case errors.Is(err, ErrShowState):
			RenderView(out, view)
			continue
		case err != nil:
			fmt.Fprintln(out, err)
			continue
		}

		a, err := msg.ToAction(m.Acting().ID)
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		if res := engine.Apply(m, a); !res.Applied {
			fmt.Fprintf(out, "rejected: %s\n", res.Reason)
		}
	}

	RenderGameOver(out, BuildMatchView(m, 0))
	return nil
}
