package game

import "github.com/peterkuimelis/mythduel/internal/log"

// checkWinConditions evaluates the terminal conditions in order. The first
// condition that holds decides the winner; later ones never overwrite it.
func (r *resolution) checkWinConditions() {
	m := r.m
	for i := 0; i < 2; i++ {
		if m.Winner != "" {
			return
		}
		if m.Players[i].NexusHP <= 0 {
			r.declareWinner(m.Opponent(i), "nexus destroyed")
		}
	}
	for i := 0; i < 2; i++ {
		if m.Winner != "" {
			return
		}
		if !m.Players[i].HasBeastAvailable() {
			r.declareWinner(m.Opponent(i), "opponent has no beasts left")
		}
	}
}

func (r *resolution) declareWinner(player int, reason string) {
	r.m.Winner = r.m.Players[player].ID
	r.log(log.NewWinEvent(r.m.Turn, r.m.Phase.String(), player, reason))
}
