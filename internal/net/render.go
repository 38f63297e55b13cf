package net

import (
	"fmt"
	"io"
	"strings"
)

// RenderView draws the board as seen by the view's owner.
func RenderView(w io.Writer, v *MatchView) {
	if v == nil {
		return
	}
	opp, you := v.Opponent, v.You

	fmt.Fprintln(w)
	fmt.Fprintln(w, "╔══════════════════════════════════════════════════════╗")
	fmt.Fprintf(w, "║  %s (Nexus %d/%d)  Hand: %d  Deck: %d  Discard: %d\n",
		opp.Name, opp.NexusHP, opp.MaxNexusHP, opp.HandCount, opp.DeckCount, opp.DiscardCount)
	fmt.Fprintf(w, "║  Beast:     %s\n", formatBeast(opp.ActiveBeast))
	fmt.Fprintf(w, "║  Artifacts: %s\n", formatArtifacts(opp.Artifacts))
	fmt.Fprintln(w, "║──────────────────────────────────────────────────────")
	fmt.Fprintf(w, "║  Artifacts: %s\n", formatArtifacts(you.Artifacts))
	fmt.Fprintf(w, "║  Beast:     %s\n", formatBeast(you.ActiveBeast))
	fmt.Fprintf(w, "║  %s (Nexus %d/%d)  Hand: %d  Deck: %d  Discard: %d\n",
		you.Name, you.NexusHP, you.MaxNexusHP, you.HandCount, you.DeckCount, you.DiscardCount)
	fmt.Fprintln(w, "╚══════════════════════════════════════════════════════╝")

	turnInfo := fmt.Sprintf("Turn %d | %s", v.Turn, v.Phase)
	switch {
	case v.Terminal:
		turnInfo += " | Match over"
	case v.IsYourTurn:
		turnInfo += " | Your turn"
	default:
		turnInfo += " | Opponent's turn"
	}
	fmt.Fprintln(w, turnInfo)

	if len(you.Hand) > 0 {
		fmt.Fprintf(w, "\nHand: ")
		for i, c := range you.Hand {
			fmt.Fprintf(w, "[%d] %s (%s)  ", i+1, c.Name, c.Kind)
		}
		fmt.Fprintln(w)
	}
	if v.Terminal {
		RenderGameOver(w, v)
	}
}

// RenderGameOver prints the final banner.
func RenderGameOver(w io.Writer, v *MatchView) {
	result := "Winner: " + v.Winner
	switch v.Winner {
	case v.You.ID:
		result = fmt.Sprintf("%s wins!", v.You.Name)
	case v.Opponent.ID:
		result = fmt.Sprintf("%s wins!", v.Opponent.Name)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "═══════════════════════════════════")
	fmt.Fprintln(w, "          GAME OVER")
	fmt.Fprintln(w, "═══════════════════════════════════")
	fmt.Fprintln(w, result)
	fmt.Fprintln(w, "═══════════════════════════════════")
}

func formatBeast(b *BeastView) string {
	if b == nil {
		return "[ ]"
	}
	attacks := make([]string, len(b.Attacks))
	for i, a := range b.Attacks {
		attacks[i] = fmt.Sprintf("%d) %s %d", a.Index+1, a.Name, a.Damage)
	}
	return fmt.Sprintf("[%s HP %d/%d] %s", b.Name, b.HP, b.MaxHP, strings.Join(attacks, ", "))
}

func formatArtifacts(cards []CardView) string {
	if len(cards) == 0 {
		return "-"
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		if c.Equipped {
			parts[i] = fmt.Sprintf("[%d] %s*", i+1, c.Name)
		} else {
			parts[i] = fmt.Sprintf("[%d] %s", i+1, c.Name)
		}
	}
	return strings.Join(parts, " ")
}
