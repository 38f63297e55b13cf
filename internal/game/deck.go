package game

const (
	DeckBeasts     = 4
	DeckTechniques = 3
	DeckArtifacts  = 3
	DeckSize       = DeckBeasts + DeckTechniques + DeckArtifacts
)

// BuildDeck selects a balanced deck for a mythology: the first 4 beasts, the
// first 3 techniques and the first 3 artifacts in catalog order, concatenated
// in that order. Categories with fewer cards contribute what they have.
// Draws pop from the end of the returned slice.
func BuildDeck(catalog Catalog, mythology string) []*Card {
	var beasts, techniques, artifacts []*Card
	for _, c := range catalog.Cards(mythology) {
		switch c.Kind {
		case KindBeast:
			if len(beasts) < DeckBeasts {
				beasts = append(beasts, c)
			}
		case KindTechnique:
			if len(techniques) < DeckTechniques {
				techniques = append(techniques, c)
			}
		case KindArtifact:
			if len(artifacts) < DeckArtifacts {
				artifacts = append(artifacts, c)
			}
		}
	}

	deck := make([]*Card, 0, len(beasts)+len(techniques)+len(artifacts))
	deck = append(deck, beasts...)
	deck = append(deck, techniques...)
	deck = append(deck, artifacts...)
	return deck
}
