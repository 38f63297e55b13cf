package game

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/cards.yaml
var defaultCatalogYAML []byte

// Catalog is the read-only card source. Cards returns the cards of a
// mythology in catalog order. Implementations must be safe for concurrent use.
type Catalog interface {
	Cards(mythology string) []*Card
}

// CatalogFile represents the top-level YAML structure.
type CatalogFile struct {
	Cards []*Card `yaml:"cards"`
}

// StaticCatalog is an immutable in-memory catalog.
type StaticCatalog struct {
	byMythology map[string][]*Card
	byID        map[string]*Card
	mythologies []string
}

// NewStaticCatalog indexes the given cards, preserving their order.
func NewStaticCatalog(cards []*Card) (*StaticCatalog, error) {
	c := &StaticCatalog{
		byMythology: make(map[string][]*Card),
		byID:        make(map[string]*Card),
	}
	for i, card := range cards {
		if err := validateCard(card); err != nil {
			return nil, fmt.Errorf("card %d: %w", i, err)
		}
		key := normalizeTag(card.Mythology)
		if _, dup := c.byID[key+"/"+card.ID]; dup {
			return nil, fmt.Errorf("card %d: duplicate id %q in mythology %q", i, card.ID, card.Mythology)
		}
		c.byID[key+"/"+card.ID] = card
		if _, seen := c.byMythology[key]; !seen {
			c.mythologies = append(c.mythologies, key)
		}
		c.byMythology[key] = append(c.byMythology[key], card)
	}
	return c, nil
}

// ParseCatalog parses catalog YAML.
func ParseCatalog(data []byte) (*StaticCatalog, error) {
	var cf CatalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse catalog YAML: %w", err)
	}
	return NewStaticCatalog(cf.Cards)
}

// LoadCatalog reads and parses a catalog YAML file.
func LoadCatalog(path string) (*StaticCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCatalog(data)
}

var defaultCatalog = sync.OnceValues(func() (*StaticCatalog, error) {
	return ParseCatalog(defaultCatalogYAML)
})

// DefaultCatalog returns the built-in mythology catalog.
func DefaultCatalog() (*StaticCatalog, error) {
	return defaultCatalog()
}

// Cards implements Catalog.
func (c *StaticCatalog) Cards(mythology string) []*Card {
	return c.byMythology[normalizeTag(mythology)]
}

// Mythologies returns every mythology tag in first-seen order.
func (c *StaticCatalog) Mythologies() []string {
	out := make([]string, len(c.mythologies))
	copy(out, c.mythologies)
	return out
}

// Lookup returns a card by mythology and id.
func (c *StaticCatalog) Lookup(mythology, id string) (*Card, bool) {
	card, ok := c.byID[normalizeTag(mythology)+"/"+id]
	return card, ok
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

func validateCard(card *Card) error {
	if card == nil {
		return fmt.Errorf("empty card entry")
	}
	if card.ID == "" {
		return fmt.Errorf("card %q has no id", card.Name)
	}
	if card.Mythology == "" {
		return fmt.Errorf("card %q has no mythology", card.ID)
	}
	if card.Kind != KindBeast {
		return nil
	}
	if card.HP <= 0 {
		return fmt.Errorf("beast %q must have positive hp", card.ID)
	}
	if card.MaxHP != 0 && card.MaxHP < card.HP {
		return fmt.Errorf("beast %q has hp above max hp", card.ID)
	}
	for _, a := range card.Attacks {
		if a.Damage < 0 {
			return fmt.Errorf("beast %q attack %q has negative damage", card.ID, a.Name)
		}
	}
	return nil
}
