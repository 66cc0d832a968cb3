// Package card provides the Card metadata value type consumed by the card
// text compiler. It carries no behavior beyond classification helpers: the
// compiler treats a Card as the immutable metadata bundle spec.md §1
// describes ("name, types, mana cost that the caller already possesses"),
// never as something with game-state behavior of its own. Network/database
// loading (Scryfall bulk data) and cast-resolution are runtime/collaborator
// concerns spec.md §1 explicitly places outside the compiler's scope; see
// DESIGN.md for why they were dropped rather than adapted.
package card

import "strings"

// Card represents the metadata of a Magic: The Gathering card that the
// compiler is given, plus the fields the compiler itself produces
// (supertypes/card types/subtypes split out of the type line by the
// metadata-intake stage).
type Card struct {
	Name          string
	ManaCost      string
	TypeLine      string
	Power         string
	Toughness     string
	Loyalty       string
	Defense       string
	Supertypes    []string
	CardTypes     []string
	Subtypes      []string
	Colors        []string
	ColorIdentity []string
	OracleText    string
	IsToken       bool
}

// Display renders the card's details in a single line, mirroring the
// teacher's Card.Display but returning the string instead of logging it
// directly: the compiler package is silent by contract (§5), so any
// logging decision belongs to the caller.
func (c *Card) Display() string {
	switch {
	case c.IsLand():
		return c.Name
	case c.IsCreature():
		return c.Name + " " + c.Power + "/" + c.Toughness
	default:
		return c.Name + " (" + c.TypeLine + ")"
	}
}

// IsLand returns true if the card is a land.
func (c *Card) IsLand() bool {
	return strings.Contains(c.TypeLine, "Land")
}

// IsCreature returns true if the card is a creature.
func (c *Card) IsCreature() bool {
	return strings.Contains(c.TypeLine, "Creature")
}

// IsInstant returns true if the card is an instant.
func (c *Card) IsInstant() bool {
	return strings.Contains(c.TypeLine, "Instant")
}

// IsSorcery returns true if the card is a sorcery.
func (c *Card) IsSorcery() bool {
	return strings.Contains(c.TypeLine, "Sorcery")
}

// IsArtifact returns true if the card is an artifact.
func (c *Card) IsArtifact() bool {
	return strings.Contains(c.TypeLine, "Artifact")
}

// IsEnchantment returns true if the card is an enchantment.
func (c *Card) IsEnchantment() bool {
	return strings.Contains(c.TypeLine, "Enchantment")
}

// IsPlaneswalker returns true if the card is a planeswalker.
func (c *Card) IsPlaneswalker() bool {
	return strings.Contains(c.TypeLine, "Planeswalker")
}

// IsSaga returns true if the card is a Saga enchantment.
func (c *Card) IsSaga() bool {
	return c.HasSubtype("Saga")
}

// HasSupertype returns true if the card's type line carries the given
// supertype (e.g. "Legendary").
func (c *Card) HasSupertype(supertype string) bool {
	for _, s := range c.Supertypes {
		if strings.EqualFold(s, supertype) {
			return true
		}
	}
	return false
}

// HasSubtype returns true if the card's type line carries the given
// subtype (e.g. "Bear").
func (c *Card) HasSubtype(subtype string) bool {
	for _, s := range c.Subtypes {
		if strings.EqualFold(s, subtype) {
			return true
		}
	}
	return false
}
