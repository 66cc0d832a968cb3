// Package types provides shared types and constants for the MTG card text
// compiler.
package types

// LogLevel represents different levels of logging detail.
type LogLevel int

const (
	META LogLevel = iota
	CARD
	COMPILER
)

// ManaType represents different types of mana in Magic: The Gathering.
type ManaType string

const (
	White     ManaType = "W"
	Blue      ManaType = "U"
	Black     ManaType = "B"
	Red       ManaType = "R"
	Green     ManaType = "G"
	Colorless ManaType = "C"
	Any       ManaType = "A"
	Phyrexian ManaType = "P"
	Snow      ManaType = "S"
	X         ManaType = "X"
)

// PermanentType represents different types of permanents on the battlefield.
//
// Kept for callers that classify an already-compiled CardDefinition by its
// broad permanent category. The compiler's type-line parser does not use
// this or the CardType/Supertype constants below; it has its own word
// lexicons in package cardtext.
type PermanentType int

const (
	Creature PermanentType = iota
	Artifact
	Enchantment
	Land
	Planeswalker
)

// Supertype is one of the small, fixed set of card supertypes.
type Supertype string

const (
	SupertypeLegendary Supertype = "Legendary"
	SupertypeBasic     Supertype = "Basic"
	SupertypeSnow      Supertype = "Snow"
	SupertypeWorld     Supertype = "World"
	SupertypeHost      Supertype = "Host"
)

// CardType is one of the card types recognized on the left side of a type
// line's em-dash split.
type CardType string

const (
	CardTypeCreature     CardType = "Creature"
	CardTypeArtifact     CardType = "Artifact"
	CardTypeEnchantment  CardType = "Enchantment"
	CardTypeLand         CardType = "Land"
	CardTypePlaneswalker CardType = "Planeswalker"
	CardTypeInstant      CardType = "Instant"
	CardTypeSorcery      CardType = "Sorcery"
	CardTypeBattle       CardType = "Battle"
	CardTypeKindred      CardType = "Kindred"
)

// CounterType is one of the recognized counter kinds.
type CounterType string

const (
	CounterPlusOnePlusOne CounterType = "+1/+1"
	CounterMinusOneMinusOne CounterType = "-1/-1"
	CounterCharge         CounterType = "charge"
	CounterLoyalty        CounterType = "loyalty"
	CounterLore           CounterType = "lore"
	CounterPoison         CounterType = "poison"
	CounterEnergy         CounterType = "energy"
	CounterStun           CounterType = "stun"
	CounterShield         CounterType = "shield"
	CounterOil            CounterType = "oil"
)
